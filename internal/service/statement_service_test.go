package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investco/internal/chain"
	"investco/internal/classify"
	"investco/internal/domain"
	"investco/internal/extract"
	"investco/internal/port"
	"investco/internal/validate"
)

type fakeInvestmentRepo struct {
	investments map[uuid.UUID]*domain.Investment
}

func (f *fakeInvestmentRepo) Create(_ context.Context, inv *domain.Investment) error {
	f.investments[inv.ID] = inv
	return nil
}

func (f *fakeInvestmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Investment, error) {
	inv, ok := f.investments[id]
	if !ok {
		return nil, domain.ErrInvestmentNotFound
	}
	return inv, nil
}

func (f *fakeInvestmentRepo) List(context.Context, int, int) ([]domain.Investment, int, error) {
	return nil, 0, nil
}

func (f *fakeInvestmentRepo) Update(context.Context, *domain.Investment) error { return nil }

func (f *fakeInvestmentRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeStatementRepo struct {
	saved       []*domain.Statement
	savedEntries map[uuid.UUID][]domain.LedgerEntry
	history     []*domain.Statement
}

func newFakeStatementRepo() *fakeStatementRepo {
	return &fakeStatementRepo{savedEntries: map[uuid.UUID][]domain.LedgerEntry{}}
}

func (f *fakeStatementRepo) Save(_ context.Context, stmt *domain.Statement, entries []domain.LedgerEntry) error {
	f.saved = append(f.saved, stmt)
	f.savedEntries[stmt.ID] = entries
	f.history = append(f.history, stmt)
	return nil
}

func (f *fakeStatementRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Statement, error) {
	for _, s := range f.history {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrStatementNotFound
}

func (f *fakeStatementRepo) ListByInvestment(_ context.Context, investmentID uuid.UUID) ([]*domain.Statement, error) {
	var out []*domain.Statement
	for _, s := range f.history {
		if s.InvestmentID == investmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStatementRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*domain.PendingReview
	expired int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*domain.PendingReview{}}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.PendingReview) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.PendingReview, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, domain.ErrPendingReviewNotFound
	}
	if time.Now().After(r.ExpiresAt) {
		return nil, domain.ErrPendingReviewExpired
	}
	return r, nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return domain.ErrPendingReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) DeleteExpired(context.Context) (int64, error) {
	atomic.AddInt64(&f.expired, 1)
	return 2, nil
}

type fakeRecoverer struct {
	text string
	err  error
}

func (f *fakeRecoverer) Recover(context.Context, string) (string, error) {
	return f.text, f.err
}

// stallingRecoverer blocks until the context expires, standing in for an OCR
// pass that never finishes.
type stallingRecoverer struct{}

func (stallingRecoverer) Recover(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeEmail struct {
	sent []string
}

func (f *fakeEmail) Send(_ context.Context, _ []string, subject, _ string) error {
	f.sent = append(f.sent, subject)
	return nil
}

var _ port.EmailSender = (*fakeEmail)(nil)

const cleanJacksonText = `Jackson National Life Insurance Company
For the period of January 1, 2024 to March 31, 2024
Contract Number: 12345678
Beginning Value on 01/01/2024 $100,000.00
Total Premium $5,000.00
Total Withdrawals $2,000.00
Total Tax Witheld $500.00
Net Change ($1,500.00)
Ending Value on 03/31/2024 $101,000.00`

func newTestService(recoverer TextRecoverer, email port.EmailSender) (*StatementService, *fakeInvestmentRepo, *fakeStatementRepo, *fakeReviewRepo, *domain.Investment) {
	inv := &domain.Investment{
		ID:   uuid.New(),
		Name: "Jackson Annuity",
		Kind: domain.InvestmentAnnuity,
	}
	invRepo := &fakeInvestmentRepo{investments: map[uuid.UUID]*domain.Investment{inv.ID: inv}}
	stmtRepo := newFakeStatementRepo()
	reviewRepo := newFakeReviewRepo()

	svc := NewStatementService(StatementServiceDeps{
		Investments: invRepo,
		Statements:  stmtRepo,
		Reviews:     reviewRepo,
		Email:       email,
		Recoverer:   recoverer,
		Classifier:  classify.NewDefaultClassifier(),
		Extractors:  extract.NewFactory(),
		Validator:   validate.NewValidator(),
		Verifier:    chain.NewVerifier(),
		ReviewTTL:   time.Hour,
		NotifyAddrs: []string{"reviewer@example.com"},
	})
	return svc, invRepo, stmtRepo, reviewRepo, inv
}

func TestParseHappyPath(t *testing.T) {
	svc, _, _, reviewRepo, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	out, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		FileName:     "q1.pdf",
		ContentType:  "application/pdf",
		Data:         []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatJackson, out.Format)
	assert.Equal(t, domain.FamilyAnnuity, out.Family)
	assert.True(t, out.Validation.Clean())
	assert.Contains(t, reviewRepo.reviews, out.ReviewID)

	begin, ok := out.Fields.Amount(domain.FieldNameBeginningValue)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100000).Equal(begin))
}

func TestParseNotifiesOnWarnings(t *testing.T) {
	// Ending value off by $10 reconciles outside tolerance.
	text := cleanJacksonText[:len(cleanJacksonText)-len("Ending Value on 03/31/2024 $101,000.00")] +
		"Ending Value on 03/31/2024 $101,010.00"
	email := &fakeEmail{}
	svc, _, _, _, inv := newTestService(&fakeRecoverer{text: text}, email)

	out, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		FileName:     "q1.pdf",
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	require.NoError(t, err)
	require.Len(t, out.Validation.Warnings, 1)
	assert.Len(t, email.sent, 1)
}

func TestParseRejectsUnsupportedContentType(t *testing.T) {
	svc, _, _, _, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	_, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		FileName:     "notes.txt",
		ContentType:  "text/plain",
		Data:         []byte("x"),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestParseUnknownInvestment(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	_, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: uuid.New(),
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	assert.ErrorIs(t, err, domain.ErrInvestmentNotFound)
}

func TestParseExtractionFailure(t *testing.T) {
	svc, _, _, _, inv := newTestService(&fakeRecoverer{err: domain.ErrExtractionFailed}, &fakeEmail{})

	_, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestParseExtractionTimeout(t *testing.T) {
	svc, _, _, _, inv := newTestService(stallingRecoverer{}, &fakeEmail{})
	svc.extractTimeout = 20 * time.Millisecond

	_, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfirmRejectsFamilyMismatch(t *testing.T) {
	svc, invRepo, _, _, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	out, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	require.NoError(t, err)

	// The investment was recategorized between parse and confirm.
	invRepo.investments[inv.ID].Kind = domain.InvestmentBrokerage

	_, err = svc.Confirm(context.Background(), out.ReviewID, nil)
	assert.ErrorIs(t, err, domain.ErrFamilyMismatch)
}

func TestConfirmPersistsStatementAndEntries(t *testing.T) {
	svc, _, stmtRepo, reviewRepo, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	out, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), out.ReviewID, nil)
	require.NoError(t, err)

	stmt := confirmed.Statement
	assert.Equal(t, inv.ID, stmt.InvestmentID)
	assert.Equal(t, domain.FamilyAnnuity, stmt.Family)
	assert.Equal(t, "12345678", stmt.AccountNumber)
	assert.True(t, decimal.NewFromInt(101000).Equal(stmt.EndingValue))

	// Premium, withdrawal, tax, net change all non-zero: four entries.
	require.Len(t, confirmed.Entries, 4)
	assert.Equal(t, confirmed.Entries, stmtRepo.savedEntries[stmt.ID])

	// First statement in the series.
	assert.Equal(t, domain.ContinuityHolds, confirmed.Chain.Status)

	// Confirmed review is gone.
	assert.NotContains(t, reviewRepo.reviews, out.ReviewID)
}

func TestConfirmWithCorrectedFields(t *testing.T) {
	svc, _, _, _, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	out, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	require.NoError(t, err)

	corrected := out.Fields
	corrected[domain.FieldNamePremiums] = domain.FieldValue{
		Kind:   domain.FieldAmount,
		Amount: decimal.NewFromInt(6000),
	}

	confirmed, err := svc.Confirm(context.Background(), out.ReviewID, corrected)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6000).Equal(confirmed.Statement.Premiums))
}

func TestConfirmRejectsIncompleteFields(t *testing.T) {
	svc, _, _, reviewRepo, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	fields, _ := json.Marshal(domain.FieldMap{})
	review := &domain.PendingReview{
		ID:           uuid.New(),
		InvestmentID: inv.ID,
		Format:       domain.FormatJackson,
		Family:       domain.FamilyAnnuity,
		Fields:       fields,
		Validation:   json.RawMessage("{}"),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, reviewRepo.Create(context.Background(), review))

	_, err := svc.Confirm(context.Background(), review.ID, nil)
	assert.ErrorIs(t, err, domain.ErrStatementInvalid)
	// Rejected review stays for another attempt.
	assert.Contains(t, reviewRepo.reviews, review.ID)
}

func TestConfirmExpiredReview(t *testing.T) {
	svc, _, _, reviewRepo, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	review := &domain.PendingReview{
		ID:           uuid.New(),
		InvestmentID: inv.ID,
		Fields:       json.RawMessage("{}"),
		Validation:   json.RawMessage("{}"),
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, reviewRepo.Create(context.Background(), review))

	_, err := svc.Confirm(context.Background(), review.ID, nil)
	assert.ErrorIs(t, err, domain.ErrPendingReviewExpired)
}

func TestConfirmDetectsContinuityBreak(t *testing.T) {
	svc, _, stmtRepo, _, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	// Prior quarter ended at a different balance than the new one begins.
	stmtRepo.history = append(stmtRepo.history, &domain.Statement{
		ID:             uuid.New(),
		InvestmentID:   inv.ID,
		Family:         domain.FamilyAnnuity,
		StatementDate:  time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		EndingValue:    decimal.NewFromInt(99000),
		BeginningValue: decimal.NewFromInt(95000),
	})

	out, err := svc.Parse(context.Background(), ParseInput{
		InvestmentID: inv.ID,
		ContentType:  "application/pdf",
		Data:         []byte("x"),
	})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), out.ReviewID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ContinuityBroken, confirmed.Chain.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(confirmed.Chain.Gap))
}

func TestGaps(t *testing.T) {
	svc, _, stmtRepo, _, inv := newTestService(&fakeRecoverer{text: cleanJacksonText}, &fakeEmail{})

	mk := func(date string, beginning, ending int64) *domain.Statement {
		d, _ := time.Parse("2006-01-02", date)
		return &domain.Statement{
			ID:             uuid.New(),
			InvestmentID:   inv.ID,
			Family:         domain.FamilyAnnuity,
			StatementDate:  d,
			BeginningValue: decimal.NewFromInt(beginning),
			EndingValue:    decimal.NewFromInt(ending),
		}
	}
	stmtRepo.history = []*domain.Statement{
		mk("2024-03-31", 100, 110),
		mk("2024-06-30", 115, 120),
		mk("2024-09-30", 120, 130),
	}

	gaps, err := svc.Gaps(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(gaps[0].Gap))
}

func TestReviewSweeper(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	sweeper := NewReviewSweeper(reviewRepo, ReviewSweeperConfig{SweepInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	assert.Greater(t, atomic.LoadInt64(&reviewRepo.expired), int64(0))
}
