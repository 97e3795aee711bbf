package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"investco/internal/chain"
	"investco/internal/classify"
	"investco/internal/domain"
	"investco/internal/extract"
	"investco/internal/ledger"
	"investco/internal/port"
	"investco/internal/validate"
)

// TextRecoverer turns a statement PDF on disk into plain text.
type TextRecoverer interface {
	Recover(ctx context.Context, pdfPath string) (string, error)
}

// ParseOutput is the result of one document parse: the extraction, its
// verdict, and the pending-review handle the caller confirms against.
type ParseOutput struct {
	ReviewID   uuid.UUID         `json:"review_id"`
	FileID     *uuid.UUID        `json:"file_id,omitempty"`
	Format     domain.FormatTag  `json:"format"`
	Family     domain.StatementFamily `json:"family"`
	Fields     domain.FieldMap   `json:"fields"`
	Validation validate.Result   `json:"validation"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// ConfirmOutput is the result of confirming a pending review.
type ConfirmOutput struct {
	Statement *domain.Statement `json:"statement"`
	Entries   []domain.LedgerEntry `json:"entries"`
	Chain     chain.Link        `json:"chain"`
}

// StatementService runs the document pipeline: recover text, classify the
// format, extract fields, validate, park the result for review, and on
// confirmation persist the statement with its derived ledger entries.
type StatementService struct {
	investments port.InvestmentRepository
	statements  port.StatementRepository
	reviews     port.PendingReviewRepository
	files       port.FileMetaRepository
	storage     port.ObjectStorage
	email       port.EmailSender

	recoverer  TextRecoverer
	classifier *classify.Classifier
	extractors *extract.Factory
	validator  *validate.Validator
	verifier   *chain.Verifier

	reviewTTL      time.Duration
	notifyAddrs    []string
	maxFileSize    int64
	extractTimeout time.Duration
}

// StatementServiceDeps wires a StatementService.
type StatementServiceDeps struct {
	Investments    port.InvestmentRepository
	Statements     port.StatementRepository
	Reviews        port.PendingReviewRepository
	Files          port.FileMetaRepository
	Storage        port.ObjectStorage
	Email          port.EmailSender
	Recoverer      TextRecoverer
	Classifier     *classify.Classifier
	Extractors     *extract.Factory
	Validator      *validate.Validator
	Verifier       *chain.Verifier
	ReviewTTL      time.Duration
	NotifyAddrs    []string
	MaxFileSize    int64
	ExtractTimeout time.Duration
}

func NewStatementService(deps StatementServiceDeps) *StatementService {
	return &StatementService{
		investments:    deps.Investments,
		statements:     deps.Statements,
		reviews:        deps.Reviews,
		files:          deps.Files,
		storage:        deps.Storage,
		email:          deps.Email,
		recoverer:      deps.Recoverer,
		classifier:     deps.Classifier,
		extractors:     deps.Extractors,
		validator:      deps.Validator,
		verifier:       deps.Verifier,
		reviewTTL:      deps.ReviewTTL,
		notifyAddrs:    deps.NotifyAddrs,
		maxFileSize:    deps.MaxFileSize,
		extractTimeout: deps.ExtractTimeout,
	}
}

// ParseInput is one uploaded statement document.
type ParseInput struct {
	InvestmentID uuid.UUID
	FileName     string
	ContentType  string
	Data         []byte
}

// Parse runs the full extraction pipeline on an uploaded document and parks
// the result as a pending review. Nothing is persisted to the statement
// history until the review is confirmed.
func (s *StatementService) Parse(ctx context.Context, input ParseInput) (*ParseOutput, error) {
	inv, err := s.investments.GetByID(ctx, input.InvestmentID)
	if err != nil {
		return nil, err
	}

	fileType, ok := domain.AllowedContentTypes[input.ContentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.maxFileSize > 0 && int64(len(input.Data)) > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}

	fileID, err := s.storeDocument(ctx, inv.ID, input, fileType)
	if err != nil {
		// Storage is best-effort for parsing: the pipeline still runs on
		// the uploaded bytes.
		log.Printf("service.StatementService: storing document failed: %v", err)
		fileID = nil
	}

	text, err := s.recoverText(ctx, input.Data)
	if err != nil {
		return nil, err
	}

	format := s.classifier.Classify(text)
	extractor := s.extractors.ForFormat(format)
	family := format.Family()
	fields := extractor.Extract(text)
	result := s.validator.Validate(family, fields)

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("service.StatementService: encoding fields: %w", err)
	}
	validationJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("service.StatementService: encoding validation: %w", err)
	}

	review := &domain.PendingReview{
		ID:           uuid.New(),
		InvestmentID: inv.ID,
		FileID:       fileID,
		Format:       format,
		Family:       family,
		Fields:       fieldsJSON,
		Validation:   validationJSON,
		ExpiresAt:    time.Now().UTC().Add(s.reviewTTL),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	log.Printf("service.StatementService: parsed %s as %s (%d errors, %d warnings), review %s",
		input.FileName, format, len(result.Errors), len(result.Warnings), review.ID)

	if !result.Clean() {
		s.notifyReview(ctx, inv, review, result)
	}

	return &ParseOutput{
		ReviewID:   review.ID,
		FileID:     fileID,
		Format:     format,
		Family:     family,
		Fields:     fields,
		Validation: result,
		ExpiresAt:  review.ExpiresAt,
	}, nil
}

// Confirm turns a pending review into a persisted statement. Corrected
// fields, when given, replace the extracted ones and are re-validated; a
// field map that still has errors is rejected. The statement and its
// regenerated ledger entries are saved atomically, then continuity is
// checked against the investment's history.
func (s *StatementService) Confirm(ctx context.Context, reviewID uuid.UUID, corrected domain.FieldMap) (*ConfirmOutput, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	inv, err := s.investments.GetByID(ctx, review.InvestmentID)
	if err != nil {
		return nil, err
	}
	if string(review.Family) != string(inv.Kind) {
		return nil, fmt.Errorf("%w: %s statement for %s investment",
			domain.ErrFamilyMismatch, review.Family, inv.Kind)
	}

	fields := corrected
	if fields == nil {
		if err := json.Unmarshal(review.Fields, &fields); err != nil {
			return nil, fmt.Errorf("service.StatementService: decoding review fields: %w", err)
		}
	}

	result := s.validator.Validate(review.Family, fields)
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %d missing fields", domain.ErrStatementInvalid, len(result.Errors))
	}

	stmt := BuildStatement(review.InvestmentID, review.Format, review.Family, fields)
	stmt.DocumentFileID = review.FileID
	entries := ledger.BuildEntries(stmt)

	if err := s.statements.Save(ctx, stmt, entries); err != nil {
		return nil, err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		log.Printf("service.StatementService: deleting confirmed review %s: %v", reviewID, err)
	}

	history, err := s.statements.ListByInvestment(ctx, stmt.InvestmentID)
	if err != nil {
		return nil, err
	}
	link := s.verifier.Verify(stmt, history)
	if link.Status == domain.ContinuityBroken {
		log.Printf("service.StatementService: continuity break on %s: gap %s", stmt.ID, link.Gap)
	}

	return &ConfirmOutput{Statement: stmt, Entries: entries, Chain: link}, nil
}

// Discard drops a pending review without persisting anything.
func (s *StatementService) Discard(ctx context.Context, reviewID uuid.UUID) error {
	return s.reviews.Delete(ctx, reviewID)
}

// Resave regenerates a stored statement's ledger entries, used after a
// manual edit. Save is transactional, so readers never see a partial set.
func (s *StatementService) Resave(ctx context.Context, stmt *domain.Statement) ([]domain.LedgerEntry, error) {
	entries := ledger.BuildEntries(stmt)
	if err := s.statements.Save(ctx, stmt, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Gaps audits the full statement history of an investment.
func (s *StatementService) Gaps(ctx context.Context, investmentID uuid.UUID) ([]chain.Gap, error) {
	if _, err := s.investments.GetByID(ctx, investmentID); err != nil {
		return nil, err
	}
	history, err := s.statements.ListByInvestment(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	return s.verifier.FindGaps(history), nil
}

// History returns an investment's statements in date order.
func (s *StatementService) History(ctx context.Context, investmentID uuid.UUID) ([]*domain.Statement, error) {
	if _, err := s.investments.GetByID(ctx, investmentID); err != nil {
		return nil, err
	}
	return s.statements.ListByInvestment(ctx, investmentID)
}

// Get returns one statement.
func (s *StatementService) Get(ctx context.Context, id uuid.UUID) (*domain.Statement, error) {
	return s.statements.GetByID(ctx, id)
}

// Delete removes a statement and, through the cascade, its ledger entries.
func (s *StatementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.statements.Delete(ctx, id)
}

func (s *StatementService) storeDocument(ctx context.Context, investmentID uuid.UUID, input ParseInput, fileType domain.FileType) (*uuid.UUID, error) {
	if s.storage == nil || s.files == nil {
		return nil, nil
	}

	id := uuid.New()
	key := fmt.Sprintf("statements/%s/%s.pdf", investmentID, id)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(input.Data), input.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	meta := &domain.FileMeta{
		ID:           id,
		InvestmentID: investmentID,
		FileName:     fmt.Sprintf("%s.pdf", id),
		OriginalName: input.FileName,
		FileType:     fileType,
		FileSize:     int64(len(input.Data)),
		S3Key:        key,
		ContentType:  input.ContentType,
	}
	if err := s.files.Create(ctx, meta); err != nil {
		return nil, err
	}
	return &id, nil
}

// recoverText spools the upload to a temp file for the recovery pipeline,
// which shells out to tools that want a path.
func (s *StatementService) recoverText(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return "", fmt.Errorf("service.StatementService: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("service.StatementService: writing temp file: %w", err)
	}
	tmp.Close()

	// OCR-backed recovery can run for minutes on a scanned multi-page
	// document; bound it so one upload cannot hold a handler indefinitely.
	if s.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.extractTimeout)
		defer cancel()
	}

	return s.recoverer.Recover(ctx, tmp.Name())
}

func (s *StatementService) notifyReview(ctx context.Context, inv *domain.Investment, review *domain.PendingReview, result validate.Result) {
	if s.email == nil || len(s.notifyAddrs) == 0 {
		return
	}
	subject := fmt.Sprintf("Statement for %s needs review", inv.Name)
	body := buildReviewHTML(inv, review, result)
	if err := s.email.Send(ctx, s.notifyAddrs, subject, body); err != nil {
		log.Printf("service.StatementService: review notification failed: %v", err)
	}
}

func buildReviewHTML(inv *domain.Investment, review *domain.PendingReview, result validate.Result) string {
	var issues string
	for _, e := range result.Errors {
		issues += fmt.Sprintf("<li>%s</li>", e.Message)
	}
	for _, w := range result.Warnings {
		issues += fmt.Sprintf("<li>%s</li>", w.Message)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Statement needs review</h2>
  <p>A statement parsed for <strong>%s</strong> has findings that need a look:</p>
  <ul>%s</ul>
  <p>Review ID: %s (expires %s)</p>
</body>
</html>`, inv.Name, issues, review.ID, review.ExpiresAt.Format(time.RFC3339))
}
