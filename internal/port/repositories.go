// Package port defines the interfaces between the service layer and its
// infrastructure.
package port

import (
	"context"

	"github.com/google/uuid"

	"investco/internal/domain"
)

// InvestmentRepository persists investments.
type InvestmentRepository interface {
	Create(ctx context.Context, inv *domain.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	List(ctx context.Context, offset, limit int) ([]domain.Investment, int, error)
	Update(ctx context.Context, inv *domain.Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatementRepository persists statements. Save runs the statement upsert
// and its ledger regeneration in one transaction; passing entries replaces
// every entry previously derived from this statement.
type StatementRepository interface {
	Save(ctx context.Context, stmt *domain.Statement, entries []domain.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Statement, error)
	ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]*domain.Statement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LedgerRepository reads derived entries. Writes go through
// StatementRepository.Save so they stay transactional with their statement.
type LedgerRepository interface {
	ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]domain.LedgerEntry, error)
	ListByStatement(ctx context.Context, statementID uuid.UUID) ([]domain.LedgerEntry, error)
}

// PendingReviewRepository persists parsed-but-unconfirmed extractions.
type PendingReviewRepository interface {
	Create(ctx context.Context, review *domain.PendingReview) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingReview, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// FileMetaRepository persists uploaded-document metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
