package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"investco/internal/domain"
	"investco/internal/port"
)

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a new PostgreSQL-backed LedgerRepository.
func NewLedgerRepo(db *sqlx.DB) port.LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM ledger_entries WHERE investment_id = $1 ORDER BY entry_date ASC, entry_type ASC`,
		investmentID)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.ListByInvestment: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepo) ListByStatement(ctx context.Context, statementID uuid.UUID) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM ledger_entries WHERE source_statement_id = $1 ORDER BY entry_type ASC`,
		statementID)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.ListByStatement: %w", err)
	}
	return entries, nil
}
