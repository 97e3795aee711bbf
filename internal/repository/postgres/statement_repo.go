package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"investco/internal/domain"
	"investco/internal/port"
)

type statementRepo struct {
	db *sqlx.DB
}

// NewStatementRepo creates a new PostgreSQL-backed StatementRepository.
func NewStatementRepo(db *sqlx.DB) port.StatementRepository {
	return &statementRepo{db: db}
}

// Save upserts the statement and regenerates its derived ledger entries in
// one transaction. A reader never observes the statement without its
// entries or with a stale set.
func (r *statementRepo) Save(ctx context.Context, stmt *domain.Statement, entries []domain.LedgerEntry) error {
	now := time.Now().UTC()
	if stmt.CreatedAt.IsZero() {
		stmt.CreatedAt = now
	}
	stmt.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("statementRepo.Save begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO statements (
		id, investment_id, family, format,
		statement_date, period_start, period_end, account_number,
		beginning_value, ending_value,
		premiums, tax_withholding, net_change,
		employee_contributions, employer_contributions, investment_gain_loss, loan_payments,
		deposits, dividends, interest, capital_gains, market_change, other_activity,
		withdrawals, fees,
		remaining_guaranteed_balance, death_benefit, vested_balance,
		money_market, equities, fixed_income,
		document_file_id, notes, created_at, updated_at
	) VALUES (
		:id, :investment_id, :family, :format,
		:statement_date, :period_start, :period_end, :account_number,
		:beginning_value, :ending_value,
		:premiums, :tax_withholding, :net_change,
		:employee_contributions, :employer_contributions, :investment_gain_loss, :loan_payments,
		:deposits, :dividends, :interest, :capital_gains, :market_change, :other_activity,
		:withdrawals, :fees,
		:remaining_guaranteed_balance, :death_benefit, :vested_balance,
		:money_market, :equities, :fixed_income,
		:document_file_id, :notes, :created_at, :updated_at
	) ON CONFLICT (id) DO UPDATE SET
		investment_id = EXCLUDED.investment_id,
		family = EXCLUDED.family,
		format = EXCLUDED.format,
		statement_date = EXCLUDED.statement_date,
		period_start = EXCLUDED.period_start,
		period_end = EXCLUDED.period_end,
		account_number = EXCLUDED.account_number,
		beginning_value = EXCLUDED.beginning_value,
		ending_value = EXCLUDED.ending_value,
		premiums = EXCLUDED.premiums,
		tax_withholding = EXCLUDED.tax_withholding,
		net_change = EXCLUDED.net_change,
		employee_contributions = EXCLUDED.employee_contributions,
		employer_contributions = EXCLUDED.employer_contributions,
		investment_gain_loss = EXCLUDED.investment_gain_loss,
		loan_payments = EXCLUDED.loan_payments,
		deposits = EXCLUDED.deposits,
		dividends = EXCLUDED.dividends,
		interest = EXCLUDED.interest,
		capital_gains = EXCLUDED.capital_gains,
		market_change = EXCLUDED.market_change,
		other_activity = EXCLUDED.other_activity,
		withdrawals = EXCLUDED.withdrawals,
		fees = EXCLUDED.fees,
		remaining_guaranteed_balance = EXCLUDED.remaining_guaranteed_balance,
		death_benefit = EXCLUDED.death_benefit,
		vested_balance = EXCLUDED.vested_balance,
		money_market = EXCLUDED.money_market,
		equities = EXCLUDED.equities,
		fixed_income = EXCLUDED.fixed_income,
		document_file_id = EXCLUDED.document_file_id,
		notes = EXCLUDED.notes,
		updated_at = EXCLUDED.updated_at`

	if _, err := tx.NamedExecContext(ctx, query, stmt); err != nil {
		return fmt.Errorf("statementRepo.Save upsert: %w", err)
	}

	// Delete-then-insert keeps derived entries idempotent under re-save.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM ledger_entries WHERE source_statement_id = $1", stmt.ID); err != nil {
		return fmt.Errorf("statementRepo.Save clear entries: %w", err)
	}

	if len(entries) > 0 {
		for i := range entries {
			if entries[i].CreatedAt.IsZero() {
				entries[i].CreatedAt = now
			}
		}
		entryQuery := `INSERT INTO ledger_entries (
			id, investment_id, source_statement_id, entry_type, amount, entry_date, notes, created_at
		) VALUES (
			:id, :investment_id, :source_statement_id, :entry_type, :amount, :entry_date, :notes, :created_at
		)`
		if _, err := tx.NamedExecContext(ctx, entryQuery, entries); err != nil {
			return fmt.Errorf("statementRepo.Save insert entries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("statementRepo.Save commit: %w", err)
	}
	return nil
}

func (r *statementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Statement, error) {
	var stmt domain.Statement
	err := r.db.GetContext(ctx, &stmt, "SELECT * FROM statements WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatementNotFound
		}
		return nil, fmt.Errorf("statementRepo.GetByID: %w", err)
	}
	return &stmt, nil
}

func (r *statementRepo) ListByInvestment(ctx context.Context, investmentID uuid.UUID) ([]*domain.Statement, error) {
	var stmts []*domain.Statement
	err := r.db.SelectContext(ctx, &stmts,
		`SELECT * FROM statements WHERE investment_id = $1 ORDER BY statement_date ASC`,
		investmentID)
	if err != nil {
		return nil, fmt.Errorf("statementRepo.ListByInvestment: %w", err)
	}
	return stmts, nil
}

// Delete removes the statement; its ledger entries go with it via the
// foreign key's ON DELETE CASCADE.
func (r *statementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM statements WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("statementRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrStatementNotFound
	}
	return nil
}
