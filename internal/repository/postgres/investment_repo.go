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

type investmentRepo struct {
	db *sqlx.DB
}

// NewInvestmentRepo creates a new PostgreSQL-backed InvestmentRepository.
func NewInvestmentRepo(db *sqlx.DB) port.InvestmentRepository {
	return &investmentRepo{db: db}
}

func (r *investmentRepo) Create(ctx context.Context, inv *domain.Investment) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO investments (
		id, name, kind, institution, account_number, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.Name, inv.Kind, inv.Institution, inv.AccountNumber,
		inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("investmentRepo.Create: %w", err)
	}
	return nil
}

func (r *investmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	var inv domain.Investment
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM investments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, fmt.Errorf("investmentRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *investmentRepo) List(ctx context.Context, offset, limit int) ([]domain.Investment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM investments")
	if err != nil {
		return nil, 0, fmt.Errorf("investmentRepo.List count: %w", err)
	}

	var invs []domain.Investment
	err = r.db.SelectContext(ctx, &invs,
		"SELECT * FROM investments ORDER BY name ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("investmentRepo.List: %w", err)
	}
	return invs, total, nil
}

func (r *investmentRepo) Update(ctx context.Context, inv *domain.Investment) error {
	inv.UpdatedAt = time.Now().UTC()

	query := `UPDATE investments SET
		name = $2, kind = $3, institution = $4, account_number = $5, updated_at = $6
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.Name, inv.Kind, inv.Institution, inv.AccountNumber, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("investmentRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvestmentNotFound
	}
	return nil
}

func (r *investmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM investments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("investmentRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvestmentNotFound
	}
	return nil
}
