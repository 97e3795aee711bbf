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

type pendingReviewRepo struct {
	db *sqlx.DB
}

// NewPendingReviewRepo creates a new PostgreSQL-backed PendingReviewRepository.
func NewPendingReviewRepo(db *sqlx.DB) port.PendingReviewRepository {
	return &pendingReviewRepo{db: db}
}

func (r *pendingReviewRepo) Create(ctx context.Context, review *domain.PendingReview) error {
	review.CreatedAt = time.Now().UTC()

	query := `INSERT INTO pending_reviews (
		id, investment_id, file_id, format, family, fields, validation, expires_at, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.InvestmentID, review.FileID, review.Format, review.Family,
		review.Fields, review.Validation, review.ExpiresAt, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("pendingReviewRepo.Create: %w", err)
	}
	return nil
}

// GetByID returns ErrPendingReviewExpired for a review past its expiry even
// if the sweeper has not removed the row yet.
func (r *pendingReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingReview, error) {
	var review domain.PendingReview
	err := r.db.GetContext(ctx, &review, "SELECT * FROM pending_reviews WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPendingReviewNotFound
		}
		return nil, fmt.Errorf("pendingReviewRepo.GetByID: %w", err)
	}
	if time.Now().UTC().After(review.ExpiresAt) {
		return nil, domain.ErrPendingReviewExpired
	}
	return &review, nil
}

func (r *pendingReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pending_reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("pendingReviewRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPendingReviewNotFound
	}
	return nil
}

func (r *pendingReviewRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM pending_reviews WHERE expires_at < $1", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("pendingReviewRepo.DeleteExpired: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
