package service

import (
	"context"
	"log"
	"time"

	"investco/internal/port"
)

// ReviewSweeperConfig holds settings for the review expiry sweeper.
type ReviewSweeperConfig struct {
	SweepInterval time.Duration
}

// ReviewSweeper removes pending reviews that passed their expiry without
// being confirmed or discarded.
type ReviewSweeper struct {
	reviews port.PendingReviewRepository
	cfg     ReviewSweeperConfig
}

// NewReviewSweeper creates a new ReviewSweeper.
func NewReviewSweeper(reviews port.PendingReviewRepository, cfg ReviewSweeperConfig) *ReviewSweeper {
	return &ReviewSweeper{reviews: reviews, cfg: cfg}
}

// Start runs the sweep loop until ctx is canceled.
func (w *ReviewSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.SweepInterval)
	defer ticker.Stop()

	log.Printf("reviewSweeper: started (interval=%s)", w.cfg.SweepInterval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reviewSweeper: shutdown complete")
			return
		case <-ticker.C:
			n, err := w.reviews.DeleteExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("reviewSweeper: DeleteExpired error: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("reviewSweeper: removed %d expired reviews", n)
			}
		}
	}
}
