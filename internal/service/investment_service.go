package service

import (
	"context"

	"github.com/google/uuid"

	"investco/internal/domain"
	"investco/internal/port"
)

// InvestmentService manages the investment registry.
type InvestmentService struct {
	investments port.InvestmentRepository
	ledgers     port.LedgerRepository
}

func NewInvestmentService(investments port.InvestmentRepository, ledgers port.LedgerRepository) *InvestmentService {
	return &InvestmentService{investments: investments, ledgers: ledgers}
}

func (s *InvestmentService) Create(ctx context.Context, inv *domain.Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return s.investments.Create(ctx, inv)
}

func (s *InvestmentService) Get(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	return s.investments.GetByID(ctx, id)
}

func (s *InvestmentService) List(ctx context.Context, offset, limit int) ([]domain.Investment, int, error) {
	return s.investments.List(ctx, offset, limit)
}

func (s *InvestmentService) Update(ctx context.Context, inv *domain.Investment) error {
	return s.investments.Update(ctx, inv)
}

func (s *InvestmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.investments.Delete(ctx, id)
}

// Ledger returns the derived activity entries for an investment in date
// order.
func (s *InvestmentService) Ledger(ctx context.Context, id uuid.UUID) ([]domain.LedgerEntry, error) {
	if _, err := s.investments.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.ledgers.ListByInvestment(ctx, id)
}
