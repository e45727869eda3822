package services

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
	"github.com/shopspring/decimal"
)

// portfolioService reduces every loan on each call. No locks are taken.
type portfolioService struct {
	BaseService
	loanRepo portsrepo.LoanReader
	engine   *ledger.Engine
}

// NewPortfolioService creates the portfolio aggregator.
func NewPortfolioService(loanRepo portsrepo.LoanReader, engine *ledger.Engine, c clock.Clock) portssvc.PortfolioSvc {
	if engine == nil {
		engine = ledger.NewEngine()
	}
	return &portfolioService{
		BaseService: BaseService{Clock: c},
		loanRepo:    loanRepo,
		engine:      engine,
	}
}

var _ portssvc.PortfolioSvc = (*portfolioService)(nil)

func (s *portfolioService) GetStats(ctx context.Context, product domain.ProductVariant) (*domain.PortfolioStats, error) {
	loans, err := s.loanRepo.ListLoans(ctx, domain.LoanFilter{Product: product})
	if err != nil {
		s.LogError(ctx, err, "Failed to load loans for portfolio stats")
		return nil, err
	}
	stats := s.engine.Summarize(loans, s.Now())
	stats.Product = product
	return &stats, nil
}

func (s *portfolioService) ListOverdue(ctx context.Context, product domain.ProductVariant) ([]domain.OverdueSummary, decimal.Decimal, error) {
	loans, err := s.loanRepo.ListLoans(ctx, domain.LoanFilter{Status: domain.LoanActive, Product: product})
	if err != nil {
		s.LogError(ctx, err, "Failed to load loans for overdue list")
		return nil, decimal.Zero, err
	}
	summaries, total := s.engine.OverdueSummaries(loans, s.Now())
	return summaries, total, nil
}
