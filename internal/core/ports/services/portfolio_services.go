package services

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PortfolioSvc is a read-only view across all loan accounts. An empty product
// covers every product.
type PortfolioSvc interface {
	GetStats(ctx context.Context, product domain.ProductVariant) (*domain.PortfolioStats, error)
	ListOverdue(ctx context.Context, product domain.ProductVariant) ([]domain.OverdueSummary, decimal.Decimal, error)
}
