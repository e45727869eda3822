package dto

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PortfolioParams selects a single product; empty means all products.
type PortfolioParams struct {
	Product string `form:"product"`
}

// OverdueListResponse lists accounts in arrears.
type OverdueListResponse struct {
	Loans        []domain.OverdueSummary `json:"loans"`
	Count        int                     `json:"count"`
	TotalOverdue decimal.Decimal         `json:"totalOverdue"`
}
