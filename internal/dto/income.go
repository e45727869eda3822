package dto

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddIncomeRequest records income that did not come from a loan event.
type AddIncomeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	LoanID      string          `json:"loanId"`
}

// ListIncomeResponse wraps income records with their total.
type ListIncomeResponse struct {
	Records []domain.ExtraIncomeRecord `json:"records"`
	Total   decimal.Decimal            `json:"total"`
}
