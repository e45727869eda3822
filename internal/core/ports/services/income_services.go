package services

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// IncomeRecorderSvc appends to the extra income register without touching the wallet.
type IncomeRecorderSvc interface {
	RecordIncome(ctx context.Context, record domain.ExtraIncomeRecord) (*domain.ExtraIncomeRecord, error)
}

// IncomeSvcFacade combines all extra income service operations
type IncomeSvcFacade interface {
	IncomeRecorderSvc

	// AddIncome records manual income and credits the wallet with it.
	AddIncome(ctx context.Context, req dto.AddIncomeRequest, userID string) (*domain.ExtraIncomeRecord, error)

	// ListIncome returns records and their total. An empty loanID lists everything.
	ListIncome(ctx context.Context, loanID string) ([]domain.ExtraIncomeRecord, decimal.Decimal, error)
}
