package repositories

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
)

// IncomeRepositoryFacade is the append-only extra income register.
type IncomeRepositoryFacade interface {
	SaveIncome(ctx context.Context, record domain.ExtraIncomeRecord) error
	// ListIncome returns records newest first. An empty loanID lists everything.
	ListIncome(ctx context.Context, loanID string) ([]domain.ExtraIncomeRecord, error)
}
