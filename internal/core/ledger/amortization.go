package ledger

import (
	"time"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Schedule validates p and generates its repayment plan. The first due date
// is one interval after start.
func (e *Engine) Schedule(p domain.LoanParameters, start time.Time) (Plan, error) {
	product, err := e.Product(p.Product)
	if err != nil {
		return Plan{}, err
	}
	normalized, err := product.Normalize(p)
	if err != nil {
		return Plan{}, err
	}
	return product.Plan(normalized, start), nil
}

// NewLoanAccount builds an active account around a generated plan.
func NewLoanAccount(loanID string, borrower domain.Borrower, plan Plan, createdAt time.Time, createdBy string) domain.LoanAccount {
	return domain.LoanAccount{
		LoanID:            loanID,
		Borrower:          borrower,
		Parameters:        plan.Parameters,
		InstallmentAmount: plan.InstallmentAmount,
		TotalInterest:     plan.TotalInterest,
		TotalPayable:      plan.TotalPayable,
		TotalPaid:         decimal.Zero,
		RemainingAmount:   plan.TotalPayable,
		Status:            domain.LoanActive,
		Schedule:          plan.Entries,
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			CreatedBy:     createdBy,
			LastUpdatedAt: createdAt,
			LastUpdatedBy: createdBy,
		},
	}
}
