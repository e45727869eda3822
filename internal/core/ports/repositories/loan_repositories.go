package repositories

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
)

// LoanReader defines read operations for loan accounts
type LoanReader interface {
	// FindLoanByID retrieves a loan account with its full schedule.
	FindLoanByID(ctx context.Context, loanID string) (*domain.LoanAccount, error)

	// ListLoans retrieves loan accounts matching filter, newest first.
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanAccount, error)

	// CountLoansByProduct returns how many accounts exist for a product.
	CountLoansByProduct(ctx context.Context, product domain.ProductVariant) (int, error)
}

// LoanWriter defines write operations for loan accounts
type LoanWriter interface {
	// SaveLoan persists a new loan account and its schedule. Uniqueness
	// violations are reported as *apperrors.DuplicateError.
	SaveLoan(ctx context.Context, loan domain.LoanAccount) error

	// UpdateLoanDetails overwrites the borrower profile of an existing loan.
	UpdateLoanDetails(ctx context.Context, loan domain.LoanAccount) error

	// DeleteLoan removes a loan account and its schedule.
	DeleteLoan(ctx context.Context, loanID string) error
}

// LoanPaymentSupport persists the result of applying a payment.
type LoanPaymentSupport interface {
	// ApplyLoanPayment atomically stores the loan totals, the settled entries
	// and the payment record. It fails with ErrEntryAlreadySettled if any of
	// the settled entries was already paid in storage.
	ApplyLoanPayment(ctx context.Context, loan domain.LoanAccount, settled []int, payment domain.PaymentRecord) error

	// ListPaymentsByLoan returns the payment history of a loan, oldest first.
	ListPaymentsByLoan(ctx context.Context, loanID string) ([]domain.PaymentRecord, error)
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanPaymentSupport
}
