package services

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	"github.com/SscSPs/microloan_ledger/internal/dto"
)

// LoanReaderSvc defines read operations for loan accounts
type LoanReaderSvc interface {
	// GetLoan retrieves a loan account by its identifier.
	GetLoan(ctx context.Context, loanID string) (*domain.LoanAccount, error)

	// ListLoans retrieves loan accounts matching filter.
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanAccount, error)

	// GetSchedule returns the loan's installments with overdue figures as of now.
	GetSchedule(ctx context.Context, loanID string) ([]domain.ScheduleEntryView, error)

	// ListPayments returns the payment history of a loan.
	ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error)
}

// LoanWriterSvc defines write operations for loan accounts
type LoanWriterSvc interface {
	// CreateLoan validates the request, generates the schedule, persists the
	// account and disburses from the wallet.
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, userID string) (*domain.LoanAccount, error)

	// UpdateLoan edits non-financial borrower fields.
	UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, userID string) (*domain.LoanAccount, error)

	// DeleteLoan removes a loan with nothing paid against it.
	DeleteLoan(ctx context.Context, loanID string, userID string) error
}

// LoanCalculatorSvc defines side-effect free calculations
type LoanCalculatorSvc interface {
	// PreviewSchedule generates a schedule without persisting anything.
	PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (*ledger.Plan, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
	LoanCalculatorSvc
}
