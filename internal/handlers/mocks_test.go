package handlers_test

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID string) (*domain.LoanAccount, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanAccount), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanAccount), args.Error(1)
}
func (m *MockLoanService) GetSchedule(ctx context.Context, loanID string) ([]domain.ScheduleEntryView, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleEntryView), args.Error(1)
}
func (m *MockLoanService) ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}
func (m *MockLoanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, userID string) (*domain.LoanAccount, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanAccount), args.Error(1)
}
func (m *MockLoanService) UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, userID string) (*domain.LoanAccount, error) {
	args := m.Called(ctx, loanID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanAccount), args.Error(1)
}
func (m *MockLoanService) DeleteLoan(ctx context.Context, loanID string, userID string) error {
	args := m.Called(ctx, loanID, userID)
	return args.Error(0)
}
func (m *MockLoanService) PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (*ledger.Plan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Plan), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, loanID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}

var _ portssvc.PaymentSvc = (*MockPaymentService)(nil)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWallet(ctx context.Context) (*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) ListTransactions(ctx context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}
func (m *MockWalletService) Credit(ctx context.Context, mv domain.WalletMovement) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, mv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}
func (m *MockWalletService) Debit(ctx context.Context, mv domain.WalletMovement) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, mv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}
func (m *MockWalletService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock IncomeService ---
type MockIncomeService struct {
	mock.Mock
}

func (m *MockIncomeService) RecordIncome(ctx context.Context, record domain.ExtraIncomeRecord) (*domain.ExtraIncomeRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraIncomeRecord), args.Error(1)
}
func (m *MockIncomeService) AddIncome(ctx context.Context, req dto.AddIncomeRequest, userID string) (*domain.ExtraIncomeRecord, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraIncomeRecord), args.Error(1)
}
func (m *MockIncomeService) ListIncome(ctx context.Context, loanID string) ([]domain.ExtraIncomeRecord, decimal.Decimal, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).([]domain.ExtraIncomeRecord), args.Get(1).(decimal.Decimal), args.Error(2)
}

var _ portssvc.IncomeSvcFacade = (*MockIncomeService)(nil)

// --- Mock PortfolioService ---
type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) GetStats(ctx context.Context, product domain.ProductVariant) (*domain.PortfolioStats, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioStats), args.Error(1)
}
func (m *MockPortfolioService) ListOverdue(ctx context.Context, product domain.ProductVariant) ([]domain.OverdueSummary, decimal.Decimal, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).([]domain.OverdueSummary), args.Get(1).(decimal.Decimal), args.Error(2)
}

var _ portssvc.PortfolioSvc = (*MockPortfolioService)(nil)
