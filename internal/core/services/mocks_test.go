package services_test

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) GetOrCreateWallet(ctx context.Context) (*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	w := *args.Get(0).(*domain.Wallet)
	return &w, args.Error(1)
}

func (m *MockWalletRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) AppendTransaction(ctx context.Context, expectedVersion int64, newBalance decimal.Decimal, txn domain.WalletTransaction) error {
	args := m.Called(ctx, expectedVersion, newBalance, txn)
	return args.Error(0)
}

func (m *MockWalletRepository) RemoveTransaction(ctx context.Context, expectedVersion int64, newBalance decimal.Decimal, transactionID string) error {
	args := m.Called(ctx, expectedVersion, newBalance, transactionID)
	return args.Error(0)
}

// --- Mock IncomeRepository ---
type MockIncomeRepository struct {
	mock.Mock
}

var _ portsrepo.IncomeRepositoryFacade = (*MockIncomeRepository)(nil)

func (m *MockIncomeRepository) SaveIncome(ctx context.Context, record domain.ExtraIncomeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIncomeRepository) ListIncome(ctx context.Context, loanID string) ([]domain.ExtraIncomeRecord, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtraIncomeRecord), args.Error(1)
}

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

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

// --- Mock IncomeRecorder ---
type MockIncomeRecorder struct {
	mock.Mock
}

var _ portssvc.IncomeRecorderSvc = (*MockIncomeRecorder)(nil)

func (m *MockIncomeRecorder) RecordIncome(ctx context.Context, record domain.ExtraIncomeRecord) (*domain.ExtraIncomeRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraIncomeRecord), args.Error(1)
}
