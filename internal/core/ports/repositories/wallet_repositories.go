package repositories

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for the wallet and its log
type WalletReader interface {
	// GetOrCreateWallet returns the pooled wallet, creating it with a zero balance if absent.
	GetOrCreateWallet(ctx context.Context) (*domain.Wallet, error)

	// FindTransactionByID retrieves a single wallet transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.WalletTransaction, error)

	// ListTransactions retrieves wallet transactions, newest first.
	ListTransactions(ctx context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error)
}

// WalletWriter mutates the balance and the log together. Both methods fail
// with ErrConflict when the stored version differs from expectedVersion.
type WalletWriter interface {
	// AppendTransaction sets the new balance and records txn.
	AppendTransaction(ctx context.Context, expectedVersion int64, newBalance decimal.Decimal, txn domain.WalletTransaction) error

	// RemoveTransaction sets the new balance and deletes the transaction.
	RemoveTransaction(ctx context.Context, expectedVersion int64, newBalance decimal.Decimal, transactionID string) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
