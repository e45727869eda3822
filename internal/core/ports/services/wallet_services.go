package services

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
)

// WalletReaderSvc defines read operations for the pooled wallet
type WalletReaderSvc interface {
	GetWallet(ctx context.Context) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error)
}

// WalletWriterSvc is the only way cash moves. Every call appends exactly one
// transaction together with the balance change.
type WalletWriterSvc interface {
	// Credit always succeeds for a positive amount.
	Credit(ctx context.Context, m domain.WalletMovement) (*domain.WalletTransaction, error)

	// Debit fails with ErrInsufficientFunds when amount exceeds the balance.
	Debit(ctx context.Context, m domain.WalletMovement) (*domain.WalletTransaction, error)

	// DeleteTransaction reverses a transaction's balance effect and removes it.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
