package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MainWalletID identifies the single pooled wallet.
const MainWalletID = "main"

// Direction of a wallet movement.
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Valid reports whether d is credit or debit.
func (d Direction) Valid() bool {
	return d == Credit || d == Debit
}

// Wallet is the pooled cash balance. Version increases with every mutation.
type Wallet struct {
	WalletID  string          `json:"walletId"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// WalletTransaction is one entry in the wallet log.
type WalletTransaction struct {
	TransactionID string          `json:"transactionId"`
	Direction     Direction       `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	LoanID        string          `json:"loanId,omitempty"`
	CorrelationID string          `json:"correlationId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy,omitempty"`
}

// WalletMovement is a request to move cash in or out of the wallet.
type WalletMovement struct {
	Amount        decimal.Decimal
	Description   string
	LoanID        string
	CorrelationID string
	UserID        string
}

// WalletTransactionFilter narrows transaction listing. Results are newest first.
type WalletTransactionFilter struct {
	Direction Direction
	Limit     int
	// Before, when set, returns only transactions older than this cursor.
	Before *WalletCursor
}

// WalletCursor is the position of a transaction in newest-first order.
type WalletCursor struct {
	CreatedAt     time.Time
	TransactionID string
}
