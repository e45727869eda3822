package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a row of the wallets table.
type Wallet struct {
	WalletID  string          `db:"wallet_id"`
	Balance   decimal.Decimal `db:"balance"`
	Version   int64           `db:"version"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// WalletTransaction is a row of the wallet_transactions table.
type WalletTransaction struct {
	TransactionID string          `db:"transaction_id"`
	WalletID      string          `db:"wallet_id"`
	Direction     string          `db:"direction"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	LoanID        *string         `db:"loan_id"`        // Nullable
	CorrelationID *string         `db:"correlation_id"` // Nullable
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}

// ExtraIncome is a row of the extra_income table.
type ExtraIncome struct {
	IncomeID      string          `db:"income_id"`
	Amount        decimal.Decimal `db:"amount"`
	Source        string          `db:"source"`
	LoanID        *string         `db:"loan_id"` // Weak reference, no foreign key
	Description   string          `db:"description"`
	CorrelationID *string         `db:"correlation_id"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
