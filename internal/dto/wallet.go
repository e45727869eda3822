package dto

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletMovementRequest is a manual deposit or withdrawal.
type WalletMovementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ListTransactionsParams defines query parameters for listing wallet transactions.
type ListTransactionsParams struct {
	Type      string `form:"type"`
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// WalletResponse reports the pooled balance.
type WalletResponse struct {
	Balance decimal.Decimal `json:"balance"`
	Version int64           `json:"version"`
}

// ToWalletResponse converts a wallet.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{Balance: w.Balance, Version: w.Version}
}

// ListTransactionsResponse wraps a page of wallet transactions.
type ListTransactionsResponse struct {
	Transactions []domain.WalletTransaction `json:"transactions"`
	NextToken    string                     `json:"nextToken,omitempty"`
}
