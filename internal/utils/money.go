package utils

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a money amount with the stored precision.
// Example: 934 returns "934.00", 28.015 returns "28.02"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(domain.MoneyPlaces)
}

