package accounting

import (
	"fmt"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the effect of txn on the wallet balance:
// CREDIT -> Positive (+)
// DEBIT  -> Negative (-)
func SignedAmount(txn domain.WalletTransaction) (decimal.Decimal, error) {
	if !txn.Amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("transaction amount must be positive for transaction ID %s", txn.TransactionID)
	}
	switch txn.Direction {
	case domain.Credit:
		return txn.Amount, nil
	case domain.Debit:
		return txn.Amount.Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("unknown direction '%s' encountered for transaction ID %s", txn.Direction, txn.TransactionID)
}

// BalanceAfter returns balance with txn applied.
func BalanceAfter(balance decimal.Decimal, txn domain.WalletTransaction) (decimal.Decimal, error) {
	signed, err := SignedAmount(txn)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Add(signed), nil
}

// BalanceWithout returns balance with txn's effect removed.
func BalanceWithout(balance decimal.Decimal, txn domain.WalletTransaction) (decimal.Decimal, error) {
	signed, err := SignedAmount(txn)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Sub(signed), nil
}

// NetBalance sums the signed amounts of every transaction in the log.
func NetBalance(txns []domain.WalletTransaction) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range txns {
		signed, err := SignedAmount(txn)
		if err != nil {
			return decimal.Zero, fmt.Errorf("error calculating signed amount for transaction %s: %w", txn.TransactionID, err)
		}
		sum = sum.Add(signed)
	}
	return sum, nil
}
