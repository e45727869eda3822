package mapping

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/models"
)

// ToDomainWallet converts a wallet row
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:  m.WalletID,
		Balance:   m.Balance,
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelWalletTransaction converts a wallet transaction for storage
func ToModelWalletTransaction(d domain.WalletTransaction) models.WalletTransaction {
	return models.WalletTransaction{
		TransactionID: d.TransactionID,
		WalletID:      domain.MainWalletID,
		Direction:     string(d.Direction),
		Amount:        d.Amount,
		Description:   d.Description,
		LoanID:        nullableString(d.LoanID),
		CorrelationID: nullableString(d.CorrelationID),
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainWalletTransaction converts a wallet transaction row
func ToDomainWalletTransaction(m models.WalletTransaction) domain.WalletTransaction {
	return domain.WalletTransaction{
		TransactionID: m.TransactionID,
		Direction:     domain.Direction(m.Direction),
		Amount:        m.Amount,
		Description:   m.Description,
		LoanID:        stringValue(m.LoanID),
		CorrelationID: stringValue(m.CorrelationID),
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToModelExtraIncome converts an income record for storage
func ToModelExtraIncome(d domain.ExtraIncomeRecord) models.ExtraIncome {
	return models.ExtraIncome{
		IncomeID:      d.IncomeID,
		Amount:        d.Amount,
		Source:        string(d.Source),
		LoanID:        nullableString(d.LoanID),
		Description:   d.Description,
		CorrelationID: nullableString(d.CorrelationID),
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainExtraIncome converts an income row
func ToDomainExtraIncome(m models.ExtraIncome) domain.ExtraIncomeRecord {
	return domain.ExtraIncomeRecord{
		IncomeID:      m.IncomeID,
		Amount:        m.Amount,
		Source:        domain.IncomeSource(m.Source),
		LoanID:        stringValue(m.LoanID),
		Description:   m.Description,
		CorrelationID: stringValue(m.CorrelationID),
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
