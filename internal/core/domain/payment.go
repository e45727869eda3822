package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode selects which installments a payment settles.
type PaymentMode string

const (
	ModeSingleEMI      PaymentMode = "SINGLE_EMI"
	ModeAllOverdue     PaymentMode = "ALL_OVERDUE"
	ModeFullSettlement PaymentMode = "FULL_SETTLEMENT"
)

// ParsePaymentMode accepts the canonical names as well as the short emi/overdue/full aliases.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single_emi", "emi":
		return ModeSingleEMI, nil
	case "all_overdue", "overdue":
		return ModeAllOverdue, nil
	case "full_settlement", "full":
		return ModeFullSettlement, nil
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}

// PaymentRecord is the persisted history of one applied payment.
type PaymentRecord struct {
	PaymentID         string          `json:"paymentId"`
	LoanID            string          `json:"loanId"`
	Mode              PaymentMode     `json:"mode"`
	EntryIndices      []int           `json:"entryIndices"`
	Amount            decimal.Decimal `json:"amount"`
	CountedTowardPaid decimal.Decimal `json:"countedTowardPaid"`
	InterestCollected decimal.Decimal `json:"interestCollected"`
	OverdueInterest   decimal.Decimal `json:"overdueInterest"`
	CorrelationID     string          `json:"correlationId"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy,omitempty"`
}

// PaymentReceipt is what a caller gets back after a payment is applied.
type PaymentReceipt struct {
	Payment PaymentRecord `json:"payment"`
	Loan    LoanAccount   `json:"loan"`
}
