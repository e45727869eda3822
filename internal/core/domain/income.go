package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeSource says where an extra income record came from.
type IncomeSource string

const (
	IncomeFileCharge    IncomeSource = "file_charge"
	IncomeProcessingFee IncomeSource = "processing_fee"
	IncomeInterest      IncomeSource = "interest"
	IncomeManual        IncomeSource = "manual"
)

// ExtraIncomeRecord is a non-principal inflow. Records are append-only.
type ExtraIncomeRecord struct {
	IncomeID      string          `json:"incomeId"`
	Amount        decimal.Decimal `json:"amount"`
	Source        IncomeSource    `json:"source"`
	LoanID        string          `json:"loanId,omitempty"`
	Description   string          `json:"description"`
	CorrelationID string          `json:"correlationId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy,omitempty"`
}
