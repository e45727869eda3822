package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a row of the loans table.
type Loan struct {
	LoanID            string          `db:"loan_id"`
	Product           string          `db:"product"`
	Name              string          `db:"name"`
	FatherName        string          `db:"father_name"`
	Phone             string          `db:"phone"`
	Address           string          `db:"address"`
	NationalID        *string         `db:"national_id"` // Nullable, unique per product when set
	EmploymentType    string          `db:"employment_type"`
	MonthlyIncome     decimal.Decimal `db:"monthly_income"`
	GuarantorName     string          `db:"guarantor_name"`
	GuarantorPhone    string          `db:"guarantor_phone"`
	GuarantorAddress  string          `db:"guarantor_address"`
	LoanPurpose       string          `db:"loan_purpose"`
	Principal         decimal.Decimal `db:"principal"`
	AnnualRate        decimal.Decimal `db:"annual_rate"`
	Tenure            int             `db:"tenure"`
	PaymentInterval   string          `db:"payment_interval"`
	InstallmentAmount decimal.Decimal `db:"installment_amount"`
	TotalInterest     decimal.Decimal `db:"total_interest"`
	TotalPayable      decimal.Decimal `db:"total_payable"`
	TotalPaid         decimal.Decimal `db:"total_paid"`
	RemainingAmount   decimal.Decimal `db:"remaining_amount"`
	Status            string          `db:"status"`
	AuditFields
}

// ScheduleEntry is a row of the schedule_entries table.
type ScheduleEntry struct {
	LoanID          string          `db:"loan_id"`
	EntryIndex      int             `db:"entry_index"`
	DueDate         time.Time       `db:"due_date"`
	Amount          decimal.Decimal `db:"amount"`
	Principal       decimal.Decimal `db:"principal"`
	Interest        decimal.Decimal `db:"interest"`
	Status          string          `db:"status"`
	PaidDate        *time.Time      `db:"paid_date"`
	OverdueInterest decimal.Decimal `db:"overdue_interest"`
}

// Payment is a row of the payments table.
type Payment struct {
	PaymentID         string          `db:"payment_id"`
	LoanID            string          `db:"loan_id"`
	Mode              string          `db:"mode"`
	EntryIndices      []int32         `db:"entry_indices"`
	Amount            decimal.Decimal `db:"amount"`
	CountedTowardPaid decimal.Decimal `db:"counted_toward_paid"`
	InterestCollected decimal.Decimal `db:"interest_collected"`
	OverdueInterest   decimal.Decimal `db:"overdue_interest"`
	CorrelationID     string          `db:"correlation_id"`
	CreatedAt         time.Time       `db:"created_at"`
	CreatedBy         string          `db:"created_by"`
}
