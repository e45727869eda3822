package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant selects the loan product an account was issued under.
type ProductVariant string

const (
	// ProductVariable is the disbursement-plus-interest product with monthly EMIs.
	ProductVariable ProductVariant = "VARIABLE"
	// ProductFixedMicro is the interest-free micro loan repaid in fixed installments.
	ProductFixedMicro ProductVariant = "FIXED_MICRO"
)

// IDPrefix returns the namespace prefix used in customer identifiers.
func (p ProductVariant) IDPrefix() string {
	switch p {
	case ProductVariable:
		return "LRA"
	case ProductFixedMicro:
		return "STL"
	}
	return string(p)
}

// Valid reports whether p is a known product.
func (p ProductVariant) Valid() bool {
	return p == ProductVariable || p == ProductFixedMicro
}

// ParseProductVariant accepts the product tag in any case.
func ParseProductVariant(s string) (ProductVariant, error) {
	p := ProductVariant(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown product variant %q", s)
	}
	return p, nil
}

// PaymentInterval is the spacing between consecutive due dates.
type PaymentInterval string

const (
	IntervalDaily   PaymentInterval = "daily"
	IntervalWeekly  PaymentInterval = "weekly"
	IntervalMonthly PaymentInterval = "monthly"
)

// Valid reports whether i is a supported interval.
func (i PaymentInterval) Valid() bool {
	return i == IntervalDaily || i == IntervalWeekly || i == IntervalMonthly
}

// Advance returns t moved forward by n intervals.
func (i PaymentInterval) Advance(t time.Time, n int) time.Time {
	switch i {
	case IntervalDaily:
		return t.AddDate(0, 0, n)
	case IntervalWeekly:
		return t.AddDate(0, 0, 7*n)
	default:
		return t.AddDate(0, n, 0)
	}
}

// LoanStatus is active while money is still owed.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanInactive LoanStatus = "inactive"
)

// EmploymentType classifies the borrower's income source.
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self-employed"
	EmploymentBusiness     EmploymentType = "business"
	EmploymentOther        EmploymentType = "other"
)

// LoanParameters are fixed when the loan is created.
type LoanParameters struct {
	Product           ProductVariant  `json:"product"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRate        decimal.Decimal `json:"annualRate"`
	Tenure            int             `json:"tenure"`
	Interval          PaymentInterval `json:"interval"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
}

// Borrower holds the non-financial profile attached to a loan account.
type Borrower struct {
	Name             string          `json:"name"`
	FatherName       string          `json:"fatherName"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	NationalID       string          `json:"nationalId"`
	EmploymentType   EmploymentType  `json:"employmentType"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome"`
	GuarantorName    string          `json:"guarantorName"`
	GuarantorPhone   string          `json:"guarantorPhone"`
	GuarantorAddress string          `json:"guarantorAddress"`
	LoanPurpose      string          `json:"loanPurpose"`
}

// LoanAccount is a borrower's loan together with its schedule and running totals.
// RemainingAmount always equals TotalPayable minus TotalPaid while the loan is active.
type LoanAccount struct {
	LoanID            string          `json:"loanId"`
	Borrower          Borrower        `json:"borrower"`
	Parameters        LoanParameters  `json:"parameters"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	TotalPayable      decimal.Decimal `json:"totalPayable"`
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	RemainingAmount   decimal.Decimal `json:"remainingAmount"`
	Status            LoanStatus      `json:"status"`
	Schedule          []ScheduleEntry `json:"schedule"`
	AuditFields
}

// Clone returns a copy whose schedule can be mutated independently.
func (l LoanAccount) Clone() LoanAccount {
	c := l
	c.Schedule = make([]ScheduleEntry, len(l.Schedule))
	for i, e := range l.Schedule {
		c.Schedule[i] = e.Clone()
	}
	return c
}

// PendingCount returns how many entries are still unpaid.
func (l LoanAccount) PendingCount() int {
	n := 0
	for _, e := range l.Schedule {
		if e.Status == EntryPending {
			n++
		}
	}
	return n
}

// LoanFilter narrows ListLoans. Empty fields do not filter.
type LoanFilter struct {
	Status  LoanStatus
	Product ProductVariant
}

// LoanDetailsUpdate carries the editable, non-financial fields of a loan.
// Nil pointers leave the stored value unchanged.
type LoanDetailsUpdate struct {
	Name             *string
	FatherName       *string
	Phone            *string
	Address          *string
	NationalID       *string
	EmploymentType   *EmploymentType
	MonthlyIncome    *decimal.Decimal
	GuarantorName    *string
	GuarantorPhone   *string
	GuarantorAddress *string
	LoanPurpose      *string
}

// Apply copies every set field onto b.
func (u LoanDetailsUpdate) Apply(b *Borrower) {
	setString(&b.Name, u.Name)
	setString(&b.FatherName, u.FatherName)
	setString(&b.Phone, u.Phone)
	setString(&b.Address, u.Address)
	setString(&b.NationalID, u.NationalID)
	if u.EmploymentType != nil {
		b.EmploymentType = *u.EmploymentType
	}
	if u.MonthlyIncome != nil {
		b.MonthlyIncome = *u.MonthlyIncome
	}
	setString(&b.GuarantorName, u.GuarantorName)
	setString(&b.GuarantorPhone, u.GuarantorPhone)
	setString(&b.GuarantorAddress, u.GuarantorAddress)
	setString(&b.LoanPurpose, u.LoanPurpose)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
