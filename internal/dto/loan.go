package dto

import (
	"time"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to issue a new loan.
// Loan terms that a product does not use are ignored for that product.
type CreateLoanRequest struct {
	Product           string           `json:"product" validate:"required"`
	Name              string           `json:"name" validate:"required"`
	FatherName        string           `json:"fatherName" validate:"required"`
	Phone             string           `json:"phone" validate:"required,numeric,len=10"`
	Address           string           `json:"address" validate:"required"`
	NationalID        string           `json:"nationalId" validate:"omitempty,numeric,len=12"`
	EmploymentType    string           `json:"employmentType" validate:"required,oneof=salaried self-employed business other"`
	MonthlyIncome     *decimal.Decimal `json:"monthlyIncome" validate:"required"`
	GuarantorName     string           `json:"guarantorName" validate:"required"`
	GuarantorPhone    string           `json:"guarantorPhone" validate:"required,numeric,len=10"`
	GuarantorAddress  string           `json:"guarantorAddress" validate:"required"`
	LoanPurpose       string           `json:"loanPurpose" validate:"required"`
	Principal         *decimal.Decimal `json:"principal"`
	AnnualRate        *decimal.Decimal `json:"annualRate"`
	Tenure            *int             `json:"tenure"`
	Interval          string           `json:"interval"`
	InstallmentAmount *decimal.Decimal `json:"installmentAmount"`
}

// UpdateLoanRequest lists the fields that may be edited after creation.
// Financial fields are deliberately absent and are dropped if sent.
type UpdateLoanRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1"`
	FatherName       *string          `json:"fatherName" validate:"omitempty,min=1"`
	Phone            *string          `json:"phone" validate:"omitempty,numeric,len=10"`
	Address          *string          `json:"address" validate:"omitempty,min=1"`
	NationalID       *string          `json:"nationalId" validate:"omitempty,numeric,len=12"`
	EmploymentType   *string          `json:"employmentType" validate:"omitempty,oneof=salaried self-employed business other"`
	MonthlyIncome    *decimal.Decimal `json:"monthlyIncome"`
	GuarantorName    *string          `json:"guarantorName" validate:"omitempty,min=1"`
	GuarantorPhone   *string          `json:"guarantorPhone" validate:"omitempty,numeric,len=10"`
	GuarantorAddress *string          `json:"guarantorAddress" validate:"omitempty,min=1"`
	LoanPurpose      *string          `json:"loanPurpose" validate:"omitempty,min=1"`
}

// ToDetailsUpdate converts the request to a domain update.
func (r UpdateLoanRequest) ToDetailsUpdate() domain.LoanDetailsUpdate {
	u := domain.LoanDetailsUpdate{
		Name:             r.Name,
		FatherName:       r.FatherName,
		Phone:            r.Phone,
		Address:          r.Address,
		NationalID:       r.NationalID,
		MonthlyIncome:    r.MonthlyIncome,
		GuarantorName:    r.GuarantorName,
		GuarantorPhone:   r.GuarantorPhone,
		GuarantorAddress: r.GuarantorAddress,
		LoanPurpose:      r.LoanPurpose,
	}
	if r.EmploymentType != nil {
		et := domain.EmploymentType(*r.EmploymentType)
		u.EmploymentType = &et
	}
	return u
}

// PreviewScheduleRequest carries loan terms for a dry-run schedule.
type PreviewScheduleRequest struct {
	Product           string          `json:"product" binding:"required"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRate        decimal.Decimal `json:"annualRate"`
	Tenure            int             `json:"tenure"`
	Interval          string          `json:"interval"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Status  string `form:"status"`
	Product string `form:"product"`
}

// LoanResponse defines the data returned for a loan account.
type LoanResponse struct {
	LoanID            string                 `json:"loanId"`
	Product           domain.ProductVariant  `json:"product"`
	Borrower          domain.Borrower        `json:"borrower"`
	Principal         decimal.Decimal        `json:"principal"`
	AnnualRate        decimal.Decimal        `json:"annualRate"`
	Tenure            int                    `json:"tenure"`
	Interval          domain.PaymentInterval `json:"interval"`
	InstallmentAmount decimal.Decimal        `json:"installmentAmount"`
	TotalInterest     decimal.Decimal        `json:"totalInterest"`
	TotalPayable      decimal.Decimal        `json:"totalPayable"`
	TotalPaid         decimal.Decimal        `json:"totalPaid"`
	RemainingAmount   decimal.Decimal        `json:"remainingAmount"`
	Status            domain.LoanStatus      `json:"status"`
	PendingEntries    int                    `json:"pendingEntries"`
	Schedule          []domain.ScheduleEntry `json:"schedule,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	CreatedBy         string                 `json:"createdBy"`
	LastUpdatedAt     time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy     string                 `json:"lastUpdatedBy"`
}

// ToLoanResponse converts a domain.LoanAccount to LoanResponse. The schedule
// is included only when withSchedule is set.
func ToLoanResponse(l *domain.LoanAccount, withSchedule bool) LoanResponse {
	res := LoanResponse{
		LoanID:            l.LoanID,
		Product:           l.Parameters.Product,
		Borrower:          l.Borrower,
		Principal:         l.Parameters.Principal,
		AnnualRate:        l.Parameters.AnnualRate,
		Tenure:            l.Parameters.Tenure,
		Interval:          l.Parameters.Interval,
		InstallmentAmount: l.InstallmentAmount,
		TotalInterest:     l.TotalInterest,
		TotalPayable:      l.TotalPayable,
		TotalPaid:         l.TotalPaid,
		RemainingAmount:   l.RemainingAmount,
		Status:            l.Status,
		PendingEntries:    l.PendingCount(),
		CreatedAt:         l.CreatedAt,
		CreatedBy:         l.CreatedBy,
		LastUpdatedAt:     l.LastUpdatedAt,
		LastUpdatedBy:     l.LastUpdatedBy,
	}
	if withSchedule {
		res.Schedule = l.Schedule
	}
	return res
}

// ListLoansResponse wraps the list of loans.
type ListLoansResponse struct {
	Loans []LoanResponse `json:"loans"`
	Count int            `json:"count"`
}

// ToListLoansResponse converts a slice of loans without their schedules.
func ToListLoansResponse(loans []domain.LoanAccount) ListLoansResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i], false)
	}
	return ListLoansResponse{Loans: res, Count: len(res)}
}

// ScheduleResponse is the live view of a loan's installments.
type ScheduleResponse struct {
	LoanID  string                     `json:"loanId"`
	Entries []domain.ScheduleEntryView `json:"entries"`
}

// PreviewScheduleResponse is a generated but unsaved schedule.
type PreviewScheduleResponse struct {
	Parameters        domain.LoanParameters  `json:"parameters"`
	InstallmentAmount decimal.Decimal        `json:"installmentAmount"`
	LastInstallment   decimal.Decimal        `json:"lastInstallment"`
	TotalInterest     decimal.Decimal        `json:"totalInterest"`
	TotalPayable      decimal.Decimal        `json:"totalPayable"`
	Entries           []domain.ScheduleEntry `json:"entries"`
}

// ToPreviewScheduleResponse converts a plan.
func ToPreviewScheduleResponse(p *ledger.Plan) PreviewScheduleResponse {
	return PreviewScheduleResponse{
		Parameters:        p.Parameters,
		InstallmentAmount: p.InstallmentAmount,
		LastInstallment:   p.LastInstallment,
		TotalInterest:     p.TotalInterest,
		TotalPayable:      p.TotalPayable,
		Entries:           p.Entries,
	}
}
