package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioStats is a point-in-time summary over loan accounts.
type PortfolioStats struct {
	Product              ProductVariant  `json:"product,omitempty"`
	AsOf                 time.Time       `json:"asOf"`
	TotalAccounts        int             `json:"totalAccounts"`
	ActiveAccounts       int             `json:"activeAccounts"`
	InactiveAccounts     int             `json:"inactiveAccounts"`
	OverdueAccounts      int             `json:"overdueAccounts"`
	TotalLoanAmount      decimal.Decimal `json:"totalLoanAmount"`
	TotalPayable         decimal.Decimal `json:"totalPayable"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`
	TotalRemaining       decimal.Decimal `json:"totalRemaining"`
	TotalOverdueAmount   decimal.Decimal `json:"totalOverdueAmount"`
	TotalOverdueInterest decimal.Decimal `json:"totalOverdueInterest"`
}

// OverdueSummary describes one active account with past-due installments.
type OverdueSummary struct {
	LoanID          string          `json:"loanId"`
	Product         ProductVariant  `json:"product"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	OverdueEntries  int             `json:"overdueEntries"`
	OverdueAmount   decimal.Decimal `json:"overdueAmount"`
	OverdueInterest decimal.Decimal `json:"overdueInterest"`
	OldestDueDate   time.Time       `json:"oldestDueDate"`
}
