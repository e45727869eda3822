package ledger

import (
	"sort"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Exposure is the past-due position of a single loan.
type Exposure struct {
	Entries       int
	Amount        decimal.Decimal
	Interest      decimal.Decimal
	OldestDueDate time.Time
}

// Exposure sums scheduled amount and live accrual over every overdue entry of loan.
func (e *Engine) Exposure(loan domain.LoanAccount, asOf time.Time) Exposure {
	x := Exposure{Amount: decimal.Zero, Interest: decimal.Zero}
	for _, entry := range loan.Schedule {
		if !IsOverdue(entry, asOf) {
			continue
		}
		accrued := e.Accrue(entry, asOf)
		if x.Entries == 0 || entry.DueDate.Before(x.OldestDueDate) {
			x.OldestDueDate = entry.DueDate
		}
		x.Entries++
		x.Amount = x.Amount.Add(entry.Amount).Add(accrued)
		x.Interest = x.Interest.Add(accrued)
	}
	return x
}

// Summarize reduces loans to portfolio statistics. Overdue figures only
// consider active accounts.
func (e *Engine) Summarize(loans []domain.LoanAccount, asOf time.Time) domain.PortfolioStats {
	stats := domain.PortfolioStats{
		AsOf:                 asOf,
		TotalLoanAmount:      decimal.Zero,
		TotalPayable:         decimal.Zero,
		TotalPaid:            decimal.Zero,
		TotalRemaining:       decimal.Zero,
		TotalOverdueAmount:   decimal.Zero,
		TotalOverdueInterest: decimal.Zero,
	}
	for _, loan := range loans {
		stats.TotalAccounts++
		stats.TotalLoanAmount = stats.TotalLoanAmount.Add(loan.Parameters.Principal)
		stats.TotalPayable = stats.TotalPayable.Add(loan.TotalPayable)
		stats.TotalPaid = stats.TotalPaid.Add(loan.TotalPaid)
		stats.TotalRemaining = stats.TotalRemaining.Add(loan.RemainingAmount)

		if loan.Status != domain.LoanActive {
			stats.InactiveAccounts++
			continue
		}
		stats.ActiveAccounts++
		x := e.Exposure(loan, asOf)
		if x.Entries > 0 {
			stats.OverdueAccounts++
			stats.TotalOverdueAmount = stats.TotalOverdueAmount.Add(x.Amount)
			stats.TotalOverdueInterest = stats.TotalOverdueInterest.Add(x.Interest)
		}
	}
	return stats
}

// OverdueSummaries lists active loans with overdue entries, oldest arrears
// first, along with the grand total owed on them.
func (e *Engine) OverdueSummaries(loans []domain.LoanAccount, asOf time.Time) ([]domain.OverdueSummary, decimal.Decimal) {
	total := decimal.Zero
	out := make([]domain.OverdueSummary, 0)
	for _, loan := range loans {
		if loan.Status != domain.LoanActive {
			continue
		}
		x := e.Exposure(loan, asOf)
		if x.Entries == 0 {
			continue
		}
		total = total.Add(x.Amount)
		out = append(out, domain.OverdueSummary{
			LoanID:          loan.LoanID,
			Product:         loan.Parameters.Product,
			Name:            loan.Borrower.Name,
			Phone:           loan.Borrower.Phone,
			OverdueEntries:  x.Entries,
			OverdueAmount:   x.Amount,
			OverdueInterest: x.Interest,
			OldestDueDate:   x.OldestDueDate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OldestDueDate.Equal(out[j].OldestDueDate) {
			return out[i].OldestDueDate.Before(out[j].OldestDueDate)
		}
		return out[i].LoanID < out[j].LoanID
	})
	return out, total
}
