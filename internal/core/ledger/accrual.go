package ledger

import (
	"time"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// IsOverdue reports whether a pending entry's due date has passed.
func IsOverdue(entry domain.ScheduleEntry, asOf time.Time) bool {
	return entry.IsPending() && entry.DueDate.Before(asOf)
}

// DaysOverdue counts whole days since the due date, zero unless overdue.
func DaysOverdue(entry domain.ScheduleEntry, asOf time.Time) int {
	if !IsOverdue(entry, asOf) {
		return 0
	}
	return int(asOf.Sub(entry.DueDate) / day)
}

// Accrue returns the penalty owed on entry as of asOf: amount x daily rate x
// whole days overdue. There is no cap.
func (e *Engine) Accrue(entry domain.ScheduleEntry, asOf time.Time) decimal.Decimal {
	days := DaysOverdue(entry, asOf)
	if days == 0 {
		return decimal.Zero
	}
	return entry.Amount.Mul(e.overdueDailyRate).Mul(decimal.NewFromInt(int64(days))).Round(domain.MoneyPlaces)
}

// View renders every entry of loan with live overdue figures.
func (e *Engine) View(loan domain.LoanAccount, asOf time.Time) []domain.ScheduleEntryView {
	views := make([]domain.ScheduleEntryView, len(loan.Schedule))
	for i, entry := range loan.Schedule {
		accrued := e.Accrue(entry, asOf)
		due := decimal.Zero
		if entry.IsPending() {
			due = entry.Amount.Add(accrued)
		}
		views[i] = domain.ScheduleEntryView{
			ScheduleEntry:  entry.Clone(),
			IsOverdue:      IsOverdue(entry, asOf),
			DaysOverdue:    DaysOverdue(entry, asOf),
			AccruedPenalty: accrued,
			TotalDue:       due,
		}
	}
	return views
}
