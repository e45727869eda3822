package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus tracks whether an installment has been collected.
type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntryPaid    EntryStatus = "paid"
)

// ScheduleEntry is one installment of a loan schedule. Only Status, PaidDate
// and OverdueInterest change after the schedule is generated.
type ScheduleEntry struct {
	Index           int             `json:"index"`
	DueDate         time.Time       `json:"dueDate"`
	Amount          decimal.Decimal `json:"amount"`
	Principal       decimal.Decimal `json:"principal"`
	Interest        decimal.Decimal `json:"interest"`
	Status          EntryStatus     `json:"status"`
	PaidDate        *time.Time      `json:"paidDate,omitempty"`
	OverdueInterest decimal.Decimal `json:"overdueInterest"`
}

// Clone copies the entry including its paid date.
func (e ScheduleEntry) Clone() ScheduleEntry {
	c := e
	if e.PaidDate != nil {
		t := *e.PaidDate
		c.PaidDate = &t
	}
	return c
}

// IsPending reports whether the entry is still owed.
func (e ScheduleEntry) IsPending() bool {
	return e.Status == EntryPending
}

// ScheduleEntryView is an entry as seen at a point in time, with any overdue
// penalty computed fresh.
type ScheduleEntryView struct {
	ScheduleEntry
	IsOverdue      bool            `json:"isOverdue"`
	DaysOverdue    int             `json:"daysOverdue"`
	AccruedPenalty decimal.Decimal `json:"accruedPenalty"`
	TotalDue       decimal.Decimal `json:"totalDue"`
}
