package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoanMapping_NullableNationalID(t *testing.T) {
	loan := domain.LoanAccount{LoanID: "LRA-CUST-000001", Borrower: domain.Borrower{Name: "A"}}

	m := mapping.ToModelLoan(loan)
	assert.Nil(t, m.NationalID, "empty national ID must be stored as NULL so the unique index ignores it")

	loan.Borrower.NationalID = "123412341234"
	m = mapping.ToModelLoan(loan)
	if assert.NotNil(t, m.NationalID) {
		assert.Equal(t, "123412341234", *m.NationalID)
	}
}

func TestLoanMapping_ScheduleRowsCarryLoanID(t *testing.T) {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	loan := domain.LoanAccount{
		LoanID: "STL-CUST-000004",
		Schedule: []domain.ScheduleEntry{
			{Index: 0, DueDate: due, Amount: decimal.NewFromInt(100), Status: domain.EntryPending},
			{Index: 1, DueDate: due.AddDate(0, 0, 1), Amount: decimal.NewFromInt(100), Status: domain.EntryPending},
		},
	}

	rows := mapping.ToModelScheduleEntries(loan)
	assert.Len(t, rows, 2)
	for i, r := range rows {
		assert.Equal(t, "STL-CUST-000004", r.LoanID)
		assert.Equal(t, i, r.EntryIndex)
		assert.Equal(t, "pending", r.Status)
	}

	back := mapping.ToDomainLoan(mapping.ToModelLoan(loan), rows)
	assert.Equal(t, loan.Schedule, back.Schedule)
}

func TestPaymentMapping_EntryIndices(t *testing.T) {
	p := domain.PaymentRecord{PaymentID: "p1", Mode: domain.ModeAllOverdue, EntryIndices: []int{0, 1, 5}}
	m := mapping.ToModelPayment(p)
	assert.Equal(t, []int32{0, 1, 5}, m.EntryIndices)
	assert.Equal(t, []int{0, 1, 5}, mapping.ToDomainPayment(m).EntryIndices)
}
