package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func sampleLoan(id string, product domain.ProductVariant, phone string) domain.LoanAccount {
	return domain.LoanAccount{
		LoanID:     id,
		Borrower:   domain.Borrower{Name: "Test", Phone: phone},
		Parameters: domain.LoanParameters{Product: product},
		Status:     domain.LoanActive,
		Schedule: []domain.ScheduleEntry{
			{Index: 0, DueDate: t0.AddDate(0, 0, 1), Amount: decimal.NewFromInt(100), Status: domain.EntryPending},
			{Index: 1, DueDate: t0.AddDate(0, 0, 2), Amount: decimal.NewFromInt(100), Status: domain.EntryPending},
		},
		TotalPayable:    decimal.NewFromInt(200),
		TotalPaid:       decimal.Zero,
		RemainingAmount: decimal.NewFromInt(200),
	}
}

func TestStore_SaveLoanUniqueness(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveLoan(ctx, sampleLoan("STL-CUST-000001", domain.ProductFixedMicro, "9000000001")))

	var dup *apperrors.DuplicateError

	err := s.SaveLoan(ctx, sampleLoan("STL-CUST-000001", domain.ProductFixedMicro, "9000000002"))
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "loan_id", dup.Field)

	err = s.SaveLoan(ctx, sampleLoan("STL-CUST-000002", domain.ProductFixedMicro, "9000000001"))
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "phone", dup.Field)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// Same phone in another product namespace is allowed.
	assert.NoError(t, s.SaveLoan(ctx, sampleLoan("LRA-CUST-000001", domain.ProductVariable, "9000000001")))

	n, err := s.CountLoansByProduct(ctx, domain.ProductFixedMicro)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveLoan(ctx, sampleLoan("STL-CUST-000001", domain.ProductFixedMicro, "9000000001")))

	got, err := s.FindLoanByID(ctx, "STL-CUST-000001")
	require.NoError(t, err)
	got.Schedule[0].Status = domain.EntryPaid

	again, err := s.FindLoanByID(ctx, "STL-CUST-000001")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryPending, again.Schedule[0].Status)
}

func TestStore_ListLoansNewestFirstWithFilters(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveLoan(ctx, sampleLoan("STL-CUST-000001", domain.ProductFixedMicro, "9000000001")))
	closed := sampleLoan("STL-CUST-000002", domain.ProductFixedMicro, "9000000002")
	closed.Status = domain.LoanInactive
	require.NoError(t, s.SaveLoan(ctx, closed))
	require.NoError(t, s.SaveLoan(ctx, sampleLoan("LRA-CUST-000001", domain.ProductVariable, "9000000003")))

	all, err := s.ListLoans(ctx, domain.LoanFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "LRA-CUST-000001", all[0].LoanID)

	active, err := s.ListLoans(ctx, domain.LoanFilter{Status: domain.LoanActive, Product: domain.ProductFixedMicro})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "STL-CUST-000001", active[0].LoanID)
}

func TestStore_ApplyLoanPaymentRejectsSettledEntry(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	loan := sampleLoan("STL-CUST-000001", domain.ProductFixedMicro, "9000000001")
	require.NoError(t, s.SaveLoan(ctx, loan))

	paid := loan.Clone()
	paidAt := t0
	paid.Schedule[0].Status = domain.EntryPaid
	paid.Schedule[0].PaidDate = &paidAt
	paid.TotalPaid = decimal.NewFromInt(100)
	paid.RemainingAmount = decimal.NewFromInt(100)
	record := domain.PaymentRecord{PaymentID: "p1", LoanID: loan.LoanID, EntryIndices: []int{0}}

	require.NoError(t, s.ApplyLoanPayment(ctx, paid, []int{0}, record))
	err := s.ApplyLoanPayment(ctx, paid, []int{0}, record)
	assert.ErrorIs(t, err, apperrors.ErrEntryAlreadySettled)

	stored, err := s.FindLoanByID(ctx, loan.LoanID)
	require.NoError(t, err)
	assert.True(t, stored.TotalPaid.Equal(decimal.NewFromInt(100)))

	payments, err := s.ListPaymentsByLoan(ctx, loan.LoanID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestStore_WalletVersioning(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	w, err := s.GetOrCreateWallet(ctx)
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
	assert.Equal(t, int64(0), w.Version)

	txn := domain.WalletTransaction{TransactionID: "a", Direction: domain.Credit, Amount: decimal.NewFromInt(50), CreatedAt: t0}
	require.NoError(t, s.AppendTransaction(ctx, 0, decimal.NewFromInt(50), txn))

	err = s.AppendTransaction(ctx, 0, decimal.NewFromInt(60), domain.WalletTransaction{TransactionID: "b", CreatedAt: t0})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	w, err = s.GetOrCreateWallet(ctx)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, int64(1), w.Version)

	require.NoError(t, s.RemoveTransaction(ctx, 1, decimal.Zero, "a"))
	_, err = s.FindTransactionByID(ctx, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_ListTransactionsKeyset(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	ids := []string{"t1", "t2", "t3", "t4"}
	for i, id := range ids {
		dir := domain.Credit
		if i%2 == 1 {
			dir = domain.Debit
		}
		txn := domain.WalletTransaction{TransactionID: id, Direction: dir, Amount: decimal.NewFromInt(1), CreatedAt: t0.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, s.AppendTransaction(ctx, int64(i), decimal.NewFromInt(int64(i+1)), txn))
	}

	page, err := s.ListTransactions(ctx, domain.WalletTransactionFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "t4", page[0].TransactionID)
	assert.Equal(t, "t3", page[1].TransactionID)

	last := page[1]
	page, err = s.ListTransactions(ctx, domain.WalletTransactionFilter{
		Limit:  2,
		Before: &domain.WalletCursor{CreatedAt: last.CreatedAt, TransactionID: last.TransactionID},
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "t2", page[0].TransactionID)
	assert.Equal(t, "t1", page[1].TransactionID)

	debits, err := s.ListTransactions(ctx, domain.WalletTransactionFilter{Direction: domain.Debit})
	require.NoError(t, err)
	assert.Len(t, debits, 2)
}

func TestStore_IncomeFilteredNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveIncome(ctx, domain.ExtraIncomeRecord{IncomeID: "i1", LoanID: "L1"}))
	require.NoError(t, s.SaveIncome(ctx, domain.ExtraIncomeRecord{IncomeID: "i2"}))
	require.NoError(t, s.SaveIncome(ctx, domain.ExtraIncomeRecord{IncomeID: "i3", LoanID: "L1"}))

	all, err := s.ListIncome(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "i3", all[0].IncomeID)

	l1, err := s.ListIncome(ctx, "L1")
	require.NoError(t, err)
	assert.Len(t, l1, 2)
}
