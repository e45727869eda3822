package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoan(t *testing.T, engine *ledger.Engine, p domain.LoanParameters, start time.Time) domain.LoanAccount {
	t.Helper()
	plan, err := engine.Schedule(p, start)
	require.NoError(t, err)
	return ledger.NewLoanAccount("TEST-CUST-000001", domain.Borrower{Name: "Test"}, plan, start, "tester")
}

func variableLoan(t *testing.T, engine *ledger.Engine, start time.Time) domain.LoanAccount {
	return newLoan(t, engine, domain.LoanParameters{
		Product: domain.ProductVariable, Principal: dec("10000"), AnnualRate: dec("12"), Tenure: 12,
	}, start)
}

func fixedLoan(t *testing.T, engine *ledger.Engine, start time.Time) domain.LoanAccount {
	return newLoan(t, engine, domain.LoanParameters{
		Product: domain.ProductFixedMicro, Principal: dec("10000"), InstallmentAmount: dec("100"), Interval: domain.IntervalDaily,
	}, start)
}

func assertTotalsConsistent(t *testing.T, loan domain.LoanAccount) {
	t.Helper()
	assert.False(t, loan.RemainingAmount.IsNegative(), "remaining %s", loan.RemainingAmount)
	if loan.Status == domain.LoanActive {
		assert.True(t, loan.RemainingAmount.Equal(loan.TotalPayable.Sub(loan.TotalPaid)),
			"remaining %s != payable %s - paid %s", loan.RemainingAmount, loan.TotalPayable, loan.TotalPaid)
	} else {
		assert.True(t, loan.RemainingAmount.IsZero())
	}
}

func TestApply_SingleEMI_FixedMicroExcludesOverdueInterest(t *testing.T) {
	engine := ledger.NewEngine()
	// entry 0 falls due ten days before now
	loan := fixedLoan(t, engine, now.AddDate(0, 0, -11))

	out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0}, now)
	require.NoError(t, err)

	assert.True(t, dec("130").Equal(out.CashCollected), out.CashCollected.String())
	assert.True(t, dec("30").Equal(out.OverdueInterest))
	assert.True(t, dec("30").Equal(out.InterestCollected))
	assert.True(t, dec("100").Equal(out.CountedTowardPaid))
	assert.Equal(t, []int{0}, out.SettledIndices)

	entry := loan.Schedule[0]
	assert.Equal(t, domain.EntryPaid, entry.Status)
	require.NotNil(t, entry.PaidDate)
	assert.Equal(t, now, *entry.PaidDate)
	assert.True(t, dec("30").Equal(entry.OverdueInterest))

	assert.True(t, dec("100").Equal(loan.TotalPaid))
	assert.True(t, dec("9900").Equal(loan.RemainingAmount))
	assert.Equal(t, domain.LoanActive, loan.Status)
	assertTotalsConsistent(t, loan)
}

func TestApply_SingleEMI_VariableCountsOverdueInterest(t *testing.T) {
	engine := ledger.NewEngine()
	loan := variableLoan(t, engine, now.AddDate(0, -2, 0))
	loan.Schedule[0].DueDate = now.AddDate(0, 0, -10)

	out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0}, now)
	require.NoError(t, err)

	// 934 x 0.03 x 10
	assert.True(t, dec("280.2").Equal(out.OverdueInterest), out.OverdueInterest.String())
	assert.True(t, dec("1214.2").Equal(out.CashCollected))
	assert.True(t, dec("380.2").Equal(out.InterestCollected))
	assert.True(t, dec("1214.2").Equal(out.CountedTowardPaid))
	assert.True(t, dec("9985.8").Equal(loan.RemainingAmount), loan.RemainingAmount.String())
	assertTotalsConsistent(t, loan)
}

func TestApply_SingleEMI_NotYetDue(t *testing.T) {
	engine := ledger.NewEngine()
	loan := variableLoan(t, engine, now)

	out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 3, Amount: dec("1000")}, now)
	require.NoError(t, err)

	assert.True(t, dec("934").Equal(out.CashCollected))
	assert.True(t, dec("100").Equal(out.InterestCollected))
	assert.True(t, loan.Schedule[3].OverdueInterest.IsZero())
	assert.True(t, dec("10266").Equal(loan.RemainingAmount))
}

func TestApply_SingleEMI_Errors(t *testing.T) {
	engine := ledger.NewEngine()
	base := fixedLoan(t, engine, now.AddDate(0, 0, -11))
	paidAt := now.AddDate(0, 0, -1)
	base.Schedule[1].Status = domain.EntryPaid
	base.Schedule[1].PaidDate = &paidAt

	tests := []struct {
		name   string
		req    ledger.PaymentRequest
		target error
	}{
		{"index past end", ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 100}, apperrors.ErrIndexOutOfRange},
		{"negative index", ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: -1}, apperrors.ErrIndexOutOfRange},
		{"already paid", ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 1}, apperrors.ErrEntryAlreadySettled},
		{"short amount", ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0, Amount: dec("120")}, apperrors.ErrInsufficientPayment},
		{"negative amount", ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0, Amount: dec("-1")}, apperrors.ErrInvalidParameters},
		{"unknown mode", ledger.PaymentRequest{Mode: "PARTIAL"}, apperrors.ErrInvalidParameters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := base.Clone()
			_, err := engine.Apply(&loan, tt.req, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, base, loan, "loan must be unchanged on error")
		})
	}
}

func TestApply_AllOverdue(t *testing.T) {
	engine := ledger.NewEngine()
	// entries 0..3 are 4,3,2,1 days late; entry 4 is due exactly now
	start := now.AddDate(0, 0, -5)

	t.Run("shortfall is reported exactly", func(t *testing.T) {
		loan := fixedLoan(t, engine, start)
		_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeAllOverdue, Amount: dec("400")}, now)
		require.Error(t, err)

		var short *apperrors.InsufficientPaymentError
		require.True(t, errors.As(err, &short))
		assert.True(t, dec("430").Equal(short.Required), short.Required.String())
		assert.True(t, dec("30").Equal(short.Shortfall))
		assert.Equal(t, 100, loan.PendingCount())
	})

	t.Run("excess is collected and reduces the balance", func(t *testing.T) {
		loan := fixedLoan(t, engine, start)
		out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeAllOverdue, Amount: dec("500")}, now)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2, 3}, out.SettledIndices)
		assert.True(t, dec("500").Equal(out.CashCollected))
		assert.True(t, dec("70").Equal(out.Excess))
		assert.True(t, dec("30").Equal(out.InterestCollected))
		// 400 scheduled plus the 70 excess; the 30 penalty goes to income only
		assert.True(t, dec("470").Equal(out.CountedTowardPaid))
		assert.True(t, dec("9530").Equal(loan.RemainingAmount))
		assert.True(t, dec("12").Equal(loan.Schedule[0].OverdueInterest))
		assert.True(t, dec("3").Equal(loan.Schedule[3].OverdueInterest))
		assert.Equal(t, domain.EntryPending, loan.Schedule[4].Status)
		assertTotalsConsistent(t, loan)
	})

	t.Run("exact amount leaves no excess", func(t *testing.T) {
		loan := fixedLoan(t, engine, start)
		out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeAllOverdue, Amount: dec("430")}, now)
		require.NoError(t, err)

		assert.True(t, out.Excess.IsZero())
		assert.True(t, dec("400").Equal(out.CountedTowardPaid))
		assert.True(t, dec("9600").Equal(loan.RemainingAmount))
	})

	t.Run("variable loan counts penalty and excess", func(t *testing.T) {
		loan := variableLoan(t, engine, now.AddDate(0, 0, -2).AddDate(0, -1, 0))
		out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeAllOverdue, Amount: dec("1000")}, now)
		require.NoError(t, err)

		require.Equal(t, []int{0}, out.SettledIndices)
		// 934 due two days ago: penalty 934 x 0.03 x 2 = 56.04
		assert.True(t, dec("56.04").Equal(out.OverdueInterest), out.OverdueInterest.String())
		assert.True(t, dec("9.96").Equal(out.Excess), out.Excess.String())
		assert.True(t, dec("1000").Equal(out.CountedTowardPaid))
		assert.True(t, dec("10200").Equal(loan.RemainingAmount))
		assertTotalsConsistent(t, loan)
	})

	t.Run("nothing overdue", func(t *testing.T) {
		loan := fixedLoan(t, engine, now)
		_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeAllOverdue, Amount: dec("500")}, now)
		assert.ErrorIs(t, err, apperrors.ErrNoOverdueEntries)
	})
}

func TestApply_FullSettlement(t *testing.T) {
	engine := ledger.NewEngine()

	t.Run("drives remaining to zero and ignores excess", func(t *testing.T) {
		loan := fixedLoan(t, engine, now.AddDate(0, 0, -5))
		_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0}, now)
		require.NoError(t, err)

		out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeFullSettlement, Amount: dec("20000")}, now)
		require.NoError(t, err)

		assert.True(t, dec("9900").Equal(out.CashCollected))
		assert.True(t, out.OverdueInterest.IsZero())
		assert.Len(t, out.SettledIndices, 99)
		assert.True(t, loan.RemainingAmount.IsZero())
		assert.Equal(t, domain.LoanInactive, loan.Status)
		assert.True(t, dec("10000").Equal(loan.TotalPaid))
		assert.Equal(t, 0, loan.PendingCount())
		// entry 1 was three days late at settlement time but carries no penalty
		assert.True(t, loan.Schedule[1].OverdueInterest.IsZero())
		assert.True(t, dec("12").Equal(loan.Schedule[0].OverdueInterest))
	})

	t.Run("collects scheduled interest of pending entries", func(t *testing.T) {
		loan := variableLoan(t, engine, now)
		out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeFullSettlement, Amount: dec("11200")}, now)
		require.NoError(t, err)
		assert.True(t, dec("1200").Equal(out.InterestCollected))
		assert.Equal(t, domain.LoanInactive, loan.Status)
	})

	t.Run("short amount", func(t *testing.T) {
		loan := variableLoan(t, engine, now)
		_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeFullSettlement, Amount: dec("11199")}, now)
		var short *apperrors.InsufficientPaymentError
		require.ErrorAs(t, err, &short)
		assert.True(t, dec("1").Equal(short.Shortfall))
	})

	t.Run("closed loan rejects further payments", func(t *testing.T) {
		loan := variableLoan(t, engine, now)
		_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeFullSettlement, Amount: dec("11200")}, now)
		require.NoError(t, err)
		_, err = engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0}, now)
		assert.ErrorIs(t, err, apperrors.ErrEntryAlreadySettled)
	})
}

func TestApply_PayingEveryInstallmentClosesLoan(t *testing.T) {
	engine := ledger.NewEngine()
	for _, loan := range []domain.LoanAccount{
		variableLoan(t, engine, now),
		fixedLoan(t, engine, now),
	} {
		loan := loan
		for i := range loan.Schedule {
			_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: i}, now)
			require.NoError(t, err)
			assertTotalsConsistent(t, loan)
		}
		assert.Equal(t, domain.LoanInactive, loan.Status, loan.Parameters.Product)
		assert.True(t, loan.TotalPaid.Equal(loan.TotalPayable))
	}
}

func TestApply_VariableClampsOverpaymentFromPenalties(t *testing.T) {
	engine := ledger.NewEngine()
	loan := newLoan(t, engine, domain.LoanParameters{
		Product: domain.ProductVariable, Principal: dec("1000"), AnnualRate: decimal.Zero, Tenure: 2,
	}, now)
	loan.Schedule[0].DueDate = now.AddDate(0, 0, -10)

	_, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0}, now)
	require.NoError(t, err)
	assert.True(t, dec("350").Equal(loan.RemainingAmount), loan.RemainingAmount.String())

	_, err = engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanInactive, loan.Status)
	assert.True(t, loan.RemainingAmount.IsZero())
	assert.True(t, dec("1150").Equal(loan.TotalPaid))
}

func TestApply_VariablePenaltiesCanCloseLoanWithPendingEntries(t *testing.T) {
	engine := ledger.NewEngine()
	// entry 0 fell due 400 days ago
	loan := variableLoan(t, engine, now.AddDate(0, 0, -400).AddDate(0, -1, 0))

	out, err := engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 0}, now)
	require.NoError(t, err)

	// 934 x 0.03 x 400 = 11208 penalty, all of it counted for VARIABLE loans
	assert.True(t, dec("11208").Equal(out.OverdueInterest), out.OverdueInterest.String())
	assert.True(t, dec("12142").Equal(out.CountedTowardPaid))
	assert.Equal(t, domain.LoanInactive, loan.Status)
	assert.True(t, loan.RemainingAmount.IsZero())
	assert.Equal(t, 11, loan.PendingCount())
	assertTotalsConsistent(t, loan)

	// The remaining entries stay pending and can no longer be settled.
	_, err = engine.Apply(&loan, ledger.PaymentRequest{Mode: domain.ModeSingleEMI, EntryIndex: 1}, now)
	assert.ErrorIs(t, err, apperrors.ErrEntryAlreadySettled)
	assert.Equal(t, domain.EntryPending, loan.Schedule[1].Status)
}
