package ledger_test

import (
	"testing"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sumEntries(entries []domain.ScheduleEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func TestSchedule_VariableReferenceExample(t *testing.T) {
	engine := ledger.NewEngine()
	plan, err := engine.Schedule(domain.LoanParameters{
		Product:    domain.ProductVariable,
		Principal:  dec("10000"),
		AnnualRate: dec("12"),
		Tenure:     12,
	}, created)
	require.NoError(t, err)

	assert.True(t, dec("1200").Equal(plan.TotalInterest), plan.TotalInterest.String())
	assert.True(t, dec("11200").Equal(plan.TotalPayable), plan.TotalPayable.String())
	assert.True(t, dec("934").Equal(plan.InstallmentAmount), plan.InstallmentAmount.String())
	assert.True(t, dec("926").Equal(plan.LastInstallment), plan.LastInstallment.String())
	assert.Equal(t, domain.IntervalMonthly, plan.Parameters.Interval)

	require.Len(t, plan.Entries, 12)
	for i, e := range plan.Entries {
		assert.Equal(t, i, e.Index)
		assert.Equal(t, domain.EntryPending, e.Status)
		assert.Nil(t, e.PaidDate)
		assert.Equal(t, created.AddDate(0, i+1, 0), e.DueDate)
		assert.True(t, dec("833.33").Equal(e.Principal), e.Principal.String())
		assert.True(t, dec("100").Equal(e.Interest), e.Interest.String())
	}
	assert.True(t, dec("934").Equal(plan.Entries[0].Amount))
	assert.True(t, dec("926").Equal(plan.Entries[11].Amount))
	assert.True(t, plan.TotalPayable.Equal(sumEntries(plan.Entries)))
}

func TestSchedule_SumEqualsTotalPayable(t *testing.T) {
	engine := ledger.NewEngine()
	cases := []domain.LoanParameters{
		{Product: domain.ProductVariable, Principal: dec("1000"), AnnualRate: dec("10"), Tenure: 7},
		{Product: domain.ProductVariable, Principal: dec("25000.50"), AnnualRate: dec("18.5"), Tenure: 24},
		{Product: domain.ProductVariable, Principal: dec("5000"), AnnualRate: dec("0"), Tenure: 3},
		{Product: domain.ProductVariable, Principal: dec("999"), AnnualRate: dec("7"), Tenure: 1},
		{Product: domain.ProductFixedMicro, Principal: dec("10000"), InstallmentAmount: dec("100"), Interval: domain.IntervalDaily},
		{Product: domain.ProductFixedMicro, Principal: dec("10500"), InstallmentAmount: dec("1000"), Interval: domain.IntervalWeekly},
		{Product: domain.ProductFixedMicro, Principal: dec("12000"), InstallmentAmount: dec("3000"), Interval: domain.IntervalMonthly},
	}

	for _, p := range cases {
		t.Run(string(p.Product)+"/"+p.Principal.String(), func(t *testing.T) {
			plan, err := engine.Schedule(p, created)
			require.NoError(t, err)
			assert.True(t, plan.TotalPayable.Equal(sumEntries(plan.Entries)),
				"sum %s != payable %s", sumEntries(plan.Entries), plan.TotalPayable)
			for _, e := range plan.Entries {
				assert.True(t, e.Amount.IsPositive())
			}
		})
	}
}

func TestSchedule_FixedMicroReferenceExample(t *testing.T) {
	engine := ledger.NewEngine()
	plan, err := engine.Schedule(domain.LoanParameters{
		Product:           domain.ProductFixedMicro,
		Principal:         dec("10000"),
		InstallmentAmount: dec("100"),
		Interval:          domain.IntervalDaily,
	}, created)
	require.NoError(t, err)

	require.Len(t, plan.Entries, 100)
	assert.Equal(t, 100, plan.Parameters.Tenure)
	assert.True(t, dec("10000").Equal(plan.TotalPayable))
	assert.True(t, plan.TotalInterest.IsZero())
	for i, e := range plan.Entries {
		assert.True(t, dec("100").Equal(e.Amount))
		assert.True(t, e.Interest.IsZero())
		assert.Equal(t, created.AddDate(0, 0, i+1), e.DueDate)
	}
	assert.Equal(t, created.AddDate(0, 0, 100), plan.Entries[99].DueDate)
}

func TestSchedule_FixedMicroRoundsCountUp(t *testing.T) {
	plan, err := ledger.NewEngine().Schedule(domain.LoanParameters{
		Product:           domain.ProductFixedMicro,
		Principal:         dec("1050"),
		InstallmentAmount: dec("100"),
		Interval:          domain.IntervalWeekly,
	}, created)
	require.NoError(t, err)

	require.Len(t, plan.Entries, 11)
	assert.True(t, dec("1100").Equal(plan.TotalPayable))
	assert.Equal(t, created.AddDate(0, 0, 7), plan.Entries[0].DueDate)
}

func TestSchedule_FixedMicroDefaults(t *testing.T) {
	plan, err := ledger.NewEngine().Schedule(domain.LoanParameters{Product: domain.ProductFixedMicro}, created)
	require.NoError(t, err)

	assert.True(t, dec("10000").Equal(plan.Parameters.Principal))
	assert.True(t, dec("100").Equal(plan.Parameters.InstallmentAmount))
	assert.Equal(t, domain.IntervalDaily, plan.Parameters.Interval)
	assert.Len(t, plan.Entries, 100)
}

func TestSchedule_InvalidParameters(t *testing.T) {
	engine := ledger.NewEngine()
	tests := []struct {
		name   string
		params domain.LoanParameters
	}{
		{"zero tenure", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("1000"), AnnualRate: dec("12"), Tenure: 0}},
		{"negative tenure", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("1000"), AnnualRate: dec("12"), Tenure: -3}},
		{"zero principal", domain.LoanParameters{Product: domain.ProductVariable, Principal: decimal.Zero, AnnualRate: dec("12"), Tenure: 12}},
		{"negative principal", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("-1"), AnnualRate: dec("12"), Tenure: 12}},
		{"negative rate", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("1000"), AnnualRate: dec("-0.5"), Tenure: 12}},
		{"variable weekly", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("1000"), AnnualRate: dec("12"), Tenure: 12, Interval: domain.IntervalWeekly}},
		{"non-positive last installment", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("10"), AnnualRate: decimal.Zero, Tenure: 12}},
		{"tenure too long", domain.LoanParameters{Product: domain.ProductVariable, Principal: dec("1000000"), AnnualRate: dec("1"), Tenure: ledger.MaxInstallments + 1}},
		{"fixed with interest", domain.LoanParameters{Product: domain.ProductFixedMicro, Principal: dec("10000"), InstallmentAmount: dec("100"), AnnualRate: dec("5")}},
		{"fixed negative principal", domain.LoanParameters{Product: domain.ProductFixedMicro, Principal: dec("-10000"), InstallmentAmount: dec("100")}},
		{"fixed negative installment", domain.LoanParameters{Product: domain.ProductFixedMicro, Principal: dec("10000"), InstallmentAmount: dec("-100")}},
		{"fixed bad interval", domain.LoanParameters{Product: domain.ProductFixedMicro, Principal: dec("10000"), InstallmentAmount: dec("100"), Interval: "hourly"}},
		{"fixed below processing fee", domain.LoanParameters{Product: domain.ProductFixedMicro, Principal: dec("1500"), InstallmentAmount: dec("100")}},
		{"unknown product", domain.LoanParameters{Product: "PAYDAY", Principal: dec("1000"), Tenure: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Schedule(tt.params, created)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidParameters)
		})
	}
}

func TestProduct_Disbursement(t *testing.T) {
	engine := ledger.NewEngine()

	variable, err := engine.Product(domain.ProductVariable)
	require.NoError(t, err)
	debit, fee, source := variable.Disbursement(domain.LoanParameters{Principal: dec("10010")})
	assert.True(t, dec("10010").Equal(debit))
	assert.True(t, dec("501").Equal(fee), fee.String())
	assert.Equal(t, domain.IncomeFileCharge, source)

	fixed, err := engine.Product(domain.ProductFixedMicro)
	require.NoError(t, err)
	debit, fee, source = fixed.Disbursement(domain.LoanParameters{Principal: dec("10000")})
	assert.True(t, dec("8000").Equal(debit))
	assert.True(t, dec("2000").Equal(fee))
	assert.Equal(t, domain.IncomeProcessingFee, source)
}

func TestEngineOptions(t *testing.T) {
	engine := ledger.NewEngine(
		ledger.WithProcessingFee(dec("500")),
		ledger.WithFixedMicroDefaults(dec("5000"), dec("250"), "weekly"),
		ledger.WithOverdueDailyRate(dec("0.01")),
	)
	plan, err := engine.Schedule(domain.LoanParameters{Product: domain.ProductFixedMicro}, created)
	require.NoError(t, err)

	assert.Len(t, plan.Entries, 20)
	assert.Equal(t, domain.IntervalWeekly, plan.Parameters.Interval)
	assert.True(t, dec("0.01").Equal(engine.OverdueDailyRate()))

	fixed, _ := engine.Product(domain.ProductFixedMicro)
	debit, fee, _ := fixed.Disbursement(plan.Parameters)
	assert.True(t, dec("4500").Equal(debit))
	assert.True(t, dec("500").Equal(fee))
}
