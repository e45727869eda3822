package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Product is the per-variant behaviour plugged into the shared schedule and
// payment machinery.
type Product interface {
	Variant() domain.ProductVariant
	// Normalize fills defaults and validates p.
	Normalize(p domain.LoanParameters) (domain.LoanParameters, error)
	// Plan builds the schedule for already normalized parameters.
	Plan(p domain.LoanParameters, start time.Time) Plan
	// CountedTowardPaid returns how much of a collection reduces the balance.
	CountedTowardPaid(scheduled, overdueInterest decimal.Decimal) decimal.Decimal
	// Disbursement returns the wallet debit and the fee recorded as income.
	Disbursement(p domain.LoanParameters) (debit decimal.Decimal, fee decimal.Decimal, source domain.IncomeSource)
}

// Plan is a generated repayment schedule with its totals.
type Plan struct {
	Parameters        domain.LoanParameters
	Entries           []domain.ScheduleEntry
	InstallmentAmount decimal.Decimal
	LastInstallment   decimal.Decimal
	TotalInterest     decimal.Decimal
	TotalPayable      decimal.Decimal
}

// Product returns the strategy for variant v.
func (e *Engine) Product(v domain.ProductVariant) (Product, error) {
	switch v {
	case domain.ProductVariable:
		return variableProduct{e: e}, nil
	case domain.ProductFixedMicro:
		return fixedMicroProduct{e: e}, nil
	}
	return nil, fmt.Errorf("%w: unknown product %q", apperrors.ErrInvalidParameters, v)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperrors.ErrInvalidParameters}, args...)...)
}

func buildEntries(n int, start time.Time, interval domain.PaymentInterval, amount, principal, interest, last decimal.Decimal) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, n)
	for i := range entries {
		amt := amount
		if i == n-1 {
			amt = last
		}
		entries[i] = domain.ScheduleEntry{
			Index:           i,
			DueDate:         interval.Advance(start, i+1),
			Amount:          amt,
			Principal:       principal,
			Interest:        interest,
			Status:          domain.EntryPending,
			OverdueInterest: decimal.Zero,
		}
	}
	return entries
}

// variableProduct charges flat annual interest over a monthly schedule.
type variableProduct struct{ e *Engine }

func (variableProduct) Variant() domain.ProductVariant { return domain.ProductVariable }

func (variableProduct) Normalize(p domain.LoanParameters) (domain.LoanParameters, error) {
	p.Product = domain.ProductVariable
	if !p.Principal.IsPositive() {
		return p, invalid("principal must be greater than zero")
	}
	if p.AnnualRate.IsNegative() {
		return p, invalid("interest rate cannot be negative")
	}
	if p.Tenure <= 0 {
		return p, invalid("tenure must be greater than zero")
	}
	if p.Tenure > MaxInstallments {
		return p, invalid("tenure cannot exceed %d installments", MaxInstallments)
	}
	if p.Interval == "" {
		p.Interval = domain.IntervalMonthly
	}
	if p.Interval != domain.IntervalMonthly {
		return p, invalid("VARIABLE loans are repaid monthly, got %q", p.Interval)
	}
	p.InstallmentAmount = decimal.Zero

	// The last installment absorbs the ceiling remainder; it must stay positive.
	if _, _, last := variableTotals(p); !last.IsPositive() {
		return p, invalid("tenure %d is too long for principal %s", p.Tenure, p.Principal.String())
	}
	return p, nil
}

// variableTotals returns total interest, the rounded-up installment and the last installment.
func variableTotals(p domain.LoanParameters) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	n := decimal.NewFromInt(int64(p.Tenure))
	totalInterest := p.Principal.Mul(p.AnnualRate).Div(hundred).Mul(n).Div(twelve).Round(domain.MoneyPlaces)
	totalPayable := p.Principal.Add(totalInterest)
	installment := totalPayable.Div(n).Ceil()
	last := totalPayable.Sub(installment.Mul(n.Sub(one)))
	return totalInterest, installment, last
}

func (variableProduct) Plan(p domain.LoanParameters, start time.Time) Plan {
	n := decimal.NewFromInt(int64(p.Tenure))
	totalInterest, installment, last := variableTotals(p)

	// Principal and interest are split evenly across every entry, the last one
	// included, regardless of its adjusted amount.
	principalPer := p.Principal.Div(n).Round(domain.MoneyPlaces)
	interestPer := totalInterest.Div(n).Round(domain.MoneyPlaces)

	return Plan{
		Parameters:        p,
		Entries:           buildEntries(p.Tenure, start, p.Interval, installment, principalPer, interestPer, last),
		InstallmentAmount: installment,
		LastInstallment:   last,
		TotalInterest:     totalInterest,
		TotalPayable:      p.Principal.Add(totalInterest),
	}
}

// CountedTowardPaid for VARIABLE loans counts everything collected, overdue
// interest included, against the payable balance.
func (variableProduct) CountedTowardPaid(scheduled, overdueInterest decimal.Decimal) decimal.Decimal {
	return scheduled.Add(overdueInterest)
}

func (v variableProduct) Disbursement(p domain.LoanParameters) (decimal.Decimal, decimal.Decimal, domain.IncomeSource) {
	fee := p.Principal.Mul(v.e.fileChargeRate).Round(0)
	return p.Principal, fee, domain.IncomeFileCharge
}

// fixedMicroProduct repays the principal in equal interest-free installments.
type fixedMicroProduct struct{ e *Engine }

func (fixedMicroProduct) Variant() domain.ProductVariant { return domain.ProductFixedMicro }

func (f fixedMicroProduct) Normalize(p domain.LoanParameters) (domain.LoanParameters, error) {
	p.Product = domain.ProductFixedMicro
	if p.Principal.IsZero() {
		p.Principal = f.e.fixedPrincipal
	}
	if p.InstallmentAmount.IsZero() {
		p.InstallmentAmount = f.e.fixedInstallment
	}
	if p.Interval == "" {
		p.Interval = domain.PaymentInterval(f.e.fixedInterval)
	}
	if !p.Principal.IsPositive() {
		return p, invalid("principal must be greater than zero")
	}
	if !p.InstallmentAmount.IsPositive() {
		return p, invalid("installment amount must be greater than zero")
	}
	if !p.AnnualRate.IsZero() {
		return p, invalid("FIXED_MICRO loans carry no interest")
	}
	if !p.Interval.Valid() {
		return p, invalid("unsupported payment interval %q", p.Interval)
	}
	count := p.Principal.Div(p.InstallmentAmount).Ceil()
	if count.GreaterThan(decimal.NewFromInt(MaxInstallments)) {
		return p, invalid("installment amount %s yields more than %d installments", p.InstallmentAmount.String(), MaxInstallments)
	}
	p.Tenure = int(count.IntPart())
	if fee := f.e.processingFee; fee.GreaterThanOrEqual(p.Principal) {
		return p, invalid("principal %s does not cover the processing fee %s", p.Principal.String(), fee.String())
	}
	return p, nil
}

func (fixedMicroProduct) Plan(p domain.LoanParameters, start time.Time) Plan {
	total := p.InstallmentAmount.Mul(decimal.NewFromInt(int64(p.Tenure)))
	return Plan{
		Parameters:        p,
		Entries:           buildEntries(p.Tenure, start, p.Interval, p.InstallmentAmount, p.InstallmentAmount, decimal.Zero, p.InstallmentAmount),
		InstallmentAmount: p.InstallmentAmount,
		LastInstallment:   p.InstallmentAmount,
		TotalInterest:     decimal.Zero,
		TotalPayable:      total,
	}
}

// CountedTowardPaid for FIXED_MICRO loans counts only the scheduled amounts;
// overdue interest goes to income without reducing the balance.
func (fixedMicroProduct) CountedTowardPaid(scheduled, _ decimal.Decimal) decimal.Decimal {
	return scheduled
}

func (f fixedMicroProduct) Disbursement(p domain.LoanParameters) (decimal.Decimal, decimal.Decimal, domain.IncomeSource) {
	fee := f.e.processingFee
	return p.Principal.Sub(fee), fee, domain.IncomeProcessingFee
}
