// Package ledger holds the loan ledger engine: schedule generation, overdue
// accrual, payment application and portfolio reduction. Everything here is
// pure; callers supply "now" and persist the results.
package ledger

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// MaxInstallments bounds the length of a generated schedule.
const MaxInstallments = 3660

// Engine applies the ledger rules with a given fee and penalty configuration.
type Engine struct {
	overdueDailyRate decimal.Decimal
	fileChargeRate   decimal.Decimal
	processingFee    decimal.Decimal
	fixedPrincipal   decimal.Decimal
	fixedInstallment decimal.Decimal
	fixedInterval    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithOverdueDailyRate sets the simple daily penalty rate (0.03 = 3% per day).
func WithOverdueDailyRate(rate decimal.Decimal) Option {
	return func(e *Engine) {
		e.overdueDailyRate = rate
	}
}

// WithFileChargeRate sets the fraction of principal charged as a file fee on VARIABLE loans.
func WithFileChargeRate(rate decimal.Decimal) Option {
	return func(e *Engine) {
		e.fileChargeRate = rate
	}
}

// WithProcessingFee sets the flat fee withheld from FIXED_MICRO disbursements.
func WithProcessingFee(fee decimal.Decimal) Option {
	return func(e *Engine) {
		e.processingFee = fee
	}
}

// WithFixedMicroDefaults sets the principal, installment and interval used when
// a FIXED_MICRO request leaves them out.
func WithFixedMicroDefaults(principal, installment decimal.Decimal, interval string) Option {
	return func(e *Engine) {
		e.fixedPrincipal = principal
		e.fixedInstallment = installment
		e.fixedInterval = interval
	}
}

// NewEngine returns an engine with the standard rates, adjusted by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		overdueDailyRate: decimal.NewFromFloat(0.03),
		fileChargeRate:   decimal.NewFromFloat(0.05),
		processingFee:    decimal.NewFromInt(2000),
		fixedPrincipal:   decimal.NewFromInt(10000),
		fixedInstallment: decimal.NewFromInt(100),
		fixedInterval:    "daily",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OverdueDailyRate returns the configured penalty rate.
func (e *Engine) OverdueDailyRate() decimal.Decimal {
	return e.overdueDailyRate
}
