package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRequest selects what a payment settles. EntryIndex is only read in
// SINGLE_EMI mode. A zero Amount in SINGLE_EMI mode means "whatever is due".
type PaymentRequest struct {
	Mode       domain.PaymentMode
	EntryIndex int
	Amount     decimal.Decimal
}

// Outcome describes the effect of a payment applied to a loan.
type Outcome struct {
	Mode           domain.PaymentMode
	SettledIndices []int
	// ScheduledAmount is the sum of settled entry amounts, or the remaining
	// balance for a full settlement.
	ScheduledAmount decimal.Decimal
	OverdueInterest decimal.Decimal
	// CashCollected is what the wallet receives.
	CashCollected decimal.Decimal
	// InterestCollected is scheduled plus overdue interest, recorded as income.
	InterestCollected decimal.Decimal
	// Excess is cash supplied beyond the required total in ALL_OVERDUE mode.
	// It reduces the balance like principal and is never income.
	Excess            decimal.Decimal
	CountedTowardPaid decimal.Decimal
}

// Apply settles entries of loan according to req and updates its totals and
// status. loan is left untouched when an error is returned.
func (e *Engine) Apply(loan *domain.LoanAccount, req PaymentRequest, now time.Time) (*Outcome, error) {
	if loan.Status == domain.LoanInactive {
		return nil, fmt.Errorf("%w: loan %s is already settled", apperrors.ErrEntryAlreadySettled, loan.LoanID)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: payment amount cannot be negative", apperrors.ErrInvalidParameters)
	}
	product, err := e.Product(loan.Parameters.Product)
	if err != nil {
		return nil, err
	}

	var out *Outcome
	switch req.Mode {
	case domain.ModeSingleEMI:
		out, err = e.planSingle(loan, req, now)
	case domain.ModeAllOverdue:
		out, err = e.planOverdue(loan, req, now)
	case domain.ModeFullSettlement:
		out, err = e.planFull(loan, req)
	default:
		err = fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrInvalidParameters, req.Mode)
	}
	if err != nil {
		return nil, err
	}

	if req.Mode == domain.ModeFullSettlement {
		out.CountedTowardPaid = out.ScheduledAmount
	} else {
		out.CountedTowardPaid = product.CountedTowardPaid(out.ScheduledAmount, out.OverdueInterest).Add(out.Excess)
	}

	e.settle(loan, out, now)
	loan.TotalPaid = loan.TotalPaid.Add(out.CountedTowardPaid)
	loan.RemainingAmount = loan.TotalPayable.Sub(loan.TotalPaid)
	if loan.RemainingAmount.LessThanOrEqual(domain.SettlementEpsilon) {
		loan.Status = domain.LoanInactive
		loan.RemainingAmount = decimal.Zero
	}
	loan.LastUpdatedAt = now
	return out, nil
}

func (e *Engine) planSingle(loan *domain.LoanAccount, req PaymentRequest, now time.Time) (*Outcome, error) {
	if req.EntryIndex < 0 || req.EntryIndex >= len(loan.Schedule) {
		return nil, fmt.Errorf("%w: index %d, schedule has %d entries", apperrors.ErrIndexOutOfRange, req.EntryIndex, len(loan.Schedule))
	}
	entry := loan.Schedule[req.EntryIndex]
	if !entry.IsPending() {
		return nil, fmt.Errorf("%w: installment %d was paid", apperrors.ErrEntryAlreadySettled, req.EntryIndex+1)
	}
	accrued := e.Accrue(entry, now)
	due := entry.Amount.Add(accrued)
	if !req.Amount.IsZero() && req.Amount.LessThan(due) {
		return nil, apperrors.NewInsufficientPaymentError(due, req.Amount)
	}
	return &Outcome{
		Mode:              domain.ModeSingleEMI,
		SettledIndices:    []int{req.EntryIndex},
		ScheduledAmount:   entry.Amount,
		OverdueInterest:   accrued,
		CashCollected:     due,
		InterestCollected: entry.Interest.Add(accrued),
	}, nil
}

func (e *Engine) planOverdue(loan *domain.LoanAccount, req PaymentRequest, now time.Time) (*Outcome, error) {
	out := &Outcome{
		Mode:              domain.ModeAllOverdue,
		Excess:            decimal.Zero,
		ScheduledAmount:   decimal.Zero,
		OverdueInterest:   decimal.Zero,
		InterestCollected: decimal.Zero,
	}
	for i, entry := range loan.Schedule {
		if !IsOverdue(entry, now) {
			continue
		}
		accrued := e.Accrue(entry, now)
		out.SettledIndices = append(out.SettledIndices, i)
		out.ScheduledAmount = out.ScheduledAmount.Add(entry.Amount)
		out.OverdueInterest = out.OverdueInterest.Add(accrued)
		out.InterestCollected = out.InterestCollected.Add(entry.Interest).Add(accrued)
	}
	if len(out.SettledIndices) == 0 {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNoOverdueEntries, loan.LoanID)
	}
	required := out.ScheduledAmount.Add(out.OverdueInterest)
	if req.Amount.LessThan(required) {
		return nil, apperrors.NewInsufficientPaymentError(required, req.Amount)
	}
	out.CashCollected = req.Amount
	out.Excess = req.Amount.Sub(required)
	return out, nil
}

func (e *Engine) planFull(loan *domain.LoanAccount, req PaymentRequest) (*Outcome, error) {
	remaining := loan.RemainingAmount
	if req.Amount.LessThan(remaining) {
		return nil, apperrors.NewInsufficientPaymentError(remaining, req.Amount)
	}
	out := &Outcome{
		Mode:              domain.ModeFullSettlement,
		ScheduledAmount:   remaining,
		OverdueInterest:   decimal.Zero,
		CashCollected:     remaining,
		InterestCollected: decimal.Zero,
	}
	for i, entry := range loan.Schedule {
		if entry.IsPending() {
			out.SettledIndices = append(out.SettledIndices, i)
			out.InterestCollected = out.InterestCollected.Add(entry.Interest)
		}
	}
	return out, nil
}

// settle marks the outcome's entries paid. Overdue interest is persisted on
// each entry except in a full settlement, which charges none.
func (e *Engine) settle(loan *domain.LoanAccount, out *Outcome, now time.Time) {
	for _, idx := range out.SettledIndices {
		entry := &loan.Schedule[idx]
		if out.Mode != domain.ModeFullSettlement {
			entry.OverdueInterest = e.Accrue(*entry, now)
		}
		paidAt := now
		entry.Status = domain.EntryPaid
		entry.PaidDate = &paidAt
	}
}
