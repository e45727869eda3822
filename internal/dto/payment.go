package dto

import (
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest asks for a payment to be applied to a loan.
// EntryIndex is zero-based and required for SINGLE_EMI.
type ApplyPaymentRequest struct {
	Mode       string          `json:"mode" binding:"required"`
	EntryIndex *int            `json:"entryIndex"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentReceiptResponse is returned after a payment is applied.
type PaymentReceiptResponse struct {
	Payment domain.PaymentRecord `json:"payment"`
	Loan    LoanResponse         `json:"loan"`
}

// ToPaymentReceiptResponse converts a receipt.
func ToPaymentReceiptResponse(r *domain.PaymentReceipt) PaymentReceiptResponse {
	return PaymentReceiptResponse{
		Payment: r.Payment,
		Loan:    ToLoanResponse(&r.Loan, false),
	}
}

// ListPaymentsResponse wraps a loan's payment history.
type ListPaymentsResponse struct {
	LoanID   string                 `json:"loanId"`
	Payments []domain.PaymentRecord `json:"payments"`
}
