package services

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/dto"
)

// PaymentSvc coordinates a payment across the loan, the wallet and the income register.
type PaymentSvc interface {
	ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentReceipt, error)
}
