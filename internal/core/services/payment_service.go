package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/platform/lock"
	"github.com/SscSPs/microloan_ledger/internal/utils"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
	"github.com/google/uuid"
)

// Steps reported in a PartialApplicationError.
const (
	stepWalletCredit = "wallet_credit"
	stepIncomeRecord = "income_record"
)

// paymentService applies a payment to a loan, then credits the wallet, then
// records interest income. Only the first step is transactional; later
// failures leave a logged, correlated partial state for manual repair.
type paymentService struct {
	BaseService
	loanRepo  portsrepo.LoanRepositoryFacade
	walletSvc portssvc.WalletWriterSvc
	incomeSvc portssvc.IncomeRecorderSvc
	engine    *ledger.Engine
	locker    lock.Locker
}

// PaymentServiceOption configures the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentEngine sets the ledger engine.
func WithPaymentEngine(engine *ledger.Engine) PaymentServiceOption {
	return func(s *paymentService) {
		s.engine = engine
	}
}

// WithPaymentLocker sets the per-loan locker.
func WithPaymentLocker(locker lock.Locker) PaymentServiceOption {
	return func(s *paymentService) {
		s.locker = locker
	}
}

// WithPaymentClock overrides the clock used for accrual and stamps.
func WithPaymentClock(c clock.Clock) PaymentServiceOption {
	return func(s *paymentService) {
		s.Clock = c
	}
}

// NewPaymentService creates the payment orchestrator.
func NewPaymentService(loanRepo portsrepo.LoanRepositoryFacade, walletSvc portssvc.WalletWriterSvc, incomeSvc portssvc.IncomeRecorderSvc, options ...PaymentServiceOption) portssvc.PaymentSvc {
	svc := &paymentService{
		loanRepo:  loanRepo,
		walletSvc: walletSvc,
		incomeSvc: incomeSvc,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.engine == nil {
		svc.engine = ledger.NewEngine()
	}
	if svc.locker == nil {
		svc.locker = lock.NewKeyedMutex()
	}
	return svc
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

func (s *paymentService) ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, userID string) (*domain.PaymentReceipt, error) {
	mode, err := domain.ParsePaymentMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
	}
	payReq := ledger.PaymentRequest{Mode: mode, Amount: req.Amount}
	if mode == domain.ModeSingleEMI {
		if req.EntryIndex == nil {
			return nil, &apperrors.MissingFieldsError{Fields: []string{"entryIndex"}}
		}
		payReq.EntryIndex = *req.EntryIndex
	}

	correlationID := uuid.NewString()
	logger := s.GetLogger(ctx).With(
		slog.String("loan_id", loanID),
		slog.String("correlation_id", correlationID),
		slog.String("mode", string(mode)),
	)

	unlock, err := s.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	out, err := s.engine.Apply(loan, payReq, now)
	if err != nil {
		logger.Info("Payment rejected", slog.String("error", err.Error()))
		return nil, err
	}
	loan.LastUpdatedBy = userID

	record := domain.PaymentRecord{
		PaymentID:         uuid.NewString(),
		LoanID:            loanID,
		Mode:              mode,
		EntryIndices:      out.SettledIndices,
		Amount:            out.CashCollected,
		CountedTowardPaid: out.CountedTowardPaid,
		InterestCollected: out.InterestCollected,
		OverdueInterest:   out.OverdueInterest,
		CorrelationID:     correlationID,
		CreatedAt:         now,
		CreatedBy:         userID,
	}

	if err := s.loanRepo.ApplyLoanPayment(ctx, *loan, out.SettledIndices, record); err != nil {
		if !errors.Is(err, apperrors.ErrEntryAlreadySettled) {
			logger.Error("Failed to persist loan payment", slog.String("error", err.Error()))
		}
		return nil, err
	}
	logger.Info("Loan payment applied",
		slog.String("step", "loan_mutation"),
		slog.String("payment_id", record.PaymentID),
		slog.Any("entries", out.SettledIndices),
		slog.String("cash", utils.FormatAmount(out.CashCollected)),
		slog.String("counted_toward_paid", utils.FormatAmount(out.CountedTowardPaid)),
		slog.String("remaining", utils.FormatAmount(loan.RemainingAmount)),
		slog.String("status", string(loan.Status)))

	if _, err := s.walletSvc.Credit(ctx, domain.WalletMovement{
		Amount:        out.CashCollected,
		Description:   fmt.Sprintf("%s payment for loan %s", mode, loanID),
		LoanID:        loanID,
		CorrelationID: correlationID,
		UserID:        userID,
	}); err != nil {
		logger.Error("Loan updated but wallet not credited",
			slog.String("step", stepWalletCredit),
			slog.String("payment_id", record.PaymentID),
			slog.String("amount", utils.FormatAmount(out.CashCollected)),
			slog.String("error", err.Error()))
		return nil, &apperrors.PartialApplicationError{CorrelationID: correlationID, Step: stepWalletCredit, Err: err}
	}

	if out.InterestCollected.IsPositive() {
		if _, err := s.incomeSvc.RecordIncome(ctx, domain.ExtraIncomeRecord{
			Amount:        out.InterestCollected,
			Source:        domain.IncomeInterest,
			LoanID:        loanID,
			Description:   fmt.Sprintf("Interest collected on loan %s (%s)", loanID, mode),
			CorrelationID: correlationID,
			CreatedAt:     now,
			CreatedBy:     userID,
		}); err != nil {
			logger.Error("Wallet credited but interest income not recorded",
				slog.String("step", stepIncomeRecord),
				slog.String("payment_id", record.PaymentID),
				slog.String("amount", utils.FormatAmount(out.InterestCollected)),
				slog.String("error", err.Error()))
			return nil, &apperrors.PartialApplicationError{CorrelationID: correlationID, Step: stepIncomeRecord, Err: err}
		}
	}

	return &domain.PaymentReceipt{Payment: record, Loan: *loan}, nil
}
