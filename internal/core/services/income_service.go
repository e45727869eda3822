package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/utils"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type incomeService struct {
	BaseService
	incomeRepo portsrepo.IncomeRepositoryFacade
	loanRepo   portsrepo.LoanReader
	walletSvc  portssvc.WalletWriterSvc
	validate   *validator.Validate
}

// IncomeServiceOption configures the income service
type IncomeServiceOption func(*incomeService)

// WithIncomeClock overrides the clock used to stamp records.
func WithIncomeClock(c clock.Clock) IncomeServiceOption {
	return func(s *incomeService) {
		s.Clock = c
	}
}

// NewIncomeService creates the extra income register service.
func NewIncomeService(incomeRepo portsrepo.IncomeRepositoryFacade, loanRepo portsrepo.LoanReader, walletSvc portssvc.WalletWriterSvc, options ...IncomeServiceOption) portssvc.IncomeSvcFacade {
	svc := &incomeService{
		incomeRepo: incomeRepo,
		loanRepo:   loanRepo,
		walletSvc:  walletSvc,
		validate:   newValidator(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

// RecordIncome appends a record. The caller is responsible for any wallet movement.
func (s *incomeService) RecordIncome(ctx context.Context, record domain.ExtraIncomeRecord) (*domain.ExtraIncomeRecord, error) {
	if !record.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: income amount must be positive", apperrors.ErrInvalidParameters)
	}
	if record.IncomeID == "" {
		record.IncomeID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.Now()
	}
	record.Amount = record.Amount.Round(domain.MoneyPlaces)

	if err := s.incomeRepo.SaveIncome(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save income record",
			slog.String("source", string(record.Source)),
			slog.String("loan_id", record.LoanID),
			slog.String("correlation_id", record.CorrelationID))
		return nil, err
	}
	s.LogInfo(ctx, "Income recorded",
		slog.String("income_id", record.IncomeID),
		slog.String("source", string(record.Source)),
		slog.String("amount", utils.FormatAmount(record.Amount)),
		slog.String("loan_id", record.LoanID),
		slog.String("correlation_id", record.CorrelationID))
	return &record, nil
}

// AddIncome credits the wallet and then records the income under one correlation ID.
func (s *incomeService) AddIncome(ctx context.Context, req dto.AddIncomeRequest, userID string) (*domain.ExtraIncomeRecord, error) {
	if err := validationError(s.validate.Struct(req)); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidParameters)
	}
	loanID := strings.TrimSpace(req.LoanID)
	if loanID != "" {
		if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
			return nil, err
		}
	}

	correlationID := uuid.NewString()
	if _, err := s.walletSvc.Credit(ctx, domain.WalletMovement{
		Amount:        req.Amount,
		Description:   "Income: " + req.Description,
		LoanID:        loanID,
		CorrelationID: correlationID,
		UserID:        userID,
	}); err != nil {
		return nil, err
	}

	record, err := s.RecordIncome(ctx, domain.ExtraIncomeRecord{
		Amount:        req.Amount,
		Source:        domain.IncomeManual,
		LoanID:        loanID,
		Description:   req.Description,
		CorrelationID: correlationID,
		CreatedBy:     userID,
	})
	if err != nil {
		return nil, &apperrors.PartialApplicationError{CorrelationID: correlationID, Step: "income_record", Err: err}
	}
	return record, nil
}

func (s *incomeService) ListIncome(ctx context.Context, loanID string) ([]domain.ExtraIncomeRecord, decimal.Decimal, error) {
	records, err := s.incomeRepo.ListIncome(ctx, strings.TrimSpace(loanID))
	if err != nil {
		s.LogError(ctx, err, "Failed to list income records")
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return records, total, nil
}
