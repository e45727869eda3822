package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/platform/lock"
	"github.com/SscSPs/microloan_ledger/internal/utils"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
	loanRepo  portsrepo.LoanRepositoryFacade
	walletSvc portssvc.WalletSvcFacade
	incomeSvc portssvc.IncomeRecorderSvc
	engine    *ledger.Engine
	locker    lock.Locker
	validate  *validator.Validate
}

// LoanServiceOption is a functional option for configuring the loan service
type LoanServiceOption func(*loanService)

// WithLoanEngine sets the ledger engine used for schedules.
func WithLoanEngine(engine *ledger.Engine) LoanServiceOption {
	return func(s *loanService) {
		s.engine = engine
	}
}

// WithLoanLocker sets the locker serializing ID allocation and per-loan edits.
func WithLoanLocker(locker lock.Locker) LoanServiceOption {
	return func(s *loanService) {
		s.locker = locker
	}
}

// WithLoanClock overrides the clock.
func WithLoanClock(c clock.Clock) LoanServiceOption {
	return func(s *loanService) {
		s.Clock = c
	}
}

// NewLoanService creates a new loan service with the provided options
func NewLoanService(repo portsrepo.LoanRepositoryFacade, walletSvc portssvc.WalletSvcFacade, incomeSvc portssvc.IncomeRecorderSvc, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanService{
		loanRepo:  repo,
		walletSvc: walletSvc,
		incomeSvc: incomeSvc,
		validate:  newValidator(),
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

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) GetLoan(ctx context.Context, loanID string) (*domain.LoanAccount, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.LoanAccount, error) {
	loans, err := s.loanRepo.ListLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, err
	}
	return loans, nil
}

func (s *loanService) GetSchedule(ctx context.Context, loanID string) ([]domain.ScheduleEntryView, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return s.engine.View(*loan, s.Now()), nil
}

func (s *loanService) ListPayments(ctx context.Context, loanID string) ([]domain.PaymentRecord, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListPaymentsByLoan(ctx, loanID)
}

func (s *loanService) PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (*ledger.Plan, error) {
	product, err := domain.ParseProductVariant(req.Product)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
	}
	plan, err := s.engine.Schedule(domain.LoanParameters{
		Product:           product,
		Principal:         req.Principal,
		AnnualRate:        req.AnnualRate,
		Tenure:            req.Tenure,
		Interval:          domain.PaymentInterval(strings.ToLower(strings.TrimSpace(req.Interval))),
		InstallmentAmount: req.InstallmentAmount,
	}, s.Now())
	if err != nil {
		s.LogDebug(ctx, "Schedule preview rejected", slog.String("error", err.Error()))
		return nil, err
	}
	return &plan, nil
}

// CreateLoan issues a loan: schedule, funds check, persistence, disbursement
// and fee income, in that order. A failed disbursement removes the loan again.
func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, userID string) (*domain.LoanAccount, error) {
	params, err := s.parseCreateRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	plan, err := s.engine.Schedule(params, now)
	if err != nil {
		return nil, err
	}
	product, err := s.engine.Product(plan.Parameters.Product)
	if err != nil {
		return nil, err
	}
	debit, fee, feeSource := product.Disbursement(plan.Parameters)

	unlock, err := s.locker.Lock(ctx, lock.ProductKey(string(params.Product)))
	if err != nil {
		return nil, err
	}
	defer unlock()

	wallet, err := s.walletSvc.GetWallet(ctx)
	if err != nil {
		return nil, err
	}
	if debit.GreaterThan(wallet.Balance) {
		return nil, fmt.Errorf("%w: disbursement %s exceeds wallet balance %s",
			apperrors.ErrInsufficientFunds, utils.FormatAmount(debit), utils.FormatAmount(wallet.Balance))
	}

	loan, err := s.saveWithNextID(ctx, borrowerFromRequest(req), plan, userID)
	if err != nil {
		return nil, err
	}

	correlationID := uuid.NewString()
	logger := s.GetLogger(ctx).With(
		slog.String("loan_id", loan.LoanID),
		slog.String("correlation_id", correlationID),
	)

	if _, err := s.walletSvc.Debit(ctx, domain.WalletMovement{
		Amount:        debit,
		Description:   "Loan disbursement " + loan.LoanID,
		LoanID:        loan.LoanID,
		CorrelationID: correlationID,
		UserID:        userID,
	}); err != nil {
		logger.Error("Disbursement failed, removing loan", slog.String("error", err.Error()))
		if delErr := s.loanRepo.DeleteLoan(ctx, loan.LoanID); delErr != nil {
			logger.Error("Failed to remove undisbursed loan", slog.String("error", delErr.Error()))
			return nil, &apperrors.PartialApplicationError{CorrelationID: correlationID, Step: "disbursement", Err: err}
		}
		return nil, err
	}

	if fee.IsPositive() {
		if _, err := s.incomeSvc.RecordIncome(ctx, domain.ExtraIncomeRecord{
			Amount:        fee,
			Source:        feeSource,
			LoanID:        loan.LoanID,
			Description:   fmt.Sprintf("%s for loan %s", feeSource, loan.LoanID),
			CorrelationID: correlationID,
			CreatedBy:     userID,
		}); err != nil {
			logger.Error("Loan disbursed but fee income not recorded", slog.String("error", err.Error()))
			return nil, &apperrors.PartialApplicationError{CorrelationID: correlationID, Step: "fee_income", Err: err}
		}
	}

	logger.Info("Loan created",
		slog.String("product", string(loan.Parameters.Product)),
		slog.String("principal", utils.FormatAmount(loan.Parameters.Principal)),
		slog.String("disbursed", utils.FormatAmount(debit)),
		slog.String("fee", utils.FormatAmount(fee)),
		slog.Int("installments", len(loan.Schedule)))
	return loan, nil
}

// saveWithNextID persists the loan under the next free identifier of its product.
// Caller holds the product lock.
func (s *loanService) saveWithNextID(ctx context.Context, borrower domain.Borrower, plan ledger.Plan, userID string) (*domain.LoanAccount, error) {
	seq, err := newLoanIDSequence(ctx, s.loanRepo, plan.Parameters.Product)
	if err != nil {
		s.LogError(ctx, err, "Failed to count loans for identifier")
		return nil, err
	}
	for {
		loanID, ok := seq.Next()
		if !ok {
			return nil, &apperrors.DuplicateError{Field: "loan_id", Value: FormatLoanID(plan.Parameters.Product, seq.next-1)}
		}
		loan := ledger.NewLoanAccount(loanID, borrower, plan, s.Now(), userID)
		err := s.loanRepo.SaveLoan(ctx, loan)
		if err == nil {
			return &loan, nil
		}
		var dup *apperrors.DuplicateError
		if errors.As(err, &dup) && dup.Field == "loan_id" {
			s.LogDebug(ctx, "Loan identifier taken, probing next", slog.String("loan_id", loanID))
			continue
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
}

// parseCreateRequest validates the payload and extracts loan terms. Every
// missing field is reported at once.
func (s *loanService) parseCreateRequest(req dto.CreateLoanRequest) (domain.LoanParameters, error) {
	var productMissing []string
	product, productErr := domain.ParseProductVariant(req.Product)
	if productErr == nil && product == domain.ProductVariable {
		if req.Principal == nil {
			productMissing = append(productMissing, "principal")
		}
		if req.AnnualRate == nil {
			productMissing = append(productMissing, "annualRate")
		}
		if req.Tenure == nil {
			productMissing = append(productMissing, "tenure")
		}
	}
	if err := validationError(s.validate.Struct(req), productMissing...); err != nil {
		return domain.LoanParameters{}, err
	}
	if productErr != nil {
		return domain.LoanParameters{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, productErr)
	}
	if req.MonthlyIncome.IsNegative() {
		return domain.LoanParameters{}, fmt.Errorf("%w: monthlyIncome cannot be negative", apperrors.ErrInvalidParameters)
	}

	params := domain.LoanParameters{
		Product:           product,
		Principal:         decimalOrZero(req.Principal),
		AnnualRate:        decimalOrZero(req.AnnualRate),
		Interval:          domain.PaymentInterval(strings.ToLower(strings.TrimSpace(req.Interval))),
		InstallmentAmount: decimalOrZero(req.InstallmentAmount),
	}
	if req.Tenure != nil {
		params.Tenure = *req.Tenure
	}
	return params, nil
}

func borrowerFromRequest(req dto.CreateLoanRequest) domain.Borrower {
	return domain.Borrower{
		Name:             strings.TrimSpace(req.Name),
		FatherName:       strings.TrimSpace(req.FatherName),
		Phone:            strings.TrimSpace(req.Phone),
		Address:          strings.TrimSpace(req.Address),
		NationalID:       strings.TrimSpace(req.NationalID),
		EmploymentType:   domain.EmploymentType(req.EmploymentType),
		MonthlyIncome:    decimalOrZero(req.MonthlyIncome),
		GuarantorName:    strings.TrimSpace(req.GuarantorName),
		GuarantorPhone:   strings.TrimSpace(req.GuarantorPhone),
		GuarantorAddress: strings.TrimSpace(req.GuarantorAddress),
		LoanPurpose:      strings.TrimSpace(req.LoanPurpose),
	}
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// UpdateLoan edits borrower details. Financial fields are not part of the
// request type, so they cannot be changed through here.
func (s *loanService) UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, userID string) (*domain.LoanAccount, error) {
	if err := validationError(s.validate.Struct(req)); err != nil {
		return nil, err
	}
	if req.MonthlyIncome != nil && req.MonthlyIncome.IsNegative() {
		return nil, fmt.Errorf("%w: monthlyIncome cannot be negative", apperrors.ErrInvalidParameters)
	}

	unlock, err := s.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	req.ToDetailsUpdate().Apply(&loan.Borrower)
	loan.LastUpdatedAt = s.Now()
	loan.LastUpdatedBy = userID

	if err := s.loanRepo.UpdateLoanDetails(ctx, *loan); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Loan details updated", slog.String("loan_id", loanID))
	return loan, nil
}

// DeleteLoan removes a loan nothing has been paid against. The disbursement
// stays in the wallet log.
func (s *loanService) DeleteLoan(ctx context.Context, loanID string, userID string) error {
	unlock, err := s.locker.Lock(ctx, lock.LoanKey(loanID))
	if err != nil {
		return err
	}
	defer unlock()

	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.TotalPaid.IsPositive() {
		return fmt.Errorf("%w: loan %s has %s paid", apperrors.ErrDeleteRefused, loanID, utils.FormatAmount(loan.TotalPaid))
	}
	if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
		s.LogError(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		return err
	}
	s.LogWarn(ctx, "Loan deleted",
		slog.String("loan_id", loanID),
		slog.String("principal", utils.FormatAmount(loan.Parameters.Principal)),
		slog.String("user_id", userID))
	return nil
}
