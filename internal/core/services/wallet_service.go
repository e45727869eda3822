package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/utils"
	"github.com/SscSPs/microloan_ledger/internal/utils/accounting"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxWalletAttempts bounds retries after another process bumped the wallet version.
const maxWalletAttempts = 3

// walletService is the single writer of the pooled wallet within this process.
// Writers in other processes are caught by the version check.
type walletService struct {
	BaseService
	walletRepo portsrepo.WalletRepositoryFacade
	mu         sync.Mutex
}

// WalletServiceOption configures the wallet service
type WalletServiceOption func(*walletService)

// WithWalletClock overrides the clock used to stamp transactions.
func WithWalletClock(c clock.Clock) WalletServiceOption {
	return func(s *walletService) {
		s.Clock = c
	}
}

// NewWalletService creates a new wallet service.
func NewWalletService(repo portsrepo.WalletRepositoryFacade, options ...WalletServiceOption) portssvc.WalletSvcFacade {
	svc := &walletService{walletRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetWallet(ctx context.Context) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetOrCreateWallet(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read wallet")
		return nil, err
	}
	return w, nil
}

func (s *walletService) ListTransactions(ctx context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error) {
	if filter.Direction != "" && !filter.Direction.Valid() {
		return nil, fmt.Errorf("%w: unknown direction %q", apperrors.ErrInvalidParameters, filter.Direction)
	}
	txns, err := s.walletRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallet transactions")
		return nil, err
	}
	return txns, nil
}

func (s *walletService) Credit(ctx context.Context, m domain.WalletMovement) (*domain.WalletTransaction, error) {
	return s.move(ctx, domain.Credit, m)
}

func (s *walletService) Debit(ctx context.Context, m domain.WalletMovement) (*domain.WalletTransaction, error) {
	return s.move(ctx, domain.Debit, m)
}

func (s *walletService) move(ctx context.Context, dir domain.Direction, m domain.WalletMovement) (*domain.WalletTransaction, error) {
	if !m.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s amount must be positive", apperrors.ErrInvalidParameters, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn := domain.WalletTransaction{
		TransactionID: uuid.NewString(),
		Direction:     dir,
		Amount:        m.Amount.Round(domain.MoneyPlaces),
		Description:   m.Description,
		LoanID:        m.LoanID,
		CorrelationID: m.CorrelationID,
		CreatedAt:     s.Now(),
		CreatedBy:     m.UserID,
	}

	err := s.withRetry(ctx, func(w *domain.Wallet) (decimal.Decimal, error) {
		// Credits are accepted even when a deleted transaction left the balance negative.
		if dir == domain.Debit && txn.Amount.GreaterThan(w.Balance) {
			return decimal.Zero, fmt.Errorf("%w: balance %s, requested %s",
				apperrors.ErrInsufficientFunds, utils.FormatAmount(w.Balance), utils.FormatAmount(txn.Amount))
		}
		newBalance, err := accounting.BalanceAfter(w.Balance, txn)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
		}
		return newBalance, nil
	}, func(version int64, newBalance decimal.Decimal) error {
		return s.walletRepo.AppendTransaction(ctx, version, newBalance, txn)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Wallet movement failed",
				slog.String("direction", string(dir)),
				slog.String("amount", utils.FormatAmount(txn.Amount)),
				slog.String("correlation_id", m.CorrelationID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Wallet movement recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("direction", string(dir)),
		slog.String("amount", utils.FormatAmount(txn.Amount)),
		slog.String("loan_id", m.LoanID),
		slog.String("correlation_id", m.CorrelationID))
	return &txn, nil
}

// DeleteTransaction removes a transaction and reverses its effect on the
// balance. The income register is left untouched.
func (s *walletService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, err := s.walletRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	var reversed decimal.Decimal
	err = s.withRetry(ctx, func(w *domain.Wallet) (decimal.Decimal, error) {
		newBalance, err := accounting.BalanceWithout(w.Balance, *txn)
		if err != nil {
			return decimal.Zero, err
		}
		reversed = newBalance
		return newBalance, nil
	}, func(version int64, newBalance decimal.Decimal) error {
		return s.walletRepo.RemoveTransaction(ctx, version, newBalance, transactionID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete wallet transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogWarn(ctx, "Wallet transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("direction", string(txn.Direction)),
		slog.String("reversed_amount", utils.FormatAmount(txn.Amount)),
		slog.String("balance_after", utils.FormatAmount(reversed)),
		slog.String("loan_id", txn.LoanID),
		slog.String("user_id", userID))
	return nil
}

// withRetry reads the wallet, computes the new balance and writes it,
// re-reading after a version conflict. Caller holds s.mu.
func (s *walletService) withRetry(
	ctx context.Context,
	compute func(w *domain.Wallet) (decimal.Decimal, error),
	write func(version int64, newBalance decimal.Decimal) error,
) error {
	var err error
	for attempt := 1; attempt <= maxWalletAttempts; attempt++ {
		var w *domain.Wallet
		w, err = s.walletRepo.GetOrCreateWallet(ctx)
		if err != nil {
			return err
		}
		var newBalance decimal.Decimal
		newBalance, err = compute(w)
		if err != nil {
			return err
		}
		err = write(w.Version, newBalance)
		if !errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		s.LogDebug(ctx, "Wallet version conflict, retrying", slog.Int("attempt", attempt))
	}
	return err
}
