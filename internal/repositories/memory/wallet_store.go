package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) GetOrCreateWallet(_ context.Context) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.walletExists {
		s.wallet = zeroWallet()
		s.walletExists = true
	}
	w := s.wallet
	return &w, nil
}

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.WalletTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.TransactionID == transactionID {
			c := t
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: wallet transaction %s", apperrors.ErrNotFound, transactionID)
}

func (s *Store) ListTransactions(_ context.Context, filter domain.WalletTransactionFilter) ([]domain.WalletTransaction, error) {
	s.mu.RLock()
	sorted := append([]domain.WalletTransaction(nil), s.transactions...)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool { return newerThan(sorted[i], sorted[j].CreatedAt, sorted[j].TransactionID) })

	out := make([]domain.WalletTransaction, 0)
	for _, t := range sorted {
		if filter.Direction != "" && t.Direction != filter.Direction {
			continue
		}
		if c := filter.Before; c != nil && !newerThan(domain.WalletTransaction{CreatedAt: c.CreatedAt, TransactionID: c.TransactionID}, t.CreatedAt, t.TransactionID) {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) AppendTransaction(_ context.Context, expectedVersion int64, newBalance decimal.Decimal, txn domain.WalletTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkVersion(expectedVersion); err != nil {
		return err
	}
	s.bump(newBalance, txn.CreatedAt)
	s.transactions = append(s.transactions, txn)
	return nil
}

func (s *Store) RemoveTransaction(_ context.Context, expectedVersion int64, newBalance decimal.Decimal, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkVersion(expectedVersion); err != nil {
		return err
	}
	for i, t := range s.transactions {
		if t.TransactionID == transactionID {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			s.bump(newBalance, s.wallet.UpdatedAt)
			return nil
		}
	}
	return fmt.Errorf("%w: wallet transaction %s", apperrors.ErrNotFound, transactionID)
}

func (s *Store) checkVersion(expected int64) error {
	if !s.walletExists {
		s.wallet = zeroWallet()
		s.walletExists = true
	}
	if s.wallet.Version != expected {
		return fmt.Errorf("%w: wallet version %d, expected %d", apperrors.ErrConflict, s.wallet.Version, expected)
	}
	return nil
}

func (s *Store) bump(balance decimal.Decimal, at time.Time) {
	s.wallet.Balance = balance
	s.wallet.Version++
	s.wallet.UpdatedAt = at
}

// newerThan orders transactions newest first, breaking ties on ID.
func newerThan(t domain.WalletTransaction, createdAt time.Time, id string) bool {
	if !t.CreatedAt.Equal(createdAt) {
		return t.CreatedAt.After(createdAt)
	}
	return t.TransactionID > id
}
