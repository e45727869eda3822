package memory

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
)

func (s *Store) SaveIncome(_ context.Context, record domain.ExtraIncomeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.income = append(s.income, record)
	return nil
}

func (s *Store) ListIncome(_ context.Context, loanID string) ([]domain.ExtraIncomeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ExtraIncomeRecord, 0)
	for i := len(s.income) - 1; i >= 0; i-- {
		if loanID != "" && s.income[i].LoanID != loanID {
			continue
		}
		out = append(out, s.income[i])
	}
	return out, nil
}
