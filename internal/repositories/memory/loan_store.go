package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
)

func (s *Store) FindLoanByID(_ context.Context, loanID string) (*domain.LoanAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loan, ok := s.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	c := loan.Clone()
	return &c, nil
}

func (s *Store) ListLoans(_ context.Context, filter domain.LoanFilter) ([]domain.LoanAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LoanAccount, 0, len(s.loanOrder))
	for i := len(s.loanOrder) - 1; i >= 0; i-- {
		loan := s.loans[s.loanOrder[i]]
		if filter.Status != "" && loan.Status != filter.Status {
			continue
		}
		if filter.Product != "" && loan.Parameters.Product != filter.Product {
			continue
		}
		out = append(out, loan.Clone())
	}
	return out, nil
}

func (s *Store) CountLoansByProduct(_ context.Context, product domain.ProductVariant) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, loan := range s.loans {
		if loan.Parameters.Product == product {
			n++
		}
	}
	return n, nil
}

func (s *Store) SaveLoan(_ context.Context, loan domain.LoanAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[loan.LoanID]; ok {
		return &apperrors.DuplicateError{Field: "loan_id", Value: loan.LoanID}
	}
	if err := s.checkIdentity(loan); err != nil {
		return err
	}
	s.loans[loan.LoanID] = loan.Clone()
	s.loanOrder = append(s.loanOrder, loan.LoanID)
	return nil
}

func (s *Store) UpdateLoanDetails(_ context.Context, loan domain.LoanAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.loans[loan.LoanID]
	if !ok {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loan.LoanID)
	}
	if err := s.checkIdentity(loan); err != nil {
		return err
	}
	stored.Borrower = loan.Borrower
	stored.LastUpdatedAt = loan.LastUpdatedAt
	stored.LastUpdatedBy = loan.LastUpdatedBy
	s.loans[loan.LoanID] = stored
	return nil
}

func (s *Store) DeleteLoan(_ context.Context, loanID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[loanID]; !ok {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	delete(s.loans, loanID)
	delete(s.payments, loanID)
	for i, id := range s.loanOrder {
		if id == loanID {
			s.loanOrder = append(s.loanOrder[:i], s.loanOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) ApplyLoanPayment(_ context.Context, loan domain.LoanAccount, settled []int, payment domain.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.loans[loan.LoanID]
	if !ok {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loan.LoanID)
	}
	for _, idx := range settled {
		if idx < 0 || idx >= len(stored.Schedule) {
			return fmt.Errorf("%w: index %d", apperrors.ErrIndexOutOfRange, idx)
		}
		if !stored.Schedule[idx].IsPending() {
			return fmt.Errorf("%w: installment %d was paid concurrently", apperrors.ErrEntryAlreadySettled, idx+1)
		}
	}
	for _, idx := range settled {
		stored.Schedule[idx] = loan.Schedule[idx].Clone()
	}
	stored.TotalPaid = loan.TotalPaid
	stored.RemainingAmount = loan.RemainingAmount
	stored.Status = loan.Status
	stored.LastUpdatedAt = loan.LastUpdatedAt
	stored.LastUpdatedBy = loan.LastUpdatedBy
	s.loans[loan.LoanID] = stored
	s.payments[loan.LoanID] = append(s.payments[loan.LoanID], clonePayment(payment))
	return nil
}

func (s *Store) ListPaymentsByLoan(_ context.Context, loanID string) ([]domain.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.payments[loanID]
	out := make([]domain.PaymentRecord, len(stored))
	for i, p := range stored {
		out[i] = clonePayment(p)
	}
	return out, nil
}

// checkIdentity enforces unique phone and national ID within a product.
// Caller holds the write lock.
func (s *Store) checkIdentity(loan domain.LoanAccount) error {
	for id, other := range s.loans {
		if id == loan.LoanID || other.Parameters.Product != loan.Parameters.Product {
			continue
		}
		if other.Borrower.Phone == loan.Borrower.Phone {
			return &apperrors.DuplicateError{Field: "phone", Value: loan.Borrower.Phone}
		}
		if loan.Borrower.NationalID != "" && other.Borrower.NationalID == loan.Borrower.NationalID {
			return &apperrors.DuplicateError{Field: "national_id", Value: loan.Borrower.NationalID}
		}
	}
	return nil
}
