package services_test

import (
	"context"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/core/services"
	"github.com/SscSPs/microloan_ledger/internal/repositories/memory"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
	"github.com/stretchr/testify/suite"
)

// ledgerSuite wires every service over a fresh in-memory store and a stopped clock.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.Fixed
	repos *portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(t0)
	s.repos = memory.NewRepositoryProvider()
	s.svc = services.NewServiceContainer(nil, s.repos, nil, s.clock)
}

func (s *ledgerSuite) fund(amount string) {
	_, err := s.svc.Wallet.Credit(s.ctx, domain.WalletMovement{Amount: dec(amount), Description: "capital", UserID: testUser})
	s.Require().NoError(err)
}

func (s *ledgerSuite) balance() string {
	w, err := s.svc.Wallet.GetWallet(s.ctx)
	s.Require().NoError(err)
	return w.Balance.StringFixed(2)
}

func (s *ledgerSuite) createFixed(phone string) *domain.LoanAccount {
	loan, err := s.svc.Loan.CreateLoan(s.ctx, validLoanRequest("FIXED_MICRO", phone), testUser)
	s.Require().NoError(err)
	return loan
}

func (s *ledgerSuite) income(loanID string) []domain.ExtraIncomeRecord {
	records, _, err := s.svc.Income.ListIncome(s.ctx, loanID)
	s.Require().NoError(err)
	return records
}
