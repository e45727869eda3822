package pgsql

import (
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LoanRepo:   newPgxLoanRepository(dbPool),
		WalletRepo: newPgxWalletRepository(dbPool),
		IncomeRepo: newPgxIncomeRepository(dbPool),
	}
}
