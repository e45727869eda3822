// Package memory holds in-process repository implementations. They back the
// service when no database is configured and are used by service tests.
package memory

import (
	"sync"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	"github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store keeps every aggregate behind one mutex, so each method is atomic the
// way a database transaction would be.
type Store struct {
	mu sync.RWMutex

	loans     map[string]domain.LoanAccount
	loanOrder []string
	payments  map[string][]domain.PaymentRecord

	wallet       domain.Wallet
	walletExists bool
	transactions []domain.WalletTransaction

	income []domain.ExtraIncomeRecord
}

var (
	_ repositories.LoanRepositoryFacade   = (*Store)(nil)
	_ repositories.WalletRepositoryFacade = (*Store)(nil)
	_ repositories.IncomeRepositoryFacade = (*Store)(nil)
)

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		loans:    make(map[string]domain.LoanAccount),
		payments: make(map[string][]domain.PaymentRecord),
	}
}

// NewRepositoryProvider returns a provider whose repositories all share one Store.
func NewRepositoryProvider() *repositories.RepositoryProvider {
	s := NewStore()
	return &repositories.RepositoryProvider{
		LoanRepo:   s,
		WalletRepo: s,
		IncomeRepo: s,
	}
}

func clonePayment(p domain.PaymentRecord) domain.PaymentRecord {
	p.EntryIndices = append([]int(nil), p.EntryIndices...)
	return p
}

func zeroWallet() domain.Wallet {
	return domain.Wallet{WalletID: domain.MainWalletID, Balance: decimal.Zero}
}
