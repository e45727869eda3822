package services

import (
	"github.com/SscSPs/microloan_ledger/internal/core/ledger"
	portsrepo "github.com/SscSPs/microloan_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/platform/config"
	"github.com/SscSPs/microloan_ledger/internal/platform/lock"
	"github.com/SscSPs/microloan_ledger/internal/utils/clock"
)

// NewEngineFromConfig builds the ledger engine from configured rates and defaults.
func NewEngineFromConfig(cfg *config.Config) *ledger.Engine {
	if cfg == nil {
		return ledger.NewEngine()
	}
	return ledger.NewEngine(
		ledger.WithOverdueDailyRate(cfg.OverdueDailyRate),
		ledger.WithFileChargeRate(cfg.VariableFileChargeRate),
		ledger.WithProcessingFee(cfg.FixedMicroProcessingFee),
		ledger.WithFixedMicroDefaults(cfg.FixedMicroPrincipal, cfg.FixedMicroInstallment, cfg.FixedMicroInterval),
	)
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil locker falls back to an in-process keyed mutex and a nil clock to the system clock.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, locker lock.Locker, clk clock.Clock) *portssvc.ServiceContainer {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	if clk == nil {
		clk = clock.System{}
	}
	engine := NewEngineFromConfig(cfg)

	container := &portssvc.ServiceContainer{}

	// Wallet first: every other writer moves cash through it.
	container.Wallet = NewWalletService(repos.WalletRepo, WithWalletClock(clk))
	container.Income = NewIncomeService(repos.IncomeRepo, repos.LoanRepo, container.Wallet, WithIncomeClock(clk))

	container.Loan = NewLoanService(
		repos.LoanRepo,
		container.Wallet,
		container.Income,
		WithLoanEngine(engine),
		WithLoanLocker(locker),
		WithLoanClock(clk),
	)
	container.Payment = NewPaymentService(
		repos.LoanRepo,
		container.Wallet,
		container.Income,
		WithPaymentEngine(engine),
		WithPaymentLocker(locker),
		WithPaymentClock(clk),
	)
	container.Portfolio = NewPortfolioService(repos.LoanRepo, engine, clk)

	return container
}

