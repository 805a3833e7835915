package services

import (
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, invalidate TenantCacheInvalidator) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The period guard comes first since the lifecycle and ledger engines
	// both depend on it.
	container.Period = NewPeriodService(repos.PeriodRepo, repos.EventSink, invalidate)

	dimensionSvc := NewDimensionService(repos.DimensionRepo)
	budgetSvc := NewBudgetService(repos.BudgetRepo, repos.JournalRepo)
	riskSvc := NewRiskService(cfg.HighValueThreshold)
	sodSvc := NewSoDService(repos.EventSink)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Period,
		dimensionSvc,
		budgetSvc,
		riskSvc,
		sodSvc,
		repos.EventSink,
		invalidate,
	)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.PeriodRepo,
		container.Period,
	)

	return container
}
