package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	JournalRepo   JournalEntryRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	PeriodRepo    PeriodRepositoryFacade
	DimensionRepo DimensionRepositoryFacade
	BudgetRepo    BudgetRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	EventSink     EventSink
}
