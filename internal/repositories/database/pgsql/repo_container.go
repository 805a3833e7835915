package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	journalRepo := newPgxJournalRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	dimensionRepo := newPgxDimensionRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	eventSink := newPgxEventRepository(dbPool)

	return portsrepo.RepositoryProvider{
		JournalRepo:   journalRepo,
		AccountRepo:   accountRepo,
		PeriodRepo:    periodRepo,
		DimensionRepo: dimensionRepo,
		BudgetRepo:    budgetRepo,
		LedgerRepo:    ledgerRepo,
		EventSink:     eventSink,
	}
}
