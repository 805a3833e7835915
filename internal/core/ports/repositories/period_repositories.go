package repositories

import (
	"context"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data.
type PeriodReader interface {
	// FindPeriodByID retrieves a period, tenant-scoped.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodForDate resolves the period whose range contains the date.
	// Returns apperrors.ErrNoPeriodForDate when none does.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// FindOpeningBalancesPeriod returns the tenant's Opening Balances period,
	// or nil when the tenant was never migrated.
	FindOpeningBalancesPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error)

	// FindNextOpenPeriod returns the earliest OPEN period starting after the
	// given date, or nil when there is none. Used to auto-advance reversals.
	FindNextOpenPeriod(ctx context.Context, tenantID string, after time.Time) (*domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting period data.
type PeriodWriter interface {
	// UpdatePeriodStatus flips a period between OPEN and CLOSED.
	UpdatePeriodStatus(ctx context.Context, tenantID, periodID string, status domain.PeriodStatus, userID string, at time.Time) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
