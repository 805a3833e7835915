package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	"github.com/uspireit-code/uspire-ledger/internal/models"
	"github.com/uspireit-code/uspire-ledger/internal/utils/mapping"
)

const periodColumns = `
	period_id, tenant_id, name, start_date, end_date, status, close_checklist_done,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriodRow(row pgx.Row) (*models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.TenantID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CloseChecklistDone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPeriodByID retrieves a period by its ID, tenant-scoped.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND period_id = $2;`

	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+periodID, err)
	}

	period := mapping.ToDomainAccountingPeriod(*m)
	return &period, nil
}

// FindPeriodForDate resolves the period whose date range contains the date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE tenant_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1;`

	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoPeriodForDate
		}
		return nil, apperrors.NewAppError(500, "failed to find period for date", err)
	}

	period := mapping.ToDomainAccountingPeriod(*m)
	return &period, nil
}

// FindOpeningBalancesPeriod returns the tenant's Opening Balances period, or nil.
func (r *PgxPeriodRepository) FindOpeningBalancesPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE tenant_id = $1 AND name = $2
		LIMIT 1;`

	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, tenantID, domain.OpeningBalancesPeriodName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find opening balances period for tenant "+tenantID, err)
	}

	period := mapping.ToDomainAccountingPeriod(*m)
	return &period, nil
}

// FindNextOpenPeriod returns the earliest OPEN period starting after the date, or nil.
func (r *PgxPeriodRepository) FindNextOpenPeriod(ctx context.Context, tenantID string, after time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE tenant_id = $1 AND status = 'OPEN' AND start_date > $2
		ORDER BY start_date
		LIMIT 1;`

	m, err := scanPeriodRow(r.Pool.QueryRow(ctx, query, tenantID, after))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find next open period for tenant "+tenantID, err)
	}

	period := mapping.ToDomainAccountingPeriod(*m)
	return &period, nil
}

// UpdatePeriodStatus flips a period between OPEN and CLOSED.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, tenantID, periodID string, status domain.PeriodStatus, userID string, at time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND period_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, periodID, string(status), at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
