package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	"github.com/uspireit-code/uspire-ledger/internal/models"
	"github.com/uspireit-code/uspire-ledger/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// FindActiveBudget returns the tenant's active budget for the fiscal year, or nil.
func (r *PgxBudgetRepository) FindActiveBudget(ctx context.Context, tenantID string, fiscalYear int) (*domain.Budget, error) {
	query := `
		SELECT budget_id, tenant_id, fiscal_year, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		WHERE tenant_id = $1 AND fiscal_year = $2 AND is_active
		LIMIT 1;
	`
	var m models.Budget
	err := r.Pool.QueryRow(ctx, query, tenantID, fiscalYear).Scan(
		&m.BudgetID,
		&m.TenantID,
		&m.FiscalYear,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find active budget for tenant "+tenantID, err)
	}

	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

// FindLatestRevision returns the latest revision of a budget.
func (r *PgxBudgetRepository) FindLatestRevision(ctx context.Context, budgetID string) (*domain.BudgetRevision, error) {
	query := `
		SELECT revision_id, budget_id, revision_number, is_latest,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budget_revisions
		WHERE budget_id = $1 AND is_latest
		LIMIT 1;
	`
	var m models.BudgetRevision
	err := r.Pool.QueryRow(ctx, query, budgetID).Scan(
		&m.RevisionID,
		&m.BudgetID,
		&m.RevisionNumber,
		&m.IsLatest,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest revision of budget "+budgetID, err)
	}

	revision := mapping.ToDomainBudgetRevision(m)
	return &revision, nil
}

// FindBudgetLine returns the line matching the exact key, or nil. Nil key
// dimensions match only NULL columns, so the blank fallback line is addressed
// by a key with all four dimensions nil.
func (r *PgxBudgetRepository) FindBudgetLine(ctx context.Context, revisionID string, key portsrepo.BudgetLineKey) (*domain.BudgetLine, error) {
	query := `
		SELECT budget_line_id, revision_id, account_id, period_id,
		       legal_entity_id, department_id, project_id, fund_id, amount
		FROM budget_lines
		WHERE revision_id = $1 AND account_id = $2 AND period_id = $3
		  AND legal_entity_id IS NOT DISTINCT FROM $4
		  AND department_id IS NOT DISTINCT FROM $5
		  AND project_id IS NOT DISTINCT FROM $6
		  AND fund_id IS NOT DISTINCT FROM $7
		LIMIT 1;
	`
	var m models.BudgetLine
	err := r.Pool.QueryRow(ctx, query, revisionID, key.AccountID, key.PeriodID,
		key.LegalEntityID, key.DepartmentID, key.ProjectID, key.FundID).Scan(
		&m.BudgetLineID,
		&m.RevisionID,
		&m.AccountID,
		&m.PeriodID,
		&m.LegalEntityID,
		&m.DepartmentID,
		&m.ProjectID,
		&m.FundID,
		&m.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find budget line in revision "+revisionID, err)
	}

	line := mapping.ToDomainBudgetLine(m)
	return &line, nil
}
