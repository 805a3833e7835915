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

const dimensionColumns = `dimension_id, tenant_id, code, name, is_active, effective_from, effective_to`

type PgxDimensionRepository struct {
	BaseRepository
}

// newPgxDimensionRepository creates a new repository for dimension master data.
func newPgxDimensionRepository(pool *pgxpool.Pool) portsrepo.DimensionRepositoryFacade {
	return &PgxDimensionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DimensionRepositoryFacade = (*PgxDimensionRepository)(nil)

func scanDimension(row pgx.Row, extra ...interface{}) (models.Dimension, error) {
	var m models.Dimension
	dest := []interface{}{
		&m.DimensionID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.IsActive,
		&m.EffectiveFrom,
		&m.EffectiveTo,
	}
	dest = append(dest, extra...)
	return m, row.Scan(dest...)
}

func mapDimensionErr(err error, table, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return apperrors.NewAppError(500, "failed to find "+table+" "+id, err)
}

// FindLegalEntityByID retrieves a legal entity, tenant-scoped.
func (r *PgxDimensionRepository) FindLegalEntityByID(ctx context.Context, tenantID, id string) (*domain.LegalEntity, error) {
	query := `SELECT ` + dimensionColumns + ` FROM legal_entities WHERE tenant_id = $1 AND dimension_id = $2;`

	m, err := scanDimension(r.Pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, mapDimensionErr(err, "legal entity", id)
	}

	entity := mapping.ToDomainLegalEntity(models.LegalEntity{Dimension: m})
	return &entity, nil
}

// FindDepartmentByID retrieves a department, tenant-scoped.
func (r *PgxDimensionRepository) FindDepartmentByID(ctx context.Context, tenantID, id string) (*domain.Department, error) {
	query := `SELECT ` + dimensionColumns + ` FROM departments WHERE tenant_id = $1 AND dimension_id = $2;`

	m, err := scanDimension(r.Pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, mapDimensionErr(err, "department", id)
	}

	department := mapping.ToDomainDepartment(models.Department{Dimension: m})
	return &department, nil
}

// FindProjectByID retrieves a project, tenant-scoped.
func (r *PgxDimensionRepository) FindProjectByID(ctx context.Context, tenantID, id string) (*domain.Project, error) {
	query := `SELECT ` + dimensionColumns + `, requires_fund, is_restricted
		FROM projects WHERE tenant_id = $1 AND dimension_id = $2;`

	var requiresFund, isRestricted bool
	m, err := scanDimension(r.Pool.QueryRow(ctx, query, tenantID, id), &requiresFund, &isRestricted)
	if err != nil {
		return nil, mapDimensionErr(err, "project", id)
	}

	project := mapping.ToDomainProject(models.Project{
		Dimension:    m,
		RequiresFund: requiresFund,
		IsRestricted: isRestricted,
	})
	return &project, nil
}

// FindFundByID retrieves a fund, tenant-scoped.
func (r *PgxDimensionRepository) FindFundByID(ctx context.Context, tenantID, id string) (*domain.Fund, error) {
	query := `SELECT ` + dimensionColumns + `, project_id
		FROM funds WHERE tenant_id = $1 AND dimension_id = $2;`

	var projectID string
	m, err := scanDimension(r.Pool.QueryRow(ctx, query, tenantID, id), &projectID)
	if err != nil {
		return nil, mapDimensionErr(err, "fund", id)
	}

	fund := mapping.ToDomainFund(models.Fund{Dimension: m, ProjectID: projectID})
	return &fund, nil
}
