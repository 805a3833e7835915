package repositories

import (
	"context"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// DimensionReader defines read operations for dimension master data.
// Every lookup is tenant-scoped and returns apperrors.ErrNotFound for a
// missing or foreign-tenant row.
type DimensionReader interface {
	FindLegalEntityByID(ctx context.Context, tenantID, id string) (*domain.LegalEntity, error)
	FindDepartmentByID(ctx context.Context, tenantID, id string) (*domain.Department, error)
	FindProjectByID(ctx context.Context, tenantID, id string) (*domain.Project, error)
	FindFundByID(ctx context.Context, tenantID, id string) (*domain.Fund, error)
}

// DimensionRepositoryFacade combines all dimension repository interfaces.
type DimensionRepositoryFacade interface {
	DimensionReader
}
