package mapping

import (
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/models"
)

// ToDomainDimension converts the shared dimension columns.
func ToDomainDimension(m models.Dimension) domain.Dimension {
	return domain.Dimension{
		DimensionID:   m.DimensionID,
		TenantID:      m.TenantID,
		Code:          m.Code,
		Name:          m.Name,
		IsActive:      m.IsActive,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
	}
}

// ToDomainLegalEntity converts a model LegalEntity to a domain LegalEntity
func ToDomainLegalEntity(m models.LegalEntity) domain.LegalEntity {
	return domain.LegalEntity{Dimension: ToDomainDimension(m.Dimension)}
}

// ToDomainDepartment converts a model Department to a domain Department
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{Dimension: ToDomainDimension(m.Dimension)}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		Dimension:    ToDomainDimension(m.Dimension),
		RequiresFund: m.RequiresFund,
		IsRestricted: m.IsRestricted,
	}
}

// ToDomainFund converts a model Fund to a domain Fund
func ToDomainFund(m models.Fund) domain.Fund {
	return domain.Fund{
		Dimension: ToDomainDimension(m.Dimension),
		ProjectID: m.ProjectID,
	}
}
