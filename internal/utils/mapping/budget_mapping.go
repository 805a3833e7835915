package mapping

import (
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/models"
)

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		TenantID:    m.TenantID,
		FiscalYear:  m.FiscalYear,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetRevision converts a model BudgetRevision to a domain BudgetRevision
func ToDomainBudgetRevision(m models.BudgetRevision) domain.BudgetRevision {
	return domain.BudgetRevision{
		RevisionID:     m.RevisionID,
		BudgetID:       m.BudgetID,
		RevisionNumber: m.RevisionNumber,
		IsLatest:       m.IsLatest,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetLine converts a model BudgetLine to a domain BudgetLine
func ToDomainBudgetLine(m models.BudgetLine) domain.BudgetLine {
	return domain.BudgetLine{
		BudgetLineID:  m.BudgetLineID,
		RevisionID:    m.RevisionID,
		AccountID:     m.AccountID,
		PeriodID:      m.PeriodID,
		LegalEntityID: m.LegalEntityID,
		DepartmentID:  m.DepartmentID,
		ProjectID:     m.ProjectID,
		FundID:        m.FundID,
		Amount:        m.Amount,
	}
}
