package mapping

import (
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		TenantID:          d.TenantID,
		Code:              d.Code,
		Name:              d.Name,
		AccountType:       models.AccountType(d.AccountType),
		NormalBalance:     string(d.NormalBalance),
		IsControlAccount:  d.IsControlAccount,
		AllowPosting:      d.AllowPosting,
		IsActive:          d.IsActive,
		RequiresProject:   d.RequiresProject,
		BudgetRelevant:    d.BudgetRelevant,
		BudgetControlMode: string(d.BudgetControlMode),
		IsSensitive:       d.IsSensitive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		TenantID:          m.TenantID,
		Code:              m.Code,
		Name:              m.Name,
		AccountType:       domain.AccountType(m.AccountType),
		NormalBalance:     domain.BalanceSide(m.NormalBalance),
		IsControlAccount:  m.IsControlAccount,
		AllowPosting:      m.AllowPosting,
		IsActive:          m.IsActive,
		RequiresProject:   m.RequiresProject,
		BudgetRelevant:    m.BudgetRelevant,
		BudgetControlMode: domain.BudgetControlMode(m.BudgetControlMode),
		IsSensitive:       m.IsSensitive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
