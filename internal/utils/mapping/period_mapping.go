package mapping

import (
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/models"
)

// ToModelAccountingPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelAccountingPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:           d.PeriodID,
		TenantID:           d.TenantID,
		Name:               d.Name,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		Status:             string(d.Status),
		CloseChecklistDone: d.CloseChecklistDone,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountingPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainAccountingPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:           m.PeriodID,
		TenantID:           m.TenantID,
		Name:               m.Name,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		Status:             domain.PeriodStatus(m.Status),
		CloseChecklistDone: m.CloseChecklistDone,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
