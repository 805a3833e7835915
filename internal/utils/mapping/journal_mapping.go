package mapping

import (
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:                     d.EntryID,
		TenantID:                    d.TenantID,
		JournalNumber:               d.JournalNumber,
		JournalDate:                 d.JournalDate,
		EntryType:                   models.EntryType(d.EntryType),
		Status:                      models.EntryStatus(d.Status),
		Reference:                   d.Reference,
		Description:                 d.Description,
		AccountingPeriodID:          d.AccountingPeriodID,
		SubmittedBy:                 d.SubmittedBy,
		SubmittedAt:                 d.SubmittedAt,
		ReviewedBy:                  d.ReviewedBy,
		ReviewedAt:                  d.ReviewedAt,
		PostedBy:                    d.PostedBy,
		PostedAt:                    d.PostedAt,
		RejectedBy:                  d.RejectedBy,
		RejectedAt:                  d.RejectedAt,
		RejectionReason:             d.RejectionReason,
		ReturnedBy:                  d.ReturnedBy,
		ReturnedAt:                  d.ReturnedAt,
		ReturnReason:                d.ReturnReason,
		CorrectsEntryID:             d.CorrectsEntryID,
		ReversalOfID:                d.ReversalOfID,
		ReversalEntryID:             d.ReversalEntryID,
		RiskScore:                   d.RiskScore,
		RiskFlags:                   d.RiskFlags,
		BudgetStatus:                string(d.BudgetStatus),
		BudgetFlags:                 d.BudgetFlags,
		BudgetOverrideJustification: d.BudgetOverrideJustification,
		TotalAmount:                 d.TotalAmount,
		AuditFields:                 ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:                     m.EntryID,
		TenantID:                    m.TenantID,
		JournalNumber:               m.JournalNumber,
		JournalDate:                 m.JournalDate,
		EntryType:                   domain.EntryType(m.EntryType),
		Status:                      domain.EntryStatus(m.Status),
		Reference:                   m.Reference,
		Description:                 m.Description,
		AccountingPeriodID:          m.AccountingPeriodID,
		SubmittedBy:                 m.SubmittedBy,
		SubmittedAt:                 m.SubmittedAt,
		ReviewedBy:                  m.ReviewedBy,
		ReviewedAt:                  m.ReviewedAt,
		PostedBy:                    m.PostedBy,
		PostedAt:                    m.PostedAt,
		RejectedBy:                  m.RejectedBy,
		RejectedAt:                  m.RejectedAt,
		RejectionReason:             m.RejectionReason,
		ReturnedBy:                  m.ReturnedBy,
		ReturnedAt:                  m.ReturnedAt,
		ReturnReason:                m.ReturnReason,
		CorrectsEntryID:             m.CorrectsEntryID,
		ReversalOfID:                m.ReversalOfID,
		ReversalEntryID:             m.ReversalEntryID,
		RiskScore:                   m.RiskScore,
		RiskFlags:                   m.RiskFlags,
		BudgetStatus:                domain.BudgetStatus(m.BudgetStatus),
		BudgetFlags:                 m.BudgetFlags,
		BudgetOverrideJustification: m.BudgetOverrideJustification,
		TotalAmount:                 m.TotalAmount,
		AuditFields:                 ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:        d.LineID,
		EntryID:       d.EntryID,
		LineNumber:    d.LineNumber,
		AccountID:     d.AccountID,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		LegalEntityID: d.LegalEntityID,
		DepartmentID:  d.DepartmentID,
		ProjectID:     d.ProjectID,
		FundID:        d.FundID,
		Description:   d.Description,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		LineNumber:    m.LineNumber,
		AccountID:     m.AccountID,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		LegalEntityID: m.LegalEntityID,
		DepartmentID:  m.DepartmentID,
		ProjectID:     m.ProjectID,
		FundID:        m.FundID,
		Description:   m.Description,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
