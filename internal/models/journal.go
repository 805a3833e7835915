package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

// EntryType distinguishes standard entries from reversing ones.
type EntryType string

// JournalEntry is the persistence shape of one journal entry header.
type JournalEntry struct {
	EntryID                     string          `db:"entry_id"`
	TenantID                    string          `db:"tenant_id"`
	JournalNumber               *int64          `db:"journal_number"`
	JournalDate                 time.Time       `db:"journal_date"`
	EntryType                   EntryType       `db:"entry_type"`
	Status                      EntryStatus     `db:"status"`
	Reference                   string          `db:"reference"`
	Description                 string          `db:"description"`
	AccountingPeriodID          *string         `db:"accounting_period_id"`
	SubmittedBy                 *string         `db:"submitted_by"`
	SubmittedAt                 *time.Time      `db:"submitted_at"`
	ReviewedBy                  *string         `db:"reviewed_by"`
	ReviewedAt                  *time.Time      `db:"reviewed_at"`
	PostedBy                    *string         `db:"posted_by"`
	PostedAt                    *time.Time      `db:"posted_at"`
	RejectedBy                  *string         `db:"rejected_by"`
	RejectedAt                  *time.Time      `db:"rejected_at"`
	RejectionReason             *string         `db:"rejection_reason"`
	ReturnedBy                  *string         `db:"returned_by"`
	ReturnedAt                  *time.Time      `db:"returned_at"`
	ReturnReason                *string         `db:"return_reason"`
	CorrectsEntryID             *string         `db:"corrects_entry_id"`
	ReversalOfID                *string         `db:"reversal_of_id"`
	ReversalEntryID             *string         `db:"reversal_entry_id"`
	RiskScore                   int             `db:"risk_score"`
	RiskFlags                   []string        `db:"risk_flags"`
	BudgetStatus                string          `db:"budget_status"`
	BudgetFlags                 []string        `db:"budget_flags"`
	BudgetOverrideJustification string          `db:"budget_override_justification"`
	TotalAmount                 decimal.Decimal `db:"total_amount"`
	AuditFields
}

// JournalLine is the persistence shape of one debit-or-credit leg.
type JournalLine struct {
	LineID        string          `db:"line_id"`
	EntryID       string          `db:"entry_id"`
	LineNumber    int             `db:"line_number"`
	AccountID     string          `db:"account_id"`
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
	LegalEntityID *string         `db:"legal_entity_id"`
	DepartmentID  *string         `db:"department_id"`
	ProjectID     *string         `db:"project_id"`
	FundID        *string         `db:"fund_id"`
	Description   string          `db:"description"`
}
