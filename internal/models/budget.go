package models

import "github.com/shopspring/decimal"

// Budget is the per-fiscal-year budget header row.
type Budget struct {
	BudgetID   string `db:"budget_id"`
	TenantID   string `db:"tenant_id"`
	FiscalYear int    `db:"fiscal_year"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// BudgetRevision is one version of a budget.
type BudgetRevision struct {
	RevisionID     string `db:"revision_id"`
	BudgetID       string `db:"budget_id"`
	RevisionNumber int    `db:"revision_number"`
	IsLatest       bool   `db:"is_latest"`
	AuditFields
}

// BudgetLine is one budgeted amount row.
type BudgetLine struct {
	BudgetLineID  string          `db:"budget_line_id"`
	RevisionID    string          `db:"revision_id"`
	AccountID     string          `db:"account_id"`
	PeriodID      string          `db:"period_id"`
	LegalEntityID *string         `db:"legal_entity_id"`
	DepartmentID  *string         `db:"department_id"`
	ProjectID     *string         `db:"project_id"`
	FundID        *string         `db:"fund_id"`
	Amount        decimal.Decimal `db:"amount"`
}
