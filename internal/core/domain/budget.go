package domain

import "github.com/shopspring/decimal"

// BudgetStatus is the outcome of a budget control check.
type BudgetStatus string

const (
	BudgetOK    BudgetStatus = "OK"
	BudgetWarn  BudgetStatus = "WARN"
	BudgetBlock BudgetStatus = "BLOCK"
)

// Budget flag names persisted on the entry alongside the status.
const (
	BudgetFlagNoLineFound     = "NO_BUDGET_LINE_FOUND"
	BudgetFlagExceeded        = "BUDGET_EXCEEDED"
	BudgetFlagRepeatException = "BUDGET_REPEAT_EXCEPTION"
)

// Budget is the per-fiscal-year budget header.
type Budget struct {
	BudgetID   string `json:"budgetID"`
	TenantID   string `json:"tenantID"`
	FiscalYear int    `json:"fiscalYear"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// BudgetRevision versions a budget; control checks always run against the latest.
type BudgetRevision struct {
	RevisionID     string `json:"revisionID"`
	BudgetID       string `json:"budgetID"`
	RevisionNumber int    `json:"revisionNumber"`
	IsLatest       bool   `json:"isLatest"`
	AuditFields
}

// BudgetLine is a budgeted amount keyed by account, period and dimensions.
// A line with all dimension keys blank acts as the fallback when no exact
// dimension match exists.
type BudgetLine struct {
	BudgetLineID  string          `json:"budgetLineID"`
	RevisionID    string          `json:"revisionID"`
	AccountID     string          `json:"accountID"`
	PeriodID      string          `json:"periodID"`
	LegalEntityID *string         `json:"legalEntityID,omitempty"`
	DepartmentID  *string         `json:"departmentID,omitempty"`
	ProjectID     *string         `json:"projectID,omitempty"`
	FundID        *string         `json:"fundID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// IsDimensionBlank reports whether this is the fallback line.
func (l BudgetLine) IsDimensionBlank() bool {
	return l.LegalEntityID == nil && l.DepartmentID == nil && l.ProjectID == nil && l.FundID == nil
}

// LineBudgetCheck is the per-line outcome of a budget control run.
type LineBudgetCheck struct {
	LineNumber     int             `json:"lineNumber"`
	AccountID      string          `json:"accountID"`
	Status         BudgetStatus    `json:"status"`
	Flags          []string        `json:"flags,omitempty"`
	LineAmount     decimal.Decimal `json:"lineAmount"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
}

// BudgetCheckResult aggregates per-line outcomes: BLOCK if any line blocks,
// else WARN if any line warns, else OK.
type BudgetCheckResult struct {
	Status          BudgetStatus      `json:"status"`
	Flags           []string          `json:"flags,omitempty"`
	Lines           []LineBudgetCheck `json:"lines,omitempty"`
	RepeatWarnCount int               `json:"repeatWarnCount"`
}
