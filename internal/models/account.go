package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account represents one chart-of-accounts row.
type Account struct {
	AccountID         string      `db:"account_id"`
	TenantID          string      `db:"tenant_id"`
	Code              string      `db:"code"`
	Name              string      `db:"name"`
	AccountType       AccountType `db:"account_type"`
	NormalBalance     string      `db:"normal_balance"`
	IsControlAccount  bool        `db:"is_control_account"`
	AllowPosting      bool        `db:"allow_posting"`
	IsActive          bool        `db:"is_active"`
	RequiresProject   bool        `db:"requires_project"`
	BudgetRelevant    bool        `db:"budget_relevant"`
	BudgetControlMode string      `db:"budget_control_mode"`
	IsSensitive       bool        `db:"is_sensitive"`
	AuditFields
}
