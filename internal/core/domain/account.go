package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide indicates the normal balance side of an account.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// BudgetControlMode determines whether exceeding budget stops posting or merely flags it.
type BudgetControlMode string

const (
	ControlWarn  BudgetControlMode = "WARN"
	ControlBlock BudgetControlMode = "BLOCK"
)

// Account represents a chart-of-accounts row.
type Account struct {
	AccountID         string            `json:"accountID"`
	TenantID          string            `json:"tenantID"`
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	AccountType       AccountType       `json:"accountType"`
	NormalBalance     BalanceSide       `json:"normalBalance"`
	IsControlAccount  bool              `json:"isControlAccount"` // control accounts never take a department
	AllowPosting      bool              `json:"allowPosting"`     // summary accounts are not postable
	IsActive          bool              `json:"isActive"`
	RequiresProject   bool              `json:"requiresProject"`
	BudgetRelevant    bool              `json:"budgetRelevant"`
	BudgetControlMode BudgetControlMode `json:"budgetControlMode"`
	IsSensitive       bool              `json:"isSensitive"` // flagged accounts uplift the risk score
	AuditFields
}

// DimensionRequirement classifies whether a dimension must, may, or must not
// be coded on a journal line.
type DimensionRequirement string

const (
	RequirementRequired  DimensionRequirement = "REQUIRED"
	RequirementOptional  DimensionRequirement = "OPTIONAL"
	RequirementForbidden DimensionRequirement = "FORBIDDEN"
)

// DepartmentRequirement derives whether a department must be coded on lines
// hitting this account. Control accounts never take one; income and expense
// accounts (and anything outside the balance-sheet types) always do.
func (a Account) DepartmentRequirement() DimensionRequirement {
	if a.IsControlAccount {
		return RequirementForbidden
	}
	switch a.AccountType {
	case Asset, Liability, Equity:
		return RequirementOptional
	default:
		return RequirementRequired
	}
}
