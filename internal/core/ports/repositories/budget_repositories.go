package repositories

import (
	"context"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// BudgetLineKey identifies a budget line inside a revision. Nil dimension
// pointers mean "blank", so a key with all four nil addresses the fallback line.
type BudgetLineKey struct {
	AccountID     string
	PeriodID      string
	LegalEntityID *string
	DepartmentID  *string
	ProjectID     *string
	FundID        *string
}

// Blank returns the dimension-blank fallback key for the same account/period.
func (k BudgetLineKey) Blank() BudgetLineKey {
	return BudgetLineKey{AccountID: k.AccountID, PeriodID: k.PeriodID}
}

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindActiveBudget returns the tenant's active budget for the fiscal
	// year, or nil when no budget is in force.
	FindActiveBudget(ctx context.Context, tenantID string, fiscalYear int) (*domain.Budget, error)

	// FindLatestRevision returns the latest revision of a budget.
	FindLatestRevision(ctx context.Context, budgetID string) (*domain.BudgetRevision, error)

	// FindBudgetLine returns the line matching the exact key, or nil when no
	// line matches. Nil key dimensions match only NULL columns.
	FindBudgetLine(ctx context.Context, revisionID string, key BudgetLineKey) (*domain.BudgetLine, error)
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
}
