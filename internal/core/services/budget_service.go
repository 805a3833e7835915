package services

import (
	"context"
	"fmt"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
)

// repeatWarnWindow is the trailing window over which prior WARN outcomes by
// the same creator count toward the risk uplift.
const repeatWarnWindow = 30 * 24 * time.Hour

// budgetService computes per-line budget exposure against the active
// revision and classifies OK/WARN/BLOCK.
type budgetService struct {
	budgetRepo  portsrepo.BudgetRepositoryFacade
	journalRepo portsrepo.JournalEntryReader
}

// NewBudgetService creates the budget control engine.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, journalRepo portsrepo.JournalEntryReader) portssvc.BudgetControlSvc {
	return &budgetService{budgetRepo: budgetRepo, journalRepo: journalRepo}
}

var _ portssvc.BudgetControlSvc = (*budgetService)(nil)

func (s *budgetService) CheckEntry(ctx context.Context, tenantID string, period *domain.AccountingPeriod, lines []domain.JournalLine, accounts map[string]domain.Account) (*domain.BudgetCheckResult, error) {
	result := &domain.BudgetCheckResult{Status: domain.BudgetOK}

	revision, err := s.resolveRevision(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		line := &lines[i]
		account, ok := accounts[line.AccountID]
		if !ok || !account.BudgetRelevant {
			continue
		}

		check, err := s.checkLine(ctx, revision, period, line, account)
		if err != nil {
			return nil, err
		}
		result.Lines = append(result.Lines, *check)
		result.Status = worseBudgetStatus(result.Status, check.Status)
		result.Flags = mergeFlags(result.Flags, check.Flags)
	}

	return result, nil
}

// resolveRevision finds the latest revision of the active budget for the
// fiscal year containing the period. Nil when no budget is in force.
func (s *budgetService) resolveRevision(ctx context.Context, tenantID string, period *domain.AccountingPeriod) (*domain.BudgetRevision, error) {
	budget, err := s.budgetRepo.FindActiveBudget(ctx, tenantID, period.StartDate.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active budget: %w", err)
	}
	if budget == nil {
		return nil, nil
	}
	revision, err := s.budgetRepo.FindLatestRevision(ctx, budget.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest budget revision: %w", err)
	}
	return revision, nil
}

func (s *budgetService) checkLine(ctx context.Context, revision *domain.BudgetRevision, period *domain.AccountingPeriod, line *domain.JournalLine, account domain.Account) (*domain.LineBudgetCheck, error) {
	check := &domain.LineBudgetCheck{
		LineNumber: line.LineNumber,
		AccountID:  line.AccountID,
		Status:     domain.BudgetOK,
		LineAmount: line.Amount(),
	}

	budgetLine, err := s.findBudgetLine(ctx, revision, period, line)
	if err != nil {
		return nil, err
	}
	if budgetLine == nil {
		check.Status = domain.BudgetWarn
		check.Flags = append(check.Flags, domain.BudgetFlagNoLineFound)
		return check, nil
	}

	check.BudgetedAmount = budgetLine.Amount
	if check.LineAmount.GreaterThan(budgetLine.Amount) {
		check.Flags = append(check.Flags, domain.BudgetFlagExceeded)
		if account.BudgetControlMode == domain.ControlBlock {
			check.Status = domain.BudgetBlock
		} else {
			check.Status = domain.BudgetWarn
		}
	}
	return check, nil
}

// findBudgetLine matches the exact dimension key, falling back to the
// dimension-blank line. Partial dimension matches are not supported.
func (s *budgetService) findBudgetLine(ctx context.Context, revision *domain.BudgetRevision, period *domain.AccountingPeriod, line *domain.JournalLine) (*domain.BudgetLine, error) {
	if revision == nil {
		return nil, nil
	}
	key := portsrepo.BudgetLineKey{
		AccountID:     line.AccountID,
		PeriodID:      period.PeriodID,
		LegalEntityID: line.LegalEntityID,
		DepartmentID:  line.DepartmentID,
		ProjectID:     line.ProjectID,
		FundID:        line.FundID,
	}
	budgetLine, err := s.budgetRepo.FindBudgetLine(ctx, revision.RevisionID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up budget line: %w", err)
	}
	if budgetLine != nil {
		return budgetLine, nil
	}
	budgetLine, err = s.budgetRepo.FindBudgetLine(ctx, revision.RevisionID, key.Blank())
	if err != nil {
		return nil, fmt.Errorf("failed to look up fallback budget line: %w", err)
	}
	return budgetLine, nil
}

func (s *budgetService) RepeatWarnCount(ctx context.Context, tenantID, creatorUserID, excludeEntryID string, asOf time.Time) (int, error) {
	count, err := s.journalRepo.CountBudgetWarningsByCreator(ctx, tenantID, creatorUserID, excludeEntryID, asOf.Add(-repeatWarnWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to count recent budget warnings: %w", err)
	}
	return count, nil
}

// worseBudgetStatus returns the more severe of two statuses.
func worseBudgetStatus(a, b domain.BudgetStatus) domain.BudgetStatus {
	rank := map[domain.BudgetStatus]int{domain.BudgetOK: 0, domain.BudgetWarn: 1, domain.BudgetBlock: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// mergeFlags appends the flags from src not already present in dst.
func mergeFlags(dst, src []string) []string {
	for _, f := range src {
		found := false
		for _, existing := range dst {
			if existing == f {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, f)
		}
	}
	return dst
}
