package services

import (
	"context"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// PeriodGuardSvc resolves periods and enforces open/closed and cutover rules.
type PeriodGuardSvc interface {
	// ResolvePeriod finds the period containing the date.
	// Fails apperrors.ErrNoPeriodForDate when none does.
	ResolvePeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// ResolveOpenPeriod resolves the period and asserts it is OPEN.
	ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// CutoverDate returns the start date of the CLOSED Opening Balances
	// period, or nil when the tenant has no cutover.
	CutoverDate(ctx context.Context, tenantID string) (*time.Time, error)

	// AssertDateNotBeforeCutover fails apperrors.ErrCutoverViolation for
	// dates before a non-nil cutover. Opening-balance journals are exempt.
	AssertDateNotBeforeCutover(ctx context.Context, tenantID string, date time.Time, isOpeningBalanceEntry bool) error

	// AssertPostable combines the open-period and opening-balances-period
	// gates for a posting dated inside the given period.
	AssertPostable(ctx context.Context, period *domain.AccountingPeriod, isOpeningBalanceEntry bool) error

	// NextOpenPeriodDate returns the given date if its period is OPEN, else
	// the start date of the next OPEN period. Used to place reversals.
	NextOpenPeriodDate(ctx context.Context, tenantID string, date time.Time) (time.Time, *domain.AccountingPeriod, error)

	// ClosePeriod marks a period CLOSED once its checklist is done.
	ClosePeriod(ctx context.Context, authCtx domain.AuthContext, periodID string) error

	// ReopenPeriod marks a CLOSED period OPEN again. The Opening Balances
	// period never reopens: its close is the cutover lock.
	ReopenPeriod(ctx context.Context, authCtx domain.AuthContext, periodID string) error
}

// DimensionValidatorSvc validates the dimension coding of journal lines.
type DimensionValidatorSvc interface {
	// ValidateLines checks every line's dimensions against the account rules
	// and effective dating. Returns a FieldError naming the first offending
	// line, or nil when all lines pass.
	ValidateLines(ctx context.Context, tenantID string, journalDate time.Time, lines []domain.JournalLine, accounts map[string]domain.Account) error
}

// BudgetControlSvc computes budget exposure for an entry's lines.
type BudgetControlSvc interface {
	// CheckEntry classifies each budget-relevant line OK/WARN/BLOCK against
	// the active revision for the fiscal year of the given period.
	CheckEntry(ctx context.Context, tenantID string, period *domain.AccountingPeriod, lines []domain.JournalLine, accounts map[string]domain.Account) (*domain.BudgetCheckResult, error)

	// RepeatWarnCount counts the creator's WARN outcomes in the trailing
	// 30 days, feeding the risk uplift. The entry being scored is excluded
	// by excludeEntryID so its own persisted WARN never counts as a prior.
	RepeatWarnCount(ctx context.Context, tenantID, creatorUserID, excludeEntryID string, asOf time.Time) (int, error)
}

// RiskScoringInput carries everything the scoring heuristics look at.
type RiskScoringInput struct {
	Entry           *domain.JournalEntry
	Accounts        map[string]domain.Account
	Budget          *domain.BudgetCheckResult
	RepeatWarnCount int
	Period          *domain.AccountingPeriod // nil before posting resolves it
	AtPostStage     bool
	Now             time.Time
}

// RiskScoringSvc computes the additive fraud/exception score.
type RiskScoringSvc interface {
	Score(input RiskScoringInput) domain.RiskAssessment
}

// SoDSvc enforces segregation of duties between entry roles.
type SoDSvc interface {
	// RequireSeparation fails apperrors.ErrSoDViolation when both user ids
	// are set and equal, recording a control-violation event first.
	RequireSeparation(ctx context.Context, tenantID, entryID, label string, userA, userB *string) error
}
