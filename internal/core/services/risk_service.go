package services

import (
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// riskService computes the additive fraud/exception score. Pure rule
// evaluation: every input is passed in, nothing is fetched.
type riskService struct {
	highValueThreshold decimal.Decimal
}

// NewRiskService creates the risk scoring engine. A zero threshold falls
// back to the default.
func NewRiskService(highValueThreshold decimal.Decimal) portssvc.RiskScoringSvc {
	if highValueThreshold.IsZero() {
		highValueThreshold = decimal.NewFromInt(domain.DefaultHighValueThreshold)
	}
	return &riskService{highValueThreshold: highValueThreshold}
}

var _ portssvc.RiskScoringSvc = (*riskService)(nil)

func (s *riskService) Score(input portssvc.RiskScoringInput) domain.RiskAssessment {
	var assessment domain.RiskAssessment
	entry := input.Entry

	add := func(flag string, points int) {
		assessment.Flags = append(assessment.Flags, flag)
		assessment.Score += points
	}

	if entry.IsReversal() {
		add(domain.RiskFlagReversal, domain.RiskPointsReversal)
	} else {
		add(domain.RiskFlagManualJournal, domain.RiskPointsManualJournal)
	}

	if entry.CorrectsEntryID != nil {
		add(domain.RiskFlagCorrecting, domain.RiskPointsCorrecting)
	}

	if entry.TotalAmount.GreaterThanOrEqual(s.highValueThreshold) {
		add(domain.RiskFlagHighValue, domain.RiskPointsHighValue)
	}

	if entry.JournalDate.Before(startOfDay(entry.CreatedAt)) {
		add(domain.RiskFlagBackdated, domain.RiskPointsBackdated)
	}

	// Late posting compares the wall clock against the period end, so an
	// entry dated in time still flags when its posting is delayed.
	if input.AtPostStage && input.Period != nil && input.Now.After(input.Period.EndDate) {
		add(domain.RiskFlagLatePosting, domain.RiskPointsLatePosting)
	}

	for i := range entry.Lines {
		if account, ok := input.Accounts[entry.Lines[i].AccountID]; ok && account.IsSensitive {
			add(domain.RiskFlagSensitiveAccount, domain.RiskPointsSensitiveAccount)
			break
		}
	}

	if input.Budget != nil && input.Budget.Status == domain.BudgetWarn {
		add(domain.RiskFlagBudgetException, domain.RiskPointsBudgetException)
		uplift := input.RepeatWarnCount * domain.RiskPointsPerRepeatWarn
		if uplift > domain.RiskRepeatUpliftCap {
			uplift = domain.RiskRepeatUpliftCap
		}
		if uplift > 0 {
			assessment.Score += uplift
			assessment.Flags = append(assessment.Flags, domain.RiskFlagBudgetRepeat)
		}
	}

	return assessment
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
