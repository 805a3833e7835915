package domain

// Risk flag names. Flags are mutually non-exclusive; the score is the sum
// of the points of every flag raised.
const (
	RiskFlagManualJournal    = "MANUAL_JOURNAL"
	RiskFlagReversal         = "REVERSAL"
	RiskFlagCorrecting       = "CORRECTING"
	RiskFlagHighValue        = "HIGH_VALUE"
	RiskFlagBackdated        = "BACKDATED"
	RiskFlagLatePosting      = "LATE_POSTING"
	RiskFlagSensitiveAccount = "SENSITIVE_ACCOUNT"
	RiskFlagBudgetException  = "BUDGET_EXCEPTION"
	RiskFlagBudgetRepeat     = BudgetFlagRepeatException
)

// Points per flag.
const (
	RiskPointsManualJournal    = 10
	RiskPointsReversal         = 20
	RiskPointsCorrecting       = 15
	RiskPointsHighValue        = 15
	RiskPointsBackdated        = 10
	RiskPointsLatePosting      = 10
	RiskPointsSensitiveAccount = 15
	RiskPointsBudgetException  = 15
	RiskPointsPerRepeatWarn    = 5
	RiskRepeatUpliftCap        = 20
)

// DefaultHighValueThreshold is the entry total at which HIGH_VALUE is
// flagged, overridable via configuration.
const DefaultHighValueThreshold = 100000

// RiskAssessment is the outcome of a risk scoring run, recomputed and
// persisted at submit, review and post.
type RiskAssessment struct {
	Score int      `json:"score"`
	Flags []string `json:"flags,omitempty"`
}

// Has reports whether the assessment raised the given flag.
func (r RiskAssessment) Has(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
