package domain

import "time"

// PeriodStatus indicates whether a period accepts activity.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// OpeningBalancesPeriodName names the special period holding the one-time
// cutover entry. Once this period is CLOSED, every date before its start
// is locked as immutable pre-migration history.
const OpeningBalancesPeriodName = "Opening Balances"

// AccountingPeriod is a non-overlapping date range per tenant.
type AccountingPeriod struct {
	PeriodID          string       `json:"periodID"`
	TenantID          string       `json:"tenantID"`
	Name              string       `json:"name"`
	StartDate         time.Time    `json:"startDate"`
	EndDate           time.Time    `json:"endDate"`
	Status            PeriodStatus `json:"status"`
	CloseChecklistDone bool        `json:"closeChecklistDone"`
	AuditFields
}

// IsOpen reports whether the period accepts submissions and postings.
func (p AccountingPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}

// IsOpeningBalances reports whether this is the special cutover period.
func (p AccountingPeriod) IsOpeningBalances() bool {
	return p.Name == OpeningBalancesPeriodName
}

// Contains reports whether the date falls inside the period (inclusive).
func (p AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
