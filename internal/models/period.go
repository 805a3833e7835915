package models

import "time"

// AccountingPeriod is the persistence shape of one accounting period.
type AccountingPeriod struct {
	PeriodID           string    `db:"period_id"`
	TenantID           string    `db:"tenant_id"`
	Name               string    `db:"name"`
	StartDate          time.Time `db:"start_date"`
	EndDate            time.Time `db:"end_date"`
	Status             string    `db:"status"`
	CloseChecklistDone bool      `db:"close_checklist_done"`
	AuditFields
}
