package models

import "time"

// AuditEvent is one append-only row in the audit event log.
type AuditEvent struct {
	EventID        string    `db:"event_id"`
	TenantID       string    `db:"tenant_id"`
	EventType      string    `db:"event_type"`
	EntityType     string    `db:"entity_type"`
	EntityID       string    `db:"entity_id"`
	Action         string    `db:"action"`
	Outcome        string    `db:"outcome"`
	Reason         string    `db:"reason"`
	UserID         string    `db:"user_id"`
	PermissionUsed string    `db:"permission_used"`
	OccurredAt     time.Time `db:"occurred_at"`
}
