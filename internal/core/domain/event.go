package domain

import "time"

// Event types and outcomes recorded through the append-only sink.
const (
	EventTypeLifecycle        = "JOURNAL_LIFECYCLE"
	EventTypeControlViolation = "CONTROL_VIOLATION"

	EventOutcomeSuccess = "SUCCESS"
	EventOutcomeBlocked = "BLOCKED"
)

// EventRecord is one append-only audit event. Recording is fire-and-forget:
// a failed write is logged and swallowed, never surfaced to the caller.
type EventRecord struct {
	TenantID       string    `json:"tenantID"`
	EventType      string    `json:"eventType"`
	EntityType     string    `json:"entityType"`
	EntityID       string    `json:"entityID"`
	Action         string    `json:"action"`
	Outcome        string    `json:"outcome"`
	Reason         string    `json:"reason,omitempty"`
	UserID         string    `json:"userID"`
	PermissionUsed string    `json:"permissionUsed,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}
