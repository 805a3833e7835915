package repositories

import (
	"context"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry with its lines, tenant-scoped.
	// Returns apperrors.ErrNotFound for a missing or foreign-tenant entry.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByTenant retrieves a paginated list of entries using
	// token-based pagination, optionally filtered by status.
	ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error)

	// FindActiveReversal returns the non-rejected reversal of the given entry,
	// or nil when none exists.
	FindActiveReversal(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// CountBudgetWarningsByCreator counts entries by the given creator whose
	// budget status reached WARN since the given time, excluding the entry
	// identified by excludeEntryID so an entry never counts its own warning.
	// Feeds the repeat-warn risk uplift.
	CountBudgetWarningsByCreator(ctx context.Context, tenantID, creatorUserID, excludeEntryID string, since time.Time) (int, error)
}

// ControlOutcome carries the risk and budget results persisted alongside a
// status transition.
type ControlOutcome struct {
	Risk                domain.RiskAssessment
	BudgetStatus        domain.BudgetStatus
	BudgetFlags         []string
	BudgetJustification string
}

// JournalEntryWriter defines write operations for journal entry data.
// Every method is atomic: the status guard, field updates and any sequence
// assignment commit together or not at all. A guarded update that matches no
// row (the entry moved on concurrently, or never permitted the transition)
// fails with apperrors.ErrInvalidStateTransition.
type JournalEntryWriter interface {
	// CreateEntry persists a new entry with its lines.
	CreateEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntryLines replaces an editable entry's lines and header text
	// atomically, clearing rejection metadata. Guarded on DRAFT/REJECTED.
	ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry) error

	// MarkParked moves DRAFT -> PARKED.
	MarkParked(ctx context.Context, tenantID, entryID, userID string, at time.Time) error

	// MarkSubmitted moves DRAFT/REJECTED/PARKED -> SUBMITTED, persisting the
	// recomputed control outcome and clearing rejection metadata.
	MarkSubmitted(ctx context.Context, tenantID, entryID, userID string, at time.Time, outcome ControlOutcome) error

	// MarkReviewed moves SUBMITTED -> REVIEWED, persisting the control outcome.
	MarkReviewed(ctx context.Context, tenantID, entryID, userID string, at time.Time, outcome ControlOutcome) error

	// MarkRejected moves SUBMITTED -> REJECTED with a reason, clearing the reviewer.
	MarkRejected(ctx context.Context, tenantID, entryID, userID string, at time.Time, reason string) error

	// MarkReturned moves REVIEWED -> SUBMITTED with a reason, clearing the
	// reviewer and stamping the return metadata.
	MarkReturned(ctx context.Context, tenantID, entryID, userID string, at time.Time, reason string) error

	// MarkPosted moves REVIEWED -> POSTED: assigns the next journal number
	// from the tenant sequence, stamps poster and period, and persists the
	// control outcome, all on one transaction. Returns the assigned number.
	MarkPosted(ctx context.Context, tenantID, entryID, userID string, at time.Time, periodID string, outcome ControlOutcome) (int64, error)

	// CreateReversalEntry persists the reversing entry and links it on the
	// original atomically. The original must be POSTED.
	CreateReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, at time.Time) error
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
