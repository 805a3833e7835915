package services

import (
	"context"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
)

// JournalReaderSvc defines read operations on the journal worklist.
type JournalReaderSvc interface {
	// GetEntry retrieves a specific entry with its lines.
	GetEntry(ctx context.Context, authCtx domain.AuthContext, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated worklist, optionally filtered by status.
	ListEntries(ctx context.Context, authCtx domain.AuthContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalLifecycleSvc defines the state-machine transitions. Each operation
// validates every precondition before writing anything; on failure nothing
// is persisted except, for SoD violations, a blocked-action event.
type JournalLifecycleSvc interface {
	// CreateEntry creates a new DRAFT entry.
	CreateEntry(ctx context.Context, authCtx domain.AuthContext, req dto.CreateEntryRequest) (*domain.JournalEntry, error)

	// UpdateEntry replaces lines and header text while DRAFT/REJECTED.
	UpdateEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.UpdateEntryRequest) (*domain.JournalEntry, error)

	// ParkEntry saves a valid DRAFT aside without submitting it.
	ParkEntry(ctx context.Context, authCtx domain.AuthContext, entryID string) (*domain.JournalEntry, error)

	// SubmitEntry moves DRAFT/PARKED/REJECTED to SUBMITTED.
	SubmitEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.SubmitEntryRequest) (*domain.JournalEntry, error)

	// ReviewEntry moves SUBMITTED to REVIEWED.
	ReviewEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.ReviewEntryRequest) (*domain.JournalEntry, error)

	// RejectEntry moves SUBMITTED to REJECTED with a reason.
	RejectEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.RejectEntryRequest) (*domain.JournalEntry, error)

	// ReturnEntryToReview moves REVIEWED back to SUBMITTED with a reason.
	ReturnEntryToReview(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.ReturnEntryRequest) (*domain.JournalEntry, error)

	// PostEntry moves REVIEWED to POSTED, assigning the journal number.
	PostEntry(ctx context.Context, authCtx domain.AuthContext, entryID string) (*domain.JournalEntry, error)

	// ReverseEntry creates a REVERSING draft from a POSTED entry.
	ReverseEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-entry service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalLifecycleSvc
}
