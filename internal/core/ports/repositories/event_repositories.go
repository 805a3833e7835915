package repositories

import (
	"context"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
)

// EventSink is the one-way audit event stream. Record is fire-and-forget
// from the caller's point of view: implementations may fail, and callers
// log and swallow the error rather than aborting the business operation.
type EventSink interface {
	Record(ctx context.Context, event domain.EventRecord) error
}
