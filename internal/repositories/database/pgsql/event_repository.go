package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
)

type PgxEventRepository struct {
	BaseRepository
}

// newPgxEventRepository creates the append-only audit event sink.
func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventSink {
	return &PgxEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EventSink = (*PgxEventRepository)(nil)

// Record appends one audit event row. Callers treat failures as
// fire-and-forget; this method only reports them.
func (r *PgxEventRepository) Record(ctx context.Context, event domain.EventRecord) error {
	query := `
		INSERT INTO audit_events (
			event_id, tenant_id, event_type, entity_type, entity_id,
			action, outcome, reason, user_id, permission_used, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		uuid.NewString(),
		event.TenantID,
		event.EventType,
		event.EntityType,
		event.EntityID,
		event.Action,
		event.Outcome,
		event.Reason,
		event.UserID,
		event.PermissionUsed,
		event.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record audit event", err)
	}
	return nil
}
