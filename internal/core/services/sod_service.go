package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
)

// sodService enforces that distinct people occupy conflicting roles on one
// entry. Every violation is recorded as a blocked-action event before the
// error propagates.
type sodService struct {
	eventSink portsrepo.EventSink
}

// NewSoDService creates the segregation-of-duties engine.
func NewSoDService(eventSink portsrepo.EventSink) portssvc.SoDSvc {
	return &sodService{eventSink: eventSink}
}

var _ portssvc.SoDSvc = (*sodService)(nil)

func (s *sodService) RequireSeparation(ctx context.Context, tenantID, entryID, label string, userA, userB *string) error {
	if userA == nil || userB == nil || *userA != *userB {
		return nil
	}

	reason := fmt.Sprintf("%s: user %s holds both roles", label, *userA)
	if s.eventSink != nil {
		err := s.eventSink.Record(ctx, domain.EventRecord{
			TenantID:   tenantID,
			EventType:  domain.EventTypeControlViolation,
			EntityType: "JOURNAL_ENTRY",
			EntityID:   entryID,
			Action:     label,
			Outcome:    domain.EventOutcomeBlocked,
			Reason:     reason,
			UserID:     *userA,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to record SoD violation event", slog.String("error", err.Error()))
		}
	}

	return fmt.Errorf("%w: %s", apperrors.ErrSoDViolation, label)
}
