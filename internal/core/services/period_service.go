package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
)

// TenantCacheInvalidator is the hook fired when tenant-scoped aggregate
// caches must be dropped wholesale: on post and on period close/reopen.
// A nil invalidator is valid and means no cache layer is wired.
type TenantCacheInvalidator func(tenantID string)

// periodService enforces period status, the Opening Balances gate, and the
// cutover boundary.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	eventSink  portsrepo.EventSink
	invalidate TenantCacheInvalidator
}

// NewPeriodService creates the period control guard.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, eventSink portsrepo.EventSink, invalidate TenantCacheInvalidator) portssvc.PeriodGuardSvc {
	return &periodService{
		periodRepo: periodRepo,
		eventSink:  eventSink,
		invalidate: invalidate,
	}
}

var _ portssvc.PeriodGuardSvc = (*periodService)(nil)

func (s *periodService) ResolvePeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoPeriodForDate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoPeriodForDate, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to resolve period for %s: %w", date.Format("2006-01-02"), err)
	}
	return period, nil
}

func (s *periodService) ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.ResolvePeriod(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	if !period.IsOpen() {
		return nil, fmt.Errorf("%w: period %q", apperrors.ErrPeriodClosed, period.Name)
	}
	return period, nil
}

func (s *periodService) CutoverDate(ctx context.Context, tenantID string) (*time.Time, error) {
	obPeriod, err := s.periodRepo.FindOpeningBalancesPeriod(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up opening balances period: %w", err)
	}
	// The cutover lock only engages once the Opening Balances period closes.
	if obPeriod == nil || obPeriod.Status != domain.PeriodClosed {
		return nil, nil
	}
	cutover := obPeriod.StartDate
	return &cutover, nil
}

func (s *periodService) AssertDateNotBeforeCutover(ctx context.Context, tenantID string, date time.Time, isOpeningBalanceEntry bool) error {
	if isOpeningBalanceEntry {
		// The opening balance journal itself is the one entry allowed to
		// touch pre-cutover dates.
		return nil
	}
	cutover, err := s.CutoverDate(ctx, tenantID)
	if err != nil {
		return err
	}
	if cutover != nil && date.Before(*cutover) {
		return fmt.Errorf("%w: %s is before cutover %s", apperrors.ErrCutoverViolation,
			date.Format("2006-01-02"), cutover.Format("2006-01-02"))
	}
	return nil
}

func (s *periodService) AssertPostable(ctx context.Context, period *domain.AccountingPeriod, isOpeningBalanceEntry bool) error {
	if !period.IsOpen() {
		return fmt.Errorf("%w: period %q", apperrors.ErrPeriodClosed, period.Name)
	}
	if period.IsOpeningBalances() && !isOpeningBalanceEntry {
		return fmt.Errorf("%w: only an opening balance journal may post into the %s period",
			apperrors.ErrValidation, domain.OpeningBalancesPeriodName)
	}
	return nil
}

func (s *periodService) NextOpenPeriodDate(ctx context.Context, tenantID string, date time.Time) (time.Time, *domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, tenantID, date)
	if err != nil && !errors.Is(err, apperrors.ErrNoPeriodForDate) {
		return time.Time{}, nil, fmt.Errorf("failed to resolve period for reversal date: %w", err)
	}
	if period != nil && period.IsOpen() {
		return date, period, nil
	}
	next, err := s.periodRepo.FindNextOpenPeriod(ctx, tenantID, date)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("failed to find next open period: %w", err)
	}
	if next == nil {
		return time.Time{}, nil, fmt.Errorf("%w: no open period on or after %s", apperrors.ErrPeriodClosed, date.Format("2006-01-02"))
	}
	return next.StartDate, next, nil
}

func (s *periodService) ClosePeriod(ctx context.Context, authCtx domain.AuthContext, periodID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermPeriodManage) {
		return apperrors.ErrForbidden
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, authCtx.TenantID, periodID)
	if err != nil {
		return err
	}
	if period.Status == domain.PeriodClosed {
		return fmt.Errorf("%w: period %q is already closed", apperrors.ErrInvalidStateTransition, period.Name)
	}
	if !period.CloseChecklistDone {
		return fmt.Errorf("%w: close checklist incomplete for period %q", apperrors.ErrValidation, period.Name)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.UpdatePeriodStatus(ctx, authCtx.TenantID, periodID, domain.PeriodClosed, authCtx.UserID, now); err != nil {
		return fmt.Errorf("failed to close period: %w", err)
	}

	if s.invalidate != nil {
		s.invalidate(authCtx.TenantID)
	}
	s.recordEvent(ctx, authCtx, periodID, "CLOSE_PERIOD")

	logger.Info("Period closed", slog.String("period_id", periodID))
	return nil
}

func (s *periodService) ReopenPeriod(ctx context.Context, authCtx domain.AuthContext, periodID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermPeriodManage) {
		return apperrors.ErrForbidden
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, authCtx.TenantID, periodID)
	if err != nil {
		return err
	}
	if period.Status == domain.PeriodOpen {
		return fmt.Errorf("%w: period %q is already open", apperrors.ErrInvalidStateTransition, period.Name)
	}
	if period.IsOpeningBalances() {
		// Closing Opening Balances is the cutover lock; it never reopens.
		return fmt.Errorf("%w: the %s period cannot be reopened", apperrors.ErrValidation, domain.OpeningBalancesPeriodName)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.UpdatePeriodStatus(ctx, authCtx.TenantID, periodID, domain.PeriodOpen, authCtx.UserID, now); err != nil {
		return fmt.Errorf("failed to reopen period: %w", err)
	}

	if s.invalidate != nil {
		s.invalidate(authCtx.TenantID)
	}
	s.recordEvent(ctx, authCtx, periodID, "REOPEN_PERIOD")

	logger.Info("Period reopened", slog.String("period_id", periodID))
	return nil
}

// recordEvent writes a lifecycle event, logging and swallowing sink failures.
func (s *periodService) recordEvent(ctx context.Context, authCtx domain.AuthContext, periodID, action string) {
	if s.eventSink == nil {
		return
	}
	err := s.eventSink.Record(ctx, domain.EventRecord{
		TenantID:       authCtx.TenantID,
		EventType:      domain.EventTypeLifecycle,
		EntityType:     "ACCOUNTING_PERIOD",
		EntityID:       periodID,
		Action:         action,
		Outcome:        domain.EventOutcomeSuccess,
		UserID:         authCtx.UserID,
		PermissionUsed: domain.PermPeriodManage,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record period event", slog.String("error", err.Error()))
	}
}
