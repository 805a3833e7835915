package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
)

// ledgerRowsCap bounds the materialized prefix for ledger pagination so a
// page request stays stable under concurrent posting without unbounded work.
const ledgerRowsCap = 5100

const defaultLedgerPageSize = 50

// ledgerService serves the read-side reports from POSTED lines only.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	periodSvc   portssvc.PeriodGuardSvc
}

// NewLedgerService creates the ledger query engine.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
	periodSvc portssvc.PeriodGuardSvc,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		periodSvc:   periodSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) TrialBalance(ctx context.Context, authCtx domain.AuthContext, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermLedgerView) {
		return nil, apperrors.ErrForbidden
	}
	if params.ToDate.Before(params.FromDate) {
		return nil, fmt.Errorf("%w: toDate is before fromDate", apperrors.ErrValidation)
	}

	from, to := params.FromDate, params.ToDate
	report := &domain.TrialBalanceReport{
		FromDate:    from,
		ToDate:      to,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	cutover, err := s.periodSvc.CutoverDate(ctx, authCtx.TenantID)
	if err != nil {
		return nil, err
	}
	if cutover != nil {
		if to.Before(*cutover) {
			return report, nil
		}
		if from.Before(*cutover) {
			from = *cutover
			report.FromDate = from
		}
	}

	rows, err := s.ledgerRepo.TrialBalanceRows(ctx, authCtx.TenantID, from, to)
	if err != nil {
		logger.Error("Failed to aggregate trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	for i := range rows {
		report.TotalDebit = report.TotalDebit.Add(rows[i].TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(rows[i].TotalCredit)
	}
	report.Rows = rows
	return report, nil
}

func (s *ledgerService) AccountLedger(ctx context.Context, authCtx domain.AuthContext, accountID string, params dto.AccountLedgerParams) (*domain.AccountLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermLedgerView) {
		return nil, apperrors.ErrForbidden
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, authCtx.TenantID, accountID); err != nil {
		return nil, err
	}

	from, to, err := s.resolveWindow(ctx, authCtx.TenantID, params)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}
	offset := params.Offset
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", apperrors.ErrValidation)
	}
	if offset+limit > ledgerRowsCap {
		return nil, fmt.Errorf("%w: page window exceeds the %d row ceiling", apperrors.ErrValidation, ledgerRowsCap)
	}

	ledger := &domain.AccountLedger{
		AccountID:      accountID,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: decimal.Zero,
		Rows:           []domain.LedgerRow{},
		Limit:          limit,
		Offset:         offset,
	}

	cutover, err := s.periodSvc.CutoverDate(ctx, authCtx.TenantID)
	if err != nil {
		return nil, err
	}
	if cutover != nil {
		if to.Before(*cutover) {
			return ledger, nil
		}
		if from.Before(*cutover) {
			from = *cutover
			ledger.FromDate = from
		}
	}

	opening, err := s.ledgerRepo.SumPostedLinesBefore(ctx, authCtx.TenantID, accountID, from)
	if err != nil {
		logger.Error("Failed to compute opening balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	ledger.OpeningBalance = opening

	// Materialize the full prefix through the requested page plus one row so
	// the running balance replays deterministically and HasMore is exact.
	prefix, err := s.ledgerRepo.FindPostedLines(ctx, authCtx.TenantID, accountID, from, to, offset+limit+1)
	if err != nil {
		logger.Error("Failed to fetch ledger rows", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch ledger rows: %w", err)
	}

	running := opening
	for i := range prefix {
		running = running.Add(prefix[i].Debit.Sub(prefix[i].Credit))
		prefix[i].RunningBalance = running
	}

	if offset >= len(prefix) {
		return ledger, nil
	}
	end := offset + limit
	if end > len(prefix) {
		end = len(prefix)
	}
	ledger.Rows = prefix[offset:end]
	ledger.HasMore = len(prefix) > offset+limit
	return ledger, nil
}

// resolveWindow turns the mutually exclusive periodID / date-range inputs
// into a concrete [from, to] window.
func (s *ledgerService) resolveWindow(ctx context.Context, tenantID string, params dto.AccountLedgerParams) (time.Time, time.Time, error) {
	hasPeriod := params.AccountingPeriodID != nil
	hasRange := params.FromDate != nil || params.ToDate != nil

	switch {
	case hasPeriod && hasRange:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: accountingPeriodID and fromDate/toDate are mutually exclusive", apperrors.ErrValidation)
	case hasPeriod:
		period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, *params.AccountingPeriodID)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return period.StartDate, period.EndDate, nil
	case params.FromDate != nil && params.ToDate != nil:
		if params.ToDate.Before(*params.FromDate) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: toDate is before fromDate", apperrors.ErrValidation)
		}
		return *params.FromDate, *params.ToDate, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: either accountingPeriodID or both fromDate and toDate are required", apperrors.ErrValidation)
	}
}
