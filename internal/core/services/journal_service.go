package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
	"github.com/uspireit-code/uspire-ledger/internal/middleware"
	"github.com/uspireit-code/uspire-ledger/internal/utils/accounting"
)

var (
	ErrDescriptionMissing = errors.New("journal description is required")
	ErrNotCreator         = errors.New("only the entry's creator may perform this action")
	ErrReasonMissing      = errors.New("a reason is required")
	ErrAlreadyReversed    = errors.New("journal entry already has an active reversal")
)

// journalService orchestrates the journal entry lifecycle, composing the
// period, dimension, budget, risk and SoD engines around every transition.
type journalService struct {
	journalRepo  portsrepo.JournalEntryRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	periodSvc    portssvc.PeriodGuardSvc
	dimensionSvc portssvc.DimensionValidatorSvc
	budgetSvc    portssvc.BudgetControlSvc
	riskSvc      portssvc.RiskScoringSvc
	sodSvc       portssvc.SoDSvc
	eventSink    portsrepo.EventSink
	invalidate   TenantCacheInvalidator
}

// NewJournalService creates the journal lifecycle engine.
func NewJournalService(
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodSvc portssvc.PeriodGuardSvc,
	dimensionSvc portssvc.DimensionValidatorSvc,
	budgetSvc portssvc.BudgetControlSvc,
	riskSvc portssvc.RiskScoringSvc,
	sodSvc portssvc.SoDSvc,
	eventSink portsrepo.EventSink,
	invalidate TenantCacheInvalidator,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		periodSvc:    periodSvc,
		dimensionSvc: dimensionSvc,
		budgetSvc:    budgetSvc,
		riskSvc:      riskSvc,
		sodSvc:       sodSvc,
		eventSink:    eventSink,
		invalidate:   invalidate,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// --- Read side ---

func (s *journalService) GetEntry(ctx context.Context, authCtx domain.AuthContext, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, authCtx domain.AuthContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	var status *domain.EntryStatus
	if params.Status != nil {
		st := domain.EntryStatus(*params.Status)
		status = &st
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByTenant(ctx, authCtx.TenantID, limit, params.NextToken, status)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// --- Lifecycle transitions ---

func (s *journalService) CreateEntry(ctx context.Context, authCtx domain.AuthContext, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermJournalCreate) {
		return nil, apperrors.ErrForbidden
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines, err := buildLines(entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateLinesShape(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	entry := domain.JournalEntry{
		EntryID:         entryID,
		TenantID:        authCtx.TenantID,
		JournalDate:     req.JournalDate,
		EntryType:       domain.Standard,
		Status:          domain.Draft,
		Reference:       req.Reference,
		Description:     req.Description,
		CorrectsEntryID: req.CorrectsEntryID,
		BudgetStatus:    domain.BudgetOK,
		TotalAmount:     accounting.TotalAmount(lines),
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authCtx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: authCtx.UserID,
		},
	}

	if _, err := s.periodSvc.ResolveOpenPeriod(ctx, authCtx.TenantID, req.JournalDate); err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertDateNotBeforeCutover(ctx, authCtx.TenantID, req.JournalDate, entry.IsOpeningBalance()); err != nil {
		return nil, err
	}
	if _, err := s.fetchPostableAccounts(ctx, authCtx.TenantID, lines); err != nil {
		return nil, err
	}
	if req.CorrectsEntryID != nil {
		if _, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, *req.CorrectsEntryID); err != nil {
			return nil, fmt.Errorf("corrected entry: %w", err)
		}
	}

	if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "CREATE", domain.PermJournalCreate)
	logger.Info("Journal entry created", slog.String("entry_id", entryID))
	return &entry, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.UpdateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CreatedBy != authCtx.UserID {
		return nil, fmt.Errorf("%w: edit", ErrNotCreator)
	}
	if !entry.Status.Editable() {
		return nil, fmt.Errorf("%w: cannot edit entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}

	if req.JournalDate != nil {
		entry.JournalDate = *req.JournalDate
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, ErrDescriptionMissing
		}
		entry.Description = *req.Description
	}

	lines, err := buildLines(entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateLinesShape(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if _, err := s.periodSvc.ResolveOpenPeriod(ctx, authCtx.TenantID, entry.JournalDate); err != nil {
		return nil, err
	}
	// The opening balance journal itself may still be edited behind the cutover.
	if err := s.periodSvc.AssertDateNotBeforeCutover(ctx, authCtx.TenantID, entry.JournalDate, entry.IsOpeningBalance()); err != nil {
		return nil, err
	}
	if _, err := s.fetchPostableAccounts(ctx, authCtx.TenantID, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.Lines = lines
	entry.TotalAmount = accounting.TotalAmount(lines)
	entry.RejectedBy = nil
	entry.RejectedAt = nil
	entry.RejectionReason = nil
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = authCtx.UserID

	if err := s.journalRepo.ReplaceEntryLines(ctx, *entry); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "EDIT", domain.PermJournalEdit)
	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

func (s *journalService) ParkEntry(ctx context.Context, authCtx domain.AuthContext, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CreatedBy != authCtx.UserID {
		return nil, fmt.Errorf("%w: park", ErrNotCreator)
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: cannot park entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}
	if err := s.validateShapeAndBalance(entry.Lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkParked(ctx, authCtx.TenantID, entryID, authCtx.UserID, now); err != nil {
		return nil, err
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "PARK", domain.PermJournalEdit)
	entry.Status = domain.Parked
	return entry, nil
}

func (s *journalService) SubmitEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.SubmitEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermJournalSubmit) {
		return nil, apperrors.ErrForbidden
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CreatedBy != authCtx.UserID {
		return nil, fmt.Errorf("%w: submit", ErrNotCreator)
	}
	switch entry.Status {
	case domain.Draft, domain.Parked, domain.Rejected:
	default:
		return nil, fmt.Errorf("%w: cannot submit entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}

	if err := s.validateShapeAndBalance(entry.Lines); err != nil {
		return nil, err
	}
	period, err := s.periodSvc.ResolveOpenPeriod(ctx, authCtx.TenantID, entry.JournalDate)
	if err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertDateNotBeforeCutover(ctx, authCtx.TenantID, entry.JournalDate, entry.IsOpeningBalance()); err != nil {
		return nil, err
	}
	accounts, err := s.fetchPostableAccounts(ctx, authCtx.TenantID, entry.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.dimensionSvc.ValidateLines(ctx, authCtx.TenantID, entry.JournalDate, entry.Lines, accounts); err != nil {
		return nil, err
	}

	justification := req.BudgetOverrideJustification
	if justification == "" {
		justification = entry.BudgetOverrideJustification
	}
	outcome, budget, err := s.runControls(ctx, authCtx, entry, accounts, period, justification, false, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkSubmitted(ctx, authCtx.TenantID, entryID, authCtx.UserID, now, outcome); err != nil {
		return nil, err
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "SUBMIT", domain.PermJournalSubmit)
	logger.Info("Journal entry submitted",
		slog.String("entry_id", entryID),
		slog.Int("risk_score", outcome.Risk.Score),
		slog.String("budget_status", string(budget.Status)),
	)
	return s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
}

func (s *journalService) ReviewEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.ReviewEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermJournalReview) {
		return nil, apperrors.ErrForbidden
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Submitted {
		return nil, fmt.Errorf("%w: cannot review entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}
	if err := s.requireReviewerSeparation(ctx, authCtx, entry, "REVIEW"); err != nil {
		return nil, err
	}

	period, err := s.periodSvc.ResolveOpenPeriod(ctx, authCtx.TenantID, entry.JournalDate)
	if err != nil {
		return nil, err
	}
	accounts, err := s.fetchPostableAccounts(ctx, authCtx.TenantID, entry.Lines)
	if err != nil {
		return nil, err
	}

	justification := req.BudgetOverrideJustification
	if justification == "" {
		justification = entry.BudgetOverrideJustification
	}
	outcome, _, err := s.runControls(ctx, authCtx, entry, accounts, period, justification, false, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkReviewed(ctx, authCtx.TenantID, entryID, authCtx.UserID, now, outcome); err != nil {
		return nil, err
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "REVIEW", domain.PermJournalReview)
	logger.Info("Journal entry reviewed", slog.String("entry_id", entryID))
	return s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
}

func (s *journalService) RejectEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.RejectEntryRequest) (*domain.JournalEntry, error) {
	if !authCtx.HasPermission(domain.PermJournalReview) {
		return nil, apperrors.ErrForbidden
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: rejection reason", ErrReasonMissing)
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Submitted {
		return nil, fmt.Errorf("%w: cannot reject entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}
	if err := s.requireReviewerSeparation(ctx, authCtx, entry, "REJECT"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkRejected(ctx, authCtx.TenantID, entryID, authCtx.UserID, now, req.Reason); err != nil {
		return nil, err
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "REJECT", domain.PermJournalReview)
	return s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
}

func (s *journalService) ReturnEntryToReview(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.ReturnEntryRequest) (*domain.JournalEntry, error) {
	if !authCtx.HasPermission(domain.PermJournalPost) {
		return nil, apperrors.ErrForbidden
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: return reason", ErrReasonMissing)
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Reviewed {
		return nil, fmt.Errorf("%w: cannot return entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}
	caller := authCtx.UserID
	if err := s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entryID, "RETURN_VS_MAKER", &caller, &entry.CreatedBy); err != nil {
		return nil, err
	}
	if err := s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entryID, "RETURN_VS_REVIEWER", &caller, entry.ReviewedBy); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkReturned(ctx, authCtx.TenantID, entryID, authCtx.UserID, now, req.Reason); err != nil {
		return nil, err
	}

	s.recordLifecycleEvent(ctx, authCtx, entryID, "RETURN_TO_REVIEW", domain.PermJournalPost)
	return s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
}

func (s *journalService) PostEntry(ctx context.Context, authCtx domain.AuthContext, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermJournalPost) {
		return nil, apperrors.ErrForbidden
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Reviewed {
		return nil, fmt.Errorf("%w: cannot post entry in status %s", apperrors.ErrInvalidStateTransition, entry.Status)
	}

	caller := authCtx.UserID
	if err := s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entryID, "POSTER_VS_MAKER", &caller, &entry.CreatedBy); err != nil {
		return nil, err
	}
	if err := s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entryID, "POSTER_VS_REVIEWER", &caller, entry.ReviewedBy); err != nil {
		return nil, err
	}

	if err := s.validateShapeAndBalance(entry.Lines); err != nil {
		return nil, err
	}
	period, err := s.periodSvc.ResolvePeriod(ctx, authCtx.TenantID, entry.JournalDate)
	if err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertPostable(ctx, period, entry.IsOpeningBalance()); err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertDateNotBeforeCutover(ctx, authCtx.TenantID, entry.JournalDate, entry.IsOpeningBalance()); err != nil {
		return nil, err
	}
	accounts, err := s.fetchPostableAccounts(ctx, authCtx.TenantID, entry.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	outcome, _, err := s.runControls(ctx, authCtx, entry, accounts, period, entry.BudgetOverrideJustification, true, &now)
	if err != nil {
		return nil, err
	}

	journalNumber, err := s.journalRepo.MarkPosted(ctx, authCtx.TenantID, entryID, authCtx.UserID, now, period.PeriodID, outcome)
	if err != nil {
		return nil, err
	}

	if s.invalidate != nil {
		s.invalidate(authCtx.TenantID)
	}
	s.recordLifecycleEvent(ctx, authCtx, entryID, "POST", domain.PermJournalPost)
	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.Int64("journal_number", journalNumber),
		slog.Int("risk_score", outcome.Risk.Score),
	)
	return s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
}

func (s *journalService) ReverseEntry(ctx context.Context, authCtx domain.AuthContext, entryID string, req dto.ReverseEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !authCtx.HasPermission(domain.PermJournalReverse) {
		return nil, apperrors.ErrForbidden
	}
	original, err := s.journalRepo.FindEntryByID(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: cannot reverse entry in status %s", apperrors.ErrInvalidStateTransition, original.Status)
	}

	caller := authCtx.UserID
	if err := s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entryID, "REVERSER_VS_MAKER", &caller, &original.CreatedBy); err != nil {
		return nil, err
	}

	existing, err := s.journalRepo.FindActiveReversal(ctx, authCtx.TenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing reversal: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: reversal %s", ErrAlreadyReversed, existing.EntryID)
	}

	// Auto-advance to the next OPEN period when the requested date's period
	// is not open.
	reversalDate, _, err := s.periodSvc.NextOpenPeriodDate(ctx, authCtx.TenantID, req.ReversalDate)
	if err != nil {
		return nil, err
	}
	if err := s.periodSvc.AssertDateNotBeforeCutover(ctx, authCtx.TenantID, reversalDate, false); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, orig := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       reversalID,
			LineNumber:    orig.LineNumber,
			AccountID:     orig.AccountID,
			DebitAmount:   orig.CreditAmount,
			CreditAmount:  orig.DebitAmount,
			LegalEntityID: orig.LegalEntityID,
			DepartmentID:  orig.DepartmentID,
			ProjectID:     orig.ProjectID,
			FundID:        orig.FundID,
			Description:   orig.Description,
		}
	}

	accounts, err := s.fetchPostableAccounts(ctx, authCtx.TenantID, lines)
	if err != nil {
		return nil, err
	}
	// Entries migrated before dimension enforcement cannot produce a valid
	// reversal; they surface as a distinct error rather than a line-level one.
	if err := s.dimensionSvc.ValidateLines(ctx, authCtx.TenantID, reversalDate, lines, accounts); err != nil {
		var fieldErr *apperrors.FieldError
		if errors.As(err, &fieldErr) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrLegacyMissingDimensions, fieldErr)
		}
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Reversal of: %s", original.Description)
	}

	reversal := domain.JournalEntry{
		EntryID:      reversalID,
		TenantID:     authCtx.TenantID,
		JournalDate:  reversalDate,
		EntryType:    domain.Reversing,
		Status:       domain.Draft,
		Reference:    original.Reference,
		Description:  description,
		ReversalOfID: &original.EntryID,
		BudgetStatus: domain.BudgetOK,
		TotalAmount:  original.TotalAmount,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authCtx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: authCtx.UserID,
		},
	}

	if err := s.journalRepo.CreateReversalEntry(ctx, reversal, original.EntryID, authCtx.UserID, now); err != nil {
		logger.Error("Failed to save reversing entry", slog.String("error", err.Error()), slog.String("original_entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	s.recordLifecycleEvent(ctx, authCtx, reversalID, "REVERSE", domain.PermJournalReverse)
	logger.Info("Reversing entry created", slog.String("entry_id", reversalID), slog.String("original_entry_id", entryID))
	return &reversal, nil
}

// --- Helpers ---

// buildLines materializes request lines into domain lines numbered from 1.
func buildLines(entryID string, reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		if lr.DebitAmount.IsNegative() || lr.CreditAmount.IsNegative() {
			return nil, apperrors.NewFieldError(i+1, "amount", "amounts must not be negative")
		}
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       entryID,
			LineNumber:    i + 1,
			AccountID:     lr.AccountID,
			DebitAmount:   lr.DebitAmount,
			CreditAmount:  lr.CreditAmount,
			LegalEntityID: lr.LegalEntityID,
			DepartmentID:  lr.DepartmentID,
			ProjectID:     lr.ProjectID,
			FundID:        lr.FundID,
			Description:   lr.Description,
		}
	}
	return lines, nil
}

func (s *journalService) validateShapeAndBalance(lines []domain.JournalLine) error {
	if err := accounting.ValidateLinesShape(lines); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := accounting.ValidateBalanced(lines); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

// fetchPostableAccounts loads the accounts referenced by the lines and
// asserts each is active and allows posting.
func (s *journalService) fetchPostableAccounts(ctx context.Context, tenantID string, lines []domain.JournalLine) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i := range lines {
		if _, ok := seen[lines[i].AccountID]; !ok {
			seen[lines[i].AccountID] = struct{}{}
			ids = append(ids, lines[i].AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for i := range lines {
		account, ok := accounts[lines[i].AccountID]
		if !ok {
			return nil, apperrors.NewFieldError(lines[i].LineNumber, "accountID", "account not found")
		}
		if !account.IsActive {
			return nil, apperrors.NewFieldError(lines[i].LineNumber, "accountID", "account is inactive")
		}
		if !account.AllowPosting {
			return nil, apperrors.NewFieldError(lines[i].LineNumber, "accountID", "account does not allow posting")
		}
	}
	return accounts, nil
}

// requireReviewerSeparation applies the SUBMITTED-stage SoD pairs: the caller
// may be neither the maker, the submitter, nor the reversal initiator.
func (s *journalService) requireReviewerSeparation(ctx context.Context, authCtx domain.AuthContext, entry *domain.JournalEntry, action string) error {
	caller := authCtx.UserID
	if err := s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entry.EntryID, action+"_VS_MAKER", &caller, &entry.CreatedBy); err != nil {
		return err
	}
	return s.sodSvc.RequireSeparation(ctx, authCtx.TenantID, entry.EntryID, action+"_VS_SUBMITTER", &caller, entry.SubmittedBy)
}

// runControls recomputes the budget check and risk score for a transition,
// enforcing the BLOCK and WARN-justification gates.
func (s *journalService) runControls(
	ctx context.Context,
	authCtx domain.AuthContext,
	entry *domain.JournalEntry,
	accounts map[string]domain.Account,
	period *domain.AccountingPeriod,
	justification string,
	atPostStage bool,
	postTime *time.Time,
) (portsrepo.ControlOutcome, *domain.BudgetCheckResult, error) {
	budget, err := s.budgetSvc.CheckEntry(ctx, authCtx.TenantID, period, entry.Lines, accounts)
	if err != nil {
		return portsrepo.ControlOutcome{}, nil, err
	}
	if budget.Status == domain.BudgetBlock {
		return portsrepo.ControlOutcome{}, nil, fmt.Errorf("%w: %v", apperrors.ErrBudgetBlocked, budget.Flags)
	}
	if budget.Status == domain.BudgetWarn && justification == "" {
		return portsrepo.ControlOutcome{}, nil, apperrors.ErrBudgetJustificationRequired
	}

	repeatCount := 0
	if budget.Status == domain.BudgetWarn {
		repeatCount, err = s.budgetSvc.RepeatWarnCount(ctx, authCtx.TenantID, entry.CreatedBy, entry.EntryID, time.Now().UTC())
		if err != nil {
			return portsrepo.ControlOutcome{}, nil, err
		}
	}
	budget.RepeatWarnCount = repeatCount

	now := time.Now().UTC()
	if postTime != nil {
		now = *postTime
	}
	risk := s.riskSvc.Score(portssvc.RiskScoringInput{
		Entry:           entry,
		Accounts:        accounts,
		Budget:          budget,
		RepeatWarnCount: repeatCount,
		Period:          period,
		AtPostStage:     atPostStage,
		Now:             now,
	})

	outcome := portsrepo.ControlOutcome{
		Risk:                risk,
		BudgetStatus:        budget.Status,
		BudgetFlags:         budget.Flags,
		BudgetJustification: justification,
	}
	return outcome, budget, nil
}

// recordLifecycleEvent writes a lifecycle event, logging and swallowing
// sink failures so they never abort the business operation.
func (s *journalService) recordLifecycleEvent(ctx context.Context, authCtx domain.AuthContext, entryID, action, permission string) {
	if s.eventSink == nil {
		return
	}
	err := s.eventSink.Record(ctx, domain.EventRecord{
		TenantID:       authCtx.TenantID,
		EventType:      domain.EventTypeLifecycle,
		EntityType:     "JOURNAL_ENTRY",
		EntityID:       entryID,
		Action:         action,
		Outcome:        domain.EventOutcomeSuccess,
		UserID:         authCtx.UserID,
		PermissionUsed: permission,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record lifecycle event",
			slog.String("entry_id", entryID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
