package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	"github.com/uspireit-code/uspire-ledger/internal/models"
	"github.com/uspireit-code/uspire-ledger/internal/utils/mapping"
	"github.com/uspireit-code/uspire-ledger/internal/utils/pagination"
)

// entryColumns is the full select list for journal entry headers.
const entryColumns = `
	entry_id, tenant_id, journal_number, journal_date, entry_type, status,
	reference, description, accounting_period_id,
	submitted_by, submitted_at, reviewed_by, reviewed_at, posted_by, posted_at,
	rejected_by, rejected_at, rejection_reason, returned_by, returned_at, return_reason,
	corrects_entry_id, reversal_of_id, reversal_entry_id,
	risk_score, risk_flags, budget_status, budget_flags, budget_override_justification,
	total_amount, created_at, created_by, last_updated_at, last_updated_by`

const journalSequenceName = "journal_number"

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntryRow(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.JournalNumber,
		&m.JournalDate,
		&m.EntryType,
		&m.Status,
		&m.Reference,
		&m.Description,
		&m.AccountingPeriodID,
		&m.SubmittedBy,
		&m.SubmittedAt,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.PostedBy,
		&m.PostedAt,
		&m.RejectedBy,
		&m.RejectedAt,
		&m.RejectionReason,
		&m.ReturnedBy,
		&m.ReturnedAt,
		&m.ReturnReason,
		&m.CorrectsEntryID,
		&m.ReversalOfID,
		&m.ReversalEntryID,
		&m.RiskScore,
		&m.RiskFlags,
		&m.BudgetStatus,
		&m.BudgetFlags,
		&m.BudgetOverrideJustification,
		&m.TotalAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves an entry with its lines, tenant-scoped.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	lines, err := r.findLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(*m)
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, line_number, account_id, debit_amount, credit_amount,
		       legal_entity_id, department_id, project_id, fund_id, description
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.LineNumber,
			&l.AccountID,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.LegalEntityID,
			&l.DepartmentID,
			&l.ProjectID,
			&l.FundID,
			&l.Description,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntriesByTenant retrieves a paginated list of entry headers using token-based pagination.
func (r *PgxJournalRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if status != nil {
		args = append(args, string(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastJournalDate, lastCreatedAt)
		baseQuery += ` AND (journal_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY journal_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	headers := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i := range headers {
		entries[i] = mapping.ToDomainJournalEntry(headers[i])
	}
	return entries, nextTokenVal, nil
}

// FindActiveReversal returns the non-rejected reversal of the given entry, or nil.
func (r *PgxJournalRepository) FindActiveReversal(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND reversal_of_id = $2 AND status != 'REJECTED'
		ORDER BY created_at
		LIMIT 1;`

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find reversal of entry "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// CountBudgetWarningsByCreator counts WARN submissions by the creator since the
// given time, skipping the excluded entry so it never counts itself.
func (r *PgxJournalRepository) CountBudgetWarningsByCreator(ctx context.Context, tenantID, creatorUserID, excludeEntryID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE tenant_id = $1 AND created_by = $2 AND entry_id <> $3 AND budget_status = 'WARN' AND submitted_at >= $4;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, tenantID, creatorUserID, excludeEntryID, since).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count budget warnings for user "+creatorUserID, err)
	}
	return count, nil
}

// CreateEntry persists a new entry with its lines in one transaction.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryHeader(ctx, tx, entry); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertEntryHeader(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (
			entry_id, tenant_id, journal_number, journal_date, entry_type, status,
			reference, description, accounting_period_id,
			corrects_entry_id, reversal_of_id,
			risk_score, risk_flags, budget_status, budget_flags, budget_override_justification,
			total_amount, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.TenantID,
		m.JournalNumber,
		m.JournalDate,
		m.EntryType,
		m.Status,
		m.Reference,
		m.Description,
		m.AccountingPeriodID,
		m.CorrectsEntryID,
		m.ReversalOfID,
		m.RiskScore,
		m.RiskFlags,
		m.BudgetStatus,
		m.BudgetFlags,
		m.BudgetOverrideJustification,
		m.TotalAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (
			line_id, entry_id, line_number, account_id, debit_amount, credit_amount,
			legal_entity_id, department_id, project_id, fund_id, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.LineNumber,
			m.AccountID,
			m.DebitAmount,
			m.CreditAmount,
			m.LegalEntityID,
			m.DepartmentID,
			m.ProjectID,
			m.FundID,
			m.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line insert batch", err)
	}
	return nil
}

// ReplaceEntryLines replaces an editable entry's header text and lines,
// clearing rejection metadata. Guarded on DRAFT/REJECTED.
func (r *PgxJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET status = 'DRAFT',
		    journal_date = $3,
		    reference = $4,
		    description = $5,
		    total_amount = $6,
		    rejected_by = NULL, rejected_at = NULL, rejection_reason = NULL,
		    last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND entry_id = $2 AND status IN ('DRAFT', 'REJECTED');
	`
	tag, err := tx.Exec(ctx, query,
		m.TenantID,
		m.EntryID,
		m.JournalDate,
		m.Reference,
		m.Description,
		m.TotalAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+m.EntryID, err)
	}
	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// guardedUpdate runs a single status-guarded UPDATE and maps a zero row count
// to ErrInvalidStateTransition, which the concurrent loser of a transition race sees.
func (r *PgxJournalRepository) guardedUpdate(ctx context.Context, query string, args ...interface{}) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}

// MarkParked moves DRAFT -> PARKED.
func (r *PgxJournalRepository) MarkParked(ctx context.Context, tenantID, entryID, userID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'PARKED', last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	return r.guardedUpdate(ctx, query, tenantID, entryID, at, userID)
}

// MarkSubmitted moves DRAFT/PARKED/REJECTED -> SUBMITTED with the control outcome.
func (r *PgxJournalRepository) MarkSubmitted(ctx context.Context, tenantID, entryID, userID string, at time.Time, outcome portsrepo.ControlOutcome) error {
	query := `
		UPDATE journal_entries
		SET status = 'SUBMITTED',
		    submitted_by = $3, submitted_at = $4,
		    risk_score = $5, risk_flags = $6,
		    budget_status = $7, budget_flags = $8, budget_override_justification = $9,
		    rejected_by = NULL, rejected_at = NULL, rejection_reason = NULL,
		    last_updated_at = $4, last_updated_by = $3
		WHERE tenant_id = $1 AND entry_id = $2 AND status IN ('DRAFT', 'PARKED', 'REJECTED');
	`
	return r.guardedUpdate(ctx, query, tenantID, entryID, userID, at,
		outcome.Risk.Score, outcome.Risk.Flags,
		string(outcome.BudgetStatus), outcome.BudgetFlags, outcome.BudgetJustification)
}

// MarkReviewed moves SUBMITTED -> REVIEWED with the recomputed control outcome.
func (r *PgxJournalRepository) MarkReviewed(ctx context.Context, tenantID, entryID, userID string, at time.Time, outcome portsrepo.ControlOutcome) error {
	query := `
		UPDATE journal_entries
		SET status = 'REVIEWED',
		    reviewed_by = $3, reviewed_at = $4,
		    risk_score = $5, risk_flags = $6,
		    budget_status = $7, budget_flags = $8, budget_override_justification = $9,
		    last_updated_at = $4, last_updated_by = $3
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'SUBMITTED';
	`
	return r.guardedUpdate(ctx, query, tenantID, entryID, userID, at,
		outcome.Risk.Score, outcome.Risk.Flags,
		string(outcome.BudgetStatus), outcome.BudgetFlags, outcome.BudgetJustification)
}

// MarkRejected moves SUBMITTED -> REJECTED, clearing the reviewer.
func (r *PgxJournalRepository) MarkRejected(ctx context.Context, tenantID, entryID, userID string, at time.Time, reason string) error {
	query := `
		UPDATE journal_entries
		SET status = 'REJECTED',
		    rejected_by = $3, rejected_at = $4, rejection_reason = $5,
		    reviewed_by = NULL, reviewed_at = NULL,
		    last_updated_at = $4, last_updated_by = $3
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'SUBMITTED';
	`
	return r.guardedUpdate(ctx, query, tenantID, entryID, userID, at, reason)
}

// MarkReturned moves REVIEWED -> SUBMITTED, clearing the reviewer and
// stamping the return metadata.
func (r *PgxJournalRepository) MarkReturned(ctx context.Context, tenantID, entryID, userID string, at time.Time, reason string) error {
	query := `
		UPDATE journal_entries
		SET status = 'SUBMITTED',
		    returned_by = $3, returned_at = $4, return_reason = $5,
		    reviewed_by = NULL, reviewed_at = NULL,
		    last_updated_at = $4, last_updated_by = $3
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'REVIEWED';
	`
	return r.guardedUpdate(ctx, query, tenantID, entryID, userID, at, reason)
}

// MarkPosted moves REVIEWED -> POSTED on one transaction: the tenant sequence
// increment only commits alongside the status change it numbers.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, tenantID, entryID, userID string, at time.Time, periodID string, outcome portsrepo.ControlOutcome) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	sequenceQuery := `
		INSERT INTO tenant_sequences (tenant_id, sequence_name, next_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, sequence_name)
		DO UPDATE SET next_value = tenant_sequences.next_value + 1
		RETURNING next_value;
	`
	var journalNumber int64
	if err := tx.QueryRow(ctx, sequenceQuery, tenantID, journalSequenceName).Scan(&journalNumber); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance journal sequence for tenant "+tenantID, err)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    journal_number = $3,
		    posted_by = $4, posted_at = $5,
		    accounting_period_id = $6,
		    risk_score = $7, risk_flags = $8,
		    budget_status = $9, budget_flags = $10, budget_override_justification = $11,
		    last_updated_at = $5, last_updated_by = $4
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'REVIEWED';
	`
	tag, err := tx.Exec(ctx, updateQuery,
		tenantID, entryID, journalNumber, userID, at, periodID,
		outcome.Risk.Score, outcome.Risk.Flags,
		string(outcome.BudgetStatus), outcome.BudgetFlags, outcome.BudgetJustification)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrInvalidStateTransition
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return journalNumber, nil
}

// CreateReversalEntry persists the reversing entry and links it on the
// original atomically. The guard loses when the original is no longer POSTED
// or another non-rejected reversal already exists.
func (r *PgxJournalRepository) CreateReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	linkQuery := `
		UPDATE journal_entries o
		SET reversal_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE o.tenant_id = $1 AND o.entry_id = $2 AND o.status = 'POSTED'
		  AND NOT EXISTS (
			SELECT 1 FROM journal_entries x
			WHERE x.tenant_id = o.tenant_id AND x.reversal_of_id = o.entry_id AND x.status != 'REJECTED'
		  );
	`
	tag, err := tx.Exec(ctx, linkQuery, reversal.TenantID, originalEntryID, reversal.EntryID, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link reversal on entry "+originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}

	if err := insertEntryHeader(ctx, tx, reversal); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, reversal.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
