package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the read-side report queries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// TrialBalanceRows aggregates POSTED lines per account over [from, to].
func (r *PgxLedgerRepository) TrialBalanceRows(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit_amount), 0) AS total_debit,
		       COALESCE(SUM(l.credit_amount), 0) AS total_credit,
		       COALESCE(SUM(l.debit_amount - l.credit_amount), 0) AS net
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id AND a.tenant_id = e.tenant_id
		WHERE e.tenant_id = $1 AND e.status = 'POSTED'
		  AND e.journal_date >= $2 AND e.journal_date <= $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate trial balance for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.TotalDebit,
			&row.TotalCredit,
			&row.Net,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}

	return result, nil
}

// SumPostedLinesBefore returns the signed sum of posted lines on the account
// dated strictly before the given date.
func (r *PgxLedgerRepository) SumPostedLinesBefore(ctx context.Context, tenantID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_amount - l.credit_amount), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
		  AND e.journal_date < $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, before).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum posted lines for account "+accountID, err)
	}
	return sum, nil
}

// FindPostedLines returns posted lines on the account within [from, to] in a
// stable order, up to limit rows. Running balances are filled in by the caller.
func (r *PgxLedgerRepository) FindPostedLines(ctx context.Context, tenantID, accountID string, from, to time.Time, limit int) ([]domain.LedgerRow, error) {
	query := `
		SELECT e.entry_id, e.journal_number, e.journal_date,
		       l.line_id, l.line_number, l.description,
		       l.debit_amount, l.credit_amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.status = 'POSTED'
		  AND e.journal_date >= $3 AND e.journal_date <= $4
		ORDER BY e.journal_date, e.journal_number, l.line_number, l.line_id
		LIMIT $5;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountID, from, to, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger rows for account "+accountID, err)
	}
	defer rows.Close()

	result := []domain.LedgerRow{}
	for rows.Next() {
		var row domain.LedgerRow
		err := rows.Scan(
			&row.EntryID,
			&row.JournalNumber,
			&row.JournalDate,
			&row.LineID,
			&row.LineNumber,
			&row.Description,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}

	return result, nil
}
