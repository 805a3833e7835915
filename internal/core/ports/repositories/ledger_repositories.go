package repositories

import (
	"context"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines the aggregation queries behind the read-side reports.
// All queries see only POSTED entries; POSTED is terminal and immutable, so
// these run lock-free alongside postings.
type LedgerReader interface {
	// TrialBalanceRows aggregates posted lines per account over [from, to].
	TrialBalanceRows(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TrialBalanceRow, error)

	// SumPostedLinesBefore returns the signed sum (debit - credit) of all
	// posted lines on the account dated strictly before the given date.
	SumPostedLinesBefore(ctx context.Context, tenantID, accountID string, before time.Time) (decimal.Decimal, error)

	// FindPostedLines returns posted lines on the account within [from, to],
	// ordered by (journal date, entry journal number, line number, line id),
	// up to limit rows. Running balances are filled in by the service.
	FindPostedLines(ctx context.Context, tenantID, accountID string, from, to time.Time, limit int) ([]domain.LedgerRow, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
}
