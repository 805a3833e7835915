package services

import (
	"context"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
)

// LedgerSvcFacade serves the read-side reports. Queries see only POSTED
// entries and never touch the lifecycle engine.
type LedgerSvcFacade interface {
	// TrialBalance aggregates posted lines per account over a date range,
	// clipping the range to the tenant's cutover boundary.
	TrialBalance(ctx context.Context, authCtx domain.AuthContext, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error)

	// AccountLedger returns the opening balance and paginated running-balance
	// rows for one account over a date range or accounting period.
	AccountLedger(ctx context.Context, authCtx domain.AuthContext, accountID string, params dto.AccountLedgerParams) (*domain.AccountLedger, error)
}
