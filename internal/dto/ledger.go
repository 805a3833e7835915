package dto

import (
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams selects the aggregation window.
type TrialBalanceParams struct {
	FromDate time.Time `form:"fromDate" time_format:"2006-01-02" binding:"required"`
	ToDate   time.Time `form:"toDate" time_format:"2006-01-02" binding:"required"`
}

// AccountLedgerParams selects the ledger window. AccountingPeriodID and the
// explicit date range are mutually exclusive.
type AccountLedgerParams struct {
	AccountingPeriodID *string    `form:"accountingPeriodID"`
	FromDate           *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate             *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit              int        `form:"limit"`
	Offset             int        `form:"offset"`
}

// TrialBalanceRowResponse is one account's totals.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalanceResponse is the full report.
type TrialBalanceResponse struct {
	FromDate    time.Time                 `json:"fromDate"`
	ToDate      time.Time                 `json:"toDate"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// LedgerRowResponse is one posted line with its running balance.
type LedgerRowResponse struct {
	EntryID        string          `json:"entryID"`
	JournalNumber  *int64          `json:"journalNumber,omitempty"`
	JournalDate    time.Time       `json:"journalDate"`
	LineNumber     int             `json:"lineNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse is the paginated running-balance ledger of one account.
type AccountLedgerResponse struct {
	AccountID      string              `json:"accountID"`
	FromDate       time.Time           `json:"fromDate"`
	ToDate         time.Time           `json:"toDate"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Rows           []LedgerRowResponse `json:"rows"`
	Limit          int                 `json:"limit"`
	Offset         int                 `json:"offset"`
	HasMore        bool                `json:"hasMore"`
}

// ToTrialBalanceResponse converts the domain report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			TotalDebit:  row.TotalDebit,
			TotalCredit: row.TotalCredit,
			Net:         row.Net,
		}
	}
	return TrialBalanceResponse{
		FromDate:    r.FromDate,
		ToDate:      r.ToDate,
		Rows:        rows,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
	}
}

// ToAccountLedgerResponse converts the domain ledger.
func ToAccountLedgerResponse(l *domain.AccountLedger) AccountLedgerResponse {
	rows := make([]LedgerRowResponse, len(l.Rows))
	for i, row := range l.Rows {
		rows[i] = LedgerRowResponse{
			EntryID:        row.EntryID,
			JournalNumber:  row.JournalNumber,
			JournalDate:    row.JournalDate,
			LineNumber:     row.LineNumber,
			Description:    row.Description,
			Debit:          row.Debit,
			Credit:         row.Credit,
			RunningBalance: row.RunningBalance,
		}
	}
	return AccountLedgerResponse{
		AccountID:      l.AccountID,
		FromDate:       l.FromDate,
		ToDate:         l.ToDate,
		OpeningBalance: l.OpeningBalance,
		Rows:           rows,
		Limit:          l.Limit,
		Offset:         l.Offset,
		HasMore:        l.HasMore,
	}
}
