package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account's totals in a trial balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalanceReport aggregates POSTED lines over a date range.
type TrialBalanceReport struct {
	FromDate    time.Time         `json:"fromDate"`
	ToDate      time.Time         `json:"toDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// LedgerRow is one posted line in an account ledger, carrying the running
// balance after the line is applied.
type LedgerRow struct {
	EntryID        string          `json:"entryID"`
	JournalNumber  *int64          `json:"journalNumber,omitempty"`
	JournalDate    time.Time       `json:"journalDate"`
	LineID         string          `json:"lineID"`
	LineNumber     int             `json:"lineNumber"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is the paginated running-balance view of one account.
type AccountLedger struct {
	AccountID      string          `json:"accountID"`
	FromDate       time.Time       `json:"fromDate"`
	ToDate         time.Time       `json:"toDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Rows           []LedgerRow     `json:"rows"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
	HasMore        bool            `json:"hasMore"`
}
