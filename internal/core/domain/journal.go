package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Parked    EntryStatus = "PARKED"
	Submitted EntryStatus = "SUBMITTED"
	Reviewed  EntryStatus = "REVIEWED"
	Rejected  EntryStatus = "REJECTED"
	Posted    EntryStatus = "POSTED" // terminal
)

// EntryType distinguishes ordinary entries from system-generated reversals.
type EntryType string

const (
	Standard  EntryType = "STANDARD"
	Reversing EntryType = "REVERSING"
)

// Editable reports whether lines may still be replaced in this status.
func (s EntryStatus) Editable() bool {
	return s == Draft || s == Rejected
}

// OpeningBalanceReferencePrefix marks the one-time cutover entry; only
// entries carrying it may post into the Opening Balances period.
const OpeningBalanceReferencePrefix = "OB-"

// JournalEntry represents one double-entry accounting transaction moving
// through the maker/reviewer/poster workflow. Immutable once POSTED except
// for reversal linkage.
type JournalEntry struct {
	EntryID       string      `json:"entryID"`
	TenantID      string      `json:"tenantID"`
	JournalNumber *int64      `json:"journalNumber,omitempty"` // assigned only at POST
	JournalDate   time.Time   `json:"journalDate"`
	EntryType     EntryType   `json:"entryType"`
	Status        EntryStatus `json:"status"`
	Reference     string      `json:"reference"`
	Description   string      `json:"description"`

	AccountingPeriodID *string `json:"accountingPeriodID,omitempty"` // stamped at POST

	SubmittedBy *string    `json:"submittedBy,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ReviewedBy  *string    `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	PostedBy    *string    `json:"postedBy,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`

	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	ReturnedBy      *string    `json:"returnedBy,omitempty"`
	ReturnedAt      *time.Time `json:"returnedAt,omitempty"`
	ReturnReason    *string    `json:"returnReason,omitempty"`

	CorrectsEntryID *string `json:"correctsEntryID,omitempty"`
	ReversalOfID    *string `json:"reversalOfID,omitempty"`    // set on the reversing entry
	ReversalEntryID *string `json:"reversalEntryID,omitempty"` // set on the original once reversed

	RiskScore int      `json:"riskScore"`
	RiskFlags []string `json:"riskFlags,omitempty"`

	BudgetStatus                BudgetStatus `json:"budgetStatus"`
	BudgetFlags                 []string     `json:"budgetFlags,omitempty"`
	BudgetOverrideJustification string       `json:"budgetOverrideJustification,omitempty"`

	TotalAmount decimal.Decimal `json:"totalAmount"` // sum of the debit side

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// IsReversal reports whether this entry was created to reverse another.
func (e JournalEntry) IsReversal() bool {
	return e.EntryType == Reversing
}

// IsOpeningBalance reports whether this entry is the tenant's one-time
// cutover entry, recognized by its reference prefix.
func (e JournalEntry) IsOpeningBalance() bool {
	return len(e.Reference) >= len(OpeningBalanceReferencePrefix) &&
		e.Reference[:len(OpeningBalanceReferencePrefix)] == OpeningBalanceReferencePrefix
}

// JournalLine represents one debit-or-credit leg of a journal entry.
// Exactly one of DebitAmount/CreditAmount is positive; the other is zero.
type JournalLine struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	LineNumber    int             `json:"lineNumber"`
	AccountID     string          `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	LegalEntityID *string         `json:"legalEntityID,omitempty"`
	DepartmentID  *string         `json:"departmentID,omitempty"`
	ProjectID     *string         `json:"projectID,omitempty"`
	FundID        *string         `json:"fundID,omitempty"`
	Description   string          `json:"description"`
}

// Amount returns the line's magnitude, whichever side it sits on.
func (l JournalLine) Amount() decimal.Decimal {
	if l.DebitAmount.IsPositive() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}
