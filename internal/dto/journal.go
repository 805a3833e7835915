package dto

import (
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit-or-credit leg supplied by the caller.
// Exactly one of debitAmount/creditAmount must be positive.
type JournalLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	LegalEntityID *string         `json:"legalEntityID,omitempty"`
	DepartmentID  *string         `json:"departmentID,omitempty"`
	ProjectID     *string         `json:"projectID,omitempty"`
	FundID        *string         `json:"fundID,omitempty"`
	Description   string          `json:"description"`
}

// CreateEntryRequest creates a new DRAFT journal entry.
type CreateEntryRequest struct {
	JournalDate     time.Time            `json:"journalDate" binding:"required"`
	Reference       string               `json:"reference"`
	Description     string               `json:"description" binding:"required"`
	CorrectsEntryID *string              `json:"correctsEntryID,omitempty"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest replaces an editable entry's lines and header text.
type UpdateEntryRequest struct {
	JournalDate *time.Time           `json:"journalDate,omitempty"`
	Reference   *string              `json:"reference,omitempty"`
	Description *string              `json:"description,omitempty"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// SubmitEntryRequest submits an entry for review. The justification is
// required when the budget check comes back WARN.
type SubmitEntryRequest struct {
	BudgetOverrideJustification string `json:"budgetOverrideJustification"`
}

// ReviewEntryRequest approves a submitted entry.
type ReviewEntryRequest struct {
	BudgetOverrideJustification string `json:"budgetOverrideJustification"`
}

// RejectEntryRequest sends a submitted entry back to its maker.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReturnEntryRequest sends a reviewed entry back to SUBMITTED.
type ReturnEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseEntryRequest creates a reversing draft for a posted entry.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	Description  string    `json:"description"`
}

// ListEntriesParams controls worklist pagination.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
}

// JournalLineResponse mirrors one persisted line.
type JournalLineResponse struct {
	LineID        string          `json:"lineID"`
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

// EntryResponse mirrors a journal entry for API consumers.
type EntryResponse struct {
	EntryID                     string                `json:"entryID"`
	JournalNumber               *int64                `json:"journalNumber,omitempty"`
	JournalDate                 time.Time             `json:"journalDate"`
	EntryType                   string                `json:"entryType"`
	Status                      string                `json:"status"`
	Reference                   string                `json:"reference"`
	Description                 string                `json:"description"`
	CorrectsEntryID             *string               `json:"correctsEntryID,omitempty"`
	ReversalOfID                *string               `json:"reversalOfID,omitempty"`
	ReversalEntryID             *string               `json:"reversalEntryID,omitempty"`
	RiskScore                   int                   `json:"riskScore"`
	RiskFlags                   []string              `json:"riskFlags,omitempty"`
	BudgetStatus                string                `json:"budgetStatus"`
	BudgetFlags                 []string              `json:"budgetFlags,omitempty"`
	BudgetOverrideJustification string                `json:"budgetOverrideJustification,omitempty"`
	TotalAmount                 decimal.Decimal       `json:"totalAmount"`
	SubmittedBy                 *string               `json:"submittedBy,omitempty"`
	ReviewedBy                  *string               `json:"reviewedBy,omitempty"`
	PostedBy                    *string               `json:"postedBy,omitempty"`
	RejectionReason             *string               `json:"rejectionReason,omitempty"`
	ReturnReason                *string               `json:"returnReason,omitempty"`
	Lines                       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt                   time.Time             `json:"createdAt"`
	CreatedBy                   string                `json:"createdBy"`
}

// ListEntriesResponse is a page of entries plus the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:        l.LineID,
		LineNumber:    l.LineNumber,
		AccountID:     l.AccountID,
		DebitAmount:   l.DebitAmount,
		CreditAmount:  l.CreditAmount,
		LegalEntityID: l.LegalEntityID,
		DepartmentID:  l.DepartmentID,
		ProjectID:     l.ProjectID,
		FundID:        l.FundID,
		Description:   l.Description,
	}
}

// ToEntryResponse converts a domain entry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:                     e.EntryID,
		JournalNumber:               e.JournalNumber,
		JournalDate:                 e.JournalDate,
		EntryType:                   string(e.EntryType),
		Status:                      string(e.Status),
		Reference:                   e.Reference,
		Description:                 e.Description,
		CorrectsEntryID:             e.CorrectsEntryID,
		ReversalOfID:                e.ReversalOfID,
		ReversalEntryID:             e.ReversalEntryID,
		RiskScore:                   e.RiskScore,
		RiskFlags:                   e.RiskFlags,
		BudgetStatus:                string(e.BudgetStatus),
		BudgetFlags:                 e.BudgetFlags,
		BudgetOverrideJustification: e.BudgetOverrideJustification,
		TotalAmount:                 e.TotalAmount,
		SubmittedBy:                 e.SubmittedBy,
		ReviewedBy:                  e.ReviewedBy,
		PostedBy:                    e.PostedBy,
		RejectionReason:             e.RejectionReason,
		ReturnReason:                e.ReturnReason,
		CreatedAt:                   e.CreatedAt,
		CreatedBy:                   e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
