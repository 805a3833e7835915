package domain

// Permission codes consumed by the core. Resolution of which codes a user
// holds happens upstream; the core only checks membership.
const (
	PermJournalCreate  = "ledger.journal.create"
	PermJournalEdit    = "ledger.journal.edit"
	PermJournalSubmit  = "ledger.journal.submit"
	PermJournalReview  = "ledger.journal.review"
	PermJournalPost    = "ledger.journal.post"
	PermJournalReverse = "ledger.journal.reverse"
	PermLedgerView     = "ledger.reports.view"
	PermPeriodManage   = "ledger.period.manage"
)

// AuthContext is the resolved caller identity every core operation receives.
// It is produced by the transport layer (JWT claims) and treated as opaque
// truth here: the core never re-resolves users or permissions.
type AuthContext struct {
	TenantID        string   `json:"tenantID"`
	UserID          string   `json:"userID"`
	PermissionCodes []string `json:"permissionCodes"`
}

// HasPermission reports whether the context carries the given permission code.
func (a AuthContext) HasPermission(code string) bool {
	for _, c := range a.PermissionCodes {
		if c == code {
			return true
		}
	}
	return false
}
