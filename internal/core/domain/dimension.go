package domain

import "time"

// Dimension holds the fields shared by every coding axis beyond the account:
// legal entity, department, project and fund rows all carry an active flag
// and an effective-dating window.
type Dimension struct {
	DimensionID   string     `json:"dimensionID"`
	TenantID      string     `json:"tenantID"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	IsActive      bool       `json:"isActive"`
	EffectiveFrom *time.Time `json:"effectiveFrom,omitempty"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty"`
}

// EffectiveOn reports whether the row is active and its effective window
// contains the given date. Nil bounds are open-ended.
func (d Dimension) EffectiveOn(date time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.EffectiveFrom != nil && date.Before(*d.EffectiveFrom) {
		return false
	}
	if d.EffectiveTo != nil && date.After(*d.EffectiveTo) {
		return false
	}
	return true
}

// LegalEntity is the mandatory first dimension on every journal line.
type LegalEntity struct {
	Dimension
}

// Department is required on income/expense lines, forbidden on control accounts.
type Department struct {
	Dimension
}

// Project may demand a fund; restricted projects always do, so their
// spending stays traceable to a funding source.
type Project struct {
	Dimension
	RequiresFund bool `json:"requiresFund"`
	IsRestricted bool `json:"isRestricted"`
}

// Fund always belongs to a project.
type Fund struct {
	Dimension
	ProjectID string `json:"projectID"`
}
