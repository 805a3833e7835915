package models

import "time"

// Dimension holds the columns shared by every dimension table.
type Dimension struct {
	DimensionID   string     `db:"dimension_id"`
	TenantID      string     `db:"tenant_id"`
	Code          string     `db:"code"`
	Name          string     `db:"name"`
	IsActive      bool       `db:"is_active"`
	EffectiveFrom *time.Time `db:"effective_from"`
	EffectiveTo   *time.Time `db:"effective_to"`
}

// LegalEntity is one legal entity dimension row.
type LegalEntity struct {
	Dimension
}

// Department is one department dimension row.
type Department struct {
	Dimension
}

// Project is one project dimension row.
type Project struct {
	Dimension
	RequiresFund bool `db:"requires_fund"`
	IsRestricted bool `db:"is_restricted"`
}

// Fund is one fund dimension row.
type Fund struct {
	Dimension
	ProjectID string `db:"project_id"`
}
