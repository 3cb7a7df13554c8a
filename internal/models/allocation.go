package models

import "github.com/shopspring/decimal"

// AllocationStatus mirrors the status column of allocation_requests.
type AllocationStatus string

// PeriodType mirrors the period_type column of allocation_requests.
type PeriodType string

// AllocationRequest represents a budget allocation request row.
type AllocationRequest struct {
	AllocationID    string           `db:"allocation_id"`
	OrganizationID  string           `db:"organization_id"`
	RequesterID     string           `db:"requester_id"`
	FiscalYearID    string           `db:"fiscal_year_id"`
	MinistryID      string           `db:"ministry_id"`
	PeriodType      PeriodType       `db:"period_type"`
	RequestedAmount decimal.Decimal  `db:"requested_amount"`
	ApprovedAmount  *decimal.Decimal `db:"approved_amount"`
	Status          AllocationStatus `db:"status"`
	ReviewerID      *string          `db:"reviewer_id"`
	ReviewerNotes   *string          `db:"reviewer_notes"`
	Version         int64            `db:"version"`
	AuditFields

	// RequesterName is populated by joins against users, not stored on the row.
	RequesterName string `db:"requester_name"`
}

// AllocationPeriod is one row of an allocation's period breakdown.
// Rows are replaced wholesale whenever the draft breakdown changes.
type AllocationPeriod struct {
	AllocationID string          `db:"allocation_id"`
	PeriodLabel  string          `db:"period_label"`
	Amount       decimal.Decimal `db:"amount"`
	SortOrder    int             `db:"sort_order"`
}
