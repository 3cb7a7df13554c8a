package domain

import "github.com/shopspring/decimal"

// AllocationStatus indicates where a budget-allocation request sits in review.
type AllocationStatus string

const (
	AllocationDraft             AllocationStatus = "DRAFT"
	AllocationPending           AllocationStatus = "PENDING"
	AllocationApproved          AllocationStatus = "APPROVED"
	AllocationPartiallyApproved AllocationStatus = "PARTIALLY_APPROVED"
	AllocationDenied            AllocationStatus = "DENIED"
	AllocationCancelled         AllocationStatus = "CANCELLED"
)

// PeriodType is the granularity a budget allocation is requested at.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "ANNUAL"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodMonthly   PeriodType = "MONTHLY"
)

// PeriodEntry is one row of an allocation's period breakdown (e.g., "Q1" or "JAN").
type PeriodEntry struct {
	PeriodLabel string          `json:"periodLabel"`
	Amount      decimal.Decimal `json:"amount"`
}

// AllocationRequest is a request for a ministry's budget in a fiscal year.
// RequestedAmount is derived: the single annual amount, or the sum of the
// period breakdown. When PeriodType is not ANNUAL the breakdown must sum to
// RequestedAmount exactly.
type AllocationRequest struct {
	AllocationID    string           `json:"allocationID"` // Primary Key (e.g., UUID)
	OrganizationID  string           `json:"organizationID"`
	RequesterID     string           `json:"requesterID"`
	RequesterName   string           `json:"requesterName"`
	FiscalYearID    string           `json:"fiscalYearID"`
	MinistryID      string           `json:"ministryID"`
	PeriodType      PeriodType       `json:"periodType"`
	RequestedAmount decimal.Decimal  `json:"requestedAmount"`
	ApprovedAmount  *decimal.Decimal `json:"approvedAmount,omitempty"`
	Breakdown       []PeriodEntry    `json:"breakdown,omitempty"`
	Status          AllocationStatus `json:"status"`
	ReviewerID      *string          `json:"reviewerID,omitempty"`
	ReviewerNotes   *string          `json:"reviewerNotes,omitempty"`
	Version         int64            `json:"version"`
	AuditFields
}
