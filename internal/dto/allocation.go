package dto

import (
	"time"

	"github.com/gracebase/steward/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodEntryInput is one row of a requested period breakdown.
type PeriodEntryInput struct {
	PeriodLabel string          `json:"periodLabel" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateAllocationRequest defines data for creating a budget allocation request.
// For ANNUAL requests the amount stands alone; for QUARTERLY and MONTHLY the
// breakdown is required and must sum to the requested amount.
type CreateAllocationRequest struct {
	FiscalYearID    string             `json:"fiscalYearID" binding:"required"`
	MinistryID      string             `json:"ministryID" binding:"required"`
	PeriodType      domain.PeriodType  `json:"periodType" binding:"required,oneof=ANNUAL QUARTERLY MONTHLY"`
	RequestedAmount decimal.Decimal    `json:"requestedAmount" binding:"required"`
	Breakdown       []PeriodEntryInput `json:"breakdown,omitempty"`
}

// UpdateAllocationRequest defines the content changes allowed on a draft allocation.
type UpdateAllocationRequest struct {
	PeriodType      *domain.PeriodType `json:"periodType"`
	RequestedAmount *decimal.Decimal   `json:"requestedAmount"`
	Breakdown       []PeriodEntryInput `json:"breakdown,omitempty"`
}

// ListAllocationsParams defines query parameters for listing allocation requests.
type ListAllocationsParams struct {
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
	FiscalYearID *string `form:"fiscalYearID"`
}

// PeriodEntryResponse is one row of an allocation's period breakdown.
type PeriodEntryResponse struct {
	PeriodLabel string          `json:"periodLabel"`
	Amount      decimal.Decimal `json:"amount"`
}

// AllocationResponse defines data returned for an allocation request.
type AllocationResponse struct {
	AllocationID    string                  `json:"allocationID"`
	OrganizationID  string                  `json:"organizationID"`
	RequesterID     string                  `json:"requesterID"`
	RequesterName   string                  `json:"requesterName,omitempty"`
	FiscalYearID    string                  `json:"fiscalYearID"`
	MinistryID      string                  `json:"ministryID"`
	PeriodType      domain.PeriodType       `json:"periodType"`
	RequestedAmount decimal.Decimal         `json:"requestedAmount"`
	ApprovedAmount  *decimal.Decimal        `json:"approvedAmount,omitempty"`
	Breakdown       []PeriodEntryResponse   `json:"breakdown,omitempty"`
	Status          domain.AllocationStatus `json:"status"`
	ReviewerID      *string                 `json:"reviewerID,omitempty"`
	ReviewerNotes   *string                 `json:"reviewerNotes,omitempty"`
	Version         int64                   `json:"version"`
	CreatedAt       time.Time               `json:"createdAt"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
}

// ToAllocationResponse converts domain.AllocationRequest to DTO.
func ToAllocationResponse(a *domain.AllocationRequest) AllocationResponse {
	breakdown := make([]PeriodEntryResponse, len(a.Breakdown))
	for i, entry := range a.Breakdown {
		breakdown[i] = PeriodEntryResponse{PeriodLabel: entry.PeriodLabel, Amount: entry.Amount}
	}
	return AllocationResponse{
		AllocationID:    a.AllocationID,
		OrganizationID:  a.OrganizationID,
		RequesterID:     a.RequesterID,
		RequesterName:   a.RequesterName,
		FiscalYearID:    a.FiscalYearID,
		MinistryID:      a.MinistryID,
		PeriodType:      a.PeriodType,
		RequestedAmount: a.RequestedAmount,
		ApprovedAmount:  a.ApprovedAmount,
		Breakdown:       breakdown,
		Status:          a.Status,
		ReviewerID:      a.ReviewerID,
		ReviewerNotes:   a.ReviewerNotes,
		Version:         a.Version,
		CreatedAt:       a.CreatedAt,
		LastUpdatedAt:   a.LastUpdatedAt,
	}
}

// ListAllocationsResponse wraps a page of allocation requests.
type ListAllocationsResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToListAllocationsResponse converts a page of domain.AllocationRequest to DTO.
func ToListAllocationsResponse(allocations []domain.AllocationRequest, nextToken *string) ListAllocationsResponse {
	list := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		list[i] = ToAllocationResponse(&a)
	}
	return ListAllocationsResponse{Allocations: list, NextToken: nextToken}
}
