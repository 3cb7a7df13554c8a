package dto

import (
	"github.com/gracebase/steward/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReviewRequest is the body of a review call against any request kind.
// Notes are required by denial actions; scope applies to recurring events
// only; approvedAmount applies to allocation approvals only.
type ReviewRequest struct {
	Action         domain.ReviewAction `json:"action" binding:"required"`
	Notes          string              `json:"notes"`
	Scope          domain.ReviewScope  `json:"scope" binding:"omitempty,oneof=SINGLE ALL"`
	ApprovedAmount *decimal.Decimal    `json:"approvedAmount,omitempty"`
}

// ToReviewOptions converts the request body into domain review options.
func (r ReviewRequest) ToReviewOptions() domain.ReviewOptions {
	scope := r.Scope
	if scope == "" {
		scope = domain.ScopeSingle
	}
	return domain.ReviewOptions{
		Notes:          r.Notes,
		Scope:          scope,
		ApprovedAmount: r.ApprovedAmount,
	}
}

// EventReviewOutcome is the result of a committed event review transition.
// AffectedEventIDs lists every record the transition touched; for series
// scope it contains the root and all occurrences.
type EventReviewOutcome struct {
	Event            EventResponse              `json:"event"`
	AffectedEventIDs []string                   `json:"affectedEventIDs"`
	Notification     domain.NotificationOutcome `json:"notification"`
}

// ExpenseReviewOutcome is the result of a committed expense review transition.
type ExpenseReviewOutcome struct {
	Expense      ExpenseResponse            `json:"expense"`
	Notification domain.NotificationOutcome `json:"notification"`
}

// AllocationReviewOutcome is the result of a committed allocation review transition.
type AllocationReviewOutcome struct {
	Allocation   AllocationResponse         `json:"allocation"`
	Notification domain.NotificationOutcome `json:"notification"`
}

// LegalActionsResponse lists the actions the caller may take on a request.
type LegalActionsResponse struct {
	Actions []domain.ReviewAction `json:"actions"`
}
