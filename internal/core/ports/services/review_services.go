package services

import (
	"context"

	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/dto"
)

// EventReviewerSvc applies review actions to event requests.
type EventReviewerSvc interface {
	// ReviewEvent applies a review action to an event request on behalf of the
	// acting user. For recurring series roots the options scope controls whether
	// the action cascades to every occurrence; the cascade commits atomically.
	ReviewEvent(ctx context.Context, organizationID, eventID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.EventReviewOutcome, error)

	// LegalEventActions lists the actions the acting user may take on the event
	// in its current status.
	LegalEventActions(ctx context.Context, organizationID, eventID, actingUserID string) ([]domain.ReviewAction, error)
}

// ExpenseReviewerSvc applies review actions to expense requests.
type ExpenseReviewerSvc interface {
	// ReviewExpense applies a review action to an expense request on behalf of
	// the acting user, advancing or denying the approval chain.
	ReviewExpense(ctx context.Context, organizationID, expenseID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.ExpenseReviewOutcome, error)

	// LegalExpenseActions lists the actions the acting user may take on the
	// expense in its current status.
	LegalExpenseActions(ctx context.Context, organizationID, expenseID, actingUserID string) ([]domain.ReviewAction, error)
}

// AllocationReviewerSvc applies review actions to budget allocation requests.
type AllocationReviewerSvc interface {
	// ReviewAllocation applies a review action to an allocation request on
	// behalf of the acting user. Approvals carry the approved amount, which
	// decides between full and partial approval.
	ReviewAllocation(ctx context.Context, organizationID, allocationID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.AllocationReviewOutcome, error)

	// LegalAllocationActions lists the actions the acting user may take on the
	// allocation in its current status.
	LegalAllocationActions(ctx context.Context, organizationID, allocationID, actingUserID string) ([]domain.ReviewAction, error)
}

// ReviewSvcFacade combines the reviewer interfaces for all request kinds
type ReviewSvcFacade interface {
	EventReviewerSvc
	ExpenseReviewerSvc
	AllocationReviewerSvc
}
