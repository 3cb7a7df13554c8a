package workflow

import (
	"github.com/shopspring/decimal"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
)

var allocationMachine = NewMachine(domain.KindAllocation, map[domain.AllocationStatus]map[domain.ReviewAction]Rule[domain.AllocationStatus]{
	domain.AllocationDraft: {
		domain.ActionSubmit: {To: domain.AllocationPending, RequesterOnly: true},
		domain.ActionCancel: {To: domain.AllocationCancelled, RequesterOnly: true},
	},
	domain.AllocationPending: {
		// To is refined by ApprovalOutcome: a partial grant lands in PARTIALLY_APPROVED.
		domain.ActionApprove: {To: domain.AllocationApproved, Roles: financeOrAdmin, RequiresAmount: true, Notify: true},
		domain.ActionDeny:    {To: domain.AllocationDenied, Roles: financeOrAdmin, RequiresNotes: true, Notify: true},
		domain.ActionCancel:  {To: domain.AllocationCancelled, RequesterOnly: true},
	},
	domain.AllocationApproved: {
		domain.ActionUnapprove: {To: domain.AllocationPending, Roles: financeOrAdmin, Notify: true},
	},
	domain.AllocationPartiallyApproved: {
		domain.ActionUnapprove: {To: domain.AllocationPending, Roles: financeOrAdmin, Notify: true},
	},
})

// Allocation returns the status machine governing budget-allocation requests.
func Allocation() *Machine[domain.AllocationStatus] {
	return allocationMachine
}

// ApprovalOutcome decides the target status of an allocation approval from the
// granted amount. A nil approved amount is a full grant. Amounts outside
// [0, requested] fail ErrInvalidAmount; a strictly smaller grant is a partial
// approval.
func ApprovalOutcome(requested decimal.Decimal, approved *decimal.Decimal) (domain.AllocationStatus, error) {
	if approved == nil {
		return domain.AllocationApproved, nil
	}
	if approved.IsNegative() || approved.GreaterThan(requested) {
		return "", apperrors.ErrInvalidAmount
	}
	if approved.LessThan(requested) {
		return domain.AllocationPartiallyApproved, nil
	}
	return domain.AllocationApproved, nil
}
