package workflow

import "github.com/gracebase/steward/internal/core/domain"

var adminOnly = []domain.UserOrganizationRole{domain.RoleAdmin}

var eventMachine = NewMachine(domain.KindEvent, map[domain.EventStatus]map[domain.ReviewAction]Rule[domain.EventStatus]{
	domain.EventDraft: {
		domain.ActionSubmit: {To: domain.EventPendingReview, RequesterOnly: true},
	},
	domain.EventPendingReview: {
		domain.ActionApprove: {To: domain.EventApproved, Roles: adminOnly, Notify: true},
		domain.ActionReject:  {To: domain.EventRejected, Roles: adminOnly, RequiresNotes: true, Notify: true},
	},
	domain.EventApproved: {
		domain.ActionPublish:   {To: domain.EventPublished, Roles: adminOnly, Notify: true},
		domain.ActionUnapprove: {To: domain.EventPendingReview, Roles: adminOnly, Notify: true},
	},
	domain.EventPublished: {
		domain.ActionUnpublish: {To: domain.EventApproved, Roles: adminOnly, Notify: true},
		domain.ActionUnapprove: {To: domain.EventPendingReview, Roles: adminOnly, Notify: true},
	},
	domain.EventRejected: {
		domain.ActionMoveToPending: {To: domain.EventPendingReview, Roles: adminOnly},
	},
})

// Event returns the status machine governing event review requests.
// REJECTED is terminal except for the explicit move-to-pending reversal.
func Event() *Machine[domain.EventStatus] {
	return eventMachine
}
