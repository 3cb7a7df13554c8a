package domain

import "github.com/shopspring/decimal"

// RequestKind identifies which review pipeline a record belongs to.
type RequestKind string

const (
	KindEvent      RequestKind = "EVENT"
	KindExpense    RequestKind = "EXPENSE"
	KindAllocation RequestKind = "ALLOCATION"
)

// ReviewAction is a named transition in one of the status machines.
type ReviewAction string

const (
	ActionSubmit        ReviewAction = "SUBMIT"
	ActionApprove       ReviewAction = "APPROVE"
	ActionReject        ReviewAction = "REJECT"
	ActionDeny          ReviewAction = "DENY"
	ActionPublish       ReviewAction = "PUBLISH"
	ActionUnpublish     ReviewAction = "UNPUBLISH"
	ActionUnapprove     ReviewAction = "UNAPPROVE"
	ActionMoveToPending ReviewAction = "MOVE_TO_PENDING"
	ActionCancel        ReviewAction = "CANCEL"
)

// ReviewScope selects whether a recurring-event action applies to one
// occurrence or the whole series. Only REJECT exposes scope.
type ReviewScope string

const (
	ScopeSingle ReviewScope = "SINGLE"
	ScopeAll    ReviewScope = "ALL"
)

// ReviewOptions carries the optional inputs of a review call.
type ReviewOptions struct {
	Notes          string
	Scope          ReviewScope
	ApprovedAmount *decimal.Decimal
}

// NotificationOutcome describes what happened to the post-commit notification.
type NotificationOutcome string

const (
	NotificationSent   NotificationOutcome = "SENT"
	NotificationFailed NotificationOutcome = "FAILED"
	NotificationQueued NotificationOutcome = "QUEUED" // no dispatcher configured; outbox row kept pending
	NotificationNone   NotificationOutcome = "NONE"   // the transition does not notify
)

// ReviewerAttribution is the audit trail written by every committed transition.
type ReviewerAttribution struct {
	ReviewerID   string
	ReviewerName string
	Notes        string
}
