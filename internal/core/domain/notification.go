package domain

import "time"

// NotificationStatus tracks an outbox row's delivery state.
type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "PENDING"
	NotificationDelivered NotificationStatus = "DELIVERED"
)

// Notification is an outbox row describing a review outcome to be mailed to
// the requester. It is written in the same database transaction as the status
// change and dispatched after commit, so delivery can never roll back a
// committed transition.
type Notification struct {
	NotificationID string             `json:"notificationID"`
	OrganizationID string             `json:"organizationID"`
	RequestKind    RequestKind        `json:"requestKind"`
	RequestID      string             `json:"requestID"`
	RecipientEmail string             `json:"recipientEmail"`
	Subject        string             `json:"subject"`
	Body           string             `json:"body"`
	Status         NotificationStatus `json:"status"`
	Attempts       int                `json:"attempts"`
	LastError      *string            `json:"lastError,omitempty"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
	AuditFields
}
