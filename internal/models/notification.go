package models

import "time"

// NotificationStatus mirrors the status column of notifications.
type NotificationStatus string

// Notification represents a notification outbox row.
type Notification struct {
	NotificationID string             `db:"notification_id"`
	OrganizationID string             `db:"organization_id"`
	RequestKind    string             `db:"request_kind"`
	RequestID      string             `db:"request_id"`
	RecipientEmail string             `db:"recipient_email"`
	Subject        string             `db:"subject"`
	Body           string             `db:"body"`
	Status         NotificationStatus `db:"status"`
	Attempts       int                `db:"attempts"`
	LastError      *string            `db:"last_error"`
	DeliveredAt    *time.Time         `db:"delivered_at"`
	AuditFields
}
