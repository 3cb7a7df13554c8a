package services

import (
	"context"

	"github.com/gracebase/steward/internal/core/domain"
)

// NotificationDispatcher delivers a notification to its recipient.
// Implementations live outside the core (SMTP adapter in production,
// a recording fake in tests).
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification domain.Notification) error
}

// NotificationReaderSvc defines read operations for notifications
type NotificationReaderSvc interface {
	// ListPendingNotifications lists undelivered notifications for an organization.
	// Only organization admins can access this data.
	ListPendingNotifications(ctx context.Context, organizationID, requestingUserID string, limit int) ([]domain.Notification, error)
}

// NotificationRetrierSvc defines redelivery operations for notifications
type NotificationRetrierSvc interface {
	// RetryPendingNotifications attempts redelivery of undelivered notifications
	// for an organization and reports how many were delivered.
	// Only organization admins can trigger a retry.
	RetryPendingNotifications(ctx context.Context, organizationID, requestingUserID string, limit int) (delivered int, failed int, err error)
}

// NotificationSvcFacade combines all notification-related service interfaces
type NotificationSvcFacade interface {
	NotificationReaderSvc
	NotificationRetrierSvc
}
