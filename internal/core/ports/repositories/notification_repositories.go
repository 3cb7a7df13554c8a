package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gracebase/steward/internal/core/domain"
)

// NotificationReader defines read operations for the notification outbox
type NotificationReader interface {
	// ListPendingNotifications retrieves undelivered outbox rows for an organization.
	ListPendingNotifications(ctx context.Context, organizationID string, limit int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for the notification outbox
type NotificationWriter interface {
	// SaveNotificationInTx queues an outbox row inside the same transaction as
	// the status change it describes.
	SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error

	// MarkNotificationDelivered records a successful dispatch.
	MarkNotificationDelivered(ctx context.Context, notificationID string, deliveredAt time.Time) error

	// MarkNotificationFailed bumps the attempt counter and records the dispatch error.
	MarkNotificationFailed(ctx context.Context, notificationID string, lastError string, attemptedAt time.Time) error
}

// NotificationRepositoryFacade combines the outbox repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
