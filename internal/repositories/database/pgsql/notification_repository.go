package pgsql

import (
	"context"
	"time"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	"github.com/gracebase/steward/internal/models"
	"github.com/gracebase/steward/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for the notification outbox.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotificationInTx queues an outbox row inside the caller's transaction so
// the row commits (or rolls back) together with the status change.
func (r *PgxNotificationRepository) SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (
			notification_id, organization_id, request_kind, request_id,
			recipient_email, subject, body, status, attempts,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.NotificationID,
		m.OrganizationID,
		m.RequestKind,
		m.RequestID,
		m.RecipientEmail,
		m.Subject,
		m.Body,
		m.Status,
		m.Attempts,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to queue notification "+notification.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListPendingNotifications(ctx context.Context, organizationID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT notification_id, organization_id, request_kind, request_id,
		       recipient_email, subject, body, status, attempts, last_error, delivered_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM notifications
		WHERE organization_id = $1 AND status = $2
		ORDER BY created_at
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, domain.NotificationPending, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending notifications for organization "+organizationID, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.OrganizationID,
			&m.RequestKind,
			&m.RequestID,
			&m.RecipientEmail,
			&m.Subject,
			&m.Body,
			&m.Status,
			&m.Attempts,
			&m.LastError,
			&m.DeliveredAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification row", err)
		}
		notifications = append(notifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating notification rows", err)
	}

	return mapping.ToDomainNotificationSlice(notifications), nil
}

func (r *PgxNotificationRepository) MarkNotificationDelivered(ctx context.Context, notificationID string, deliveredAt time.Time) error {
	query := `
		UPDATE notifications
		SET status = $1, delivered_at = $2, attempts = attempts + 1, last_error = NULL,
		    last_updated_at = $2
		WHERE notification_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, domain.NotificationDelivered, deliveredAt, notificationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification delivered "+notificationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("notification " + notificationID + " not found")
	}
	return nil
}

func (r *PgxNotificationRepository) MarkNotificationFailed(ctx context.Context, notificationID string, lastError string, attemptedAt time.Time) error {
	query := `
		UPDATE notifications
		SET attempts = attempts + 1, last_error = $1, last_updated_at = $2
		WHERE notification_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, lastError, attemptedAt, notificationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record notification failure "+notificationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("notification " + notificationID + " not found")
	}
	return nil
}
