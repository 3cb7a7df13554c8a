package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
)

// notificationService implements the NotificationSvcFacade interface
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	dispatcher       portssvc.NotificationDispatcher
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(
	notificationRepo portsrepo.NotificationRepositoryFacade,
	authorizer portssvc.OrganizationAuthorizerSvc,
	dispatcher portssvc.NotificationDispatcher,
) portssvc.NotificationSvcFacade {
	return &notificationService{
		BaseService:      BaseService{OrganizationAuthorizer: authorizer},
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
}

// Ensure notificationService implements the NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// ListPendingNotifications lists undelivered outbox rows for an organization
func (s *notificationService) ListPendingNotifications(ctx context.Context, organizationID, requestingUserID string, limit int) ([]domain.Notification, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListPendingNotifications(ctx, organizationID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending notifications",
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

// RetryPendingNotifications attempts redelivery of undelivered outbox rows.
// Each row is retried independently; one failure does not stop the sweep.
func (s *notificationService) RetryPendingNotifications(ctx context.Context, organizationID, requestingUserID string, limit int) (int, int, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return 0, 0, err
	}

	pending, err := s.notificationRepo.ListPendingNotifications(ctx, organizationID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pending notifications for retry",
			slog.String("organization_id", organizationID))
		return 0, 0, err
	}

	delivered, failed := 0, 0
	for _, notification := range pending {
		if s.dispatcher == nil {
			failed = len(pending)
			break
		}
		if err := s.dispatcher.Dispatch(ctx, notification); err != nil {
			failed++
			if markErr := s.notificationRepo.MarkNotificationFailed(ctx, notification.NotificationID, err.Error(), time.Now()); markErr != nil {
				s.LogError(ctx, markErr, "Failed to record notification failure",
					slog.String("notification_id", notification.NotificationID))
			}
			continue
		}
		delivered++
		if markErr := s.notificationRepo.MarkNotificationDelivered(ctx, notification.NotificationID, time.Now()); markErr != nil {
			s.LogError(ctx, markErr, "Failed to record notification delivery",
				slog.String("notification_id", notification.NotificationID))
		}
	}

	s.LogInfo(ctx, "Notification retry sweep finished",
		slog.String("organization_id", organizationID),
		slog.Int("delivered", delivered),
		slog.Int("failed", failed))
	return delivered, failed, nil
}
