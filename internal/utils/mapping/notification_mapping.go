package mapping

import (
	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		OrganizationID: d.OrganizationID,
		RequestKind:    string(d.RequestKind),
		RequestID:      d.RequestID,
		RecipientEmail: d.RecipientEmail,
		Subject:        d.Subject,
		Body:           d.Body,
		Status:         models.NotificationStatus(d.Status),
		Attempts:       d.Attempts,
		LastError:      d.LastError,
		DeliveredAt:    d.DeliveredAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		OrganizationID: m.OrganizationID,
		RequestKind:    domain.RequestKind(m.RequestKind),
		RequestID:      m.RequestID,
		RecipientEmail: m.RecipientEmail,
		Subject:        m.Subject,
		Body:           m.Body,
		Status:         domain.NotificationStatus(m.Status),
		Attempts:       m.Attempts,
		LastError:      m.LastError,
		DeliveredAt:    m.DeliveredAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainNotificationSlice converts a slice of model Notifications to domain
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	ds := make([]domain.Notification, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotification(m)
	}
	return ds
}
