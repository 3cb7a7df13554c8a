package dto

import (
	"time"

	"github.com/gracebase/steward/internal/core/domain"
)

// NotificationResponse defines data returned for a notification outbox row.
type NotificationResponse struct {
	NotificationID string                    `json:"notificationID"`
	OrganizationID string                    `json:"organizationID"`
	RequestKind    domain.RequestKind        `json:"requestKind"`
	RequestID      string                    `json:"requestID"`
	RecipientEmail string                    `json:"recipientEmail"`
	Subject        string                    `json:"subject"`
	Status         domain.NotificationStatus `json:"status"`
	Attempts       int                       `json:"attempts"`
	LastError      *string                   `json:"lastError,omitempty"`
	DeliveredAt    *time.Time                `json:"deliveredAt,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

// ToNotificationResponse converts domain.Notification to DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		OrganizationID: n.OrganizationID,
		RequestKind:    n.RequestKind,
		RequestID:      n.RequestID,
		RecipientEmail: n.RecipientEmail,
		Subject:        n.Subject,
		Status:         n.Status,
		Attempts:       n.Attempts,
		LastError:      n.LastError,
		DeliveredAt:    n.DeliveredAt,
		CreatedAt:      n.CreatedAt,
	}
}

// ListNotificationsResponse wraps a list of notification outbox rows.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToListNotificationsResponse converts a slice of domain.Notification to DTO.
func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	list := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		list[i] = ToNotificationResponse(&n)
	}
	return ListNotificationsResponse{Notifications: list}
}

// RetryNotificationsResponse reports the result of a redelivery pass.
type RetryNotificationsResponse struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}
