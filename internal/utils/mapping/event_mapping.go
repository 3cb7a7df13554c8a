package mapping

import (
	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/models"
)

// ToModelEventRequest converts a domain EventRequest to a model EventRequest
func ToModelEventRequest(d domain.EventRequest) models.EventRequest {
	return models.EventRequest{
		EventID:        d.EventID,
		OrganizationID: d.OrganizationID,
		RequesterID:    d.RequesterID,
		Title:          d.Title,
		Description:    d.Description,
		RoomID:         d.RoomID,
		StartsAt:       d.StartsAt,
		EndsAt:         d.EndsAt,
		IsRecurring:    d.IsRecurring,
		ParentEventID:  d.ParentEventID,
		Status:         models.EventStatus(d.Status),
		ReviewerID:     d.ReviewerID,
		ReviewerNotes:  d.ReviewerNotes,
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		RequesterName:  d.RequesterName,
	}
}

// ToDomainEventRequest converts a model EventRequest to a domain EventRequest
func ToDomainEventRequest(m models.EventRequest) domain.EventRequest {
	return domain.EventRequest{
		EventID:        m.EventID,
		OrganizationID: m.OrganizationID,
		RequesterID:    m.RequesterID,
		RequesterName:  m.RequesterName,
		Title:          m.Title,
		Description:    m.Description,
		RoomID:         m.RoomID,
		StartsAt:       m.StartsAt,
		EndsAt:         m.EndsAt,
		IsRecurring:    m.IsRecurring,
		ParentEventID:  m.ParentEventID,
		Status:         domain.EventStatus(m.Status),
		ReviewerID:     m.ReviewerID,
		ReviewerNotes:  m.ReviewerNotes,
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEventRequestSlice converts a slice of model EventRequests to domain
func ToDomainEventRequestSlice(ms []models.EventRequest) []domain.EventRequest {
	ds := make([]domain.EventRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEventRequest(m)
	}
	return ds
}
