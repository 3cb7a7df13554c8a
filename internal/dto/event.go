package dto

import (
	"time"

	"github.com/gracebase/steward/internal/core/domain"
)

// EventOccurrenceInput is one additional occurrence of a recurring series.
// The root record carries the first occurrence's times.
type EventOccurrenceInput struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
}

// CreateEventRequest defines data for creating a new event request.
// Supplying occurrences makes the event a recurring series: the created root
// plus one child record per occurrence, all in DRAFT.
type CreateEventRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	RoomID      string                 `json:"roomID" binding:"required"`
	StartsAt    time.Time              `json:"startsAt" binding:"required"`
	EndsAt      time.Time              `json:"endsAt" binding:"required"`
	Occurrences []EventOccurrenceInput `json:"occurrences,omitempty"`
}

// UpdateEventRequest defines the content changes allowed on a draft event.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	RoomID      *string    `json:"roomID"`
	StartsAt    *time.Time `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
}

// ListEventsParams defines query parameters for listing event requests.
type ListEventsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
}

// EventResponse defines data returned for an event request.
type EventResponse struct {
	EventID        string             `json:"eventID"`
	OrganizationID string             `json:"organizationID"`
	RequesterID    string             `json:"requesterID"`
	RequesterName  string             `json:"requesterName,omitempty"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	RoomID         string             `json:"roomID"`
	StartsAt       time.Time          `json:"startsAt"`
	EndsAt         time.Time          `json:"endsAt"`
	IsRecurring    bool               `json:"isRecurring"`
	ParentEventID  *string            `json:"parentEventID,omitempty"`
	Status         domain.EventStatus `json:"status"`
	ReviewerID     *string            `json:"reviewerID,omitempty"`
	ReviewerNotes  *string            `json:"reviewerNotes,omitempty"`
	Version        int64              `json:"version"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToEventResponse converts domain.EventRequest to DTO.
func ToEventResponse(e *domain.EventRequest) EventResponse {
	return EventResponse{
		EventID:        e.EventID,
		OrganizationID: e.OrganizationID,
		RequesterID:    e.RequesterID,
		RequesterName:  e.RequesterName,
		Title:          e.Title,
		Description:    e.Description,
		RoomID:         e.RoomID,
		StartsAt:       e.StartsAt,
		EndsAt:         e.EndsAt,
		IsRecurring:    e.IsRecurring,
		ParentEventID:  e.ParentEventID,
		Status:         e.Status,
		ReviewerID:     e.ReviewerID,
		ReviewerNotes:  e.ReviewerNotes,
		Version:        e.Version,
		CreatedAt:      e.CreatedAt,
		LastUpdatedAt:  e.LastUpdatedAt,
	}
}

// ListEventsResponse wraps a page of event requests.
type ListEventsResponse struct {
	Events    []EventResponse `json:"events"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListEventsResponse converts a page of domain.EventRequest to DTO.
func ToListEventsResponse(events []domain.EventRequest, nextToken *string) ListEventsResponse {
	list := make([]EventResponse, len(events))
	for i, e := range events {
		list[i] = ToEventResponse(&e)
	}
	return ListEventsResponse{Events: list, NextToken: nextToken}
}
