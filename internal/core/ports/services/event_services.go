package services

import (
	"context"

	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/dto"
)

// EventReaderSvc defines read operations for event requests
type EventReaderSvc interface {
	// GetEventByID retrieves a specific event request.
	GetEventByID(ctx context.Context, organizationID, eventID, requestingUserID string) (*domain.EventRequest, error)

	// ListEvents retrieves a paginated list of event requests in an organization,
	// optionally filtered by status.
	ListEvents(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, status *domain.EventStatus) ([]domain.EventRequest, *string, error)

	// ListSeriesOccurrences retrieves the child occurrences of a recurring series root.
	ListSeriesOccurrences(ctx context.Context, organizationID, parentEventID, requestingUserID string) ([]domain.EventRequest, error)
}

// EventWriterSvc defines write operations for event requests
type EventWriterSvc interface {
	// CreateEvent persists a new event request in DRAFT.
	// When the request describes a recurring series, the root and all
	// occurrence rows are persisted together.
	CreateEvent(ctx context.Context, organizationID, requesterUserID string, req dto.CreateEventRequest) (*domain.EventRequest, error)

	// UpdateEvent updates the content of a draft event request.
	UpdateEvent(ctx context.Context, organizationID, eventID, requestingUserID string, req dto.UpdateEventRequest) (*domain.EventRequest, error)
}

// EventSvcFacade combines all event-related service interfaces
type EventSvcFacade interface {
	EventReaderSvc
	EventWriterSvc
}
