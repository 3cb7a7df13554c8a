package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/google/uuid"
)

// eventService implements the EventSvcFacade interface
type eventService struct {
	BaseService
	eventRepo portsrepo.EventRepositoryFacade
}

// NewEventService creates a new event service with the provided dependencies
func NewEventService(
	eventRepo portsrepo.EventRepositoryFacade,
	authorizer portssvc.OrganizationAuthorizerSvc,
) portssvc.EventSvcFacade {
	return &eventService{
		BaseService: BaseService{OrganizationAuthorizer: authorizer},
		eventRepo:   eventRepo,
	}
}

// Ensure eventService implements the EventSvcFacade interface
var _ portssvc.EventSvcFacade = (*eventService)(nil)

// GetEventByID retrieves a specific event request
func (s *eventService) GetEventByID(ctx context.Context, organizationID, eventID, requestingUserID string) (*domain.EventRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find event by ID", slog.String("event_id", eventID))
		}
		return nil, err
	}

	// Records from other organizations are indistinguishable from missing ones.
	if event.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("event request not found")
	}

	return event, nil
}

// ListEvents retrieves a paginated list of event requests in an organization
func (s *eventService) ListEvents(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, status *domain.EventStatus) ([]domain.EventRequest, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	events, token, err := s.eventRepo.ListEventsByOrganization(ctx, organizationID, limit, nextToken, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list events",
			slog.String("organization_id", organizationID))
		return nil, nil, err
	}

	if events == nil {
		events = []domain.EventRequest{}
	}
	return events, token, nil
}

// ListSeriesOccurrences retrieves the child occurrences of a recurring series root
func (s *eventService) ListSeriesOccurrences(ctx context.Context, organizationID, parentEventID, requestingUserID string) ([]domain.EventRequest, error) {
	parent, err := s.GetEventByID(ctx, organizationID, parentEventID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !parent.IsSeriesRoot() {
		return nil, apperrors.NewValidationFailedError("event is not a recurring series root")
	}

	children, err := s.eventRepo.FindChildrenByParentID(ctx, parentEventID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list series occurrences",
			slog.String("parent_event_id", parentEventID))
		return nil, err
	}

	if children == nil {
		return []domain.EventRequest{}, nil
	}
	return children, nil
}

// CreateEvent persists a new event request in DRAFT. Supplying occurrences
// creates a recurring series: the root plus one child per occurrence, saved
// atomically.
func (s *eventService) CreateEvent(ctx context.Context, organizationID, requesterUserID string, req dto.CreateEventRequest) (*domain.EventRequest, error) {
	if err := s.AuthorizeUser(ctx, requesterUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewValidationFailedError("event must end after it starts")
	}
	for _, occ := range req.Occurrences {
		if !occ.EndsAt.After(occ.StartsAt) {
			return nil, apperrors.NewValidationFailedError("every occurrence must end after it starts")
		}
	}

	now := time.Now()
	isRecurring := len(req.Occurrences) > 0

	parent := domain.EventRequest{
		EventID:        uuid.NewString(),
		OrganizationID: organizationID,
		RequesterID:    requesterUserID,
		Title:          req.Title,
		Description:    req.Description,
		RoomID:         req.RoomID,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		IsRecurring:    isRecurring,
		Status:         domain.EventDraft,
		Version:        1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	if !isRecurring {
		if err := s.eventRepo.SaveEvent(ctx, parent); err != nil {
			s.LogError(ctx, err, "Failed to save event", slog.String("event_id", parent.EventID))
			return nil, err
		}
		s.LogInfo(ctx, "Event created", slog.String("event_id", parent.EventID))
		return &parent, nil
	}

	children := make([]domain.EventRequest, len(req.Occurrences))
	for i, occ := range req.Occurrences {
		child := parent
		child.EventID = uuid.NewString()
		child.StartsAt = occ.StartsAt
		child.EndsAt = occ.EndsAt
		child.ParentEventID = &parent.EventID
		children[i] = child
	}

	if err := s.eventRepo.SaveEventSeries(ctx, parent, children); err != nil {
		s.LogError(ctx, err, "Failed to save event series",
			slog.String("event_id", parent.EventID),
			slog.Int("occurrences", len(children)))
		return nil, err
	}

	s.LogInfo(ctx, "Event series created",
		slog.String("event_id", parent.EventID),
		slog.Int("occurrences", len(children)))
	return &parent, nil
}

// UpdateEvent updates the content of a draft event request
func (s *eventService) UpdateEvent(ctx context.Context, organizationID, eventID, requestingUserID string, req dto.UpdateEventRequest) (*domain.EventRequest, error) {
	event, err := s.GetEventByID(ctx, organizationID, eventID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if event.RequesterID != requestingUserID {
		return nil, apperrors.NewForbiddenError("only the requester can edit a draft")
	}
	if event.Status != domain.EventDraft {
		return nil, apperrors.NewAppError(409, "only draft events can be edited", apperrors.ErrConflict)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.RoomID != nil {
		event.RoomID = *req.RoomID
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, apperrors.NewValidationFailedError("event must end after it starts")
	}

	event.LastUpdatedAt = time.Now()
	event.LastUpdatedBy = requestingUserID

	if err := s.eventRepo.UpdateEventContent(ctx, *event); err != nil {
		s.LogError(ctx, err, "Failed to update event", slog.String("event_id", eventID))
		return nil, err
	}

	return event, nil
}
