package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/core/services"
	"github.com/gracebase/steward/internal/dto"
)

type EventServiceTestSuite struct {
	suite.Suite
	mockEventRepo  *MockEventRepository
	mockAuthorizer *MockOrganizationAuthorizer
	service        portssvc.EventSvcFacade

	orgID       string
	requesterID string
	startsAt    time.Time
	endsAt      time.Time
}

func (s *EventServiceTestSuite) SetupTest() {
	s.mockEventRepo = new(MockEventRepository)
	s.mockAuthorizer = new(MockOrganizationAuthorizer)
	s.service = services.NewEventService(s.mockEventRepo, s.mockAuthorizer)

	s.orgID = uuid.NewString()
	s.requesterID = uuid.NewString()
	s.startsAt = time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	s.endsAt = s.startsAt.Add(2 * time.Hour)

	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.requesterID, s.orgID, domain.RoleMember).Return(nil).Maybe()
	s.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, s.requesterID, s.orgID, domain.RoleReadOnly).Return(nil).Maybe()
}

func (s *EventServiceTestSuite) TestCreateSingleEvent() {
	ctx := context.Background()

	s.mockEventRepo.On("SaveEvent", ctx, mock.MatchedBy(func(e domain.EventRequest) bool {
		return e.Status == domain.EventDraft && e.Version == 1 && !e.IsRecurring && e.ParentEventID == nil
	})).Return(nil).Once()

	created, err := s.service.CreateEvent(ctx, s.orgID, s.requesterID, dto.CreateEventRequest{
		Title:    "Choir Practice",
		RoomID:   "room-2",
		StartsAt: s.startsAt,
		EndsAt:   s.endsAt,
	})

	s.Require().NoError(err)
	s.Equal(domain.EventDraft, created.Status)
	s.False(created.IsRecurring)
	s.mockEventRepo.AssertNotCalled(s.T(), "SaveEventSeries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *EventServiceTestSuite) TestCreateRecurringSeriesPersistsRootAndChildren() {
	ctx := context.Background()

	s.mockEventRepo.On("SaveEventSeries", ctx,
		mock.MatchedBy(func(parent domain.EventRequest) bool {
			return parent.IsRecurring && parent.ParentEventID == nil
		}),
		mock.MatchedBy(func(children []domain.EventRequest) bool {
			if len(children) != 2 {
				return false
			}
			for _, c := range children {
				if !c.IsRecurring || c.ParentEventID == nil || c.Status != domain.EventDraft {
					return false
				}
			}
			return true
		}),
	).Return(nil).Once()

	created, err := s.service.CreateEvent(ctx, s.orgID, s.requesterID, dto.CreateEventRequest{
		Title:    "Choir Practice",
		RoomID:   "room-2",
		StartsAt: s.startsAt,
		EndsAt:   s.endsAt,
		Occurrences: []dto.EventOccurrenceInput{
			{StartsAt: s.startsAt.AddDate(0, 0, 7), EndsAt: s.endsAt.AddDate(0, 0, 7)},
			{StartsAt: s.startsAt.AddDate(0, 0, 14), EndsAt: s.endsAt.AddDate(0, 0, 14)},
		},
	})

	s.Require().NoError(err)
	s.True(created.IsRecurring)
	s.Nil(created.ParentEventID)
	s.mockEventRepo.AssertExpectations(s.T())
}

func (s *EventServiceTestSuite) TestCreateEventRejectsInvertedTimes() {
	ctx := context.Background()

	_, err := s.service.CreateEvent(ctx, s.orgID, s.requesterID, dto.CreateEventRequest{
		Title:    "Choir Practice",
		RoomID:   "room-2",
		StartsAt: s.endsAt,
		EndsAt:   s.startsAt,
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockEventRepo.AssertNotCalled(s.T(), "SaveEvent", mock.Anything, mock.Anything)
}

func (s *EventServiceTestSuite) TestGetEventHidesForeignOrganizations() {
	ctx := context.Background()
	event := &domain.EventRequest{
		EventID:        uuid.NewString(),
		OrganizationID: uuid.NewString(),
		Status:         domain.EventDraft,
	}

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()

	_, err := s.service.GetEventByID(ctx, s.orgID, event.EventID, s.requesterID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EventServiceTestSuite) TestListSeriesOccurrencesRejectsNonRoot() {
	ctx := context.Background()
	parentID := uuid.NewString()
	child := &domain.EventRequest{
		EventID:        uuid.NewString(),
		OrganizationID: s.orgID,
		IsRecurring:    true,
		ParentEventID:  &parentID,
		Status:         domain.EventDraft,
	}

	s.mockEventRepo.On("FindEventByID", ctx, child.EventID).Return(child, nil).Once()

	_, err := s.service.ListSeriesOccurrences(ctx, s.orgID, child.EventID, s.requesterID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *EventServiceTestSuite) TestUpdateEventOnlyInDraft() {
	ctx := context.Background()
	event := &domain.EventRequest{
		EventID:        uuid.NewString(),
		OrganizationID: s.orgID,
		RequesterID:    s.requesterID,
		StartsAt:       s.startsAt,
		EndsAt:         s.endsAt,
		Status:         domain.EventPendingReview,
	}

	s.mockEventRepo.On("FindEventByID", ctx, event.EventID).Return(event, nil).Once()

	title := "New title"
	_, err := s.service.UpdateEvent(ctx, s.orgID, event.EventID, s.requesterID, dto.UpdateEventRequest{Title: &title})

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockEventRepo.AssertNotCalled(s.T(), "UpdateEventContent", mock.Anything, mock.Anything)
}

func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}
