package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/gracebase/steward/internal/middleware"
)

// --- Mock EventService ---
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) GetEventByID(ctx context.Context, organizationID, eventID, requestingUserID string) (*domain.EventRequest, error) {
	args := m.Called(ctx, organizationID, eventID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventRequest), args.Error(1)
}

func (m *MockEventService) ListEvents(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, status *domain.EventStatus) ([]domain.EventRequest, *string, error) {
	args := m.Called(ctx, organizationID, requestingUserID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	token, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.EventRequest), token, args.Error(2)
}

func (m *MockEventService) ListSeriesOccurrences(ctx context.Context, organizationID, parentEventID, requestingUserID string) ([]domain.EventRequest, error) {
	args := m.Called(ctx, organizationID, parentEventID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRequest), args.Error(1)
}

func (m *MockEventService) CreateEvent(ctx context.Context, organizationID, requesterUserID string, req dto.CreateEventRequest) (*domain.EventRequest, error) {
	args := m.Called(ctx, organizationID, requesterUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventRequest), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, organizationID, eventID, requestingUserID string, req dto.UpdateEventRequest) (*domain.EventRequest, error) {
	args := m.Called(ctx, organizationID, eventID, requestingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventRequest), args.Error(1)
}

var _ portssvc.EventSvcFacade = (*MockEventService)(nil)

// --- Mock ReviewService ---
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ReviewEvent(ctx context.Context, organizationID, eventID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.EventReviewOutcome, error) {
	args := m.Called(ctx, organizationID, eventID, actingUserID, action, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EventReviewOutcome), args.Error(1)
}

func (m *MockReviewService) LegalEventActions(ctx context.Context, organizationID, eventID, actingUserID string) ([]domain.ReviewAction, error) {
	args := m.Called(ctx, organizationID, eventID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewAction), args.Error(1)
}

func (m *MockReviewService) ReviewExpense(ctx context.Context, organizationID, expenseID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.ExpenseReviewOutcome, error) {
	args := m.Called(ctx, organizationID, expenseID, actingUserID, action, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExpenseReviewOutcome), args.Error(1)
}

func (m *MockReviewService) LegalExpenseActions(ctx context.Context, organizationID, expenseID, actingUserID string) ([]domain.ReviewAction, error) {
	args := m.Called(ctx, organizationID, expenseID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewAction), args.Error(1)
}

func (m *MockReviewService) ReviewAllocation(ctx context.Context, organizationID, allocationID, actingUserID string, action domain.ReviewAction, opts domain.ReviewOptions) (*dto.AllocationReviewOutcome, error) {
	args := m.Called(ctx, organizationID, allocationID, actingUserID, action, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AllocationReviewOutcome), args.Error(1)
}

func (m *MockReviewService) LegalAllocationActions(ctx context.Context, organizationID, allocationID, actingUserID string) ([]domain.ReviewAction, error) {
	args := m.Called(ctx, organizationID, allocationID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewAction), args.Error(1)
}

var _ portssvc.ReviewSvcFacade = (*MockReviewService)(nil)

// --- Test Suite ---
type EventHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockEventService  *MockEventService
	mockReviewService *MockReviewService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *EventHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "steward-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *EventHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEventService = new(MockEventService)
	suite.mockReviewService = new(MockReviewService)

	orgGroup := suite.router.Group("/api/v1/organizations/:organization_id")
	registerEventRoutes(orgGroup, suite.mockEventService, suite.mockReviewService)
}

func (suite *EventHandlerTestSuite) doRequest(method, url, body, userID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EventHandlerTestSuite) TestReviewEventSuccess() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	outcome := &dto.EventReviewOutcome{
		Event: dto.EventResponse{
			EventID: eventID,
			Status:  domain.EventApproved,
			Version: 2,
		},
		AffectedEventIDs: []string{eventID},
		Notification:     domain.NotificationSent,
	}

	suite.mockReviewService.On("ReviewEvent",
		mock.Anything,
		organizationID,
		eventID,
		actingUserID,
		domain.ActionApprove,
		mock.MatchedBy(func(opts domain.ReviewOptions) bool {
			return opts.Scope == domain.ScopeSingle
		}),
	).Return(outcome, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/review", organizationID, eventID)
	w := suite.doRequest(http.MethodPost, url, `{"action":"APPROVE"}`, actingUserID)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.EventReviewOutcome
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.EventApproved, got.Event.Status)
	suite.Equal(domain.NotificationSent, got.Notification)
	suite.mockReviewService.AssertExpectations(suite.T())
}

func (suite *EventHandlerTestSuite) TestReviewEventMissingNotesIsBadRequest() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	suite.mockReviewService.On("ReviewEvent",
		mock.Anything, organizationID, eventID, actingUserID, domain.ActionReject, mock.Anything,
	).Return(nil, apperrors.ErrMissingReason).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/review", organizationID, eventID)
	w := suite.doRequest(http.MethodPost, url, `{"action":"REJECT"}`, actingUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "reviewer notes required")
}

func (suite *EventHandlerTestSuite) TestReviewEventForbiddenRole() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	suite.mockReviewService.On("ReviewEvent",
		mock.Anything, organizationID, eventID, actingUserID, domain.ActionApprove, mock.Anything,
	).Return(nil, apperrors.ErrForbidden).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/review", organizationID, eventID)
	w := suite.doRequest(http.MethodPost, url, `{"action":"APPROVE"}`, actingUserID)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *EventHandlerTestSuite) TestReviewEventIllegalTransitionIsConflict() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	suite.mockReviewService.On("ReviewEvent",
		mock.Anything, organizationID, eventID, actingUserID, domain.ActionApprove, mock.Anything,
	).Return(nil, apperrors.ErrInvalidTransition).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/review", organizationID, eventID)
	w := suite.doRequest(http.MethodPost, url, `{"action":"APPROVE"}`, actingUserID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EventHandlerTestSuite) TestReviewEventWithoutTokenIsUnauthorized() {
	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/review", uuid.NewString(), uuid.NewString())
	w := suite.doRequest(http.MethodPost, url, `{"action":"APPROVE"}`, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReviewService.AssertNotCalled(suite.T(), "ReviewEvent")
}

func (suite *EventHandlerTestSuite) TestReviewEventMissingActionIsBadRequest() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/review", organizationID, eventID)
	w := suite.doRequest(http.MethodPost, url, `{}`, actingUserID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReviewService.AssertNotCalled(suite.T(), "ReviewEvent")
}

func (suite *EventHandlerTestSuite) TestLegalActionsSuccess() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	suite.mockReviewService.On("LegalEventActions",
		mock.Anything, organizationID, eventID, actingUserID,
	).Return([]domain.ReviewAction{domain.ActionApprove, domain.ActionReject}, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s/actions", organizationID, eventID)
	w := suite.doRequest(http.MethodGet, url, "", actingUserID)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.LegalActionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal([]domain.ReviewAction{domain.ActionApprove, domain.ActionReject}, got.Actions)
}

func (suite *EventHandlerTestSuite) TestCreateEventSuccess() {
	organizationID := uuid.NewString()
	requesterID := uuid.NewString()
	eventID := uuid.NewString()

	created := &domain.EventRequest{
		EventID:        eventID,
		OrganizationID: organizationID,
		RequesterID:    requesterID,
		Title:          "Choir rehearsal",
		RoomID:         "main-hall",
		Status:         domain.EventDraft,
		Version:        1,
	}

	suite.mockEventService.On("CreateEvent",
		mock.Anything,
		organizationID,
		requesterID,
		mock.MatchedBy(func(req dto.CreateEventRequest) bool {
			return req.Title == "Choir rehearsal" && req.RoomID == "main-hall"
		}),
	).Return(created, nil).Once()

	body := `{"title":"Choir rehearsal","roomID":"main-hall","startsAt":"2026-09-01T18:00:00Z","endsAt":"2026-09-01T20:00:00Z"}`
	url := fmt.Sprintf("/api/v1/organizations/%s/events", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, requesterID)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.EventResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(eventID, got.EventID)
	suite.Equal(domain.EventDraft, got.Status)
}

func (suite *EventHandlerTestSuite) TestGetEventNotFound() {
	organizationID := uuid.NewString()
	eventID := uuid.NewString()
	actingUserID := uuid.NewString()

	suite.mockEventService.On("GetEventByID",
		mock.Anything, organizationID, eventID, actingUserID,
	).Return(nil, apperrors.NewNotFoundError("event request not found")).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/events/%s", organizationID, eventID)
	w := suite.doRequest(http.MethodGet, url, "", actingUserID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "event request not found")
}

func TestEventHandlerSuite(t *testing.T) {
	suite.Run(t, new(EventHandlerTestSuite))
}
