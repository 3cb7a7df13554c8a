package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/gracebase/steward/internal/middleware"
)

// eventHandler handles HTTP requests related to event requests.
type eventHandler struct {
	eventService  portssvc.EventSvcFacade
	reviewService portssvc.ReviewSvcFacade
}

func newEventHandler(es portssvc.EventSvcFacade, rs portssvc.ReviewSvcFacade) *eventHandler {
	return &eventHandler{
		eventService:  es,
		reviewService: rs,
	}
}

// registerEventRoutes registers event routes within an organization group.
func registerEventRoutes(orgGroup *gin.RouterGroup, eventService portssvc.EventSvcFacade, reviewService portssvc.ReviewSvcFacade) {
	h := newEventHandler(eventService, reviewService)

	events := orgGroup.Group("/events")
	{
		events.POST("", h.createEvent)
		events.GET("", h.listEvents)
		events.GET("/:event_id", h.getEvent)
		events.PUT("/:event_id", h.updateEvent)
		events.GET("/:event_id/occurrences", h.listOccurrences)
		events.POST("/:event_id/review", h.reviewEvent)
		events.GET("/:event_id/actions", h.legalActions)
	}
}

// createEvent godoc
// @Summary Create an event request
// @Description Creates a draft event request; occurrences make it a recurring series
// @Tags events
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Caller cannot create requests"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events [post]
func (h *eventHandler) createEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create event request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), organizationID, requesterUserID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create event request")
		return
	}

	logger.Info("Event request created", slog.String("event_id", event.EventID), slog.Bool("recurring", event.IsRecurring))
	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// listEvents godoc
// @Summary List event requests
// @Tags events
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max results" default(20)
// @Param   nextToken query string false "Pagination token"
// @Param   status query string false "Filter by status"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 403 {object} ErrorResponse "Caller is not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events [get]
func (h *eventHandler) listEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list events query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	var status *domain.EventStatus
	if params.Status != nil {
		s := domain.EventStatus(*params.Status)
		status = &s
	}

	events, nextToken, err := h.eventService.ListEvents(c.Request.Context(), organizationID, requestingUserID, params.Limit, params.NextToken, status)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list event requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEventsResponse(events, nextToken))
}

// getEvent godoc
// @Summary Get an event request
// @Tags events
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event_id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events/{event_id} [get]
func (h *eventHandler) getEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	eventID := c.Param("event_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	event, err := h.eventService.GetEventByID(c.Request.Context(), organizationID, eventID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve event request")
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// updateEvent godoc
// @Summary Update a draft event request
// @Description Edits event content; only the requester may edit, and only in DRAFT
// @Tags events
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event_id path string true "Event ID"
// @Param   event body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} ErrorResponse "Caller is not the requester"
// @Failure 409 {object} ErrorResponse "Event is no longer a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events/{event_id} [put]
func (h *eventHandler) updateEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	eventID := c.Param("event_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update event request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), organizationID, eventID, requestingUserID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update event request")
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// listOccurrences godoc
// @Summary List the occurrences of a recurring series
// @Tags events
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event_id path string true "Series root event ID"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} ErrorResponse "Event is not a series root"
// @Failure 404 {object} ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events/{event_id}/occurrences [get]
func (h *eventHandler) listOccurrences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	eventID := c.Param("event_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	occurrences, err := h.eventService.ListSeriesOccurrences(c.Request.Context(), organizationID, eventID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list series occurrences")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEventsResponse(occurrences, nil))
}

// reviewEvent godoc
// @Summary Apply a review action to an event request
// @Description Transitions the event through its review lifecycle. Rejecting a
// @Description recurring series root with scope ALL rejects every occurrence atomically.
// @Tags events
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event_id path string true "Event ID"
// @Param   review body dto.ReviewRequest true "Action, optional notes and scope"
// @Success 200 {object} dto.EventReviewOutcome
// @Failure 400 {object} ErrorResponse "Missing notes or invalid scope"
// @Failure 403 {object} ErrorResponse "Caller's role cannot take this action"
// @Failure 409 {object} ErrorResponse "Action not legal for the current status"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events/{event_id}/review [post]
func (h *eventHandler) reviewEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	eventID := c.Param("event_id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for review event request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	outcome, err := h.reviewService.ReviewEvent(c.Request.Context(), organizationID, eventID, actingUserID, req.Action, req.ToReviewOptions())
	if err != nil {
		respondWithError(c, logger, err, "Failed to review event request")
		return
	}

	logger.Info("Event reviewed",
		slog.String("event_id", eventID),
		slog.String("action", string(req.Action)),
		slog.String("status", string(outcome.Event.Status)),
		slog.Int("affected", len(outcome.AffectedEventIDs)))
	c.JSON(http.StatusOK, outcome)
}

// legalActions godoc
// @Summary List the review actions the caller may take on an event
// @Tags events
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event_id path string true "Event ID"
// @Success 200 {object} dto.LegalActionsResponse
// @Failure 404 {object} ErrorResponse "Event not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/events/{event_id}/actions [get]
func (h *eventHandler) legalActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	eventID := c.Param("event_id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	actions, err := h.reviewService.LegalEventActions(c.Request.Context(), organizationID, eventID, actingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list legal actions")
		return
	}

	c.JSON(http.StatusOK, dto.LegalActionsResponse{Actions: actions})
}
