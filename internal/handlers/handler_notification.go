package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/gracebase/steward/internal/middleware"
)

// notificationHandler exposes the notification outbox to organization admins.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{
		notificationService: ns,
	}
}

// registerNotificationRoutes registers notification routes within an organization group.
func registerNotificationRoutes(orgGroup *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := orgGroup.Group("/notifications")
	{
		notifications.GET("", h.listPending)
		notifications.POST("/retry", h.retryPending)
	}
}

// listPending godoc
// @Summary List undelivered notifications
// @Description Lists pending and failed outbox rows; admin only
// @Tags notifications
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max results" default(50)
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Security BearerAuth
// @Router /organizations/{organization_id}/notifications [get]
func (h *notificationHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	notifications, err := h.notificationService.ListPendingNotifications(c.Request.Context(), organizationID, requestingUserID, limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(notifications))
}

// retryPending godoc
// @Summary Retry undelivered notifications
// @Description Attempts redelivery of the organization's undelivered outbox rows; admin only
// @Tags notifications
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max rows to retry" default(50)
// @Success 200 {object} dto.RetryNotificationsResponse
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Security BearerAuth
// @Router /organizations/{organization_id}/notifications/retry [post]
func (h *notificationHandler) retryPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	delivered, failed, err := h.notificationService.RetryPendingNotifications(c.Request.Context(), organizationID, requestingUserID, limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retry notifications")
		return
	}

	logger.Info("Notification retry sweep finished", slog.Int("delivered", delivered), slog.Int("failed", failed))
	c.JSON(http.StatusOK, dto.RetryNotificationsResponse{Delivered: delivered, Failed: failed})
}
