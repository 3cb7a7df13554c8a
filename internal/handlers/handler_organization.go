package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/gracebase/steward/internal/middleware"
)

// organizationHandler handles HTTP requests related to organizations,
// memberships and ministries.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers organization, membership and ministry routes.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(organizationService)

	organizations := rg.Group("/organizations")
	{
		organizations.POST("", h.createOrganization)
		organizations.GET("", h.listMyOrganizations)
		organizations.GET("/:organization_id", h.getOrganization)

		members := organizations.Group("/:organization_id/users")
		{
			members.POST("", h.addUser)
			members.GET("", h.listUsers)
			members.PUT("/:user_id/role", h.updateUserRole)
			members.DELETE("/:user_id", h.removeUser)
		}

		ministries := organizations.Group("/:organization_id/ministries")
		{
			ministries.POST("", h.createMinistry)
			ministries.GET("", h.listMinistries)
		}
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates a new organization; the creator becomes its admin
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create organization request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req.Name, req.Description, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listMyOrganizations godoc
// @Summary List the caller's organizations
// @Tags organizations
// @Produce  json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listMyOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgs, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	org, err := h.organizationService.FindOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addUser godoc
// @Summary Add a user to an organization
// @Description Adds a member with a role; admin only
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   membership body dto.AddUserToOrganizationRequest true "User and role"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 404 {object} ErrorResponse "Target user not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [post]
func (h *organizationHandler) addUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddUserToOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for add user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	if err := h.organizationService.AddUserToOrganization(c.Request.Context(), addingUserID, req.UserID, organizationID, req.Role); err != nil {
		respondWithError(c, logger, err, "Failed to add user to organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// listUsers godoc
// @Summary List organization members
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListOrganizationUsersResponse
// @Failure 403 {object} ErrorResponse "Caller is not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [get]
func (h *organizationHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.organizationService.ListOrganizationUsers(c.Request.Context(), organizationID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list organization members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationUsersResponse(members))
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates a member's role in the organization; admin only
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   user_id path string true "User ID"
// @Param   role body dto.UpdateUserOrganizationRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid role"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id}/role [put]
func (h *organizationHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateUserOrganizationRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update role request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	if err := h.organizationService.UpdateUserOrganizationRole(c.Request.Context(), requestingUserID, targetUserID, organizationID, req.Role); err != nil {
		respondWithError(c, logger, err, "Failed to update member role")
		return
	}

	c.Status(http.StatusNoContent)
}

// removeUser godoc
// @Summary Remove a member from an organization
// @Description Revokes a user's membership; admin only
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Admins cannot remove themselves"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users/{user_id} [delete]
func (h *organizationHandler) removeUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.organizationService.RemoveUserFromOrganization(c.Request.Context(), requestingUserID, targetUserID, organizationID); err != nil {
		respondWithError(c, logger, err, "Failed to remove user from organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// createMinistry godoc
// @Summary Create a ministry
// @Description Creates a ministry within the organization; admin only
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   ministry body dto.CreateMinistryRequest true "Ministry details"
// @Success 201 {object} dto.MinistryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Security BearerAuth
// @Router /organizations/{organization_id}/ministries [post]
func (h *organizationHandler) createMinistry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateMinistryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create ministry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	ministry, err := h.organizationService.CreateMinistry(c.Request.Context(), organizationID, req.Name, req.LeaderUserID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create ministry")
		return
	}

	logger.Info("Ministry created", slog.String("ministry_id", ministry.MinistryID))
	c.JSON(http.StatusCreated, dto.ToMinistryResponse(ministry))
}

// listMinistries godoc
// @Summary List ministries
// @Tags organizations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListMinistriesResponse
// @Failure 403 {object} ErrorResponse "Caller is not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/ministries [get]
func (h *organizationHandler) listMinistries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ministries, err := h.organizationService.ListMinistries(c.Request.Context(), organizationID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list ministries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMinistriesResponse(ministries))
}
