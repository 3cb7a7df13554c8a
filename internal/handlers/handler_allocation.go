package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/gracebase/steward/internal/middleware"
)

// allocationHandler handles HTTP requests related to budget allocation requests.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
	reviewService     portssvc.ReviewSvcFacade
}

func newAllocationHandler(as portssvc.AllocationSvcFacade, rs portssvc.ReviewSvcFacade) *allocationHandler {
	return &allocationHandler{
		allocationService: as,
		reviewService:     rs,
	}
}

// registerAllocationRoutes registers allocation routes within an organization group.
func registerAllocationRoutes(orgGroup *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade, reviewService portssvc.ReviewSvcFacade) {
	h := newAllocationHandler(allocationService, reviewService)

	allocations := orgGroup.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.GET("/:allocation_id", h.getAllocation)
		allocations.PUT("/:allocation_id", h.updateAllocation)
		allocations.POST("/:allocation_id/review", h.reviewAllocation)
		allocations.GET("/:allocation_id/actions", h.legalActions)
	}
}

// createAllocation godoc
// @Summary Create a budget allocation request
// @Description Creates a draft allocation request for a ministry and fiscal year
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or breakdown"
// @Failure 403 {object} ErrorResponse "Caller cannot create requests"
// @Security BearerAuth
// @Router /organizations/{organization_id}/allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create allocation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), organizationID, requesterUserID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create allocation request")
		return
	}

	logger.Info("Allocation request created", slog.String("allocation_id", allocation.AllocationID))
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocations godoc
// @Summary List budget allocation requests
// @Tags allocations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max results" default(20)
// @Param   nextToken query string false "Pagination token"
// @Param   fiscalYearID query string false "Filter by fiscal year"
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 403 {object} ErrorResponse "Caller is not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/allocations [get]
func (h *allocationHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAllocationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list allocations query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	allocations, nextToken, err := h.allocationService.ListAllocations(c.Request.Context(), organizationID, requestingUserID, params.Limit, params.NextToken, params.FiscalYearID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list allocation requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAllocationsResponse(allocations, nextToken))
}

// getAllocation godoc
// @Summary Get a budget allocation request
// @Tags allocations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   allocation_id path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 404 {object} ErrorResponse "Allocation not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/allocations/{allocation_id} [get]
func (h *allocationHandler) getAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	allocationID := c.Param("allocation_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	allocation, err := h.allocationService.GetAllocationByID(c.Request.Context(), organizationID, allocationID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve allocation request")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// updateAllocation godoc
// @Summary Update a draft allocation request
// @Description Edits allocation content; only the requester may edit, and only in DRAFT
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   allocation_id path string true "Allocation ID"
// @Param   allocation body dto.UpdateAllocationRequest true "Fields to update"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse "Breakdown does not match the period type"
// @Failure 403 {object} ErrorResponse "Caller is not the requester"
// @Failure 409 {object} ErrorResponse "Allocation is no longer a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/allocations/{allocation_id} [put]
func (h *allocationHandler) updateAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	allocationID := c.Param("allocation_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update allocation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), organizationID, allocationID, requestingUserID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update allocation request")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// reviewAllocation godoc
// @Summary Apply a review action to an allocation request
// @Description Approvals may carry an approvedAmount; granting less than the
// @Description requested amount records a partial approval
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   allocation_id path string true "Allocation ID"
// @Param   review body dto.ReviewRequest true "Action, optional notes and approved amount"
// @Success 200 {object} dto.AllocationReviewOutcome
// @Failure 400 {object} ErrorResponse "Missing notes or amount out of range"
// @Failure 403 {object} ErrorResponse "Caller's role cannot take this action"
// @Failure 409 {object} ErrorResponse "Action not legal for the current status"
// @Security BearerAuth
// @Router /organizations/{organization_id}/allocations/{allocation_id}/review [post]
func (h *allocationHandler) reviewAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	allocationID := c.Param("allocation_id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for review allocation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	outcome, err := h.reviewService.ReviewAllocation(c.Request.Context(), organizationID, allocationID, actingUserID, req.Action, req.ToReviewOptions())
	if err != nil {
		respondWithError(c, logger, err, "Failed to review allocation request")
		return
	}

	logger.Info("Allocation reviewed",
		slog.String("allocation_id", allocationID),
		slog.String("action", string(req.Action)),
		slog.String("status", string(outcome.Allocation.Status)))
	c.JSON(http.StatusOK, outcome)
}

// legalActions godoc
// @Summary List the review actions the caller may take on an allocation
// @Tags allocations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   allocation_id path string true "Allocation ID"
// @Success 200 {object} dto.LegalActionsResponse
// @Failure 404 {object} ErrorResponse "Allocation not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/allocations/{allocation_id}/actions [get]
func (h *allocationHandler) legalActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	allocationID := c.Param("allocation_id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	actions, err := h.reviewService.LegalAllocationActions(c.Request.Context(), organizationID, allocationID, actingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list legal actions")
		return
	}

	c.JSON(http.StatusOK, dto.LegalActionsResponse{Actions: actions})
}
