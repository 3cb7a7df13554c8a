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

// expenseHandler handles HTTP requests related to expense requests.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	reviewService  portssvc.ReviewSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade, rs portssvc.ReviewSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
		reviewService:  rs,
	}
}

// registerExpenseRoutes registers expense routes within an organization group.
func registerExpenseRoutes(orgGroup *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, reviewService portssvc.ReviewSvcFacade) {
	h := newExpenseHandler(expenseService, reviewService)

	expenses := orgGroup.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expense_id", h.getExpense)
		expenses.PUT("/:expense_id", h.updateExpense)
		expenses.POST("/:expense_id/review", h.reviewExpense)
		expenses.GET("/:expense_id/actions", h.legalActions)
	}
}

// createExpense godoc
// @Summary Create an expense request
// @Description Creates a draft expense request against a ministry
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or ministry"
// @Failure 403 {object} ErrorResponse "Caller cannot create requests"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requesterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), organizationID, requesterUserID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create expense request")
		return
	}

	logger.Info("Expense request created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expense requests
// @Tags expenses
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Max results" default(20)
// @Param   nextToken query string false "Pagination token"
// @Param   status query string false "Filter by status"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 403 {object} ErrorResponse "Caller is not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list expenses query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	var status *domain.ExpenseStatus
	if params.Status != nil {
		s := domain.ExpenseStatus(*params.Status)
		status = &s
	}

	expenses, nextToken, err := h.expenseService.ListExpenses(c.Request.Context(), organizationID, requestingUserID, params.Limit, params.NextToken, status)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list expense requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses, nextToken))
}

// getExpense godoc
// @Summary Get an expense request
// @Tags expenses
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), organizationID, expenseID, requestingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve expense request")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update a draft expense request
// @Description Edits expense content; only the requester may edit, and only in DRAFT
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} ErrorResponse "Caller is not the requester"
// @Failure 409 {object} ErrorResponse "Expense is no longer a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), organizationID, expenseID, requestingUserID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update expense request")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// reviewExpense godoc
// @Summary Apply a review action to an expense request
// @Description Advances or denies the expense along its approval chain
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Param   review body dto.ReviewRequest true "Action and optional notes"
// @Success 200 {object} dto.ExpenseReviewOutcome
// @Failure 400 {object} ErrorResponse "Missing notes"
// @Failure 403 {object} ErrorResponse "Caller's role cannot take this action"
// @Failure 409 {object} ErrorResponse "Action not legal for the current status"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id}/review [post]
func (h *expenseHandler) reviewExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for review expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	outcome, err := h.reviewService.ReviewExpense(c.Request.Context(), organizationID, expenseID, actingUserID, req.Action, req.ToReviewOptions())
	if err != nil {
		respondWithError(c, logger, err, "Failed to review expense request")
		return
	}

	logger.Info("Expense reviewed",
		slog.String("expense_id", expenseID),
		slog.String("action", string(req.Action)),
		slog.String("status", string(outcome.Expense.Status)))
	c.JSON(http.StatusOK, outcome)
}

// legalActions godoc
// @Summary List the review actions the caller may take on an expense
// @Tags expenses
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   expense_id path string true "Expense ID"
// @Success 200 {object} dto.LegalActionsResponse
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/expenses/{expense_id}/actions [get]
func (h *expenseHandler) legalActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	expenseID := c.Param("expense_id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	actions, err := h.reviewService.LegalExpenseActions(c.Request.Context(), organizationID, expenseID, actingUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list legal actions")
		return
	}

	c.JSON(http.StatusOK, dto.LegalActionsResponse{Actions: actions})
}
