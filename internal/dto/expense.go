package dto

import (
	"time"

	"github.com/gracebase/steward/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines data for creating a new expense request.
type CreateExpenseRequest struct {
	MinistryID    string          `json:"ministryID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Justification string          `json:"justification" binding:"required"`
}

// UpdateExpenseRequest defines the content changes allowed on a draft expense.
type UpdateExpenseRequest struct {
	MinistryID    *string          `json:"ministryID"`
	Amount        *decimal.Decimal `json:"amount"`
	Justification *string          `json:"justification"`
}

// ListExpensesParams defines query parameters for listing expense requests.
type ListExpensesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
}

// ExpenseResponse defines data returned for an expense request.
type ExpenseResponse struct {
	ExpenseID      string               `json:"expenseID"`
	OrganizationID string               `json:"organizationID"`
	RequesterID    string               `json:"requesterID"`
	RequesterName  string               `json:"requesterName,omitempty"`
	MinistryID     string               `json:"ministryID"`
	Amount         decimal.Decimal      `json:"amount"`
	Justification  string               `json:"justification"`
	Status         domain.ExpenseStatus `json:"status"`
	ReviewerID     *string              `json:"reviewerID,omitempty"`
	ReviewerNotes  *string              `json:"reviewerNotes,omitempty"`
	Version        int64                `json:"version"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts domain.ExpenseRequest to DTO.
func ToExpenseResponse(e *domain.ExpenseRequest) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:      e.ExpenseID,
		OrganizationID: e.OrganizationID,
		RequesterID:    e.RequesterID,
		RequesterName:  e.RequesterName,
		MinistryID:     e.MinistryID,
		Amount:         e.Amount,
		Justification:  e.Justification,
		Status:         e.Status,
		ReviewerID:     e.ReviewerID,
		ReviewerNotes:  e.ReviewerNotes,
		Version:        e.Version,
		CreatedAt:      e.CreatedAt,
		LastUpdatedAt:  e.LastUpdatedAt,
	}
}

// ListExpensesResponse wraps a page of expense requests.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListExpensesResponse converts a page of domain.ExpenseRequest to DTO.
func ToListExpensesResponse(expenses []domain.ExpenseRequest, nextToken *string) ListExpensesResponse {
	list := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		list[i] = ToExpenseResponse(&e)
	}
	return ListExpensesResponse{Expenses: list, NextToken: nextToken}
}
