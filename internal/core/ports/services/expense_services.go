package services

import (
	"context"

	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense requests
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense request.
	GetExpenseByID(ctx context.Context, organizationID, expenseID, requestingUserID string) (*domain.ExpenseRequest, error)

	// ListExpenses retrieves a paginated list of expense requests in an organization,
	// optionally filtered by status.
	ListExpenses(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, status *domain.ExpenseStatus) ([]domain.ExpenseRequest, *string, error)
}

// ExpenseWriterSvc defines write operations for expense requests
type ExpenseWriterSvc interface {
	// CreateExpense persists a new expense request in DRAFT.
	CreateExpense(ctx context.Context, organizationID, requesterUserID string, req dto.CreateExpenseRequest) (*domain.ExpenseRequest, error)

	// UpdateExpense updates the content of a draft expense request.
	UpdateExpense(ctx context.Context, organizationID, expenseID, requestingUserID string, req dto.UpdateExpenseRequest) (*domain.ExpenseRequest, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
