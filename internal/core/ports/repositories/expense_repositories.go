package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gracebase/steward/internal/core/domain"
)

// ExpenseReader defines read operations for expense request data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense request by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseRequest, error)

	// ListExpensesByOrganization retrieves a paginated list of expense requests
	// for an organization, optionally filtered by status.
	ListExpensesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.ExpenseStatus) ([]domain.ExpenseRequest, *string, error)
}

// ExpenseWriter defines write operations for expense request data
type ExpenseWriter interface {
	// SaveExpense persists a new expense request.
	SaveExpense(ctx context.Context, expense domain.ExpenseRequest) error

	// UpdateExpenseContent updates requester-owned content fields of a draft.
	UpdateExpenseContent(ctx context.Context, expense domain.ExpenseRequest) error
}

// ExpenseTransitioner defines the status-transition write path.
type ExpenseTransitioner interface {
	// FindExpenseForUpdate loads and row-locks the expense within tx.
	FindExpenseForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.ExpenseRequest, error)

	// ApplyExpenseTransition writes the new status and reviewer attribution,
	// guarded by the version the caller read (ErrStaleState on a miss).
	ApplyExpenseTransition(ctx context.Context, tx pgx.Tx, expense domain.ExpenseRequest, expectedVersion int64, updatedAt time.Time) error
}

// ExpenseRepositoryFacade combines all expense-request repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseTransitioner
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
