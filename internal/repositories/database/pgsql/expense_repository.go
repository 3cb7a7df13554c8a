package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	"github.com/gracebase/steward/internal/models"
	"github.com/gracebase/steward/internal/utils/mapping"
	"github.com/gracebase/steward/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense request data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryWithTx
var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

const expenseSelectColumns = `
	e.expense_id, e.organization_id, e.requester_id, u.name AS requester_name,
	e.ministry_id, e.amount, e.justification, e.status, e.reviewer_id, e.reviewer_notes,
	e.version, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
`

func scanExpenseRow(row pgx.Row) (*models.ExpenseRequest, error) {
	var m models.ExpenseRequest
	err := row.Scan(
		&m.ExpenseID,
		&m.OrganizationID,
		&m.RequesterID,
		&m.RequesterName,
		&m.MinistryID,
		&m.Amount,
		&m.Justification,
		&m.Status,
		&m.ReviewerID,
		&m.ReviewerNotes,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRequest) error {
	modelExpense := mapping.ToModelExpenseRequest(expense)
	query := `
		INSERT INTO expense_requests (
			expense_id, organization_id, requester_id, ministry_id, amount, justification,
			status, version, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.OrganizationID,
		modelExpense.RequesterID,
		modelExpense.MinistryID,
		modelExpense.Amount,
		modelExpense.Justification,
		modelExpense.Status,
		modelExpense.Version,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("expense ID " + expense.ExpenseID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("ministry does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save expense "+expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpenseContent(ctx context.Context, expense domain.ExpenseRequest) error {
	query := `
		UPDATE expense_requests
		SET ministry_id = $1, amount = $2, justification = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $6 AND status = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		expense.MinistryID,
		expense.Amount,
		expense.Justification,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
		expense.ExpenseID,
		domain.ExpenseDraft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "expense "+expense.ExpenseID+" is not editable", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseRequest, error) {
	query := `
		SELECT ` + expenseSelectColumns + `
		FROM expense_requests e
		JOIN users u ON e.requester_id = u.user_id
		WHERE e.expense_id = $1;
	`
	m, err := scanExpenseRow(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	expense := mapping.ToDomainExpenseRequest(*m)
	return &expense, nil
}

func (r *PgxExpenseRepository) ListExpensesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.ExpenseStatus) ([]domain.ExpenseRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + expenseSelectColumns + `
		FROM expense_requests e
		JOIN users u ON e.requester_id = u.user_id
		WHERE e.organization_id = $1
	`
	args := []any{organizationID}

	if status != nil {
		args = append(args, *status)
		baseQuery += ` AND e.status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` AND e.created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY e.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses for organization "+organizationID, err)
	}
	defer rows.Close()

	expenses := []models.ExpenseRequest{}
	for rows.Next() {
		m, err := scanExpenseRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	var nextTokenVal *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		token := pagination.EncodeDateBasedToken(expenses[limit-1].CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainExpenseRequestSlice(expenses), nextTokenVal, nil
}

// FindExpenseForUpdate loads and row-locks the expense within tx.
func (r *PgxExpenseRepository) FindExpenseForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.ExpenseRequest, error) {
	query := `
		SELECT ` + expenseSelectColumns + `
		FROM expense_requests e
		JOIN users u ON e.requester_id = u.user_id
		WHERE e.expense_id = $1
		FOR UPDATE OF e;
	`
	m, err := scanExpenseRow(tx.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock expense "+expenseID, err)
	}
	expense := mapping.ToDomainExpenseRequest(*m)
	return &expense, nil
}

// ApplyExpenseTransition writes the new status and reviewer attribution,
// guarded by the version the caller read.
func (r *PgxExpenseRepository) ApplyExpenseTransition(ctx context.Context, tx pgx.Tx, expense domain.ExpenseRequest, expectedVersion int64, updatedAt time.Time) error {
	query := `
		UPDATE expense_requests
		SET status = $1, reviewer_id = $2, reviewer_notes = $3,
		    version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $6 AND version = $7;
	`
	result, err := tx.Exec(ctx, query,
		expense.Status,
		expense.ReviewerID,
		expense.ReviewerNotes,
		updatedAt,
		expense.LastUpdatedBy,
		expense.ExpenseID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition expense "+expense.ExpenseID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStaleState
	}
	return nil
}
