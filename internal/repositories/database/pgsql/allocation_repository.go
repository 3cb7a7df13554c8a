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

type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for allocation request data.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepositoryWithTx {
	return &PgxAllocationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAllocationRepository implements portsrepo.AllocationRepositoryWithTx
var _ portsrepo.AllocationRepositoryWithTx = (*PgxAllocationRepository)(nil)

const allocationSelectColumns = `
	a.allocation_id, a.organization_id, a.requester_id, u.name AS requester_name,
	a.fiscal_year_id, a.ministry_id, a.period_type, a.requested_amount, a.approved_amount,
	a.status, a.reviewer_id, a.reviewer_notes,
	a.version, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
`

const allocationPeriodInsertQuery = `
	INSERT INTO allocation_periods (allocation_id, period_label, amount, sort_order)
	VALUES ($1, $2, $3, $4);
`

func scanAllocationRow(row pgx.Row) (*models.AllocationRequest, error) {
	var m models.AllocationRequest
	err := row.Scan(
		&m.AllocationID,
		&m.OrganizationID,
		&m.RequesterID,
		&m.RequesterName,
		&m.FiscalYearID,
		&m.MinistryID,
		&m.PeriodType,
		&m.RequestedAmount,
		&m.ApprovedAmount,
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

func (r *PgxAllocationRepository) findPeriods(ctx context.Context, allocationID string) ([]models.AllocationPeriod, error) {
	query := `
		SELECT allocation_id, period_label, amount, sort_order
		FROM allocation_periods
		WHERE allocation_id = $1
		ORDER BY sort_order;
	`
	rows, err := r.Pool.Query(ctx, query, allocationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for allocation "+allocationID, err)
	}
	defer rows.Close()

	periods := []models.AllocationPeriod{}
	for rows.Next() {
		var p models.AllocationPeriod
		if err := rows.Scan(&p.AllocationID, &p.PeriodLabel, &p.Amount, &p.SortOrder); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation period row", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation period rows", err)
	}
	return periods, nil
}

// SaveAllocation inserts the request row and its breakdown rows in one transaction.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.AllocationRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelAllocation := mapping.ToModelAllocationRequest(allocation)
	query := `
		INSERT INTO allocation_requests (
			allocation_id, organization_id, requester_id, fiscal_year_id, ministry_id,
			period_type, requested_amount, approved_amount, status,
			version, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		modelAllocation.AllocationID,
		modelAllocation.OrganizationID,
		modelAllocation.RequesterID,
		modelAllocation.FiscalYearID,
		modelAllocation.MinistryID,
		modelAllocation.PeriodType,
		modelAllocation.RequestedAmount,
		modelAllocation.ApprovedAmount,
		modelAllocation.Status,
		modelAllocation.Version,
		modelAllocation.CreatedAt,
		modelAllocation.CreatedBy,
		modelAllocation.LastUpdatedAt,
		modelAllocation.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("allocation ID " + allocation.AllocationID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("ministry or fiscal year does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save allocation "+allocation.AllocationID, err)
	}

	batch := &pgx.Batch{}
	for _, p := range mapping.ToModelAllocationPeriods(allocation.AllocationID, allocation.Breakdown) {
		batch.Queue(allocationPeriodInsertQuery, p.AllocationID, p.PeriodLabel, p.Amount, p.SortOrder)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert periods for allocation "+allocation.AllocationID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateAllocationContent replaces the draft's content fields and breakdown rows.
func (r *PgxAllocationRepository) UpdateAllocationContent(ctx context.Context, allocation domain.AllocationRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE allocation_requests
		SET period_type = $1, requested_amount = $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE allocation_id = $5 AND status = $6;
	`
	result, err := tx.Exec(ctx, query,
		allocation.PeriodType,
		allocation.RequestedAmount,
		allocation.LastUpdatedAt,
		allocation.LastUpdatedBy,
		allocation.AllocationID,
		domain.AllocationDraft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update allocation "+allocation.AllocationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "allocation "+allocation.AllocationID+" is not editable", apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM allocation_periods WHERE allocation_id = $1;`, allocation.AllocationID); err != nil {
		return apperrors.NewAppError(500, "failed to clear periods for allocation "+allocation.AllocationID, err)
	}

	batch := &pgx.Batch{}
	for _, p := range mapping.ToModelAllocationPeriods(allocation.AllocationID, allocation.Breakdown) {
		batch.Queue(allocationPeriodInsertQuery, p.AllocationID, p.PeriodLabel, p.Amount, p.SortOrder)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert periods for allocation "+allocation.AllocationID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.AllocationRequest, error) {
	query := `
		SELECT ` + allocationSelectColumns + `
		FROM allocation_requests a
		JOIN users u ON a.requester_id = u.user_id
		WHERE a.allocation_id = $1;
	`
	m, err := scanAllocationRow(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find allocation "+allocationID, err)
	}

	periods, err := r.findPeriods(ctx, allocationID)
	if err != nil {
		return nil, err
	}

	allocation := mapping.ToDomainAllocationRequest(*m, periods)
	return &allocation, nil
}

func (r *PgxAllocationRepository) ListAllocationsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, fiscalYearID *string) ([]domain.AllocationRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + allocationSelectColumns + `
		FROM allocation_requests a
		JOIN users u ON a.requester_id = u.user_id
		WHERE a.organization_id = $1
	`
	args := []any{organizationID}

	if fiscalYearID != nil && *fiscalYearID != "" {
		args = append(args, *fiscalYearID)
		baseQuery += ` AND a.fiscal_year_id = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` AND a.created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY a.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query allocations for organization "+organizationID, err)
	}
	defer rows.Close()

	allocations := []models.AllocationRequest{}
	for rows.Next() {
		m, err := scanAllocationRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		allocations = append(allocations, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating allocation rows", err)
	}

	var nextTokenVal *string
	if len(allocations) > limit {
		allocations = allocations[:limit]
		token := pagination.EncodeDateBasedToken(allocations[limit-1].CreatedAt)
		nextTokenVal = &token
	}

	// List views omit breakdowns; FindAllocationByID loads them.
	results := make([]domain.AllocationRequest, len(allocations))
	for i, m := range allocations {
		results[i] = mapping.ToDomainAllocationRequest(m, nil)
	}
	return results, nextTokenVal, nil
}

// FindAllocationForUpdate loads and row-locks the allocation within tx.
// The breakdown is read without locking; only the request row transitions.
func (r *PgxAllocationRepository) FindAllocationForUpdate(ctx context.Context, tx pgx.Tx, allocationID string) (*domain.AllocationRequest, error) {
	query := `
		SELECT ` + allocationSelectColumns + `
		FROM allocation_requests a
		JOIN users u ON a.requester_id = u.user_id
		WHERE a.allocation_id = $1
		FOR UPDATE OF a;
	`
	m, err := scanAllocationRow(tx.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("allocation " + allocationID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock allocation "+allocationID, err)
	}

	allocation := mapping.ToDomainAllocationRequest(*m, nil)
	return &allocation, nil
}

// ApplyAllocationTransition writes the new status, approved amount and
// reviewer attribution, guarded by the version the caller read.
func (r *PgxAllocationRepository) ApplyAllocationTransition(ctx context.Context, tx pgx.Tx, allocation domain.AllocationRequest, expectedVersion int64, updatedAt time.Time) error {
	query := `
		UPDATE allocation_requests
		SET status = $1, approved_amount = $2, reviewer_id = $3, reviewer_notes = $4,
		    version = version + 1, last_updated_at = $5, last_updated_by = $6
		WHERE allocation_id = $7 AND version = $8;
	`
	result, err := tx.Exec(ctx, query,
		allocation.Status,
		allocation.ApprovedAmount,
		allocation.ReviewerID,
		allocation.ReviewerNotes,
		updatedAt,
		allocation.LastUpdatedBy,
		allocation.AllocationID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition allocation "+allocation.AllocationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStaleState
	}
	return nil
}
