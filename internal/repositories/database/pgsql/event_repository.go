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

type PgxEventRepository struct {
	BaseRepository
}

// newPgxEventRepository creates a new repository for event request data.
func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventRepositoryWithTx {
	return &PgxEventRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEventRepository implements portsrepo.EventRepositoryWithTx
var _ portsrepo.EventRepositoryWithTx = (*PgxEventRepository)(nil)

const eventSelectColumns = `
	e.event_id, e.organization_id, e.requester_id, u.name AS requester_name,
	e.title, e.description, e.room_id, e.starts_at, e.ends_at,
	e.is_recurring, e.parent_event_id, e.status, e.reviewer_id, e.reviewer_notes,
	e.version, e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
`

const eventInsertQuery = `
	INSERT INTO event_requests (
		event_id, organization_id, requester_id, title, description, room_id,
		starts_at, ends_at, is_recurring, parent_event_id, status,
		version, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

func scanEventRow(row pgx.Row) (*models.EventRequest, error) {
	var m models.EventRequest
	err := row.Scan(
		&m.EventID,
		&m.OrganizationID,
		&m.RequesterID,
		&m.RequesterName,
		&m.Title,
		&m.Description,
		&m.RoomID,
		&m.StartsAt,
		&m.EndsAt,
		&m.IsRecurring,
		&m.ParentEventID,
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

func eventInsertArgs(m models.EventRequest) []any {
	return []any{
		m.EventID,
		m.OrganizationID,
		m.RequesterID,
		m.Title,
		m.Description,
		m.RoomID,
		m.StartsAt,
		m.EndsAt,
		m.IsRecurring,
		m.ParentEventID,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxEventRepository) SaveEvent(ctx context.Context, event domain.EventRequest) error {
	modelEvent := mapping.ToModelEventRequest(event)
	_, err := r.Pool.Exec(ctx, eventInsertQuery, eventInsertArgs(modelEvent)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("event ID " + event.EventID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save event "+event.EventID, err)
	}
	return nil
}

// SaveEventSeries inserts the root and all occurrence rows in one transaction.
func (r *PgxEventRepository) SaveEventSeries(ctx context.Context, parent domain.EventRequest, children []domain.EventRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelParent := mapping.ToModelEventRequest(parent)
	if _, err := tx.Exec(ctx, eventInsertQuery, eventInsertArgs(modelParent)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert series root "+parent.EventID, err)
	}

	batch := &pgx.Batch{}
	for _, child := range children {
		batch.Queue(eventInsertQuery, eventInsertArgs(mapping.ToModelEventRequest(child))...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert series occurrences for "+parent.EventID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxEventRepository) UpdateEventContent(ctx context.Context, event domain.EventRequest) error {
	query := `
		UPDATE event_requests
		SET title = $1, description = $2, room_id = $3, starts_at = $4, ends_at = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE event_id = $8 AND status = $9;
	`
	result, err := r.Pool.Exec(ctx, query,
		event.Title,
		event.Description,
		event.RoomID,
		event.StartsAt,
		event.EndsAt,
		event.LastUpdatedAt,
		event.LastUpdatedBy,
		event.EventID,
		domain.EventDraft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update event "+event.EventID, err)
	}
	if result.RowsAffected() == 0 {
		// Either the event is gone or it already left DRAFT.
		return apperrors.NewAppError(409, "event "+event.EventID+" is not editable", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.EventRequest, error) {
	query := `
		SELECT ` + eventSelectColumns + `
		FROM event_requests e
		JOIN users u ON e.requester_id = u.user_id
		WHERE e.event_id = $1;
	`
	m, err := scanEventRow(r.Pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find event "+eventID, err)
	}
	event := mapping.ToDomainEventRequest(*m)
	return &event, nil
}

func (r *PgxEventRepository) FindChildrenByParentID(ctx context.Context, parentEventID string) ([]domain.EventRequest, error) {
	query := `
		SELECT ` + eventSelectColumns + `
		FROM event_requests e
		JOIN users u ON e.requester_id = u.user_id
		WHERE e.parent_event_id = $1
		ORDER BY e.starts_at;
	`
	rows, err := r.Pool.Query(ctx, query, parentEventID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query series occurrences for "+parentEventID, err)
	}
	defer rows.Close()

	events := []models.EventRequest{}
	for rows.Next() {
		m, err := scanEventRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan event row", err)
		}
		events = append(events, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating event rows", err)
	}

	return mapping.ToDomainEventRequestSlice(events), nil
}

// ListEventsByOrganization pages through an organization's events with
// token-based pagination ordered by creation time descending.
func (r *PgxEventRepository) ListEventsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.EventStatus) ([]domain.EventRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + eventSelectColumns + `
		FROM event_requests e
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
		return nil, nil, apperrors.NewAppError(500, "failed to query events for organization "+organizationID, err)
	}
	defer rows.Close()

	events := []models.EventRequest{}
	for rows.Next() {
		m, err := scanEventRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan event row", err)
		}
		events = append(events, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating event rows", err)
	}

	var nextTokenVal *string
	if len(events) > limit {
		events = events[:limit]
		token := pagination.EncodeDateBasedToken(events[limit-1].CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainEventRequestSlice(events), nextTokenVal, nil
}

// FindEventsForUpdate loads and row-locks the given events within tx.
// Every requested id must resolve or the call fails with ErrNotFound.
func (r *PgxEventRepository) FindEventsForUpdate(ctx context.Context, tx pgx.Tx, eventIDs []string) (map[string]domain.EventRequest, error) {
	if len(eventIDs) == 0 {
		return map[string]domain.EventRequest{}, nil
	}

	// FOR UPDATE OF e: the joined users row does not need locking.
	query := `
		SELECT ` + eventSelectColumns + `
		FROM event_requests e
		JOIN users u ON e.requester_id = u.user_id
		WHERE e.event_id = ANY($1)
		FOR UPDATE OF e;
	`
	rows, err := tx.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock events for update", err)
	}
	defer rows.Close()

	locked := make(map[string]domain.EventRequest, len(eventIDs))
	for rows.Next() {
		m, err := scanEventRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked event row", err)
		}
		locked[m.EventID] = mapping.ToDomainEventRequest(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked event rows", err)
	}

	for _, id := range eventIDs {
		if _, ok := locked[id]; !ok {
			return nil, apperrors.NewNotFoundError("event " + id + " not found")
		}
	}
	return locked, nil
}

// ApplyEventTransition writes the new status and reviewer attribution, guarded
// by the version the caller read.
func (r *PgxEventRepository) ApplyEventTransition(ctx context.Context, tx pgx.Tx, event domain.EventRequest, expectedVersion int64, updatedAt time.Time) error {
	query := `
		UPDATE event_requests
		SET status = $1, reviewer_id = $2, reviewer_notes = $3,
		    version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE event_id = $6 AND version = $7;
	`
	result, err := tx.Exec(ctx, query,
		event.Status,
		event.ReviewerID,
		event.ReviewerNotes,
		updatedAt,
		event.LastUpdatedBy,
		event.EventID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition event "+event.EventID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStaleState
	}
	return nil
}
