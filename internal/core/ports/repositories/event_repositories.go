package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gracebase/steward/internal/core/domain"
)

// EventReader defines read operations for event request data
type EventReader interface {
	// FindEventByID retrieves a specific event request by its unique identifier.
	FindEventByID(ctx context.Context, eventID string) (*domain.EventRequest, error)

	// FindChildrenByParentID retrieves every record whose parentEventID equals the given id.
	FindChildrenByParentID(ctx context.Context, parentEventID string) ([]domain.EventRequest, error)

	// ListEventsByOrganization retrieves a paginated list of event requests for an
	// organization using token-based pagination, optionally filtered by status.
	ListEventsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.EventStatus) ([]domain.EventRequest, *string, error)
}

// EventWriter defines write operations for event request data
type EventWriter interface {
	// SaveEvent persists a new event request.
	SaveEvent(ctx context.Context, event domain.EventRequest) error

	// SaveEventSeries persists a series root and its children atomically.
	SaveEventSeries(ctx context.Context, parent domain.EventRequest, children []domain.EventRequest) error

	// UpdateEventContent updates requester-owned content fields of a draft.
	UpdateEventContent(ctx context.Context, event domain.EventRequest) error
}

// EventTransitioner defines the status-transition write path. Transitions are
// applied inside a caller-owned database transaction so that series-scope
// batches commit all-or-nothing.
type EventTransitioner interface {
	// FindEventsForUpdate loads and row-locks the given events within tx.
	FindEventsForUpdate(ctx context.Context, tx pgx.Tx, eventIDs []string) (map[string]domain.EventRequest, error)

	// ApplyEventTransition writes the new status and reviewer attribution,
	// guarded by the version the caller read. Returns ErrStaleState when the
	// guard misses (someone else transitioned the record first).
	ApplyEventTransition(ctx context.Context, tx pgx.Tx, event domain.EventRequest, expectedVersion int64, updatedAt time.Time) error
}

// EventRepositoryFacade combines all event-request repository interfaces
type EventRepositoryFacade interface {
	EventReader
	EventWriter
	EventTransitioner
}

// EventRepositoryWithTx extends EventRepositoryFacade with transaction capabilities
type EventRepositoryWithTx interface {
	EventRepositoryFacade
	TransactionManager
}
