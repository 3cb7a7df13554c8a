package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gracebase/steward/internal/core/domain"
)

// AllocationReader defines read operations for budget-allocation request data
type AllocationReader interface {
	// FindAllocationByID retrieves a specific allocation request (with its
	// period breakdown) by its unique identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.AllocationRequest, error)

	// ListAllocationsByOrganization retrieves a paginated list of allocation
	// requests for an organization, optionally filtered by fiscal year.
	ListAllocationsByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, fiscalYearID *string) ([]domain.AllocationRequest, *string, error)
}

// AllocationWriter defines write operations for allocation request data
type AllocationWriter interface {
	// SaveAllocation persists a new allocation request and its breakdown rows atomically.
	SaveAllocation(ctx context.Context, allocation domain.AllocationRequest) error

	// UpdateAllocationContent replaces requester-owned content fields and the
	// breakdown of a draft.
	UpdateAllocationContent(ctx context.Context, allocation domain.AllocationRequest) error
}

// AllocationTransitioner defines the status-transition write path.
type AllocationTransitioner interface {
	// FindAllocationForUpdate loads and row-locks the allocation within tx.
	FindAllocationForUpdate(ctx context.Context, tx pgx.Tx, allocationID string) (*domain.AllocationRequest, error)

	// ApplyAllocationTransition writes the new status, approved amount and
	// reviewer attribution, guarded by the version the caller read.
	ApplyAllocationTransition(ctx context.Context, tx pgx.Tx, allocation domain.AllocationRequest, expectedVersion int64, updatedAt time.Time) error
}

// AllocationRepositoryFacade combines all allocation-request repository interfaces
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
	AllocationTransitioner
}

// AllocationRepositoryWithTx extends AllocationRepositoryFacade with transaction capabilities
type AllocationRepositoryWithTx interface {
	AllocationRepositoryFacade
	TransactionManager
}
