package services

import (
	"context"

	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/dto"
)

// AllocationReaderSvc defines read operations for budget allocation requests
type AllocationReaderSvc interface {
	// GetAllocationByID retrieves a specific allocation request.
	GetAllocationByID(ctx context.Context, organizationID, allocationID, requestingUserID string) (*domain.AllocationRequest, error)

	// ListAllocations retrieves a paginated list of allocation requests in an
	// organization, optionally filtered by fiscal year.
	ListAllocations(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, fiscalYearID *string) ([]domain.AllocationRequest, *string, error)
}

// AllocationWriterSvc defines write operations for budget allocation requests
type AllocationWriterSvc interface {
	// CreateAllocation persists a new allocation request in DRAFT.
	CreateAllocation(ctx context.Context, organizationID, requesterUserID string, req dto.CreateAllocationRequest) (*domain.AllocationRequest, error)

	// UpdateAllocation updates the content of a draft allocation request.
	UpdateAllocation(ctx context.Context, organizationID, allocationID, requestingUserID string, req dto.UpdateAllocationRequest) (*domain.AllocationRequest, error)
}

// AllocationSvcFacade combines all allocation-related service interfaces
type AllocationSvcFacade interface {
	AllocationReaderSvc
	AllocationWriterSvc
}
