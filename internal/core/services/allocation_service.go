package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/google/uuid"
)

// allocationService implements the AllocationSvcFacade interface
type allocationService struct {
	BaseService
	allocationRepo portsrepo.AllocationRepositoryFacade
	ministryRepo   portsrepo.MinistryManager
}

// NewAllocationService creates a new allocation service with the provided dependencies
func NewAllocationService(
	allocationRepo portsrepo.AllocationRepositoryFacade,
	ministryRepo portsrepo.MinistryManager,
	authorizer portssvc.OrganizationAuthorizerSvc,
) portssvc.AllocationSvcFacade {
	return &allocationService{
		BaseService:    BaseService{OrganizationAuthorizer: authorizer},
		allocationRepo: allocationRepo,
		ministryRepo:   ministryRepo,
	}
}

// Ensure allocationService implements the AllocationSvcFacade interface
var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// GetAllocationByID retrieves a specific allocation request with its breakdown
func (s *allocationService) GetAllocationByID(ctx context.Context, organizationID, allocationID, requestingUserID string) (*domain.AllocationRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find allocation by ID", slog.String("allocation_id", allocationID))
		}
		return nil, err
	}

	if allocation.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("allocation request not found")
	}

	return allocation, nil
}

// ListAllocations retrieves a paginated list of allocation requests in an organization
func (s *allocationService) ListAllocations(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, fiscalYearID *string) ([]domain.AllocationRequest, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	allocations, token, err := s.allocationRepo.ListAllocationsByOrganization(ctx, organizationID, limit, nextToken, fiscalYearID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allocations",
			slog.String("organization_id", organizationID))
		return nil, nil, err
	}

	if allocations == nil {
		allocations = []domain.AllocationRequest{}
	}
	return allocations, token, nil
}

// CreateAllocation persists a new allocation request in DRAFT
func (s *allocationService) CreateAllocation(ctx context.Context, organizationID, requesterUserID string, req dto.CreateAllocationRequest) (*domain.AllocationRequest, error) {
	if err := s.AuthorizeUser(ctx, requesterUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	ministry, err := s.ministryRepo.FindMinistryByID(ctx, req.MinistryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("ministry not found")
		}
		return nil, err
	}
	if ministry.OrganizationID != organizationID || !ministry.IsActive {
		return nil, apperrors.NewValidationFailedError("ministry not found")
	}

	breakdown := toPeriodEntries(req.Breakdown)
	if err := validateAllocationAmounts(req.PeriodType, req.RequestedAmount, breakdown); err != nil {
		return nil, err
	}

	now := time.Now()
	allocation := domain.AllocationRequest{
		AllocationID:    uuid.NewString(),
		OrganizationID:  organizationID,
		RequesterID:     requesterUserID,
		FiscalYearID:    req.FiscalYearID,
		MinistryID:      req.MinistryID,
		PeriodType:      req.PeriodType,
		RequestedAmount: req.RequestedAmount,
		Breakdown:       breakdown,
		Status:          domain.AllocationDraft,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	if err := s.allocationRepo.SaveAllocation(ctx, allocation); err != nil {
		s.LogError(ctx, err, "Failed to save allocation", slog.String("allocation_id", allocation.AllocationID))
		return nil, err
	}

	s.LogInfo(ctx, "Allocation created", slog.String("allocation_id", allocation.AllocationID))
	return &allocation, nil
}

// UpdateAllocation updates the content of a draft allocation request
func (s *allocationService) UpdateAllocation(ctx context.Context, organizationID, allocationID, requestingUserID string, req dto.UpdateAllocationRequest) (*domain.AllocationRequest, error) {
	allocation, err := s.GetAllocationByID(ctx, organizationID, allocationID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if allocation.RequesterID != requestingUserID {
		return nil, apperrors.NewForbiddenError("only the requester can edit a draft")
	}
	if allocation.Status != domain.AllocationDraft {
		return nil, apperrors.NewAppError(409, "only draft allocations can be edited", apperrors.ErrConflict)
	}

	if req.PeriodType != nil {
		allocation.PeriodType = *req.PeriodType
	}
	if req.RequestedAmount != nil {
		allocation.RequestedAmount = *req.RequestedAmount
	}
	if req.Breakdown != nil {
		allocation.Breakdown = toPeriodEntries(req.Breakdown)
	}
	if err := validateAllocationAmounts(allocation.PeriodType, allocation.RequestedAmount, allocation.Breakdown); err != nil {
		return nil, err
	}

	allocation.LastUpdatedAt = time.Now()
	allocation.LastUpdatedBy = requestingUserID

	if err := s.allocationRepo.UpdateAllocationContent(ctx, *allocation); err != nil {
		s.LogError(ctx, err, "Failed to update allocation", slog.String("allocation_id", allocationID))
		return nil, err
	}

	return allocation, nil
}

func toPeriodEntries(inputs []dto.PeriodEntryInput) []domain.PeriodEntry {
	if len(inputs) == 0 {
		return nil
	}
	entries := make([]domain.PeriodEntry, len(inputs))
	for i, in := range inputs {
		entries[i] = domain.PeriodEntry{PeriodLabel: in.PeriodLabel, Amount: in.Amount}
	}
	return entries
}

// validateAllocationAmounts enforces the period rules: the requested amount is
// always positive; annual requests carry no breakdown; quarterly and monthly
// requests need a breakdown of positive amounts summing exactly to the total.
func validateAllocationAmounts(periodType domain.PeriodType, requested decimal.Decimal, breakdown []domain.PeriodEntry) error {
	if !requested.IsPositive() {
		return apperrors.NewValidationFailedError("requested amount must be positive")
	}

	if periodType == domain.PeriodAnnual {
		if len(breakdown) > 0 {
			return apperrors.NewValidationFailedError("annual allocations do not take a period breakdown")
		}
		return nil
	}

	expectedPeriods := 4
	if periodType == domain.PeriodMonthly {
		expectedPeriods = 12
	}
	if len(breakdown) != expectedPeriods {
		return apperrors.NewValidationFailedError("period breakdown does not match the period type")
	}

	sum := decimal.Zero
	for _, entry := range breakdown {
		if entry.Amount.IsNegative() {
			return apperrors.NewValidationFailedError("period amounts cannot be negative")
		}
		sum = sum.Add(entry.Amount)
	}
	if !sum.Equal(requested) {
		return apperrors.NewValidationFailedError("period breakdown must sum to the requested amount")
	}

	return nil
}
