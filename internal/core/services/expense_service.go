package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/dto"
	"github.com/google/uuid"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	ministryRepo portsrepo.MinistryManager
}

// NewExpenseService creates a new expense service with the provided dependencies
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	ministryRepo portsrepo.MinistryManager,
	authorizer portssvc.OrganizationAuthorizerSvc,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService:  BaseService{OrganizationAuthorizer: authorizer},
		expenseRepo:  expenseRepo,
		ministryRepo: ministryRepo,
	}
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// GetExpenseByID retrieves a specific expense request
func (s *expenseService) GetExpenseByID(ctx context.Context, organizationID, expenseID, requestingUserID string) (*domain.ExpenseRequest, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense by ID", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	if expense.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("expense request not found")
	}

	return expense, nil
}

// ListExpenses retrieves a paginated list of expense requests in an organization
func (s *expenseService) ListExpenses(ctx context.Context, organizationID, requestingUserID string, limit int, nextToken *string, status *domain.ExpenseStatus) ([]domain.ExpenseRequest, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	expenses, token, err := s.expenseRepo.ListExpensesByOrganization(ctx, organizationID, limit, nextToken, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses",
			slog.String("organization_id", organizationID))
		return nil, nil, err
	}

	if expenses == nil {
		expenses = []domain.ExpenseRequest{}
	}
	return expenses, token, nil
}

// CreateExpense persists a new expense request in DRAFT
func (s *expenseService) CreateExpense(ctx context.Context, organizationID, requesterUserID string, req dto.CreateExpenseRequest) (*domain.ExpenseRequest, error) {
	if err := s.AuthorizeUser(ctx, requesterUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("expense amount must be positive")
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

	now := time.Now()
	expense := domain.ExpenseRequest{
		ExpenseID:      uuid.NewString(),
		OrganizationID: organizationID,
		RequesterID:    requesterUserID,
		MinistryID:     req.MinistryID,
		Amount:         req.Amount,
		Justification:  req.Justification,
		Status:         domain.ExpenseDraft,
		Version:        1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

// UpdateExpense updates the content of a draft expense request
func (s *expenseService) UpdateExpense(ctx context.Context, organizationID, expenseID, requestingUserID string, req dto.UpdateExpenseRequest) (*domain.ExpenseRequest, error) {
	expense, err := s.GetExpenseByID(ctx, organizationID, expenseID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if expense.RequesterID != requestingUserID {
		return nil, apperrors.NewForbiddenError("only the requester can edit a draft")
	}
	if expense.Status != domain.ExpenseDraft {
		return nil, apperrors.NewAppError(409, "only draft expenses can be edited", apperrors.ErrConflict)
	}

	if req.MinistryID != nil && *req.MinistryID != expense.MinistryID {
		ministry, err := s.ministryRepo.FindMinistryByID(ctx, *req.MinistryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("ministry not found")
			}
			return nil, err
		}
		if ministry.OrganizationID != organizationID || !ministry.IsActive {
			return nil, apperrors.NewValidationFailedError("ministry not found")
		}
		expense.MinistryID = *req.MinistryID
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewValidationFailedError("expense amount must be positive")
		}
		expense.Amount = *req.Amount
	}
	if req.Justification != nil {
		expense.Justification = *req.Justification
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpenseContent(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	return expense, nil
}
