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
	"github.com/google/uuid"
)

// organizationService implements the OrganizationSvcFacade interface
type organizationService struct {
	BaseService
	organizationRepo portsrepo.OrganizationRepositoryFacade
	userRepo         portsrepo.UserReader
}

// NewOrganizationService creates a new organization service with the provided dependencies
func NewOrganizationService(
	organizationRepo portsrepo.OrganizationRepositoryFacade,
	userRepo portsrepo.UserReader,
) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: organizationRepo,
		userRepo:         userRepo,
	}
}

// Ensure organizationService implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// FindOrganizationByID retrieves an organization by its ID
func (s *organizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by ID",
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Organization retrieved successfully",
		slog.String("organization_id", organization.OrganizationID))
	return organization, nil
}

// ListUserOrganizations retrieves all organizations a user belongs to
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	organizations, err := s.organizationRepo.ListOrganizationsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if organizations == nil {
		return []domain.Organization{}, nil
	}

	s.LogDebug(ctx, "Organizations listed successfully",
		slog.Int("count", len(organizations)),
		slog.String("user_id", userID))
	return organizations, nil
}

// ListOrganizationUsers retrieves all memberships of an organization
func (s *organizationService) ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	memberships, err := s.organizationRepo.ListOrganizationUsers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization users",
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if memberships == nil {
		return []domain.UserOrganization{}, nil
	}
	return memberships, nil
}

// CreateOrganization creates a new organization with the creator as admin
func (s *organizationService) CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error) {
	now := time.Now()
	organizationID := uuid.NewString()

	organization := domain.Organization{
		OrganizationID: organizationID,
		Name:           name,
		Description:    description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	err := s.organizationRepo.SaveOrganization(ctx, organization)
	if err != nil {
		s.LogError(ctx, err, "Failed to save organization",
			slog.String("organization_id", organization.OrganizationID))
		return nil, err
	}

	// Add creator as an admin to the new organization
	membershipErr := s.AddUserToOrganization(ctx, creatorUserID, creatorUserID, organizationID, domain.RoleAdmin)
	if membershipErr != nil {
		s.LogError(ctx, membershipErr, "Failed to add creator as admin to new organization",
			slog.String("organization_id", organization.OrganizationID),
			slog.String("user_id", creatorUserID))
		return nil, membershipErr
	}

	s.LogInfo(ctx, "Organization created successfully",
		slog.String("organization_id", organization.OrganizationID),
		slog.String("creator_id", creatorUserID))
	return &organization, nil
}

// AddUserToOrganization adds a user to an organization with a specific role
func (s *organizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	// Self-assignment is permitted (the creator adding themselves as admin);
	// everything else requires admin rights.
	if addingUserID != targetUserID {
		err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin)
		if err != nil {
			s.LogError(ctx, err, "User not authorized to add members to organization",
				slog.String("adding_user_id", addingUserID),
				slog.String("organization_id", organizationID))
			return err
		}
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("target user not found")
		}
		return err
	}

	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       time.Now(),
	}

	err := s.organizationRepo.AddUserToOrganization(ctx, membership)
	if err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("target_user_id", targetUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "User added to organization successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("organization_id", organizationID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromOrganization marks a user's membership as removed
func (s *organizationService) RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error {
	err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if requestingUserID == targetUserID {
		return apperrors.NewValidationFailedError("admins cannot remove themselves from an organization")
	}

	err = s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, domain.RoleRemoved)
	if err != nil {
		s.LogError(ctx, err, "Failed to remove user from organization",
			slog.String("target_user_id", targetUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "User removed from organization",
		slog.String("target_user_id", targetUserID),
		slog.String("organization_id", organizationID))
	return nil
}

// UpdateUserOrganizationRole changes a member's role in an organization
func (s *organizationService) UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error {
	err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if newRole == domain.RoleRemoved {
		return apperrors.NewValidationFailedError("use the remove operation to revoke membership")
	}

	err = s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, newRole)
	if err != nil {
		s.LogError(ctx, err, "Failed to update user organization role",
			slog.String("target_user_id", targetUserID),
			slog.String("organization_id", organizationID),
			slog.String("new_role", string(newRole)))
		return err
	}

	s.LogInfo(ctx, "User organization role updated",
		slog.String("target_user_id", targetUserID),
		slog.String("organization_id", organizationID),
		slog.String("new_role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for an organization
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	role, err := s.ResolveUserRole(ctx, userID, organizationID)
	if err != nil {
		return err
	}

	if !hasRequiredRole(role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("user_role", string(role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}

// ResolveUserRole returns the role a user holds in an organization
func (s *organizationService) ResolveUserRole(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error) {
	membership, err := s.organizationRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of organization",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			return "", apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user organization role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return "", err
	}

	if membership.Role == domain.RoleRemoved {
		return "", apperrors.ErrForbidden
	}

	return membership.Role, nil
}

// CreateMinistry persists a new ministry in an organization
func (s *organizationService) CreateMinistry(ctx context.Context, organizationID, name, leaderUserID, requestingUserID string) (*domain.Ministry, error) {
	err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if leaderUserID != "" {
		if _, err := s.organizationRepo.FindUserOrganizationRole(ctx, leaderUserID, organizationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("ministry leader must be a member of the organization")
			}
			return nil, err
		}
	}

	now := time.Now()
	ministry := domain.Ministry{
		MinistryID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           name,
		LeaderUserID:   leaderUserID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.organizationRepo.SaveMinistry(ctx, ministry); err != nil {
		s.LogError(ctx, err, "Failed to save ministry",
			slog.String("organization_id", organizationID),
			slog.String("ministry_name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Ministry created successfully",
		slog.String("ministry_id", ministry.MinistryID),
		slog.String("organization_id", organizationID))
	return &ministry, nil
}

// ListMinistries retrieves all ministries of an organization
func (s *organizationService) ListMinistries(ctx context.Context, organizationID, requestingUserID string) ([]domain.Ministry, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	ministries, err := s.organizationRepo.ListMinistriesByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ministries",
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if ministries == nil {
		return []domain.Ministry{}, nil
	}
	return ministries, nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role.
// ADMIN satisfies every requirement; the stage roles (leader, treasury,
// finance) are peers, not a ladder, so they only satisfy themselves and the
// general member/read checks.
func hasRequiredRole(userRole, requiredRole domain.UserOrganizationRole) bool {
	if userRole == domain.RoleRemoved {
		return false
	}
	if userRole == domain.RoleAdmin {
		return true
	}
	switch requiredRole {
	case domain.RoleReadOnly:
		return true
	case domain.RoleMember:
		return userRole != domain.RoleReadOnly
	default:
		return userRole == requiredRole
	}
}
