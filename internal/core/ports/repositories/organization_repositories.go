package repositories

import (
	"context"

	"github.com/gracebase/steward/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUserID retrieves all organizations a user belongs to.
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, organization domain.Organization) error
}

// OrganizationMembershipManager defines operations for managing memberships
type OrganizationMembershipManager interface {
	// AddUserToOrganization adds a user to an organization with a specific role.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// FindUserOrganizationRole retrieves the membership of a user in an organization.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error)

	// ListOrganizationUsers retrieves all memberships of an organization.
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)

	// UpdateUserOrganizationRole changes a member's role.
	UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error
}

// MinistryManager defines operations for ministries within an organization
type MinistryManager interface {
	// SaveMinistry persists a new ministry.
	SaveMinistry(ctx context.Context, ministry domain.Ministry) error

	// FindMinistryByID retrieves a ministry by its ID.
	FindMinistryByID(ctx context.Context, ministryID string) (*domain.Ministry, error)

	// ListMinistriesByOrganization retrieves all ministries of an organization.
	ListMinistriesByOrganization(ctx context.Context, organizationID string) ([]domain.Ministry, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	OrganizationMembershipManager
	MinistryManager
}
