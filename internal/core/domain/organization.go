package domain

import "time"

// Organization represents a tenant: all requests, ministries and memberships are scoped to one.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (e.g., UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the possible roles a user can have within an organization.
// The three stage roles (leader, treasury, finance) each gate one stage of the
// expense review chain; ADMIN may act at any stage.
type UserOrganizationRole string

const (
	RoleAdmin          UserOrganizationRole = "ADMIN"
	RoleMinistryLeader UserOrganizationRole = "MINISTRY_LEADER"
	RoleTreasury       UserOrganizationRole = "TREASURY"
	RoleFinance        UserOrganizationRole = "FINANCE"
	RoleMember         UserOrganizationRole = "MEMBER"
	RoleReadOnly       UserOrganizationRole = "READONLY"
	RoleRemoved        UserOrganizationRole = "REMOVED" // For users who have been removed from the organization
)

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	UserName       string               `json:"userName"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}

// Ministry is a sub-unit of an organization that expense and allocation
// requests are booked against.
type Ministry struct {
	MinistryID     string `json:"ministryID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	LeaderUserID   string `json:"leaderUserID"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
