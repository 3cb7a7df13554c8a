package models

import "time"

// Organization represents an organization row. All request tables hang off it.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// UserOrganizationRole mirrors the role column of user_organizations.
type UserOrganizationRole string

// UserOrganization represents a membership row linking a user to an organization.
type UserOrganization struct {
	UserID         string               `db:"user_id"`
	OrganizationID string               `db:"organization_id"`
	Role           UserOrganizationRole `db:"role"`
	JoinedAt       time.Time            `db:"joined_at"`
	AuditFields

	// UserName is populated by joins against users, not stored on the row.
	UserName string `db:"user_name"`
}

// Ministry represents a ministry row within an organization.
type Ministry struct {
	MinistryID     string `db:"ministry_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	LeaderUserID   string `db:"leader_user_id"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
