package dto

import (
	"time"

	"github.com/gracebase/steward/internal/core/domain"
)

// --- Organization DTOs ---

// CreateOrganizationRequest defines data for creating a new organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"` // UserID
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"` // UserID
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
		LastUpdatedAt:  o.LastUpdatedAt,
		LastUpdatedBy:  o.LastUpdatedBy,
	}
}

// ListOrganizationsResponse wraps a list of organizations.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToListOrganizationsResponse converts a slice of domain.Organization to DTO.
func ToListOrganizationsResponse(orgs []domain.Organization) ListOrganizationsResponse {
	list := make([]OrganizationResponse, len(orgs))
	for i, o := range orgs {
		list[i] = ToOrganizationResponse(&o)
	}
	return ListOrganizationsResponse{Organizations: list}
}

// --- Membership DTOs ---

// AddUserToOrganizationRequest defines data for adding a user to an organization.
type AddUserToOrganizationRequest struct {
	UserID string                      `json:"userID" binding:"required"`
	Role   domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MINISTRY_LEADER TREASURY FINANCE MEMBER READONLY"`
}

// UpdateUserOrganizationRoleRequest defines data for changing a member's role.
type UpdateUserOrganizationRoleRequest struct {
	Role domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MINISTRY_LEADER TREASURY FINANCE MEMBER READONLY"`
}

// UserOrganizationResponse defines data returned about a user's membership.
type UserOrganizationResponse struct {
	UserID         string                      `json:"userID"`
	UserName       string                      `json:"userName,omitempty"`
	OrganizationID string                      `json:"organizationID"`
	Role           domain.UserOrganizationRole `json:"role"`
	JoinedAt       time.Time                   `json:"joinedAt"`
}

// ToUserOrganizationResponse converts domain.UserOrganization to DTO.
func ToUserOrganizationResponse(m *domain.UserOrganization) UserOrganizationResponse {
	return UserOrganizationResponse{
		UserID:         m.UserID,
		UserName:       m.UserName,
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
		JoinedAt:       m.JoinedAt,
	}
}

// ListOrganizationUsersResponse wraps the memberships of an organization.
type ListOrganizationUsersResponse struct {
	Users []UserOrganizationResponse `json:"users"`
}

// ToListOrganizationUsersResponse converts memberships to DTO.
func ToListOrganizationUsersResponse(ms []domain.UserOrganization) ListOrganizationUsersResponse {
	list := make([]UserOrganizationResponse, len(ms))
	for i, m := range ms {
		list[i] = ToUserOrganizationResponse(&m)
	}
	return ListOrganizationUsersResponse{Users: list}
}

// --- Ministry DTOs ---

// CreateMinistryRequest defines data for creating a ministry.
type CreateMinistryRequest struct {
	Name         string `json:"name" binding:"required"`
	LeaderUserID string `json:"leaderUserID"`
}

// MinistryResponse defines data returned for a ministry.
type MinistryResponse struct {
	MinistryID     string `json:"ministryID"`
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	LeaderUserID   string `json:"leaderUserID,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// ToMinistryResponse converts domain.Ministry to DTO.
func ToMinistryResponse(m *domain.Ministry) MinistryResponse {
	return MinistryResponse{
		MinistryID:     m.MinistryID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		LeaderUserID:   m.LeaderUserID,
		IsActive:       m.IsActive,
	}
}

// ListMinistriesResponse wraps a list of ministries.
type ListMinistriesResponse struct {
	Ministries []MinistryResponse `json:"ministries"`
}

// ToListMinistriesResponse converts a slice of domain.Ministry to DTO.
func ToListMinistriesResponse(ms []domain.Ministry) ListMinistriesResponse {
	list := make([]MinistryResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMinistryResponse(&m)
	}
	return ListMinistriesResponse{Ministries: list}
}
