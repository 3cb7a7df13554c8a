package mapping

import (
	"github.com/gracebase/steward/internal/core/domain"
	"github.com/gracebase/steward/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrganizationSlice converts a slice of model Organizations to domain
func ToDomainOrganizationSlice(ms []models.Organization) []domain.Organization {
	ds := make([]domain.Organization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}

// ToModelUserOrganization converts a domain membership to a model membership
func ToModelUserOrganization(d domain.UserOrganization) models.UserOrganization {
	return models.UserOrganization{
		UserID:         d.UserID,
		OrganizationID: d.OrganizationID,
		Role:           models.UserOrganizationRole(d.Role),
		JoinedAt:       d.JoinedAt,
		UserName:       d.UserName,
	}
}

// ToDomainUserOrganization converts a model membership to a domain membership
func ToDomainUserOrganization(m models.UserOrganization) domain.UserOrganization {
	return domain.UserOrganization{
		UserID:         m.UserID,
		UserName:       m.UserName,
		OrganizationID: m.OrganizationID,
		Role:           domain.UserOrganizationRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}

// ToDomainUserOrganizationSlice converts a slice of model memberships to domain
func ToDomainUserOrganizationSlice(ms []models.UserOrganization) []domain.UserOrganization {
	ds := make([]domain.UserOrganization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUserOrganization(m)
	}
	return ds
}

// ToModelMinistry converts a domain Ministry to a model Ministry
func ToModelMinistry(d domain.Ministry) models.Ministry {
	return models.Ministry{
		MinistryID:     d.MinistryID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		LeaderUserID:   d.LeaderUserID,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMinistry converts a model Ministry to a domain Ministry
func ToDomainMinistry(m models.Ministry) domain.Ministry {
	return domain.Ministry{
		MinistryID:     m.MinistryID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		LeaderUserID:   m.LeaderUserID,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMinistrySlice converts a slice of model Ministries to domain
func ToDomainMinistrySlice(ms []models.Ministry) []domain.Ministry {
	ds := make([]domain.Ministry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMinistry(m)
	}
	return ds
}
