package pgsql

import (
	"context"
	"errors"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portsrepo "github.com/gracebase/steward/internal/core/ports/repositories"
	"github.com/gracebase/steward/internal/models"
	"github.com/gracebase/steward/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationSelectColumns = `o.organization_id, o.name, o.description, o.is_active, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by`

func (r *PgxOrganizationRepository) getOrganizations(ctx context.Context, filterQuery string, args ...any) ([]domain.Organization, error) {
	query := `SELECT ` + organizationSelectColumns + ` FROM organizations o ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations", err)
	}
	defer rows.Close()

	modelOrgs := []models.Organization{}
	for rows.Next() {
		var m models.Organization
		err := rows.Scan(
			&m.OrganizationID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row", err)
		}
		modelOrgs = append(modelOrgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows", err)
	}

	return mapping.ToDomainOrganizationSlice(modelOrgs), nil
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	modelOrg := mapping.ToModelOrganization(organization)
	query := `
		INSERT INTO organizations (
			organization_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelOrg.OrganizationID,
		modelOrg.Name,
		modelOrg.Description,
		modelOrg.IsActive,
		modelOrg.CreatedAt,
		modelOrg.CreatedBy,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("organization ID " + organization.OrganizationID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save organization "+organization.OrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	organizations, err := r.getOrganizations(ctx, `WHERE o.organization_id = $1`, organizationID)
	if err != nil {
		return nil, err
	}
	if len(organizations) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &organizations[0], nil
}

func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	filter := `
		JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1 AND uo.role != $2 AND o.is_active = true
		ORDER BY o.name;
	`
	return r.getOrganizations(ctx, filter, userID, domain.RoleRemoved)
}

func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	// Upsert: add the user or update their role if they already exist
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET
			role = EXCLUDED.role,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	modelMembership := mapping.ToModelUserOrganization(membership)
	_, err := r.Pool.Exec(ctx, query,
		modelMembership.UserID,
		modelMembership.OrganizationID,
		modelMembership.Role,
		modelMembership.JoinedAt,
		membership.JoinedAt,
		membership.UserID,
		membership.JoinedAt,
		membership.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewNotFoundError("user or organization does not exist")
		}
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in organization "+membership.OrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, u.name AS user_name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.user_id = $1 AND uo.organization_id = $2;
	`
	var m models.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.UserName,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user is not a member of organization " + organizationID)
		}
		return nil, apperrors.NewAppError(500, "failed to find role of user "+userID+" in organization "+organizationID, err)
	}
	membership := mapping.ToDomainUserOrganization(m)
	return &membership, nil
}

func (r *PgxOrganizationRepository) ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, u.name AS user_name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.organization_id = $1 AND uo.role != $2
		ORDER BY uo.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for organization "+organizationID, err)
	}
	defer rows.Close()

	memberships := []models.UserOrganization{}
	for rows.Next() {
		var m models.UserOrganization
		err := rows.Scan(
			&m.UserID,
			&m.UserName,
			&m.OrganizationID,
			&m.Role,
			&m.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows", err)
	}

	return mapping.ToDomainUserOrganizationSlice(memberships), nil
}

func (r *PgxOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error {
	query := `
		UPDATE user_organizations
		SET role = $3, last_updated_at = NOW(), last_updated_by = $1
		WHERE user_id = $1 AND organization_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, userID, organizationID, role)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in organization "+organizationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}

func (r *PgxOrganizationRepository) SaveMinistry(ctx context.Context, ministry domain.Ministry) error {
	modelMinistry := mapping.ToModelMinistry(ministry)
	query := `
		INSERT INTO ministries (
			ministry_id, organization_id, name, leader_user_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMinistry.MinistryID,
		modelMinistry.OrganizationID,
		modelMinistry.Name,
		nullableString(modelMinistry.LeaderUserID),
		modelMinistry.IsActive,
		modelMinistry.CreatedAt,
		modelMinistry.CreatedBy,
		modelMinistry.LastUpdatedAt,
		modelMinistry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("ministry " + ministry.Name + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("organization or leader does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save ministry "+ministry.MinistryID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindMinistryByID(ctx context.Context, ministryID string) (*domain.Ministry, error) {
	query := `
		SELECT ministry_id, organization_id, name, COALESCE(leader_user_id, ''), is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ministries
		WHERE ministry_id = $1;
	`
	var m models.Ministry
	err := r.Pool.QueryRow(ctx, query, ministryID).Scan(
		&m.MinistryID,
		&m.OrganizationID,
		&m.Name,
		&m.LeaderUserID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("ministry " + ministryID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find ministry "+ministryID, err)
	}
	ministry := mapping.ToDomainMinistry(m)
	return &ministry, nil
}

func (r *PgxOrganizationRepository) ListMinistriesByOrganization(ctx context.Context, organizationID string) ([]domain.Ministry, error) {
	query := `
		SELECT ministry_id, organization_id, name, COALESCE(leader_user_id, ''), is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ministries
		WHERE organization_id = $1 AND is_active = true
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ministries for organization "+organizationID, err)
	}
	defer rows.Close()

	ministries := []models.Ministry{}
	for rows.Next() {
		var m models.Ministry
		err := rows.Scan(
			&m.MinistryID,
			&m.OrganizationID,
			&m.Name,
			&m.LeaderUserID,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ministry row", err)
		}
		ministries = append(ministries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ministry rows", err)
	}

	return mapping.ToDomainMinistrySlice(ministries), nil
}

// nullableString maps "" to NULL for optional foreign key columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
