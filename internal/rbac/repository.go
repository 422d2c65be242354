package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-events/internal/platform/db"
	"github.com/epic-events/epic-events/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for roles and
// permissions.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// GetOrCreateRole upserts a role by unique name. A concurrent insert of
// the same name loses the race on the unique index; the loser re-reads.
func (r *PGRepository) GetOrCreateRole(ctx context.Context, name string) (Role, error) {
	role, err := r.GetRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return Role{}, err
	}

	err = r.pool.QueryRow(ctx, `INSERT INTO roles (name) VALUES ($1) RETURNING id, name`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return r.GetRoleByName(ctx, name)
		}
		return Role{}, err
	}
	return role, nil
}

// GetOrCreatePermission upserts a permission by unique name.
func (r *PGRepository) GetOrCreatePermission(ctx context.Context, name string) (Permission, error) {
	perm, err := r.getPermissionByName(ctx, name)
	if err == nil {
		return perm, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return Permission{}, err
	}

	err = r.pool.QueryRow(ctx, `INSERT INTO permissions (name) VALUES ($1) RETURNING id, name`, name).Scan(&perm.ID, &perm.Name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return r.getPermissionByName(ctx, name)
		}
		return Permission{}, err
	}
	return perm, nil
}

// LinkRolePermission attaches a permission to a role, idempotently.
func (r *PGRepository) LinkRolePermission(ctx context.Context, roleID, permissionID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, roleID, permissionID)
	return err
}

// RolePermissionNames returns the permission names attached to a role.
func (r *PGRepository) RolePermissionNames(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.name`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetRoleByName fetches a role by its unique name.
func (r *PGRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, shared.ErrNotFound
	}
	return role, err
}

// GetRoleByID fetches a role by primary key.
func (r *PGRepository) GetRoleByID(ctx context.Context, id int64) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE id = $1`, id).Scan(&role.ID, &role.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Role{}, shared.ErrNotFound
	}
	return role, err
}

func (r *PGRepository) getPermissionByName(ctx context.Context, name string) (Permission, error) {
	var perm Permission
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM permissions WHERE name = $1`, name).Scan(&perm.ID, &perm.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Permission{}, shared.ErrNotFound
	}
	return perm, err
}
