package rbac

import (
	"context"
	"fmt"
	"log/slog"
)

// Repository is the persistence surface the role/permission model needs.
type Repository interface {
	GetOrCreateRole(ctx context.Context, name string) (Role, error)
	GetOrCreatePermission(ctx context.Context, name string) (Permission, error)
	LinkRolePermission(ctx context.Context, roleID, permissionID int64) error
	RolePermissionNames(ctx context.Context, roleID int64) ([]string, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	GetRoleByID(ctx context.Context, id int64) (Role, error)
}

// Service resolves role grants against the static permission table.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Grants reports whether the role's attached permissions include name.
func (s *Service) Grants(ctx context.Context, roleID int64, permission string) (bool, error) {
	names, err := s.repo.RolePermissionNames(ctx, roleID)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == permission {
			return true, nil
		}
	}
	return false, nil
}

// RoleByName fetches a role by its unique name.
func (s *Service) RoleByName(ctx context.Context, name string) (Role, error) {
	return s.repo.GetRoleByName(ctx, name)
}

// RoleByID fetches a role by primary key.
func (s *Service) RoleByID(ctx context.Context, id int64) (Role, error) {
	return s.repo.GetRoleByID(ctx, id)
}

// Seed loads the static table and get-or-creates every role, permission,
// and association. Safe to run repeatedly and under concurrent processes:
// the repository absorbs unique-violation races by re-reading.
func (s *Service) Seed(ctx context.Context) error {
	table, err := LoadTable()
	if err != nil {
		return err
	}

	perms := make(map[string]Permission)
	for _, name := range AllPermissionNames(table) {
		perm, err := s.repo.GetOrCreatePermission(ctx, name)
		if err != nil {
			return fmt.Errorf("rbac: seed permission %q: %w", name, err)
		}
		perms[name] = perm
	}

	for _, roleName := range RoleNames() {
		role, err := s.repo.GetOrCreateRole(ctx, roleName)
		if err != nil {
			return fmt.Errorf("rbac: seed role %q: %w", roleName, err)
		}
		for _, permName := range table[roleName] {
			if err := s.repo.LinkRolePermission(ctx, role.ID, perms[permName].ID); err != nil {
				return fmt.Errorf("rbac: link %s to %s: %w", permName, roleName, err)
			}
		}
		if s.logger != nil {
			s.logger.Info("seeded role", slog.String("role", roleName), slog.Int("permissions", len(table[roleName])))
		}
	}
	return nil
}
