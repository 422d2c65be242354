package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-events/internal/shared"
)

type mockRepository struct {
	roles       map[string]Role
	permissions map[string]Permission
	links       map[int64]map[int64]struct{}
	nextRoleID  int64
	nextPermID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		roles:       make(map[string]Role),
		permissions: make(map[string]Permission),
		links:       make(map[int64]map[int64]struct{}),
	}
}

func (m *mockRepository) GetOrCreateRole(_ context.Context, name string) (Role, error) {
	if role, ok := m.roles[name]; ok {
		return role, nil
	}
	m.nextRoleID++
	role := Role{ID: m.nextRoleID, Name: name}
	m.roles[name] = role
	return role, nil
}

func (m *mockRepository) GetOrCreatePermission(_ context.Context, name string) (Permission, error) {
	if perm, ok := m.permissions[name]; ok {
		return perm, nil
	}
	m.nextPermID++
	perm := Permission{ID: m.nextPermID, Name: name}
	m.permissions[name] = perm
	return perm, nil
}

func (m *mockRepository) LinkRolePermission(_ context.Context, roleID, permissionID int64) error {
	if m.links[roleID] == nil {
		m.links[roleID] = make(map[int64]struct{})
	}
	m.links[roleID][permissionID] = struct{}{}
	return nil
}

func (m *mockRepository) RolePermissionNames(_ context.Context, roleID int64) ([]string, error) {
	var names []string
	for permID := range m.links[roleID] {
		for _, perm := range m.permissions {
			if perm.ID == permID {
				names = append(names, perm.Name)
			}
		}
	}
	return names, nil
}

func (m *mockRepository) GetRoleByName(_ context.Context, name string) (Role, error) {
	role, ok := m.roles[name]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return role, nil
}

func (m *mockRepository) GetRoleByID(_ context.Context, id int64) (Role, error) {
	for _, role := range m.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return Role{}, shared.ErrNotFound
}

func TestLoadTableCoversEveryRole(t *testing.T) {
	table, err := LoadTable()
	require.NoError(t, err)

	assert.Len(t, table, 3)
	for _, name := range RoleNames() {
		assert.NotEmpty(t, table[name], "role %s has no permissions", name)
	}
}

func TestTableGrantMatrix(t *testing.T) {
	table, err := LoadTable()
	require.NoError(t, err)

	has := func(role, perm string) bool {
		for _, p := range table[role] {
			if p == perm {
				return true
			}
		}
		return false
	}

	// Writes on clients belong to sales only.
	assert.True(t, has("sales", "create-client"))
	assert.True(t, has("sales", "update-client"))
	assert.True(t, has("sales", "delete-client"))
	assert.False(t, has("support", "create-client"))
	assert.False(t, has("management", "create-client"))

	// Contract writes belong to management only.
	assert.True(t, has("management", "create-contract"))
	assert.True(t, has("management", "update-contract"))
	assert.True(t, has("management", "delete-contract"))
	assert.False(t, has("sales", "update-contract"))
	assert.False(t, has("support", "update-contract"))

	// Event creation is sales; event updates are support and management.
	assert.True(t, has("sales", "create-event"))
	assert.False(t, has("support", "create-event"))
	assert.True(t, has("support", "update-event"))
	assert.True(t, has("management", "update-event"))
	assert.False(t, has("sales", "update-event"))
	assert.True(t, has("management", "delete-event"))
	assert.False(t, has("support", "delete-event"))

	// Collaborator administration is management only.
	assert.True(t, has("management", "create-collaborator"))
	assert.True(t, has("management", "update-collaborator"))
	assert.True(t, has("management", "delete-collaborator"))
	assert.False(t, has("sales", "create-collaborator"))
	assert.False(t, has("support", "delete-collaborator"))

	// Everybody can read the shared directories.
	for _, role := range RoleNames() {
		assert.True(t, has(role, "list-clients"), role)
		assert.True(t, has(role, "list-contracts"), role)
		assert.True(t, has(role, "list-events"), role)
		assert.True(t, has(role, "list-collaborators"), role)
	}

	// Filtered contract listings are a sales tool.
	assert.True(t, has("sales", "list-unpaid-contracts"))
	assert.True(t, has("sales", "list-unsigned-contracts"))
	assert.False(t, has("management", "list-unpaid-contracts"))
	assert.False(t, has("support", "list-unsigned-contracts"))
}

func TestAllPermissionNamesDeduplicates(t *testing.T) {
	table := map[string][]string{
		"sales":   {"list-clients", "create-client"},
		"support": {"list-clients", "update-event"},
	}

	names := AllPermissionNames(table)
	assert.Equal(t, []string{"create-client", "list-clients", "update-event"}, names)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	rolesAfterFirst := len(repo.roles)
	permsAfterFirst := len(repo.permissions)

	require.NoError(t, svc.Seed(ctx))
	assert.Equal(t, rolesAfterFirst, len(repo.roles))
	assert.Equal(t, permsAfterFirst, len(repo.permissions))
}

func TestGrantsAfterSeed(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	sales, err := svc.RoleByName(ctx, "sales")
	require.NoError(t, err)
	support, err := svc.RoleByName(ctx, "support")
	require.NoError(t, err)

	ok, err := svc.Grants(ctx, sales.ID, "create-client")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Grants(ctx, sales.ID, "update-event")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Grants(ctx, support.ID, "update-event")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Grants(ctx, support.ID, "no-such-permission")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleByIDRoundTrip(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	byName, err := svc.RoleByName(ctx, "management")
	require.NoError(t, err)

	byID, err := svc.RoleByID(ctx, byName.ID)
	require.NoError(t, err)
	assert.Equal(t, byName, byID)

	_, err = svc.RoleByID(ctx, 9999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
