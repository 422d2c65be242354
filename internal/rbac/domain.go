package rbac

// Role names form a fixed closed set, created once at initialization.
const (
	RoleSales      = "sales"
	RoleSupport    = "support"
	RoleManagement = "management"
)

// RoleNames lists every valid role name.
func RoleNames() []string {
	return []string{RoleSales, RoleSupport, RoleManagement}
}

// Role represents a named bundle of permissions.
type Role struct {
	ID   int64
	Name string
}

// Permission represents an atomic capability, e.g. "create-client".
type Permission struct {
	ID   int64
	Name string
}
