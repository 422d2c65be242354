package rbac

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// permissionTable is the deployment-level role → permission map. It is not
// user-editable at runtime; changing it means redeploying.
const permissionTable = `
sales:
  - create-client
  - list-clients
  - update-client
  - delete-client
  - list-contracts
  - create-event
  - list-collaborators
  - list-unpaid-contracts
  - list-unsigned-contracts
  - list-events
support:
  - list-collaborators
  - list-contracts
  - list-clients
  - list-events
  - update-event
management:
  - create-contract
  - create-collaborator
  - delete-collaborator
  - list-collaborators
  - update-collaborator
  - list-contracts
  - list-clients
  - list-events
  - update-contract
  - delete-contract
  - update-event
  - delete-event
`

// LoadTable parses the static permission table. Roles outside the fixed
// set are a configuration bug and rejected outright.
func LoadTable() (map[string][]string, error) {
	var table map[string][]string
	if err := yaml.Unmarshal([]byte(permissionTable), &table); err != nil {
		return nil, fmt.Errorf("rbac: parse permission table: %w", err)
	}
	valid := make(map[string]struct{}, len(RoleNames()))
	for _, name := range RoleNames() {
		valid[name] = struct{}{}
	}
	for role := range table {
		if _, ok := valid[role]; !ok {
			return nil, fmt.Errorf("rbac: permission table names unknown role %q", role)
		}
	}
	for _, name := range RoleNames() {
		if len(table[name]) == 0 {
			return nil, fmt.Errorf("rbac: permission table missing role %q", name)
		}
	}
	return table, nil
}

// AllPermissionNames returns the deduplicated, sorted set of permission
// names across every role in the static table.
func AllPermissionNames(table map[string][]string) []string {
	seen := make(map[string]struct{})
	for _, perms := range table {
		for _, p := range perms {
			seen[p] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for p := range seen {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}
