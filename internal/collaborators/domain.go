package collaborators

// Collaborator represents an employee account, the authenticated actor of
// every command.
type Collaborator struct {
	ID             int64
	EmployeeNumber int64
	Name           string
	Email          string
	RoleID         int64
	RoleName       string
	PasswordHash   string
}
