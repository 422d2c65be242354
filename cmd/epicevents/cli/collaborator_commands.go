package cli

import (
	"context"
	"fmt"

	"github.com/epic-events/epic-events/internal/collaborators"
	"github.com/epic-events/epic-events/internal/gate"
)

func (a *App) registerCollaboratorCommands(registry *gate.Registry, args []string) {
	registry.Register(&gate.Command{
		Name: "create-collaborator",
		Run: func(ctx context.Context) error {
			return a.runCreateCollaborator(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "update-collaborator",
		Run: func(ctx context.Context) error {
			return a.runUpdateCollaborator(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "delete-collaborator",
		Run: func(ctx context.Context) error {
			return a.runDeleteCollaborator(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "list-collaborators",
		Run: func(ctx context.Context) error {
			return a.runListCollaborators(ctx)
		},
	})
}

func (a *App) runCreateCollaborator(ctx context.Context, args []string) error {
	fs := newFlagSet("create-collaborator")
	employeeNumber := fs.Int64("employee-number", 0, "unique employee number")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "unique email")
	roleID := fs.Int64("role-id", 0, "role id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	password, err := a.promptNewPassword()
	if err != nil {
		return err
	}

	collaborator, err := a.deps.Collaborators.Create(ctx, collaborators.CreateInput{
		EmployeeNumber: *employeeNumber,
		Name:           *name,
		Email:          *email,
		RoleID:         *roleID,
		Password:       password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Collaborator %d created.\n", collaborator.EmployeeNumber)
	return nil
}

func (a *App) runUpdateCollaborator(ctx context.Context, args []string) error {
	fs := newFlagSet("update-collaborator")
	employeeNumber := fs.Int64("employee-number", 0, "employee number of the collaborator to update")
	name := fs.String("name", "", "new full name")
	email := fs.String("email", "", "new email")
	roleID := fs.Int64("role-id", 0, "new role id")
	changePassword := fs.Bool("password", false, "prompt for a new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := collaborators.UpdateInput{
		EmployeeNumber: *employeeNumber,
		Name:           optionalString(fs, "name", name),
		Email:          optionalString(fs, "email", email),
		RoleID:         optionalInt64(fs, "role-id", roleID),
	}
	if *changePassword {
		password, err := a.promptNewPassword()
		if err != nil {
			return err
		}
		in.Password = &password
	}

	collaborator, err := a.deps.Collaborators.Update(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Collaborator %d updated.\n", collaborator.EmployeeNumber)
	return nil
}

func (a *App) runDeleteCollaborator(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-collaborator")
	employeeNumber := fs.Int64("employee-number", 0, "employee number of the collaborator to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.deps.Collaborators.Delete(ctx, *employeeNumber); err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Collaborator %d deleted.\n", *employeeNumber)
	return nil
}

func (a *App) runListCollaborators(ctx context.Context) error {
	list, err := a.deps.Collaborators.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		fmt.Fprintf(a.deps.Stdout, "%d\t%s\t%s\t%s\n", c.EmployeeNumber, c.Name, c.Email, c.RoleName)
	}
	return nil
}
