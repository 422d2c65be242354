package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/epic-events/epic-events/internal/gate"
	"github.com/epic-events/epic-events/internal/migrate"
	"github.com/epic-events/epic-events/internal/shared"
)

func (a *App) registerSessionCommands(registry *gate.Registry, args []string) {
	registry.Register(&gate.Command{
		Name:   "login",
		Exempt: true,
		Run: func(ctx context.Context) error {
			return a.runLogin(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name:   "logout",
		Exempt: true,
		Run: func(ctx context.Context) error {
			if err := a.deps.Store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.deps.Stdout, "Logged out.")
			return nil
		},
	})
	registry.Register(&gate.Command{
		Name:   "whoami",
		Exempt: true,
		Run: func(ctx context.Context) error {
			return a.runWhoami(ctx)
		},
	})
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "collaborator email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		value, err := a.promptLine("Email")
		if err != nil {
			return err
		}
		*email = value
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return err
	}

	collaborator, err := a.deps.Collaborators.Authenticate(ctx, *email, password)
	if err != nil {
		return err
	}
	// Issuing persists the token; a previous session is overwritten.
	if _, err := a.deps.Codec.Issue(collaborator.Email, collaborator.RoleID); err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Logged in as %s (%s).\n", collaborator.Email, collaborator.RoleName)
	return nil
}

// runWhoami reports the current session without requiring one: an absent
// or expired session is an answer, not an error.
func (a *App) runWhoami(ctx context.Context) error {
	actor, err := a.deps.Identity.Current(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(a.deps.Stdout, "%s (%s), employee number %d\n", actor.Email, actor.RoleName, actor.EmployeeNumber)
		return nil
	case errors.Is(err, shared.ErrNoSession):
		fmt.Fprintln(a.deps.Stdout, "Not logged in.")
		return nil
	case errors.Is(err, shared.ErrExpiredToken):
		fmt.Fprintln(a.deps.Stdout, "Session expired; log in again.")
		return nil
	case errors.Is(err, shared.ErrInvalidToken):
		fmt.Fprintln(a.deps.Stdout, "Session invalid; log in again.")
		return nil
	default:
		return err
	}
}

// runInitDB creates the schema and seeds roles and permissions from the
// static table. Idempotent.
func (a *App) runInitDB(ctx context.Context) error {
	if err := migrate.Apply(ctx, a.deps.Pool); err != nil {
		return err
	}
	if err := a.deps.RBAC.Seed(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.deps.Stdout, "Database initialized.")
	return nil
}
