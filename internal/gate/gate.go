package gate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/epic-events/epic-events/internal/shared"
)

// IdentityResolver resolves the invoking collaborator from the stored
// session token.
type IdentityResolver interface {
	Current(ctx context.Context) (*shared.Actor, error)
}

// PermissionChecker answers whether a role grants a named permission.
type PermissionChecker interface {
	Grants(ctx context.Context, roleID int64, permission string) (bool, error)
}

// Gate intercepts every command dispatch: authenticate, remap the command
// to the actor's role variant, authorize, then execute. Any failure stops
// the pipeline before the business operation runs.
type Gate struct {
	registry *Registry
	identity IdentityResolver
	roles    PermissionChecker
	logger   *slog.Logger
}

// New constructs a Gate over the given registry.
func New(registry *Registry, identity IdentityResolver, roles PermissionChecker, logger *slog.Logger) *Gate {
	return &Gate{registry: registry, identity: identity, roles: roles, logger: logger}
}

// Dispatch runs the named command through the full pipeline. The resolved
// actor is placed in the context handed to the command handler.
func (g *Gate) Dispatch(ctx context.Context, name string) error {
	cmd, err := g.registry.Lookup(name)
	if err != nil {
		return err
	}

	// login/logout/whoami proceed regardless of session state; they deal
	// with absent or expired sessions themselves.
	if cmd.Exempt {
		return cmd.Run(ctx)
	}

	actor, err := g.identity.Current(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAuthenticationRequired, err)
	}

	// Remap the generic command to the actor's role-specific variant
	// before the permission check runs against the concrete command.
	if len(cmd.Variants) > 0 {
		variant, ok := cmd.Variants[actor.RoleName]
		if !ok {
			return shared.ErrPermissionDenied
		}
		cmd, err = g.registry.Lookup(variant)
		if err != nil {
			return fmt.Errorf("gate: variant %q for %q: %w", variant, name, err)
		}
	}

	granted, err := g.roles.Grants(ctx, actor.RoleID, cmd.permission())
	if err != nil {
		return fmt.Errorf("gate: resolve grants: %w", err)
	}
	if !granted {
		if g.logger != nil {
			g.logger.Warn("permission denied",
				slog.String("command", cmd.Name),
				slog.String("role", actor.RoleName),
				slog.String("email", actor.Email))
		}
		return shared.ErrPermissionDenied
	}

	return cmd.Run(shared.ContextWithActor(ctx, actor))
}
