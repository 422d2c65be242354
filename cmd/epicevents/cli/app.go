// Package cli wires the command registry, flag parsing, and interactive
// prompts for the epicevents binary.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic-events/epic-events/internal/clients"
	"github.com/epic-events/epic-events/internal/collaborators"
	"github.com/epic-events/epic-events/internal/contracts"
	"github.com/epic-events/epic-events/internal/events"
	"github.com/epic-events/epic-events/internal/gate"
	"github.com/epic-events/epic-events/internal/identity"
	"github.com/epic-events/epic-events/internal/rbac"
	"github.com/epic-events/epic-events/internal/session"
	"github.com/epic-events/epic-events/internal/shared"
	"github.com/epic-events/epic-events/internal/token"
)

// Exit codes. Validation failures are distinguishable from authorization
// failures so scripts can react to each.
const (
	ExitOK         = 0
	ExitDenied     = 1
	ExitValidation = 2
)

// Deps carries everything the command surface needs.
type Deps struct {
	Logger        *slog.Logger
	Pool          *pgxpool.Pool
	Store         *session.Store
	Codec         *token.Codec
	Identity      *identity.Resolver
	RBAC          *rbac.Service
	Collaborators *collaborators.Service
	Clients       *clients.Service
	Contracts     *contracts.Service
	Events        *events.Service

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// App is the CLI front-end.
type App struct {
	deps Deps

	// stdin buffers operator input once for the whole invocation so
	// consecutive prompts never lose read-ahead to each other.
	stdin *bufio.Reader
}

// New constructs the App.
func New(deps Deps) *App {
	return &App{deps: deps, stdin: bufio.NewReader(deps.Stdin)}
}

// Run dispatches args[0] as a command through the authorization gate and
// maps the outcome to a process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return ExitDenied
	}

	registry := a.buildRegistry(args[1:])
	g := gate.New(registry, a.deps.Identity, a.deps.RBAC, a.deps.Logger)

	err := g.Dispatch(ctx, args[0])
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(a.deps.Stderr, "Error: %v\n", err)
	if errors.Is(err, shared.ErrUnknownCommand) {
		a.usage()
	}
	if shared.IsValidation(err) ||
		errors.Is(err, contracts.ErrAmountExceedsTotal) ||
		errors.Is(err, shared.ErrNotFound) ||
		errors.Is(err, shared.ErrOwnership) ||
		errors.Is(err, shared.ErrStateConflict) ||
		errors.Is(err, shared.ErrUniqueness) {
		return ExitValidation
	}
	return ExitDenied
}

// buildRegistry registers every command with the remaining argv bound
// into its closure. The registry is rebuilt per invocation; the process
// runs exactly one command and exits.
func (a *App) buildRegistry(args []string) *gate.Registry {
	registry := gate.NewRegistry()

	a.registerSessionCommands(registry, args)
	a.registerCollaboratorCommands(registry, args)
	a.registerClientCommands(registry, args)
	a.registerContractCommands(registry, args)
	a.registerEventCommands(registry, args)

	registry.Register(&gate.Command{
		Name:   "init-db",
		Exempt: true,
		Run: func(ctx context.Context) error {
			return a.runInitDB(ctx)
		},
	})

	return registry
}

func (a *App) usage() {
	names := []string{
		"login", "logout", "whoami", "init-db",
		"create-collaborator", "update-collaborator", "delete-collaborator", "list-collaborators",
		"create-client", "update-client", "delete-client", "list-clients",
		"create-contract", "update-contract", "delete-contract", "list-contracts",
		"list-unpaid-contracts", "list-unsigned-contracts",
		"create-event", "update-event", "delete-event", "list-events",
	}
	sort.Strings(names)
	fmt.Fprintln(a.deps.Stderr, "Usage: epicevents <command> [flags]")
	fmt.Fprintln(a.deps.Stderr, "Commands:")
	for _, n := range names {
		fmt.Fprintf(a.deps.Stderr, "  %s\n", n)
	}
}
