package gate

import (
	"context"

	"github.com/epic-events/epic-events/internal/shared"
)

// Command is a gate-visible command. Permission is the name checked
// against the role table; it defaults to Name. Variants maps a role name
// to the concrete command that role runs for this logical name, so a
// generic command like "update-event" dispatches to a role-specific
// handler without rewriting argument lists.
type Command struct {
	Name       string
	Permission string
	Exempt     bool
	Variants   map[string]string
	Run        func(ctx context.Context) error
}

// permission returns the name checked against the role grant table.
func (c *Command) permission() string {
	if c.Permission != "" {
		return c.Permission
	}
	return c.Name
}

// Registry holds every registered command keyed by concrete name.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command. Registering a duplicate name is a programming
// error and panics during startup wiring.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; exists {
		panic("gate: duplicate command " + cmd.Name)
	}
	r.commands[cmd.Name] = cmd
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, error) {
	cmd, ok := r.commands[name]
	if !ok {
		return nil, shared.ErrUnknownCommand
	}
	return cmd, nil
}

// Names returns all registered concrete command names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}
