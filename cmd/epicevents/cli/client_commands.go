package cli

import (
	"context"
	"fmt"

	"github.com/epic-events/epic-events/internal/clients"
	"github.com/epic-events/epic-events/internal/gate"
	"github.com/epic-events/epic-events/internal/shared"
)

func (a *App) registerClientCommands(registry *gate.Registry, args []string) {
	registry.Register(&gate.Command{
		Name: "create-client",
		Run: func(ctx context.Context) error {
			return a.runCreateClient(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "update-client",
		Run: func(ctx context.Context) error {
			return a.runUpdateClient(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "delete-client",
		Run: func(ctx context.Context) error {
			return a.runDeleteClient(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "list-clients",
		Run: func(ctx context.Context) error {
			return a.runListClients(ctx)
		},
	})
}

func (a *App) runCreateClient(ctx context.Context, args []string) error {
	fs := newFlagSet("create-client")
	fullName := fs.String("full-name", "", "client contact full name")
	email := fs.String("email", "", "client contact email")
	phone := fs.String("phone", "", "client contact phone number")
	companyName := fs.String("company-name", "", "client company name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.deps.Clients.Create(ctx, shared.ActorFromContext(ctx), clients.CreateInput{
		FullName:    *fullName,
		Email:       *email,
		Phone:       *phone,
		CompanyName: *companyName,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Client %d created.\n", client.ID)
	return nil
}

func (a *App) runUpdateClient(ctx context.Context, args []string) error {
	fs := newFlagSet("update-client")
	id := fs.Int64("id", 0, "client id")
	fullName := fs.String("full-name", "", "new contact full name")
	email := fs.String("email", "", "new contact email")
	phone := fs.String("phone", "", "new contact phone number")
	companyName := fs.String("company-name", "", "new company name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.deps.Clients.Update(ctx, shared.ActorFromContext(ctx), clients.UpdateInput{
		ID:          *id,
		FullName:    optionalString(fs, "full-name", fullName),
		Email:       optionalString(fs, "email", email),
		Phone:       optionalString(fs, "phone", phone),
		CompanyName: optionalString(fs, "company-name", companyName),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Client %d updated.\n", client.ID)
	return nil
}

func (a *App) runDeleteClient(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-client")
	id := fs.Int64("id", 0, "client id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.deps.Clients.Delete(ctx, shared.ActorFromContext(ctx), *id); err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Client %d deleted.\n", *id)
	return nil
}

func (a *App) runListClients(ctx context.Context) error {
	list, err := a.deps.Clients.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		owner := "-"
		if c.CommercialCollaboratorID != nil {
			owner = fmt.Sprintf("%d", *c.CommercialCollaboratorID)
		}
		fmt.Fprintf(a.deps.Stdout, "%d\t%s\t%s\t%s\t%s\tcommercial:%s\n", c.ID, c.FullName, c.Email, c.Phone, c.CompanyName, owner)
	}
	return nil
}
