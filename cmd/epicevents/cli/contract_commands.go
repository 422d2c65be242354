package cli

import (
	"context"
	"fmt"

	"github.com/epic-events/epic-events/internal/contracts"
	"github.com/epic-events/epic-events/internal/gate"
)

func (a *App) registerContractCommands(registry *gate.Registry, args []string) {
	registry.Register(&gate.Command{
		Name: "create-contract",
		Run: func(ctx context.Context) error {
			return a.runCreateContract(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "update-contract",
		Run: func(ctx context.Context) error {
			return a.runUpdateContract(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "delete-contract",
		Run: func(ctx context.Context) error {
			return a.runDeleteContract(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "list-contracts",
		Run: func(ctx context.Context) error {
			return a.runListContracts(ctx, contracts.ListFilter{})
		},
	})
	registry.Register(&gate.Command{
		Name: "list-unpaid-contracts",
		Run: func(ctx context.Context) error {
			return a.runListContracts(ctx, contracts.ListFilter{Unpaid: true})
		},
	})
	registry.Register(&gate.Command{
		Name: "list-unsigned-contracts",
		Run: func(ctx context.Context) error {
			return a.runListContracts(ctx, contracts.ListFilter{Unsigned: true})
		},
	})
}

func (a *App) runCreateContract(ctx context.Context, args []string) error {
	fs := newFlagSet("create-contract")
	clientID := fs.Int64("client-id", 0, "client id")
	commercialID := fs.Int64("commercial-id", 0, "sales collaborator id")
	totalAmount := fs.Float64("total-amount", 0, "total contract amount")
	amountDue := fs.Float64("amount-due", 0, "amount still due")
	signed := fs.Bool("signed", false, "whether the contract is signed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	contract, err := a.deps.Contracts.Create(ctx, contracts.CreateInput{
		ClientID:     *clientID,
		CommercialID: *commercialID,
		TotalAmount:  *totalAmount,
		AmountDue:    *amountDue,
		Signed:       *signed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Contract %d created.\n", contract.ID)
	return nil
}

func (a *App) runUpdateContract(ctx context.Context, args []string) error {
	fs := newFlagSet("update-contract")
	id := fs.Int64("id", 0, "contract id")
	commercialID := fs.Int64("commercial-id", 0, "new sales collaborator id")
	totalAmount := fs.Float64("total-amount", 0, "new total amount")
	amountDue := fs.Float64("amount-due", 0, "new amount due")
	signed := fs.Bool("signed", false, "new signed status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	contract, err := a.deps.Contracts.Update(ctx, contracts.UpdateInput{
		ID:           *id,
		CommercialID: optionalInt64(fs, "commercial-id", commercialID),
		TotalAmount:  optionalFloat(fs, "total-amount", totalAmount),
		AmountDue:    optionalFloat(fs, "amount-due", amountDue),
		Signed:       optionalBool(fs, "signed", signed),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Contract %d updated.\n", contract.ID)
	return nil
}

func (a *App) runDeleteContract(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-contract")
	id := fs.Int64("id", 0, "contract id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.deps.Contracts.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Contract %d deleted.\n", *id)
	return nil
}

func (a *App) runListContracts(ctx context.Context, filter contracts.ListFilter) error {
	list, err := a.deps.Contracts.List(ctx, filter)
	if err != nil {
		return err
	}
	for _, c := range list {
		status := "unsigned"
		if c.Signed {
			status = "signed"
		}
		fmt.Fprintf(a.deps.Stdout, "%d\tclient:%d\ttotal:%.2f\tdue:%.2f\t%s\n", c.ID, c.ClientID, c.TotalAmount, c.AmountDue, status)
	}
	return nil
}
