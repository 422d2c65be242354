package cli

import (
	"context"
	"fmt"

	"github.com/epic-events/epic-events/internal/events"
	"github.com/epic-events/epic-events/internal/gate"
	"github.com/epic-events/epic-events/internal/rbac"
	"github.com/epic-events/epic-events/internal/shared"
)

func (a *App) registerEventCommands(registry *gate.Registry, args []string) {
	registry.Register(&gate.Command{
		Name: "create-event",
		Run: func(ctx context.Context) error {
			return a.runCreateEvent(ctx, args)
		},
	})

	// update-event is polymorphic per role: the gate substitutes the
	// variant matching the actor's role, and both variants check the
	// generic update-event permission.
	registry.Register(&gate.Command{
		Name: "update-event",
		Variants: map[string]string{
			rbac.RoleSupport:    "update-event-support",
			rbac.RoleManagement: "update-event-management",
		},
	})
	registry.Register(&gate.Command{
		Name:       "update-event-support",
		Permission: "update-event",
		Run: func(ctx context.Context) error {
			return a.runUpdateEventSupport(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name:       "update-event-management",
		Permission: "update-event",
		Run: func(ctx context.Context) error {
			return a.runUpdateEventManagement(ctx, args)
		},
	})

	registry.Register(&gate.Command{
		Name: "delete-event",
		Run: func(ctx context.Context) error {
			return a.runDeleteEvent(ctx, args)
		},
	})
	registry.Register(&gate.Command{
		Name: "list-events",
		Run: func(ctx context.Context) error {
			return a.runListEvents(ctx, args)
		},
	})
}

func (a *App) runCreateEvent(ctx context.Context, args []string) error {
	fs := newFlagSet("create-event")
	contractID := fs.Int64("contract-id", 0, "signed contract id")
	description := fs.String("description", "", "event description")
	dateStart := fs.String("date-start", "", "start date (2006-01-02 15:04)")
	dateEnd := fs.String("date-end", "", "end date (2006-01-02 15:04)")
	supportID := fs.Int64("support-id", 0, "support collaborator id")
	location := fs.String("location", "", "event location")
	attendees := fs.Int("attendees", 0, "expected attendee count")
	notes := fs.String("notes", "", "free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parseTimeFlag(*dateStart)
	if err != nil {
		return shared.NewValidationError("date_start", err.Error())
	}
	end, err := parseTimeFlag(*dateEnd)
	if err != nil {
		return shared.NewValidationError("date_end", err.Error())
	}

	event, err := a.deps.Events.Create(ctx, events.CreateInput{
		ContractID:  *contractID,
		Description: *description,
		DateStart:   start,
		DateEnd:     end,
		SupportID:   optionalInt64(fs, "support-id", supportID),
		Location:    *location,
		Attendees:   *attendees,
		Notes:       optionalString(fs, "notes", notes),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Event %d created.\n", event.ID)
	return nil
}

func (a *App) runUpdateEventSupport(ctx context.Context, args []string) error {
	fs := newFlagSet("update-event")
	id := fs.Int64("id", 0, "event id")
	contractID := fs.Int64("contract-id", 0, "new contract id")
	description := fs.String("description", "", "new description")
	dateStart := fs.String("date-start", "", "new start date")
	dateEnd := fs.String("date-end", "", "new end date")
	location := fs.String("location", "", "new location")
	attendees := fs.Int("attendees", 0, "new attendee count")
	notes := fs.String("notes", "", "new notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	actor := shared.ActorFromContext(ctx)
	if !actor.IsSupport() {
		return shared.ErrPermissionDenied
	}

	start, err := optionalTime(fs, "date-start", dateStart)
	if err != nil {
		return shared.NewValidationError("date_start", err.Error())
	}
	end, err := optionalTime(fs, "date-end", dateEnd)
	if err != nil {
		return shared.NewValidationError("date_end", err.Error())
	}

	event, err := a.deps.Events.UpdateAsSupport(ctx, actor, events.SupportUpdateInput{
		ID:          *id,
		ContractID:  optionalInt64(fs, "contract-id", contractID),
		Description: optionalString(fs, "description", description),
		DateStart:   start,
		DateEnd:     end,
		Location:    optionalString(fs, "location", location),
		Attendees:   optionalInt(fs, "attendees", attendees),
		Notes:       optionalString(fs, "notes", notes),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Event %d updated.\n", event.ID)
	return nil
}

func (a *App) runUpdateEventManagement(ctx context.Context, args []string) error {
	fs := newFlagSet("update-event")
	id := fs.Int64("id", 0, "event id")
	supportID := fs.Int64("support-id", 0, "support collaborator to assign")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !shared.ActorFromContext(ctx).IsManagement() {
		return shared.ErrPermissionDenied
	}

	event, err := a.deps.Events.UpdateAsManagement(ctx, events.ManagementUpdateInput{
		ID:        *id,
		SupportID: *supportID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Event %d updated.\n", event.ID)
	return nil
}

func (a *App) runDeleteEvent(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-event")
	id := fs.Int64("id", 0, "event id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.deps.Events.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.deps.Stdout, "Event %d deleted.\n", *id)
	return nil
}

func (a *App) runListEvents(ctx context.Context, args []string) error {
	fs := newFlagSet("list-events")
	mine := fs.Bool("mine", false, "only events assigned to me")
	unassigned := fs.Bool("unassigned", false, "only events with no support assignee")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := events.ListFilter{Unassigned: *unassigned}
	if *mine {
		actor := shared.ActorFromContext(ctx)
		filter.SupportID = &actor.ID
	}

	list, err := a.deps.Events.List(ctx, filter)
	if err != nil {
		return err
	}
	for _, e := range list {
		assignee := "-"
		if e.SupportCollaboratorID != nil {
			assignee = fmt.Sprintf("%d", *e.SupportCollaboratorID)
		}
		fmt.Fprintf(a.deps.Stdout, "%d\tcontract:%d\t%s\t%s -> %s\t%s\tattendees:%d\tsupport:%s\n",
			e.ID, e.ContractID, e.Description,
			e.DateStart.Format("2006-01-02 15:04"), e.DateEnd.Format("2006-01-02 15:04"),
			e.Location, e.Attendees, assignee)
	}
	return nil
}
