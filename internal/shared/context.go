package shared

import "context"

// Actor is the authenticated collaborator driving the current invocation.
type Actor struct {
	ID             int64
	EmployeeNumber int64
	Name           string
	Email          string
	RoleID         int64
	RoleName       string
}

// IsSales reports whether the actor holds the sales role.
func (a *Actor) IsSales() bool { return a != nil && a.RoleName == "sales" }

// IsSupport reports whether the actor holds the support role.
func (a *Actor) IsSupport() bool { return a != nil && a.RoleName == "support" }

// IsManagement reports whether the actor holds the management role.
func (a *Actor) IsManagement() bool { return a != nil && a.RoleName == "management" }

type actorContextKey struct{}

// ContextWithActor stores the authenticated actor in context.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor from context, if any.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorContextKey{}).(*Actor)
	return actor
}
