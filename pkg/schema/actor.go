package schema

import "context"

// Actor identifies who performed a mutation. It is attribution only and
// carries no authorization meaning.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SystemActor is used when a request names no actor.
var SystemActor = Actor{ID: "system", Name: "System"}

type actorKey struct{}

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in ctx, or SystemActor.
func ActorFrom(ctx context.Context) Actor {
	if ctx != nil {
		if a, ok := ctx.Value(actorKey{}).(Actor); ok && a.ID != "" {
			if a.Name == "" {
				a.Name = a.ID
			}
			return a
		}
	}
	return SystemActor
}
