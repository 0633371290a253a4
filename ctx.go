package backend

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Actor is the per-request authenticated identity. It is built by the auth
// gate after the token subject has been resolved against the store, passed as
// an explicit context value, and never persisted.
type Actor struct {
	UserID      int64    `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

// HasRole reports whether the actor carries the given role.
func (a *Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var actorCtxKey = &contextKey{"actor"}

type contextKey struct {
	name string
}

// WithActor sets the Actor in the given context
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// ActorFromContext finds the actor from the context.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	raw, ok := ctx.Value(actorCtxKey).(*Actor)
	return raw, ok
}

// ActorFromFiber extracts the actor the gate stored in the request locals.
func ActorFromFiber(c *fiber.Ctx, key string) (*Actor, bool) {
	if key == "" {
		key = "actor"
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	actor, ok := raw.(*Actor)
	return actor, ok
}
