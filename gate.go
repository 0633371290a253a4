package backend

import (
	"context"
	"errors"
	"strconv"

	"github.com/bendright/backend/middleware/authware"
	"github.com/bendright/backend/store"
	"github.com/gofiber/fiber/v2"
)

// tokenValidatorAdapter bridges TokenService into the gate's local interface.
type tokenValidatorAdapter struct {
	ts TokenService
}

func (a tokenValidatorAdapter) Validate(tokenString string) (authware.Claims, error) {
	claims, err := a.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// NewActorResolver confirms a verified token's subject still exists and
// builds the per-request Actor. A subject id that does not parse or no
// longer resolves yields ErrSubjectNotFound and the request is rejected.
func NewActorResolver(users store.Users) authware.ActorResolver {
	return func(ctx context.Context, claims authware.Claims) (any, error) {
		id, err := strconv.ParseInt(claims.UserID(), 10, 64)
		if err != nil {
			return nil, ErrSubjectNotFound
		}

		user, err := users.ByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}

		return &Actor{
			UserID:      user.ID,
			DisplayName: user.Name,
			Email:       user.Email,
			Roles:       []string{RoleUser},
		}, nil
	}
}

// ProtectedRoute returns the gate middleware for routes that require an
// authenticated identity.
func ProtectedRoute(cfg Config, ts TokenService, users store.Users) fiber.Handler {
	return authware.New(authware.Config{
		Validator:    tokenValidatorAdapter{ts: ts},
		ResolveActor: NewActorResolver(users),
		ContextKey:   cfg.GetContextKey(),
		AuthScheme:   cfg.GetAuthScheme(),
		ContextEnricher: func(ctx context.Context, actor any) context.Context {
			if a, ok := actor.(*Actor); ok {
				return WithActor(ctx, a)
			}
			return ctx
		},
	})
}

// OptionalRoute returns the gate in pass-through mode: requests without a
// bearer credential proceed unauthenticated, everything else behaves like
// ProtectedRoute.
func OptionalRoute(cfg Config, ts TokenService, users store.Users) fiber.Handler {
	return authware.New(authware.Config{
		Validator:    tokenValidatorAdapter{ts: ts},
		ResolveActor: NewActorResolver(users),
		Optional:     true,
		ContextKey:   cfg.GetContextKey(),
		AuthScheme:   cfg.GetAuthScheme(),
		ContextEnricher: func(ctx context.Context, actor any) context.Context {
			if a, ok := actor.(*Actor); ok {
				return WithActor(ctx, a)
			}
			return ctx
		},
	})
}
