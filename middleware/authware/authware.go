// Package authware is the per-request authentication gate. It extracts the
// bearer token, validates it, resolves the subject to a live actor, and
// either attaches the actor to the request or rejects it with a structured
// 401 before any handler runs. Every failure is terminal for the request and
// none escalates past the gate.
package authware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrMissingToken signals that the request carried no bearer credential
var ErrMissingToken = errors.New("missing bearer token")

// TokenValidator mirrors the auth package's TokenService.Validate without
// importing it, avoiding a cycle.
type TokenValidator interface {
	Validate(tokenString string) (Claims, error)
}

// Claims is the subset of verified token claims the gate needs
type Claims interface {
	Subject() string
	UserID() string
	DisplayName() string
}

// ActorResolver maps verified claims onto a live actor. Returning an error
// rejects the request; a token whose subject no longer exists is untrusted
// no matter how valid its signature is.
type ActorResolver func(ctx context.Context, claims Claims) (any, error)

type Config struct {
	// Validator is required and performs signature/expiry verification
	Validator TokenValidator

	// ResolveActor confirms the subject still exists and builds the
	// per-request actor. When nil the raw claims are attached instead.
	ResolveActor ActorResolver

	// Optional lets requests without a bearer credential pass through
	// unauthenticated; a present-but-invalid token is still rejected.
	Optional bool

	// ContextKey is the locals key the actor is stored under, "actor" by default
	ContextKey string

	// AuthScheme is the Authorization scheme, "Bearer" by default
	AuthScheme string

	// ErrorHandler renders rejections; defaults to a structured 401 payload
	ErrorHandler func(c *fiber.Ctx, err error) error

	// ContextEnricher propagates the actor into the request's standard
	// context so non-HTTP layers receive it as an explicit parameter.
	ContextEnricher func(ctx context.Context, actor any) context.Context
}

// New builds the gate middleware. The gate holds no cross-request state;
// evaluating it twice on the same request yields the same decision.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		raw, err := TokenFromHeader(c.Get(fiber.HeaderAuthorization), cfg.AuthScheme)
		if err != nil {
			if cfg.Optional {
				return c.Next()
			}
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		actor := any(claims)
		if cfg.ResolveActor != nil {
			actor, err = cfg.ResolveActor(c.UserContext(), claims)
			if err != nil {
				return cfg.ErrorHandler(c, err)
			}
		}

		c.Locals(cfg.ContextKey, actor)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), actor))
		}

		return c.Next()
	}
}

// TokenFromHeader pulls the raw token out of an Authorization header value.
// A missing header, a different scheme, or an empty credential all count as
// "no token": the caller decides whether that passes through or rejects.
func TokenFromHeader(header, scheme string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("AUTH: gate middleware configuration: Validator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "actor"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	message := "invalid or expired token"
	if errors.Is(err, ErrMissingToken) {
		message = "missing authorization token"
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
