package backend

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvConfig is the environment-provided configuration surface. The signing
// key is loaded once at startup and shared read-only by every issuance and
// verification call.
type EnvConfig struct {
	SigningKey    string
	TokenLifetime time.Duration
	Issuer        string
	Audience      []string
	AuthScheme    string
	ContextKey    string
	HTTPAddr      string
	DatabaseDSN   string
}

var _ Config = (*EnvConfig)(nil)

// LoadConfig reads configuration from the environment, honoring a local .env
// file when present. JWT_SECRET is the only required value.
func LoadConfig() (*EnvConfig, error) {
	// missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &EnvConfig{
		SigningKey:    os.Getenv("JWT_SECRET"),
		TokenLifetime: 24 * time.Hour,
		Issuer:        getenv("JWT_ISSUER", "bendright"),
		AuthScheme:    "Bearer",
		ContextKey:    "actor",
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN:   getenv("DATABASE_DSN", "file:bendright.db?cache=shared&_pragma=foreign_keys(1)"),
	}

	if cfg.SigningKey == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if raw := os.Getenv("JWT_LIFETIME"); raw != "" {
		lifetime, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("JWT_LIFETIME must be a duration expression, e.g. 24h")
		}
		cfg.TokenLifetime = lifetime
	}

	if raw := os.Getenv("JWT_AUDIENCE"); raw != "" {
		for _, aud := range strings.Split(raw, ",") {
			if aud = strings.TrimSpace(aud); aud != "" {
				cfg.Audience = append(cfg.Audience, aud)
			}
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetTokenLifetime() time.Duration {
	return c.TokenLifetime
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}

func (c *EnvConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c *EnvConfig) GetContextKey() string {
	return c.ContextKey
}
