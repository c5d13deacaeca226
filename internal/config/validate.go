package config

import (
	"fmt"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	insecureDefaultSecret = "change-me-in-production-this-is-not-secure"
	minSecretLength       = 32
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minSecretLength {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", minSecretLength, len(c.Auth.JWTSecret))
	}
	if c.IsProduction() && c.Auth.JWTSecret == insecureDefaultSecret {
		return fmt.Errorf("auth.jwt_secret must be set in production")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL)
	}

	switch strings.ToLower(c.Database.Driver) {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be %q or %q (got %q)", DriverPostgres, DriverMemory, c.Database.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range (got %d)", c.Server.HTTPPort)
	}
	if c.Server.GRPCEnabled && (c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535) {
		return fmt.Errorf("server.grpc_port out of range (got %d)", c.Server.GRPCPort)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return fmt.Errorf("rate_limit.requests must be > 0 (got %d)", c.RateLimit.Requests)
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate_limit.window must be > 0 (got %s)", c.RateLimit.Window)
		}
	}

	return nil
}
