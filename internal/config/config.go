// Package config handles application configuration.
// Values come from an optional YAML file, then environment variables, then the
// env-default tags.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Environment string          `yaml:"environment" env:"ENVIRONMENT" env-default:"dev"` // "dev", "staging", "prod"
	Server      ServerConfig    `yaml:"server"`
	Database    DatabaseConfig  `yaml:"database"`
	Auth        AuthConfig      `yaml:"auth"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Log         LogConfig       `yaml:"log"`
	Events      EventsConfig    `yaml:"events"`
}

// ServerConfig holds the HTTP and gRPC listener settings.
type ServerConfig struct {
	HTTPPort        int           `yaml:"http_port"        env:"HTTP_PORT"               env-default:"8080"`
	GRPCPort        int           `yaml:"grpc_port"        env:"GRPC_PORT"               env-default:"9090"`
	GRPCEnabled     bool          `yaml:"grpc_enabled"     env:"GRPC_ENABLED"            env-default:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// DatabaseConfig selects and tunes the storage backend.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"` // "postgres" or "memory"
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"JWT_SECRET_KEY"   env-default:"change-me-in-production-this-is-not-secure"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"JWT_ISSUER"       env-default:"quill"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	BcryptCost     int           `yaml:"bcrypt_cost"      env:"BCRYPT_COST"      env-default:"12"`
}

// RateLimitConfig throttles the unauthenticated endpoints.
type RateLimitConfig struct {
	Enabled       bool          `yaml:"enabled"        env:"RATE_LIMIT_ENABLED"        env-default:"true"`
	Requests      int           `yaml:"requests"       env:"RATE_LIMIT_REQUESTS"       env-default:"20"`
	Window        time.Duration `yaml:"window"         env:"RATE_LIMIT_WINDOW"         env-default:"1m"`
	RedisAddr     string        `yaml:"redis_addr"     env:"RATE_LIMIT_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"RATE_LIMIT_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"RATE_LIMIT_REDIS_DB"       env-default:"0"`
}

// EventsConfig toggles domain event publishing.
type EventsConfig struct {
	Enabled bool `yaml:"enabled" env:"EVENTS_ENABLED" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"` // "json" or "text"
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "sandbox"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}
