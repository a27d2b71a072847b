package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=24h"`
	ExposeErrors bool          `env:"EXPOSE_ERRORS, default=false"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`
	StoreDriver  string        `env:"STORE_DRIVER,  default=postgres"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Seed     SeedConfig
}

type PostgresConfig struct {
	DSN          string `env:"DATABASE_URL"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
	AutoMigrate  bool   `env:"DB_AUTO_MIGRATE,   default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=commerce"`
}

// RedisConfig configures the failed-login throttle. An empty Addr disables it.
type RedisConfig struct {
	Addr             string        `env:"REDIS_ADDR"`
	DB               int           `env:"REDIS_DB,              default=0"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS,    default=5"`
	LoginWindow      time.Duration `env:"LOGIN_THROTTLE_WINDOW, default=15m"`
}

type SeedConfig struct {
	SuperAdminUsername string `env:"SEED_SUPER_ADMIN_USERNAME"`
	SuperAdminPassword string `env:"SEED_SUPER_ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig
// and validates it. The server must not start on a validation error.
func Load() (*Config, error) {
	return load(envconfig.OsLookuper())
}

func load(lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem that would make the process unsafe or
// unable to serve.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	switch c.StoreDriver {
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required for the mongo store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMongo, c.StoreDriver))
	}

	if c.Redis.Addr != "" && (c.Redis.LoginMaxAttempts <= 0 || c.Redis.LoginWindow <= 0) {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS and LOGIN_THROTTLE_WINDOW must be positive"))
	}
	if (c.Seed.SuperAdminUsername == "") != (c.Seed.SuperAdminPassword == "") {
		errs = append(errs, errors.New("SEED_SUPER_ADMIN_USERNAME and SEED_SUPER_ADMIN_PASSWORD must be set together"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the process runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
