package storage

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database driver and connection string for the record
// store.
type Config struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DB_DSN" envDefault:"file::memory:?cache=shared"`

	// MaxOpenConns caps the connection pool. Zero keeps the driver default,
	// except for SQLite where the pool is pinned to a single connection so
	// write transactions serialize instead of failing with SQLITE_BUSY.
	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"0"`
}

// DefaultConfig returns a Config for an in-memory SQLite store.
func DefaultConfig() Config {
	return Config{
		Driver: DriverSQLite,
		DSN:    "file::memory:?cache=shared",
	}
}

// FromEnv loads a Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse storage env: %w", err)
	}
	return cfg, nil
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("storage config: driver must be sqlite or postgres, got %q", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("storage config: dsn must not be empty")
	}
	if c.MaxOpenConns < 0 {
		return fmt.Errorf("storage config: max open conns must be non-negative")
	}
	return nil
}
