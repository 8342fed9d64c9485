package di

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-employee-cache/cache"
	"github.com/goliatone/go-employee-cache/employee"
	"github.com/goliatone/go-employee-cache/storage"
)

// Config aggregates the cache and storage configuration for a container.
type Config struct {
	Cache   cache.Config
	Storage storage.Config
}

// DefaultConfig returns the default wiring: in-memory SQLite record store
// and in-process cache with the 60s idle-reset TTL policy.
func DefaultConfig() Config {
	return Config{
		Cache:   cache.DefaultConfig(),
		Storage: storage.DefaultConfig(),
	}
}

// ConfigFromEnv loads both configurations from environment variables.
func ConfigFromEnv() (Config, error) {
	cacheCfg, err := cache.FromEnv()
	if err != nil {
		return Config{}, err
	}
	storageCfg, err := storage.FromEnv()
	if err != nil {
		return Config{}, err
	}
	return Config{Cache: cacheCfg, Storage: storageCfg}, nil
}

// Container wires the cache store, record store and services together.
// It manages singleton instances; create one per process.
type Container struct {
	db      *bun.DB
	store   cache.Store
	keys    cache.Keys
	service *employee.Service
	salary  *employee.SalaryService
}

// NewContainer opens the record store, applies the schema, builds the
// configured cache store and wires the services. A nil logger falls back to
// slog.Default().
func NewContainer(ctx context.Context, cfg Config, log *slog.Logger) (*Container, error) {
	db, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	if err := storage.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		db.Close()
		return nil, err
	}

	runner := storage.NewRunner(db)
	employees := storage.NewEmployeeRepo(db)
	accounts := storage.NewSalaryAccountRepo(db)

	salary := employee.NewSalaryService(accounts, runner, log)
	service := employee.NewService(employees, salary, runner, store, cfg.Cache.Keys(), log)

	return &Container{
		db:      db,
		store:   store,
		keys:    cfg.Cache.Keys(),
		service: service,
		salary:  salary,
	}, nil
}

// EmployeeService returns the singleton employee service.
func (c *Container) EmployeeService() *employee.Service {
	return c.service
}

// SalaryService returns the singleton salary account service.
func (c *Container) SalaryService() *employee.SalaryService {
	return c.salary
}

// CacheStore exposes the underlying cache store for advanced use cases.
func (c *Container) CacheStore() cache.Store {
	return c.store
}

// Keys returns the key builder the services cache snapshots under.
func (c *Container) Keys() cache.Keys {
	return c.keys
}

// DB exposes the underlying bun handle, mainly for tests and migrations.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Close releases the database handle and, when the cache backend holds
// connections of its own, the cache store.
func (c *Container) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		closer.Close()
	}
	return c.db.Close()
}
