package cache

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-employee-cache/internal/cacheinfra"
)

// Supported cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config exposes cache configuration options for consumers of the cache package.
// The zero value is not usable; start from DefaultConfig or FromEnv.
type Config struct {
	// Backend selects the cache store implementation: "memory" or "redis".
	Backend string `env:"CACHE_BACKEND" envDefault:"memory"`

	// Prefix namespaces every key this module writes. Useful when the
	// backing store is shared with other applications.
	Prefix string `env:"CACHE_PREFIX" envDefault:"emp"`

	// TTL is the time-to-live for cached snapshots, counted from the last
	// refresh when IdleReset is enabled.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// IdleReset restarts the TTL window on every successful read.
	IdleReset bool `env:"CACHE_IDLE_RESET" envDefault:"true"`

	// Memory backend tuning.
	Capacity           int           `env:"CACHE_CAPACITY" envDefault:"10000"`
	NumShards          int           `env:"CACHE_NUM_SHARDS" envDefault:"64"`
	EvictionPercentage int           `env:"CACHE_EVICTION_PERCENTAGE" envDefault:"10"`
	EvictionInterval   time.Duration `env:"CACHE_EVICTION_INTERVAL" envDefault:"0"`

	// Redis backend connection settings.
	RedisAddr        string        `env:"CACHE_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisMaxIdle     int           `env:"CACHE_REDIS_MAX_IDLE" envDefault:"3"`
	RedisIdleTimeout time.Duration `env:"CACHE_REDIS_IDLE_TIMEOUT" envDefault:"4m"`
}

// DefaultConfig returns a Config populated with the default entry policy:
// 60 second TTL with idle reset, in-process memory backend.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		Prefix:             "emp",
		TTL:                60 * time.Second,
		IdleReset:          true,
		Capacity:           10000,
		NumShards:          64,
		EvictionPercentage: 10,
		RedisAddr:          "127.0.0.1:6379",
		RedisMaxIdle:       3,
		RedisIdleTimeout:   4 * time.Minute,
	}
}

// FromEnv loads a Config from environment variables, falling back to the
// same defaults DefaultConfig uses.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cache env: %w", err)
	}
	return cfg, nil
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return c.toMemory().Validate()
	case BackendRedis:
		if c.RedisAddr == "" {
			return &cacheinfra.ConfigError{Field: "RedisAddr", Message: "must not be empty"}
		}
		if c.TTL <= 0 {
			return &cacheinfra.ConfigError{Field: "TTL", Message: "must be greater than 0"}
		}
		return nil
	default:
		return &cacheinfra.ConfigError{Field: "Backend", Message: "must be memory or redis"}
	}
}

// Keys returns the key builder matching this configuration's prefix.
func (c Config) Keys() Keys {
	return NewKeys(c.Prefix)
}

// NewStore constructs the cache store implementation selected by the
// configuration.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendMemory:
		return cacheinfra.NewMemoryStore(cfg.toMemory())
	case BackendRedis:
		pool := cacheinfra.NewRedisPool(cfg.RedisAddr, cfg.RedisMaxIdle, cfg.RedisIdleTimeout)
		return cacheinfra.NewRedisStore(pool, cfg.TTL, cfg.IdleReset), nil
	default:
		return nil, &cacheinfra.ConfigError{Field: "Backend", Message: "must be memory or redis"}
	}
}

func (c Config) toMemory() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
		IdleReset:          c.IdleReset,
	}
}
