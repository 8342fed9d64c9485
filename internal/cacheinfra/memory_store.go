package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the in-process memory store.
type Config struct {
	// Capacity defines the maximum number of entries that the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0.
	NumShards int

	// TTL is the time-to-live for cached entries.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the sturdyc default interval.
	EvictionInterval time.Duration

	// IdleReset restarts the TTL window on every successful read.
	IdleReset bool
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// memoryStore keeps entity snapshots in an in-process sturdyc cache.
// Snapshots are stored as raw bytes so the memory backend and the redis
// backend are interchangeable behind the same interface.
type memoryStore struct {
	client    *sturdyc.Client[[]byte]
	idleReset bool
}

// NewMemoryStore creates an in-process cache store backed by sturdyc.
//
// Version compatibility note: this assumes the sturdyc v1.x API. Monitor
// sturdyc version upgrades for constructor signature changes.
func NewMemoryStore(cfg Config) (*memoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &memoryStore{client: client, idleReset: cfg.IdleReset}, nil
}

// Get returns the cached snapshot for key, if present. When idle reset is
// enabled a hit re-inserts the entry, which restarts its TTL window.
func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}

	if s.idleReset {
		s.client.Set(key, value)
	}

	return value, true, nil
}

// Set stores a snapshot under key with the configured TTL. Overwrites any
// existing entry unconditionally.
func (s *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.client.Set(key, value)
	return nil
}

// Delete evicts the entry for key. Deleting a missing key is a no-op.
func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}
