package cacheinfra

import (
	"context"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Capacity:           100,
		NumShards:          4,
		TTL:                time.Minute,
		EvictionPercentage: 10,
		IdleReset:          true,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "Capacity"},
		{"negative capacity", func(c *Config) { c.Capacity = -1 }, "Capacity"},
		{"zero shards", func(c *Config) { c.NumShards = 0 }, "NumShards"},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, "TTL"},
		{"eviction too low", func(c *Config) { c.EvictionPercentage = 0 }, "EvictionPercentage"},
		{"eviction too high", func(c *Config) { c.EvictionPercentage = 101 }, "EvictionPercentage"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %T (%v)", err, err)
			}
			if cfgErr.Field != tc.wantErr {
				t.Errorf("error field = %q, want %q", cfgErr.Field, tc.wantErr)
			}
		})
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store, err := NewMemoryStore(validConfig())
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "emp:employees:1"); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "emp:employees:1", []byte("snapshot")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := store.Get(ctx, "emp:employees:1")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "snapshot" {
		t.Errorf("got %q, want %q", got, "snapshot")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store, err := NewMemoryStore(validConfig())
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	ctx := context.Background()

	store.Set(ctx, "k", []byte("old"))
	store.Set(ctx, "k", []byte("new"))

	got, ok, _ := store.Get(ctx, "k")
	if !ok || string(got) != "new" {
		t.Errorf("expected unconditional overwrite, got %q (ok=%v)", got, ok)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store, err := NewMemoryStore(validConfig())
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("entry should be gone after delete")
	}

	// Evicting a key that was never cached is a no-op, not an error.
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Fatalf("deleting a missing key must not fail: %v", err)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	cfg := validConfig()
	cfg.TTL = 50 * time.Millisecond
	cfg.EvictionInterval = 10 * time.Millisecond
	cfg.IdleReset = false

	store, err := NewMemoryStore(cfg)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))
	time.Sleep(150 * time.Millisecond)

	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}
}

func TestMemoryStoreIdleResetExtendsEntry(t *testing.T) {
	cfg := validConfig()
	cfg.TTL = 120 * time.Millisecond
	cfg.EvictionInterval = 10 * time.Millisecond

	store, err := NewMemoryStore(cfg)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))

	// Keep touching the entry at intervals shorter than the TTL; each read
	// restarts the window, so the entry outlives several TTL spans.
	for i := 0; i < 5; i++ {
		time.Sleep(60 * time.Millisecond)
		if _, ok, _ := store.Get(ctx, "k"); !ok {
			t.Fatalf("entry expired on touch %d despite idle reset", i)
		}
	}
}
