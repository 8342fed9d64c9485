// Package cache provides the cache-store abstraction and key derivation used
// by the employee services.
//
// # Overview
//
// This package exports the pieces the entity services need to keep snapshots
// in a cache backend:
//
//   - Store: a byte-valued key/value cache with TTL and idle-reset semantics
//   - Keys: deterministic key derivation from entity namespace + identity
//   - Encode/Decode: msgpack snapshot serialization
//   - Config: backend selection and entry policy (TTL, idle reset, prefix)
//
// The Store interface is deliberately small. It has no read-through helper:
// the services own the cache-aside and write-through sequencing so that the
// interaction with the record store stays explicit.
//
// # Basic Usage
//
//	cfg := cache.DefaultConfig() // 60s TTL, idle reset, memory backend
//	store, err := cache.NewStore(cfg)
//	if err != nil {
//		// handle invalid configuration
//	}
//
//	keys := cfg.Keys()
//	data, _ := cache.Encode(employee)
//	store.Set(ctx, keys.Employee(employee.ID), data)
//
// # Backends
//
// Two Store implementations ship with this module, selected via
// Config.Backend:
//
//   - "memory": an in-process sharded TTL cache (sturdyc). Useful for single
//     node deployments and tests.
//   - "redis": a remote cache reached through a redigo connection pool.
//     Entries are written with a PX expiry; reads issue PEXPIRE to restart
//     the window when idle reset is enabled.
//
// # Entry Policy
//
// The default policy is a 60 second TTL with idle reset: every successful
// read or write restarts the expiry window rather than counting only from
// insertion. Both backends honor the same policy so they are interchangeable.
//
// # Error Handling
//
// Get reports a miss as (nil, false, nil); a non-nil error means the backend
// itself failed. Callers treat backend errors as non-fatal: the record store
// remains authoritative and a missing entry self-heals on the next read.
package cache
