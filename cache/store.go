package cache

import "context"

// Store is the minimal contract the entity services need from a cache backend.
// Values are opaque byte snapshots; encoding is handled by the Codec helpers
// in this package so that backends stay format agnostic.
//
// Get reports a miss with ok=false and a nil error. Errors indicate the
// backend itself is unavailable; callers are expected to treat those as
// non-fatal and fall back to the record store.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
