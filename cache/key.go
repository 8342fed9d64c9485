package cache

import (
	"strconv"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = ":"

// Namespaces for the entity snapshots this module caches. Salary accounts
// never get a namespace: balances are excluded from caching.
const (
	NamespaceEmployees = "employees"
)

// Keys derives deterministic cache keys from an entity namespace and identity.
// All keys share a fixed prefix so that entries are easy to locate (and flush)
// when the backing store is shared with other applications.
type Keys struct {
	prefix string
}

// NewKeys creates a key builder with the given prefix. An empty prefix is
// allowed; keys then start at the namespace segment.
func NewKeys(prefix string) Keys {
	return Keys{prefix: strings.TrimSuffix(prefix, KeySeparator)}
}

// Employee returns the cache key for an employee snapshot.
func (k Keys) Employee(id int64) string {
	return k.build(NamespaceEmployees, strconv.FormatInt(id, 10))
}

// build joins prefix, namespace and identity with the key separator.
func (k Keys) build(namespace, id string) string {
	if k.prefix == "" {
		return namespace + KeySeparator + id
	}
	return k.prefix + KeySeparator + namespace + KeySeparator + id
}
