// Package employee implements the cached employee and salary account
// services.
//
// # Overview
//
// Two services mediate between a cache store and a transactional record
// store:
//
//   - Service: employee CRUD with cache-aside reads, write-through creates
//     and updates, and eviction on delete
//   - SalaryService: salary account lifecycle plus a pessimistically locked
//     balance increment that bypasses the cache entirely
//
// The record store is the source of truth. The cache holds disposable
// snapshots keyed by employee ID; a stale or missing entry self-heals on the
// next read.
//
// # Read Path
//
//  1. Check the cache for the employee key
//  2. On a hit, decode the snapshot and return without touching the database
//     (the backend refreshes the entry's idle timer)
//  3. On a miss, read the record store; absent rows fail with NotFoundError
//  4. Write the fetched value back into the cache and return it
//
// No lock guards this sequence. Two concurrent misses may both read through
// and both populate the same entry; the overwrite is idempotent so the race
// is accepted.
//
// # Write Path
//
// Create and Update persist to the record store first, then overwrite the
// cache entry unconditionally. Delete removes the row and evicts the entry.
// Employee creation also inserts the zero-balance salary account inside the
// same transaction: either both rows commit or neither does. Deletion
// cascades to the account the same way.
//
// # Balance Increments
//
// IncrementBalance is the one mutual-exclusion point in the module. It locks
// the account row for the duration of a transaction, applies the increment
// and writes the balance back before the lock is released on commit.
// Concurrent increments for the same account serialize on the row lock;
// other accounts are unaffected. Balances never enter the cache.
//
// # Errors
//
// Operations fail with typed errors the request layer can map to transport
// statuses: NotFoundError, ConflictError (duplicate email),
// ImmutableFieldError (email change on update) and LockError (retryable,
// see IsRetryable). Cache store failures are never surfaced; they are logged
// and the operation proceeds on the record store result.
package employee
