package cacheinfra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// NewRedisPool builds a redigo connection pool for the given address.
func NewRedisPool(addr string, maxIdle int, idleTimeout time.Duration) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     maxIdle,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// RedisStore keeps entity snapshots in a remote redis instance. Entries are
// written with a PX expiry; when idle reset is enabled every hit issues a
// PEXPIRE so the TTL counts from the last access rather than from insertion.
type RedisStore struct {
	pool      *redis.Pool
	ttl       time.Duration
	idleReset bool
}

// NewRedisStore creates a redis-backed cache store. The pool is owned by the
// caller; Close releases it.
func NewRedisStore(pool *redis.Pool, ttl time.Duration, idleReset bool) *RedisStore {
	return &RedisStore{pool: pool, ttl: ttl, idleReset: idleReset}
}

// Get returns the cached snapshot for key, if present.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	conn := s.pool.Get()
	defer conn.Close()

	value, err := redis.Bytes(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	if s.idleReset && s.ttl > 0 {
		if _, err := conn.Do("PEXPIRE", key, s.ttl.Milliseconds()); err != nil {
			return nil, false, fmt.Errorf("redis pexpire %q: %w", key, err)
		}
	}

	return value, true, nil
}

// Set stores a snapshot under key with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	conn := s.pool.Get()
	defer conn.Close()

	var err error
	if s.ttl > 0 {
		_, err = conn.Do("SET", key, value, "PX", s.ttl.Milliseconds())
	} else {
		_, err = conn.Do("SET", key, value)
	}
	if err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete evicts the entry for key. DEL on a missing key is a no-op.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	conn := s.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.pool.Close()
}
