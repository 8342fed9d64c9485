package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes an entity snapshot for storage in a cache backend.
// msgpack round-trips field names and types, so any struct with exported
// fields survives a cache round trip intact.
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode cache value: %w", err)
	}
	return data, nil
}

// Decode deserializes a cached snapshot into dest.
func Decode(data []byte, dest any) error {
	if err := msgpack.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode cache value: %w", err)
	}
	return nil
}
