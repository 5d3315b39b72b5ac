// Package kv provides the persistent key-value medium backing all Compass
// collections. The medium is opaque beyond get/set/remove-by-key semantics:
// no multi-key transactions, no schema enforcement, no cross-process
// locking. Higher layers (validation, collection mirroring, atomic import)
// are built to survive exactly those gaps.
package kv

import (
	"fmt"

	"github.com/compasscare/compass/pkg/types"
)

// Store is the durable key-value medium. Implementations must make each Set
// durable before returning and must refuse (not truncate) writes that would
// exceed their quota, returning types.ErrQuotaExceeded unwrapped or wrapped.
type Store interface {
	// Get returns the value stored under key and whether the key exists.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Keys returns every stored key in unspecified order.
	Keys() ([]string, error)

	// Close releases backend resources. Idempotent.
	Close() error
}

// Open creates a Store for the given configuration.
func Open(config types.Config) (Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Backend {
	case types.BackendSQLite:
		return OpenSQLite(config.DataDir, config.QuotaBytes)
	case types.BackendMemory:
		s := NewMemStore()
		s.SetQuota(config.QuotaBytes)
		return s, nil
	default:
		return nil, fmt.Errorf("backend %q: %w", config.Backend, types.ErrUnknownBackend)
	}
}
