package kv

import (
	"sync"

	"github.com/compasscare/compass/pkg/types"
)

// MemStore is an in-memory Store with the same quota semantics as the
// SQLite backend. It backs tests and throwaway sessions, and adds
// deterministic fault injection so partial-failure paths (import rollback,
// quota surfacing) can be exercised.
type MemStore struct {
	mu        sync.RWMutex
	data      map[string]string
	quota     int64
	setsLeft  int
	failArmed bool
	failOnce  bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty MemStore with no quota and no fault
// injection.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

// SetQuota caps the total byte size of stored values. Zero disables the cap.
func (m *MemStore) SetQuota(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = bytes
}

// FailSetAfter arms fault injection: the next n calls to Set succeed, and
// every call after that returns types.ErrQuotaExceeded without mutating.
func (m *MemStore) FailSetAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failArmed = true
	m.failOnce = false
	m.setsLeft = n
}

// FailSetOnce arms one-shot fault injection: the next n calls to Set
// succeed, the call after that returns types.ErrQuotaExceeded without
// mutating, and injection disarms. Rollback paths that re-write prior
// values after a single failure stay exercisable.
func (m *MemStore) FailSetOnce(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failArmed = true
	m.failOnce = true
	m.setsLeft = n
}

// DisarmFailures turns fault injection off.
func (m *MemStore) DisarmFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failArmed = false
}

func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failArmed {
		if m.setsLeft <= 0 {
			if m.failOnce {
				m.failArmed = false
			}
			return types.ErrQuotaExceeded
		}
		m.setsLeft--
	}

	if m.quota > 0 {
		total := int64(0)
		for k, v := range m.data {
			if k == key {
				continue
			}
			total += int64(len(v))
		}
		if total+int64(len(value)) > m.quota {
			return types.ErrQuotaExceeded
		}
	}

	m.data[key] = value
	return nil
}

func (m *MemStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *MemStore) Close() error {
	return nil
}

// Snapshot returns a copy of the full key space. Test helper.
func (m *MemStore) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
