// Shared helpers for compass CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/compasscare/compass/internal/backup"
	"github.com/compasscare/compass/internal/kv"
	"github.com/compasscare/compass/internal/store"
	"github.com/compasscare/compass/pkg/types"
)

// session bundles the open storage stack for one command invocation. The
// caller must defer close.
type session struct {
	kv    kv.Store
	store *store.Store
	mgr   *backup.Manager
}

// openSession resolves the data directory, opens the configured backend, and
// loads the store over it. Storage errors and dropped records surface as
// stderr warnings so a command never fails silently on a degraded medium.
func openSession() (*session, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := configBackend
	if backend == "" {
		backend = defaultBackend
	}
	kvs, err := kv.Open(types.Config{
		Backend:    backend,
		DataDir:    dataDir,
		QuotaBytes: configQuota,
	})
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	st, err := store.Open(kvs, nil, store.WithDropListener(func(d store.DroppedRecord) {
		if d.Index >= 0 {
			fmt.Fprintf(os.Stderr, "warning: dropped invalid record %s[%d]\n", d.Key, d.Index)
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignored invalid data under %s\n", d.Key)
		}
	}))
	if err != nil {
		kvs.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	st.OnStorageError(func(e store.StorageError) {
		fmt.Fprintf(os.Stderr, "warning: could not persist %s: %v\n", e.Key, e.Err)
	})

	return &session{kv: kvs, store: st, mgr: backup.New(kvs, st)}, nil
}

func (s *session) close() {
	s.store.Close()
	if err := s.kv.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: closing backend:", err)
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// parseWhen parses a --time flag value, defaulting to now when empty.
func parseWhen(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC 3339): %w", value, err)
	}
	return ts, nil
}

// today returns the current date as YYYY-MM-DD.
func today() string {
	return time.Now().Format("2006-01-02")
}
