// Package store owns the authoritative in-memory mirror of every persisted
// collection and provides the mutation operations of the Compass data layer.
//
// Each collection is loaded once through the schema validator (salvaging
// what it can), mutated through explicit add/update/delete operations with
// synchronous write-through, and reconciled wholesale when another execution
// context announces a write to the same key. A Store is constructed
// explicitly and passed by reference to consumers; there is no ambient
// global instance.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/compasscare/compass/internal/kv"
	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// StorageError is the "storage error" notification: a write-through to the
// persistent store failed. The in-memory mutation already happened and
// remains authoritative for the session; listeners (toast, banner, CLI
// warning) decide how to surface the condition.
type StorageError struct {
	Key string
	Err error
}

// DroppedRecord reports a stored record discarded by validation, either
// during load salvage or when an external write was rejected.
type DroppedRecord struct {
	Key    string
	Index  int
	Errors []types.FieldError
}

// Store mirrors the persisted collections in memory.
type Store struct {
	mu sync.RWMutex

	kv          kv.Store
	unsubscribe func()
	now         func() time.Time

	logs      []types.LogEntry
	crises    []types.CrisisEvent
	entries   []types.ScheduleEntry
	templates []types.ScheduleTemplate
	goals     []types.Goal
	profile   *types.ChildProfile
	settings  types.Settings

	listenerMu     sync.Mutex
	errorListeners []func(StorageError)
	dropListeners  []func(DroppedRecord)

	closed bool
}

// Option configures a Store at Open time.
type Option func(*Store)

// WithClock substitutes the time source used for enrichment defaults, goal
// deadlines, and profile timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDropListener registers a listener before the initial load, so salvage
// drops during Open are observed too.
func WithDropListener(fn func(DroppedRecord)) Option {
	return func(s *Store) { s.dropListeners = append(s.dropListeners, fn) }
}

// Open loads every collection from the persistent store through the schema
// validator (with empty-collection fallbacks), loads the singletons with
// first-run defaults, and subscribes to notifier for external mutations.
// notifier may be nil for a store that never sees another context.
func Open(kvs kv.Store, notifier *kv.Notifier, opts ...Option) (*Store, error) {
	s := &Store{
		kv:       kvs,
		now:      time.Now,
		settings: types.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.loadAll(); err != nil {
		return nil, err
	}

	if notifier != nil {
		s.unsubscribe = notifier.Subscribe(s.handleExternal)
	}
	return s, nil
}

// Close cancels the cross-tab subscription. It does not close the
// underlying kv store, which the caller owns. Idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// OnStorageError registers a listener for write-through failures.
func (s *Store) OnStorageError(fn func(StorageError)) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.errorListeners = append(s.errorListeners, fn)
}

// OnDroppedRecord registers a listener for records discarded by validation.
func (s *Store) OnDroppedRecord(fn func(DroppedRecord)) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.dropListeners = append(s.dropListeners, fn)
}

func (s *Store) emitStorageError(key string, err error) {
	s.listenerMu.Lock()
	listeners := make([]func(StorageError), len(s.errorListeners))
	copy(listeners, s.errorListeners)
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(StorageError{Key: key, Err: err})
	}
}

func (s *Store) emitDrop(key string, index int, errs []types.FieldError) {
	s.listenerMu.Lock()
	listeners := make([]func(DroppedRecord), len(s.dropListeners))
	copy(listeners, s.dropListeners)
	s.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(DroppedRecord{Key: key, Index: index, Errors: errs})
	}
}

// RefreshFromStore re-reads every collection and singleton from the
// persistent store, replacing the in-memory state. Import uses this after a
// successful multi-key apply; it is the same validated path the initial
// load uses.
func (s *Store) RefreshFromStore() error {
	return s.loadAll()
}

// loadAll populates the in-memory mirrors. Unreadable keys are errors;
// invalid content is salvaged or defaulted, never fatal.
func (s *Store) loadAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.logs, err = loadCollection(s, types.KeyLogs, schema.ValidateLog); err != nil {
		return err
	}
	if s.crises, err = loadCollection(s, types.KeyCrisisEvents, schema.ValidateCrisis); err != nil {
		return err
	}
	if s.entries, err = loadCollection(s, types.KeyScheduleEntries, schema.ValidateScheduleEntry); err != nil {
		return err
	}
	if s.templates, err = loadCollection(s, types.KeyScheduleTemplates, schema.ValidateTemplate); err != nil {
		return err
	}
	if s.goals, err = loadCollection(s, types.KeyGoals, schema.ValidateGoal); err != nil {
		return err
	}
	if err = s.loadProfileLocked(); err != nil {
		return err
	}
	return s.loadSettingsLocked()
}

// loadCollection reads one collection key and salvages the valid subset.
// The caller must hold s.mu.
func loadCollection[T any](s *Store, key string, validate func(T) []types.FieldError) ([]T, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	got := schema.DecodeCollection(raw, []T{}, validate, func(i int, errs []types.FieldError) {
		s.emitDrop(key, i, errs)
	})
	return got, nil
}

// loadProfileLocked reads the child profile singleton. Absent or invalid
// content leaves the profile unset.
func (s *Store) loadProfileLocked() error {
	raw, ok, err := s.kv.Get(types.KeyChildProfile)
	if err != nil {
		return fmt.Errorf("loading %s: %w", types.KeyChildProfile, err)
	}
	if !ok || raw == "" || raw == "null" {
		s.profile = nil
		return nil
	}
	profile, errs := schema.DecodeSingle(raw, schema.ValidateProfile)
	if len(errs) > 0 {
		s.emitDrop(types.KeyChildProfile, 0, errs)
		s.profile = nil
		return nil
	}
	s.profile = &profile
	return nil
}

// loadSettingsLocked reads the onboarding flag and current context,
// defaulting each on first run or invalid content.
func (s *Store) loadSettingsLocked() error {
	s.settings = types.DefaultSettings()

	raw, ok, err := s.kv.Get(types.KeyOnboarding)
	if err != nil {
		return fmt.Errorf("loading %s: %w", types.KeyOnboarding, err)
	}
	if ok {
		var done bool
		if json.Unmarshal([]byte(raw), &done) == nil {
			s.settings.HasCompletedOnboarding = done
		} else {
			s.emitDrop(types.KeyOnboarding, 0, []types.FieldError{{Message: "must be a boolean"}})
		}
	}

	raw, ok, err = s.kv.Get(types.KeyCurrentContext)
	if err != nil {
		return fmt.Errorf("loading %s: %w", types.KeyCurrentContext, err)
	}
	if ok {
		var ctx string
		if json.Unmarshal([]byte(raw), &ctx) == nil && types.ValidContexts[ctx] {
			s.settings.CurrentContext = ctx
		} else {
			s.emitDrop(types.KeyCurrentContext, 0, []types.FieldError{{Message: "must be home or school"}})
		}
	}
	return nil
}

// persist writes one collection or singleton value through to the
// persistent store. A refused write (quota) does not roll back memory; the
// failure is surfaced through the storage-error notification and the
// session keeps working with its in-memory state.
func (s *Store) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.emitStorageError(key, fmt.Errorf("encoding %s: %w", key, err))
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.emitStorageError(key, err)
	}
}

// newID generates a UUID v7 record ID, falling back to v4.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
