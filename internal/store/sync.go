package store

import (
	"encoding/json"

	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// handleExternal reconciles a key mutation announced by another execution
// context. A valid value replaces the corresponding in-memory collection
// wholesale (last valid writer wins); an invalid value is reported through
// the dropped-record notification and ignored, keeping the prior state.
// There is no merging of concurrent edits.
func (s *Store) handleExternal(key, value string) {
	switch key {
	case types.KeyLogs:
		adoptCollection(s, key, value, schema.ValidateLog, func(v []types.LogEntry) { s.logs = v })
	case types.KeyCrisisEvents:
		adoptCollection(s, key, value, schema.ValidateCrisis, func(v []types.CrisisEvent) { s.crises = v })
	case types.KeyScheduleEntries:
		adoptCollection(s, key, value, schema.ValidateScheduleEntry, func(v []types.ScheduleEntry) { s.entries = v })
	case types.KeyScheduleTemplates:
		adoptCollection(s, key, value, schema.ValidateTemplate, func(v []types.ScheduleTemplate) { s.templates = v })
	case types.KeyGoals:
		adoptCollection(s, key, value, schema.ValidateGoal, func(v []types.Goal) { s.goals = v })
	case types.KeyChildProfile:
		s.adoptProfile(value)
	case types.KeyOnboarding:
		s.adoptOnboarding(value)
	case types.KeyCurrentContext:
		s.adoptContext(value)
	default:
		// Per-day schedule overrides are read on demand, and unknown keys
		// are someone else's data.
	}
}

// adoptCollection replaces one in-memory collection with the remote value.
// A value that is not a JSON array at all is rejected outright; an array
// with invalid elements adopts the valid subset, the validator's usual
// salvage semantics.
func adoptCollection[T any](s *Store, key, value string, validate func(T) []types.FieldError, assign func([]T)) {
	var probe []json.RawMessage
	if err := json.Unmarshal([]byte(value), &probe); err != nil {
		s.emitDrop(key, -1, []types.FieldError{{Message: "remote value is not a collection"}})
		return
	}

	got := schema.DecodeCollection(value, []T{}, validate, func(i int, errs []types.FieldError) {
		s.emitDrop(key, i, errs)
	})

	s.mu.Lock()
	assign(got)
	s.mu.Unlock()
}

func (s *Store) adoptProfile(value string) {
	if value == "" || value == "null" {
		s.mu.Lock()
		s.profile = nil
		s.mu.Unlock()
		return
	}
	profile, errs := schema.DecodeSingle(value, schema.ValidateProfile)
	if len(errs) > 0 {
		s.emitDrop(types.KeyChildProfile, -1, errs)
		return
	}
	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
}

func (s *Store) adoptOnboarding(value string) {
	var done bool
	if err := json.Unmarshal([]byte(value), &done); err != nil {
		s.emitDrop(types.KeyOnboarding, -1, []types.FieldError{{Message: "must be a boolean"}})
		return
	}
	s.mu.Lock()
	s.settings.HasCompletedOnboarding = done
	s.mu.Unlock()
}

func (s *Store) adoptContext(value string) {
	var ctx string
	if err := json.Unmarshal([]byte(value), &ctx); err != nil || !types.ValidContexts[ctx] {
		s.emitDrop(types.KeyCurrentContext, -1, []types.FieldError{{Message: "must be home or school"}})
		return
	}
	s.mu.Lock()
	s.settings.CurrentContext = ctx
	s.mu.Unlock()
}
