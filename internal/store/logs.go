package store

import (
	"time"

	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// AddLog validates in, enriches it, prepends the new entry, and persists the
// collection. On validation failure a *types.ValidationError is returned and
// nothing is written.
func (s *Store) AddLog(in types.LogInput) (types.LogEntry, error) {
	if errs := schema.ValidateLogInput(in); len(errs) > 0 {
		return types.LogEntry{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dow, tod, hour := derived(in.Timestamp)
	entry := types.LogEntry{
		ID:                    newID(),
		Timestamp:             in.Timestamp,
		Context:               in.Context,
		Arousal:               in.Arousal,
		Valence:               in.Valence,
		Energy:                in.Energy,
		SensoryTriggers:       in.SensoryTriggers,
		ContextTriggers:       in.ContextTriggers,
		Strategies:            in.Strategies,
		StrategyEffectiveness: in.StrategyEffectiveness,
		DurationMinutes:       in.DurationMinutes,
		Note:                  in.Note,
		DayOfWeek:             dow,
		TimeOfDay:             tod,
		HourOfDay:             hour,
	}

	s.logs = append([]types.LogEntry{entry}, s.logs...)
	s.persist(types.KeyLogs, s.logs)
	return entry, nil
}

// UpdateLog shallow-merges patch into the entry with the given id and
// persists. A missing id is a no-op. Derived fields are never recomputed.
func (s *Store) UpdateLog(id string, patch types.LogPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.logs {
		if s.logs[i].ID != id {
			continue
		}
		e := &s.logs[i]
		if patch.Context != nil {
			e.Context = *patch.Context
		}
		if patch.Arousal != nil {
			e.Arousal = *patch.Arousal
		}
		if patch.Valence != nil {
			e.Valence = *patch.Valence
		}
		if patch.Energy != nil {
			e.Energy = *patch.Energy
		}
		if patch.SensoryTriggers != nil {
			e.SensoryTriggers = patch.SensoryTriggers
		}
		if patch.ContextTriggers != nil {
			e.ContextTriggers = patch.ContextTriggers
		}
		if patch.Strategies != nil {
			e.Strategies = patch.Strategies
		}
		if patch.StrategyEffectiveness != nil {
			e.StrategyEffectiveness = patch.StrategyEffectiveness
		}
		if patch.DurationMinutes != nil {
			e.DurationMinutes = *patch.DurationMinutes
		}
		if patch.Note != nil {
			e.Note = *patch.Note
		}
		s.persist(types.KeyLogs, s.logs)
		return
	}
}

// DeleteLog removes the entry with the given id and persists. A missing id
// is a no-op.
func (s *Store) DeleteLog(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.logs[:0:0]
	removed := false
	for _, e := range s.logs {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return
	}
	s.logs = kept
	s.persist(types.KeyLogs, s.logs)
}

// Logs returns a copy of the log collection, newest first.
func (s *Store) Logs() []types.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// LogsInRange returns the entries with from <= timestamp < to.
func (s *Store) LogsInRange(from, to time.Time) []types.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.LogEntry
	for _, e := range s.logs {
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out
}

// LogsByContext returns the entries captured in the given context.
func (s *Store) LogsByContext(context string) []types.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.LogEntry
	for _, e := range s.logs {
		if e.Context == context {
			out = append(out, e)
		}
	}
	return out
}

// LogsNear returns the entries within window of ts, either side.
func (s *Store) LogsNear(ts time.Time, window time.Duration) []types.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.LogEntry
	for _, e := range s.logs {
		d := e.Timestamp.Sub(ts)
		if d < 0 {
			d = -d
		}
		if d <= window {
			out = append(out, e)
		}
	}
	return out
}

// LogFilter is a compound filter over the log collection. Nil fields do not
// constrain.
type LogFilter struct {
	From       *time.Time
	To         *time.Time
	Context    *string
	TimeOfDay  *string
	MinArousal *int
}

// FilterLogs returns the entries matching every set field of f.
func (s *Store) FilterLogs(f LogFilter) []types.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.LogEntry
	for _, e := range s.logs {
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && !e.Timestamp.Before(*f.To) {
			continue
		}
		if f.Context != nil && e.Context != *f.Context {
			continue
		}
		if f.TimeOfDay != nil && e.TimeOfDay != *f.TimeOfDay {
			continue
		}
		if f.MinArousal != nil && e.Arousal < *f.MinArousal {
			continue
		}
		out = append(out, e)
	}
	return out
}
