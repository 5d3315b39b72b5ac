package store

import (
	"time"

	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// AddCrisisEvent validates in, enriches it, prepends the new event, and
// persists the collection. On validation failure a *types.ValidationError
// is returned and nothing is written.
func (s *Store) AddCrisisEvent(in types.CrisisInput) (types.CrisisEvent, error) {
	if errs := schema.ValidateCrisisInput(in); len(errs) > 0 {
		return types.CrisisEvent{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dow, tod, hour := derived(in.Timestamp)
	event := types.CrisisEvent{
		ID:                   newID(),
		Timestamp:            in.Timestamp,
		Context:              in.Context,
		Type:                 in.Type,
		DurationSeconds:      in.DurationSeconds,
		PeakIntensity:        in.PeakIntensity,
		WarningSignsObserved: in.WarningSignsObserved,
		SensoryTriggers:      in.SensoryTriggers,
		ContextTriggers:      in.ContextTriggers,
		StrategiesUsed:       in.StrategiesUsed,
		Resolution:           in.Resolution,
		HasAudioRecording:    in.HasAudioRecording,
		Notes:                in.Notes,
		DayOfWeek:            dow,
		TimeOfDay:            tod,
		HourOfDay:            hour,
	}

	s.crises = append([]types.CrisisEvent{event}, s.crises...)
	s.persist(types.KeyCrisisEvents, s.crises)
	return event, nil
}

// UpdateCrisisEvent shallow-merges patch into the event with the given id
// and persists. A missing id is a no-op.
func (s *Store) UpdateCrisisEvent(id string, patch types.CrisisPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.crises {
		if s.crises[i].ID != id {
			continue
		}
		e := &s.crises[i]
		if patch.Context != nil {
			e.Context = *patch.Context
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		if patch.DurationSeconds != nil {
			e.DurationSeconds = *patch.DurationSeconds
		}
		if patch.PeakIntensity != nil {
			e.PeakIntensity = *patch.PeakIntensity
		}
		if patch.WarningSignsObserved != nil {
			e.WarningSignsObserved = patch.WarningSignsObserved
		}
		if patch.SensoryTriggers != nil {
			e.SensoryTriggers = patch.SensoryTriggers
		}
		if patch.ContextTriggers != nil {
			e.ContextTriggers = patch.ContextTriggers
		}
		if patch.StrategiesUsed != nil {
			e.StrategiesUsed = patch.StrategiesUsed
		}
		if patch.Resolution != nil {
			e.Resolution = *patch.Resolution
		}
		if patch.HasAudioRecording != nil {
			e.HasAudioRecording = *patch.HasAudioRecording
		}
		if patch.Notes != nil {
			e.Notes = *patch.Notes
		}
		s.persist(types.KeyCrisisEvents, s.crises)
		return
	}
}

// DeleteCrisisEvent removes the event with the given id and persists.
func (s *Store) DeleteCrisisEvent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.crises[:0:0]
	removed := false
	for _, e := range s.crises {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return
	}
	s.crises = kept
	s.persist(types.KeyCrisisEvents, s.crises)
}

// CrisisEvents returns a copy of the crisis collection, newest first.
func (s *Store) CrisisEvents() []types.CrisisEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CrisisEvent, len(s.crises))
	copy(out, s.crises)
	return out
}

// CrisisEventsInRange returns the events with from <= timestamp < to.
func (s *Store) CrisisEventsInRange(from, to time.Time) []types.CrisisEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.CrisisEvent
	for _, e := range s.crises {
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out
}

// CrisisEventsByContext returns the events captured in the given context.
func (s *Store) CrisisEventsByContext(context string) []types.CrisisEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.CrisisEvent
	for _, e := range s.crises {
		if e.Context == context {
			out = append(out, e)
		}
	}
	return out
}

// CrisisEventsNear returns the events within window of ts, either side.
// Pairing a crisis with the logs around it is the primary pattern-analysis
// query of the UI.
func (s *Store) CrisisEventsNear(ts time.Time, window time.Duration) []types.CrisisEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.CrisisEvent
	for _, e := range s.crises {
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
