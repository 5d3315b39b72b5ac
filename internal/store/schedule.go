package store

import (
	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// AddScheduleEntry creates an upcoming entry for the given date and context.
// The activity sub-record is required; validation failure returns a
// *types.ValidationError and nothing is written.
func (s *Store) AddScheduleEntry(date, context string, activity types.Activity) (types.ScheduleEntry, error) {
	var errs []types.FieldError
	if !schema.ValidDate(date) {
		errs = append(errs, types.FieldError{Path: "date", Message: "must be a YYYY-MM-DD date"})
	}
	if !types.ValidContexts[context] {
		errs = append(errs, types.FieldError{Path: "context", Message: "must be home or school"})
	}
	errs = append(errs, schema.ValidateActivity("activity", activity)...)
	if len(errs) > 0 {
		return types.ScheduleEntry{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if activity.ID == "" {
		activity.ID = newID()
	}
	entry := types.ScheduleEntry{
		ID:       newID(),
		Date:     date,
		Context:  context,
		Activity: activity,
		Status:   types.ScheduleStatusUpcoming,
	}

	s.entries = append([]types.ScheduleEntry{entry}, s.entries...)
	s.persist(types.KeyScheduleEntries, s.entries)
	return entry, nil
}

// UpdateScheduleEntry shallow-merges patch into the entry with the given id
// and persists. A missing id is a no-op.
func (s *Store) UpdateScheduleEntry(id string, patch types.SchedulePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		e := &s.entries[i]
		if patch.Status != nil {
			e.Status = *patch.Status
		}
		if patch.ActualStart != nil {
			e.ActualStart = patch.ActualStart
		}
		if patch.ActualEnd != nil {
			e.ActualEnd = patch.ActualEnd
		}
		if patch.Rating != nil {
			e.Rating = patch.Rating
		}
		if patch.Activity != nil {
			e.Activity = *patch.Activity
		}
		s.persist(types.KeyScheduleEntries, s.entries)
		return
	}
}

// DeleteScheduleEntry removes the entry with the given id and persists.
func (s *Store) DeleteScheduleEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0:0]
	removed := false
	for _, e := range s.entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return
	}
	s.entries = kept
	s.persist(types.KeyScheduleEntries, s.entries)
}

// ScheduleEntries returns a copy of the schedule entry collection.
func (s *Store) ScheduleEntries() []types.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ScheduleEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ScheduleEntriesOn returns the entries for one date, optionally narrowed
// to a context ("" matches both).
func (s *Store) ScheduleEntriesOn(date, context string) []types.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.ScheduleEntry
	for _, e := range s.entries {
		if e.Date != date {
			continue
		}
		if context != "" && e.Context != context {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AddScheduleTemplate creates a reusable daily plan. dayOfWeek is a
// lowercase weekday name or "all".
func (s *Store) AddScheduleTemplate(name, context, dayOfWeek string, activities []types.Activity) (types.ScheduleTemplate, error) {
	tpl := types.ScheduleTemplate{
		ID:         newID(),
		Name:       name,
		Context:    context,
		DayOfWeek:  dayOfWeek,
		Activities: activities,
	}
	if errs := schema.ValidateTemplate(tpl); len(errs) > 0 {
		return types.ScheduleTemplate{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates = append([]types.ScheduleTemplate{tpl}, s.templates...)
	s.persist(types.KeyScheduleTemplates, s.templates)
	return tpl, nil
}

// DeleteScheduleTemplate removes the template with the given id and
// persists.
func (s *Store) DeleteScheduleTemplate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.templates[:0:0]
	removed := false
	for _, tpl := range s.templates {
		if tpl.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tpl)
	}
	if !removed {
		return
	}
	s.templates = kept
	s.persist(types.KeyScheduleTemplates, s.templates)
}

// ScheduleTemplates returns a copy of the template collection.
func (s *Store) ScheduleTemplates() []types.ScheduleTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ScheduleTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// ApplyTemplate instantiates every activity of a template as upcoming
// schedule entries on the given date. An unusable (empty) template returns
// types.ErrInvalidData; an unknown id returns types.ErrNotFound.
func (s *Store) ApplyTemplate(templateID, date string) ([]types.ScheduleEntry, error) {
	if !schema.ValidDate(date) {
		return nil, &types.ValidationError{Fields: []types.FieldError{
			{Path: "date", Message: "must be a YYYY-MM-DD date"},
		}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var tpl *types.ScheduleTemplate
	for i := range s.templates {
		if s.templates[i].ID == templateID {
			tpl = &s.templates[i]
			break
		}
	}
	if tpl == nil {
		return nil, types.ErrNotFound
	}
	if !tpl.Usable() {
		return nil, types.ErrInvalidData
	}

	created := make([]types.ScheduleEntry, 0, len(tpl.Activities))
	for _, act := range tpl.Activities {
		entry := types.ScheduleEntry{
			ID:       newID(),
			Date:     date,
			Context:  tpl.Context,
			Activity: act,
			Status:   types.ScheduleStatusUpcoming,
		}
		created = append(created, entry)
		s.entries = append([]types.ScheduleEntry{entry}, s.entries...)
	}
	s.persist(types.KeyScheduleEntries, s.entries)
	return created, nil
}

// DailySchedule reads the per-day schedule override for date and context
// straight from the persistent store. Overrides are not mirrored in memory;
// they are read on demand and validated on the way in.
func (s *Store) DailySchedule(date, context string) ([]types.Activity, bool, error) {
	key := types.DailyScheduleKey(date, context)
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	acts := schema.DecodeCollection(raw, []types.Activity{}, func(a types.Activity) []types.FieldError {
		return schema.ValidateActivity("activity", a)
	}, func(i int, errs []types.FieldError) {
		s.emitDrop(key, i, errs)
	})
	return acts, true, nil
}

// SaveDailySchedule writes the per-day schedule override for date and
// context. Validation failure returns a *types.ValidationError and nothing
// is written.
func (s *Store) SaveDailySchedule(date, context string, activities []types.Activity) error {
	var errs []types.FieldError
	if !schema.ValidDate(date) {
		errs = append(errs, types.FieldError{Path: "date", Message: "must be a YYYY-MM-DD date"})
	}
	if !types.ValidContexts[context] {
		errs = append(errs, types.FieldError{Path: "context", Message: "must be home or school"})
	}
	for _, a := range activities {
		errs = append(errs, schema.ValidateActivity("activities", a)...)
	}
	if len(errs) > 0 {
		return &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(types.DailyScheduleKey(date, context), activities)
	return nil
}
