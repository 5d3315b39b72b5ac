package backup

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/compasscare/compass/internal/kv"
	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/internal/store"
	"github.com/compasscare/compass/pkg/types"
)

// Manager produces export documents and applies import documents against a
// store and its backing key-value medium.
type Manager struct {
	kv    kv.Store
	store *store.Store
	now   func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the wall clock. Tests use this to pin ExportedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New returns a Manager over the given medium and store.
func New(kvs kv.Store, st *store.Store, opts ...Option) *Manager {
	m := &Manager{kv: kvs, store: st, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Export assembles the full backup document: every owned collection from the
// store's in-memory mirrors, every per-day schedule override found in the
// medium, and the computed summary statistics.
func (m *Manager) Export() (types.ExportPayload, error) {
	payload := types.ExportPayload{
		Version:           types.ExportVersion,
		ExportedAt:        m.now().UTC(),
		Logs:              m.store.Logs(),
		CrisisEvents:      m.store.CrisisEvents(),
		ScheduleEntries:   m.store.ScheduleEntries(),
		ScheduleTemplates: m.store.ScheduleTemplates(),
		Goals:             m.store.Goals(),
	}
	if profile, ok := m.store.Profile(); ok {
		payload.ChildProfile = &profile
	}

	daily, err := m.collectDailySchedules()
	if err != nil {
		return types.ExportPayload{}, err
	}
	payload.DailySchedules = daily

	payload.Summary = summarize(payload)
	return payload, nil
}

// ExportJSON marshals the export document, indented for hand inspection.
func (m *Manager) ExportJSON() ([]byte, error) {
	payload, err := m.Export()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// collectDailySchedules scans the medium for per-day override keys. Keys
// whose suffix does not parse as "<date>_<context>" and values that fail
// validation are skipped rather than aborting the export.
func (m *Manager) collectDailySchedules() (map[string][]types.Activity, error) {
	keys, err := m.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	sort.Strings(keys)

	var daily map[string][]types.Activity
	for _, key := range keys {
		name, found := strings.CutPrefix(key, types.KeyDailySchedulePrefix)
		if !found {
			continue
		}
		date, context, ok := schema.ParseDailyScheduleName(name)
		if !ok {
			continue
		}
		activities, ok, err := m.store.DailySchedule(date, context)
		if err != nil || !ok {
			continue
		}
		if daily == nil {
			daily = make(map[string][]types.Activity)
		}
		daily[name] = activities
	}
	return daily, nil
}

// summarize computes the aggregate statistics embedded in an export.
func summarize(p types.ExportPayload) types.ExportSummary {
	s := types.ExportSummary{
		TotalLogs:         len(p.Logs),
		TotalCrisisEvents: len(p.CrisisEvents),
	}

	if len(p.CrisisEvents) > 0 {
		total := 0
		for _, c := range p.CrisisEvents {
			total += c.DurationSeconds
		}
		s.AverageCrisisDuration = float64(total) / float64(len(p.CrisisEvents))
	}

	if len(p.ScheduleEntries) > 0 {
		completed := 0
		for _, e := range p.ScheduleEntries {
			if e.Status == types.ScheduleStatusCompleted {
				completed++
			}
		}
		s.ScheduleCompletionRate = float64(completed) / float64(len(p.ScheduleEntries))
	}

	if len(p.Goals) > 0 {
		total := 0.0
		for _, g := range p.Goals {
			total += g.ProgressPercent
		}
		s.GoalProgress = total / float64(len(p.Goals))
	}

	if len(p.Logs) > 0 {
		r := types.DateRange{Earliest: p.Logs[0].Timestamp, Latest: p.Logs[0].Timestamp}
		for _, l := range p.Logs[1:] {
			if l.Timestamp.Before(r.Earliest) {
				r.Earliest = l.Timestamp
			}
			if l.Timestamp.After(r.Latest) {
				r.Latest = l.Timestamp
			}
		}
		s.DateRange = &r
	}

	return s
}
