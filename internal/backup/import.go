package backup

import (
	"encoding/json"
	"fmt"

	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// Import applies an export document to the medium in the given mode.
//
// The document is validated in full before any key is touched: an
// unparseable document returns types.ErrCorruptPayload and a parseable
// document with invalid fields returns a *types.ValidationError, both with
// the medium unchanged. Valid documents are applied through Apply, so a
// mid-import write failure rolls every touched key back to its prior state.
// After a successful apply the store reloads its mirrors from the medium.
func (m *Manager) Import(data []byte, mode string) (types.ImportReport, error) {
	if !types.ValidImportModes[mode] {
		return types.ImportReport{}, fmt.Errorf("import mode %q: %w", mode, types.ErrInvalidData)
	}

	payload, fieldErrs, err := schema.ValidateExportDocument(data)
	if err != nil {
		return types.ImportReport{}, err
	}
	if len(fieldErrs) > 0 {
		return types.ImportReport{}, &types.ValidationError{Fields: fieldErrs}
	}

	var (
		report types.ImportReport
		writes []Write
	)
	switch mode {
	case types.ImportReplace:
		writes, report = m.planReplace(payload)
	case types.ImportMerge:
		writes, report = m.planMerge(payload)
	}
	report.Mode = mode

	if err := Apply(m.kv, writes); err != nil {
		return types.ImportReport{}, fmt.Errorf("import: %w", err)
	}
	if err := m.store.RefreshFromStore(); err != nil {
		return types.ImportReport{}, fmt.Errorf("reloading after import: %w", err)
	}
	return report, nil
}

// planReplace overwrites each collection key wholesale with the payload's
// records. The profile key is replaced even when the payload omits it, so a
// replace import reproduces the exporting device's state exactly. Per-day
// override keys are written only for the dates the payload carries.
func (m *Manager) planReplace(p *types.ExportPayload) ([]Write, types.ImportReport) {
	var report types.ImportReport

	writes := []Write{
		encoded(types.KeyLogs, p.Logs),
		encoded(types.KeyCrisisEvents, p.CrisisEvents),
		encoded(types.KeyScheduleEntries, p.ScheduleEntries),
		encoded(types.KeyScheduleTemplates, p.ScheduleTemplates),
		encoded(types.KeyGoals, p.Goals),
		encoded(types.KeyChildProfile, p.ChildProfile),
	}
	report.Logs.Added = len(p.Logs)
	report.CrisisEvents.Added = len(p.CrisisEvents)
	report.ScheduleEntries.Added = len(p.ScheduleEntries)
	report.ScheduleTemplates.Added = len(p.ScheduleTemplates)
	report.Goals.Added = len(p.Goals)
	report.ProfileImported = p.ChildProfile != nil

	for name, activities := range p.DailySchedules {
		writes = append(writes, encoded(types.KeyDailySchedulePrefix+name, activities))
		report.DailySchedules++
	}
	return writes, report
}

// planMerge unions each incoming collection with the local one. Local
// records always win: an incoming record whose ID already exists locally is
// skipped, new records are appended after the local ones. The profile is
// imported only when no local profile exists, and per-day overrides only for
// keys with no local value.
func (m *Manager) planMerge(p *types.ExportPayload) ([]Write, types.ImportReport) {
	var (
		report types.ImportReport
		writes []Write
	)

	logs, count := mergeRecords(m.store.Logs(), p.Logs, func(l types.LogEntry) string { return l.ID })
	writes = append(writes, encoded(types.KeyLogs, logs))
	report.Logs = count

	crises, count := mergeRecords(m.store.CrisisEvents(), p.CrisisEvents, func(c types.CrisisEvent) string { return c.ID })
	writes = append(writes, encoded(types.KeyCrisisEvents, crises))
	report.CrisisEvents = count

	entries, count := mergeRecords(m.store.ScheduleEntries(), p.ScheduleEntries, func(e types.ScheduleEntry) string { return e.ID })
	writes = append(writes, encoded(types.KeyScheduleEntries, entries))
	report.ScheduleEntries = count

	templates, count := mergeRecords(m.store.ScheduleTemplates(), p.ScheduleTemplates, func(t types.ScheduleTemplate) string { return t.ID })
	writes = append(writes, encoded(types.KeyScheduleTemplates, templates))
	report.ScheduleTemplates = count

	goals, count := mergeRecords(m.store.Goals(), p.Goals, func(g types.Goal) string { return g.ID })
	writes = append(writes, encoded(types.KeyGoals, goals))
	report.Goals = count

	if _, ok := m.store.Profile(); !ok && p.ChildProfile != nil {
		writes = append(writes, encoded(types.KeyChildProfile, p.ChildProfile))
		report.ProfileImported = true
	}

	for name, activities := range p.DailySchedules {
		key := types.KeyDailySchedulePrefix + name
		if _, present, err := m.kv.Get(key); err == nil && present {
			continue
		}
		writes = append(writes, encoded(key, activities))
		report.DailySchedules++
	}
	return writes, report
}

// mergeRecords unions local and incoming records by ID. Local records keep
// their order and content; incoming records with new IDs are appended in
// payload order.
func mergeRecords[T any](local, incoming []T, id func(T) string) ([]T, types.CollectionCount) {
	seen := make(map[string]bool, len(local))
	for _, r := range local {
		seen[id(r)] = true
	}

	merged := local
	var count types.CollectionCount
	for _, r := range incoming {
		if seen[id(r)] {
			count.Skipped++
			continue
		}
		seen[id(r)] = true
		merged = append(merged, r)
		count.Added++
	}
	return merged, count
}

// encoded marshals v into a Write. The payload was already decoded from
// JSON, so re-encoding cannot fail.
func encoded(key string, v any) Write {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("encoding %s: %v", key, err))
	}
	return Write{Key: key, Value: string(data)}
}
