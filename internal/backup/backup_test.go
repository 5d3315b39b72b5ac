package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasscare/compass/internal/kv"
	"github.com/compasscare/compass/internal/store"
	"github.com/compasscare/compass/pkg/types"
)

// testClock is the frozen instant used across backup tests.
var testClock = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

// openManager creates a Manager over a fresh MemStore and store.
func openManager(t *testing.T) (*Manager, *store.Store, *kv.MemStore) {
	t.Helper()
	mem := kv.NewMemStore()
	st, err := store.Open(mem, nil, store.WithClock(func() time.Time { return testClock }))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	m := New(mem, st, WithClock(func() time.Time { return testClock }))
	return m, st, mem
}

// populate fills a store with one record of every collection plus the
// profile and a per-day schedule override.
func populate(t *testing.T, st *store.Store) {
	t.Helper()

	_, err := st.AddLog(types.LogInput{
		Timestamp: testClock, Context: types.ContextHome,
		Arousal: 6, Valence: 4, Energy: 7, Note: "after recess",
	})
	require.NoError(t, err)

	_, err = st.AddCrisisEvent(types.CrisisInput{
		Timestamp: testClock, Context: types.ContextSchool,
		Type: "meltdown", DurationSeconds: 300, PeakIntensity: 8,
	})
	require.NoError(t, err)

	_, err = st.AddScheduleEntry("2025-03-10", types.ContextHome, types.Activity{
		Title: "breakfast", ScheduledStart: "08:00", ScheduledEnd: "08:30", DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = st.AddScheduleTemplate("school day", types.ContextSchool, "monday", []types.Activity{
		{Title: "circle time", DurationMinutes: 20},
	})
	require.NoError(t, err)

	goal, err := st.AddGoal(types.GoalInput{
		Title: "independent dressing", TargetValue: 10, TargetUnit: "times",
		TargetDirection: types.DirectionIncrease,
		StartDate:       "2025-03-01", TargetDate: "2025-06-01",
	})
	require.NoError(t, err)
	_, err = st.AddGoalProgress(goal.ID, types.GoalProgressInput{
		Date: "2025-03-08", Value: 4, Context: types.ContextHome,
	})
	require.NoError(t, err)

	_, err = st.SaveProfile(types.ProfileInput{
		Name: "Alex", Diagnoses: []string{"ASD"},
	})
	require.NoError(t, err)

	require.NoError(t, st.SaveDailySchedule("2025-03-11", types.ContextHome, []types.Activity{
		{Title: "dentist", DurationMinutes: 45},
	}))
}

func TestExportSummary(t *testing.T) {
	m, st, _ := openManager(t)
	populate(t, st)

	_, err := st.AddCrisisEvent(types.CrisisInput{
		Timestamp: testClock.Add(time.Hour), Context: types.ContextHome,
		Type: "shutdown", DurationSeconds: 100, PeakIntensity: 5,
	})
	require.NoError(t, err)

	payload, err := m.Export()
	require.NoError(t, err)

	assert.Equal(t, types.ExportVersion, payload.Version)
	assert.Equal(t, testClock, payload.ExportedAt)

	s := payload.Summary
	assert.Equal(t, 1, s.TotalLogs)
	assert.Equal(t, 2, s.TotalCrisisEvents)
	assert.InDelta(t, 200.0, s.AverageCrisisDuration, 1e-9)
	assert.InDelta(t, 0.0, s.ScheduleCompletionRate, 1e-9, "single entry is still upcoming")
	assert.InDelta(t, 40.0, s.GoalProgress, 1e-9)
	require.NotNil(t, s.DateRange)
	assert.Equal(t, testClock, s.DateRange.Earliest)
	assert.Equal(t, testClock, s.DateRange.Latest)

	require.Contains(t, payload.DailySchedules, "2025-03-11_home")
}

func TestImportReplaceRoundTrip(t *testing.T) {
	source, sourceStore, _ := openManager(t)
	populate(t, sourceStore)
	data, err := source.ExportJSON()
	require.NoError(t, err)

	dest, destStore, _ := openManager(t)
	report, err := dest.Import(data, types.ImportReplace)
	require.NoError(t, err)

	assert.Equal(t, types.ImportReplace, report.Mode)
	assert.Equal(t, 5, report.Total())
	assert.True(t, report.ProfileImported)
	assert.Equal(t, 1, report.DailySchedules)

	assert.Equal(t, sourceStore.Logs(), destStore.Logs())
	assert.Equal(t, sourceStore.CrisisEvents(), destStore.CrisisEvents())
	assert.Equal(t, sourceStore.ScheduleEntries(), destStore.ScheduleEntries())
	assert.Equal(t, sourceStore.ScheduleTemplates(), destStore.ScheduleTemplates())
	assert.Equal(t, sourceStore.Goals(), destStore.Goals())

	profile, ok := destStore.Profile()
	require.True(t, ok)
	assert.Equal(t, "Alex", profile.Name)

	activities, ok, err := destStore.DailySchedule("2025-03-11", types.ContextHome)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dentist", activities[0].Title)
}

func TestImportReplaceOverwritesExistingData(t *testing.T) {
	source, sourceStore, _ := openManager(t)
	populate(t, sourceStore)
	data, err := source.ExportJSON()
	require.NoError(t, err)

	dest, destStore, _ := openManager(t)
	_, err = destStore.AddLog(types.LogInput{
		Timestamp: testClock, Context: types.ContextSchool,
		Arousal: 2, Valence: 2, Energy: 2,
	})
	require.NoError(t, err)

	_, err = dest.Import(data, types.ImportReplace)
	require.NoError(t, err)

	logs := destStore.Logs()
	require.Len(t, logs, 1, "pre-existing records are replaced, not merged")
	assert.Equal(t, sourceStore.Logs()[0].ID, logs[0].ID)
}

func TestImportMergeLocalRecordsWin(t *testing.T) {
	source, sourceStore, _ := openManager(t)
	first, err := sourceStore.AddLog(types.LogInput{
		Timestamp: testClock, Context: types.ContextHome,
		Arousal: 5, Valence: 5, Energy: 5, Note: "original",
	})
	require.NoError(t, err)
	seed, err := source.ExportJSON()
	require.NoError(t, err)

	dest, destStore, _ := openManager(t)
	_, err = dest.Import(seed, types.ImportReplace)
	require.NoError(t, err)

	// Diverge: the source edits the shared record and adds a new one.
	note := "edited elsewhere"
	sourceStore.UpdateLog(first.ID, types.LogPatch{Note: &note})
	_, err = sourceStore.AddLog(types.LogInput{
		Timestamp: testClock.Add(time.Hour), Context: types.ContextSchool,
		Arousal: 3, Valence: 6, Energy: 4, Note: "new on source",
	})
	require.NoError(t, err)
	diverged, err := source.ExportJSON()
	require.NoError(t, err)

	report, err := dest.Import(diverged, types.ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, types.CollectionCount{Added: 1, Skipped: 1}, report.Logs)

	logs := destStore.Logs()
	require.Len(t, logs, 2)
	kept, err2 := find(logs, first.ID)
	require.NoError(t, err2)
	assert.Equal(t, "original", kept.Note, "the local copy of a shared ID is kept")
}

func TestImportMergeIsIdempotent(t *testing.T) {
	source, sourceStore, _ := openManager(t)
	populate(t, sourceStore)
	data, err := source.ExportJSON()
	require.NoError(t, err)

	dest, destStore, _ := openManager(t)
	_, err = dest.Import(data, types.ImportMerge)
	require.NoError(t, err)

	report, err := dest.Import(data, types.ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total(), "second merge adds nothing")
	assert.Equal(t, 1, report.Logs.Skipped)
	assert.Equal(t, 1, report.Goals.Skipped)
	assert.False(t, report.ProfileImported, "a local profile already exists")
	assert.Len(t, destStore.Logs(), 1)
}

func TestImportMergeProfileOnlyWhenAbsent(t *testing.T) {
	source, sourceStore, _ := openManager(t)
	populate(t, sourceStore)
	data, err := source.ExportJSON()
	require.NoError(t, err)

	dest, destStore, _ := openManager(t)
	_, err = destStore.SaveProfile(types.ProfileInput{Name: "Robin"})
	require.NoError(t, err)

	report, err := dest.Import(data, types.ImportMerge)
	require.NoError(t, err)
	assert.False(t, report.ProfileImported)

	profile, ok := destStore.Profile()
	require.True(t, ok)
	assert.Equal(t, "Robin", profile.Name)
}

func TestImportCorruptPayloadTouchesNothing(t *testing.T) {
	m, st, mem := openManager(t)
	populate(t, st)
	before := mem.Snapshot()

	for _, payload := range []string{"", "{truncated", "null"} {
		_, err := m.Import([]byte(payload), types.ImportReplace)
		require.ErrorIs(t, err, types.ErrCorruptPayload)
	}
	assert.Equal(t, before, mem.Snapshot())
}

func TestImportInvalidDocumentTouchesNothing(t *testing.T) {
	m, st, mem := openManager(t)
	populate(t, st)
	before := mem.Snapshot()

	doc := `{"version":"1.0","logs":[{"id":"x","timestamp":"2025-03-10T14:30:00Z","context":"mars","arousal":5,"valence":5,"energy":5,"dayOfWeek":"monday","timeOfDay":"afternoon","hourOfDay":14}]}`
	_, err := m.Import([]byte(doc), types.ImportReplace)
	require.Error(t, err)

	ve, ok := types.AsValidationError(err)
	require.True(t, ok, "field-level failures surface as a validation error")
	require.NotEmpty(t, ve.Fields)
	assert.Equal(t, "logs[0].context", ve.Fields[0].Path)

	assert.Equal(t, before, mem.Snapshot())
}

func TestImportRollsBackOnMidwayFailure(t *testing.T) {
	source, sourceStore, _ := openManager(t)
	populate(t, sourceStore)
	data, err := source.ExportJSON()
	require.NoError(t, err)

	dest, destStore, mem := openManager(t)
	_, err = destStore.AddLog(types.LogInput{
		Timestamp: testClock, Context: types.ContextHome,
		Arousal: 1, Valence: 1, Energy: 1, Note: "precious",
	})
	require.NoError(t, err)
	before := mem.Snapshot()

	mem.FailSetOnce(2)
	_, err = dest.Import(data, types.ImportReplace)
	require.ErrorIs(t, err, types.ErrQuotaExceeded)

	assert.Equal(t, before, mem.Snapshot(), "every key is byte-for-byte in its pre-import state")
	require.Len(t, destStore.Logs(), 1)
	assert.Equal(t, "precious", destStore.Logs()[0].Note)
}

func TestImportRejectsUnknownMode(t *testing.T) {
	m, _, _ := openManager(t)
	_, err := m.Import([]byte(`{"version":"1.0"}`), "upsert")
	require.ErrorIs(t, err, types.ErrInvalidData)
}

// find returns the log entry with the given ID.
func find(logs []types.LogEntry, id string) (types.LogEntry, error) {
	for _, l := range logs {
		if l.ID == id {
			return l, nil
		}
	}
	return types.LogEntry{}, types.ErrNotFound
}
