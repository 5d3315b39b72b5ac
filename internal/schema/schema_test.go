package schema

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasscare/compass/pkg/types"
)

// sampleLog returns a valid stored log entry with the given id and arousal.
func sampleLog(id string, arousal int) types.LogEntry {
	return types.LogEntry{
		ID:        id,
		Timestamp: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Context:   types.ContextHome,
		Arousal:   arousal,
		Valence:   5,
		Energy:    5,
		Note:      "sample",
		DayOfWeek: "monday",
		TimeOfDay: types.TimeOfDayAfternoon,
		HourOfDay: 14,
	}
}

func marshalLogs(t *testing.T, logs []types.LogEntry) string {
	t.Helper()
	data, err := json.Marshal(logs)
	require.NoError(t, err)
	return string(data)
}

func TestDecodeCollectionSalvage(t *testing.T) {
	logs := []types.LogEntry{
		sampleLog("a", 5),
		sampleLog("b", 15), // out of range, must be dropped
		sampleLog("c", 1),
		sampleLog("d", 10),
		sampleLog("e", 7),
	}
	raw := marshalLogs(t, logs)

	var dropped [][]types.FieldError
	got := DecodeCollection(raw, nil, ValidateLog, func(i int, errs []types.FieldError) {
		dropped = append(dropped, errs)
	})

	require.Len(t, got, 4, "the valid subset is salvaged, not discarded wholesale")
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"a", "c", "d", "e"}, ids)

	require.Len(t, dropped, 1)
	assert.Equal(t, "arousal", dropped[0][0].Path)
}

func TestDecodeCollectionFallback(t *testing.T) {
	fallback := []types.LogEntry{}

	tests := []struct {
		name string
		raw  string
	}{
		{"empty value", ""},
		{"not JSON", "){corrupt"},
		{"not an array", `{"id":"a"}`},
		{"scalar", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeCollection(tt.raw, fallback, ValidateLog, nil)
			assert.Equal(t, fallback, got)
		})
	}
}

func TestDecodeCollectionMalformedElement(t *testing.T) {
	raw := fmt.Sprintf(`[%s, "not an object"]`, mustMarshal(sampleLog("a", 5)))

	var drops int
	got := DecodeCollection(raw, nil, ValidateLog, func(int, []types.FieldError) { drops++ })
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 1, drops)
}

func TestDecodeCollectionToleratesUnknownFields(t *testing.T) {
	raw := `[{
		"id": "a",
		"timestamp": "2025-03-10T14:30:00Z",
		"context": "home",
		"arousal": 5, "valence": 5, "energy": 5,
		"duration": 0, "note": "",
		"dayOfWeek": "monday", "timeOfDay": "afternoon", "hourOfDay": 14,
		"futureField": {"nested": true}
	}]`
	got := DecodeCollection(raw, nil, ValidateLog, nil)
	require.Len(t, got, 1, "unknown extra fields must not fail validation")
}

func TestDecodeSingle(t *testing.T) {
	profile := types.ChildProfile{ID: "p1", Name: "Alex"}
	raw := mustMarshal(profile)

	got, errs := DecodeSingle(raw, ValidateProfile)
	require.Empty(t, errs)
	assert.Equal(t, "Alex", got.Name)

	_, errs = DecodeSingle(`{"id":"p1"}`, ValidateProfile)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Path)

	_, errs = DecodeSingle(`nonsense`, ValidateProfile)
	require.Len(t, errs, 1)
}

func TestValidateLogInputRejectsNotClamps(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*types.LogInput)
		wantPath string
	}{
		{"arousal high", func(in *types.LogInput) { in.Arousal = 11 }, "arousal"},
		{"arousal low", func(in *types.LogInput) { in.Arousal = 0 }, "arousal"},
		{"valence out of range", func(in *types.LogInput) { in.Valence = -3 }, "valence"},
		{"energy out of range", func(in *types.LogInput) { in.Energy = 100 }, "energy"},
		{"negative duration", func(in *types.LogInput) { in.DurationMinutes = -1 }, "duration"},
		{"unknown context", func(in *types.LogInput) { in.Context = "car" }, "context"},
		{"zero timestamp", func(in *types.LogInput) { in.Timestamp = time.Time{} }, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := types.LogInput{
				Timestamp: time.Now(),
				Context:   types.ContextSchool,
				Arousal:   5, Valence: 5, Energy: 5,
			}
			tt.mutate(&in)
			errs := ValidateLogInput(in)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantPath, errs[0].Path)
		})
	}

	valid := types.LogInput{
		Timestamp: time.Now(),
		Context:   types.ContextHome,
		Arousal:   1, Valence: 10, Energy: 5,
	}
	assert.Empty(t, ValidateLogInput(valid))
}

func TestValidateCrisisInput(t *testing.T) {
	in := types.CrisisInput{
		Timestamp:       time.Now(),
		Context:         types.ContextHome,
		Type:            "meltdown",
		DurationSeconds: 300,
		PeakIntensity:   8,
	}
	assert.Empty(t, ValidateCrisisInput(in))

	in.PeakIntensity = 0
	in.DurationSeconds = -1
	in.Type = ""
	errs := ValidateCrisisInput(in)
	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	assert.ElementsMatch(t, []string{"type", "durationSeconds", "peakIntensity"}, paths)
}

func TestValidateTemplate(t *testing.T) {
	tpl := types.ScheduleTemplate{
		ID:        "t1",
		Name:      "School morning",
		Context:   types.ContextSchool,
		DayOfWeek: "monday",
		Activities: []types.Activity{
			{ID: "a1", Title: "Breakfast", DurationMinutes: 20},
		},
	}
	assert.Empty(t, ValidateTemplate(tpl))
	assert.True(t, tpl.Usable())

	tpl.DayOfWeek = "someday"
	errs := ValidateTemplate(tpl)
	require.Len(t, errs, 1)
	assert.Equal(t, "dayOfWeek", errs[0].Path)

	tpl.DayOfWeek = types.TemplateDayAll
	tpl.Activities = nil
	assert.Empty(t, ValidateTemplate(tpl), "empty template is valid, just unusable")
	assert.False(t, tpl.Usable())
}

func TestParseDailyScheduleName(t *testing.T) {
	date, ctx, ok := ParseDailyScheduleName("2025-03-10_home")
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", date)
	assert.Equal(t, types.ContextHome, ctx)

	for _, bad := range []string{"2025-03-10", "notadate_home", "2025-03-10_car", ""} {
		_, _, ok := ParseDailyScheduleName(bad)
		assert.False(t, ok, "name %q should be rejected", bad)
	}
}

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
