package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasscare/compass/pkg/types"
)

func validExportDoc(t *testing.T) []byte {
	t.Helper()
	payload := types.ExportPayload{
		Version:    types.ExportVersion,
		ExportedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Logs:       []types.LogEntry{sampleLog("a", 5)},
		Goals: []types.Goal{{
			ID:              "g1",
			Title:           "More words",
			TargetDirection: types.DirectionIncrease,
			StartDate:       "2025-01-01",
			TargetDate:      "2025-06-01",
			Status:          types.GoalStatusInProgress,
		}},
		ChildProfile: &types.ChildProfile{ID: "p1", Name: "Alex"},
		DailySchedules: map[string][]types.Activity{
			"2025-03-10_home": {{ID: "a1", Title: "Breakfast"}},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestValidateExportDocumentAccepts(t *testing.T) {
	payload, errs, err := ValidateExportDocument(validExportDoc(t))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, payload)

	assert.Equal(t, types.ExportVersion, payload.Version)
	assert.Len(t, payload.Logs, 1)
	assert.Len(t, payload.Goals, 1)
	require.NotNil(t, payload.ChildProfile)
	assert.Equal(t, "Alex", payload.ChildProfile.Name)
	assert.Len(t, payload.DailySchedules["2025-03-10_home"], 1)
	assert.Empty(t, payload.CrisisEvents)
	assert.Empty(t, payload.ScheduleEntries)
}

func TestValidateExportDocumentCorrupt(t *testing.T) {
	for _, raw := range []string{"", "{truncated", "[1,2,3", "null"} {
		_, _, err := ValidateExportDocument([]byte(raw))
		assert.ErrorIs(t, err, types.ErrCorruptPayload, "payload %q", raw)
	}
}

func TestValidateExportDocumentFieldErrors(t *testing.T) {
	doc := map[string]any{
		"version": types.ExportVersion,
		"logs": []map[string]any{{
			"id":        "a",
			"timestamp": "2025-03-10T14:30:00Z",
			"context":   "spaceship",
			"arousal":   15,
			"valence":   5,
			"energy":    5,
			"hourOfDay": 14,
		}},
		"goals": "not an array",
		"dailySchedules": map[string]any{
			"badkey": []any{},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	payload, errs, verr := ValidateExportDocument(data)
	require.NoError(t, verr, "well-formed JSON is not corrupt")
	require.Nil(t, payload, "payload must not be returned alongside errors")
	require.NotEmpty(t, errs)

	paths := make(map[string]bool, len(errs))
	for _, e := range errs {
		paths[e.Path] = true
	}
	assert.True(t, paths["logs[0].context"])
	assert.True(t, paths["logs[0].arousal"])
	assert.True(t, paths["goals"])
	assert.True(t, paths["dailySchedules.badkey"])
}

func TestValidateExportDocumentMissingVersion(t *testing.T) {
	_, errs, err := ValidateExportDocument([]byte(`{"logs": []}`))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "version", errs[0].Path)
}
