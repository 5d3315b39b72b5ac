package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasscare/compass/pkg/types"
)

func TestAddScheduleEntry(t *testing.T) {
	s, _ := openStore(t)

	entry, err := s.AddScheduleEntry("2025-03-10", types.ContextSchool, types.Activity{
		Title: "Circle time", Icon: "circle", ScheduledStart: "09:00", ScheduledEnd: "09:30", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, types.ScheduleStatusUpcoming, entry.Status)
	assert.NotEmpty(t, entry.Activity.ID, "activity sub-record always present, with an id")

	_, err = s.AddScheduleEntry("not-a-date", types.ContextSchool, types.Activity{})
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, s.ScheduleEntries(), 1)
}

func TestUpdateScheduleEntryStatus(t *testing.T) {
	s, _ := openStore(t)

	entry, err := s.AddScheduleEntry("2025-03-10", types.ContextHome, types.Activity{Title: "Bath"})
	require.NoError(t, err)

	completed := types.ScheduleStatusCompleted
	start := testClock
	end := testClock.Add(20 * time.Minute)
	s.UpdateScheduleEntry(entry.ID, types.SchedulePatch{
		Status:      &completed,
		ActualStart: &start,
		ActualEnd:   &end,
		Rating:      &types.ActivityRating{Arousal: 3, Valence: 8, Energy: 5},
	})

	got := s.ScheduleEntriesOn("2025-03-10", types.ContextHome)
	require.Len(t, got, 1)
	assert.Equal(t, types.ScheduleStatusCompleted, got[0].Status)
	require.NotNil(t, got[0].Rating)
	assert.Equal(t, 8, got[0].Rating.Valence)
}

func TestApplyTemplate(t *testing.T) {
	s, _ := openStore(t)

	tpl, err := s.AddScheduleTemplate("School morning", types.ContextSchool, "monday", []types.Activity{
		{ID: "a1", Title: "Arrival", DurationMinutes: 10},
		{ID: "a2", Title: "Circle time", DurationMinutes: 30},
	})
	require.NoError(t, err)

	created, err := s.ApplyTemplate(tpl.ID, "2025-03-17")
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, e := range created {
		assert.Equal(t, "2025-03-17", e.Date)
		assert.Equal(t, types.ContextSchool, e.Context)
		assert.Equal(t, types.ScheduleStatusUpcoming, e.Status)
	}
	assert.Len(t, s.ScheduleEntriesOn("2025-03-17", ""), 2)

	_, err = s.ApplyTemplate("missing", "2025-03-17")
	assert.ErrorIs(t, err, types.ErrNotFound)

	empty, err := s.AddScheduleTemplate("Empty", types.ContextHome, types.TemplateDayAll, nil)
	require.NoError(t, err)
	_, err = s.ApplyTemplate(empty.ID, "2025-03-17")
	assert.ErrorIs(t, err, types.ErrInvalidData, "unusable template cannot be applied")
}

func TestDailyScheduleOverrides(t *testing.T) {
	s, mem := openStore(t)

	acts := []types.Activity{{ID: "a1", Title: "Swimming", DurationMinutes: 45}}
	require.NoError(t, s.SaveDailySchedule("2025-03-10", types.ContextHome, acts))

	_, ok, err := mem.Get(types.DailyScheduleKey("2025-03-10", types.ContextHome))
	require.NoError(t, err)
	assert.True(t, ok, "override persisted under its per-day key")

	got, ok, err := s.DailySchedule("2025-03-10", types.ContextHome)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Swimming", got[0].Title)

	_, ok, err = s.DailySchedule("2025-03-11", types.ContextHome)
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.SaveDailySchedule("2025-03-10", "car", acts)
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
}
