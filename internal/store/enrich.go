package store

import (
	"strings"
	"time"

	"github.com/compasscare/compass/pkg/types"
)

// derived computes the enrichment fields for a record timestamp: lowercase
// weekday name, time-of-day bucket, and hour of day. Enrichment happens
// exactly once, at record creation; updates never recompute these.
func derived(ts time.Time) (dayOfWeek, timeOfDay string, hourOfDay int) {
	hourOfDay = ts.Hour()
	return strings.ToLower(ts.Weekday().String()), timeOfDayBucket(hourOfDay), hourOfDay
}

// timeOfDayBucket maps an hour to its bucket: morning 05-11, afternoon
// 12-16, evening 17-20, night otherwise.
func timeOfDayBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return types.TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return types.TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return types.TimeOfDayEvening
	default:
		return types.TimeOfDayNight
	}
}
