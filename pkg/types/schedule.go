package types

import "time"

// Schedule entry states.
const (
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCurrent   = "current"
	ScheduleStatusUpcoming  = "upcoming"
	ScheduleStatusSkipped   = "skipped"
	ScheduleStatusModified  = "modified"
)

// ValidScheduleStatuses is the set of recognized schedule entry statuses.
var ValidScheduleStatuses = map[string]bool{
	ScheduleStatusCompleted: true,
	ScheduleStatusCurrent:   true,
	ScheduleStatusUpcoming:  true,
	ScheduleStatusSkipped:   true,
	ScheduleStatusModified:  true,
}

// Activity is the planned content of a schedule entry. Times are "HH:MM"
// clock strings within the entry's date.
type Activity struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Icon            string `json:"icon"`
	ScheduledStart  string `json:"scheduledStart"`
	ScheduledEnd    string `json:"scheduledEnd"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ActivityRating holds optional post-activity ratings.
type ActivityRating struct {
	Arousal int `json:"arousal"`
	Valence int `json:"valence"`
	Energy  int `json:"energy"`
}

// ScheduleEntry is one scheduled activity on a concrete date. The Activity
// sub-record is always present. Date is a "YYYY-MM-DD" string.
type ScheduleEntry struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Context     string          `json:"context"`
	Activity    Activity        `json:"activity"`
	Status      string          `json:"status"`
	ActualStart *time.Time      `json:"actualStart,omitempty"`
	ActualEnd   *time.Time      `json:"actualEnd,omitempty"`
	Rating      *ActivityRating `json:"rating,omitempty"`
}

// SchedulePatch is a shallow partial update of a ScheduleEntry.
type SchedulePatch struct {
	Status      *string
	ActualStart *time.Time
	ActualEnd   *time.Time
	Rating      *ActivityRating
	Activity    *Activity
}

// TemplateDayAll marks a template applying to every weekday.
const TemplateDayAll = "all"

// ScheduleTemplate is a reusable daily plan. DayOfWeek is a lowercase
// weekday name or TemplateDayAll. A template needs at least one activity to
// be usable.
type ScheduleTemplate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Context    string     `json:"context"`
	DayOfWeek  string     `json:"dayOfWeek"`
	Activities []Activity `json:"activities"`
}

// Usable reports whether the template has any activities to instantiate.
func (t ScheduleTemplate) Usable() bool {
	return len(t.Activities) > 0
}
