package types

import "time"

// Contexts a record can be captured in.
const (
	ContextHome   = "home"
	ContextSchool = "school"
)

// ValidContexts is the set of recognized context values.
var ValidContexts = map[string]bool{
	ContextHome:   true,
	ContextSchool: true,
}

// Time-of-day buckets derived from a record's timestamp at creation.
const (
	TimeOfDayMorning   = "morning"   // 05:00-11:59
	TimeOfDayAfternoon = "afternoon" // 12:00-16:59
	TimeOfDayEvening   = "evening"   // 17:00-20:59
	TimeOfDayNight     = "night"     // 21:00-04:59
)

// LogEntry is one behavior observation. Arousal, valence, and energy are
// integer ratings in [1,10]. DayOfWeek, TimeOfDay, and HourOfDay are derived
// from Timestamp exactly once, when the entry is created; updates never
// recompute them.
type LogEntry struct {
	ID                    string    `json:"id"`
	Timestamp             time.Time `json:"timestamp"`
	Context               string    `json:"context"`
	Arousal               int       `json:"arousal"`
	Valence               int       `json:"valence"`
	Energy                int       `json:"energy"`
	SensoryTriggers       []string  `json:"sensoryTriggers"`
	ContextTriggers       []string  `json:"contextTriggers"`
	Strategies            []string  `json:"strategies"`
	StrategyEffectiveness *int      `json:"strategyEffectiveness,omitempty"`
	DurationMinutes       int       `json:"duration"`
	Note                  string    `json:"note"`

	// Derived at creation.
	DayOfWeek string `json:"dayOfWeek"`
	TimeOfDay string `json:"timeOfDay"`
	HourOfDay int    `json:"hourOfDay"`
}

// LogInput carries the caller-supplied fields of a new LogEntry, before
// validation and enrichment.
type LogInput struct {
	Timestamp             time.Time
	Context               string
	Arousal               int
	Valence               int
	Energy                int
	SensoryTriggers       []string
	ContextTriggers       []string
	Strategies            []string
	StrategyEffectiveness *int
	DurationMinutes       int
	Note                  string
}

// LogPatch is a shallow partial update of a LogEntry. Nil fields are left
// unchanged. Derived fields cannot be patched.
type LogPatch struct {
	Context               *string
	Arousal               *int
	Valence               *int
	Energy                *int
	SensoryTriggers       []string
	ContextTriggers       []string
	Strategies            []string
	StrategyEffectiveness *int
	DurationMinutes       *int
	Note                  *string
}
