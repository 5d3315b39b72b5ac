package types

import "time"

// CrisisEvent records a crisis episode. PeakIntensity is an integer rating
// in [1,10]; DurationSeconds is non-negative. Derived fields follow the same
// once-at-creation rule as LogEntry.
type CrisisEvent struct {
	ID                   string    `json:"id"`
	Timestamp            time.Time `json:"timestamp"`
	Context              string    `json:"context"`
	Type                 string    `json:"type"`
	DurationSeconds      int       `json:"durationSeconds"`
	PeakIntensity        int       `json:"peakIntensity"`
	WarningSignsObserved []string  `json:"warningSignsObserved"`
	SensoryTriggers      []string  `json:"sensoryTriggers"`
	ContextTriggers      []string  `json:"contextTriggers"`
	StrategiesUsed       []string  `json:"strategiesUsed"`
	Resolution           string    `json:"resolution"`
	HasAudioRecording    bool      `json:"hasAudioRecording"`
	Notes                string    `json:"notes"`

	// Derived at creation.
	DayOfWeek string `json:"dayOfWeek"`
	TimeOfDay string `json:"timeOfDay"`
	HourOfDay int    `json:"hourOfDay"`
}

// CrisisInput carries the caller-supplied fields of a new CrisisEvent.
type CrisisInput struct {
	Timestamp            time.Time
	Context              string
	Type                 string
	DurationSeconds      int
	PeakIntensity        int
	WarningSignsObserved []string
	SensoryTriggers      []string
	ContextTriggers      []string
	StrategiesUsed       []string
	Resolution           string
	HasAudioRecording    bool
	Notes                string
}

// CrisisPatch is a shallow partial update of a CrisisEvent. Nil fields are
// left unchanged.
type CrisisPatch struct {
	Context              *string
	Type                 *string
	DurationSeconds      *int
	PeakIntensity        *int
	WarningSignsObserved []string
	SensoryTriggers      []string
	ContextTriggers      []string
	StrategiesUsed       []string
	Resolution           *string
	HasAudioRecording    *bool
	Notes                *string
}
