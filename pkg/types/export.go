package types

import "time"

// ExportVersion is the format version written into export documents.
const ExportVersion = "1.0"

// Import modes.
const (
	ImportReplace = "replace"
	ImportMerge   = "merge"
)

// ValidImportModes is the set of recognized import modes.
var ValidImportModes = map[string]bool{
	ImportReplace: true,
	ImportMerge:   true,
}

// DateRange is the span of log timestamps covered by an export.
type DateRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// ExportSummary carries aggregate statistics for user-facing display of an
// export document.
type ExportSummary struct {
	TotalLogs              int        `json:"totalLogs"`
	TotalCrisisEvents      int        `json:"totalCrisisEvents"`
	AverageCrisisDuration  float64    `json:"averageCrisisDuration"`
	ScheduleCompletionRate float64    `json:"scheduleCompletionRate"`
	GoalProgress           float64    `json:"goalProgress"`
	DateRange              *DateRange `json:"dateRange,omitempty"`
}

// ExportPayload is the versioned backup document: every owned collection,
// the optional per-day schedule overrides keyed "<date>_<context>", and the
// summary statistics.
type ExportPayload struct {
	Version           string                `json:"version"`
	ExportedAt        time.Time             `json:"exportedAt"`
	Logs              []LogEntry            `json:"logs"`
	CrisisEvents      []CrisisEvent         `json:"crisisEvents"`
	ScheduleEntries   []ScheduleEntry       `json:"scheduleEntries"`
	ScheduleTemplates []ScheduleTemplate    `json:"scheduleTemplates"`
	Goals             []Goal                `json:"goals"`
	ChildProfile      *ChildProfile         `json:"childProfile"`
	DailySchedules    map[string][]Activity `json:"dailySchedules,omitempty"`
	Summary           ExportSummary         `json:"summary"`
}

// CollectionCount reports per-collection merge results.
type CollectionCount struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ImportReport summarizes a successful import for user feedback. In replace
// mode Skipped counts are always zero; in merge mode Added counts records
// whose IDs were new and Skipped counts records that already existed.
type ImportReport struct {
	Mode              string          `json:"mode"`
	Logs              CollectionCount `json:"logs"`
	CrisisEvents      CollectionCount `json:"crisisEvents"`
	ScheduleEntries   CollectionCount `json:"scheduleEntries"`
	ScheduleTemplates CollectionCount `json:"scheduleTemplates"`
	Goals             CollectionCount `json:"goals"`
	ProfileImported   bool            `json:"profileImported"`
	DailySchedules    int             `json:"dailySchedules"`
}

// Total returns the number of records added across all collections.
func (r ImportReport) Total() int {
	return r.Logs.Added + r.CrisisEvents.Added + r.ScheduleEntries.Added +
		r.ScheduleTemplates.Added + r.Goals.Added
}
