package types

// Storage keys. Each collection or singleton lives under one fixed key in
// the persistent key-value store; per-day schedule overrides live under
// KeyDailySchedulePrefix plus a "<date>_<context>" suffix.
const (
	KeyLogs              = "compass_logs"
	KeyCrisisEvents      = "compass_crisis_events"
	KeyScheduleEntries   = "compass_schedule_entries"
	KeyScheduleTemplates = "compass_schedule_templates"
	KeyGoals             = "compass_goals"
	KeyChildProfile      = "compass_child_profile"
	KeyOnboarding        = "compass_onboarding_complete"
	KeyCurrentContext    = "compass_current_context"

	KeyDailySchedulePrefix = "compass_daily_schedule_"
)

// CollectionKeys lists the fixed (non per-day) keys owned by the data layer,
// in the order export and import traverse them.
var CollectionKeys = []string{
	KeyLogs,
	KeyCrisisEvents,
	KeyScheduleEntries,
	KeyScheduleTemplates,
	KeyGoals,
	KeyChildProfile,
}

// DailyScheduleKey returns the storage key for the per-day schedule override
// of the given date (YYYY-MM-DD) and context.
func DailyScheduleKey(date, context string) string {
	return KeyDailySchedulePrefix + date + "_" + context
}
