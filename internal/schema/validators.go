package schema

import (
	"strconv"
	"time"

	"github.com/compasscare/compass/pkg/types"
)

// ValidDate reports whether date is a parseable YYYY-MM-DD string.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// validWeekdays holds the lowercase weekday names used by derived fields and
// schedule templates.
var validWeekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// ValidateLogInput checks the business constraints of a new log entry before
// enrichment: ratings in range, known context, parseable timestamp,
// non-negative duration. Records violating these are rejected, never
// clamped.
func ValidateLogInput(in types.LogInput) []types.FieldError {
	var errs []types.FieldError
	if in.Timestamp.IsZero() {
		errs = append(errs, types.FieldError{Path: "timestamp", Message: "is required"})
	}
	errs = knownContext(errs, "context", in.Context)
	errs = rating10(errs, "arousal", in.Arousal)
	errs = rating10(errs, "valence", in.Valence)
	errs = rating10(errs, "energy", in.Energy)
	if in.StrategyEffectiveness != nil {
		errs = rating10(errs, "strategyEffectiveness", *in.StrategyEffectiveness)
	}
	errs = nonNegative(errs, "duration", in.DurationMinutes)
	return errs
}

// ValidateLog certifies a stored log entry, derived fields included.
func ValidateLog(e types.LogEntry) []types.FieldError {
	errs := ValidateLogInput(types.LogInput{
		Timestamp:             e.Timestamp,
		Context:               e.Context,
		Arousal:               e.Arousal,
		Valence:               e.Valence,
		Energy:                e.Energy,
		StrategyEffectiveness: e.StrategyEffectiveness,
		DurationMinutes:       e.DurationMinutes,
	})
	if e.ID == "" {
		errs = append(errs, types.FieldError{Path: "id", Message: "is required"})
	}
	if e.HourOfDay < 0 || e.HourOfDay > 23 {
		errs = append(errs, types.FieldError{Path: "hourOfDay", Message: "must be between 0 and 23"})
	}
	return errs
}

// ValidateCrisisInput checks the business constraints of a new crisis event.
func ValidateCrisisInput(in types.CrisisInput) []types.FieldError {
	var errs []types.FieldError
	if in.Timestamp.IsZero() {
		errs = append(errs, types.FieldError{Path: "timestamp", Message: "is required"})
	}
	errs = knownContext(errs, "context", in.Context)
	if in.Type == "" {
		errs = append(errs, types.FieldError{Path: "type", Message: "is required"})
	}
	errs = nonNegative(errs, "durationSeconds", in.DurationSeconds)
	errs = rating10(errs, "peakIntensity", in.PeakIntensity)
	return errs
}

// ValidateCrisis certifies a stored crisis event, derived fields included.
func ValidateCrisis(e types.CrisisEvent) []types.FieldError {
	errs := ValidateCrisisInput(types.CrisisInput{
		Timestamp:       e.Timestamp,
		Context:         e.Context,
		Type:            e.Type,
		DurationSeconds: e.DurationSeconds,
		PeakIntensity:   e.PeakIntensity,
	})
	if e.ID == "" {
		errs = append(errs, types.FieldError{Path: "id", Message: "is required"})
	}
	if e.HourOfDay < 0 || e.HourOfDay > 23 {
		errs = append(errs, types.FieldError{Path: "hourOfDay", Message: "must be between 0 and 23"})
	}
	return errs
}

// ValidateActivity certifies an activity sub-record. path prefixes every
// field error, so callers can report nested positions.
func ValidateActivity(path string, a types.Activity) []types.FieldError {
	var errs []types.FieldError
	if a.Title == "" {
		errs = append(errs, types.FieldError{Path: path + ".title", Message: "is required"})
	}
	errs = nonNegative(errs, path+".durationMinutes", a.DurationMinutes)
	return errs
}

// ValidateScheduleEntry certifies a stored schedule entry. The activity
// sub-record must always be present (a zero activity has no title).
func ValidateScheduleEntry(e types.ScheduleEntry) []types.FieldError {
	var errs []types.FieldError
	if e.ID == "" {
		errs = append(errs, types.FieldError{Path: "id", Message: "is required"})
	}
	errs = parseableDate(errs, "date", e.Date)
	errs = knownContext(errs, "context", e.Context)
	if !types.ValidScheduleStatuses[e.Status] {
		errs = append(errs, types.FieldError{Path: "status", Message: "is not a recognized status"})
	}
	errs = append(errs, ValidateActivity("activity", e.Activity)...)
	if e.Rating != nil {
		errs = rating10(errs, "rating.arousal", e.Rating.Arousal)
		errs = rating10(errs, "rating.valence", e.Rating.Valence)
		errs = rating10(errs, "rating.energy", e.Rating.Energy)
	}
	return errs
}

// ValidateTemplate certifies a stored schedule template. An empty activity
// list is valid (the template is merely unusable until populated).
func ValidateTemplate(tpl types.ScheduleTemplate) []types.FieldError {
	var errs []types.FieldError
	if tpl.ID == "" {
		errs = append(errs, types.FieldError{Path: "id", Message: "is required"})
	}
	if tpl.Name == "" {
		errs = append(errs, types.FieldError{Path: "name", Message: "is required"})
	}
	errs = knownContext(errs, "context", tpl.Context)
	if tpl.DayOfWeek != types.TemplateDayAll && !validWeekdays[tpl.DayOfWeek] {
		errs = append(errs, types.FieldError{Path: "dayOfWeek", Message: "must be a weekday name or \"all\""})
	}
	for i, a := range tpl.Activities {
		errs = append(errs, ValidateActivity(activityPath("activities", i), a)...)
	}
	return errs
}

// ValidateGoalInput checks the business constraints of a new goal.
func ValidateGoalInput(in types.GoalInput) []types.FieldError {
	var errs []types.FieldError
	if in.Title == "" {
		errs = append(errs, types.FieldError{Path: "title", Message: "is required"})
	}
	if !types.ValidDirections[in.TargetDirection] {
		errs = append(errs, types.FieldError{Path: "targetDirection", Message: "must be increase, decrease, or maintain"})
	}
	errs = parseableDate(errs, "startDate", in.StartDate)
	errs = parseableDate(errs, "targetDate", in.TargetDate)
	return errs
}

// ValidateGoal certifies a stored goal, embedded progress history included.
func ValidateGoal(g types.Goal) []types.FieldError {
	errs := ValidateGoalInput(types.GoalInput{
		Title:           g.Title,
		TargetDirection: g.TargetDirection,
		StartDate:       g.StartDate,
		TargetDate:      g.TargetDate,
	})
	if g.ID == "" {
		errs = append(errs, types.FieldError{Path: "id", Message: "is required"})
	}
	if !types.ValidGoalStatuses[g.Status] {
		errs = append(errs, types.FieldError{Path: "status", Message: "is not a recognized status"})
	}
	for i, p := range g.ProgressHistory {
		errs = append(errs, ValidateGoalProgress(activityPath("progressHistory", i), p)...)
	}
	return errs
}

// ValidateGoalProgress certifies one embedded progress record.
func ValidateGoalProgress(path string, p types.GoalProgress) []types.FieldError {
	var errs []types.FieldError
	if p.ID == "" {
		errs = append(errs, types.FieldError{Path: path + ".id", Message: "is required"})
	}
	errs = parseableDate(errs, path+".date", p.Date)
	return errs
}

// ValidateGoalProgressInput checks the business constraints of a new
// progress measurement.
func ValidateGoalProgressInput(in types.GoalProgressInput) []types.FieldError {
	var errs []types.FieldError
	errs = parseableDate(errs, "date", in.Date)
	errs = knownContext(errs, "context", in.Context)
	return errs
}

// ValidateProfileInput checks the business constraints of the child profile.
func ValidateProfileInput(in types.ProfileInput) []types.FieldError {
	var errs []types.FieldError
	if in.Name == "" {
		errs = append(errs, types.FieldError{Path: "name", Message: "is required"})
	}
	return errs
}

// ValidateProfile certifies a stored child profile.
func ValidateProfile(p types.ChildProfile) []types.FieldError {
	errs := ValidateProfileInput(types.ProfileInput{Name: p.Name})
	if p.ID == "" {
		errs = append(errs, types.FieldError{Path: "id", Message: "is required"})
	}
	return errs
}

func activityPath(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}
