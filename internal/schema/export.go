package schema

import (
	"encoding/json"
	"strings"

	"github.com/compasscare/compass/pkg/types"
)

// ValidateExportDocument parses and certifies a backup document for import.
//
// Three outcomes, mirroring the import error taxonomy:
//   - data is not parseable as a JSON document at all: the
//     types.ErrCorruptPayload sentinel is returned;
//   - the document parses but any record fails validation: the structured
//     field-error list is returned and the payload must not be applied;
//   - otherwise the fully typed payload is returned.
//
// Unlike collection salvage, import is all-or-nothing: one bad record
// rejects the whole document.
func ValidateExportDocument(data []byte) (*types.ExportPayload, []types.FieldError, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, types.ErrCorruptPayload
	}
	if doc == nil {
		return nil, nil, types.ErrCorruptPayload
	}

	var errs []types.FieldError
	payload := &types.ExportPayload{}

	if raw, ok := doc["version"]; ok {
		if err := json.Unmarshal(raw, &payload.Version); err != nil {
			errs = append(errs, types.FieldError{Path: "version", Message: "must be a string"})
		}
	}
	if payload.Version == "" {
		errs = append(errs, types.FieldError{Path: "version", Message: "is required"})
	}

	if raw, ok := doc["exportedAt"]; ok {
		if err := json.Unmarshal(raw, &payload.ExportedAt); err != nil {
			errs = append(errs, types.FieldError{Path: "exportedAt", Message: "must be an ISO-8601 timestamp"})
		}
	}

	payload.Logs, errs = decodeArrayField(doc, "logs", ValidateLog, errs)
	payload.CrisisEvents, errs = decodeArrayField(doc, "crisisEvents", ValidateCrisis, errs)
	payload.ScheduleEntries, errs = decodeArrayField(doc, "scheduleEntries", ValidateScheduleEntry, errs)
	payload.ScheduleTemplates, errs = decodeArrayField(doc, "scheduleTemplates", ValidateTemplate, errs)
	payload.Goals, errs = decodeArrayField(doc, "goals", ValidateGoal, errs)

	if raw, ok := doc["childProfile"]; ok && !isJSONNull(raw) {
		var profile types.ChildProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			errs = append(errs, types.FieldError{Path: "childProfile", Message: "must be a profile object"})
		} else {
			for _, fe := range ValidateProfile(profile) {
				errs = append(errs, types.FieldError{Path: "childProfile." + fe.Path, Message: fe.Message})
			}
			payload.ChildProfile = &profile
		}
	}

	if raw, ok := doc["dailySchedules"]; ok && !isJSONNull(raw) {
		var daily map[string]json.RawMessage
		if err := json.Unmarshal(raw, &daily); err != nil {
			errs = append(errs, types.FieldError{Path: "dailySchedules", Message: "must be an object keyed by <date>_<context>"})
		} else {
			payload.DailySchedules = make(map[string][]types.Activity, len(daily))
			for name, rawActs := range daily {
				path := "dailySchedules." + name
				if !ValidDailyScheduleName(name) {
					errs = append(errs, types.FieldError{Path: path, Message: "key must be <YYYY-MM-DD>_<context>"})
					continue
				}
				var acts []types.Activity
				if err := json.Unmarshal(rawActs, &acts); err != nil {
					errs = append(errs, types.FieldError{Path: path, Message: "must be an activity array"})
					continue
				}
				for i, a := range acts {
					for _, fe := range ValidateActivity(activityPath(path, i), a) {
						errs = append(errs, fe)
					}
				}
				payload.DailySchedules[name] = acts
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return payload, nil, nil
}

// ValidDailyScheduleName reports whether name is a "<YYYY-MM-DD>_<context>"
// daily-schedule key suffix.
func ValidDailyScheduleName(name string) bool {
	_, _, ok := ParseDailyScheduleName(name)
	return ok
}

// decodeArrayField decodes doc[field] as an array of T, validating every
// element. A missing or null field decodes to an empty collection; anything
// else malformed contributes field errors. The updated error list is
// returned alongside the decoded records.
func decodeArrayField[T any](doc map[string]json.RawMessage, field string, validate func(T) []types.FieldError, errs []types.FieldError) ([]T, []types.FieldError) {
	raw, ok := doc[field]
	if !ok || isJSONNull(raw) {
		return []T{}, errs
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}, append(errs, types.FieldError{Path: field, Message: "must be an array"})
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			errs = append(errs, types.FieldError{Path: activityPath(field, i), Message: "malformed record"})
			continue
		}
		for _, fe := range validate(v) {
			errs = append(errs, types.FieldError{Path: activityPath(field, i) + "." + fe.Path, Message: fe.Message})
		}
		out = append(out, v)
	}
	return out, errs
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// ParseDailyScheduleName splits a daily-schedule key suffix into its date
// and context. ok is false when the name is not well-formed.
func ParseDailyScheduleName(name string) (date, context string, ok bool) {
	date, context, ok = strings.Cut(name, "_")
	if !ok || !ValidDate(date) || !types.ValidContexts[context] {
		return "", "", false
	}
	return date, context, true
}
