// Package schema is the sole gate between raw persisted bytes and typed
// in-memory records. The persistent store is outside the application's
// control (other processes, other app versions, hand edits), so nothing a
// validator here has not certified may enter the Collection Store.
//
// All failure is communicated through result values; no validator panics.
// Unknown extra fields in stored JSON never fail validation.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/compasscare/compass/pkg/types"
)

// DropFunc observes a record discarded during collection salvage: its index
// in the stored array and the field errors (or decode failure) that
// disqualified it.
type DropFunc func(index int, errs []types.FieldError)

// DecodeCollection parses raw as a JSON array of T and returns the subset of
// elements that decode and validate. Invalid elements are dropped and
// reported through onDrop, never fatal. If raw is not parseable as an array
// at all, fallback is returned. An empty raw value decodes to fallback.
func DecodeCollection[T any](raw string, fallback []T, validate func(T) []types.FieldError, onDrop DropFunc) []T {
	if raw == "" {
		return fallback
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fallback
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			if onDrop != nil {
				onDrop(i, []types.FieldError{{
					Path:    fmt.Sprintf("[%d]", i),
					Message: "malformed record: " + err.Error(),
				}})
			}
			continue
		}
		if errs := validate(v); len(errs) > 0 {
			if onDrop != nil {
				onDrop(i, errs)
			}
			continue
		}
		out = append(out, v)
	}
	return out
}

// DecodeSingle parses raw as a single T. It returns the typed value on
// success, or the field-level errors that rejected it.
func DecodeSingle[T any](raw string, validate func(T) []types.FieldError) (T, []types.FieldError) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, []types.FieldError{{Path: "", Message: "malformed record: " + err.Error()}}
	}
	if errs := validate(v); len(errs) > 0 {
		return v, errs
	}
	return v, nil
}

// rating10 appends a field error unless v is an integer rating in [1,10].
func rating10(errs []types.FieldError, path string, v int) []types.FieldError {
	if v < 1 || v > 10 {
		return append(errs, types.FieldError{Path: path, Message: "must be between 1 and 10"})
	}
	return errs
}

// nonNegative appends a field error unless v >= 0.
func nonNegative(errs []types.FieldError, path string, v int) []types.FieldError {
	if v < 0 {
		return append(errs, types.FieldError{Path: path, Message: "must not be negative"})
	}
	return errs
}

// knownContext appends a field error unless ctx is a recognized context.
func knownContext(errs []types.FieldError, path, ctx string) []types.FieldError {
	if !types.ValidContexts[ctx] {
		return append(errs, types.FieldError{Path: path, Message: "must be home or school"})
	}
	return errs
}

// parseableDate appends a field error unless date is a YYYY-MM-DD string.
func parseableDate(errs []types.FieldError, path, date string) []types.FieldError {
	if !ValidDate(date) {
		return append(errs, types.FieldError{Path: path, Message: "must be a YYYY-MM-DD date"})
	}
	return errs
}
