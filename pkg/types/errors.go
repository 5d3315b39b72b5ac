package types

import (
	"errors"
	"fmt"
	"strings"
)

// Store lifecycle errors.
var (
	ErrStoreClosed    = errors.New("store is closed")
	ErrAlreadyOpen    = errors.New("store is already open")
	ErrUnknownBackend = errors.New("unknown backend")
	ErrBackendEmpty   = errors.New("backend must not be empty")
)

// Record operation errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
)

// Persistence errors.
var (
	// ErrQuotaExceeded is returned when the persistent store refuses a write
	// because the backend's storage quota would be exceeded.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrCorruptPayload is returned when an import document cannot be parsed
	// at all. No key is touched when this is returned.
	ErrCorruptPayload = errors.New("import payload is not parseable")
)

// FieldError describes a single field-level validation failure: the path of
// the offending field (for example "logs[2].arousal") and a human-readable
// message.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Path + ": " + e.Message
}

// ValidationError aggregates the field-level failures of one validation pass.
// It is returned (never panicked) by add operations and by import, so callers
// can branch on success/failure and render each field error.
type ValidationError struct {
	Fields []FieldError
}

// Error renders the first few field errors plus a count of the rest.
func (e *ValidationError) Error() string {
	const show = 3
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, show+1)
	for i, f := range e.Fields {
		if i == show {
			parts = append(parts, fmt.Sprintf("and %d more", len(e.Fields)-show))
			break
		}
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err to a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
