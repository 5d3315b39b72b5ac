package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrUnknownBackend",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrUnknownBackend,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid memory config without DataDir",
			config:  Config{Backend: BackendMemory},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ve := &ValidationError{Fields: []FieldError{
		{Path: "arousal", Message: "must be between 1 and 10"},
		{Path: "context", Message: "must be home or school"},
		{Path: "valence", Message: "must be between 1 and 10"},
		{Path: "energy", Message: "must be between 1 and 10"},
	}}
	got := ve.Error()
	want := "validation failed: arousal: must be between 1 and 10; " +
		"context: must be home or school; valence: must be between 1 and 10; and 1 more"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestDailyScheduleKey(t *testing.T) {
	got := DailyScheduleKey("2025-03-10", ContextSchool)
	want := "compass_daily_schedule_2025-03-10_school"
	if got != want {
		t.Fatalf("DailyScheduleKey = %q, want %q", got, want)
	}
}
