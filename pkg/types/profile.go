package types

import "time"

// ChildProfile describes the tracked child. One profile exists per
// installation; UpdatedAt is bumped on every update.
type ChildProfile struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Diagnoses            []string  `json:"diagnoses"`
	CommunicationStyle   string    `json:"communicationStyle"`
	SensorySensitivities []string  `json:"sensorySensitivities"`
	SeekingSensory       []string  `json:"seekingSensory"`
	EffectiveStrategies  []string  `json:"effectiveStrategies"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ProfileInput carries the caller-supplied fields of the child profile.
type ProfileInput struct {
	Name                 string
	Diagnoses            []string
	CommunicationStyle   string
	SensorySensitivities []string
	SeekingSensory       []string
	EffectiveStrategies  []string
}

// Settings is the per-installation singleton state. It is persisted as two
// independent keys (onboarding flag, current context) and defaults on first
// run.
type Settings struct {
	HasCompletedOnboarding bool   `json:"hasCompletedOnboarding"`
	CurrentContext         string `json:"currentContext"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		HasCompletedOnboarding: false,
		CurrentContext:         ContextHome,
	}
}
