package store

import (
	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// Profile returns the child profile, if one has been created.
func (s *Store) Profile() (types.ChildProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return types.ChildProfile{}, false
	}
	return *s.profile, true
}

// SaveProfile creates the child profile on first call and replaces its
// fields afterwards. UpdatedAt is bumped on every update; CreatedAt and the
// ID are set once. The profile is a singleton per installation.
func (s *Store) SaveProfile(in types.ProfileInput) (types.ChildProfile, error) {
	if errs := schema.ValidateProfileInput(in); len(errs) > 0 {
		return types.ChildProfile{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.profile == nil {
		s.profile = &types.ChildProfile{ID: newID(), CreatedAt: now}
	}
	s.profile.Name = in.Name
	s.profile.Diagnoses = in.Diagnoses
	s.profile.CommunicationStyle = in.CommunicationStyle
	s.profile.SensorySensitivities = in.SensorySensitivities
	s.profile.SeekingSensory = in.SeekingSensory
	s.profile.EffectiveStrategies = in.EffectiveStrategies
	s.profile.UpdatedAt = now

	s.persist(types.KeyChildProfile, s.profile)
	return *s.profile, nil
}

// HasCompletedOnboarding reports the onboarding flag.
func (s *Store) HasCompletedOnboarding() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.HasCompletedOnboarding
}

// CompleteOnboarding sets the onboarding flag and persists it. Idempotent.
func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.HasCompletedOnboarding {
		return
	}
	s.settings.HasCompletedOnboarding = true
	s.persist(types.KeyOnboarding, true)
}

// CurrentContext returns the active capture context.
func (s *Store) CurrentContext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.CurrentContext
}

// SetCurrentContext switches the active capture context and persists it.
func (s *Store) SetCurrentContext(context string) error {
	if !types.ValidContexts[context] {
		return &types.ValidationError{Fields: []types.FieldError{
			{Path: "context", Message: "must be home or school"},
		}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CurrentContext = context
	s.persist(types.KeyCurrentContext, context)
	return nil
}

// Settings returns a copy of the settings singleton.
func (s *Store) Settings() types.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
