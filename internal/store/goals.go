package store

import (
	"github.com/compasscare/compass/internal/schema"
	"github.com/compasscare/compass/pkg/types"
)

// AddGoal validates in and creates a not_started goal with an empty
// progress history.
func (s *Store) AddGoal(in types.GoalInput) (types.Goal, error) {
	if errs := schema.ValidateGoalInput(in); len(errs) > 0 {
		return types.Goal{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goal := types.Goal{
		ID:              newID(),
		Title:           in.Title,
		Category:        in.Category,
		TargetValue:     in.TargetValue,
		TargetUnit:      in.TargetUnit,
		TargetDirection: in.TargetDirection,
		StartDate:       in.StartDate,
		TargetDate:      in.TargetDate,
		Status:          types.GoalStatusNotStarted,
		ProgressHistory: []types.GoalProgress{},
	}

	s.goals = append([]types.Goal{goal}, s.goals...)
	s.persist(types.KeyGoals, s.goals)
	return goal, nil
}

// AddGoalProgress appends a progress measurement to the goal with the given
// id, driving the status state machine, and persists. The goal reference is
// soft: storage does not enforce it, so an unknown id returns
// types.ErrNotFound and nothing is written.
func (s *Store) AddGoalProgress(goalID string, in types.GoalProgressInput) (types.Goal, error) {
	if errs := schema.ValidateGoalProgressInput(in); len(errs) > 0 {
		return types.Goal{}, &types.ValidationError{Fields: errs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != goalID {
			continue
		}
		entry := types.GoalProgress{
			ID:      newID(),
			GoalID:  goalID,
			Date:    in.Date,
			Value:   in.Value,
			Context: in.Context,
		}
		s.goals[i].ApplyProgress(entry, s.now())
		s.persist(types.KeyGoals, s.goals)
		return s.goals[i], nil
	}
	return types.Goal{}, types.ErrNotFound
}

// DiscontinueGoal moves a goal to the discontinued status and persists.
// Terminal goals are left as they are.
func (s *Store) DiscontinueGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != id {
			continue
		}
		s.goals[i].Discontinue()
		s.persist(types.KeyGoals, s.goals)
		return nil
	}
	return types.ErrNotFound
}

// UpdateGoal shallow-merges patch into the goal's descriptive fields and
// persists. Progress and status move only through AddGoalProgress and
// DiscontinueGoal. A missing id is a no-op.
func (s *Store) UpdateGoal(id string, patch types.GoalPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != id {
			continue
		}
		g := &s.goals[i]
		if patch.Title != nil {
			g.Title = *patch.Title
		}
		if patch.Category != nil {
			g.Category = *patch.Category
		}
		if patch.TargetValue != nil {
			g.TargetValue = *patch.TargetValue
		}
		if patch.TargetUnit != nil {
			g.TargetUnit = *patch.TargetUnit
		}
		if patch.TargetDate != nil {
			g.TargetDate = *patch.TargetDate
		}
		s.persist(types.KeyGoals, s.goals)
		return
	}
}

// DeleteGoal removes the goal with the given id, its embedded progress
// history with it, and persists.
func (s *Store) DeleteGoal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.goals[:0:0]
	removed := false
	for _, g := range s.goals {
		if g.ID == id {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	if !removed {
		return
	}
	s.goals = kept
	s.persist(types.KeyGoals, s.goals)
}

// Goals returns a copy of the goal collection.
func (s *Store) Goals() []types.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// Goal returns the goal with the given id.
func (s *Store) Goal(id string) (types.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return types.Goal{}, types.ErrNotFound
}
