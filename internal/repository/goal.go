package repository

import (
	"slices"

	"github.com/templui/goalpost/internal/model"
)

type GoalRepository interface {
	AddGoal(input model.GoalInput) model.Goal
	Goal(goalID string) (model.Goal, error)
	Goals() []model.Goal
	UpdateGoalProgress(goalID string, progress int) error
	SnapshotRepository
}

// AddGoal stores a new goal with a generated ID and no milestones.
func (s *Store) AddGoal(input model.GoalInput) model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := model.Goal{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		Progress:    input.Progress,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		UserID:      input.UserID,
		TeamID:      input.TeamID,
		Milestones:  []model.Milestone{},
	}

	s.goals = appendCopy(s.goals, goal)
	s.version++

	return goal
}

func (s *Store) Goal(goalID string) (model.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.goalIndex(goalID)
	if i < 0 {
		return model.Goal{}, ErrGoalNotFound
	}

	return cloneGoals(s.goals[i : i+1])[0], nil
}

// Goals returns every goal in insertion order.
func (s *Store) Goals() []model.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGoals(s.goals)
}

// UpdateGoalProgress stores progress exactly as given. Range checks belong
// to the caller. An unknown goal leaves the store untouched.
func (s *Store) UpdateGoalProgress(goalID string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.goalIndex(goalID)
	if i < 0 {
		return ErrGoalNotFound
	}

	next := slices.Clone(s.goals)
	next[i].Progress = progress
	s.goals = next
	s.version++

	return nil
}

func (s *Store) goalIndex(goalID string) int {
	return slices.IndexFunc(s.goals, func(g model.Goal) bool {
		return g.ID == goalID
	})
}
