package repository

import (
	"slices"

	"github.com/templui/goalpost/internal/model"
)

type MilestoneRepository interface {
	Milestone(milestoneID string) (model.Milestone, error)
	Milestones(goalID string) []model.Milestone
	AddMilestone(input model.MilestoneInput) model.Milestone
	ToggleMilestoneCompletion(milestoneID string, isCompleted bool) error
}

// Milestones returns the goal's milestones in insertion order. The result is
// never nil.
func (s *Store) Milestones(goalID string) []model.Milestone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Milestone{}
	for _, m := range s.milestones {
		if m.GoalID == goalID {
			out = append(out, m)
		}
	}
	return cloneMilestones(out)
}

func (s *Store) AddMilestone(input model.MilestoneInput) model.Milestone {
	s.mu.Lock()
	defer s.mu.Unlock()

	milestone := model.Milestone{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		GoalID:      input.GoalID,
		IsCompleted: input.IsCompleted,
	}

	s.milestones = appendCopy(s.milestones, milestone)
	s.version++

	return milestone
}

// ToggleMilestoneCompletion sets the completion flag. Completing stamps the
// completion date with the current time, uncompleting clears it.
func (s *Store) ToggleMilestoneCompletion(milestoneID string, isCompleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.milestones, func(m model.Milestone) bool {
		return m.ID == milestoneID
	})
	if i < 0 {
		return ErrMilestoneNotFound
	}

	next := slices.Clone(s.milestones)
	next[i].IsCompleted = isCompleted
	if isCompleted {
		now := s.now()
		next[i].CompletionDate = &now
	} else {
		next[i].CompletionDate = nil
	}
	s.milestones = next
	s.version++

	return nil
}

func (s *Store) Milestone(milestoneID string) (model.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.milestones {
		if m.ID == milestoneID {
			return cloneMilestones([]model.Milestone{m})[0], nil
		}
	}
	return model.Milestone{}, ErrMilestoneNotFound
}
