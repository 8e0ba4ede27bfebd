package repository

import (
	"github.com/templui/goalpost/internal/model"
)

// Reads on a Snapshot never touch the store, so every answer derived from
// one snapshot describes the same version.

// Goal returns the goal with its milestones loaded.
func (s Snapshot) Goal(goalID string) (model.Goal, error) {
	for _, g := range s.Goals {
		if g.ID == goalID {
			g.Milestones = s.MilestonesFor(goalID)
			return g, nil
		}
	}
	return model.Goal{}, ErrGoalNotFound
}

// GoalsWithMilestones returns every goal in insertion order with its
// milestones loaded.
func (s Snapshot) GoalsWithMilestones() []model.Goal {
	byGoal := make(map[string][]model.Milestone, len(s.Goals))
	for _, m := range s.Milestones {
		byGoal[m.GoalID] = append(byGoal[m.GoalID], m)
	}

	goals := make([]model.Goal, len(s.Goals))
	for i, g := range s.Goals {
		g.Milestones = byGoal[g.ID]
		if g.Milestones == nil {
			g.Milestones = []model.Milestone{}
		}
		goals[i] = g
	}
	return goals
}

// MilestonesFor returns the goal's milestones in insertion order. The result
// is never nil.
func (s Snapshot) MilestonesFor(goalID string) []model.Milestone {
	out := []model.Milestone{}
	for _, m := range s.Milestones {
		if m.GoalID == goalID {
			out = append(out, m)
		}
	}
	return out
}

// CommentsFor returns the goal's comments in insertion order.
func (s Snapshot) CommentsFor(goalID string) []model.Comment {
	out := []model.Comment{}
	for _, c := range s.Comments {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out
}

func (s Snapshot) User(userID string) (model.User, error) {
	for _, u := range s.Users {
		if u.ID == userID {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s Snapshot) Team(teamID string) (model.Team, error) {
	for _, t := range s.Teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return model.Team{}, ErrTeamNotFound
}
