package model

import (
	"time"
)

const (
	GoalTypeAll      = "all"
	GoalTypePersonal = "personal"
	GoalTypeTeam     = "team"
)

const (
	ProgressMin = 0
	ProgressMax = 100
)

type Goal struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Progress    int         `json:"progress"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	UserID      string      `json:"userId"`
	TeamID      string      `json:"teamId,omitempty"` // Empty for personal goals
	Milestones  []Milestone `json:"milestones"`
}

// GoalInput carries the Goal fields a caller chooses. The store generates
// the ID and starts every goal with no milestones.
type GoalInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Progress    int       `json:"progress"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	UserID      string    `json:"userId"`
	TeamID      string    `json:"teamId,omitempty"`
}

func (g *Goal) IsTeam() bool {
	return g.TeamID != ""
}

// MatchesType reports whether the goal belongs to the given type filter.
// Unknown filters match everything, like GoalTypeAll.
func (g *Goal) MatchesType(goalType string) bool {
	switch goalType {
	case GoalTypePersonal:
		return !g.IsTeam()
	case GoalTypeTeam:
		return g.IsTeam()
	default:
		return true
	}
}

// CompletedMilestones counts the nested milestones marked complete.
func (g *Goal) CompletedMilestones() int {
	count := 0
	for _, m := range g.Milestones {
		if m.IsCompleted {
			count++
		}
	}
	return count
}
