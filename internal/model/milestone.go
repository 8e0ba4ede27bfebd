package model

import (
	"time"
)

type Milestone struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	GoalID         string     `json:"goalId"`
	IsCompleted    bool       `json:"isCompleted"`
	CompletionDate *time.Time `json:"completionDate,omitempty"` // Set iff IsCompleted
}

// MilestoneInput carries the caller-supplied Milestone fields.
// ID and CompletionDate are always assigned by the store.
type MilestoneInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalID      string `json:"goalId"`
	IsCompleted bool   `json:"isCompleted"`
}
