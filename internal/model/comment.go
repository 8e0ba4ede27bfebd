package model

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	GoalID    string    `json:"goalId"`
	Timestamp time.Time `json:"timestamp"`
}

type CommentInput struct {
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	GoalID    string    `json:"goalId"`
	Timestamp time.Time `json:"timestamp"`
}
