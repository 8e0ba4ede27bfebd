package repository

import (
	"slices"

	"github.com/templui/goalpost/internal/model"
)

type CommentRepository interface {
	AddComment(input model.CommentInput) model.Comment
	Comments() []model.Comment
	CommentsForGoal(goalID string) []model.Comment
}

func (s *Store) AddComment(input model.CommentInput) model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := model.Comment{
		ID:        s.newID(),
		Content:   input.Content,
		UserID:    input.UserID,
		GoalID:    input.GoalID,
		Timestamp: input.Timestamp,
	}

	s.comments = appendCopy(s.comments, comment)
	s.version++

	return comment
}

func (s *Store) Comments() []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.comments)
}

// CommentsForGoal returns the goal's comments in insertion order.
func (s *Store) CommentsForGoal(goalID string) []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Comment{}
	for _, c := range s.comments {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out
}
