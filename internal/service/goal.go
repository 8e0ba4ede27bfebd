package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/validation"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	GoalSortDefault  = ""
	GoalSortProgress = "progress"
	GoalSortTitle    = "title"
	GoalSortEnding   = "ending"
)

// DefaultGoalDuration is the span given to goals created without an end date.
const DefaultGoalDuration = 30 * 24 * time.Hour

var ErrOwnerRequired = errors.New("goal owner is required")

type CreateGoalParams struct {
	Title       string
	Description string
	Progress    int
	StartDate   *time.Time
	EndDate     *time.Time
	UserID      string
	TeamID      string
}

type GoalService struct {
	goals      repository.GoalRepository
	milestones repository.MilestoneRepository
	comments   repository.CommentRepository
	directory  repository.DirectoryRepository
	now        func() time.Time
}

func NewGoalService(
	goals repository.GoalRepository,
	milestones repository.MilestoneRepository,
	comments repository.CommentRepository,
	directory repository.DirectoryRepository,
) *GoalService {
	return &GoalService{
		goals:      goals,
		milestones: milestones,
		comments:   comments,
		directory:  directory,
		now:        time.Now,
	}
}

func (s *GoalService) Create(params CreateGoalParams) (*model.Goal, error) {
	title := strings.TrimSpace(params.Title)
	if err := validation.ValidateTitle(title); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateDescription(params.Description); err != nil {
		return nil, invalid(err)
	}

	if params.UserID == "" {
		return nil, invalid(ErrOwnerRequired)
	}
	if _, err := s.directory.User(params.UserID); err != nil {
		return nil, invalid(err)
	}

	teamID := strings.TrimSpace(params.TeamID)
	if teamID != "" {
		if _, err := s.directory.Team(teamID); err != nil {
			return nil, invalid(err)
		}
	}

	start := s.today()
	if params.StartDate != nil {
		start = *params.StartDate
	}
	end := start.Add(DefaultGoalDuration)
	if params.EndDate != nil {
		end = *params.EndDate
	}
	if err := validation.ValidateDateRange(start, end); err != nil {
		return nil, invalid(err)
	}

	goal := s.goals.AddGoal(model.GoalInput{
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Progress:    validation.ClampProgress(params.Progress),
		StartDate:   start,
		EndDate:     end,
		UserID:      params.UserID,
		TeamID:      teamID,
	})

	slog.Info("goal created", "goal_id", goal.ID, "user_id", goal.UserID, "team_id", goal.TeamID)
	return &goal, nil
}

// Goals lists goals of the given type with their milestones loaded, along
// with the store version the list was read at.
func (s *GoalService) Goals(goalType, sortBy string) ([]model.Goal, uint64) {
	snap := s.goals.Snapshot()

	goals := []model.Goal{}
	for _, g := range snap.GoalsWithMilestones() {
		if g.MatchesType(goalType) {
			goals = append(goals, g)
		}
	}

	sortGoals(goals, sortBy)
	return goals, snap.Version
}

func (s *GoalService) ByID(goalID string) (*model.Goal, error) {
	goal, err := s.goals.Snapshot().Goal(goalID)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// Detail returns the goal with milestones, owner, team and its comments
// newest first, all read at the returned store version.
func (s *GoalService) Detail(goalID string) (*model.GoalDetail, uint64, error) {
	snap := s.goals.Snapshot()

	goal, err := snap.Goal(goalID)
	if err != nil {
		return nil, snap.Version, err
	}

	detail := &model.GoalDetail{
		Goal:     goal,
		Comments: thread(snap, goalID),
	}

	if owner, err := snap.User(goal.UserID); err == nil {
		detail.Owner = owner
	}
	if goal.IsTeam() {
		if team, err := snap.Team(goal.TeamID); err == nil {
			detail.Team = &team
		}
	}

	return detail, snap.Version, nil
}

// Milestones returns the goal's milestones in order and the store version
// they were read at.
func (s *GoalService) Milestones(goalID string) ([]model.Milestone, uint64, error) {
	snap := s.goals.Snapshot()

	goal, err := snap.Goal(goalID)
	if err != nil {
		return nil, snap.Version, err
	}
	return goal.Milestones, snap.Version, nil
}

// UpdateProgress clamps progress to 0..100 before storing it.
func (s *GoalService) UpdateProgress(goalID string, progress int) (*model.Goal, error) {
	clamped := validation.ClampProgress(progress)

	err := s.goals.UpdateGoalProgress(goalID, clamped)
	if err != nil {
		return nil, err
	}

	slog.Debug("goal progress updated", "goal_id", goalID, "progress", clamped)
	return s.ByID(goalID)
}

func (s *GoalService) AddMilestone(goalID, title, description string) (*model.Milestone, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateTitle(title); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, invalid(err)
	}

	// The store assumes references are valid, so check here.
	if _, err := s.goals.Goal(goalID); err != nil {
		return nil, err
	}

	milestone := s.milestones.AddMilestone(model.MilestoneInput{
		Title:       title,
		Description: strings.TrimSpace(description),
		GoalID:      goalID,
		IsCompleted: false,
	})

	slog.Debug("milestone added", "goal_id", goalID, "milestone_id", milestone.ID)
	return &milestone, nil
}

func (s *GoalService) ToggleMilestone(milestoneID string, isCompleted bool) (*model.Milestone, error) {
	err := s.milestones.ToggleMilestoneCompletion(milestoneID, isCompleted)
	if err != nil {
		return nil, err
	}

	milestone, err := s.milestones.Milestone(milestoneID)
	if err != nil {
		return nil, err
	}

	slog.Debug("milestone toggled", "milestone_id", milestoneID, "completed", isCompleted)
	return &milestone, nil
}

func (s *GoalService) AddComment(goalID, userID, content string) (*model.CommentWithAuthor, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateComment(content); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.goals.Goal(goalID); err != nil {
		return nil, err
	}

	author, err := s.directory.User(userID)
	if err != nil {
		return nil, invalid(err)
	}

	comment := s.comments.AddComment(model.CommentInput{
		Content:   content,
		UserID:    userID,
		GoalID:    goalID,
		Timestamp: s.now().UTC(),
	})

	slog.Debug("comment added", "goal_id", goalID, "comment_id", comment.ID)
	return &model.CommentWithAuthor{Comment: comment, Author: author}, nil
}

// Comments returns the goal's comments newest first and the store version
// they were read at.
func (s *GoalService) Comments(goalID string) ([]model.CommentWithAuthor, uint64, error) {
	snap := s.goals.Snapshot()

	if _, err := snap.Goal(goalID); err != nil {
		return nil, snap.Version, err
	}
	return thread(snap, goalID), snap.Version, nil
}

// CommentCounts maps goal IDs to their number of comments.
func (s *GoalService) CommentCounts() map[string]int {
	counts := make(map[string]int)
	for _, c := range s.comments.Comments() {
		counts[c.GoalID]++
	}
	return counts
}

// Version changes whenever any goal, milestone or comment changes.
func (s *GoalService) Version() uint64 {
	return s.goals.Version()
}

// thread resolves comment authors and orders the goal's comments newest
// first. Equal timestamps keep insertion order.
func thread(snap repository.Snapshot, goalID string) []model.CommentWithAuthor {
	comments := snap.CommentsFor(goalID)

	out := make([]model.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		item := model.CommentWithAuthor{Comment: c}
		if author, err := snap.User(c.UserID); err == nil {
			item.Author = author
		}
		out = append(out, item)
	}

	slices.SortStableFunc(out, func(a, b model.CommentWithAuthor) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

func (s *GoalService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func sortGoals(goals []model.Goal, sortBy string) {
	switch sortBy {
	case GoalSortProgress:
		slices.SortStableFunc(goals, func(a, b model.Goal) int {
			return b.Progress - a.Progress
		})
	case GoalSortTitle:
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(goals, func(a, b model.Goal) int {
			return c.CompareString(a.Title, b.Title)
		})
	case GoalSortEnding:
		slices.SortStableFunc(goals, func(a, b model.Goal) int {
			return a.EndDate.Compare(b.EndDate)
		})
	default: // GoalSortDefault keeps insertion order
	}
}

// ValidSort reports whether sortBy is a known sort key.
func ValidSort(sortBy string) bool {
	switch sortBy {
	case GoalSortDefault, GoalSortProgress, GoalSortTitle, GoalSortEnding:
		return true
	}
	return false
}

// ParseGoalType normalizes a goal type filter, defaulting to all.
func ParseGoalType(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", model.GoalTypeAll:
		return model.GoalTypeAll, nil
	case model.GoalTypePersonal:
		return model.GoalTypePersonal, nil
	case model.GoalTypeTeam:
		return model.GoalTypeTeam, nil
	}
	return "", invalid(fmt.Errorf("unknown goal type %q", value))
}
