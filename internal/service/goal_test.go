package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/validation"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestGoalService(t *testing.T) (*GoalService, *repository.Store) {
	t.Helper()
	store := repository.NewStore(seed.Load(), repository.WithClock(func() time.Time { return testNow }))
	svc := NewGoalService(store, store, store, store)
	svc.now = func() time.Time { return testNow }
	return svc, store
}

func goalIDs(goals []model.Goal, _ uint64) []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}

func TestGoalService_Create(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		svc, store := newTestGoalService(t)

		goal, err := svc.Create(CreateGoalParams{
			Title:       "  Learn Go  ",
			Description: "Read the proposal",
			Progress:    140,
			UserID:      "1",
		})
		require.NoError(t, err)

		assert.Equal(t, "Learn Go", goal.Title)
		assert.Equal(t, 100, goal.Progress, "progress is clamped")
		assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), goal.StartDate)
		assert.Equal(t, goal.StartDate.Add(DefaultGoalDuration), goal.EndDate)
		assert.Empty(t, goal.TeamID)
		assert.Empty(t, store.Milestones(goal.ID))
		assert.Len(t, store.Goals(), 6)
	})

	t.Run("TeamGoal", func(t *testing.T) {
		svc, _ := newTestGoalService(t)
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		goal, err := svc.Create(CreateGoalParams{
			Title:     "Ship v2",
			StartDate: &start,
			EndDate:   &end,
			UserID:    "2",
			TeamID:    "team2",
		})
		require.NoError(t, err)
		assert.Equal(t, "team2", goal.TeamID)
		assert.Equal(t, start, goal.StartDate)
		assert.Equal(t, end, goal.EndDate)
	})

	t.Run("Invalid", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		tests := []struct {
			name   string
			params CreateGoalParams
			want   error
		}{
			{"MissingTitle", CreateGoalParams{Title: "  ", UserID: "1"}, validation.ErrTitleRequired},
			{"MissingOwner", CreateGoalParams{Title: "x"}, ErrOwnerRequired},
			{"UnknownOwner", CreateGoalParams{Title: "x", UserID: "42"}, repository.ErrUserNotFound},
			{"UnknownTeam", CreateGoalParams{Title: "x", UserID: "1", TeamID: "team9"}, repository.ErrTeamNotFound},
			{"EndBeforeStart", CreateGoalParams{Title: "x", UserID: "1", StartDate: &start, EndDate: &end}, validation.ErrInvalidDateRange},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, store := newTestGoalService(t)

				_, err := svc.Create(tt.params)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, uint64(0), store.Version(), "nothing stored")
			})
		}
	})
}

func TestGoalService_Goals(t *testing.T) {
	svc, _ := newTestGoalService(t)

	t.Run("FilterByType", func(t *testing.T) {
		assert.Equal(t, []string{"g1", "g2", "g3", "g4", "g5"}, goalIDs(svc.Goals(model.GoalTypeAll, "")))
		assert.Equal(t, []string{"g2", "g4"}, goalIDs(svc.Goals(model.GoalTypePersonal, "")))
		assert.Equal(t, []string{"g1", "g3", "g5"}, goalIDs(svc.Goals(model.GoalTypeTeam, "")))
	})

	t.Run("Sort", func(t *testing.T) {
		assert.Equal(t, []string{"g1", "g3", "g2", "g4", "g5"}, goalIDs(svc.Goals(model.GoalTypeAll, GoalSortProgress)))
		assert.Equal(t, []string{"g2", "g5", "g3", "g1", "g4"}, goalIDs(svc.Goals(model.GoalTypeAll, GoalSortTitle)))
		assert.Equal(t, []string{"g1", "g2", "g3", "g5", "g4"}, goalIDs(svc.Goals(model.GoalTypeAll, GoalSortEnding)))
	})

	t.Run("MilestonesLoaded", func(t *testing.T) {
		goals, _ := svc.Goals(model.GoalTypeAll, "")
		assert.Len(t, goals[0].Milestones, 3)
		assert.Equal(t, 2, goals[0].CompletedMilestones())
	})
}

func TestGoalService_TitleSortIgnoresCase(t *testing.T) {
	svc, _ := newTestGoalService(t)

	_, err := svc.Create(CreateGoalParams{Title: "apply for grant", UserID: "1"})
	require.NoError(t, err)

	goals, _ := svc.Goals(model.GoalTypePersonal, GoalSortTitle)
	require.Len(t, goals, 3)
	assert.Equal(t, "apply for grant", goals[0].Title)
	assert.Equal(t, "Improve coding skills", goals[1].Title)
}

func TestGoalService_Detail(t *testing.T) {
	svc, _ := newTestGoalService(t)

	detail, version, err := svc.Detail("g1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), version)

	assert.Equal(t, "Alex Johnson", detail.Owner.Name)
	require.NotNil(t, detail.Team)
	assert.Equal(t, "Product Development", detail.Team.Name)
	assert.Len(t, detail.Goal.Milestones, 3)

	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "c2", detail.Comments[0].ID, "newest first")
	assert.Equal(t, "Jordan Smith", detail.Comments[0].Author.Name)
	assert.Equal(t, "c1", detail.Comments[1].ID)

	personal, _, err := svc.Detail("g2")
	require.NoError(t, err)
	assert.Nil(t, personal.Team)

	_, _, err = svc.Detail("missing")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_UpdateProgress(t *testing.T) {
	svc, _ := newTestGoalService(t)

	goal, err := svc.UpdateProgress("g4", 55)
	require.NoError(t, err)
	assert.Equal(t, 55, goal.Progress)

	goal, err = svc.UpdateProgress("g4", 250)
	require.NoError(t, err)
	assert.Equal(t, 100, goal.Progress)

	goal, err = svc.UpdateProgress("g4", -3)
	require.NoError(t, err)
	assert.Equal(t, 0, goal.Progress)

	_, err = svc.UpdateProgress("missing", 10)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_Milestones(t *testing.T) {
	svc, store := newTestGoalService(t)

	m, err := svc.AddMilestone("g3", " Launch campaign ", "")
	require.NoError(t, err)
	assert.Equal(t, "Launch campaign", m.Title)
	assert.False(t, m.IsCompleted)
	assert.Len(t, store.Milestones("g3"), 2)

	_, err = svc.AddMilestone("g3", "", "")
	assert.ErrorIs(t, err, validation.ErrTitleRequired)

	_, err = svc.AddMilestone("missing", "Orphan", "")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	toggled, err := svc.ToggleMilestone(m.ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
	require.NotNil(t, toggled.CompletionDate)
	assert.True(t, testNow.Equal(*toggled.CompletionDate))

	toggled, err = svc.ToggleMilestone(m.ID, false)
	require.NoError(t, err)
	assert.Nil(t, toggled.CompletionDate)

	_, err = svc.ToggleMilestone("missing", true)
	assert.ErrorIs(t, err, repository.ErrMilestoneNotFound)
}

func TestGoalService_AddComment(t *testing.T) {
	svc, store := newTestGoalService(t)

	c, err := svc.AddComment("g2", "3", "  Keep it up!  ")
	require.NoError(t, err)
	assert.Equal(t, "Keep it up!", c.Content)
	assert.Equal(t, testNow, c.Timestamp)
	assert.Equal(t, "Jordan Smith", c.Author.Name)

	thread, version, err := svc.Comments("g2")
	require.NoError(t, err)
	assert.Equal(t, store.Version(), version)
	require.Len(t, thread, 2)
	assert.Equal(t, c.ID, thread[0].ID, "new comment is newest")

	_, err = svc.AddComment("g2", "3", "   ")
	assert.ErrorIs(t, err, validation.ErrCommentRequired)

	_, err = svc.AddComment("missing", "3", "hello")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
	assert.False(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.AddComment("g2", "99", "hello")
	assert.ErrorIs(t, err, ErrInvalidInput)

	counts := svc.CommentCounts()
	assert.Equal(t, 2, counts["g1"])
	assert.Equal(t, 2, counts["g2"])
	assert.Equal(t, 0, counts["missing"])
}

func TestGoalService_ReadsCarryVersion(t *testing.T) {
	svc, store := newTestGoalService(t)

	_, version := svc.Goals(model.GoalTypeAll, "")
	assert.Equal(t, uint64(0), version)

	require.NoError(t, store.ToggleMilestoneCompletion("m3", true))

	milestones, version, err := svc.Milestones("g1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	require.Len(t, milestones, 3)
	assert.True(t, milestones[2].IsCompleted, "read at the same version it reports")

	empty, _, err := svc.Milestones("g4")
	require.NoError(t, err)
	assert.NotNil(t, empty)

	_, _, err = svc.Milestones("missing")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	_, version = svc.Goals(model.GoalTypeTeam, GoalSortProgress)
	assert.Equal(t, store.Version(), version)
}

func TestGoalService_Version(t *testing.T) {
	svc, _ := newTestGoalService(t)

	before := svc.Version()
	_, err := svc.UpdateProgress("g1", 80)
	require.NoError(t, err)
	assert.Greater(t, svc.Version(), before)
}

func TestParseGoalType(t *testing.T) {
	for in, want := range map[string]string{
		"":         model.GoalTypeAll,
		"all":      model.GoalTypeAll,
		"Personal": model.GoalTypePersonal,
		" team ":   model.GoalTypeTeam,
	} {
		got, err := ParseGoalType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseGoalType("shared")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidSort(t *testing.T) {
	assert.True(t, ValidSort(""))
	assert.True(t, ValidSort(GoalSortTitle))
	assert.False(t, ValidSort("random"))
}
