package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/analytics"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
)

func TestAnalyticsService_Report(t *testing.T) {
	store := repository.NewStore(seed.Load())
	svc := NewAnalyticsService(store)

	t.Run("AllGoals", func(t *testing.T) {
		report, version := svc.Report(model.GoalTypeAll)

		assert.Equal(t, uint64(0), version)
		assert.Equal(t, 5, report.TotalGoals)
		assert.Equal(t, 46, report.OverallProgress)
		assert.Equal(t, analytics.GoalTypes{Personal: 2, Team: 3}, report.GoalTypes)
		assert.Equal(t, analytics.MilestoneStatus{Completed: 7, Remaining: 1}, report.Milestones)

		require.Len(t, report.Buckets, 5)
		assert.Equal(t, 2, report.Buckets[1].Count)
		assert.Equal(t, 2, report.Buckets[2].Count)
		assert.Equal(t, 1, report.Buckets[3].Count)
	})

	t.Run("PersonalOnly", func(t *testing.T) {
		report, _ := svc.Report(model.GoalTypePersonal)

		assert.Equal(t, 2, report.TotalGoals)
		assert.Equal(t, 38, report.OverallProgress) // (45+30)/2 = 37.5
		assert.Equal(t, analytics.MilestoneStatus{Completed: 3, Remaining: 0}, report.Milestones)
	})

	t.Run("RecomputedAfterMutation", func(t *testing.T) {
		require.NoError(t, store.UpdateGoalProgress("g5", 95))
		require.NoError(t, store.ToggleMilestoneCompletion("m3", true))

		report, version := svc.Report(model.GoalTypeAll)
		assert.Equal(t, store.Version(), version)
		assert.Equal(t, 1, report.Buckets[4].Count)
		assert.Equal(t, 1, report.Buckets[1].Count)
		assert.Equal(t, analytics.MilestoneStatus{Completed: 8, Remaining: 0}, report.Milestones)
	})
}

// progressAfterSnapshot moves a goal between buckets right after the
// report's snapshot is taken.
type progressAfterSnapshot struct {
	*repository.Store
}

func (s progressAfterSnapshot) Snapshot() repository.Snapshot {
	snap := s.Store.Snapshot()
	_ = s.Store.UpdateGoalProgress("g5", 95)
	return snap
}

func TestAnalyticsService_ReportIsOneSnapshot(t *testing.T) {
	store := repository.NewStore(seed.Load())
	svc := NewAnalyticsService(progressAfterSnapshot{store})

	report, version := svc.Report(model.GoalTypeAll)
	assert.Equal(t, uint64(0), version)
	assert.Equal(t, uint64(1), store.Version())
	assert.Equal(t, 0, report.Buckets[4].Count, "write after the snapshot is not counted")
	assert.Equal(t, 46, report.OverallProgress)
}

func TestDirectoryService(t *testing.T) {
	store := repository.NewStore(seed.Load())
	svc := NewDirectoryService(store)

	assert.Len(t, svc.Users(), 4)
	assert.Len(t, svc.Teams(), 3)

	teams := svc.TeamsForUser("4")
	require.Len(t, teams, 2)
	assert.Equal(t, "team2", teams[0].ID)
	assert.Equal(t, "team3", teams[1].ID)

	assert.Equal(t, "Marketing", svc.TeamNames()["team2"])
	assert.Equal(t, "Taylor Brown", svc.UserNames()["4"])

	_, err := svc.User("nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestExportService(t *testing.T) {
	store := repository.NewStore(seed.Load())
	svc := NewExportService(store)
	svc.now = func() time.Time { return testNow }

	export := svc.Export()
	assert.Equal(t, testNow, export.ExportedAt)
	assert.Len(t, export.Goals, 5)
	assert.Len(t, export.Milestones, 8)
	assert.Equal(t, store.Version(), export.Version)
}
