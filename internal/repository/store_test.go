package repository_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
)

func newTestStore(t *testing.T, opts ...repository.Option) *repository.Store {
	t.Helper()
	return repository.NewStore(seed.Load(), opts...)
}

func sequentialIDs() repository.Option {
	n := 0
	return repository.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func TestNewStore_Seed(t *testing.T) {
	store := newTestStore(t)

	assert.Len(t, store.Goals(), 5)
	assert.Len(t, store.Comments(), 6)
	assert.Len(t, store.Users(), 4)
	assert.Len(t, store.Teams(), 3)
	assert.Equal(t, uint64(0), store.Version())

	total := 0
	for _, g := range store.Goals() {
		total += len(store.Milestones(g.ID))
	}
	assert.Equal(t, 8, total)
}

func TestNewStore_Empty(t *testing.T) {
	store := repository.NewStore(seed.Data{})

	assert.NotNil(t, store.Goals())
	assert.Empty(t, store.Goals())
	assert.NotNil(t, store.Milestones("missing"))
	assert.Empty(t, store.Comments())
}

func TestStore_AddGoal(t *testing.T) {
	store := newTestStore(t, sequentialIDs())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	goal := store.AddGoal(model.GoalInput{
		Title:     "Write a book",
		Progress:  10,
		StartDate: start,
		EndDate:   start.AddDate(0, 6, 0),
		UserID:    "1",
	})

	assert.Equal(t, "id-1", goal.ID)
	assert.Equal(t, "Write a book", goal.Title)
	assert.NotNil(t, goal.Milestones)
	assert.Empty(t, goal.Milestones)
	assert.Equal(t, uint64(1), store.Version())

	goals := store.Goals()
	require.Len(t, goals, 6)
	assert.Equal(t, goal.ID, goals[5].ID, "new goals are appended")

	milestones := store.Milestones(goal.ID)
	assert.NotNil(t, milestones)
	assert.Empty(t, milestones)
}

func TestStore_AddGoal_UniqueIDs(t *testing.T) {
	store := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		g := store.AddGoal(model.GoalInput{Title: "goal"})
		assert.False(t, seen[g.ID], "duplicate id %s", g.ID)
		seen[g.ID] = true
	}
}

func TestStore_UpdateGoalProgress(t *testing.T) {
	t.Run("InRange", func(t *testing.T) {
		store := newTestStore(t)

		for p := model.ProgressMin; p <= model.ProgressMax; p++ {
			require.NoError(t, store.UpdateGoalProgress("g2", p))

			goal, err := store.Goal("g2")
			require.NoError(t, err)
			assert.Equal(t, p, goal.Progress)
		}
	})

	t.Run("OutOfRangeStoredAsIs", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.UpdateGoalProgress("g1", 150))
		goal, _ := store.Goal("g1")
		assert.Equal(t, 150, goal.Progress)

		require.NoError(t, store.UpdateGoalProgress("g1", -5))
		goal, _ = store.Goal("g1")
		assert.Equal(t, -5, goal.Progress)
	})

	t.Run("UnknownGoal", func(t *testing.T) {
		store := newTestStore(t)
		before := store.Snapshot()

		err := store.UpdateGoalProgress("nope", 50)
		assert.ErrorIs(t, err, repository.ErrGoalNotFound)
		assert.Equal(t, before, store.Snapshot(), "failed update must not mutate")
	})
}

func TestStore_Milestones_Order(t *testing.T) {
	store := newTestStore(t, sequentialIDs())

	store.AddMilestone(model.MilestoneInput{Title: "Launch party", GoalID: "g1"})

	milestones := store.Milestones("g1")
	require.Len(t, milestones, 4)
	assert.Equal(t, []string{"m1", "m2", "m3", "id-1"}, []string{
		milestones[0].ID, milestones[1].ID, milestones[2].ID, milestones[3].ID,
	})
}

func TestStore_AddMilestone(t *testing.T) {
	store := newTestStore(t, sequentialIDs())

	m := store.AddMilestone(model.MilestoneInput{
		Title:       "Sign up for race",
		GoalID:      "g4",
		IsCompleted: true,
	})

	assert.Equal(t, "id-1", m.ID)
	assert.True(t, m.IsCompleted)
	assert.Nil(t, m.CompletionDate, "completion date is only set by toggling")
	assert.Len(t, store.Milestones("g4"), 2)
}

func TestStore_ToggleMilestoneCompletion(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	t.Run("CompleteSetsDate", func(t *testing.T) {
		store := newTestStore(t, repository.WithClock(clock))

		require.NoError(t, store.ToggleMilestoneCompletion("m3", true))

		m := findMilestone(t, store.Milestones("g1"), "m3")
		assert.True(t, m.IsCompleted)
		require.NotNil(t, m.CompletionDate)
		assert.True(t, fixed.Equal(*m.CompletionDate))
	})

	t.Run("UncompleteClearsDate", func(t *testing.T) {
		store := newTestStore(t, repository.WithClock(clock))

		require.NoError(t, store.ToggleMilestoneCompletion("m1", false))

		m := findMilestone(t, store.Milestones("g1"), "m1")
		assert.False(t, m.IsCompleted)
		assert.Nil(t, m.CompletionDate)
	})

	t.Run("CompleteTwiceIsIdempotent", func(t *testing.T) {
		store := newTestStore(t, repository.WithClock(clock))

		require.NoError(t, store.ToggleMilestoneCompletion("m3", true))
		first := findMilestone(t, store.Milestones("g1"), "m3")

		require.NoError(t, store.ToggleMilestoneCompletion("m3", true))
		second := findMilestone(t, store.Milestones("g1"), "m3")

		assert.True(t, second.IsCompleted)
		assert.Equal(t, first.CompletionDate, second.CompletionDate)
	})

	t.Run("UnknownMilestone", func(t *testing.T) {
		store := newTestStore(t, repository.WithClock(clock))
		before := store.Snapshot()

		err := store.ToggleMilestoneCompletion("nope", true)
		assert.ErrorIs(t, err, repository.ErrMilestoneNotFound)
		assert.Equal(t, before, store.Snapshot())
	})
}

func TestStore_AddComment(t *testing.T) {
	store := newTestStore(t, sequentialIDs())
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	c := store.AddComment(model.CommentInput{
		Content:   "Nice work",
		UserID:    "3",
		GoalID:    "g2",
		Timestamp: ts,
	})

	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, ts, c.Timestamp)
	assert.Len(t, store.Comments(), 7)

	forGoal := store.CommentsForGoal("g2")
	require.Len(t, forGoal, 2)
	assert.Equal(t, "c3", forGoal[0].ID)
	assert.Equal(t, c.ID, forGoal[1].ID)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := newTestStore(t)

	before := store.Snapshot()
	store.AddGoal(model.GoalInput{Title: "New"})
	require.NoError(t, store.UpdateGoalProgress("g1", 99))
	require.NoError(t, store.ToggleMilestoneCompletion("m1", false))

	after := store.Snapshot()

	assert.Len(t, before.Goals, 5)
	assert.Equal(t, 75, before.Goals[0].Progress)
	assert.NotNil(t, before.Milestones[0].CompletionDate)

	assert.Len(t, after.Goals, 6)
	assert.Equal(t, 99, after.Goals[0].Progress)
	assert.Nil(t, after.Milestones[0].CompletionDate)
	assert.Equal(t, before.Version+3, after.Version)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	store := newTestStore(t)

	goals := store.Goals()
	goals[0].Progress = 0
	goals[0].Title = "mutated"

	milestones := store.Milestones("g1")
	*milestones[0].CompletionDate = time.Time{}

	goal, err := store.Goal("g1")
	require.NoError(t, err)
	assert.Equal(t, 75, goal.Progress)
	assert.Equal(t, "Launch new website", goal.Title)

	m := findMilestone(t, store.Milestones("g1"), "m1")
	assert.False(t, m.CompletionDate.IsZero())
	assert.Equal(t, uint64(0), store.Version())
}

func TestStore_Directory(t *testing.T) {
	store := newTestStore(t)

	user, err := store.User("2")
	require.NoError(t, err)
	assert.Equal(t, "Sam Williams", user.Name)

	_, err = store.User("99")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	team, err := store.Team("team2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4"}, team.Members)

	_, err = store.Team("team9")
	assert.ErrorIs(t, err, repository.ErrTeamNotFound)
}

func findMilestone(t *testing.T, milestones []model.Milestone, id string) model.Milestone {
	t.Helper()
	for _, m := range milestones {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("milestone %s not found", id)
	return model.Milestone{}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			store.AddGoal(model.GoalInput{Title: "parallel", UserID: "1"})
		}()
		go func(done bool) {
			defer wg.Done()
			assert.NoError(t, store.ToggleMilestoneCompletion("m3", done))
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			snap := store.Snapshot()
			assert.GreaterOrEqual(t, len(snap.Goals), 5)
			assert.Len(t, store.Milestones("g1"), 3)
		}()
	}
	wg.Wait()

	assert.Len(t, store.Goals(), 5+workers)
	assert.Equal(t, uint64(2*workers), store.Version())

	m := findMilestone(t, store.Milestones("g1"), "m3")
	assert.Equal(t, m.IsCompleted, m.CompletionDate != nil, "completion date tracks the flag")
}

func TestSnapshot_Reads(t *testing.T) {
	store := newTestStore(t, sequentialIDs())
	store.AddMilestone(model.MilestoneInput{Title: "Launch party", GoalID: "g1"})
	snap := store.Snapshot()

	goal, err := snap.Goal("g1")
	require.NoError(t, err)
	assert.Len(t, goal.Milestones, 4)

	_, err = snap.Goal("missing")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	goals := snap.GoalsWithMilestones()
	require.Len(t, goals, 5)
	assert.Len(t, goals[0].Milestones, 4)
	assert.NotNil(t, goals[1].Milestones)

	assert.Len(t, snap.CommentsFor("g2"), 1)
	assert.NotNil(t, snap.MilestonesFor("missing"))

	_, err = snap.User("99")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = snap.Team("team9")
	assert.ErrorIs(t, err, repository.ErrTeamNotFound)

	store.AddGoal(model.GoalInput{Title: "Later"})
	assert.Len(t, snap.GoalsWithMilestones(), 5, "snapshot ignores later writes")
}
