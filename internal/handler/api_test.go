package handler

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/analytics"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/service"
)

func TestAPI_Goals(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/api/goals?type=team&sort=progress")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `"v0"`, rec.Header().Get("ETag"))

	goals := decode[[]model.Goal](t, rec)
	require.Len(t, goals, 3)
	assert.Equal(t, []string{"g1", "g3", "g5"}, []string{goals[0].ID, goals[1].ID, goals[2].ID})
	assert.Len(t, goals[0].Milestones, 3)

	t.Run("InvalidFilter", func(t *testing.T) {
		rec := env.get("/api/goals?type=shared")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[errorResponse](t, rec).Error, "Unknown goal type")
	})

	t.Run("InvalidSort", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.get("/api/goals?sort=random").Code)
	})
}

func TestAPI_ETag(t *testing.T) {
	env := newTestEnv(t)

	first := env.get("/api/analytics")
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec := env.get("/api/analytics", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	env.sendJSON(http.MethodPatch, "/api/goals/g2/progress", `{"progress": 90}`)

	rec = env.get("/api/analytics", "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, rec.Code, "a mutation changes the version")
	assert.NotEqual(t, etag, rec.Header().Get("ETag"))
}

// writeAfterRead lands one write right after the first snapshot is taken,
// as a concurrent request would.
type writeAfterRead struct {
	*repository.Store
	once sync.Once
}

func (s *writeAfterRead) Snapshot() repository.Snapshot {
	snap := s.Store.Snapshot()
	s.once.Do(func() {
		_ = s.Store.UpdateGoalProgress("g1", 10)
	})
	return snap
}

func TestAPI_ETagMatchesBody(t *testing.T) {
	paths := []string{
		"/api/goals",
		"/api/goals/g1",
		"/api/goals/g1/milestones",
		"/api/goals/g1/comments",
		"/api/analytics",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			store := repository.NewStore(seed.Load())
			env := newTestEnvOver(t, store, &writeAfterRead{Store: store})

			first := env.get(path)
			require.Equal(t, http.StatusOK, first.Code)
			assert.Equal(t, `"v0"`, first.Header().Get("ETag"), "tagged with the version the body was read at")
			assert.Equal(t, uint64(1), store.Version())

			again := env.get(path, "If-None-Match", first.Header().Get("ETag"))
			assert.Equal(t, http.StatusOK, again.Code, "the concurrent write must reach the client")
			assert.Equal(t, `"v1"`, again.Header().Get("ETag"))
		})
	}

	t.Run("GoalBodyIsConsistent", func(t *testing.T) {
		store := repository.NewStore(seed.Load())
		env := newTestEnvOver(t, store, &writeAfterRead{Store: store})

		detail := decode[model.GoalDetail](t, env.get("/api/goals/g1"))
		assert.Equal(t, 75, detail.Goal.Progress)

		detail = decode[model.GoalDetail](t, env.get("/api/goals/g1"))
		assert.Equal(t, 10, detail.Goal.Progress)
	})
}

func TestAPI_CreateGoal(t *testing.T) {
	env := newTestEnv(t)

	rec := env.sendJSON(http.MethodPost, "/api/goals", `{
		"title": "Write docs",
		"progress": 120,
		"startDate": "2026-01-01T00:00:00Z",
		"endDate": "2026-02-01T00:00:00Z",
		"teamId": "team1"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	goal := decode[model.Goal](t, rec)
	assert.Equal(t, "Write docs", goal.Title)
	assert.Equal(t, 100, goal.Progress)
	assert.Equal(t, "1", goal.UserID, "defaults to the acting user")
	assert.Equal(t, "team1", goal.TeamID)
	assert.Empty(t, goal.Milestones)
	assert.Equal(t, "/api/goals/"+goal.ID, rec.Header().Get("Location"))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"MissingTitle", `{"title": "  "}`, http.StatusBadRequest},
		{"UnknownTeam", `{"title": "x", "teamId": "team9"}`, http.StatusBadRequest},
		{"UnknownField", `{"title": "x", "owner": "1"}`, http.StatusBadRequest},
		{"EmptyBody", ``, http.StatusBadRequest},
		{"EndBeforeStart", `{"title": "x", "startDate": "2026-02-01T00:00:00Z", "endDate": "2026-01-01T00:00:00Z"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.sendJSON(http.MethodPost, "/api/goals", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAPI_Goal(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/api/goals/g1")
	require.Equal(t, http.StatusOK, rec.Code)

	detail := decode[model.GoalDetail](t, rec)
	assert.Equal(t, "Launch new website", detail.Goal.Title)
	assert.Equal(t, "Alex Johnson", detail.Owner.Name)
	require.NotNil(t, detail.Team)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "c2", detail.Comments[0].ID)

	rec = env.get("/api/goals/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Goal not found", decode[errorResponse](t, rec).Error)
}

func TestAPI_UpdateProgress(t *testing.T) {
	env := newTestEnv(t)

	rec := env.sendJSON(http.MethodPatch, "/api/goals/g4/progress", `{"progress": -20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[model.Goal](t, rec).Progress)

	assert.Equal(t, http.StatusBadRequest, env.sendJSON(http.MethodPatch, "/api/goals/g4/progress", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, env.sendJSON(http.MethodPatch, "/api/goals/nope/progress", `{"progress": 5}`).Code)
}

func TestAPI_Milestones(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/api/goals/g1/milestones")
	require.Equal(t, http.StatusOK, rec.Code)
	milestones := decode[[]model.Milestone](t, rec)
	require.Len(t, milestones, 3)
	assert.Equal(t, "m1", milestones[0].ID)

	rec = env.sendJSON(http.MethodPost, "/api/goals/g4/milestones", `{"title": "Run 10K"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	added := decode[model.Milestone](t, rec)
	assert.False(t, added.IsCompleted)
	assert.Nil(t, added.CompletionDate)

	rec = env.sendJSON(http.MethodPatch, "/api/milestones/"+added.ID, `{"isCompleted": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decode[model.Milestone](t, rec)
	assert.True(t, toggled.IsCompleted)
	assert.NotNil(t, toggled.CompletionDate)

	rec = env.sendJSON(http.MethodPatch, "/api/milestones/"+added.ID, `{"isCompleted": false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "completionDate")

	assert.Equal(t, http.StatusBadRequest, env.sendJSON(http.MethodPatch, "/api/milestones/m3", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, env.sendJSON(http.MethodPatch, "/api/milestones/nope", `{"isCompleted": true}`).Code)
	assert.Equal(t, http.StatusNotFound, env.get("/api/goals/nope/milestones").Code)
	assert.Equal(t, http.StatusNotFound, env.sendJSON(http.MethodPost, "/api/goals/nope/milestones", `{"title": "x"}`).Code)
}

func TestAPI_Comments(t *testing.T) {
	env := newTestEnv(t)

	rec := env.sendJSON(http.MethodPost, "/api/goals/g5/comments", `{"content": "Great start!", "userId": "2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.CommentWithAuthor](t, rec)
	assert.Equal(t, "Sam Williams", created.Author.Name)

	rec = env.get("/api/goals/g5/comments")
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decode[[]model.CommentWithAuthor](t, rec)
	require.Len(t, comments, 2)
	assert.Equal(t, created.ID, comments[0].ID, "newest first")
	assert.Equal(t, "c6", comments[1].ID)

	assert.Equal(t, http.StatusBadRequest, env.sendJSON(http.MethodPost, "/api/goals/g5/comments", `{"content": " "}`).Code)
	assert.Equal(t, http.StatusNotFound, env.get("/api/goals/nope/comments").Code)
}

func TestAPI_Analytics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/api/analytics")
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[analytics.Report](t, rec)
	assert.Equal(t, 5, report.TotalGoals)
	assert.Equal(t, 46, report.OverallProgress)
	assert.Equal(t, analytics.GoalTypes{Personal: 2, Team: 3}, report.GoalTypes)
	assert.Equal(t, analytics.MilestoneStatus{Completed: 7, Remaining: 1}, report.Milestones)

	counts := make([]int, len(report.Buckets))
	for i, b := range report.Buckets {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{0, 2, 2, 1, 0}, counts)

	rec = env.get("/api/analytics?type=team")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[analytics.Report](t, rec).TotalGoals)
}

func TestAPI_DirectoryAndExport(t *testing.T) {
	env := newTestEnv(t)

	assert.Len(t, decode[[]model.User](t, env.get("/api/users")), 4)
	assert.Len(t, decode[[]model.Team](t, env.get("/api/teams")), 3)

	rec := env.get("/api/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "goalpost-export.json")

	export := decode[service.Export](t, rec)
	assert.Len(t, export.Goals, 5)
	assert.Len(t, export.Milestones, 8)
	assert.Len(t, export.Comments, 6)
	assert.False(t, export.ExportedAt.IsZero())
}

func TestAPI_Health(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
}
