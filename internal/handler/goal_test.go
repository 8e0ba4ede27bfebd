package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Launch new website")
	assert.Contains(t, body, "Run a half marathon")

	t.Run("HTMXFilterRendersContentOnly", func(t *testing.T) {
		rec := env.get("/?type=personal", "HX-Request", "true")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.NotContains(t, body, "<!DOCTYPE html>")
		assert.Contains(t, body, "Improve coding skills")
		assert.NotContains(t, body, "Launch new website")
	})

	t.Run("UnknownFilterFallsBack", func(t *testing.T) {
		rec := env.get("/?type=bogus&sort=bogus")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Launch new website")
	})
}

func TestGoalDetailPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/app/goals/g1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Launch new website")
	assert.Contains(t, body, "QA testing")
	assert.Contains(t, body, "Jordan Smith")

	rec = env.get("/app/goals/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestCreateGoal(t *testing.T) {
	t.Run("HTMX", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.postForm("/app/goals", url.Values{
			"title":      {"Learn Spanish"},
			"progress":   {"10"},
			"start_date": {"2026-01-01"},
			"end_date":   {"2026-06-30"},
			"type":       {"personal"},
		}, true)
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `id="dashboard"`)
		assert.Contains(t, body, "Learn Spanish")
		assert.NotContains(t, body, "Launch new website", "list keeps the personal filter")
		assert.Contains(t, body, "Goal created successfully")
		assert.Len(t, env.store.Goals(), 6)
	})

	t.Run("PlainFormRedirects", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.postForm("/app/goals", url.Values{"title": {"Read more"}}, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/app/goals/")
	})

	t.Run("ValidationErrorToast", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.postForm("/app/goals", url.Values{"title": {""}}, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
		assert.Contains(t, rec.Body.String(), "Title is required")
		assert.Len(t, env.store.Goals(), 5)
	})

	t.Run("BadDate", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.postForm("/app/goals", url.Values{"title": {"x"}, "start_date": {"01/02/2026"}}, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateProgressForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/app/goals/g2/progress", url.Values{"progress": {"150"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="goal-g2"`)
	assert.Contains(t, rec.Body.String(), "now at 100%")

	goal, err := env.store.Goal("g2")
	require.NoError(t, err)
	assert.Equal(t, 100, goal.Progress)

	rec = env.postForm("/app/goals/g2/progress", url.Values{"progress": {"40"}, "view": {"detail"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="goal-progress"`)

	rec = env.postForm("/app/goals/g2/progress", url.Values{"progress": {"lots"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.postForm("/app/goals/nope/progress", url.Values{"progress": {"5"}}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMilestoneForms(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/app/goals/g3/milestones", url.Values{"title": {"Launch campaign"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="milestones"`)
	assert.Contains(t, rec.Body.String(), "Launch campaign")
	assert.Contains(t, rec.Body.String(), "1 of 2 complete")

	rec = env.postForm("/app/milestones/m3/toggle", url.Values{"is_completed": {"true"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "3 of 3 complete")
	assert.Contains(t, rec.Body.String(), "Milestone completed")

	m, err := env.store.Milestone("m3")
	require.NoError(t, err)
	assert.True(t, m.IsCompleted)
	assert.NotNil(t, m.CompletionDate)

	rec = env.postForm("/app/milestones/m3/toggle", url.Values{"is_completed": {"maybe"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.postForm("/app/milestones/nope/toggle", url.Values{"is_completed": {"true"}}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postForm("/app/goals/g4/comments", url.Values{"content": {"You've got this"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="comments"`)
	assert.Contains(t, rec.Body.String(), "Comments (2)")
	assert.Contains(t, rec.Body.String(), "Alex Johnson")

	rec = env.postForm("/app/goals/g4/comments", url.Values{"content": {"  "}}, true)
	assert.Contains(t, rec.Body.String(), "Comment cannot be empty")
}

func TestAnalyticsPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/app/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "46%")

	rec = env.get("/app/analytics?type=personal", "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "38%")
}

func TestExportDownload(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/app/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), `"goals"`)
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestErrorMapping(t *testing.T) {
	assert.Equal(t, "Title is required", upperFirst("title is required"))
	assert.Equal(t, "", upperFirst(""))
	assert.Equal(t, "Already", upperFirst("Already"))
}
