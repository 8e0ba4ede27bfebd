package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/ctxkeys"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/service"
)

type testEnv struct {
	store   *repository.Store
	handler http.Handler
}

// backend is everything the services read and write. Tests wrap the store
// to control what reads observe.
type backend interface {
	repository.GoalRepository
	repository.MilestoneRepository
	repository.CommentRepository
	repository.DirectoryRepository
}

// newTestEnv wires every handler over a seeded store, acting as user 1.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewStore(seed.Load())
	return newTestEnvOver(t, store, store)
}

func newTestEnvOver(t *testing.T, store *repository.Store, b backend) *testEnv {
	t.Helper()

	goals := service.NewGoalService(b, b, b, b)
	analyticsService := service.NewAnalyticsService(b)
	directory := service.NewDirectoryService(b)
	export := service.NewExportService(b)

	dashboard := NewDashboardHandler(goals, directory)
	goal := NewGoalHandler(goals, directory, export)
	analytics := NewAnalyticsHandler(analyticsService)
	api := NewAPIHandler(goals, analyticsService, directory, export)
	home := NewHomeHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", dashboard.DashboardPage)
	mux.HandleFunc("GET /app/goals/{id}", goal.GoalDetailPage)
	mux.HandleFunc("GET /app/analytics", analytics.AnalyticsPage)
	mux.HandleFunc("GET /app/export", goal.Export)
	mux.HandleFunc("POST /app/goals", goal.Create)
	mux.HandleFunc("POST /app/goals/{id}/progress", goal.UpdateProgress)
	mux.HandleFunc("POST /app/goals/{id}/milestones", goal.AddMilestone)
	mux.HandleFunc("POST /app/milestones/{id}/toggle", goal.ToggleMilestone)
	mux.HandleFunc("POST /app/goals/{id}/comments", goal.AddComment)

	mux.HandleFunc("GET /api/goals", api.Goals)
	mux.HandleFunc("POST /api/goals", api.CreateGoal)
	mux.HandleFunc("GET /api/goals/{id}", api.Goal)
	mux.HandleFunc("PATCH /api/goals/{id}/progress", api.UpdateProgress)
	mux.HandleFunc("GET /api/goals/{id}/milestones", api.Milestones)
	mux.HandleFunc("POST /api/goals/{id}/milestones", api.AddMilestone)
	mux.HandleFunc("PATCH /api/milestones/{id}", api.ToggleMilestone)
	mux.HandleFunc("GET /api/goals/{id}/comments", api.Comments)
	mux.HandleFunc("POST /api/goals/{id}/comments", api.AddComment)
	mux.HandleFunc("GET /api/analytics", api.Analytics)
	mux.HandleFunc("GET /api/users", api.Users)
	mux.HandleFunc("GET /api/teams", api.Teams)
	mux.HandleFunc("GET /api/export", api.Export)
	mux.HandleFunc("GET /healthz", api.Health)
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	user := seed.Users()[0]
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), &user)))
	})

	return &testEnv{store: store, handler: handler}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return e.do(req)
}

func (e *testEnv) postForm(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return e.do(req)
}

func (e *testEnv) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
