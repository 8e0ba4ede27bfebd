package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/app"
	"github.com/templui/goalpost/internal/config"
)

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return SetupRoutes(a)
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:            "Goalpost",
		AppEnv:             "development",
		ActingUserID:       "1",
		SeedData:           true,
		WriteRateLimit:     100,
		WriteRateWindow:    time.Minute,
		CORSAllowedOrigins: []string{"https://client.example"},
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDashboard_FullStack(t *testing.T) {
	h := newTestServer(t, testConfig())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-")
	assert.Contains(t, rec.Body.String(), "Dashboard · Goalpost", "app name comes from config in context")
	assert.Contains(t, rec.Body.String(), "Alex Johnson", "acting user in header")

	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "csrf_token" {
			csrf = c
		}
	}
	require.NotNil(t, csrf, "page load issues a csrf cookie")
}

func TestFormPost_RequiresCSRFToken(t *testing.T) {
	h := newTestServer(t, testConfig())

	form := url.Values{"progress": {"80"}}
	req := httptest.NewRequest(http.MethodPost, "/app/goals/g1/progress", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusForbidden, serve(h, req).Code)

	page := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := page.Result().Cookies()[0]

	req = httptest.NewRequest(http.MethodPost, "/app/goals/g1/progress", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("X-CSRF-Token", cookie.Value)
	req.AddCookie(cookie)

	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="goal-g1"`)
}

func TestAPI_FullStack(t *testing.T) {
	h := newTestServer(t, testConfig())

	t.Run("ReadWithETag", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("ETag"))
	})

	t.Run("WriteWithoutCSRF", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/goals/g2/progress", strings.NewReader(`{"progress": 70}`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusOK, serve(h, req).Code)
	})

	t.Run("FormBodyRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader("title=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.Equal(t, http.StatusUnsupportedMediaType, serve(h, req).Code)
	})

	t.Run("CORSPreflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/goals", nil)
		req.Header.Set("Origin", "https://client.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")

		rec := serve(h, req)
		assert.Equal(t, "https://client.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("CORSUnknownOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
		req.Header.Set("Origin", "https://evil.example")

		rec := serve(h, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestHealthAndNotFound(t *testing.T) {
	h := newTestServer(t, testConfig())

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/does/not/exist", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestWriteRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.WriteRateLimit = 1
	h := newTestServer(t, cfg)

	patch := func() int {
		req := httptest.NewRequest(http.MethodPatch, "/api/goals/g2/progress", strings.NewReader(`{"progress": 50}`))
		req.Header.Set("Content-Type", "application/json")
		return serve(h, req).Code
	}

	assert.Equal(t, http.StatusOK, patch())
	assert.Equal(t, http.StatusTooManyRequests, patch())
}

func TestEmptyStore(t *testing.T) {
	cfg := testConfig()
	cfg.SeedData = false
	h := newTestServer(t, cfg)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Contains(t, rec.Body.String(), "Alex Johnson", "directory is always loaded")
}

func TestNew_UnknownActingUser(t *testing.T) {
	cfg := testConfig()
	cfg.ActingUserID = "nobody"

	_, err := app.New(cfg)
	assert.Error(t, err)
}
