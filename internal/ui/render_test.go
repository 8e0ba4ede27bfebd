package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/templui/goalpost/internal/ui/components/toast"
)

func TestRenderToast(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/goals", nil)

	RenderToast(rec, req, toast.VariantSuccess, "Success", "Goal <created>")

	body := rec.Body.String()
	assert.Contains(t, body, `hx-swap-oob="beforeend:#toast-container"`)
	assert.Contains(t, body, "Goal &lt;created&gt;")
	assert.Contains(t, body, "bg-green-50")
	assert.Empty(t, rec.Header().Get("HX-Reswap"))
}

func TestRenderErrorToast(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/goals", nil)

	RenderErrorToast(rec, req, "Title is required")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Body.String(), "Title is required")
	assert.Contains(t, rec.Body.String(), "bg-red-50")
}

func TestIsHTMX(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsHTMX(req))
	req.Header.Set("HX-Request", "true")
	assert.True(t, IsHTMX(req))
}
