package ui

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/templui/goalpost/internal/ui/components/toast"
)

const toastTarget = "beforeend:#toast-container"

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	err := c.Render(r.Context(), w)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// RenderStatus renders c after writing status.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := c.Render(r.Context(), w)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path, "status", status)
	}
}

func RenderOOB(w http.ResponseWriter, r *http.Request, c templ.Component, target string) {
	_, err := fmt.Fprintf(w, `<div hx-swap-oob="%s">`, templ.EscapeString(target))
	if err != nil {
		slog.Error("render oob write wrapper start failed", "error", err)
		return
	}

	err = c.Render(r.Context(), w)
	if err != nil {
		slog.Error("render oob component render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	_, err = w.Write([]byte(`</div>`))
	if err != nil {
		slog.Error("render oob write wrapper end failed", "error", err)
	}
}

// RenderToast appends a toast to the page's toast container.
func RenderToast(w http.ResponseWriter, r *http.Request, variant toast.Variant, title, description string) {
	RenderOOB(w, r, toast.Toast(toast.Props{
		Title:       title,
		Description: description,
		Variant:     variant,
		Icon:        true,
		Dismissible: true,
	}), toastTarget)
}

// RenderErrorToast shows an error toast and leaves the request's target
// untouched. htmx skips swaps on error statuses, so the response stays 200.
func RenderErrorToast(w http.ResponseWriter, r *http.Request, description string) {
	w.Header().Set("HX-Reswap", "none")
	RenderToast(w, r, toast.VariantError, "Error", description)
}
