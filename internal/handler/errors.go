package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/service"
	"github.com/templui/goalpost/internal/ui"
)

// statusFor maps service and store errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrMilestoneNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrTeamNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the text shown to the client. Internal errors are not
// exposed.
func errorMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "Something went wrong. Please try again."
	}
	msg := err.Error()
	if msg == "" {
		return http.StatusText(statusFor(err))
	}
	return upperFirst(msg)
}

func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// logFailure logs server errors loudly and client errors at debug level.
func logFailure(r *http.Request, action string, err error, attrs ...any) {
	attrs = append([]any{"error", err, "path", r.URL.Path}, attrs...)
	if statusFor(err) == http.StatusInternalServerError {
		slog.Error("failed to "+action, attrs...)
		return
	}
	slog.Debug("rejected "+action, attrs...)
}

// formError answers a failed form post: a toast for htmx, a plain error
// response otherwise.
func formError(w http.ResponseWriter, r *http.Request, action string, err error, attrs ...any) {
	logFailure(r, action, err, attrs...)
	if ui.IsHTMX(r) {
		ui.RenderErrorToast(w, r, errorMessage(err))
		return
	}
	http.Error(w, errorMessage(err), statusFor(err))
}
