package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/templui/goalpost/internal/ctxkeys"
	"github.com/templui/goalpost/internal/service"
)

const maxBodyBytes = 1 << 20

// APIHandler serves the JSON API over the same services as the pages.
// Reads carry an ETag derived from the store version.
type APIHandler struct {
	goalService      *service.GoalService
	analyticsService *service.AnalyticsService
	directoryService *service.DirectoryService
	exportService    *service.ExportService
}

func NewAPIHandler(
	goalService *service.GoalService,
	analyticsService *service.AnalyticsService,
	directoryService *service.DirectoryService,
	exportService *service.ExportService,
) *APIHandler {
	return &APIHandler{
		goalService:      goalService,
		analyticsService: analyticsService,
		directoryService: directoryService,
		exportService:    exportService,
	}
}

type createGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	UserID      string     `json:"userId"` // Defaults to the acting user
	TeamID      string     `json:"teamId"`
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

type milestoneRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type toggleRequest struct {
	IsCompleted *bool `json:"isCompleted"`
}

type commentRequest struct {
	Content string `json:"content"`
	UserID  string `json:"userId"` // Defaults to the acting user
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *APIHandler) Goals(w http.ResponseWriter, r *http.Request) {
	goalType, err := service.ParseGoalType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, r, "list goals", err)
		return
	}
	sortBy := r.URL.Query().Get("sort")
	if !service.ValidSort(sortBy) {
		writeError(w, r, "list goals", &service.InputError{Err: errors.New("unknown sort " + strconv.Quote(sortBy))})
		return
	}

	goals, version := h.goalService.Goals(goalType, sortBy)
	if notModified(w, r, version) {
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *APIHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "create goal", err)
		return
	}

	goal, err := h.goalService.Create(service.CreateGoalParams{
		Title:       req.Title,
		Description: req.Description,
		Progress:    req.Progress,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UserID:      actingUserID(r, req.UserID),
		TeamID:      req.TeamID,
	})
	if err != nil {
		writeError(w, r, "create goal", err)
		return
	}

	w.Header().Set("Location", "/api/goals/"+goal.ID)
	writeJSON(w, http.StatusCreated, goal)
}

func (h *APIHandler) Goal(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	detail, version, err := h.goalService.Detail(goalID)
	if err != nil {
		writeError(w, r, "get goal", err, "goal_id", goalID)
		return
	}

	if notModified(w, r, version) {
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *APIHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	var req progressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "update progress", err, "goal_id", goalID)
		return
	}
	if req.Progress == nil {
		writeError(w, r, "update progress", &service.InputError{Err: errors.New("progress is required")}, "goal_id", goalID)
		return
	}

	goal, err := h.goalService.UpdateProgress(goalID, *req.Progress)
	if err != nil {
		writeError(w, r, "update progress", err, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *APIHandler) Milestones(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	milestones, version, err := h.goalService.Milestones(goalID)
	if err != nil {
		writeError(w, r, "list milestones", err, "goal_id", goalID)
		return
	}

	if notModified(w, r, version) {
		return
	}
	writeJSON(w, http.StatusOK, milestones)
}

func (h *APIHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	var req milestoneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "add milestone", err, "goal_id", goalID)
		return
	}

	milestone, err := h.goalService.AddMilestone(goalID, req.Title, req.Description)
	if err != nil {
		writeError(w, r, "add milestone", err, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusCreated, milestone)
}

func (h *APIHandler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	milestoneID := r.PathValue("id")

	var req toggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "toggle milestone", err, "milestone_id", milestoneID)
		return
	}
	if req.IsCompleted == nil {
		writeError(w, r, "toggle milestone", &service.InputError{Err: errors.New("isCompleted is required")}, "milestone_id", milestoneID)
		return
	}

	milestone, err := h.goalService.ToggleMilestone(milestoneID, *req.IsCompleted)
	if err != nil {
		writeError(w, r, "toggle milestone", err, "milestone_id", milestoneID)
		return
	}

	writeJSON(w, http.StatusOK, milestone)
}

func (h *APIHandler) Comments(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	comments, version, err := h.goalService.Comments(goalID)
	if err != nil {
		writeError(w, r, "list comments", err, "goal_id", goalID)
		return
	}

	if notModified(w, r, version) {
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *APIHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "add comment", err, "goal_id", goalID)
		return
	}

	comment, err := h.goalService.AddComment(goalID, actingUserID(r, req.UserID), req.Content)
	if err != nil {
		writeError(w, r, "add comment", err, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *APIHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	goalType, err := service.ParseGoalType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, r, "get analytics", err)
		return
	}

	report, version := h.analyticsService.Report(goalType)
	if notModified(w, r, version) {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *APIHandler) Users(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.directoryService.Users())
}

func (h *APIHandler) Teams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.directoryService.Teams())
}

func (h *APIHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", "attachment; filename=goalpost-export.json")
	writeJSON(w, http.StatusOK, h.exportService.Export())
}

func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.goalService.Version(),
	})
}

// notModified sets the ETag for the store version the response body was read
// at, and answers 304 when the client already holds that version.
func notModified(w http.ResponseWriter, r *http.Request, version uint64) bool {
	etag := etagFor(version)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if match := r.Header.Get("If-None-Match"); match != "" && (match == etag || match == "*") {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func etagFor(version uint64) string {
	return `"v` + strconv.FormatUint(version, 10) + `"`
}

func actingUserID(r *http.Request, requested string) string {
	if requested != "" {
		return requested
	}
	if user := ctxkeys.User(r.Context()); user != nil {
		return user.ID
	}
	return ""
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &service.InputError{Err: errors.New("request body is empty")}
		}
		return &service.InputError{Err: errors.New("invalid JSON body: " + err.Error())}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, action string, err error, attrs ...any) {
	logFailure(r, action, err, attrs...)
	writeJSON(w, statusFor(err), errorResponse{Error: errorMessage(err)})
}

