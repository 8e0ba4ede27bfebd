package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/templui/goalpost/internal/ctxkeys"
	"github.com/templui/goalpost/internal/service"
	"github.com/templui/goalpost/internal/ui"
	"github.com/templui/goalpost/internal/ui/components/toast"
	"github.com/templui/goalpost/internal/ui/pages"
)

const dateLayout = "2006-01-02" // HTML date input format

var (
	errInvalidProgress = &service.InputError{Err: errors.New("progress must be a whole number")}
	errInvalidDate     = &service.InputError{Err: errors.New("dates must use the YYYY-MM-DD format")}
)

type GoalHandler struct {
	goalService      *service.GoalService
	directoryService *service.DirectoryService
	exportService    *service.ExportService
}

func NewGoalHandler(goalService *service.GoalService, directoryService *service.DirectoryService, exportService *service.ExportService) *GoalHandler {
	return &GoalHandler{
		goalService:      goalService,
		directoryService: directoryService,
		exportService:    exportService,
	}
}

func (h *GoalHandler) GoalDetailPage(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	detail, _, err := h.goalService.Detail(goalID)
	if err != nil {
		logFailure(r, "get goal", err, "goal_id", goalID)
		if statusFor(err) == http.StatusNotFound {
			ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
			return
		}
		http.Error(w, "Failed to load goal", http.StatusInternalServerError)
		return
	}

	if ui.IsHTMX(r) {
		ui.Render(w, r, pages.GoalDetailContent(detail))
		return
	}

	ui.Render(w, r, pages.GoalDetail(detail))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	params, err := createParamsFromForm(r, user.ID)
	if err != nil {
		formError(w, r, "create goal", err, "user_id", user.ID)
		return
	}

	goal, err := h.goalService.Create(params)
	if err != nil {
		formError(w, r, "create goal", err, "user_id", user.ID)
		return
	}

	if !ui.IsHTMX(r) {
		http.Redirect(w, r, "/app/goals/"+goal.ID, http.StatusSeeOther)
		return
	}

	goalType, sortBy := listQuery(r.FormValue("type"), r.FormValue("sort"))
	data := dashboardData(r, h.goalService, h.directoryService, goalType, sortBy)

	ui.Render(w, r, pages.DashboardContent(data))
	ui.RenderToast(w, r, toast.VariantSuccess, "Success", "Goal created successfully")
}

func createParamsFromForm(r *http.Request, userID string) (service.CreateGoalParams, error) {
	params := service.CreateGoalParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		UserID:      userID,
		TeamID:      r.FormValue("team_id"),
	}

	if v := strings.TrimSpace(r.FormValue("progress")); v != "" {
		progress, err := strconv.Atoi(v)
		if err != nil {
			return params, errInvalidProgress
		}
		params.Progress = progress
	}

	var err error
	params.StartDate, err = formDate(r.FormValue("start_date"))
	if err != nil {
		return params, err
	}
	params.EndDate, err = formDate(r.FormValue("end_date"))
	if err != nil {
		return params, err
	}

	return params, nil
}

func formDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errInvalidDate
	}
	return &t, nil
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	progress, err := strconv.Atoi(strings.TrimSpace(r.FormValue("progress")))
	if err != nil {
		formError(w, r, "update progress", errInvalidProgress, "goal_id", goalID)
		return
	}

	goal, err := h.goalService.UpdateProgress(goalID, progress)
	if err != nil {
		formError(w, r, "update progress", err, "goal_id", goalID)
		return
	}

	if !ui.IsHTMX(r) {
		http.Redirect(w, r, refererOr(r, "/app/goals/"+goalID), http.StatusSeeOther)
		return
	}

	if r.FormValue("view") == "detail" {
		ui.Render(w, r, pages.ProgressSection(*goal))
	} else {
		ui.Render(w, r, pages.GoalCard(pages.GoalCardData{
			Goal:         *goal,
			TeamName:     h.directoryService.TeamNames()[goal.TeamID],
			OwnerName:    h.directoryService.UserNames()[goal.UserID],
			CommentCount: h.goalService.CommentCounts()[goal.ID],
		}))
	}
	ui.RenderToast(w, r, toast.VariantSuccess, "Progress updated", goal.Title+" is now at "+strconv.Itoa(goal.Progress)+"%")
}

func (h *GoalHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	_, err := h.goalService.AddMilestone(goalID, r.FormValue("title"), r.FormValue("description"))
	if err != nil {
		formError(w, r, "add milestone", err, "goal_id", goalID)
		return
	}

	h.renderMilestones(w, r, goalID, "Milestone added")
}

func (h *GoalHandler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	milestoneID := r.PathValue("id")

	isCompleted, err := strconv.ParseBool(r.FormValue("is_completed"))
	if err != nil {
		formError(w, r, "toggle milestone", &service.InputError{Err: errors.New("is_completed must be true or false")}, "milestone_id", milestoneID)
		return
	}

	milestone, err := h.goalService.ToggleMilestone(milestoneID, isCompleted)
	if err != nil {
		formError(w, r, "toggle milestone", err, "milestone_id", milestoneID)
		return
	}

	message := "Milestone reopened"
	if milestone.IsCompleted {
		message = "Milestone completed"
	}
	h.renderMilestones(w, r, milestone.GoalID, message)
}

func (h *GoalHandler) renderMilestones(w http.ResponseWriter, r *http.Request, goalID, message string) {
	if !ui.IsHTMX(r) {
		http.Redirect(w, r, "/app/goals/"+goalID, http.StatusSeeOther)
		return
	}

	goal, err := h.goalService.ByID(goalID)
	if err != nil {
		logFailure(r, "reload goal", err, "goal_id", goalID)
		http.Error(w, "Failed to reload goal", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.MilestonesSection(*goal))
	ui.RenderToast(w, r, toast.VariantSuccess, "Success", message)
}

func (h *GoalHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	_, err := h.goalService.AddComment(goalID, user.ID, r.FormValue("content"))
	if err != nil {
		formError(w, r, "add comment", err, "goal_id", goalID, "user_id", user.ID)
		return
	}

	if !ui.IsHTMX(r) {
		http.Redirect(w, r, "/app/goals/"+goalID, http.StatusSeeOther)
		return
	}

	comments, _, err := h.goalService.Comments(goalID)
	if err != nil {
		logFailure(r, "reload comments", err, "goal_id", goalID)
		http.Error(w, "Failed to reload comments", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.CommentsSection(goalID, comments))
	ui.RenderToast(w, r, toast.VariantSuccess, "Success", "Comment posted")
}

// Export downloads the whole application state as JSON.
func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	export := h.exportService.Export()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=goalpost-export.json")

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(export)
	if err != nil {
		slog.Error("failed to encode export", "error", err)
	}
}

// refererOr returns the same-host page the form was posted from, or def.
func refererOr(r *http.Request, def string) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != r.Host || u.Path == "" {
		return def
	}
	return u.RequestURI()
}
