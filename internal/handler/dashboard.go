package handler

import (
	"net/http"

	"github.com/templui/goalpost/internal/ctxkeys"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/service"
	"github.com/templui/goalpost/internal/ui"
	"github.com/templui/goalpost/internal/ui/pages"
)

type DashboardHandler struct {
	goalService      *service.GoalService
	directoryService *service.DirectoryService
}

func NewDashboardHandler(goalService *service.GoalService, directoryService *service.DirectoryService) *DashboardHandler {
	return &DashboardHandler{
		goalService:      goalService,
		directoryService: directoryService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	goalType, sortBy := listQuery(r.URL.Query().Get("type"), r.URL.Query().Get("sort"))
	data := dashboardData(r, h.goalService, h.directoryService, goalType, sortBy)

	// If HTMX request, only render the content portion
	if ui.IsHTMX(r) {
		ui.Render(w, r, pages.DashboardContent(data))
		return
	}

	ui.Render(w, r, pages.Dashboard(data))
}

// listQuery normalizes the dashboard filter and sort. Unknown values fall
// back to all goals in default order.
func listQuery(goalType, sortBy string) (string, string) {
	parsed, err := service.ParseGoalType(goalType)
	if err != nil {
		parsed = model.GoalTypeAll
	}
	if !service.ValidSort(sortBy) {
		sortBy = service.GoalSortDefault
	}
	return parsed, sortBy
}

func dashboardData(r *http.Request, goals *service.GoalService, directory *service.DirectoryService, goalType, sortBy string) pages.DashboardData {
	list, _ := goals.Goals(goalType, sortBy)
	data := pages.DashboardData{
		Goals:         list,
		GoalType:      goalType,
		Sort:          sortBy,
		CommentCounts: goals.CommentCounts(),
		TeamNames:     directory.TeamNames(),
		UserNames:     directory.UserNames(),
	}
	if user := ctxkeys.User(r.Context()); user != nil {
		data.Teams = directory.TeamsForUser(user.ID)
	}
	return data
}
