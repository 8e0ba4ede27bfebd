package handler

import (
	"net/http"

	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/service"
	"github.com/templui/goalpost/internal/ui"
	"github.com/templui/goalpost/internal/ui/pages"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) AnalyticsPage(w http.ResponseWriter, r *http.Request) {
	goalType, err := service.ParseGoalType(r.URL.Query().Get("type"))
	if err != nil {
		goalType = model.GoalTypeAll
	}

	report, _ := h.analyticsService.Report(goalType)
	data := pages.AnalyticsData{
		Report:   report,
		GoalType: goalType,
	}

	if ui.IsHTMX(r) {
		ui.Render(w, r, pages.AnalyticsContent(data))
		return
	}

	ui.Render(w, r, pages.Analytics(data))
}
