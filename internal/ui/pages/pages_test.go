package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpost/internal/analytics"
	"github.com/templui/goalpost/internal/ctxkeys"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/service"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func seedGoals() []model.Goal {
	goals := seed.Goals()
	milestones := seed.Milestones()
	for i := range goals {
		for _, m := range milestones {
			if m.GoalID == goals[i].ID {
				goals[i].Milestones = append(goals[i].Milestones, m)
			}
		}
	}
	return goals
}

func TestDashboard(t *testing.T) {
	user := seed.Users()[0]
	ctx := ctxkeys.WithUser(context.Background(), &user)
	ctx = ctxkeys.WithCSRFToken(ctx, "tok")
	ctx = templ.WithNonce(ctx, "n0nce")

	out := render(t, ctx, Dashboard(DashboardData{
		Goals:         seedGoals(),
		GoalType:      model.GoalTypeAll,
		Sort:          service.GoalSortProgress,
		CommentCounts: map[string]int{"g1": 2},
		TeamNames:     map[string]string{"team1": "Product Development"},
		UserNames:     map[string]string{"1": "Alex Johnson"},
		Teams:         seed.Teams()[:1],
	}))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `nonce="n0nce"`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
	assert.Contains(t, out, `id="toast-container"`)
	assert.Contains(t, out, "Launch new website")
	assert.Contains(t, out, `id="goal-g1"`)
	assert.Contains(t, out, "2/3", "g1 milestone count")
	assert.Contains(t, out, "Product Development")
	assert.Contains(t, out, `value="progress" selected`)
	assert.Contains(t, out, `hx-post="/app/goals/g1/progress"`)
	assert.Contains(t, out, "Alex Johnson", "acting user in header")
	assert.Contains(t, out, `data-reset=""`, "create form resets after success")
}

func TestDashboardContent_Empty(t *testing.T) {
	out := render(t, context.Background(), DashboardContent(DashboardData{GoalType: model.GoalTypeTeam}))

	assert.Contains(t, out, `id="dashboard"`)
	assert.Contains(t, out, "No goals yet")
	assert.NotContains(t, out, "<!DOCTYPE html>")
}

func TestGoalCard_EscapesUserText(t *testing.T) {
	out := render(t, context.Background(), GoalCard(GoalCardData{
		Goal: model.Goal{ID: "x", Title: `<img src=x onerror=alert(1)>`, Progress: 150},
	}))

	assert.NotContains(t, out, "<img src=x")
	assert.Contains(t, out, `aria-valuenow="100"`, "bar clamps display value")
	assert.Contains(t, out, "Personal")
}

func TestGoalDetailContent(t *testing.T) {
	goal := seedGoals()[0]
	team := seed.Teams()[0]
	completed := time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC)
	goal.Milestones[0].CompletionDate = &completed

	out := render(t, context.Background(), GoalDetailContent(&model.GoalDetail{
		Goal:  goal,
		Owner: seed.Users()[0],
		Team:  &team,
		Comments: []model.CommentWithAuthor{
			{Comment: model.Comment{ID: "c2", Content: "**Found** issues", Timestamp: completed}, Author: seed.Users()[2]},
		},
	}))

	assert.Contains(t, out, `id="milestones"`)
	assert.Contains(t, out, "2 of 3 complete")
	assert.Contains(t, out, `hx-post="/app/milestones/m3/toggle"`)
	assert.Contains(t, out, `name="is_completed" value="true"`, "incomplete milestone toggles to true")
	assert.Contains(t, out, "Oct 15, 2023")
	assert.Contains(t, out, "<strong>Found</strong>", "comments render markdown")
	assert.Contains(t, out, "Jordan Smith")
	assert.Contains(t, out, "3 team members")
}

func TestAnalyticsContent(t *testing.T) {
	report := analytics.Summarize(seedGoals())

	out := render(t, context.Background(), AnalyticsContent(AnalyticsData{Report: report, GoalType: model.GoalTypeAll}))

	assert.Contains(t, out, `id="analytics"`)
	assert.Contains(t, out, "46%")
	assert.Contains(t, out, "7 / 8")
	assert.Contains(t, out, "2 / 3")
	assert.Contains(t, out, "Early Stage")
	assert.Contains(t, out, "height: 100%", "largest bucket fills the chart")
	assert.Contains(t, out, "Completed")
}

func TestNotFound(t *testing.T) {
	out := render(t, context.Background(), NotFound())
	assert.Contains(t, out, "Page not found")
}
