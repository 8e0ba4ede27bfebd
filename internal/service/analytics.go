package service

import (
	"log/slog"

	"github.com/templui/goalpost/internal/analytics"
	"github.com/templui/goalpost/internal/model"
	"github.com/templui/goalpost/internal/repository"
)

type AnalyticsService struct {
	repo repository.SnapshotRepository
}

func NewAnalyticsService(repo repository.SnapshotRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Report recomputes every statistic for the goals of the given type from a
// single store snapshot, and returns the version of that snapshot.
func (s *AnalyticsService) Report(goalType string) (analytics.Report, uint64) {
	snap := s.repo.Snapshot()

	goals := []model.Goal{}
	for _, g := range snap.GoalsWithMilestones() {
		if g.MatchesType(goalType) {
			goals = append(goals, g)
		}
	}

	report := analytics.Summarize(goals)
	slog.Debug("analytics computed",
		"goal_type", goalType,
		"version", snap.Version,
		"goals", report.TotalGoals,
		"overall_progress", report.OverallProgress,
	)
	return report, snap.Version
}
