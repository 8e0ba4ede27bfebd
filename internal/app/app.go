package app

import (
	"fmt"
	"log/slog"

	"github.com/templui/goalpost/internal/config"
	"github.com/templui/goalpost/internal/middleware"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/service"
)

type App struct {
	Cfg              *config.Config
	Store            *repository.Store
	WriteLimiter     *middleware.RateLimiter
	GoalService      *service.GoalService
	AnalyticsService *service.AnalyticsService
	DirectoryService *service.DirectoryService
	ExportService    *service.ExportService
}

func New(cfg *config.Config) (*App, error) {
	// Store
	data := seed.Data{Users: seed.Users(), Teams: seed.Teams()}
	if cfg.SeedData {
		data = seed.Load()
	}
	store := repository.NewStore(data)

	// Services
	goalService := service.NewGoalService(store, store, store, store)
	analyticsService := service.NewAnalyticsService(store)
	directoryService := service.NewDirectoryService(store)
	exportService := service.NewExportService(store)

	// Every request acts as this user, so it has to exist.
	actingUser, err := directoryService.User(cfg.ActingUserID)
	if err != nil {
		return nil, fmt.Errorf("acting user %q: %w", cfg.ActingUserID, err)
	}

	snapshot := store.Snapshot()
	slog.Info("store ready",
		"goals", len(snapshot.Goals),
		"milestones", len(snapshot.Milestones),
		"comments", len(snapshot.Comments),
		"users", len(snapshot.Users),
		"teams", len(snapshot.Teams),
		"acting_user", actingUser.Name,
	)

	return &App{
		Cfg:              cfg,
		Store:            store,
		WriteLimiter:     middleware.NewRateLimiter(cfg.WriteRateLimit, cfg.WriteRateWindow),
		GoalService:      goalService,
		AnalyticsService: analyticsService,
		DirectoryService: directoryService,
		ExportService:    exportService,
	}, nil
}

func (a *App) Close() error {
	if a.WriteLimiter != nil {
		a.WriteLimiter.Stop()
	}
	return nil
}
