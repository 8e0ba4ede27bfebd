package routes

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/templui/goalpost/internal/app"
	"github.com/templui/goalpost/internal/handler"
	"github.com/templui/goalpost/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	dashboard := handler.NewDashboardHandler(app.GoalService, app.DirectoryService)
	goal := handler.NewGoalHandler(app.GoalService, app.DirectoryService, app.ExportService)
	analytics := handler.NewAnalyticsHandler(app.AnalyticsService)
	api := handler.NewAPIHandler(app.GoalService, app.AnalyticsService, app.DirectoryService, app.ExportService)

	mux := http.NewServeMux()

	// ============================================================================
	// PAGES
	// ============================================================================

	mux.HandleFunc("GET /{$}", dashboard.DashboardPage)
	mux.HandleFunc("GET /app/goals/{id}", goal.GoalDetailPage)
	mux.HandleFunc("GET /app/analytics", analytics.AnalyticsPage)
	mux.HandleFunc("GET /app/export", goal.Export)

	mux.HandleFunc("POST /app/goals", middleware.RequireUser(goal.Create))
	mux.HandleFunc("POST /app/goals/{id}/progress", goal.UpdateProgress)
	mux.HandleFunc("POST /app/goals/{id}/milestones", goal.AddMilestone)
	mux.HandleFunc("POST /app/milestones/{id}/toggle", goal.ToggleMilestone)
	mux.HandleFunc("POST /app/goals/{id}/comments", middleware.RequireUser(goal.AddComment))

	// ============================================================================
	// JSON API
	// ============================================================================

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/goals", api.Goals)
	apiMux.HandleFunc("POST /api/goals", api.CreateGoal)
	apiMux.HandleFunc("GET /api/goals/{id}", api.Goal)
	apiMux.HandleFunc("PATCH /api/goals/{id}/progress", api.UpdateProgress)
	apiMux.HandleFunc("GET /api/goals/{id}/milestones", api.Milestones)
	apiMux.HandleFunc("POST /api/goals/{id}/milestones", api.AddMilestone)
	apiMux.HandleFunc("PATCH /api/milestones/{id}", api.ToggleMilestone)
	apiMux.HandleFunc("GET /api/goals/{id}/comments", api.Comments)
	apiMux.HandleFunc("POST /api/goals/{id}/comments", api.AddComment)
	apiMux.HandleFunc("GET /api/analytics", api.Analytics)
	apiMux.HandleFunc("GET /api/users", api.Users)
	apiMux.HandleFunc("GET /api/teams", api.Teams)
	apiMux.HandleFunc("GET /api/export", api.Export)

	apiCORS := cors.New(cors.Options{
		AllowedOrigins:   app.Cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag", "Location"},
		AllowCredentials: false,
		MaxAge:           600,
	})
	mux.Handle("/api/", apiCORS.Handler(middleware.RequireJSON(apiMux)))

	mux.HandleFunc("GET /healthz", api.Health)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders, // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging,
		middleware.RateLimitWrites(app.WriteLimiter),
		middleware.CSRF("/api/"), // API writes are gated by RequireJSON and CORS instead
		middleware.ActingUser(app.DirectoryService, app.Cfg.ActingUserID),
		middleware.WithURLPath,
	)

	return handler
}
