package internal

import (
	"github.com/gofiber/fiber/v2/middleware/cors"

	"visionly/internal/http"
	"visionly/internal/http/middleware"
	"visionly/internal/promptcache"
)

// dashboardCORSConfig allows browser dashboards on other origins to read
// the API. GET-only, so no preflight-sensitive methods are exposed.
var dashboardCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "GET,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// MountAppRoutes mounts all application routes on the fiber app.
func (a *Application) MountAppRoutes(svc *http.Service, prompts *promptcache.Store) {
	app := a.App
	logger := a.Logger

	// Health check endpoint
	app.Get("/_health", http.HealthAction(a.DBManager.GetConnection(), logger))
	app.Head("/_health", http.HealthAction(a.DBManager.GetConnection(), logger))

	// === DASHBOARD API ROUTES ===
	api := app.Group("/api/v1/dashboard",
		cors.New(dashboardCORSConfig),
		middleware.APIKeyAuth(a.cfg.APIKey, logger),
	)

	api.Get("/platforms", svc.PlatformsAction)
	api.Get("/llm-platforms", svc.LLMPlatformsAction)
	api.Get("/geo", svc.GeoAction)
	api.Get("/devices", svc.DevicesAction)
	api.Get("/pages", svc.PagesAction)
	api.Get("/trend", svc.TrendAction)

	// === PROMPT DEDUPLICATION ===
	app.Post("/api/v1/prompts/check",
		middleware.APIKeyAuth(a.cfg.APIKey, logger),
		http.PromptCheckAction(prompts, logger))
}
