// Package internal contains core application functionality
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"visionly/internal/config"
	"visionly/internal/database"
	"visionly/internal/ga4"
	ihttp "visionly/internal/http"
	"visionly/internal/jobs"
	"visionly/internal/logging"
	"visionly/internal/promptcache"
	"visionly/internal/reports"
)

// Application wires config, logging, storage, the GA4 client and the
// HTTP server together.
type Application struct {
	App       *fiber.App
	DBManager *database.DBManager
	Logger    *slog.Logger
	Prompts   *promptcache.Store
	Scheduler *jobs.Scheduler
	cfg       *config.Config
}

// NewApp creates a new application instance with default settings
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler(logger),
	})

	application := &Application{
		App:       app,
		DBManager: dbManager,
		Logger:    logger,
		cfg:       cfg,
	}

	clientOpts := []ga4.ClientOption{
		ga4.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.GA4TimeoutSeconds) * time.Second,
		}),
	}
	if cfg.GA4BaseURL != "" {
		clientOpts = append(clientOpts, ga4.WithBaseURL(cfg.GA4BaseURL))
	}
	client := ga4.NewClient(ga4.StaticToken(cfg.GA4AccessToken), logger, clientOpts...)

	cache := reports.NewCache(dbManager.GetConnection(),
		time.Duration(cfg.CacheTTLMinutes)*time.Minute, logger)

	prompts, err := promptcache.Open(cfg.PromptCachePath,
		time.Duration(cfg.PromptCacheTTLDays)*24*time.Hour, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt cache: %w", err)
	}
	application.Prompts = prompts

	application.Scheduler = jobs.NewScheduler(
		jobs.NewCleanupJob(cache, prompts, logger),
		time.Duration(cfg.CleanupIntervalHours)*time.Hour, logger)

	svc := ihttp.NewService(cfg, client, cache, logger)
	application.MountAppRoutes(svc, prompts)

	return application, nil
}

// StartAsync starts the background cleanup loop and the HTTP listener.
func (a *Application) StartAsync() error {
	a.Scheduler.Start()
	go func() {
		if err := a.App.Listen(":" + a.cfg.AppPort); err != nil {
			a.Logger.Error("HTTP listener stopped", slog.Any("error", err))
		}
	}()
	a.Logger.Info("Server listening", slog.String("port", a.cfg.AppPort))
	return nil
}

// Shutdown stops the HTTP server and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.App.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Prompts != nil {
		if err := a.Prompts.Close(); err != nil {
			return fmt.Errorf("close prompt cache: %w", err)
		}
	}
	if err := a.DBManager.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("Unhandled request error",
				slog.String("path", c.Path()), slog.Any("error", err))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
