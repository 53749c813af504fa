package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/api/handler"
	"github.com/parik/salon-console/internal/api/middleware"
	"github.com/parik/salon-console/internal/core/ports"
	"github.com/parik/salon-console/internal/core/service"
	"github.com/parik/salon-console/internal/infrastructure/backend"
	redisdb "github.com/parik/salon-console/internal/infrastructure/db/redis"
	"github.com/parik/salon-console/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// ctx bounds background work such as the rate limiter's cleanup loop; guard
// may be nil when Redis is not configured.
func NewRouter(ctx context.Context, cfg *config.Config, display config.Display, client *backend.Client, guard *redisdb.SubmitGuard, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("salon_console"))
	e.Use(middleware.Session(cfg.SessionSecret, log))

	// --- Dependencies ---
	var submitGuard ports.SubmitGuard
	var guardPing handler.Pinger
	if guard != nil {
		submitGuard = guard
		guardPing = guard
	}

	composer := service.NewComposerService(client, client, submitGuard, service.ComposerOptions{
		CurrencyUnit: display.CurrencyUnit,
		DefaultTime:  display.DefaultTime,
	}, log)
	roster := service.NewRosterService(client, client, client, log)
	refresh := handler.StrategyFor(cfg.UIMode)

	consoleHandler := handler.NewConsoleHandler(roster, display)
	appointmentHandler := handler.NewAppointmentHandler(composer, client, refresh)
	catalogHandler := handler.NewCatalogHandler(client, refresh)
	userHandler := handler.NewUserHandler(client, refresh)
	reportHandler := handler.NewReportHandler(client, refresh)
	exportHandler := handler.NewExportHandler(client)
	healthHandler := handler.NewHealthHandler(client, guardPing)

	limiter := middleware.NewRateLimiter(ctx, 5, 10).Middleware()

	// --- Console pages ---
	e.GET("/", consoleHandler.Home)
	e.GET("/export/:type/:format", exportHandler.Download)

	// --- Appointments ---
	e.GET("/appointments/new", appointmentHandler.NewForm)
	e.POST("/appointments", appointmentHandler.Create, limiter)
	e.POST("/appointments/:id/complete", appointmentHandler.Complete, limiter)
	e.POST("/appointments/:id/cancel", appointmentHandler.Cancel, limiter)
	e.DELETE("/appointments/:id", appointmentHandler.Delete, limiter)

	// --- Catalog maintenance ---
	e.GET("/services/:id", catalogHandler.GetService)
	e.POST("/services", catalogHandler.SaveService, limiter)
	e.PUT("/services/:id", catalogHandler.SaveService, limiter)
	e.DELETE("/services/:id", catalogHandler.DeleteService, limiter)

	e.GET("/masters/:id", catalogHandler.GetMaster)
	e.POST("/masters", catalogHandler.SaveMaster, limiter)
	e.PUT("/masters/:id", catalogHandler.SaveMaster, limiter)
	e.DELETE("/masters/:id", catalogHandler.DeleteMaster, limiter)

	e.POST("/users", userHandler.Create, limiter)
	e.PUT("/users/:id", userHandler.Update, limiter)
	e.DELETE("/users/:id", userHandler.Delete, limiter)

	e.POST("/reports/generate/:date", reportHandler.Generate, limiter)

	// --- Probes and metrics ---
	e.GET("/healthz", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
