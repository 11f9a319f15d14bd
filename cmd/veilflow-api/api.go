// Package main provides the VeilFlow API server implementation.
package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/veildoc/veilflow/pkg/eventbus"
	"github.com/veildoc/veilflow/pkg/persistence"
	"github.com/veildoc/veilflow/pkg/registry"
	"github.com/veildoc/veilflow/pkg/services"
	"github.com/veildoc/veilflow/pkg/web"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	store       persistence.RunStore
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	validate    *validator.Validate
	nodeTimeout time.Duration
}

func NewAPI(
	logger *slog.Logger,
	store persistence.RunStore,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
	nodeTimeout time.Duration,
) *API {
	return &API{
		logger:      logger,
		store:       store,
		registry:    registry,
		eventBus:    eventBus,
		tracer:      tracer,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		nodeTimeout: nodeTimeout,
	}
}

func (a *API) App() *fiber.App {
	runnerOpts := []services.RunnerOption{
		services.WithRunStore(a.store),
		services.WithPublisher(a.eventBus),
		services.WithNodeTimeout(a.nodeTimeout),
	}
	if a.tracer != nil {
		runnerOpts = append(runnerOpts, services.WithTracer(a.tracer))
	}

	runner := services.NewRunner(a.logger, a.registry, runnerOpts...)

	handlers := web.NewAPIHandlers(runner, a.store, a.validate, a.registry)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("VeilFlow API")
	})

	app.Get("/capabilities", handlers.GetCapabilities)
	app.Get("/templates", handlers.GetTemplates)
	app.Get("/templates/:id", handlers.GetTemplate)

	w := app.Group("/workflows")
	w.Post("/validate", handlers.ValidateWorkflow)
	w.Post("/run", handlers.RunWorkflow)

	r := app.Group("/runs")
	r.Get("/", handlers.GetRuns)
	r.Get("/:id", handlers.GetRun)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
