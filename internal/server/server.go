package server

import (
	"context"
	"net/http"
	"strings"

	"ai-gateway-be/internal/bootstrap"
	"ai-gateway-be/internal/config"
	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := NewApp(cfg.App, container.Logger, container.Controllers()...)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// NewApp builds the Fiber app: /api traffic goes through the route table,
// everything else is looked up under the static directory.
func NewApp(cfg config.AppConfig, log logger.ILogger, controllers ...serverutils.RouteRegistrar) *fiber.App {
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimit * 1024 * 1024,
		ErrorHandler:          serverutils.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	origins := cfg.CorsAllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, X-Session-Id",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	router := serverutils.NewRouter(constant.APIPrefix)
	for _, c := range controllers {
		c.RegisterRoutes(router)
	}
	app.Use(func(ctx *fiber.Ctx) error {
		if !router.Matches(ctx.Path()) {
			return ctx.Next()
		}
		return router.Handle(ctx)
	})

	if dir := strings.TrimSpace(cfg.StaticDir); dir != "" {
		app.Use(filesystem.New(filesystem.Config{
			Root:   http.Dir(dir),
			Index:  "index.html",
			MaxAge: 3600,
		}))
	}

	app.Use(func(ctx *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("Server", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
