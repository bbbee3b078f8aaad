// Package admin exposes level management over HTTP: list effective
// logger entries, change levels one at a time or in batches, trigger a
// reconfigure and inspect the running context. It is the management
// endpoint in front of the configurator API.
package admin

import (
	"context"
	"log/slog"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/Sunyelw/logging-log4j2/pkg/spi"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/gofiber/fiber/v2"
)

// Controller is the level-setting surface the endpoint drives. A
// *configurator.Configurator satisfies it.
type Controller interface {
	SetLevel(name string, lvl level.Level)
	SetLevels(levels map[string]level.Level)
	SetRootLevel(lvl level.Level)
	CurrentContext() spi.LoggerContext
}

// Config represents management endpoint configuration
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// Prefix is the API path prefix (default: "/api/v1").
	Prefix string
}

// DefaultConfig returns default management endpoint configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:   ":8686",
		Prefix: "/api/v1",
	}
}

// Server serves the management API.
type Server struct {
	config     *Config
	controller Controller
	app        *fiber.App
	log        *slog.Logger
}

// NewServer builds the server and registers its routes. A nil config
// uses defaults.
func NewServer(config *Config, controller Controller) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Prefix == "" {
		config.Prefix = DefaultConfig().Prefix
	}

	log := status.Logger().With("component", "admin")

	s := &Server{
		config:     config,
		controller: controller,
		app:        newApp(log),
		log:        log,
	}

	s.setupRoutes()

	return s
}

func newApp(log *slog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Error("request failed", "path", c.Path(), "method", c.Method(), "err", err)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})
}

// setupRoutes configures all management routes. The literal
// /loggers/root routes are registered before the :name ones so they
// win the match.
func (s *Server) setupRoutes() {
	api := s.app.Group(s.config.Prefix)

	api.Get("/loggers", s.handleListLoggers)
	api.Get("/loggers/root", s.handleGetRootLogger)
	api.Get("/loggers/:name", s.handleGetLogger)
	api.Put("/loggers", s.handleSetLevels)
	api.Put("/loggers/root", s.handleSetRootLevel)
	api.Put("/loggers/:name", s.handleSetLevel)
	api.Post("/reconfigure", s.handleReconfigure)
	api.Get("/status", s.handleStatus)
}

// App returns the underlying fiber app, for tests and for embedding the
// endpoint into a larger server.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured address until the listener fails or
// Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("management endpoint listening", "addr", s.config.Addr)

	return s.app.Listen(s.config.Addr)
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
