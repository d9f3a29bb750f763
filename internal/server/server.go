// Package server exposes the generated statistics over HTTP so a local
// frontend can render them.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"chatwrapped/internal/config"
	"chatwrapped/internal/report"
)

const errStatsNotReady = "Stats not generated yet, run the aggregate command first"

// Server serves the stats document and the aggregation run history.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *report.Store
	app    *fiber.App
}

// New builds the HTTP server with its routes registered.
func New(cfg *config.Config, logger *slog.Logger, store *report.Store) *Server {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := http.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	s := &Server{cfg: cfg, logger: logger, store: store, app: app}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.healthHandler)
	s.app.Get("/api/stats", s.statsHandler)
	s.app.Get("/api/runs", s.runsHandler)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving requests on the configured port.
func (s *Server) Listen() error {
	addr := ":" + s.cfg.AppPort
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	StatsFile string    `json:"stats_file"`
}

func (s *Server) healthHandler(c *fiber.Ctx) error {
	status := "ok"
	if _, err := os.Stat(s.cfg.StatsFile); err != nil {
		status = "waiting_for_stats"
	}
	return c.JSON(healthStatus{
		Status:    status,
		Timestamp: time.Now(),
		StatsFile: s.cfg.StatsFile,
	})
}

func (s *Server) statsHandler(c *fiber.Ctx) error {
	doc, err := report.ReadStats(s.cfg.StatsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fiber.NewError(http.StatusNotFound, errStatsNotReady)
		}
		s.logger.Error("failed to load stats document", "error", err)
		return fiber.NewError(http.StatusInternalServerError, "Failed to load stats")
	}
	return c.JSON(doc)
}

func (s *Server) runsHandler(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		return fiber.NewError(http.StatusInternalServerError, "Failed to list runs")
	}
	return c.JSON(fiber.Map{"runs": runs})
}
