// Package http provides the HTTP API for briefd.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/briefing"
	"github.com/fyrsmithlabs/briefd/internal/gather"
	"github.com/fyrsmithlabs/briefd/internal/narrative"
)

// Server provides HTTP endpoints for briefd.
type Server struct {
	echo      *echo.Echo
	analyzer  *briefing.Analyzer
	generator narrative.Generator
	logger    *zap.Logger
	config    *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
func NewServer(analyzer *briefing.Analyzer, generator narrative.Generator, logger *zap.Logger, cfg *Config) (*Server, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8787,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		analyzer:  analyzer,
		generator: generator,
		logger:    logger,
		config:    cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check
	s.echo.GET("/health", s.handleHealth)

	// Prometheus metrics
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	v1.POST("/briefings", s.handleBriefing)
}

// BriefingRequest is the request body for POST /api/v1/briefings. The caller
// supplies a fully gathered pool; when Now is set it becomes the evaluation
// clock, which makes responses reproducible.
type BriefingRequest struct {
	Pool *gather.Pool `json:"pool"`
	Now  time.Time    `json:"now,omitempty"`
}

// BriefingResponse is the response body for POST /api/v1/briefings.
type BriefingResponse struct {
	BriefingID string                    `json:"briefing_id"`
	Context    *briefing.FilteredContext `json:"context"`
	Prep       *narrative.PrepDocument   `json:"prep"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleBriefing analyzes the posted pool and renders a prep document.
func (s *Server) handleBriefing(c echo.Context) error {
	var req BriefingRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid briefing request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Pool == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "pool field is required")
	}
	if req.Pool.Meeting.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pool.meeting.title is required")
	}

	ctx := c.Request().Context()

	fc, err := s.analyzer.Analyze(ctx, req.Pool, req.Now)
	if err != nil {
		s.logger.Error("analysis failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "analysis failed")
	}

	prep, err := s.generator.Generate(ctx, req.Pool.Meeting, fc)
	if err != nil {
		s.logger.Error("prep generation failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "prep generation failed")
	}

	return c.JSON(http.StatusOK, BriefingResponse{
		BriefingID: uuid.NewString(),
		Context:    fc,
		Prep:       prep,
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
