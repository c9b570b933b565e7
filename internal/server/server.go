package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	requestlog "github.com/nfrund/classmeta/internal/middleware"
	"github.com/nfrund/classmeta/internal/rendering"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

// Server exposes a class registry over HTTP.
type Server struct {
	E        *echo.Echo
	registry *typeregistry.Registry
	logger   *slog.Logger
}

// New creates a server for reg. Routes are added by RegisterRoutes.
func New(reg *typeregistry.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = rendering.NewRenderer()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestlog.RequestLogger(logger))

	return &Server{E: e, registry: reg, logger: logger}
}

// Start serves on addr until the server is shut down.
func (s *Server) Start(addr string) error {
	s.logger.Info("HTTP server listening", "addr", addr)
	if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.E.Shutdown(ctx)
}
