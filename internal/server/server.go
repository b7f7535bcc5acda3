package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Talha62370/Real-Time-Polling/internal/config"
	"github.com/Talha62370/Real-Time-Polling/internal/domain"
	apperrors "github.com/Talha62370/Real-Time-Polling/internal/errors"
	"github.com/Talha62370/Real-Time-Polling/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// postgresHealthChecker is a minimal interface for database health checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       domain.AppService
	hub       *websocket.Hub
	db        postgresHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, app domain.AppService, hub *websocket.Hub, db postgresHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		hub:       hub,
		db:        db,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
