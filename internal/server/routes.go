package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Root probe
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(200, "API is running")
	})

	// Users
	s.echo.POST("/users", s.handleCreateUser)
	s.echo.GET("/users", s.handleListUsers)
	s.echo.PUT("/users/:id", s.handleUpdateUser)
	s.echo.DELETE("/users/:id", s.handleDeleteUser)

	// Polls
	s.echo.POST("/polls", s.handleCreatePoll)
	s.echo.GET("/polls/:id", s.handleGetPoll)
	s.echo.PUT("/polls/:id", s.handleUpdatePoll)
	s.echo.DELETE("/polls/:id", s.handleDeletePoll)

	// Votes
	s.echo.POST("/votes", s.handleCastVote)
	s.echo.DELETE("/votes/:id", s.handleDeleteVote)

	// Push channel
	s.echo.GET("/ws", s.handleWebSocket)
}
