// Package web serves the board as a JSON API.
//
// It is a presentation layer only: every gesture is forwarded to the stage
// engine or the task store.
package web

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"taskboard/internal/stage"
)

// Server is the board's HTTP server.
type Server struct {
	engine *stage.Engine
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new server over engine.
func NewServer(engine *stage.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		router: router,
		logger: logger,
	}
	router.Use(s.logRequests)

	api := router.Group("/api")
	{
		api.GET("/board", s.handleBoard)
		api.POST("/tasks", s.handleCreate)
		api.GET("/tasks/:id", s.handleGet)
		api.PUT("/tasks/:id", s.handleUpdate)
		api.DELETE("/tasks/:id", s.handleDelete)
		api.POST("/tasks/:id/drag", s.handleDrag)
		api.POST("/columns/:stage/drop", s.handleDrop)
	}

	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func (s *Server) logRequests(c *gin.Context) {
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
	)
}
