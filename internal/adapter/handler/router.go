package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aimalabs/meeting-review/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	reviewHandler *Review
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, reviewHandler *Review) *Router {
	return &Router{
		cfg:           cfg,
		reviewHandler: reviewHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
}

// setupMeetingRoutes configures the meeting review routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.GET("/files", rt.reviewHandler.ListFiles)
	meetings.GET("/analyzed", rt.reviewHandler.ListAnalyzed)
	meetings.POST("/analyze", rt.reviewHandler.Analyze)
	meetings.GET("/analyze/progress", rt.reviewHandler.Progress)
	meetings.GET("/:filename/summary", rt.reviewHandler.Summary)
	meetings.PUT("/action-items/:index", rt.reviewHandler.UpdateActionItem)
	meetings.GET("/calendar", rt.reviewHandler.Calendar)
	meetings.GET("/todos", rt.reviewHandler.Todos)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
