// Package http provides the HTTP handler layer for the fare search API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all fare search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *FareHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	api.POST("/search", h.Search)
	api.POST("/messages", h.Message)
	api.DELETE("/sessions/:id", h.Reset)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FareHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	api.POST("/search", h.Search)
	api.POST("/messages", h.Message)
	api.DELETE("/sessions/:id", h.Reset)
}
