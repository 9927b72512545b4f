// Package api provides the HTTP surface standing in for the presentation
// layer: a stateless weather endpoint plus the session state transitions.
package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weathernow.app/internal/core/session"
	"weathernow.app/internal/core/weather"
	"weathernow.app/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// WeatherUseCase is the use-case surface the stateless endpoint depends on
type WeatherUseCase interface {
	GetWeatherByCity(ctx context.Context, city string) (*weather.Weather, error)
	GetWeatherByLocation(ctx context.Context, lat, lon float64) (*weather.Weather, error)
}

// SessionMachine is the transition surface the session endpoints depend on
type SessionMachine interface {
	Snapshot() session.State
	SearchCity(ctx context.Context, name string) session.State
	LoadWeatherByLocation(ctx context.Context, lat, lon float64) session.State
	LoadLastSearchedCity(ctx context.Context) session.State
	OnLocationPermissionDenied(ctx context.Context) session.State
	ClearError(ctx context.Context) session.State
}

// HTTPServerAdapter implements the HTTP server using Gin
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	weatherUseCase WeatherUseCase
	sessionMachine SessionMachine
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	WeatherUseCase WeatherUseCase
	SessionMachine SessionMachine
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.SessionMachine == nil {
		return errors.NewValidationError("session machine is required")
	}
	return nil
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.Default()
	router.Use(requestIDMiddleware())

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		weatherUseCase: opts.WeatherUseCase,
		sessionMachine: opts.SessionMachine,
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)

		sess := api.Group("/session")
		{
			sess.GET("/state", s.getSessionState)
			sess.POST("/search", s.searchCity)
			sess.POST("/location", s.loadByLocation)
			sess.POST("/last-city", s.loadLastCity)
			sess.POST("/permission-denied", s.permissionDenied)
			sess.POST("/clear-error", s.clearError)
		}
	}

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// requestIDMiddleware attaches a request ID to every request for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func (s *HTTPServerAdapter) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Start begins the HTTP server
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", s.config.Port)
	return s.router.Run(fmt.Sprintf(":%d", s.config.Port))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
