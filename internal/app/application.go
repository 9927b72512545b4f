// Package app wires the application together: configuration, ports,
// use cases, the session machine and the HTTP adapter.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/adapters/api"
	"weathernow.app/internal/config"
	"weathernow.app/internal/core/session"
	"weathernow.app/internal/core/weather"
)

type Application struct {
	config *config.Config

	weatherUseCase *weather.UseCase
	sessionMachine *session.Machine

	httpServer *http.Server
	router     *gin.Engine

	deps *DependencyContainer
}

func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	app := &Application{config: cfg}

	if err := app.initializePorts(); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := app.initializeCore(); err != nil {
		return nil, fmt.Errorf("initialize core: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializePorts() error {
	slog.Info("Initializing application ports...")

	deps, err := NewDependencyContainer(a.config)
	if err != nil {
		return fmt.Errorf("create dependency container: %w", err)
	}

	a.deps = deps
	slog.Info("Application ports initialized successfully")
	return nil
}

func (a *Application) initializeCore() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Repository: a.deps.WeatherRepository(),
		Logger:     a.deps.Logger(),
		Metrics:    a.deps.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	sessionMachine, err := session.NewMachine(session.MachineDependencies{
		UseCase:  weatherUseCase,
		LastCity: a.deps.LastCityStore(),
		Logger:   a.deps.Logger(),
		Metrics:  a.deps.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("create session machine: %w", err)
	}
	a.sessionMachine = sessionMachine

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		WeatherUseCase: a.weatherUseCase,
		SessionMachine: a.sessionMachine,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.GetRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	// Replay the persisted last city so the session has weather on first paint
	go func() {
		state := a.sessionMachine.LoadLastSearchedCity(ctx)
		if state.Weather != nil {
			slog.Info("Restored last searched city", "city", state.Weather.City)
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
		return nil
	}
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Close(); err != nil {
		slog.Warn("Failed to close dependencies", "error", err)
	}

	slog.Info("Application shut down")
	return nil
}

func (a *Application) Config() *config.Config {
	return a.config
}

// Router exposes the gin router for tests
func (a *Application) Router() *gin.Engine {
	return a.router
}
