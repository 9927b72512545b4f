package app

import (
	"fmt"
	"log/slog"
	"time"

	"weathernow.app/internal/adapters/external"
	"weathernow.app/internal/adapters/infrastructure"
	"weathernow.app/internal/adapters/storage"
	"weathernow.app/internal/config"
	"weathernow.app/internal/core/preferences"
	"weathernow.app/internal/ports"
)

// DependencyContainer builds and owns the adapter instances behind the ports
type DependencyContainer struct {
	logger     ports.Logger
	metrics    ports.MetricsCollector
	repository ports.WeatherRepository
	backend    ports.KeyValueStore
	lastCity   *preferences.LastCityStore
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	c := &DependencyContainer{
		logger:  &infrastructure.SlogLoggerAdapter{},
		metrics: infrastructure.NewPrometheusMetricsCollector(),
	}

	c.repository = external.NewOpenWeatherMapRepository(external.OpenWeatherMapRepositoryParams{
		APIKey:      cfg.Weather.APIKey,
		BaseURL:     cfg.Weather.BaseURL,
		IconBaseURL: cfg.Weather.IconBaseURL,
		Units:       cfg.Weather.Units,
		Timeout:     time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		Logger:      c.logger,
	})

	backend, err := storage.NewKeyValueStore(cfg.Storage, c.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize preference storage: %w", err)
	}
	c.backend = backend

	lastCity, err := preferences.NewLastCityStore(backend)
	if err != nil {
		return nil, fmt.Errorf("create last city store: %w", err)
	}
	c.lastCity = lastCity

	slog.Info("Dependency container initialized",
		"storage", cfg.Storage.Type.String(),
		"weatherBaseURL", cfg.Weather.BaseURL)
	return c, nil
}

func (c *DependencyContainer) Logger() ports.Logger {
	return c.logger
}

func (c *DependencyContainer) Metrics() ports.MetricsCollector {
	return c.metrics
}

func (c *DependencyContainer) WeatherRepository() ports.WeatherRepository {
	return c.repository
}

func (c *DependencyContainer) LastCityStore() *preferences.LastCityStore {
	return c.lastCity
}

// Close releases storage backends that hold connections
func (c *DependencyContainer) Close() error {
	if closer, ok := c.backend.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
