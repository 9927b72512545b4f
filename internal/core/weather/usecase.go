package weather

import (
	"context"
	"time"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// Fetch method labels used for metrics
const (
	FetchByCityMethod        = "city"
	FetchByCoordinatesMethod = "coordinates"
)

type UseCase struct {
	repository ports.WeatherRepository
	logger     ports.Logger
	metrics    ports.MetricsCollector
}

type UseCaseDependencies struct {
	Repository ports.WeatherRepository
	Logger     ports.Logger
	Metrics    ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Repository == nil {
		return nil, errors.NewValidationError("weather repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics collector is required")
	}

	return &UseCase{
		repository: deps.Repository,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}, nil
}

// GetWeatherByCity fetches current weather for a city name. The returned
// error, when non-nil, always carries a taxonomy kind; callers never see an
// unclassified failure.
func (uc *UseCase) GetWeatherByCity(ctx context.Context, city string) (*Weather, error) {
	uc.logger.Debug("Getting weather by city", ports.F("city", city))

	return uc.fetch(ctx, FetchByCityMethod, func() (*ports.WeatherData, error) {
		return uc.repository.FetchByCity(ctx, city)
	})
}

// GetWeatherByLocation fetches current weather for geographic coordinates.
// Same failure contract as GetWeatherByCity.
func (uc *UseCase) GetWeatherByLocation(ctx context.Context, lat, lon float64) (*Weather, error) {
	uc.logger.Debug("Getting weather by location",
		ports.F("lat", lat),
		ports.F("lon", lon))

	return uc.fetch(ctx, FetchByCoordinatesMethod, func() (*ports.WeatherData, error) {
		return uc.repository.FetchByCoordinates(ctx, lat, lon)
	})
}

func (uc *UseCase) fetch(ctx context.Context, method string, call func() (*ports.WeatherData, error)) (*Weather, error) {
	start := time.Now()
	data, err := call()
	uc.metrics.ObserveFetchDuration(ctx, method, time.Since(start).Seconds())

	if err != nil {
		appErr := errors.Ensure(err)
		uc.metrics.RecordWeatherFetch(ctx, method, appErr.Kind.String())
		uc.logger.Error("Weather fetch failed",
			ports.F("method", method),
			ports.F("kind", appErr.Kind.String()),
			ports.F("error", appErr))
		return nil, appErr
	}

	result := &Weather{
		City:        data.City,
		Temperature: data.Temperature,
		Description: data.Description,
		IconURL:     data.IconURL,
	}
	if validErr := result.IsValid(); validErr != nil {
		appErr := errors.NewDataParsingError("invalid weather data from repository", validErr)
		uc.metrics.RecordWeatherFetch(ctx, method, appErr.Kind.String())
		return nil, appErr
	}

	uc.metrics.RecordWeatherFetch(ctx, method, "success")
	uc.logger.Debug("Weather retrieved successfully",
		ports.F("city", result.City),
		ports.F("temperature", result.Temperature))
	return result, nil
}
