// Package external contains adapters for remote collaborators, here the
// OpenWeatherMap current-weather API.
package external

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const (
	defaultBaseURL     = "https://api.openweathermap.org/data/2.5"
	defaultIconBaseURL = "https://openweathermap.org/img/wn"
	defaultUnits       = "metric"
	defaultHTTPTimeout = 10 * time.Second
)

// HTTPClient abstracts the HTTP transport for testability
type HTTPClient interface {
	Get(url string) (*http.Response, error)
}

// OpenWeatherMapRepository implements the WeatherRepository port against the
// OpenWeatherMap REST API. One outbound GET per invocation, nothing cached.
type OpenWeatherMapRepository struct {
	apiKey      string
	baseURL     string
	iconBaseURL string
	units       string
	client      HTTPClient
	logger      ports.Logger
}

// OpenWeatherMapRepositoryParams holds parameters for creating the repository
type OpenWeatherMapRepositoryParams struct {
	APIKey      string
	BaseURL     string
	IconBaseURL string
	Units       string
	Timeout     time.Duration
	Logger      ports.Logger
}

// NewOpenWeatherMapRepository creates a new OpenWeatherMap repository adapter
func NewOpenWeatherMapRepository(params OpenWeatherMapRepositoryParams) ports.WeatherRepository {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	iconBaseURL := params.IconBaseURL
	if iconBaseURL == "" {
		iconBaseURL = defaultIconBaseURL
	}
	units := params.Units
	if units == "" {
		units = defaultUnits
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &OpenWeatherMapRepository{
		apiKey:      params.APIKey,
		baseURL:     baseURL,
		iconBaseURL: iconBaseURL,
		units:       units,
		client:      &http.Client{Timeout: timeout},
		logger:      params.Logger,
	}
}

// FetchByCity retrieves current weather by city name
func (r *OpenWeatherMapRepository) FetchByCity(ctx context.Context, city string) (*ports.WeatherData, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	query := url.Values{}
	query.Set("q", city)
	return r.fetch(ctx, query)
}

// FetchByCoordinates retrieves current weather by geographic coordinates
func (r *OpenWeatherMapRepository) FetchByCoordinates(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return r.fetch(ctx, query)
}

func (r *OpenWeatherMapRepository) fetch(ctx context.Context, query url.Values) (*ports.WeatherData, error) {
	query.Set("appid", r.apiKey)
	query.Set("units", r.units)
	requestURL := r.baseURL + "/weather?" + query.Encode()

	resp, err := r.client.Get(requestURL)
	if err != nil {
		return nil, classifyTransportFailure(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			r.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, classifyStatus(resp.StatusCode, decodeErrorMessage(resp.Body))
	}

	dto, err := decodeCurrentWeather(resp.Body)
	if err != nil {
		return nil, err
	}

	return mapCurrentWeather(dto, r.iconBaseURL)
}
