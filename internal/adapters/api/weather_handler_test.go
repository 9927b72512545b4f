package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernow.app/internal/core/session"
	"weathernow.app/internal/core/weather"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

type stubUseCase struct {
	byCity     func(ctx context.Context, city string) (*weather.Weather, error)
	byLocation func(ctx context.Context, lat, lon float64) (*weather.Weather, error)
}

func (s *stubUseCase) GetWeatherByCity(ctx context.Context, city string) (*weather.Weather, error) {
	return s.byCity(ctx, city)
}

func (s *stubUseCase) GetWeatherByLocation(ctx context.Context, lat, lon float64) (*weather.Weather, error) {
	return s.byLocation(ctx, lat, lon)
}

type stubLastCity struct {
	saved  []string
	stored string
	has    bool
}

func (s *stubLastCity) Save(ctx context.Context, city string) error {
	s.saved = append(s.saved, city)
	return nil
}

func (s *stubLastCity) Load(ctx context.Context) (string, bool, error) {
	return s.stored, s.has, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...ports.Field) {}
func (noopLogger) Info(string, ...ports.Field)  {}
func (noopLogger) Warn(string, ...ports.Field)  {}
func (noopLogger) Error(string, ...ports.Field) {}

type noopMetrics struct{}

func (noopMetrics) RecordWeatherFetch(context.Context, string, string)    {}
func (noopMetrics) ObserveFetchDuration(context.Context, string, float64) {}
func (noopMetrics) RecordSessionTransition(context.Context, string)       {}

func krugervilleWeather() *weather.Weather {
	return &weather.Weather{
		City:        "Krugerville",
		Temperature: 8.7,
		Description: "clear sky",
		IconURL:     "https://openweathermap.org/img/wn/01d@2x.png",
	}
}

// setupTestServer wires the HTTP adapter with a stub use case and a real
// session machine backed by that stub.
func setupTestServer(t *testing.T, uc *stubUseCase, lastCity *stubLastCity) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	machine, err := session.NewMachine(session.MachineDependencies{
		UseCase:  uc,
		LastCity: lastCity,
		Logger:   noopLogger{},
		Metrics:  noopMetrics{},
	})
	require.NoError(t, err)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:         ServerConfig{Port: 8080},
		WeatherUseCase: uc,
		SessionMachine: machine,
	})
	require.NoError(t, err)

	return server.GetRouter()
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGetWeather_ByCity_Success(t *testing.T) {
	uc := &stubUseCase{
		byCity: func(ctx context.Context, city string) (*weather.Weather, error) {
			assert.Equal(t, "Krugerville", city)
			return krugervilleWeather(), nil
		},
	}
	router := setupTestServer(t, uc, &stubLastCity{})

	recorder := performRequest(router, http.MethodGet, "/api/weather?city=Krugerville", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp WeatherResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Krugerville", resp.City)
	assert.Equal(t, 8.7, resp.Temperature)
	assert.Equal(t, "clear sky", resp.Description)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", resp.IconURL)
}

func TestGetWeather_ByCoordinates_Success(t *testing.T) {
	uc := &stubUseCase{
		byLocation: func(ctx context.Context, lat, lon float64) (*weather.Weather, error) {
			assert.Equal(t, 51.5074, lat)
			assert.Equal(t, -0.1278, lon)
			return krugervilleWeather(), nil
		},
	}
	router := setupTestServer(t, uc, &stubLastCity{})

	recorder := performRequest(router, http.MethodGet, "/api/weather?lat=51.5074&lon=-0.1278", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetWeather_MissingParameters(t *testing.T) {
	router := setupTestServer(t, &stubUseCase{}, &stubLastCity{})

	recorder := performRequest(router, http.MethodGet, "/api/weather", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetWeather_InvalidCityName(t *testing.T) {
	router := setupTestServer(t, &stubUseCase{}, &stubLastCity{})

	for _, query := range []string{"city=X", "city=123", "city=%21%21%21"} {
		recorder := performRequest(router, http.MethodGet, "/api/weather?"+query, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "query %s", query)
	}
}

func TestGetWeather_InvalidCoordinates(t *testing.T) {
	router := setupTestServer(t, &stubUseCase{}, &stubLastCity{})

	for _, query := range []string{
		"lat=abc&lon=0",
		"lat=91&lon=0",
		"lat=0&lon=181",
		"lat=0&lon=xyz",
	} {
		recorder := performRequest(router, http.MethodGet, "/api/weather?"+query, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "query %s", query)
	}
}

func TestGetWeather_ErrorKindToStatusMapping(t *testing.T) {
	tests := []struct {
		err        *errors.AppError
		wantStatus int
		wantKind   string
	}{
		{errors.NewCityNotFoundError("city not found"), http.StatusNotFound, "CITY_NOT_FOUND"},
		{errors.NewRateLimitExceededError("rate limit exceeded"), http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{errors.NewServerError("upstream down"), http.StatusServiceUnavailable, "SERVER_ERROR"},
		{errors.NewNetworkError("no route", nil), http.StatusServiceUnavailable, "NETWORK_ERROR"},
		{errors.NewUnauthorizedError("bad key"), http.StatusBadGateway, "UNAUTHORIZED"},
		{errors.NewDataParsingError("bad body", nil), http.StatusBadGateway, "DATA_PARSING_ERROR"},
		{errors.NewGenericAPIError(418, "teapot"), http.StatusBadGateway, "GENERIC_API_ERROR"},
	}

	for _, tt := range tests {
		uc := &stubUseCase{
			byCity: func(ctx context.Context, city string) (*weather.Weather, error) {
				return nil, tt.err
			},
		}
		router := setupTestServer(t, uc, &stubLastCity{})

		recorder := performRequest(router, http.MethodGet, "/api/weather?city=London", "")

		assert.Equal(t, tt.wantStatus, recorder.Code, "kind %s", tt.wantKind)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, tt.wantKind, resp.Kind)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := setupTestServer(t, &stubUseCase{}, &stubLastCity{})

	recorder := performRequest(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
