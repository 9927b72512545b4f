package weather

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

type stubRepository struct {
	fetchByCity        func(ctx context.Context, city string) (*ports.WeatherData, error)
	fetchByCoordinates func(ctx context.Context, lat, lon float64) (*ports.WeatherData, error)
}

func (s *stubRepository) FetchByCity(ctx context.Context, city string) (*ports.WeatherData, error) {
	return s.fetchByCity(ctx, city)
}

func (s *stubRepository) FetchByCoordinates(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	return s.fetchByCoordinates(ctx, lat, lon)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...ports.Field) {}
func (noopLogger) Info(string, ...ports.Field)  {}
func (noopLogger) Warn(string, ...ports.Field)  {}
func (noopLogger) Error(string, ...ports.Field) {}

type recordingMetrics struct {
	fetches map[string]string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{fetches: make(map[string]string)}
}

func (m *recordingMetrics) RecordWeatherFetch(ctx context.Context, method, outcome string) {
	m.fetches[method] = outcome
}

func (m *recordingMetrics) ObserveFetchDuration(context.Context, string, float64) {}
func (m *recordingMetrics) RecordSessionTransition(context.Context, string)       {}

func newTestUseCase(t *testing.T, repo ports.WeatherRepository, metrics ports.MetricsCollector) *UseCase {
	t.Helper()
	uc, err := NewUseCase(UseCaseDependencies{
		Repository: repo,
		Logger:     noopLogger{},
		Metrics:    metrics,
	})
	require.NoError(t, err)
	return uc
}

func TestNewUseCase_RequiresDependencies(t *testing.T) {
	repo := &stubRepository{}

	_, err := NewUseCase(UseCaseDependencies{Logger: noopLogger{}, Metrics: newRecordingMetrics()})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewUseCase(UseCaseDependencies{Repository: repo, Metrics: newRecordingMetrics()})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewUseCase(UseCaseDependencies{Repository: repo, Logger: noopLogger{}})
	assert.True(t, errors.IsValidationError(err))
}

func TestGetWeatherByCity_Success(t *testing.T) {
	repo := &stubRepository{
		fetchByCity: func(ctx context.Context, city string) (*ports.WeatherData, error) {
			assert.Equal(t, "Krugerville", city)
			return &ports.WeatherData{
				City:        "Krugerville",
				Temperature: 8.7,
				Description: "clear sky",
				IconURL:     "https://openweathermap.org/img/wn/01d@2x.png",
			}, nil
		},
	}
	metrics := newRecordingMetrics()
	uc := newTestUseCase(t, repo, metrics)

	result, err := uc.GetWeatherByCity(context.Background(), "Krugerville")

	require.NoError(t, err)
	assert.Equal(t, "Krugerville", result.City)
	assert.Equal(t, 8.7, result.Temperature)
	assert.Equal(t, "clear sky", result.Description)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", result.IconURL)
	assert.Equal(t, "success", metrics.fetches[FetchByCityMethod])
}

func TestGetWeatherByLocation_Success(t *testing.T) {
	repo := &stubRepository{
		fetchByCoordinates: func(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
			assert.Equal(t, 51.5074, lat)
			assert.Equal(t, -0.1278, lon)
			return &ports.WeatherData{
				City:        "London",
				Temperature: 15.5,
				Description: "light rain",
				IconURL:     "https://openweathermap.org/img/wn/10d@2x.png",
			}, nil
		},
	}
	metrics := newRecordingMetrics()
	uc := newTestUseCase(t, repo, metrics)

	result, err := uc.GetWeatherByLocation(context.Background(), 51.5074, -0.1278)

	require.NoError(t, err)
	assert.Equal(t, "London", result.City)
	assert.Equal(t, "success", metrics.fetches[FetchByCoordinatesMethod])
}

func TestGetWeatherByCity_ClassifiedErrorPassesThrough(t *testing.T) {
	repo := &stubRepository{
		fetchByCity: func(ctx context.Context, city string) (*ports.WeatherData, error) {
			return nil, errors.NewCityNotFoundError("city not found")
		},
	}
	metrics := newRecordingMetrics()
	uc := newTestUseCase(t, repo, metrics)

	result, err := uc.GetWeatherByCity(context.Background(), "Atlantis")

	assert.Nil(t, result)
	assert.True(t, errors.IsCityNotFound(err))
	assert.Equal(t, "CITY_NOT_FOUND", metrics.fetches[FetchByCityMethod])
}

func TestGetWeatherByCity_ForeignErrorBecomesGenericAPIError(t *testing.T) {
	cause := stderrors.New("something nobody classified")
	repo := &stubRepository{
		fetchByCity: func(ctx context.Context, city string) (*ports.WeatherData, error) {
			return nil, cause
		},
	}
	uc := newTestUseCase(t, repo, newRecordingMetrics())

	result, err := uc.GetWeatherByCity(context.Background(), "London")

	assert.Nil(t, result)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindGenericAPIError, appErr.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestGetWeatherByCity_InvalidRepositoryData(t *testing.T) {
	repo := &stubRepository{
		fetchByCity: func(ctx context.Context, city string) (*ports.WeatherData, error) {
			return &ports.WeatherData{City: "", Temperature: 10, Description: "fine"}, nil
		},
	}
	uc := newTestUseCase(t, repo, newRecordingMetrics())

	result, err := uc.GetWeatherByCity(context.Background(), "Nowhere")

	assert.Nil(t, result)
	assert.True(t, errors.IsDataParsingError(err))
}
