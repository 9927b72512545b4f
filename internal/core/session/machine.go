// Package session owns the screen-session weather state and its transitions.
// State is data, not named modes: {weather, isLoading, err}. All mutation goes
// through the named transition methods; there is exactly one writer per field
// update and the last completed fetch wins.
package session

import (
	"context"
	"strings"
	"sync"

	"weathernow.app/internal/core/weather"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// Transition labels used for metrics
const (
	TransitionSearchCity       = "search_city"
	TransitionLoadByLocation   = "load_by_location"
	TransitionLoadLastCity     = "load_last_city"
	TransitionPermissionDenied = "permission_denied"
	TransitionClearError       = "clear_error"
)

// State is a snapshot of the session's weather state
type State struct {
	Weather   *weather.Weather
	IsLoading bool
	Err       *errors.AppError
}

// WeatherUseCase is the slice of the weather use case the machine depends on
type WeatherUseCase interface {
	GetWeatherByCity(ctx context.Context, city string) (*weather.Weather, error)
	GetWeatherByLocation(ctx context.Context, lat, lon float64) (*weather.Weather, error)
}

// LastCityStore is the slice of the preference store the machine depends on
type LastCityStore interface {
	Save(ctx context.Context, city string) error
	Load(ctx context.Context) (string, bool, error)
}

// Machine serializes all state writes through one owner. The loading flag is
// applied before the fetch and the outcome re-applied after it, so a second
// action issued while one is in flight simply overwrites the result of the
// first (no cancellation of the superseded request).
type Machine struct {
	mu    sync.Mutex
	state State

	useCase  WeatherUseCase
	lastCity LastCityStore
	logger   ports.Logger
	metrics  ports.MetricsCollector
}

type MachineDependencies struct {
	UseCase  WeatherUseCase
	LastCity LastCityStore
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
}

func NewMachine(deps MachineDependencies) (*Machine, error) {
	if deps.UseCase == nil {
		return nil, errors.NewValidationError("weather use case is required")
	}
	if deps.LastCity == nil {
		return nil, errors.NewValidationError("last city store is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics collector is required")
	}

	return &Machine{
		useCase:  deps.UseCase,
		lastCity: deps.LastCity,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// Snapshot returns a copy of the current state
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SearchCity fetches weather for the named city and persists the city on
// success. A blank or whitespace-only name leaves the state unchanged.
func (m *Machine) SearchCity(ctx context.Context, name string) State {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		m.logger.Debug("Ignoring blank city search")
		return m.Snapshot()
	}

	m.metrics.RecordSessionTransition(ctx, TransitionSearchCity)
	m.beginLoading()

	result, err := m.useCase.GetWeatherByCity(ctx, trimmed)
	if err != nil {
		return m.applyFailure(err)
	}

	if saveErr := m.lastCity.Save(ctx, trimmed); saveErr != nil {
		// Preference persistence must not turn a successful fetch into an error.
		m.logger.Warn("Failed to persist last searched city",
			ports.F("city", trimmed),
			ports.F("error", saveErr))
	}

	return m.applySuccess(result)
}

// LoadWeatherByLocation fetches weather for coordinates supplied by the
// device. No persistence side effect.
func (m *Machine) LoadWeatherByLocation(ctx context.Context, lat, lon float64) State {
	m.metrics.RecordSessionTransition(ctx, TransitionLoadByLocation)
	m.beginLoading()

	result, err := m.useCase.GetWeatherByLocation(ctx, lat, lon)
	if err != nil {
		return m.applyFailure(err)
	}
	return m.applySuccess(result)
}

// LoadLastSearchedCity replays the persisted city search if one exists.
// An empty store is a complete no-op.
func (m *Machine) LoadLastSearchedCity(ctx context.Context) State {
	m.metrics.RecordSessionTransition(ctx, TransitionLoadLastCity)

	city, ok, err := m.lastCity.Load(ctx)
	if err != nil {
		m.logger.Warn("Failed to load last searched city", ports.F("error", err))
		return m.Snapshot()
	}
	if !ok {
		m.logger.Debug("No last searched city stored")
		return m.Snapshot()
	}

	return m.SearchCity(ctx, city)
}

// OnLocationPermissionDenied surfaces the denied permission as the active
// error. The weather value, if any, is left untouched.
func (m *Machine) OnLocationPermissionDenied(ctx context.Context) State {
	m.metrics.RecordSessionTransition(ctx, TransitionPermissionDenied)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.IsLoading = false
	m.state.Err = errors.NewPermissionDeniedError("location permission denied")
	return m.state
}

// ClearError clears the active error, leaving weather and loading untouched
func (m *Machine) ClearError(ctx context.Context) State {
	m.metrics.RecordSessionTransition(ctx, TransitionClearError)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Err = nil
	return m.state
}

func (m *Machine) beginLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.IsLoading = true
	m.state.Err = nil
}

func (m *Machine) applySuccess(result *weather.Weather) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Weather: result, IsLoading: false, Err: nil}
	return m.state
}

func (m *Machine) applyFailure(err error) State {
	appErr := errors.Ensure(err)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Weather: nil, IsLoading: false, Err: appErr}
	return m.state
}
