package ports

import "context"

// WeatherData represents weather information as delivered by a repository
type WeatherData struct {
	City        string
	Temperature float64
	Description string
	IconURL     string
}

// WeatherRepository defines the contract for fetching current weather from the
// remote data source. Every failure it returns carries a taxonomy kind from
// pkg/errors; an unclassified error never escapes a repository.
type WeatherRepository interface {
	FetchByCity(ctx context.Context, city string) (*WeatherData, error)
	FetchByCoordinates(ctx context.Context, lat, lon float64) (*WeatherData, error)
}
