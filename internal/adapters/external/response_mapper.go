package external

import (
	"encoding/json"
	"fmt"
	"io"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

// currentWeatherResponse is the wire DTO returned by the OpenWeatherMap
// current-weather endpoint. Discarded after mapping.
type currentWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// errorResponse is the body OpenWeatherMap attaches to non-2xx statuses
type errorResponse struct {
	Cod     json.Number `json:"cod"`
	Message string      `json:"message"`
}

func decodeCurrentWeather(body io.Reader) (*currentWeatherResponse, error) {
	var dto currentWeatherResponse
	if err := json.NewDecoder(body).Decode(&dto); err != nil {
		return nil, errors.NewDataParsingError("decode OpenWeatherMap response", err)
	}
	return &dto, nil
}

func decodeErrorMessage(body io.Reader) string {
	var errResp errorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return ""
	}
	return errResp.Message
}

// mapCurrentWeather converts the wire DTO into repository weather data.
// Fails when the conditions list is empty, regardless of other fields.
func mapCurrentWeather(dto *currentWeatherResponse, iconBaseURL string) (*ports.WeatherData, error) {
	if len(dto.Weather) == 0 {
		return nil, errors.NewDataParsingError("weather conditions list is empty", nil)
	}

	condition := dto.Weather[0]
	return &ports.WeatherData{
		City:        dto.Name,
		Temperature: dto.Main.Temp,
		Description: condition.Description,
		IconURL:     fmt.Sprintf("%s/%s@2x.png", iconBaseURL, condition.Icon),
	}, nil
}
