package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/core/weather"
	"weathernow.app/pkg/errors"
	"weathernow.app/pkg/validation"
)

// WeatherResponse represents the HTTP response for weather data
type WeatherResponse struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	IconURL     string  `json:"icon_url"`
}

func toWeatherResponse(w *weather.Weather) WeatherResponse {
	return WeatherResponse{
		City:        w.City,
		Temperature: w.Temperature,
		Description: w.Description,
		IconURL:     w.IconURL,
	}
}

// getWeather handles GET /api/weather requests, stateless fetch by either
// ?city= or ?lat=&lon=
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	city := c.Query("city")
	latParam := c.Query("lat")
	lonParam := c.Query("lon")

	switch {
	case city != "":
		if !validation.IsValidCityName(city) {
			s.handleError(c, errors.NewValidationError("city must be at least 2 letters"))
			return
		}

		result, err := s.weatherUseCase.GetWeatherByCity(c.Request.Context(), city)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toWeatherResponse(result))

	case latParam != "" && lonParam != "":
		lat, err := strconv.ParseFloat(latParam, 64)
		if err != nil || lat < -90 || lat > 90 {
			s.handleError(c, errors.NewValidationError("lat must be a number between -90 and 90"))
			return
		}
		lon, err := strconv.ParseFloat(lonParam, 64)
		if err != nil || lon < -180 || lon > 180 {
			s.handleError(c, errors.NewValidationError("lon must be a number between -180 and 180"))
			return
		}

		result, fetchErr := s.weatherUseCase.GetWeatherByLocation(c.Request.Context(), lat, lon)
		if fetchErr != nil {
			s.handleError(c, fetchErr)
			return
		}
		c.JSON(http.StatusOK, toWeatherResponse(result))

	default:
		s.handleError(c, errors.NewValidationError("either city or lat and lon parameters are required"))
	}
}
