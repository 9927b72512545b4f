package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathernow.app/internal/core/session"
	"weathernow.app/pkg/errors"
	"weathernow.app/pkg/validation"
)

// SearchCityRequest is the body of POST /api/session/search
type SearchCityRequest struct {
	City string `json:"city" binding:"required"`
}

// LocationRequest is the body of POST /api/session/location. Pointer fields
// so zero coordinates pass the required check.
type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" binding:"required,gte=-180,lte=180"`
}

// StateErrorResponse is the active session error, if any
type StateErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StateResponse is the session state snapshot returned by every transition
type StateResponse struct {
	Weather   *WeatherResponse    `json:"weather"`
	IsLoading bool                `json:"is_loading"`
	Error     *StateErrorResponse `json:"error"`
}

func toStateResponse(state session.State) StateResponse {
	resp := StateResponse{IsLoading: state.IsLoading}
	if state.Weather != nil {
		w := toWeatherResponse(state.Weather)
		resp.Weather = &w
	}
	if state.Err != nil {
		resp.Error = &StateErrorResponse{
			Kind:    state.Err.Kind.String(),
			Message: state.Err.Message,
		}
	}
	return resp
}

// getSessionState handles GET /api/session/state
func (s *HTTPServerAdapter) getSessionState(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(s.sessionMachine.Snapshot()))
}

// searchCity handles POST /api/session/search
func (s *HTTPServerAdapter) searchCity(c *gin.Context) {
	var req SearchCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("city is required"))
		return
	}

	if !validation.IsValidCityName(req.City) {
		s.handleError(c, errors.NewValidationError("city must be at least 2 letters"))
		return
	}

	state := s.sessionMachine.SearchCity(c.Request.Context(), req.City)
	c.JSON(http.StatusOK, toStateResponse(state))
}

// loadByLocation handles POST /api/session/location
func (s *HTTPServerAdapter) loadByLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon are required and must be valid coordinates"))
		return
	}

	state := s.sessionMachine.LoadWeatherByLocation(c.Request.Context(), *req.Lat, *req.Lon)
	c.JSON(http.StatusOK, toStateResponse(state))
}

// loadLastCity handles POST /api/session/last-city
func (s *HTTPServerAdapter) loadLastCity(c *gin.Context) {
	state := s.sessionMachine.LoadLastSearchedCity(c.Request.Context())
	c.JSON(http.StatusOK, toStateResponse(state))
}

// permissionDenied handles POST /api/session/permission-denied, reported by
// the device when the user refuses the location permission dialog
func (s *HTTPServerAdapter) permissionDenied(c *gin.Context) {
	state := s.sessionMachine.OnLocationPermissionDenied(c.Request.Context())
	c.JSON(http.StatusOK, toStateResponse(state))
}

// clearError handles POST /api/session/clear-error
func (s *HTTPServerAdapter) clearError(c *gin.Context) {
	state := s.sessionMachine.ClearError(c.Request.Context())
	c.JSON(http.StatusOK, toStateResponse(state))
}
