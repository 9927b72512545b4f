package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errorspkg "weathernow.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// handleError maps taxonomy kinds to HTTP statuses
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	appErr, ok := errorspkg.AsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	var statusCode int
	var message string

	switch appErr.Kind {
	case errorspkg.KindValidation:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.KindUnauthorized:
		statusCode = http.StatusBadGateway
		message = "Weather service rejected the API key"
	case errorspkg.KindCityNotFound:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.KindRateLimitExceeded:
		statusCode = http.StatusTooManyRequests
		message = appErr.Message
	case errorspkg.KindServerError, errorspkg.KindNetworkError:
		statusCode = http.StatusServiceUnavailable
		message = "Weather service unavailable"
	case errorspkg.KindDataParsingError:
		statusCode = http.StatusBadGateway
		message = "Weather service returned malformed data"
	case errorspkg.KindPermissionDenied:
		statusCode = http.StatusForbidden
		message = appErr.Message
	case errorspkg.KindGenericAPIError:
		statusCode = http.StatusBadGateway
		message = appErr.Message
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ErrorResponse{Error: message, Kind: appErr.Kind.String()})
}
