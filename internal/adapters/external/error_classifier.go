package external

import (
	"fmt"
	"net/http"

	"weathernow.app/pkg/errors"
)

// classifyStatus maps an upstream HTTP status to its taxonomy kind.
// Evaluated once per failure; every status resolves to a kind.
func classifyStatus(statusCode int, message string) *errors.AppError {
	switch statusCode {
	case http.StatusUnauthorized:
		return errors.NewUnauthorizedError("invalid or missing API key")
	case http.StatusNotFound:
		return errors.NewCityNotFoundError("city not found")
	case http.StatusTooManyRequests:
		return errors.NewRateLimitExceededError("rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return errors.NewServerError(fmt.Sprintf("weather service unavailable (status %d)", statusCode))
	default:
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", statusCode)
		}
		return errors.NewGenericAPIError(statusCode, message)
	}
}

// classifyTransportFailure maps a no-response transport error to NetworkError
func classifyTransportFailure(err error) *errors.AppError {
	return errors.NewNetworkError("weather API request failed", err)
}
