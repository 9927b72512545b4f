package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error kinds organized by category for better error handling

type Kind int

// Fetch pipeline errors - the closed set a weather fetch failure can carry
const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindCityNotFound
	KindRateLimitExceeded
	KindServerError
	KindNetworkError
	KindDataParsingError
	KindPermissionDenied
	KindGenericAPIError

	// Infrastructure kinds - never produced by the fetch classifier
	KindValidation
	KindConfiguration
	KindStorage
)

// String returns the string representation of the error kind
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindCityNotFound:
		return "CITY_NOT_FOUND"
	case KindRateLimitExceeded:
		return "RATE_LIMIT_EXCEEDED"
	case KindServerError:
		return "SERVER_ERROR"
	case KindNetworkError:
		return "NETWORK_ERROR"
	case KindDataParsingError:
		return "DATA_PARSING_ERROR"
	case KindPermissionDenied:
		return "PERMISSION_DENIED"
	case KindGenericAPIError:
		return "GENERIC_API_ERROR"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConfiguration:
		return "CONFIGURATION_ERROR"
	case KindStorage:
		return "STORAGE_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Kind    Kind
	Message string
	// StatusCode carries the upstream HTTP status for GenericAPIError responses
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Fetch Pipeline Error Constructors

func NewUnauthorizedError(message string) *AppError {
	return New(KindUnauthorized, message)
}

func NewCityNotFoundError(message string) *AppError {
	return New(KindCityNotFound, message)
}

func NewRateLimitExceededError(message string) *AppError {
	return New(KindRateLimitExceeded, message)
}

func NewServerError(message string) *AppError {
	return New(KindServerError, message)
}

func NewNetworkError(message string, cause error) *AppError {
	return Wrap(KindNetworkError, message, cause)
}

func NewDataParsingError(message string, cause error) *AppError {
	return Wrap(KindDataParsingError, message, cause)
}

func NewPermissionDeniedError(message string) *AppError {
	return New(KindPermissionDenied, message)
}

func NewGenericAPIError(statusCode int, message string) *AppError {
	return &AppError{
		Kind:       KindGenericAPIError,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Infrastructure Error Constructors

func NewValidationError(message string) *AppError {
	return New(KindValidation, message)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(KindConfiguration, message, cause)
}

func NewStorageError(message string, cause error) *AppError {
	return Wrap(KindStorage, message, cause)
}

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind carried by err, or KindUnknown for foreign errors
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

func isKind(err error, kind Kind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}

func IsUnauthorized(err error) bool {
	return isKind(err, KindUnauthorized)
}

func IsCityNotFound(err error) bool {
	return isKind(err, KindCityNotFound)
}

func IsRateLimitExceeded(err error) bool {
	return isKind(err, KindRateLimitExceeded)
}

func IsServerError(err error) bool {
	return isKind(err, KindServerError)
}

func IsNetworkError(err error) bool {
	return isKind(err, KindNetworkError)
}

func IsDataParsingError(err error) bool {
	return isKind(err, KindDataParsingError)
}

func IsPermissionDenied(err error) bool {
	return isKind(err, KindPermissionDenied)
}

func IsValidationError(err error) bool {
	return isKind(err, KindValidation)
}

// Ensure guarantees err carries a taxonomy kind, wrapping foreign errors
// into the GenericAPIError catch-all
func Ensure(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Wrap(KindGenericAPIError, "unexpected failure", err)
}
