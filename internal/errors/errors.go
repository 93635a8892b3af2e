package errors

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-notes-api/internal/result"
)

// Error codes outside the result taxonomy
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response and stops the handler chain
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

// StatusForKind maps a failure kind to its HTTP status.
func StatusForKind(kind result.Kind) int {
	switch {
	case kind == result.KindUnauthorized:
		return http.StatusUnauthorized
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == result.KindNotFoundOrForbidden:
		return http.StatusNotFound
	case kind == result.KindEnrichmentFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithFailure writes err as a result failure. unavailable, when it
// matches err, turns the response into a 503.
func RespondWithFailure(c *gin.Context, err error, unavailable ...error) {
	var f *result.Failure
	if !errors.As(err, &f) {
		f = result.Wrap(result.KindPersistence, err)
	}

	status := StatusForKind(f.Kind)
	for _, target := range unavailable {
		if errors.Is(err, target) {
			status = http.StatusServiceUnavailable
		}
	}
	if f.Err != nil {
		_ = c.Error(f.Err)
	}
	RespondWithError(c, status, NewAPIError(string(f.Kind), f.Message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(string(result.KindUnauthorized), message))
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context) {
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, "Invalid email or password"))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// TooManyRequests sends a 429 response with a Retry-After header in whole seconds
func TooManyRequests(c *gin.Context, retryAfter time.Duration) {
	seconds := int((retryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
	RespondWithError(c, http.StatusTooManyRequests, NewAPIError(ErrCodeRateLimited, "Too many requests"))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
