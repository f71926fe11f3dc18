package apierrors

import (
	"net/http"
)

// Error codes returned in the "code" field of error responses
const (
	CodeNotFound             = "NOT_FOUND"
	CodeCallNotFound         = "CALL_NOT_FOUND"
	CodeClientNotFound       = "CLIENT_NOT_FOUND"
	CodeSummaryNotFound      = "SUMMARY_NOT_FOUND"
	CodeCallNotReprocessable = "CALL_NOT_REPROCESSABLE"
	CodeCallLocked           = "CALL_LOCKED"
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeInvalidDateRange     = "INVALID_DATE_RANGE"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeMissingAudio         = "MISSING_AUDIO"
	CodeInvalidAudioFormat   = "INVALID_AUDIO_FORMAT"
	CodeFileTooLarge         = "FILE_TOO_LARGE"
	CodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeProfileNotFound      = "PROFILE_NOT_FOUND"
	CodePipelineUnavailable  = "PIPELINE_UNAVAILABLE"
	CodeInternalError        = "INTERNAL_ERROR"
)

// APIError is an error that knows how it should be presented to API clients
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: code, Message: message}
}

func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

func RequestTooLarge(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusRequestEntityTooLarge, Code: code, Message: message}
}

func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimitExceeded, Message: message}
}

// ServiceUnavailable keeps the internal error for logging; only message reaches the client
func ServiceUnavailable(code, message string, internalErr error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: internalErr}
}

// InternalError is a sanitized 500 that never exposes internal details
func InternalError(internalErr error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        internalErr,
	}
}
