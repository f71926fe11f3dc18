package apierrors

import (
	"errors"

	advisorProcessor "finecho-server/internal/advisor/processor"
	authProcessor "finecho-server/internal/auth/processor"
	"finecho-server/internal/calls/lock"
	callsProcessor "finecho-server/internal/calls/processor"
	"finecho-server/internal/store"
	summariesProcessor "finecho-server/internal/summaries/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Map auth processor errors
	case errors.Is(err, authProcessor.ErrExpiredToken):
		return Unauthorized("Token expired")

	case errors.Is(err, authProcessor.ErrInvalidJWTToken),
		errors.Is(err, authProcessor.ErrParseJWTToken):
		return Unauthorized("Invalid or expired token")

	case errors.Is(err, authProcessor.ErrProfileNotFound):
		return Forbidden(CodeProfileNotFound, "User profile not found")

	case errors.Is(err, authProcessor.ErrInsufficientRole):
		return Forbidden(CodeForbidden, "You do not have access to this resource")

	// Map calls processor errors
	case errors.Is(err, callsProcessor.ErrCallNotFound),
		errors.Is(err, summariesProcessor.ErrCallNotFound):
		return NotFound(CodeCallNotFound, "Call not found")

	case errors.Is(err, callsProcessor.ErrClientNotFound):
		return NotFound(CodeClientNotFound, "Client not found")

	case errors.Is(err, callsProcessor.ErrCallNotReprocessable):
		return Conflict(CodeCallNotReprocessable, "Only failed calls whose audio is still available can be reprocessed")

	case errors.Is(err, lock.ErrCallLocked):
		return Conflict(CodeCallLocked, "Call is already being processed")

	case errors.Is(err, callsProcessor.ErrInvalidStatus):
		return BadRequest(CodeInvalidStatus, "Invalid call status")

	case errors.Is(err, callsProcessor.ErrInvalidDateRange),
		errors.Is(err, advisorProcessor.ErrInvalidDateRange),
		errors.Is(err, summariesProcessor.ErrInvalidDateRange):
		return BadRequest(CodeInvalidDateRange, "Invalid date range")

	case errors.Is(err, callsProcessor.ErrMissingAudio):
		return BadRequest(CodeMissingAudio, "An audio file is required")

	case errors.Is(err, callsProcessor.ErrDispatchFailed):
		return ServiceUnavailable(CodePipelineUnavailable,
			"Call processing is temporarily unavailable. Please try again later.", err)

	// Map summaries processor errors
	case errors.Is(err, summariesProcessor.ErrSummaryNotFound):
		return NotFound(CodeSummaryNotFound, "Summary not found")

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return InternalError(err)
	}
}
