package api

import (
	"errors"
	"net/http"

	"github.com/zahroai/zahro-api/internal/api/shared"
	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/extraction"
	"github.com/zahroai/zahro-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrCertificateNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrInvalidTimeLimit),
		errors.Is(err, domain.ErrInvalidOptionKey),
		errors.Is(err, domain.ErrQuestionIndexOutOfRange),
		errors.Is(err, extraction.ErrEmptyDocument):
		return http.StatusBadRequest

	// The document has nothing (more) to offer
	case errors.Is(err, extraction.ErrNoNewQuestions),
		errors.Is(err, extraction.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Conflict errors
	case errors.Is(err, service.ErrExtractionInFlight):
		return http.StatusConflict

	// Upstream model failures
	case errors.Is(err, extraction.ErrTransientFailure),
		errors.Is(err, extraction.ErrInvalidResponse),
		errors.Is(err, extraction.ErrExtractionFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return "Quiz session not found"

	case errors.Is(err, service.ErrCertificateNotFound):
		return "Certificate not found"

	case errors.Is(err, service.ErrInvalidTimeLimit):
		return "Time limit must be one of 30, 60, 120, 180 or 300 minutes"

	case errors.Is(err, domain.ErrInvalidOptionKey):
		return "Answer option must be A, B, C or D"

	case errors.Is(err, domain.ErrQuestionIndexOutOfRange):
		return "Question index is out of range"

	case errors.Is(err, extraction.ErrEmptyDocument):
		return "Uploaded document is empty"

	case errors.Is(err, extraction.ErrNoNewQuestions):
		return "No new questions could be extracted from this document"

	case errors.Is(err, extraction.ErrContentBlocked):
		return "The document content was rejected by the content filters"

	case errors.Is(err, service.ErrExtractionInFlight):
		return "A question batch is already being generated for this session"

	case errors.Is(err, extraction.ErrTransientFailure),
		errors.Is(err, extraction.ErrInvalidResponse),
		errors.Is(err, extraction.ErrExtractionFailed):
		return "Question extraction failed, please try again"

	default:
		return "An unexpected error occurred"
	}
}

// respondServiceError maps a service error to its status code and safe
// message and writes the standard error envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
