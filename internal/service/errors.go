package service

import (
	"errors"
	"fmt"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/extraction"
)

// Common service errors - sentinel errors used across the quiz service.
// These represent expected conditions that callers check with errors.Is();
// the API layer maps them to HTTP status codes.
var (
	// ErrSessionNotFound indicates the requested quiz session does not exist
	// (never created, reset, or torn down after an exhausted document).
	// API layer should map this to HTTP 404 Not Found.
	ErrSessionNotFound = errors.New("quiz session not found")

	// ErrInvalidTimeLimit indicates the requested time limit is not one of
	// the allowed durations. API layer should map this to HTTP 400.
	ErrInvalidTimeLimit = errors.New("time limit is not one of the allowed durations")

	// ErrExtractionInFlight indicates a next-batch extraction is already
	// running for the session. API layer should map this to HTTP 409.
	ErrExtractionInFlight = errors.New("a batch request is already in progress for this session")

	// ErrCertificateNotFound indicates the requested certificate is not in
	// the history. API layer should map this to HTTP 404 Not Found.
	ErrCertificateNotFound = errors.New("certificate not found")
)

// sentinels lists the errors that pass through NewQuizServiceError unwrapped
// so callers can match them with errors.Is against bare values.
var sentinels = []error{
	ErrSessionNotFound,
	ErrInvalidTimeLimit,
	ErrExtractionInFlight,
	ErrCertificateNotFound,
	domain.ErrInvalidOptionKey,
	domain.ErrQuestionIndexOutOfRange,
	extraction.ErrNoNewQuestions,
}

// QuizServiceError wraps errors from the quiz service with context.
type QuizServiceError struct {
	// Operation is the operation that failed (e.g., "start_quiz", "next_batch")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for QuizServiceError.
func (e *QuizServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("quiz service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *QuizServiceError) Unwrap() error {
	return e.Err
}

// NewQuizServiceError creates a new QuizServiceError. Known sentinel errors
// are returned directly without wrapping.
func NewQuizServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &QuizServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
