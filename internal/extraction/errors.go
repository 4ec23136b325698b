package extraction

import "errors"

// Common errors returned by extraction implementations
var (
	// ErrExtractionFailed is returned when question extraction fails for any
	// general reason (transport, quota, model error).
	ErrExtractionFailed = errors.New("failed to extract questions from document")

	// ErrNoNewQuestions is returned by callers of an Extractor when a
	// successful extraction yields zero questions: the document has no
	// questions left outside the exclusion list.
	ErrNoNewQuestions = errors.New("no new questions available")

	// ErrInvalidResponse is returned when the model response cannot be parsed
	// against the expected structured-output schema.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve
	// on retry.
	ErrTransientFailure = errors.New("transient error during question extraction")

	// ErrInvalidConfig is returned when the extractor configuration is invalid.
	ErrInvalidConfig = errors.New("invalid extractor configuration")

	// ErrEmptyDocument is returned when the supplied document has no content.
	ErrEmptyDocument = errors.New("document cannot be empty")
)
