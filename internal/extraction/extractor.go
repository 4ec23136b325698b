package extraction

import (
	"context"

	"github.com/zahroai/zahro-api/internal/domain"
)

// Extractor defines the interface for extracting multiple-choice questions
// from a user-supplied document.
type Extractor interface {
	// ExtractQuestions analyzes the document and returns a fresh batch of
	// questions. Questions whose text appears in excludeTexts must not be
	// returned; that contract binds the implementation and is not re-checked
	// by callers.
	//
	// An empty slice with a nil error means the document holds no further
	// new questions; callers distinguish that outcome from a hard failure
	// (see errors.go for the failure taxonomy).
	ExtractQuestions(ctx context.Context, doc domain.Document, excludeTexts []string) ([]domain.Question, error)
}
