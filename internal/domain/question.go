package domain

import "errors"

// Question-specific validation errors
var (
	// ErrQuestionTextEmpty is returned when a question has no text.
	ErrQuestionTextEmpty = errors.New("question text cannot be empty")

	// ErrQuestionOptionsIncomplete is returned when a question does not carry
	// all four options A-D.
	ErrQuestionOptionsIncomplete = errors.New("question must have options A, B, C and D")

	// ErrInvalidOptionKey is returned when an option key is not one of A-D.
	ErrInvalidOptionKey = errors.New("option key must be one of A, B, C, D")
)

// OptionKey labels one of the four answer options of a question.
type OptionKey string

// The four valid option keys.
const (
	OptionA OptionKey = "A"
	OptionB OptionKey = "B"
	OptionC OptionKey = "C"
	OptionD OptionKey = "D"
)

// OptionKeys lists the valid keys in display order.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

// Valid reports whether the key is one of A-D.
func (k OptionKey) Valid() bool {
	switch k {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	default:
		return false
	}
}

// Question is a single multiple-choice question extracted from a source
// document. Questions are immutable once produced by the extraction service.
type Question struct {
	ID            int                  `json:"id"`
	Text          string               `json:"question"`
	Options       map[OptionKey]string `json:"options"`
	CorrectAnswer OptionKey            `json:"correctAnswer"`
	Explanation   string               `json:"explanation"`
}

// Validate checks that the question carries text, all four options and a
// valid correct-answer key.
func (q Question) Validate() error {
	if q.Text == "" {
		return ErrQuestionTextEmpty
	}

	if len(q.Options) != len(OptionKeys) {
		return ErrQuestionOptionsIncomplete
	}
	for _, key := range OptionKeys {
		if _, ok := q.Options[key]; !ok {
			return ErrQuestionOptionsIncomplete
		}
	}

	if !q.CorrectAnswer.Valid() {
		return ErrInvalidOptionKey
	}

	return nil
}
