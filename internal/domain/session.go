package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session-specific errors
var (
	// ErrNoQuestions is returned when a session is created without questions.
	// An empty extraction result must be treated as a failure by the caller,
	// never turned into an empty session.
	ErrNoQuestions = errors.New("session requires at least one question")

	// ErrQuestionIndexOutOfRange is returned when an answer targets an index
	// outside the session's question sequence.
	ErrQuestionIndexOutOfRange = errors.New("question index out of range")

	// ErrInvalidTimeLimit is returned when a session is created with a
	// non-positive time limit.
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
)

// SessionState is the tagged state of a quiz session. The transitions are
// one-way: Active -> Finished. "Idle" is the absence of a session.
type SessionState string

// Possible session states.
const (
	SessionActive   SessionState = "active"
	SessionFinished SessionState = "finished"
)

// Document is the user-supplied source file a session was extracted from.
// It is retained on the session so a follow-up batch can be requested from
// the same source.
type Document struct {
	FileName  string
	MediaType string
	Data      []byte
}

// QuizSession owns the lifecycle of one quiz attempt: the fixed question
// set, the user's answers, and the countdown. Once finished, answers are
// immutable and the countdown no longer moves.
//
// The session itself is not safe for concurrent use; callers serialize
// access (the service layer holds a per-session lock).
type QuizSession struct {
	ID           uuid.UUID
	Questions    []Question
	Answers      map[int]OptionKey
	State        SessionState
	Remaining    int // whole seconds
	LimitSeconds int
	Source       Document
	CreatedAt    time.Time
}

// NewSession constructs a session in the Active state with all answers unset
// and the full time budget on the clock.
func NewSession(questions []Question, limitSeconds int, source Document) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if limitSeconds <= 0 {
		return nil, ErrInvalidTimeLimit
	}

	return &QuizSession{
		ID:           uuid.New(),
		Questions:    questions,
		Answers:      make(map[int]OptionKey),
		State:        SessionActive,
		Remaining:    limitSeconds,
		LimitSeconds: limitSeconds,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// SelectAnswer sets or overwrites the answer at the given question index.
// On a finished session the call is ignored and applied is false; the
// answers map is structurally locked rather than guarded by the caller.
func (s *QuizSession) SelectAnswer(index int, key OptionKey) (applied bool, err error) {
	if !key.Valid() {
		return false, ErrInvalidOptionKey
	}
	if index < 0 || index >= len(s.Questions) {
		return false, ErrQuestionIndexOutOfRange
	}
	if s.State == SessionFinished {
		return false, nil
	}

	s.Answers[index] = key
	return true, nil
}

// Tick decrements the remaining time by one second, floored at zero.
// It reports true exactly once: on the tick whose decrement reaches zero
// and performs the Active -> Finished transition. Ticks on a finished
// session are no-ops, so the countdown is idempotent past zero.
func (s *QuizSession) Tick() (finishedNow bool) {
	if s.State == SessionFinished {
		return false
	}

	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining == 0 {
		s.State = SessionFinished
		return true
	}
	return false
}

// Finish performs the explicit user-triggered Active -> Finished transition.
// It reports whether this call performed the transition; a second Finish,
// or a Finish racing a zero-reaching Tick, reports false. Timer-driven and
// user-driven finish therefore converge on one certification path.
func (s *QuizSession) Finish() (finishedNow bool) {
	if s.State == SessionFinished {
		return false
	}
	s.State = SessionFinished
	return true
}

// Score counts exact matches between the stored answers and the questions'
// correct option keys. Unanswered questions count as incorrect. The result
// is in [0, len(Questions)].
func (s *QuizSession) Score() int {
	score := 0
	for i, q := range s.Questions {
		if answer, ok := s.Answers[i]; ok && answer == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// QuestionTexts returns the texts of the session's questions, in order.
// These feed the cumulative exclusion list for follow-up batches.
func (s *QuizSession) QuestionTexts() []string {
	texts := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		texts[i] = q.Text
	}
	return texts
}
