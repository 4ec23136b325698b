package api

import (
	"strconv"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/service"
)

// QuestionResponse is the API shape of a quiz question. CorrectAnswer and
// Explanation are omitted while the session is active so clients cannot
// read the answers out of the payload.
type QuestionResponse struct {
	ID            int               `json:"id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// SessionResponse is the API shape of a session snapshot. Score, Grade and
// CertificateID are present only once the session has finished.
type SessionResponse struct {
	ID               string             `json:"id"`
	State            string             `json:"state"`
	RemainingSeconds int                `json:"remaining_seconds"`
	LimitSeconds     int                `json:"limit_seconds"`
	FileName         string             `json:"file_name"`
	Questions        []QuestionResponse `json:"questions"`
	Answers          map[string]string  `json:"answers"`
	Score            *int               `json:"score,omitempty"`
	Grade            string             `json:"grade,omitempty"`
	CertificateID    string             `json:"certificate_id,omitempty"`
}

// SelectAnswerRequest is the body of PUT /api/quizzes/{id}/answers.
// QuestionIndex is a pointer so index zero still satisfies required.
type SelectAnswerRequest struct {
	QuestionIndex *int   `json:"question_index" validate:"required"`
	Option        string `json:"option"         validate:"required,oneof=A B C D"`
}

// NewSessionResponse converts a service snapshot into the API shape,
// withholding answers and explanations until the session has finished.
func NewSessionResponse(view *service.SessionView) SessionResponse {
	finished := view.Finished()

	questions := make([]QuestionResponse, len(view.Questions))
	for i, q := range view.Questions {
		options := make(map[string]string, len(q.Options))
		for key, text := range q.Options {
			options[string(key)] = text
		}

		questions[i] = QuestionResponse{
			ID:       q.ID,
			Question: q.Text,
			Options:  options,
		}
		if finished {
			questions[i].CorrectAnswer = string(q.CorrectAnswer)
			questions[i].Explanation = q.Explanation
		}
	}

	answers := make(map[string]string, len(view.Answers))
	for index, key := range view.Answers {
		answers[strconv.Itoa(index)] = string(key)
	}

	resp := SessionResponse{
		ID:               view.ID.String(),
		State:            string(view.State),
		RemainingSeconds: view.Remaining,
		LimitSeconds:     view.LimitSeconds,
		FileName:         view.FileName,
		Questions:        questions,
		Answers:          answers,
	}

	if finished {
		score := view.Score
		resp.Score = &score
		resp.Grade = string(domain.GradeForScore(view.Score))
		if view.Certificate != nil {
			resp.CertificateID = view.Certificate.ID.String()
		}
	}

	return resp
}
