package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/extraction"
)

// mediaTypeWord is the OOXML media type Gemini expects for Word documents.
const mediaTypeWord = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// optionsPayload mirrors the options object of the response schema.
type optionsPayload struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// questionPayload mirrors one element of the structured model response.
type questionPayload struct {
	ID            int            `json:"id"`
	Question      string         `json:"question"`
	Options       optionsPayload `json:"options"`
	CorrectAnswer string         `json:"correctAnswer"`
	Explanation   string         `json:"explanation"`
}

// questionSchema constrains the model to the question-batch shape: an array
// of objects with an integer id, verbatim question text, four labeled
// options, a correct-option label and an explanation.
func questionSchema() *genai.Schema {
	optionSchema := &genai.Schema{Type: genai.TypeString}

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":       {Type: genai.TypeInteger},
				"question": {Type: genai.TypeString},
				"options": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"A": optionSchema,
						"B": optionSchema,
						"C": optionSchema,
						"D": optionSchema,
					},
					Required: []string{"A", "B", "C", "D"},
				},
				"correctAnswer": {
					Type: genai.TypeString,
					Enum: []string{"A", "B", "C", "D"},
				},
				"explanation": {Type: genai.TypeString},
			},
			Required: []string{"id", "question", "options", "correctAnswer", "explanation"},
		},
	}
}

// normalizeMediaType maps loose client media types onto the ones the model
// accepts. PDFs and Word documents are normalized; images and anything else
// pass through unchanged.
func normalizeMediaType(mediaType string) string {
	switch {
	case strings.Contains(mediaType, "pdf"):
		return "application/pdf"
	case strings.Contains(mediaType, "wordprocessingml"),
		strings.Contains(mediaType, "docx"),
		strings.Contains(mediaType, "doc"):
		return mediaTypeWord
	default:
		return mediaType
	}
}

// buildPrompt assembles the extraction instructions, embedding the exclusion
// list so the model never re-serves a question already surfaced in an
// earlier batch.
func buildPrompt(questionCount int, excludeTexts []string) string {
	var b strings.Builder

	b.WriteString("Analyze the tests inside this document and extract the questions.\n")

	if len(excludeTexts) > 0 {
		b.WriteString("\nIMPORTANT: the following questions have already been used. ")
		b.WriteString("Do not return any of them; pick new questions only:\n")
		for _, text := range excludeTexts {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, `
Strict requirements:
1. Extract exactly %d NEW questions from the file. Skip every excluded question.
2. Copy each question text verbatim, exactly as it appears in the file.
3. Shuffle the answer options of every question.
4. After shuffling, make sure "correctAnswer" matches the new option order.
5. In the explanation, state why the correct answer is right.
6. Respond with clean JSON only.`, questionCount)

	return b.String()
}

// parseQuestions converts the decoded response payload into domain
// questions, validating each one. An empty payload is a valid "no new
// questions" outcome and yields an empty slice.
func parseQuestions(payload []questionPayload) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(payload))
	for i, q := range payload {
		question := domain.Question{
			ID:   q.ID,
			Text: q.Question,
			Options: map[domain.OptionKey]string{
				domain.OptionA: q.Options.A,
				domain.OptionB: q.Options.B,
				domain.OptionC: q.Options.C,
				domain.OptionD: q.Options.D,
			},
			CorrectAnswer: domain.OptionKey(q.CorrectAnswer),
			Explanation:   q.Explanation,
		}

		if err := question.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", extraction.ErrInvalidResponse, i, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}
