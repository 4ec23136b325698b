package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/zahroai/zahro-api/internal/config"
	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/extraction"
)

// Extractor implements the extraction.Extractor interface using Google's
// Gemini API to pull multiple-choice questions out of uploaded documents.
type Extractor struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

// Compile-time interface check.
var _ extraction.Extractor = (*Extractor)(nil)

// NewExtractor creates a new Extractor with the provided dependencies.
func NewExtractor(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Extractor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", extraction.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", extraction.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			extraction.ErrInvalidConfig, err)
	}

	return &Extractor{
		logger: logger,
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// ExtractQuestions sends the document inline with the extraction prompt and
// parses the structured response into domain questions. An empty result is
// returned as an empty slice with a nil error; the caller decides how to
// surface "no new questions".
func (e *Extractor) ExtractQuestions(
	ctx context.Context,
	doc domain.Document,
	excludeTexts []string,
) ([]domain.Question, error) {
	if len(doc.Data) == 0 {
		return nil, extraction.ErrEmptyDocument
	}

	prompt := buildPrompt(e.config.QuestionCount, excludeTexts)
	mediaType := normalizeMediaType(doc.MediaType)

	e.logger.InfoContext(ctx, "extracting questions from document",
		"file_name", doc.FileName,
		"media_type", mediaType,
		"document_bytes", len(doc.Data),
		"exclude_count", len(excludeTexts))

	payload, err := e.callWithRetry(ctx, doc.Data, mediaType, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(payload)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "extraction completed",
		"file_name", doc.FileName,
		"question_count", len(questions))

	return questions, nil
}

// callWithRetry makes the Gemini call with exponential backoff and jitter.
// Transient errors are retried up to MaxRetries times; permanent errors
// (malformed response, safety block) return immediately, matching the
// failure taxonomy in the extraction package.
func (e *Extractor) callWithRetry(
	ctx context.Context,
	data []byte,
	mediaType string,
	prompt string,
) ([]questionPayload, error) {
	maxRetries := e.config.MaxRetries
	if maxRetries < 0 {
		e.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	baseDelaySeconds := e.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		e.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mediaType, Data: data}},
			{Text: prompt},
		},
	}}

	generateConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   questionSchema(),
		Temperature:      genai.Ptr[float32](0.2),
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		e.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		payload, err := e.callOnce(ctx, contents, generateConfig)
		if err == nil {
			return payload, nil
		}

		e.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		// Permanent errors are not retried.
		if errors.Is(err, extraction.ErrInvalidResponse) || errors.Is(err, extraction.ErrContentBlocked) {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				extraction.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitter * float64(time.Second))

		e.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt+1,
			"delay_seconds", delay.Seconds())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", extraction.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single Gemini request and decodes the JSON response.
func (e *Extractor) callOnce(
	ctx context.Context,
	contents []*genai.Content,
	generateConfig *genai.GenerateContentConfig,
) ([]questionPayload, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, generateConfig)
	if err != nil {
		// API transport errors are assumed transient.
		return nil, fmt.Errorf("%w: %v", extraction.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", extraction.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: response stopped by safety filters", extraction.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", extraction.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", extraction.ErrInvalidResponse)
	}

	var payload []questionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", extraction.ErrInvalidResponse, err)
	}

	return payload, nil
}
