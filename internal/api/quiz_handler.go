package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zahroai/zahro-api/internal/api/shared"
	"github.com/zahroai/zahro-api/internal/domain"
	"github.com/zahroai/zahro-api/internal/service"
)

// multipartOverheadBytes covers the form framing around the uploaded file
// when capping the request body.
const multipartOverheadBytes = 512 * 1024

// QuizHandler handles quiz session endpoints.
type QuizHandler struct {
	quizService    *service.QuizService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, logger *slog.Logger, maxUploadBytes int64) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		quizService:    quizService,
		logger:         logger.With("component", "quiz_handler"),
		maxUploadBytes: maxUploadBytes,
	}
}

// StartQuiz handles POST /api/quizzes. The multipart form carries the
// document under "file" and the duration under "time_limit_minutes".
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverheadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Upload is too large or not a valid multipart form", err)
		return
	}

	minutes, err := strconv.Atoi(r.FormValue("time_limit_minutes"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"time_limit_minutes must be a number")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "A document file is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Failed to read the uploaded file", err)
		return
	}

	doc := domain.Document{
		FileName:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}

	view, err := h.quizService.Start(r.Context(), doc, minutes*60)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "quiz started",
		"session_id", view.ID,
		"file_name", doc.FileName,
		"question_count", len(view.Questions))

	shared.RespondWithJSON(w, r, http.StatusCreated, NewSessionResponse(view))
}

// GetQuiz handles GET /api/quizzes/{id}.
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.quizService.Get(id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewSessionResponse(view))
}

// SelectAnswer handles PUT /api/quizzes/{id}/answers. Answers submitted
// after the session finished are accepted and ignored; the response is 204
// either way.
func (h *QuizHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"question_index and option (A-D) are required", err)
		return
	}

	err := h.quizService.SelectAnswer(id, *req.QuestionIndex, domain.OptionKey(req.Option))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FinishQuiz handles POST /api/quizzes/{id}/finish. The call is idempotent.
func (h *QuizHandler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.quizService.Finish(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewSessionResponse(view))
}

// NextBatch handles POST /api/quizzes/{id}/next. On success the session is
// replaced in place with a fresh batch; when the document is exhausted the
// session is removed and 422 returned.
func (h *QuizHandler) NextBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.quizService.NextBatch(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewSessionResponse(view))
}

// DeleteQuiz handles DELETE /api/quizzes/{id}.
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.quizService.Reset(id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sessionID parses the {id} URL parameter, responding 400 on garbage input.
func (h *QuizHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
