package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zahroai/zahro-api/internal/api/shared"
	"github.com/zahroai/zahro-api/internal/service"
)

// CertificateHandler serves the certificate history.
type CertificateHandler struct {
	quizService *service.QuizService
	logger      *slog.Logger
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(quizService *service.QuizService, logger *slog.Logger) *CertificateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CertificateHandler{
		quizService: quizService,
		logger:      logger.With("component", "certificate_handler"),
	}
}

// ListCertificates handles GET /api/certificates, newest first.
func (h *CertificateHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	history, err := h.quizService.History(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, history)
}

// GetCertificate handles GET /api/certificates/{id}.
func (h *CertificateHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid certificate ID")
		return
	}

	cert, err := h.quizService.CertificateByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cert)
}
