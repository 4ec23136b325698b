package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zahroai/zahro-api/internal/api/shared"
	"github.com/zahroai/zahro-api/internal/service"
)

// timerFrame is one websocket message of the countdown stream. Score is
// present only on the finished frame.
type timerFrame struct {
	Remaining int  `json:"remaining"`
	Finished  bool `json:"finished"`
	Score     *int `json:"score,omitempty"`
}

// TimerHandler streams per-second countdown snapshots over a websocket.
type TimerHandler struct {
	quizService *service.QuizService
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewTimerHandler creates a new TimerHandler.
func NewTimerHandler(quizService *service.QuizService, logger *slog.Logger) *TimerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimerHandler{
		quizService: quizService,
		logger:      logger.With("component", "timer_handler"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is served to a local single-user client; origin
			// enforcement happens at the CORS layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// StreamTimer handles GET /api/quizzes/{id}/ws. Frames are pushed on every
// countdown tick; the final frame carries finished=true with the score, then
// the connection closes.
func (h *TimerHandler) StreamTimer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	// Subscribe before upgrading so an unknown session still gets a plain
	// HTTP error.
	ticks, cancel, err := h.quizService.Subscribe(id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "session_id", id, "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	h.logger.Debug("timer stream opened", "session_id", id)

	// Drain client messages so we notice a closed connection.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-clientGone:
			return
		case snapshot, ok := <-ticks:
			if !ok {
				// Session reset or service shutdown.
				return
			}

			frame := timerFrame{
				Remaining: snapshot.Remaining,
				Finished:  snapshot.Finished,
			}
			if snapshot.Finished {
				score := snapshot.Score
				frame.Score = &score
			}

			if err := conn.WriteJSON(frame); err != nil {
				h.logger.Debug("timer stream write failed", "session_id", id, "error", err)
				return
			}
			if snapshot.Finished {
				h.logger.Debug("timer stream finished", "session_id", id)
				return
			}
		}
	}
}
