package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamTimerDeliversFinishedFrame(t *testing.T) {
	t.Parallel()
	router, svc := newTestRouter(t, apiTestBatch(2))
	session := startQuiz(t, router)

	timer := NewTimerHandler(svc, nil)
	wsRouter := chi.NewRouter()
	wsRouter.Get("/api/quizzes/{id}/ws", timer.StreamTimer)

	server := httptest.NewServer(wsRouter)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/quizzes/" + session.ID + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	defer func() { _ = resp.Body.Close() }()

	sessionID, err := uuid.Parse(session.ID)
	require.NoError(t, err)
	_, err = svc.Finish(context.Background(), sessionID)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var frame timerFrame
	for {
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("reading timer frame: %v", err)
		}
		if frame.Finished {
			break
		}
	}
	require.NotNil(t, frame.Score)
	assert.Equal(t, 0, *frame.Score)

	// The stream closes after the finished frame.
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestStreamTimerUnknownSession(t *testing.T) {
	t.Parallel()
	_, svc := newTestRouter(t, apiTestBatch(2))

	timer := NewTimerHandler(svc, nil)
	wsRouter := chi.NewRouter()
	wsRouter.Get("/api/quizzes/{id}/ws", timer.StreamTimer)

	server := httptest.NewServer(wsRouter)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/quizzes/not-a-session/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	if conn != nil {
		_ = conn.Close()
	}
	require.NotNil(t, resp)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
