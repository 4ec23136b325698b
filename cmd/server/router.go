package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zahroai/zahro-api/internal/api"
	apiMiddleware "github.com/zahroai/zahro-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// The browser client is served from its own origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	quizHandler := api.NewQuizHandler(app.quizService, app.logger, app.config.Quiz.MaxUploadBytes)
	certificateHandler := api.NewCertificateHandler(app.quizService, app.logger)
	timerHandler := api.NewTimerHandler(app.quizService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/", quizHandler.StartQuiz)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", quizHandler.GetQuiz)
				r.Put("/answers", quizHandler.SelectAnswer)
				r.Post("/finish", quizHandler.FinishQuiz)
				r.Post("/next", quizHandler.NextBatch)
				r.Delete("/", quizHandler.DeleteQuiz)
				r.Get("/ws", timerHandler.StreamTimer)
			})
		})

		r.Route("/certificates", func(r chi.Router) {
			r.Get("/", certificateHandler.ListCertificates)
			r.Get("/{id}", certificateHandler.GetCertificate)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
