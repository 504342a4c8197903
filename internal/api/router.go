package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/scry-notes/internal/api/middleware"
	"github.com/phrazzld/scry-notes/internal/app"
)

// NewRouter builds the HTTP API over a.
func NewRouter(a *app.App, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	authHandler := NewAuthHandler(a.Auth)
	noteHandler := NewNoteHandler(a.Notes, a.Auth)
	flashcardHandler := NewFlashcardHandler(a.Flashcards)
	summaryHandler := NewSummaryHandler(a.Summaries)
	uiHandler := NewUIHandler(a.UI)
	authMiddleware := apiMiddleware.NewAuthMiddleware(a.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)

		r.Get("/ui", uiHandler.Preferences)
		r.Post("/ui/dark-mode", uiHandler.ToggleDarkMode)
		r.Post("/ui/sidebar", uiHandler.ToggleSidebar)

		r.Post("/summaries", summaryHandler.Summarize)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/dashboard", noteHandler.Dashboard)
			r.Get("/tags", noteHandler.Tags)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.List)
				r.Post("/", noteHandler.Create)
				r.Post("/import", noteHandler.Import)
				r.Get("/current", noteHandler.Current)
				r.Delete("/current", noteHandler.ClearCurrent)
				r.Get("/shared-with-me", noteHandler.SharedWithMe)
				r.Get("/shared-by-me", noteHandler.SharedByMe)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", noteHandler.Get)
					r.Patch("/", noteHandler.Update)
					r.Delete("/", noteHandler.Delete)
					r.Get("/markdown", noteHandler.Markdown)
					r.Post("/share", noteHandler.Share)
					r.Post("/visibility", noteHandler.ToggleVisibility)
					r.Post("/tags", noteHandler.AddTag)
					r.Delete("/tags/{tag}", noteHandler.RemoveTag)
					r.Post("/select", noteHandler.Select)
					r.Post("/flashcards", flashcardHandler.Generate)
				})
			})

			r.Route("/decks", func(r chi.Router) {
				r.Get("/", flashcardHandler.List)
				r.Delete("/", flashcardHandler.Reset)
				r.Get("/stats", flashcardHandler.Stats)
				r.Get("/current", flashcardHandler.Current)
				r.Get("/{id}", flashcardHandler.Get)
				r.Post("/{id}/select", flashcardHandler.Select)
			})

			r.Post("/summaries/notes", summaryHandler.Save)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
