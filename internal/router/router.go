package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"inkstrokes-ai/internal/handlers"
	"inkstrokes-ai/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	allowedOrigins []string,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(allowedOrigins))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Route("/api/ai", func(r chi.Router) {
		r.Get("/health", chatHandler.Health)
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
