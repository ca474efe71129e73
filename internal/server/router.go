package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thenoetrevino/boardsync/internal/logging"
)

// NewRouter registers the board routes. Recovery, request ids and request
// logging are always applied; extra middleware runs after them.
func NewRouter(h *Handler, logger *slog.Logger, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Get("/columns", h.ListColumns)
		r.Post("/columns", h.CreateColumn)
		r.Get("/columns/{id}", h.GetColumn)
		r.Patch("/columns/{id}", h.UpdateColumn)
		r.Delete("/columns/{id}", h.DeleteColumn)

		r.Get("/cards", h.ListCards)
		r.Post("/cards", h.CreateCard)
		r.Get("/cards/{id}", h.GetCard)
		r.Patch("/cards/{id}", h.UpdateCard)
		r.Delete("/cards/{id}", h.DeleteCard)
	})

	return r
}

// requestLogger logs request start and completion with a child logger that
// carries the request id, and stores that logger in the request context.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			child := logger.With(slog.String("request_id", middleware.GetReqID(ctx)))
			ctx = logging.WithLogger(ctx, child)

			child.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			child.InfoContext(ctx, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
