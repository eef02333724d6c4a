package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Aaron-McGill/HandyGameServer/internal/service"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the request surface of the service.
func NewRouter(logger *slog.Logger, sessions service.SessionService) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)

	sessionHandler := NewSessionHandler(logger, sessions)
	router.Route("/games", func(r chi.Router) {
		r.Get("/", sessionHandler.List)
		r.Post("/", sessionHandler.Create)
		r.Get("/{id}", sessionHandler.Get)
		r.Put("/{id}/join", sessionHandler.Join)
		r.Put("/{id}/makeMove", sessionHandler.MakeMove)
		r.Get("/{id}/currentPlayer", sessionHandler.CurrentPlayer)
		r.Get("/{id}/gameReady", sessionHandler.GameReady)
		r.Delete("/{id}", sessionHandler.Delete)
	})

	return router
}

// Start runs the HTTP server until ctx is canceled.
func Start(ctx context.Context, logger *slog.Logger, port string, sessions service.SessionService) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, sessions),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
