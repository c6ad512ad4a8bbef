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

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type roundUseCase interface {
	NewRound(ctx context.Context) (*entity.Round, error)
	GetRound(ctx context.Context, id string) (*entity.Round, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Round, error)
	ResetRound(ctx context.Context, id string) (*entity.Round, error)
	DeleteRound(ctx context.Context, id string) error
}

// NewRouter - builds the HTTP routes of the round API.
func NewRouter(logger *slog.Logger, rounds roundUseCase) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		rounds: rounds,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Route("/rounds", func(r chi.Router) {
		r.Post("/", h.newRound)
		r.Get("/{id}", h.getRound)
		r.Delete("/{id}", h.deleteRound)
		r.Post("/{id}/turn", h.makeTurn)
		r.Post("/{id}/reset", h.resetRound)
	})

	return r
}

// Start - serves the round API until ctx is cancelled.
func Start(ctx context.Context, logger *slog.Logger, port string, rounds roundUseCase) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, rounds),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
