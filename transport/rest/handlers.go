package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const maxBodySize = 4096

type handlers struct {
	logger *slog.Logger
	rounds roundUseCase
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type roundResponse struct {
	Round *entity.Round `json:"round,omitempty"`
	Error string        `json:"error,omitempty"`
}

func (that *handlers) newRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.rounds.NewRound(r.Context())
	if err != nil {
		that.writeError(w, r, "newRound", nil, err)
		return
	}

	writeJSON(w, http.StatusCreated, roundResponse{Round: round})
}

func (that *handlers) getRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.rounds.GetRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, "getRound", nil, err)
		return
	}

	writeJSON(w, http.StatusOK, roundResponse{Round: round})
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, roundResponse{Error: "row and col are required"})
		return
	}

	round, err := that.rounds.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, r, "makeTurn", round, err)
		return
	}

	writeJSON(w, http.StatusOK, roundResponse{Round: round})
}

func (that *handlers) resetRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.rounds.ResetRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, "resetRound", nil, err)
		return
	}

	writeJSON(w, http.StatusOK, roundResponse{Round: round})
}

func (that *handlers) deleteRound(w http.ResponseWriter, r *http.Request) {
	if err := that.rounds.DeleteRound(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, "deleteRound", nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors to statuses; rejected moves still carry the round.
func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, method string, round *entity.Round, err error) {
	switch {
	case errors.Is(err, apperror.ErrRejected):
		writeJSON(w, http.StatusConflict, roundResponse{Round: round, Error: err.Error()})
	case errors.Is(err, apperror.ErrRoundNotFound):
		writeJSON(w, http.StatusNotFound, roundResponse{Error: apperror.ErrRoundNotFound.Error()})
	default:
		that.logger.Error("request failed", "method", method, "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, roundResponse{Error: "Internal Server Error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload roundResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
