package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/lobby"
)

type GuessRequest struct {
	Name string `json:"name" validate:"required"`
	Lang string `json:"lang" validate:"omitempty,oneof=en hu"`
}

func handleSubmitGuess(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		uid := currentProfile(r).ID
		l, err := lobbies.SubmitGuess(r.Context(), pin, uid, req.Name, geo.ParseLanguage(req.Lang))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, uid))
	}
}

type AnswerRequest struct {
	OptionID string `json:"optionId" validate:"required"`
}

func handleSubmitAnswer(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "optionId is required")
			return
		}

		uid := currentProfile(r).ID
		l, err := lobbies.SubmitAnswer(r.Context(), pin, uid, req.OptionID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, uid))
	}
}

func handleAdvanceRound(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		l, err := lobbies.AdvanceRound(r.Context(), pin)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, currentProfile(r).ID))
	}
}
