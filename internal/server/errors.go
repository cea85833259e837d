package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/profile"
)

// ErrorResponse is returned for all error responses. Code names the
// lobby error kind when there is one.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var kindStatus = map[string]int{
	"NotFound":             http.StatusNotFound,
	"Full":                 http.StatusConflict,
	"NotJoinable":          http.StatusConflict,
	"NotYourTurn":          http.StatusConflict,
	"AlreadyAnswered":      http.StatusConflict,
	"GameNotActive":        http.StatusConflict,
	"AlreadyStarted":       http.StatusConflict,
	"NotEnoughPlayers":     http.StatusConflict,
	"WrongMode":            http.StatusConflict,
	"InvalidGuess":         http.StatusUnprocessableEntity,
	"NotHost":              http.StatusForbidden,
	"NotInLobby":           http.StatusForbidden,
	"ChallengeDataMissing": http.StatusInternalServerError,
	"TargetMissing":        http.StatusInternalServerError,
	"TransactionConflict":  http.StatusServiceUnavailable,
	"NoFreePIN":            http.StatusServiceUnavailable,
}

// writeServiceError maps lobby and profile errors onto responses.
// Anything unrecognised is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if kind := lobby.Kind(err); kind != "" {
		status := kindStatus[kind]
		if status >= http.StatusInternalServerError {
			logger.Error("lobby operation failed", "kind", kind, "error", err)
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: kind})
		return
	}

	switch {
	case errors.Is(err, profile.ErrNoSession):
		writeError(w, http.StatusUnauthorized, "invalid session token")
	case errors.Is(err, profile.ErrNotFound):
		writeError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, profile.ErrUnknownAvatar), errors.Is(err, profile.ErrUnknownScore):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
