package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/trivia"
)

// LobbyResponse is a lobby as seen by the requesting player, with the
// document version it was read at.
type LobbyResponse struct {
	Lobby   lobby.Lobby `json:"lobby"`
	Version int64       `json:"version"`
}

func lobbyResponse(l lobby.Lobby, viewer string) LobbyResponse {
	return LobbyResponse{Lobby: l.Public(viewer), Version: l.Version}
}

// lobbyPIN reads {pin}, reporting NotFound for anything that cannot be a
// PIN.
func lobbyPIN(w http.ResponseWriter, r *http.Request) (string, bool) {
	pin := chi.URLParam(r, "pin")
	if !lobby.ValidPIN(pin) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("lobby %s: %s", pin, lobby.ErrNotFound),
			Code:  lobby.Kind(lobby.ErrNotFound),
		})
		return "", false
	}
	return pin, true
}

type CreateLobbyRequest struct {
	Mode lobby.Mode `json:"mode" validate:"required,oneof=classic challenge"`
}

func handleCreateLobby(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateLobbyRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "mode must be classic or challenge")
			return
		}

		host := currentPlayer(r)
		l, err := lobbies.Create(r.Context(), host, req.Mode)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, lobbyResponse(l, host.UID))
	}
}

func handleGetLobby(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		l, err := lobbies.Get(r.Context(), pin)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, currentProfile(r).ID))
	}
}

func handleJoinLobby(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		p := currentPlayer(r)
		l, err := lobbies.Join(r.Context(), pin, p)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, p.UID))
	}
}

type QuestionTypesRequest struct {
	Types []trivia.Type `json:"types" validate:"required,min=1,dive,oneof=flag capital outline audio dish animal"`
}

func handleSetQuestionTypes(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		var req QuestionTypesRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "types must list at least one known question type")
			return
		}

		uid := currentProfile(r).ID
		l, err := lobbies.SetQuestionTypes(r.Context(), pin, uid, req.Types)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, uid))
	}
}

func handleStartLobby(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		uid := currentProfile(r).ID
		l, err := lobbies.Start(r.Context(), pin, uid)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, lobbyResponse(l, uid))
	}
}
