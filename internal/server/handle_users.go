package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/geoduel/internal/profile"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=24"`
	AvatarID string `json:"avatarId" validate:"required"`
}

type RegisterResponse struct {
	Token   string          `json:"token"`
	Profile profile.Profile `json:"profile"`
}

func handleRegister(logger *slog.Logger, profiles *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "username (2-24 characters) and avatarId are required")
			return
		}

		p, token, err := profiles.Register(r.Context(), strings.TrimSpace(req.Username), req.AvatarID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, RegisterResponse{Token: token, Profile: p})
	}
}

func handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentProfile(r))
	}
}

type AvatarRequest struct {
	AvatarID string `json:"avatarId" validate:"required"`
}

func handleSetAvatar(logger *slog.Logger, profiles *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AvatarRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "avatarId is required")
			return
		}

		p, err := profiles.SetAvatar(r.Context(), currentProfile(r).ID, req.AvatarID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type BestRequest struct {
	Mode  profile.ScoreKind `json:"mode" validate:"required,oneof=classic challenge"`
	Score int               `json:"score" validate:"min=0"`
}

type BestResponse struct {
	Profile profile.Profile `json:"profile"`
	Updated bool            `json:"updated"`
}

func handleRecordBest(logger *slog.Logger, profiles *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BestRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "mode must be classic or challenge and score non-negative")
			return
		}

		p, updated, err := profiles.RecordBest(r.Context(), currentProfile(r).ID, req.Mode, req.Score)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, BestResponse{Profile: p, Updated: updated})
	}
}
