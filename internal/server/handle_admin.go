package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/playperu/geoduel/internal/lobby"
)

const (
	defaultAdminLimit = 50
	maxAdminLimit     = 500
)

// AdminLobbyItem summarises one lobby for the admin listing.
type AdminLobbyItem struct {
	ID        string         `json:"id"`
	GameMode  lobby.Mode     `json:"gameMode"`
	Status    lobby.Status   `json:"status"`
	HostID    string         `json:"hostId"`
	Players   []lobby.Player `json:"players"`
	WinnerUID string         `json:"winnerUid,omitempty"`
	Round     int            `json:"round,omitempty"`
	Guesses   int            `json:"guesses,omitempty"`
	Version   int64          `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
}

func handleAdminListLobbies(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultAdminLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxAdminLimit)
		}

		ls, err := lobbies.List(r.Context(), limit)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		items := make([]AdminLobbyItem, 0, len(ls))
		for _, l := range ls {
			item := AdminLobbyItem{
				ID:        l.ID,
				GameMode:  l.GameMode,
				Status:    l.Status,
				HostID:    l.HostID,
				Players:   l.Players,
				WinnerUID: l.WinnerUID,
				Version:   l.Version,
				CreatedAt: l.CreatedAt,
			}
			if l.Classic != nil {
				item.Guesses = len(l.Classic.Guesses)
			}
			if l.Challenge != nil && l.Status != lobby.StatusWaiting {
				item.Round = l.Challenge.CurrentQuestionIndex + 1
			}
			items = append(items, item)
		}
		writeJSON(w, http.StatusOK, items)
	}
}
