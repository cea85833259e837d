package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/geoduel/internal/lobby"
)

// handleEvents streams the lobby as server-sent "state" events, one per
// committed version, each redacted for the requesting player.
func handleEvents(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		updates, err := lobbies.Subscribe(r.Context(), pin)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		viewer := currentProfile(r).ID

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case l, ok := <-updates:
				if !ok {
					return
				}
				data, err := json.Marshal(lobbyResponse(l, viewer))
				if err != nil {
					logger.Error("encoding lobby event", "pin", pin, "error", err)
					return
				}
				fmt.Fprintf(w, "id: %d\nevent: state\ndata: %s\n\n", l.Version, data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
