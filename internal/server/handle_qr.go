package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/playperu/geoduel/internal/lobby"
)

const qrSize = 256

// joinURL is the link a second player scans to join pin.
func joinURL(publicURL, pin string) string {
	return strings.TrimRight(publicURL, "/") + "/join/" + pin
}

func handleLobbyQR(logger *slog.Logger, lobbies *lobby.Service, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}
		if _, err := lobbies.Get(r.Context(), pin); err != nil {
			writeServiceError(w, logger, err)
			return
		}

		png, err := qrcode.Encode(joinURL(publicURL, pin), qrcode.Medium, qrSize)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
