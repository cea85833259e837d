package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/geoduel/internal/lobby"
)

const wsWriteTimeout = 5 * time.Second

// handleLobbyWS pushes the same snapshots as handleEvents over a
// WebSocket. The stream is one-way; client messages are discarded.
func handleLobbyWS(logger *slog.Logger, lobbies *lobby.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pin, ok := lobbyPIN(w, r)
		if !ok {
			return
		}

		// Subscribe before upgrading so a missing lobby still gets a
		// plain 404.
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		updates, err := lobbies.Subscribe(ctx, pin)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		viewer := currentProfile(r).ID

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		// CloseRead cancels ctx once the peer goes away.
		ctx = conn.CloseRead(ctx)

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket closed", "pin", pin, "error", ctx.Err())
				return
			case l, ok := <-updates:
				if !ok {
					conn.Close(websocket.StatusNormalClosure, "")
					return
				}
				wctx, wcancel := context.WithTimeout(ctx, wsWriteTimeout)
				err := wsjson.Write(wctx, conn, lobbyResponse(l, viewer))
				wcancel()
				if err != nil {
					logger.Debug("websocket write failed", "pin", pin, "error", err)
					return
				}
				if l.Status == lobby.StatusFinished {
					conn.Close(websocket.StatusNormalClosure, "game finished")
					return
				}
			}
		}
	}
}
