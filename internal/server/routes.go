package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("geoduel API", "/openapi.json", "/docs"))
	if deps.Health != nil {
		r.Mount("/healthz", deps.Health)
	}

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimit > 0 {
			r.Use(rateLimit(deps.RateLimit, deps.RateBurst))
		}

		// Public routes.
		r.Get("/countries", handleCountries(deps.Atlas))
		r.Get("/avatars", handleAvatars())
		r.Post("/users", handleRegister(logger, deps.Profiles))
		r.Get("/lobbies/{pin}/qr.png", handleLobbyQR(logger, deps.Lobbies, deps.PublicURL))

		// Player routes, bearer token (or ?token= for streams).
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(logger, deps.Profiles))

			r.Get("/users/me", handleMe())
			r.Put("/users/me/avatar", handleSetAvatar(logger, deps.Profiles))
			r.Post("/users/me/best", handleRecordBest(logger, deps.Profiles))

			r.Post("/lobbies", handleCreateLobby(logger, deps.Lobbies))
			r.Route("/lobbies/{pin}", func(r chi.Router) {
				r.Get("/", handleGetLobby(logger, deps.Lobbies))
				r.Post("/join", handleJoinLobby(logger, deps.Lobbies))
				r.Put("/question-types", handleSetQuestionTypes(logger, deps.Lobbies))
				r.Post("/start", handleStartLobby(logger, deps.Lobbies))
				r.Post("/guesses", handleSubmitGuess(logger, deps.Lobbies))
				r.Post("/answers", handleSubmitAnswer(logger, deps.Lobbies))
				r.Post("/advance", handleAdvanceRound(logger, deps.Lobbies))
				r.Get("/events", handleEvents(logger, deps.Lobbies))
				r.Get("/ws", handleLobbyWS(logger, deps.Lobbies))
			})
		})

		if deps.AdminPasswordHash != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(adminAuthMiddleware(deps.AdminPasswordHash))
				r.Get("/lobbies", handleAdminListLobbies(logger, deps.Lobbies))
			})
		}
	})
}
