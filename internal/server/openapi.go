package server

import (
	"encoding/json"
	"net/http"
	"strings"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/geoduel/internal/profile"
)

// HealthResponse maps each dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type pinParam struct {
	PIN string `path:"pin" description:"6-digit lobby PIN"`
}

type operation struct {
	method, path, summary, description string
	req                                any
	resp                               any
	status                             int
	errors                             []int
	contentType                        string
}

var operations = []operation{
	{
		method: http.MethodGet, path: "/healthz",
		summary: "Health check", description: "Returns the health status of backend dependencies.",
		resp: HealthResponse{}, status: http.StatusOK, errors: []int{http.StatusServiceUnavailable},
	},
	{
		method: http.MethodGet, path: "/api/countries",
		summary: "List countries", description: "Country ids and names for guess autocompletion. Accepts ?lang=en|hu.",
		resp: []CountryItem{}, status: http.StatusOK,
	},
	{
		method: http.MethodGet, path: "/api/avatars",
		summary: "List avatars", description: "Selectable profile avatars.",
		resp: []profile.Avatar{}, status: http.StatusOK,
	},
	{
		method: http.MethodPost, path: "/api/users",
		summary: "Register", description: "Creates a profile and returns its bearer token.",
		req: RegisterRequest{}, resp: RegisterResponse{}, status: http.StatusCreated,
		errors: []int{http.StatusBadRequest},
	},
	{
		method: http.MethodGet, path: "/api/users/me",
		summary: "Current profile", description: "Requires Bearer token.",
		resp: profile.Profile{}, status: http.StatusOK, errors: []int{http.StatusUnauthorized},
	},
	{
		method: http.MethodPut, path: "/api/users/me/avatar",
		summary: "Change avatar", description: "Requires Bearer token.",
		req: AvatarRequest{}, resp: profile.Profile{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusUnauthorized},
	},
	{
		method: http.MethodPost, path: "/api/users/me/best",
		summary: "Record best score", description: "Stores the score if it beats the current best for the mode. Classic counts guesses (fewer is better), challenge counts correct answers.",
		req: BestRequest{}, resp: BestResponse{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusUnauthorized},
	},
	{
		method: http.MethodPost, path: "/api/lobbies",
		summary: "Create lobby", description: "Opens a lobby hosted by the caller under a fresh 6-digit PIN.",
		req: CreateLobbyRequest{}, resp: LobbyResponse{}, status: http.StatusCreated,
		errors: []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusServiceUnavailable},
	},
	{
		method: http.MethodGet, path: "/api/lobbies/{pin}",
		summary: "Get lobby", description: "Lobby snapshot as visible to the caller.",
		resp: LobbyResponse{}, status: http.StatusOK, errors: []int{http.StatusNotFound},
	},
	{
		method: http.MethodPost, path: "/api/lobbies/{pin}/join",
		summary: "Join lobby", description: "Adds the caller as the second player. Joining again is a no-op.",
		resp: LobbyResponse{}, status: http.StatusOK,
		errors: []int{http.StatusNotFound, http.StatusConflict, http.StatusServiceUnavailable},
	},
	{
		method: http.MethodPut, path: "/api/lobbies/{pin}/question-types",
		summary: "Set question types", description: "Host only, before the challenge starts.",
		req: QuestionTypesRequest{}, resp: LobbyResponse{}, status: http.StatusOK,
		errors: []int{http.StatusBadRequest, http.StatusForbidden, http.StatusConflict},
	},
	{
		method: http.MethodPost, path: "/api/lobbies/{pin}/start",
		summary: "Start game", description: "Host only. Picks the first turn (classic) or the question set (challenge).",
		resp: LobbyResponse{}, status: http.StatusOK,
		errors: []int{http.StatusForbidden, http.StatusConflict},
	},
	{
		method: http.MethodPost, path: "/api/lobbies/{pin}/guesses",
		summary: "Submit guess", description: "Classic mode. Evaluates a country name against the hidden target.",
		req: GuessRequest{}, resp: LobbyResponse{}, status: http.StatusOK,
		errors: []int{http.StatusConflict, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	},
	{
		method: http.MethodPost, path: "/api/lobbies/{pin}/answers",
		summary: "Submit answer", description: "Challenge mode. Records the caller's option for the current question; optionId \"timeout\" records no answer.",
		req: AnswerRequest{}, resp: LobbyResponse{}, status: http.StatusOK,
		errors: []int{http.StatusForbidden, http.StatusConflict, http.StatusServiceUnavailable},
	},
	{
		method: http.MethodPost, path: "/api/lobbies/{pin}/advance",
		summary: "Advance round", description: "Challenge mode. Scores the round once both answers are in and moves on. Idempotent.",
		resp: LobbyResponse{}, status: http.StatusOK,
		errors: []int{http.StatusConflict, http.StatusServiceUnavailable},
	},
	{
		method: http.MethodGet, path: "/api/lobbies/{pin}/events",
		summary: "SSE lobby stream", description: "Server-Sent Events carrying a LobbyResponse per committed version. Pass token as query parameter.",
		status: http.StatusOK, contentType: "text/event-stream",
	},
	{
		method: http.MethodGet, path: "/api/lobbies/{pin}/ws",
		summary: "WebSocket lobby stream", description: "Upgrades to a WebSocket that pushes a LobbyResponse per committed version.",
		status: http.StatusSwitchingProtocols, contentType: "application/json",
	},
	{
		method: http.MethodGet, path: "/api/lobbies/{pin}/qr.png",
		summary: "Join QR code", description: "PNG QR code encoding the lobby join link.",
		status: http.StatusOK, contentType: "image/png", errors: []int{http.StatusNotFound},
	},
	{
		method: http.MethodGet, path: "/api/admin/lobbies",
		summary: "List lobbies", description: "Most recently updated lobbies. Requires admin basic auth.",
		resp: []AdminLobbyItem{}, status: http.StatusOK, errors: []int{http.StatusUnauthorized},
	},
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "geoduel API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Two-player geography duels: classic country guessing and the trivia challenge.")

	for _, op := range operations {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		oc.SetDescription(op.description)
		if strings.Contains(op.path, "{pin}") {
			oc.AddReqStructure(pinParam{})
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		if op.contentType != "" {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(op.status), openapi.WithContentType(op.contentType))
		} else {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(op.status))
		}
		for _, status := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
