package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/profile"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	deps, _ := newTestDepsWithStore(t)
	return deps
}

func newTestDepsWithStore(t *testing.T) (Deps, *docstore.Store) {
	t.Helper()
	store := docstore.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Deps{
		Lobbies:   lobby.NewService(store, geo.Default(), logger, lobby.WithRand(rand.New(rand.NewPCG(7, 7)))),
		Profiles:  profile.NewService(store, logger),
		Atlas:     geo.Default(),
		PublicURL: "https://geoduel.example",
	}, store
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	return newRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), deps)
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

// register creates a profile and returns its token and id.
func register(t *testing.T, h http.Handler, username string) (string, string) {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/users", "", RegisterRequest{Username: username, AvatarID: "avatar1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[RegisterResponse](t, w)
	return resp.Token, resp.Profile.ID
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	if code == "" {
		return
	}
	if got := decodeBody[ErrorResponse](t, w).Code; got != code {
		t.Errorf("code = %q, want %q", got, code)
	}
}

// twoPlayerLobby returns a lobby created by the host and joined by the
// guest, not yet started.
func twoPlayerLobby(t *testing.T, h http.Handler, mode lobby.Mode) (pin, hostToken, guestToken string) {
	t.Helper()
	hostToken, _ = register(t, h, "Alice")
	guestToken, _ = register(t, h, "Bob")

	w := do(t, h, http.MethodPost, "/api/lobbies", hostToken, CreateLobbyRequest{Mode: mode})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	pin = decodeBody[LobbyResponse](t, w).Lobby.ID

	w = do(t, h, http.MethodPost, "/api/lobbies/"+pin+"/join", guestToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return pin, hostToken, guestToken
}
