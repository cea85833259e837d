// Package client talks to the geoduel HTTP API. Error responses carrying
// a lobby error kind unwrap to the matching lobby sentinel, so callers
// can use errors.Is exactly as they would against the service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/profile"
	"github.com/playperu/geoduel/internal/trivia"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Unwrap returns the lobby sentinel named by Code, if any.
func (e *APIError) Unwrap() error {
	if err, ok := lobby.ErrorForKind(e.Code); ok {
		return err
	}
	if e.Status == http.StatusUnauthorized {
		return profile.ErrNoSession
	}
	return nil
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token is the bearer token in use, set by WithToken or Register.
func (c *Client) Token() string { return c.token }

type lobbyResponse struct {
	Lobby   lobby.Lobby `json:"lobby"`
	Version int64       `json:"version"`
}

func (r lobbyResponse) lobby() lobby.Lobby {
	l := r.Lobby
	l.Version = r.Version
	return l
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.NewDecoder(res.Body).Decode(&payload); err == nil {
			apiErr.Message, apiErr.Code = payload.Error, payload.Code
		} else {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) lobbyCall(ctx context.Context, method, path string, body any) (lobby.Lobby, error) {
	var resp lobbyResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return lobby.Lobby{}, err
	}
	return resp.lobby(), nil
}

func lobbyPath(pin, action string) string {
	p := "/api/lobbies/" + url.PathEscape(pin)
	if action != "" {
		p += "/" + action
	}
	return p
}

// Register creates a profile and switches the client to its token.
func (c *Client) Register(ctx context.Context, username, avatarID string) (profile.Profile, error) {
	var resp struct {
		Token   string          `json:"token"`
		Profile profile.Profile `json:"profile"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users", map[string]string{
		"username": username,
		"avatarId": avatarID,
	}, &resp)
	if err != nil {
		return profile.Profile{}, err
	}
	c.token = resp.Token
	return resp.Profile, nil
}

func (c *Client) Me(ctx context.Context) (profile.Profile, error) {
	var p profile.Profile
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &p)
	return p, err
}

// RecordBest reports whether score became the new best for kind.
func (c *Client) RecordBest(ctx context.Context, kind profile.ScoreKind, score int) (bool, error) {
	var resp struct {
		Updated bool `json:"updated"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users/me/best", map[string]any{
		"mode":  kind,
		"score": score,
	}, &resp)
	return resp.Updated, err
}

type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) Countries(ctx context.Context, lang geo.Language) ([]Country, error) {
	var out []Country
	err := c.do(ctx, http.MethodGet, "/api/countries?lang="+url.QueryEscape(string(lang)), nil, &out)
	return out, err
}

func (c *Client) CreateLobby(ctx context.Context, mode lobby.Mode) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPost, "/api/lobbies", map[string]any{"mode": mode})
}

func (c *Client) Lobby(ctx context.Context, pin string) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodGet, lobbyPath(pin, ""), nil)
}

func (c *Client) Join(ctx context.Context, pin string) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPost, lobbyPath(pin, "join"), nil)
}

func (c *Client) SetQuestionTypes(ctx context.Context, pin string, types []trivia.Type) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPut, lobbyPath(pin, "question-types"), map[string]any{"types": types})
}

func (c *Client) Start(ctx context.Context, pin string) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPost, lobbyPath(pin, "start"), nil)
}

func (c *Client) Guess(ctx context.Context, pin, name string, lang geo.Language) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPost, lobbyPath(pin, "guesses"), map[string]any{
		"name": name,
		"lang": lang,
	})
}

func (c *Client) Answer(ctx context.Context, pin, optionID string) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPost, lobbyPath(pin, "answers"), map[string]any{"optionId": optionID})
}

func (c *Client) Advance(ctx context.Context, pin string) (lobby.Lobby, error) {
	return c.lobbyCall(ctx, http.MethodPost, lobbyPath(pin, "advance"), nil)
}

// watchReadLimit bounds one lobby snapshot frame. A finished challenge
// ships every question and a classic game keeps every guess.
const watchReadLimit = 1 << 20

// Watch streams lobby snapshots over the WebSocket endpoint. The
// channel closes when the game finishes, the connection drops or ctx is
// done.
func (c *Client) Watch(ctx context.Context, pin string) (<-chan lobby.Lobby, error) {
	wsURL := "ws" + strings.TrimPrefix(c.base, "http") + lobbyPath(pin, "ws")
	conn, res, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": {"Bearer " + c.token}},
	})
	if err != nil {
		if res != nil && res.StatusCode >= 300 {
			return nil, &APIError{Status: res.StatusCode, Message: "websocket upgrade rejected"}
		}
		return nil, fmt.Errorf("dialing %s: %w", wsURL, err)
	}

	conn.SetReadLimit(watchReadLimit)

	out := make(chan lobby.Lobby)
	go func() {
		defer close(out)
		defer conn.CloseNow()
		for {
			var resp lobbyResponse
			if err := wsjson.Read(ctx, conn, &resp); err != nil {
				return
			}
			select {
			case out <- resp.lobby():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Round binds the client to one lobby as the pacer's actions.
func (c *Client) Round(pin string) RoundActions {
	return RoundActions{c: c, pin: pin}
}

type RoundActions struct {
	c   *Client
	pin string
}

func (a RoundActions) SubmitAnswer(ctx context.Context, optionID string) error {
	_, err := a.c.Answer(ctx, a.pin, optionID)
	return err
}

func (a RoundActions) AdvanceRound(ctx context.Context) error {
	_, err := a.c.Advance(ctx, a.pin)
	return err
}
