package client_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/geoduel/internal/client"
	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/profile"
	"github.com/playperu/geoduel/internal/roundclock"
	"github.com/playperu/geoduel/internal/server"
)

func newAPI(t *testing.T) string {
	t.Helper()
	return newAPIWithStore(t, docstore.NewMemory())
}

func newAPIWithStore(t *testing.T, store *docstore.Store) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New("", logger, server.Deps{
		Lobbies:  lobby.NewService(store, geo.Default(), logger),
		Profiles: profile.NewService(store, logger),
		Atlas:    geo.Default(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func registered(t *testing.T, base, name string) *client.Client {
	t.Helper()
	c := client.New(base)
	if _, err := c.Register(context.Background(), name, "avatar2"); err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	if c.Token() == "" {
		t.Fatal("no token after register")
	}
	return c
}

func TestErrorsUnwrapToLobbySentinels(t *testing.T) {
	ctx := context.Background()
	base := newAPI(t)
	alice := registered(t, base, "Alice")
	bob := registered(t, base, "Bob")
	carol := registered(t, base, "Carol")

	l, err := alice.CreateLobby(ctx, lobby.ModeClassic)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := bob.Join(ctx, l.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	_, err = carol.Join(ctx, l.ID)
	if !errors.Is(err, lobby.ErrFull) {
		t.Fatalf("join full lobby: got %v, want ErrFull", err)
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 409 || apiErr.Code != "Full" {
		t.Errorf("unexpected api error %#v", apiErr)
	}

	if _, err := bob.Start(ctx, l.ID); !errors.Is(err, lobby.ErrNotHost) {
		t.Errorf("guest start: got %v, want ErrNotHost", err)
	}
	if _, err := carol.Lobby(ctx, "999999"); !errors.Is(err, lobby.ErrNotFound) {
		t.Errorf("missing lobby: got %v, want ErrNotFound", err)
	}
	if _, err := client.New(base).Me(ctx); !errors.Is(err, profile.ErrNoSession) {
		t.Errorf("anonymous me: got %v, want ErrNoSession", err)
	}
}

func TestClassicGameOverAPI(t *testing.T) {
	ctx := context.Background()
	base := newAPI(t)
	alice := registered(t, base, "Alice")
	bob := registered(t, base, "Bob")

	l, err := alice.CreateLobby(ctx, lobby.ModeClassic)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := bob.Join(ctx, l.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := alice.Start(ctx, l.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Alternate guesses through the dataset until someone hits the
	// target.
	players := []*client.Client{alice, bob}
	for i, c := range geo.Default().All() {
		l, err = players[i%2].Guess(ctx, l.ID, c.Name.EN, geo.LangEN)
		if err != nil {
			t.Fatalf("guess %s: %v", c.ID, err)
		}
		if l.Status == lobby.StatusFinished {
			break
		}
	}
	if l.Status != lobby.StatusFinished {
		t.Fatal("game did not finish after guessing every country")
	}
	last := l.Classic.Guesses[len(l.Classic.Guesses)-1]
	if !last.IsCorrect || last.GuessedCountryID != l.Classic.TargetCountryID || l.WinnerUID != last.PlayerID {
		t.Errorf("unexpected finish: winner %q, last guess %+v, target %q", l.WinnerUID, last, l.Classic.TargetCountryID)
	}

	updated, err := alice.RecordBest(ctx, profile.ScoreClassic, len(l.Classic.Guesses))
	if err != nil || !updated {
		t.Errorf("record best: updated=%v err=%v", updated, err)
	}
}

// Both players let every question time out; the pacers alone drive the
// challenge to a scoreless draw.
func TestChallengeDrivenByPacers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	base := newAPI(t)
	alice := registered(t, base, "Alice")
	bob := registered(t, base, "Bob")

	l, err := alice.CreateLobby(ctx, lobby.ModeChallenge)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := bob.Join(ctx, l.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	aliceMe, _ := alice.Me(ctx)
	bobMe, _ := bob.Me(ctx)

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range []struct {
		c   *client.Client
		uid string
	}{{alice, aliceMe.ID}, {bob, bobMe.ID}} {
		updates, err := p.c.Watch(gctx, l.ID)
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
		pacer := roundclock.New(p.uid, p.c.Round(l.ID), slog.New(slog.NewTextHandler(io.Discard, nil)),
			roundclock.WithDeadline(20*time.Millisecond),
			roundclock.WithReveal(5*time.Millisecond),
		)
		g.Go(func() error { return pacer.Run(gctx, updates) })
	}

	if _, err := alice.Start(ctx, l.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("pacers: %v", err)
	}

	final, err := bob.Lobby(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if final.Status != lobby.StatusFinished || final.WinnerUID != lobby.Draw {
		t.Fatalf("status %q winner %q, want finished draw", final.Status, final.WinnerUID)
	}
	if got := len(final.Challenge.Questions); got != lobby.QuestionCount {
		t.Errorf("finished with %d questions visible, want %d", got, lobby.QuestionCount)
	}
	for uid, score := range final.Challenge.PlayerScores {
		if score != 0 {
			t.Errorf("%s scored %d with only timeouts", uid, score)
		}
	}
}

func TestWatchReadsLargeSnapshots(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := docstore.NewMemory()
	base := newAPIWithStore(t, store)
	alice := registered(t, base, "Alice")

	l, err := alice.CreateLobby(ctx, lobby.ModeClassic)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const n = 600
	guesses := make([]lobby.Guess, n)
	for i := range guesses {
		guesses[i] = lobby.Guess{
			PlayerID:           "someone",
			GuessedCountryID:   "NO",
			GuessedCountryName: strings.Repeat("n", 100),
		}
	}
	if _, err := store.UpdateFields(ctx, lobby.Collection, l.ID, docstore.Fields{"classic.guesses": guesses}); err != nil {
		t.Fatalf("seed guesses: %v", err)
	}

	snaps, err := alice.Watch(ctx, l.ID)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	select {
	case got, ok := <-snaps:
		if !ok {
			t.Fatal("stream closed before the first snapshot")
		}
		if len(got.Classic.Guesses) != n {
			t.Fatalf("expected %d guesses, got %d", n, len(got.Classic.Guesses))
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for snapshot")
	}
}
