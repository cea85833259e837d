package lobby

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/geoduel/internal/database"
	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/migrations"
	"github.com/playperu/geoduel/internal/trivia"
)

var (
	alice = Player{UID: "alice", Username: "Alice", AvatarURL: "https://picsum.photos/seed/avatar1/128/128"}
	bob   = Player{UID: "bob", Username: "Bob", AvatarURL: "https://picsum.photos/seed/avatar2/128/128"}
	carol = Player{UID: "carol", Username: "Carol", AvatarURL: "https://picsum.photos/seed/avatar3/128/128"}
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(42, 1)))}, opts...)
	return NewService(docstore.NewMemory(docstore.WithMaxAttempts(50)), geo.Default(), slog.Default(), opts...)
}

// startedLobby creates a lobby, joins bob and starts it.
func startedLobby(t *testing.T, s *Service, mode Mode) Lobby {
	t.Helper()
	ctx := context.Background()
	l, err := s.Create(ctx, alice, mode)
	require.NoError(t, err)
	_, err = s.Join(ctx, l.ID, bob)
	require.NoError(t, err)
	l, err = s.Start(ctx, l.ID, alice.UID)
	require.NoError(t, err)
	return l
}

func wrongCountry(t *testing.T, targetID string, skip int) geo.Country {
	t.Helper()
	for _, c := range geo.Default().All() {
		if c.ID == targetID {
			continue
		}
		if skip == 0 {
			return c
		}
		skip--
	}
	t.Fatal("dataset too small")
	return geo.Country{}
}

func wrongOption(t *testing.T, q trivia.Question) string {
	t.Helper()
	for _, id := range q.OptionIDs {
		if id != q.CorrectAnswerID {
			return id
		}
	}
	t.Fatal("question has no distractor")
	return ""
}

func TestCreateClassic(t *testing.T) {
	s := newTestService(t)
	l, err := s.Create(context.Background(), alice, ModeClassic)
	require.NoError(t, err)

	require.True(t, ValidPIN(l.ID), "pin %q", l.ID)
	require.Equal(t, StatusWaiting, l.Status)
	require.Equal(t, []Player{alice}, l.Players)
	require.Equal(t, alice.UID, l.HostID)
	require.NotNil(t, l.Classic)
	require.Nil(t, l.Challenge)
	_, ok := geo.Default().ByID(l.Classic.TargetCountryID)
	require.True(t, ok, "target %q not in dataset", l.Classic.TargetCountryID)
	require.Empty(t, l.WinnerUID)
}

func TestCreateChallenge(t *testing.T) {
	s := newTestService(t)
	l, err := s.Create(context.Background(), alice, ModeChallenge)
	require.NoError(t, err)

	require.Nil(t, l.Classic)
	require.NotNil(t, l.Challenge)
	require.Equal(t, trivia.DefaultTypes, l.Challenge.QuestionTypes)
	require.Empty(t, l.Challenge.Questions)
}

func TestCreateRejectsUnknownMode(t *testing.T) {
	s := newTestService(t)
	_, err := s.Create(context.Background(), alice, "solo")
	require.ErrorIs(t, err, ErrWrongMode)
}

func TestCreateSkipsTakenPIN(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()

	probe := rand.New(rand.NewPCG(7, 7))
	taken, next := newPIN(probe), newPIN(probe)
	_, err := store.Create(ctx, Collection, taken, Lobby{ID: taken})
	require.NoError(t, err)

	s := NewService(store, geo.Default(), slog.Default(), WithRand(rand.New(rand.NewPCG(7, 7))))
	l, err := s.Create(ctx, alice, ModeChallenge)
	require.NoError(t, err)
	require.Equal(t, next, l.ID)
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l, err := s.Create(ctx, alice, ModeClassic)
	require.NoError(t, err)

	// Host rejoining is a no-op.
	same, err := s.Join(ctx, l.ID, alice)
	require.NoError(t, err)
	require.Equal(t, l.Version, same.Version)
	require.Len(t, same.Players, 1)

	joined, err := s.Join(ctx, l.ID, bob)
	require.NoError(t, err)
	require.Equal(t, []Player{alice, bob}, joined.Players)

	_, err = s.Join(ctx, l.ID, carol)
	require.ErrorIs(t, err, ErrFull)

	_, err = s.Join(ctx, "123456", carol)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJoinNotWaiting(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l, err := s.Create(ctx, alice, ModeClassic)
	require.NoError(t, err)

	_, err = s.store.UpdateFields(ctx, Collection, l.ID, docstore.Fields{"status": StatusPlaying})
	require.NoError(t, err)

	_, err = s.Join(ctx, l.ID, bob)
	require.ErrorIs(t, err, ErrNotJoinable)
}

func TestJoinCapacityUnderConcurrency(t *testing.T) {
	for _, name := range []string{"memory", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var store *docstore.Store
			if name == "memory" {
				store = docstore.NewMemory()
			} else {
				db, err := database.Open(ctx, filepath.Join(t.TempDir(), "lobby.db"))
				require.NoError(t, err)
				t.Cleanup(func() { db.Close() })
				require.NoError(t, migrations.Run(ctx, db))
				store = docstore.NewSQLite(db)
			}
			s := NewService(store, geo.Default(), slog.Default())

			for range 10 {
				l, err := s.Create(ctx, alice, ModeClassic)
				require.NoError(t, err)

				var ok, rejected atomic.Int32
				var g errgroup.Group
				for _, p := range []Player{bob, carol} {
					g.Go(func() error {
						_, err := s.Join(ctx, l.ID, p)
						switch {
						case err == nil:
							ok.Add(1)
						case errors.Is(err, ErrFull), errors.Is(err, ErrNotJoinable):
							rejected.Add(1)
						default:
							return err
						}
						return nil
					})
				}
				require.NoError(t, g.Wait())
				require.Equal(t, int32(1), ok.Load())
				require.Equal(t, int32(1), rejected.Load())

				got, err := s.Get(ctx, l.ID)
				require.NoError(t, err)
				require.Len(t, got.Players, MaxPlayers)
			}
		})
	}
}

func TestStartClassic(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l, err := s.Create(ctx, alice, ModeClassic)
	require.NoError(t, err)

	_, err = s.Start(ctx, l.ID, alice.UID)
	require.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, err = s.Join(ctx, l.ID, bob)
	require.NoError(t, err)

	_, err = s.Start(ctx, l.ID, bob.UID)
	require.ErrorIs(t, err, ErrNotHost)

	started, err := s.Start(ctx, l.ID, alice.UID)
	require.NoError(t, err)
	require.Equal(t, StatusPlaying, started.Status)
	require.Equal(t, alice.UID, started.Classic.CurrentPlayerUID)
	require.Equal(t, l.Classic.TargetCountryID, started.Classic.TargetCountryID)

	_, err = s.Start(ctx, l.ID, alice.UID)
	require.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestStartChallenge(t *testing.T) {
	s := newTestService(t)
	l := startedLobby(t, s, ModeChallenge)

	require.Equal(t, StatusPlaying, l.Status)
	c := l.Challenge
	require.Len(t, c.Questions, QuestionCount)
	require.Equal(t, 0, c.CurrentQuestionIndex)
	require.Equal(t, map[string]int{alice.UID: 0, bob.UID: 0}, c.PlayerScores)
	require.Empty(t, c.CurrentAnswers)

	seen := map[string]bool{}
	for _, q := range c.Questions {
		require.False(t, seen[q.Key()], "repeated question %s", q.Key())
		seen[q.Key()] = true
		require.Contains(t, trivia.DefaultTypes, q.Type)
	}
}

func TestSetQuestionTypes(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l, err := s.Create(ctx, alice, ModeChallenge)
	require.NoError(t, err)

	_, err = s.SetQuestionTypes(ctx, l.ID, bob.UID, []trivia.Type{trivia.Flag})
	require.ErrorIs(t, err, ErrNotHost)

	got, err := s.SetQuestionTypes(ctx, l.ID, alice.UID, []trivia.Type{trivia.Capital})
	require.NoError(t, err)
	require.Equal(t, []trivia.Type{trivia.Capital}, got.Challenge.QuestionTypes)

	_, err = s.Join(ctx, l.ID, bob)
	require.NoError(t, err)
	started, err := s.Start(ctx, l.ID, alice.UID)
	require.NoError(t, err)
	for _, q := range started.Challenge.Questions {
		require.Equal(t, trivia.Capital, q.Type)
		require.NotNil(t, q.Text)
	}

	_, err = s.SetQuestionTypes(ctx, l.ID, alice.UID, []trivia.Type{trivia.Flag})
	require.ErrorIs(t, err, ErrAlreadyStarted)

	classic, err := s.Create(ctx, alice, ModeClassic)
	require.NoError(t, err)
	_, err = s.SetQuestionTypes(ctx, classic.ID, alice.UID, []trivia.Type{trivia.Flag})
	require.ErrorIs(t, err, ErrWrongMode)
}

func TestEmptyQuestionTypesFallBackToFlags(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l, err := s.Create(ctx, alice, ModeChallenge)
	require.NoError(t, err)

	_, err = s.SetQuestionTypes(ctx, l.ID, alice.UID, nil)
	require.NoError(t, err)
	_, err = s.Join(ctx, l.ID, bob)
	require.NoError(t, err)
	started, err := s.Start(ctx, l.ID, alice.UID)
	require.NoError(t, err)

	for _, q := range started.Challenge.Questions {
		require.Equal(t, trivia.Flag, q.Type)
	}
}

func TestTurnAlternation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l := startedLobby(t, s, ModeClassic)
	target := l.Classic.TargetCountryID

	_, err := s.SubmitGuess(ctx, l.ID, bob.UID, wrongCountry(t, target, 0).Name.EN, geo.LangEN)
	require.ErrorIs(t, err, ErrNotYourTurn)

	_, err = s.SubmitGuess(ctx, l.ID, alice.UID, "Atlantis", geo.LangEN)
	require.ErrorIs(t, err, ErrInvalidGuess)

	turn := []Player{alice, bob}
	for i := range 6 {
		p := turn[i%2]
		c := wrongCountry(t, target, i)
		got, err := s.SubmitGuess(ctx, l.ID, p.UID, c.Name.HU, geo.LangHU)
		require.NoError(t, err)

		require.Len(t, got.Classic.Guesses, i+1)
		last := got.Classic.Guesses[i]
		require.Equal(t, p.UID, last.PlayerID)
		require.Equal(t, c.ID, last.GuessedCountryID)
		require.Equal(t, c.Name.HU, last.GuessedCountryName)
		require.False(t, last.IsCorrect)
		require.Equal(t, turn[(i+1)%2].UID, got.Classic.CurrentPlayerUID)
		require.Equal(t, StatusPlaying, got.Status)
	}

	targetCountry, _ := geo.Default().ByID(target)
	won, err := s.SubmitGuess(ctx, l.ID, alice.UID, targetCountry.Name.EN, geo.LangEN)
	require.NoError(t, err)
	require.Equal(t, StatusFinished, won.Status)
	require.Equal(t, alice.UID, won.WinnerUID)
	last := won.Classic.Guesses[len(won.Classic.Guesses)-1]
	require.True(t, last.IsCorrect)
	require.Equal(t, geo.ArrowCorrect, last.DirectionArrow)

	_, err = s.SubmitGuess(ctx, l.ID, bob.UID, targetCountry.Name.EN, geo.LangEN)
	require.ErrorIs(t, err, ErrGameNotActive)
}

func TestAtMostOneWinner(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	for range 10 {
		l := startedLobby(t, s, ModeClassic)
		target, _ := geo.Default().ByID(l.Classic.TargetCountryID)

		var wins atomic.Int32
		var g errgroup.Group
		for _, p := range []Player{alice, bob, alice, bob} {
			g.Go(func() error {
				_, err := s.SubmitGuess(ctx, l.ID, p.UID, target.Name.EN, geo.LangEN)
				switch {
				case err == nil:
					wins.Add(1)
				case errors.Is(err, ErrNotYourTurn), errors.Is(err, ErrGameNotActive):
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, int32(1), wins.Load())

		got, err := s.Get(ctx, l.ID)
		require.NoError(t, err)
		require.Equal(t, StatusFinished, got.Status)
		require.Equal(t, alice.UID, got.WinnerUID)
		require.Len(t, got.Classic.Guesses, 1)
	}
}

func TestSubmitAnswer(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l := startedLobby(t, s, ModeChallenge)
	q, _ := l.Challenge.CurrentQuestion()

	_, err := s.SubmitAnswer(ctx, l.ID, carol.UID, q.CorrectAnswerID)
	require.ErrorIs(t, err, ErrNotInLobby)

	got, err := s.SubmitAnswer(ctx, l.ID, alice.UID, q.CorrectAnswerID)
	require.NoError(t, err)
	require.Equal(t, Answer{AnswerID: q.CorrectAnswerID, IsCorrect: true}, got.Challenge.CurrentAnswers[alice.UID])

	_, err = s.SubmitAnswer(ctx, l.ID, alice.UID, wrongOption(t, q))
	require.ErrorIs(t, err, ErrAlreadyAnswered)
	require.True(t, Terminal(err))

	got, err = s.SubmitAnswer(ctx, l.ID, bob.UID, TimeoutOptionID)
	require.NoError(t, err)
	require.Equal(t, Answer{AnswerID: TimeoutOptionID}, got.Challenge.CurrentAnswers[bob.UID])

	classic := startedLobby(t, s, ModeClassic)
	_, err = s.SubmitAnswer(ctx, classic.ID, alice.UID, "NO")
	require.ErrorIs(t, err, ErrGameNotActive)
}

func TestSubmitAnswerMissingQuestions(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l := startedLobby(t, s, ModeChallenge)

	_, err := s.store.UpdateFields(ctx, Collection, l.ID, docstore.Fields{"challenge.currentQuestionIndex": 99})
	require.NoError(t, err)

	_, err = s.SubmitAnswer(ctx, l.ID, alice.UID, "NO")
	require.ErrorIs(t, err, ErrChallengeDataMissing)
}

func TestConcurrentAnswersBothLand(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	for range 10 {
		l := startedLobby(t, s, ModeChallenge)
		q, _ := l.Challenge.CurrentQuestion()
		wrong := wrongOption(t, q)

		var g errgroup.Group
		g.Go(func() error {
			_, err := s.SubmitAnswer(ctx, l.ID, alice.UID, q.CorrectAnswerID)
			return err
		})
		g.Go(func() error {
			_, err := s.SubmitAnswer(ctx, l.ID, bob.UID, wrong)
			return err
		})
		require.NoError(t, g.Wait())

		got, err := s.Get(ctx, l.ID)
		require.NoError(t, err)
		require.Len(t, got.Challenge.CurrentAnswers, 2)
		require.True(t, got.Challenge.CurrentAnswers[alice.UID].IsCorrect)
		require.False(t, got.Challenge.CurrentAnswers[bob.UID].IsCorrect)
	}
}

func TestAdvanceRoundIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	l := startedLobby(t, s, ModeChallenge)
	q, _ := l.Challenge.CurrentQuestion()

	_, err := s.SubmitAnswer(ctx, l.ID, alice.UID, q.CorrectAnswerID)
	require.NoError(t, err)

	// One answer is not enough.
	same, err := s.AdvanceRound(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, 0, same.Challenge.CurrentQuestionIndex)

	_, err = s.SubmitAnswer(ctx, l.ID, bob.UID, wrongOption(t, q))
	require.NoError(t, err)

	var g errgroup.Group
	for range 4 {
		g.Go(func() error {
			_, err := s.AdvanceRound(ctx, l.ID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := s.Get(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Challenge.CurrentQuestionIndex)
	require.Equal(t, map[string]int{alice.UID: 1, bob.UID: 0}, got.Challenge.PlayerScores)
	require.Empty(t, got.Challenge.CurrentAnswers)
	require.Equal(t, StatusPlaying, got.Status)

	again, err := s.AdvanceRound(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, got.Version, again.Version)
}

// playRounds answers every question; correct(i, uid) decides each pick.
func playRounds(t *testing.T, s *Service, l Lobby, correct func(i int, uid string) bool) Lobby {
	t.Helper()
	ctx := context.Background()
	for i := range QuestionCount {
		cur, err := s.Get(ctx, l.ID)
		require.NoError(t, err)
		require.Equal(t, i, cur.Challenge.CurrentQuestionIndex)
		q, _ := cur.Challenge.CurrentQuestion()

		for _, p := range []Player{alice, bob} {
			pick := wrongOption(t, q)
			if correct(i, p.UID) {
				pick = q.CorrectAnswerID
			}
			_, err := s.SubmitAnswer(ctx, l.ID, p.UID, pick)
			require.NoError(t, err)
		}
		_, err = s.AdvanceRound(ctx, l.ID)
		require.NoError(t, err)
	}
	final, err := s.Get(ctx, l.ID)
	require.NoError(t, err)
	return final
}

func TestChallengeDraw(t *testing.T) {
	s := newTestService(t)
	l := startedLobby(t, s, ModeChallenge)

	// Alice gets questions 1,3,5,7,9 right and Bob 2,4,6,8,10.
	final := playRounds(t, s, l, func(i int, uid string) bool {
		if uid == alice.UID {
			return i%2 == 0
		}
		return i%2 == 1
	})

	require.Equal(t, StatusFinished, final.Status)
	require.Equal(t, Draw, final.WinnerUID)
	require.Equal(t, map[string]int{alice.UID: 5, bob.UID: 5}, final.Challenge.PlayerScores)
	require.Empty(t, final.Challenge.CurrentAnswers)

	// Finished games ignore further advances and answers.
	after, err := s.AdvanceRound(context.Background(), l.ID)
	require.NoError(t, err)
	require.Equal(t, final.Version, after.Version)
	_, err = s.SubmitAnswer(context.Background(), l.ID, alice.UID, "NO")
	require.ErrorIs(t, err, ErrGameNotActive)
}

func TestChallengeWinner(t *testing.T) {
	s := newTestService(t)
	l := startedLobby(t, s, ModeChallenge)

	final := playRounds(t, s, l, func(i int, uid string) bool {
		return uid == bob.UID || i < 3
	})

	require.Equal(t, StatusFinished, final.Status)
	require.Equal(t, bob.UID, final.WinnerUID)
	require.Equal(t, map[string]int{alice.UID: 3, bob.UID: 10}, final.Challenge.PlayerScores)
}

func TestPublicView(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	classic := startedLobby(t, s, ModeClassic)
	require.Empty(t, classic.Public(alice.UID).Classic.TargetCountryID)
	require.NotEmpty(t, classic.Classic.TargetCountryID, "Public must not mutate the original")

	l := startedLobby(t, s, ModeChallenge)
	view := l.Public(alice.UID)
	require.Len(t, view.Challenge.Questions, 1)
	require.Empty(t, view.Challenge.Questions[0].CorrectAnswerID)
	require.Len(t, l.Challenge.Questions, QuestionCount)
	require.NotEmpty(t, l.Challenge.Questions[0].CorrectAnswerID)

	q, _ := l.Challenge.CurrentQuestion()
	l, err := s.SubmitAnswer(ctx, l.ID, bob.UID, q.CorrectAnswerID)
	require.NoError(t, err)

	view = l.Public(alice.UID)
	require.Equal(t, Answer{Hidden: true}, view.Challenge.CurrentAnswers[bob.UID])
	require.Equal(t, q.CorrectAnswerID, l.Public(bob.UID).Challenge.CurrentAnswers[bob.UID].AnswerID)

	l, err = s.SubmitAnswer(ctx, l.ID, alice.UID, q.CorrectAnswerID)
	require.NoError(t, err)

	view = l.Public(alice.UID)
	require.True(t, view.Challenge.CurrentAnswers[bob.UID].IsCorrect)
	require.Equal(t, q.CorrectAnswerID, view.Challenge.Questions[0].CorrectAnswerID)
}

func TestSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s := newTestService(t)

	l, err := s.Create(ctx, alice, ModeClassic)
	require.NoError(t, err)

	ch, err := s.Subscribe(ctx, l.ID)
	require.NoError(t, err)
	first := <-ch
	require.Len(t, first.Players, 1)

	_, err = s.Join(ctx, l.ID, bob)
	require.NoError(t, err)

	second := <-ch
	require.Len(t, second.Players, 2)
	require.Greater(t, second.Version, first.Version)

	_, err = s.Subscribe(ctx, "999999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrFull, "Full"},
		{errors.Join(errors.New("ctx"), ErrNotYourTurn), "NotYourTurn"},
		{docstore.ErrConflict, "TransactionConflict"},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestValidPIN(t *testing.T) {
	for pin, want := range map[string]bool{
		"100000": true,
		"999999": true,
		"099999": false,
		"12345":  false,
		"abcdef": false,
	} {
		if got := ValidPIN(pin); got != want {
			t.Errorf("ValidPIN(%q) = %v, want %v", pin, got, want)
		}
	}
}
