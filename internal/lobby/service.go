package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/trivia"
)

// maxPINAttempts bounds the search for an unused PIN.
const maxPINAttempts = 20

type Option func(*Service)

// WithRand replaces the random source used for PINs, targets and
// questions.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	store  *docstore.Store
	atlas  *geo.Atlas
	logger *slog.Logger
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(store *docstore.Store, atlas *geo.Atlas, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		atlas:  atlas,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) withRand(fn func(*rand.Rand)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.rng)
}

// Create opens a new lobby hosted by host. The PIN is checked for
// collisions first; since the insert itself never overwrites, a lost race
// for the same PIN only costs another attempt.
func (s *Service) Create(ctx context.Context, host Player, mode Mode) (Lobby, error) {
	if !mode.Valid() {
		return Lobby{}, fmt.Errorf("mode %q: %w", mode, ErrWrongMode)
	}

	l := Lobby{
		HostID:    host.UID,
		GameMode:  mode,
		Status:    StatusWaiting,
		Players:   []Player{host},
		CreatedAt: s.now(),
	}
	switch mode {
	case ModeClassic:
		var target geo.Country
		s.withRand(func(rng *rand.Rand) {
			all := s.atlas.All()
			target = all[rng.IntN(len(all))]
		})
		l.Classic = &Classic{TargetCountryID: target.ID, Guesses: []Guess{}}
	case ModeChallenge:
		l.Challenge = &Challenge{
			QuestionTypes:  append([]trivia.Type(nil), trivia.DefaultTypes...),
			PlayerScores:   map[string]int{},
			CurrentAnswers: map[string]Answer{},
		}
	}

	for attempt := 0; attempt < maxPINAttempts; attempt++ {
		var pin string
		s.withRand(func(rng *rand.Rand) { pin = newPIN(rng) })

		_, err := s.store.Get(ctx, Collection, pin)
		if err == nil {
			continue
		}
		if !errors.Is(err, docstore.ErrNotFound) {
			return Lobby{}, fmt.Errorf("checking pin: %w", err)
		}

		l.ID = pin
		snap, err := s.store.Create(ctx, Collection, pin, l)
		if errors.Is(err, docstore.ErrAlreadyExists) {
			s.logger.Warn("lobby pin taken between check and create", "pin", pin)
			continue
		}
		if err != nil {
			return Lobby{}, fmt.Errorf("creating lobby: %w", err)
		}
		s.logger.Info("lobby created", "pin", pin, "mode", mode, "host", host.UID)
		return decode(snap)
	}
	return Lobby{}, ErrNoFreePIN
}

func (s *Service) Get(ctx context.Context, pin string) (Lobby, error) {
	snap, err := s.store.Get(ctx, Collection, pin)
	if err != nil {
		return Lobby{}, storeErr(pin, err)
	}
	return decode(snap)
}

func (s *Service) Join(ctx context.Context, pin string, p Player) (Lobby, error) {
	return s.transact(ctx, pin, func(l Lobby) (docstore.Fields, error) {
		return joinFields(l, p)
	})
}

// SetQuestionTypes overwrites the enabled question types. Only the host
// writes this field, so no transaction is used.
func (s *Service) SetQuestionTypes(ctx context.Context, pin, uid string, types []trivia.Type) (Lobby, error) {
	l, err := s.Get(ctx, pin)
	if err != nil {
		return Lobby{}, err
	}
	fields, err := questionTypesFields(l, uid, types)
	if err != nil {
		return Lobby{}, err
	}
	return s.update(ctx, pin, fields)
}

// Start moves a full lobby from waiting to playing. Only the host
// triggers it, so a plain read then update is enough.
func (s *Service) Start(ctx context.Context, pin, uid string) (Lobby, error) {
	l, err := s.Get(ctx, pin)
	if err != nil {
		return Lobby{}, err
	}
	fields, err := startFields(l, uid, s.batch)
	if err != nil {
		return Lobby{}, err
	}
	out, err := s.update(ctx, pin, fields)
	if err != nil {
		return Lobby{}, err
	}
	s.logger.Info("lobby started", "pin", pin, "mode", l.GameMode)
	return out, nil
}

func (s *Service) batch(types []trivia.Type) []trivia.Question {
	var qs []trivia.Question
	s.withRand(func(rng *rand.Rand) {
		qs = trivia.Batch(rng, s.atlas.All(), types, QuestionCount)
	})
	return qs
}

func (s *Service) SubmitGuess(ctx context.Context, pin, uid, name string, lang geo.Language) (Lobby, error) {
	return s.transact(ctx, pin, func(l Lobby) (docstore.Fields, error) {
		return guessFields(l, s.atlas, uid, name, lang)
	})
}

// SubmitAnswer records uid's pick for the current round. Only the
// submitter's own answer key is written, so both players can answer at
// once.
func (s *Service) SubmitAnswer(ctx context.Context, pin, uid, optionID string) (Lobby, error) {
	return s.transact(ctx, pin, func(l Lobby) (docstore.Fields, error) {
		return answerFields(l, uid, optionID)
	})
}

// AdvanceRound scores the current round and moves on, or finishes the
// game after the last question. Safe to call from any client any number
// of times.
func (s *Service) AdvanceRound(ctx context.Context, pin string) (Lobby, error) {
	return s.transact(ctx, pin, advanceFields)
}

// Subscribe streams decoded lobby snapshots until ctx is done.
func (s *Service) Subscribe(ctx context.Context, pin string) (<-chan Lobby, error) {
	snaps, err := s.store.Subscribe(ctx, Collection, pin)
	if err != nil {
		return nil, storeErr(pin, err)
	}
	out := make(chan Lobby)
	go func() {
		defer close(out)
		for snap := range snaps {
			l, err := decode(snap)
			if err != nil {
				s.logger.Error("decoding lobby snapshot", "pin", pin, "version", snap.Version, "error", err)
				continue
			}
			select {
			case out <- l:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// List returns the most recently updated lobbies.
func (s *Service) List(ctx context.Context, limit int) ([]Lobby, error) {
	snaps, err := s.store.List(ctx, Collection, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Lobby, 0, len(snaps))
	for _, snap := range snaps {
		l, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Service) transact(ctx context.Context, pin string, fn func(Lobby) (docstore.Fields, error)) (Lobby, error) {
	snap, err := s.store.RunTransaction(ctx, Collection, pin, func(snap docstore.Snapshot) (docstore.Fields, error) {
		l, err := decode(snap)
		if err != nil {
			return nil, err
		}
		return fn(l)
	})
	if err != nil {
		return Lobby{}, storeErr(pin, err)
	}
	return decode(snap)
}

func (s *Service) update(ctx context.Context, pin string, fields docstore.Fields) (Lobby, error) {
	snap, err := s.store.UpdateFields(ctx, Collection, pin, fields)
	if err != nil {
		return Lobby{}, storeErr(pin, err)
	}
	return decode(snap)
}

func decode(snap docstore.Snapshot) (Lobby, error) {
	var l Lobby
	if err := snap.Decode(&l); err != nil {
		return Lobby{}, err
	}
	l.Version = snap.Version
	return l, nil
}

func storeErr(pin string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("lobby %s: %w", pin, ErrNotFound)
	}
	return err
}
