// Package profile stores player profiles and bearer sessions as documents.
package profile

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playperu/geoduel/internal/docstore"
)

const (
	UsersCollection    = "users"
	SessionsCollection = "sessions"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrNoSession     = errors.New("no valid session")
	ErrUnknownAvatar = errors.New("unknown avatar")
	ErrUnknownScore  = errors.New("unknown score kind")
)

type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarID  string `json:"avatarId"`
	AvatarURL string `json:"avatarUrl"`
	// BestClassicScore is the fewest guesses needed to win, unset until
	// the first win.
	BestClassicScore   *int `json:"bestClassicScore,omitempty"`
	BestWorldQuizScore int  `json:"bestWorldQuizScore"`
}

type session struct {
	UserID string `json:"userId"`
}

type Service struct {
	store    *docstore.Store
	logger   *slog.Logger
	newToken func() string
}

type Option func(*Service)

// WithTokens replaces the random session token generator.
func WithTokens(gen func() string) Option {
	return func(s *Service) { s.newToken = gen }
}

func NewService(store *docstore.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger, newToken: newToken}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a profile and a session for it, returning the bearer
// token.
func (s *Service) Register(ctx context.Context, username, avatarID string) (Profile, string, error) {
	avatar, ok := AvatarByID(avatarID)
	if !ok {
		return Profile{}, "", fmt.Errorf("%q: %w", avatarID, ErrUnknownAvatar)
	}

	p := Profile{
		ID:        uuid.NewString(),
		Username:  username,
		AvatarID:  avatar.ID,
		AvatarURL: avatar.ImageURL,
	}
	if _, err := s.store.Create(ctx, UsersCollection, p.ID, p); err != nil {
		return Profile{}, "", fmt.Errorf("creating profile: %w", err)
	}

	token := s.newToken()
	if _, err := s.store.Create(ctx, SessionsCollection, token, session{UserID: p.ID}); err != nil {
		s.logger.Error("profile left without session", "user_id", p.ID, "error", err)
		return Profile{}, "", fmt.Errorf("creating session for user %s: %w", p.ID, err)
	}
	s.logger.Info("profile registered", "user_id", p.ID)
	return p, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	snap, err := s.store.Get(ctx, UsersCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Profile{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := snap.Decode(&p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) FromToken(ctx context.Context, token string) (Profile, error) {
	if token == "" {
		return Profile{}, ErrNoSession
	}
	snap, err := s.store.Get(ctx, SessionsCollection, token)
	if errors.Is(err, docstore.ErrNotFound) {
		return Profile{}, ErrNoSession
	}
	if err != nil {
		return Profile{}, err
	}
	var sess session
	if err := snap.Decode(&sess); err != nil {
		return Profile{}, err
	}
	return s.Get(ctx, sess.UserID)
}

// SetAvatar changes the profile picture.
func (s *Service) SetAvatar(ctx context.Context, id, avatarID string) (Profile, error) {
	avatar, ok := AvatarByID(avatarID)
	if !ok {
		return Profile{}, fmt.Errorf("%q: %w", avatarID, ErrUnknownAvatar)
	}
	snap, err := s.store.UpdateFields(ctx, UsersCollection, id, docstore.Fields{
		"avatarId":  avatar.ID,
		"avatarUrl": avatar.ImageURL,
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return Profile{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := snap.Decode(&p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

type ScoreKind string

const (
	// ScoreClassic counts guesses; fewer is better.
	ScoreClassic ScoreKind = "classic"
	// ScoreWorldQuiz counts correct answers; more is better.
	ScoreWorldQuiz ScoreKind = "challenge"
)

// RecordBest stores score if it beats the current best. It is a plain
// read then write: concurrent updates to the same profile may lose one.
func (s *Service) RecordBest(ctx context.Context, id string, kind ScoreKind, score int) (Profile, bool, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, false, err
	}

	var field string
	switch kind {
	case ScoreClassic:
		if p.BestClassicScore != nil && score >= *p.BestClassicScore {
			return p, false, nil
		}
		field = "bestClassicScore"
		p.BestClassicScore = &score
	case ScoreWorldQuiz:
		if score <= p.BestWorldQuizScore {
			return p, false, nil
		}
		field = "bestWorldQuizScore"
		p.BestWorldQuizScore = score
	default:
		return Profile{}, false, fmt.Errorf("%q: %w", kind, ErrUnknownScore)
	}

	if _, err := s.store.UpdateFields(ctx, UsersCollection, id, docstore.Fields{field: score}); err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func newToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
