package profile_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/profile"
)

func newService() *profile.Service {
	return profile.NewService(docstore.NewMemory(), slog.Default())
}

func TestRegisterAndToken(t *testing.T) {
	ctx := context.Background()
	s := newService()

	p, token, err := s.Register(ctx, "Maria", "avatar3")
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.NotEmpty(t, token)
	require.Equal(t, "https://picsum.photos/seed/avatar3/128/128", p.AvatarURL)
	require.Nil(t, p.BestClassicScore)

	got, err := s.FromToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = s.FromToken(ctx, "nope")
	require.ErrorIs(t, err, profile.ErrNoSession)
	_, err = s.FromToken(ctx, "")
	require.ErrorIs(t, err, profile.ErrNoSession)

	_, _, err = s.Register(ctx, "Maria", "avatar99")
	require.ErrorIs(t, err, profile.ErrUnknownAvatar)
}

func TestRecordBest(t *testing.T) {
	ctx := context.Background()
	s := newService()
	p, _, err := s.Register(ctx, "Maria", "avatar1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		kind    profile.ScoreKind
		score   int
		updated bool
	}{
		{"first classic win", profile.ScoreClassic, 6, true},
		{"worse classic", profile.ScoreClassic, 8, false},
		{"equal classic", profile.ScoreClassic, 6, false},
		{"better classic", profile.ScoreClassic, 3, true},
		{"zero quiz", profile.ScoreWorldQuiz, 0, false},
		{"first quiz", profile.ScoreWorldQuiz, 7, true},
		{"worse quiz", profile.ScoreWorldQuiz, 5, false},
		{"better quiz", profile.ScoreWorldQuiz, 9, true},
	}
	for _, tt := range tests {
		_, updated, err := s.RecordBest(ctx, p.ID, tt.kind, tt.score)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.updated, updated, tt.name)
	}

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BestClassicScore)
	require.Equal(t, 3, *got.BestClassicScore)
	require.Equal(t, 9, got.BestWorldQuizScore)

	_, _, err = s.RecordBest(ctx, p.ID, "speedrun", 1)
	require.ErrorIs(t, err, profile.ErrUnknownScore)
	_, _, err = s.RecordBest(ctx, "missing", profile.ScoreClassic, 1)
	require.ErrorIs(t, err, profile.ErrNotFound)
}

func TestSetAvatar(t *testing.T) {
	ctx := context.Background()
	s := newService()
	p, _, err := s.Register(ctx, "Maria", "avatar1")
	require.NoError(t, err)

	got, err := s.SetAvatar(ctx, p.ID, "avatar8")
	require.NoError(t, err)
	require.Equal(t, "avatar8", got.AvatarID)
	require.Equal(t, "https://picsum.photos/seed/avatar8/128/128", got.AvatarURL)

	_, err = s.SetAvatar(ctx, p.ID, "avatar0")
	require.ErrorIs(t, err, profile.ErrUnknownAvatar)
}

func TestAvatars(t *testing.T) {
	all := profile.Avatars()
	require.Len(t, all, 8)
	all[0].ID = "changed"
	a, ok := profile.AvatarByID("avatar1")
	require.True(t, ok)
	require.Equal(t, "explorer", a.Hint)
}

func TestRegisterSessionFailureNamesUser(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	_, err := store.Create(ctx, profile.SessionsCollection, "taken", map[string]string{"userId": "someone"})
	require.NoError(t, err)

	var logs bytes.Buffer
	s := profile.NewService(store, slog.New(slog.NewTextHandler(&logs, nil)),
		profile.WithTokens(func() string { return "taken" }))

	_, _, regErr := s.Register(ctx, "Maria", "avatar3")
	require.ErrorIs(t, regErr, docstore.ErrAlreadyExists)

	users, err := store.List(ctx, profile.UsersCollection, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Contains(t, regErr.Error(), users[0].ID)
	require.Contains(t, logs.String(), "user_id="+users[0].ID)
}
