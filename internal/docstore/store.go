// Package docstore is a versioned JSON document store with field-path
// updates, optimistic transactions and a per-document change feed.
//
// Documents are addressed by collection and id. Every write bumps the
// document version by one and publishes the new snapshot to subscribers.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
	ErrConflict      = errors.New("transaction conflict")
	ErrInvalidPath   = errors.New("invalid field path")

	// errVersionMismatch is returned by a backend when a guarded write
	// lost the race. Store turns it into a retry.
	errVersionMismatch = errors.New("version mismatch")
)

// DefaultMaxAttempts bounds how often RunTransaction re-runs its function.
const DefaultMaxAttempts = 5

// Snapshot is one committed version of a document.
type Snapshot struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Version    int64           `json:"version"`
	Data       json.RawMessage `json:"data"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (s Snapshot) Decode(v any) error {
	if err := json.Unmarshal(s.Data, v); err != nil {
		return fmt.Errorf("decoding %s/%s: %w", s.Collection, s.ID, err)
	}
	return nil
}

// Fields maps dotted field paths to new values.
type Fields map[string]any

// TxFunc inspects the current snapshot and returns the writes to commit.
// Returning nil Fields commits nothing. Returning an error aborts.
type TxFunc func(Snapshot) (Fields, error)

type backend interface {
	get(ctx context.Context, collection, id string) (Snapshot, error)
	insert(ctx context.Context, collection, id string, data []byte, now time.Time) (Snapshot, error)
	// patch applies writes. A non-zero ifVersion guards the write and
	// yields errVersionMismatch when the stored version differs.
	patch(ctx context.Context, collection, id string, writes []write, ifVersion int64, now time.Time) (Snapshot, error)
	list(ctx context.Context, collection string, limit int) ([]Snapshot, error)
}

// Feed fans committed snapshots out beyond this process.
type Feed interface {
	Publish(ctx context.Context, snap Snapshot) error
}

type Option func(*Store)

func WithMaxAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithFeed publishes every commit to f in addition to local subscribers.
func WithFeed(f Feed) Option {
	return func(s *Store) { s.feed = f }
}

type Store struct {
	backend     backend
	broker      *broker
	feed        Feed
	maxAttempts int
	logger      *slog.Logger
	now         func() time.Time
}

func newStore(b backend, opts ...Option) *Store {
	s := &Store{
		backend:     b,
		broker:      newBroker(),
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	return s.backend.get(ctx, collection, id)
}

// Create inserts a new document. It never overwrites: an existing id
// yields ErrAlreadyExists.
func (s *Store) Create(ctx context.Context, collection, id string, doc any) (Snapshot, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding %s/%s: %w", collection, id, err)
	}
	snap, err := s.backend.insert(ctx, collection, id, data, s.now())
	if err != nil {
		return Snapshot{}, err
	}
	s.publish(ctx, snap)
	return snap, nil
}

// UpdateFields writes the given paths in one atomic step without a
// version guard. Writes to disjoint paths never clobber each other.
func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields Fields) (Snapshot, error) {
	writes, err := compile(fields)
	if err != nil {
		return Snapshot{}, err
	}
	if len(writes) == 0 {
		return s.Get(ctx, collection, id)
	}
	snap, err := s.backend.patch(ctx, collection, id, writes, 0, s.now())
	if err != nil {
		return Snapshot{}, err
	}
	s.publish(ctx, snap)
	return snap, nil
}

// RunTransaction reads the document, calls fn and commits its writes only
// if no other write landed in between. On a lost race it re-reads and
// re-runs fn, up to the configured attempt limit, then fails with
// ErrConflict. fn may run more than once and must not have side effects.
func (s *Store) RunTransaction(ctx context.Context, collection, id string, fn TxFunc) (Snapshot, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}

		snap, err := s.backend.get(ctx, collection, id)
		if err != nil {
			return Snapshot{}, err
		}

		fields, err := fn(snap)
		if err != nil {
			return Snapshot{}, err
		}
		writes, err := compile(fields)
		if err != nil {
			return Snapshot{}, err
		}
		if len(writes) == 0 {
			return snap, nil
		}

		next, err := s.backend.patch(ctx, collection, id, writes, snap.Version, s.now())
		if errors.Is(err, errVersionMismatch) {
			s.logger.Debug("transaction retry",
				"collection", collection,
				"id", id,
				"attempt", attempt,
				"version", snap.Version,
			)
			continue
		}
		if err != nil {
			return Snapshot{}, err
		}
		s.publish(ctx, next)
		return next, nil
	}
	return Snapshot{}, fmt.Errorf("%s/%s after %d attempts: %w", collection, id, s.maxAttempts, ErrConflict)
}

// List returns up to limit documents of a collection, most recently
// updated first. A limit of zero or less means no limit.
func (s *Store) List(ctx context.Context, collection string, limit int) ([]Snapshot, error) {
	return s.backend.list(ctx, collection, limit)
}

// Subscribe streams snapshots of one document until ctx is done. The
// current snapshot is sent first. A slow reader may skip intermediate
// versions but always receives the latest, and versions never go
// backwards.
func (s *Store) Subscribe(ctx context.Context, collection, id string) (<-chan Snapshot, error) {
	key := docKey(collection, id)
	sub := s.broker.subscribe(key)

	current, err := s.backend.get(ctx, collection, id)
	if err != nil {
		s.broker.unsubscribe(key, sub)
		return nil, err
	}

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		defer s.broker.unsubscribe(key, sub)

		pending, havePending := current, true
		last := current.Version
		for {
			var send chan Snapshot
			if havePending {
				send = out
			}
			select {
			case <-ctx.Done():
				return
			case snap := <-sub:
				if snap.Version > last {
					pending, havePending = snap, true
					last = snap.Version
				}
			case send <- pending:
				havePending = false
			}
		}
	}()
	return out, nil
}

// Deliver hands a snapshot committed elsewhere to local subscribers.
func (s *Store) Deliver(snap Snapshot) {
	s.broker.publish(docKey(snap.Collection, snap.ID), snap)
}

func (s *Store) publish(ctx context.Context, snap Snapshot) {
	s.broker.publish(docKey(snap.Collection, snap.ID), snap)
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(context.WithoutCancel(ctx), snap); err != nil {
		s.logger.Error("publishing snapshot",
			"collection", snap.Collection,
			"id", snap.ID,
			"version", snap.Version,
			"error", err,
		)
	}
}

func docKey(collection, id string) string { return collection + "/" + id }

func notFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
}

func alreadyExists(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
}
