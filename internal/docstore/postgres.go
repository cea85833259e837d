package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresBackend keeps documents in a JSONB table. Patches lock the row
// with FOR UPDATE and apply the writes in Go.
type postgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgres creates the documents table if needed and returns a store
// backed by pool.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT        NOT NULL,
			id         TEXT        NOT NULL,
			version    BIGINT      NOT NULL,
			data       JSONB       NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return nil, fmt.Errorf("creating documents table: %w", err)
	}
	return newStore(&postgresBackend{pool: pool}, opts...), nil
}

func (b *postgresBackend) get(ctx context.Context, collection, id string) (Snapshot, error) {
	row := b.pool.QueryRow(ctx,
		`SELECT version, data, updated_at FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	snap, err := scanPostgres(row, collection, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, notFound(collection, id)
	}
	return snap, err
}

func (b *postgresBackend) insert(ctx context.Context, collection, id string, data []byte, now time.Time) (Snapshot, error) {
	row := b.pool.QueryRow(ctx,
		`INSERT INTO documents (collection, id, version, data, created_at, updated_at)
		 VALUES ($1, $2, 1, $3::jsonb, $4, $4)
		 ON CONFLICT (collection, id) DO NOTHING
		 RETURNING version, data, updated_at`,
		collection, id, string(data), now,
	)
	snap, err := scanPostgres(row, collection, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, alreadyExists(collection, id)
	}
	return snap, err
}

func (b *postgresBackend) patch(ctx context.Context, collection, id string, writes []write, ifVersion int64, now time.Time) (Snapshot, error) {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	defer tx.Rollback(ctx)

	var (
		version int64
		data    []byte
	)
	err = tx.QueryRow(ctx,
		`SELECT version, data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
		collection, id,
	).Scan(&version, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, notFound(collection, id)
	}
	if err != nil {
		return Snapshot{}, err
	}
	if ifVersion != 0 && version != ifVersion {
		return Snapshot{}, errVersionMismatch
	}

	patched, err := applyWrites(data, writes)
	if err != nil {
		return Snapshot{}, err
	}
	row := tx.QueryRow(ctx,
		`UPDATE documents SET data = $3::jsonb, version = version + 1, updated_at = $4
		 WHERE collection = $1 AND id = $2
		 RETURNING version, data, updated_at`,
		collection, id, string(patched), now,
	)
	snap, err := scanPostgres(row, collection, id)
	if err != nil {
		return Snapshot{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (b *postgresBackend) list(ctx context.Context, collection string, limit int) ([]Snapshot, error) {
	var limitArg *int
	if limit > 0 {
		limitArg = &limit
	}
	rows, err := b.pool.Query(ctx,
		`SELECT id, version, data, updated_at FROM documents
		 WHERE collection = $1 ORDER BY updated_at DESC, id LIMIT $2`,
		collection, limitArg,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap := Snapshot{Collection: collection}
		var data []byte
		if err := rows.Scan(&snap.ID, &snap.Version, &data, &snap.UpdatedAt); err != nil {
			return nil, err
		}
		snap.Data = data
		out = append(out, snap)
	}
	return out, rows.Err()
}

func scanPostgres(row pgx.Row, collection, id string) (Snapshot, error) {
	snap := Snapshot{Collection: collection, ID: id}
	var data []byte
	if err := row.Scan(&snap.Version, &data, &snap.UpdatedAt); err != nil {
		return Snapshot{}, err
	}
	snap.Data = data
	snap.UpdatedAt = snap.UpdatedAt.UTC()
	return snap, nil
}
