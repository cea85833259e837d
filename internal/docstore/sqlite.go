package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// sqliteBackend stores documents as JSONB in the documents table created
// by the migrations package. Field writes run as a single json_set
// statement, so concurrent writers to disjoint paths never lose data.
type sqliteBackend struct {
	db *sql.DB
}

// NewSQLite returns a store on top of a migrated libSQL database.
func NewSQLite(db *sql.DB, opts ...Option) *Store {
	return newStore(&sqliteBackend{db: db}, opts...)
}

func (b *sqliteBackend) get(ctx context.Context, collection, id string) (Snapshot, error) {
	row := b.db.QueryRowContext(ctx,
		`SELECT version, json(data), updated_at FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	snap, err := scanSQLite(row, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, notFound(collection, id)
	}
	return snap, err
}

func (b *sqliteBackend) insert(ctx context.Context, collection, id string, data []byte, now time.Time) (Snapshot, error) {
	ts := now.Format(timeLayout)
	row := b.db.QueryRowContext(ctx,
		`INSERT INTO documents (collection, id, version, data, created_at, updated_at)
		 VALUES (?, ?, 1, jsonb(?), ?, ?)
		 ON CONFLICT(collection, id) DO NOTHING
		 RETURNING version, json(data), updated_at`,
		collection, id, string(data), ts, ts,
	)
	snap, err := scanSQLite(row, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, alreadyExists(collection, id)
	}
	return snap, err
}

func (b *sqliteBackend) patch(ctx context.Context, collection, id string, writes []write, ifVersion int64, now time.Time) (Snapshot, error) {
	var expr strings.Builder
	args := make([]any, 0, 2*len(writes)+5)
	expr.WriteString("json_set(json(data)")
	// json_set skips keys under a missing or non-object parent, so every
	// parent is first reset to its current object or to {}.
	for _, parent := range parentPaths(writes) {
		expr.WriteString(", ?, json(CASE WHEN json_type(data, ?) = 'object' THEN json_extract(data, ?) ELSE '{}' END)")
		args = append(args, parent, parent, parent)
	}
	for _, w := range writes {
		expr.WriteString(", ?, json(?)")
		args = append(args, sqlitePath(w.path), string(w.value))
	}
	expr.WriteString(")")

	query := fmt.Sprintf(
		`UPDATE documents SET data = jsonb(%s), version = version + 1, updated_at = ?
		 WHERE collection = ? AND id = ? AND (? = 0 OR version = ?)
		 RETURNING version, json(data), updated_at`,
		expr.String(),
	)
	args = append(args, now.Format(timeLayout), collection, id, ifVersion, ifVersion)

	snap, err := scanSQLite(b.db.QueryRowContext(ctx, query, args...), collection, id)
	if !errors.Is(err, sql.ErrNoRows) {
		return snap, err
	}
	// Nothing matched: either the document is gone or the guard failed.
	if _, err := b.get(ctx, collection, id); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{}, errVersionMismatch
}

func (b *sqliteBackend) list(ctx context.Context, collection string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, version, json(data), updated_at FROM documents
		 WHERE collection = ? ORDER BY updated_at DESC, id LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap    = Snapshot{Collection: collection}
			data    string
			updated string
		)
		if err := rows.Scan(&snap.ID, &snap.Version, &data, &updated); err != nil {
			return nil, err
		}
		snap.Data = []byte(data)
		snap.UpdatedAt, _ = time.Parse(timeLayout, updated)
		out = append(out, snap)
	}
	return out, rows.Err()
}

func scanSQLite(row *sql.Row, collection, id string) (Snapshot, error) {
	var (
		snap    = Snapshot{Collection: collection, ID: id}
		data    string
		updated string
	)
	if err := row.Scan(&snap.Version, &data, &updated); err != nil {
		return Snapshot{}, err
	}
	snap.Data = []byte(data)
	snap.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return snap, nil
}

// parentPaths lists the distinct intermediate paths of writes, shorter
// paths first.
func parentPaths(writes []write) []string {
	seen := make(map[string]bool)
	var out [][]string
	for _, w := range writes {
		for n := 1; n < len(w.path); n++ {
			key := Path(w.path[:n]...)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, w.path[:n])
		}
	}
	slices.SortStableFunc(out, func(a, b []string) int { return len(a) - len(b) })

	paths := make([]string, len(out))
	for i, segs := range out {
		paths[i] = sqlitePath(segs)
	}
	return paths
}

// sqlitePath renders segments as a JSON path with every label quoted.
func sqlitePath(segs []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, s := range segs {
		b.WriteString(`."`)
		b.WriteString(s)
		b.WriteString(`"`)
	}
	return b.String()
}
