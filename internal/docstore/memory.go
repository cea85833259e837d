package docstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

type memDoc struct {
	version   int64
	data      []byte
	createdAt time.Time
	updatedAt time.Time
}

// memory keeps documents in a map guarded by a mutex. Transaction
// functions run outside the lock, so lost races surface exactly as they
// do against a database.
type memory struct {
	mu   sync.RWMutex
	docs map[string]*memDoc
}

// NewMemory returns a store that keeps everything in process memory.
func NewMemory(opts ...Option) *Store {
	return newStore(&memory{docs: make(map[string]*memDoc)}, opts...)
}

func (m *memory) get(_ context.Context, collection, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[docKey(collection, id)]
	if !ok {
		return Snapshot{}, notFound(collection, id)
	}
	return d.snapshot(collection, id), nil
}

func (m *memory) insert(_ context.Context, collection, id string, data []byte, now time.Time) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := docKey(collection, id)
	if _, ok := m.docs[key]; ok {
		return Snapshot{}, alreadyExists(collection, id)
	}
	d := &memDoc{version: 1, data: slices.Clone(data), createdAt: now, updatedAt: now}
	m.docs[key] = d
	return d.snapshot(collection, id), nil
}

func (m *memory) patch(_ context.Context, collection, id string, writes []write, ifVersion int64, now time.Time) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[docKey(collection, id)]
	if !ok {
		return Snapshot{}, notFound(collection, id)
	}
	if ifVersion != 0 && d.version != ifVersion {
		return Snapshot{}, errVersionMismatch
	}
	data, err := applyWrites(d.data, writes)
	if err != nil {
		return Snapshot{}, err
	}
	d.data = data
	d.version++
	d.updatedAt = now
	return d.snapshot(collection, id), nil
}

func (m *memory) list(_ context.Context, collection string, limit int) ([]Snapshot, error) {
	m.mu.RLock()
	var out []Snapshot
	prefix := collection + "/"
	for key, d := range m.docs {
		if id, ok := strings.CutPrefix(key, prefix); ok {
			out = append(out, d.snapshot(collection, id))
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Snapshot) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (d *memDoc) snapshot(collection, id string) Snapshot {
	return Snapshot{
		Collection: collection,
		ID:         id,
		Version:    d.version,
		Data:       slices.Clone(d.data),
		UpdatedAt:  d.updatedAt,
	}
}
