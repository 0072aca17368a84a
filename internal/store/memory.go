package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guidewise/guidegen/internal/guide"
)

// Memory is the default in-process store: maps guarded by a mutex, with a
// monotonically incrementing ID. Contents vanish on restart.
type Memory struct {
	mu     sync.RWMutex
	guides map[int]guide.Record
	nextID int
}

func NewMemory() *Memory {
	return &Memory{
		guides: make(map[int]guide.Record),
		nextID: 1,
	}
}

func (m *Memory) Create(ctx context.Context, rec guide.Record) (guide.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.nextID
	m.nextID++
	rec.CreatedAt = time.Now().UTC()
	m.guides[rec.ID] = rec
	return rec, nil
}

func (m *Memory) BySlug(ctx context.Context, slug string) (guide.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.guides {
		if rec.Slug == slug {
			return rec, nil
		}
	}
	return guide.Record{}, ErrNotFound
}

func (m *Memory) Recent(ctx context.Context, limit int) ([]guide.Record, error) {
	if limit <= 0 {
		limit = 5
	}
	m.mu.RLock()
	recs := make([]guide.Record, 0, len(m.guides))
	for _, rec := range m.guides {
		recs = append(recs, rec)
	}
	m.mu.RUnlock()

	// Newest first; IDs break ties between records created within the same
	// clock tick.
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (m *Memory) Close() error {
	return nil
}
