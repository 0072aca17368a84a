// Package store persists generated guide records. The default backend keeps
// everything in process memory; an optional SQLite backend survives
// restarts.
package store

import (
	"context"
	"errors"

	"github.com/guidewise/guidegen/internal/guide"
)

// ErrNotFound reports a lookup for a slug no record carries.
var ErrNotFound = errors.New("guide not found")

// Store is the persistence contract for guide records. Create assigns the
// record's ID and CreatedAt; records are immutable afterwards.
type Store interface {
	Create(ctx context.Context, rec guide.Record) (guide.Record, error)
	BySlug(ctx context.Context, slug string) (guide.Record, error)
	Recent(ctx context.Context, limit int) ([]guide.Record, error)
	Close() error
}
