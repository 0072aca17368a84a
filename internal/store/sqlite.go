package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/guidewise/guidegen/internal/guide"
)

const guidesSchema = `
CREATE TABLE IF NOT EXISTS guides (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	query      TEXT NOT NULL,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_guides_created_at ON guides (created_at DESC);
`

// SQLite stores guide records in a single-file database. Slug uniqueness is
// enforced by the schema; a collision surfaces as a storage error.
type SQLite struct {
	db *sqlx.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)", abs)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, guidesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

type guideRow struct {
	ID        int       `db:"id"`
	Query     string    `db:"query"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

func (r guideRow) record() (guide.Record, error) {
	var doc guide.Document
	if err := json.Unmarshal([]byte(r.Content), &doc); err != nil {
		return guide.Record{}, fmt.Errorf("decode guide content: %w", err)
	}
	return guide.Record{
		ID:        r.ID,
		Query:     r.Query,
		Title:     r.Title,
		Content:   doc,
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (s *SQLite) Create(ctx context.Context, rec guide.Record) (guide.Record, error) {
	content, err := json.Marshal(rec.Content)
	if err != nil {
		return guide.Record{}, fmt.Errorf("encode guide content: %w", err)
	}
	rec.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO guides (query, title, content, slug, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Query, rec.Title, string(content), rec.Slug, rec.CreatedAt,
	)
	if err != nil {
		return guide.Record{}, fmt.Errorf("insert guide: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return guide.Record{}, fmt.Errorf("guide id: %w", err)
	}
	rec.ID = int(id)
	return rec, nil
}

func (s *SQLite) BySlug(ctx context.Context, slug string) (guide.Record, error) {
	var row guideRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, query, title, content, slug, created_at FROM guides WHERE slug = ?`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return guide.Record{}, ErrNotFound
	}
	if err != nil {
		return guide.Record{}, fmt.Errorf("select guide: %w", err)
	}
	return row.record()
}

func (s *SQLite) Recent(ctx context.Context, limit int) ([]guide.Record, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []guideRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, query, title, content, slug, created_at FROM guides ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent guides: %w", err)
	}
	recs := make([]guide.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
