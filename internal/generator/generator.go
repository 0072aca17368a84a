// Package generator runs the guide pipeline: cache lookup, model call, JSON
// recovery, normalization, fallback synthesis, slug assignment, storage.
// Failures turning model text into a document are absorbed here and masked
// by the fallback document; only storage failures escape to the caller.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guidewise/guidegen/internal/cache"
	"github.com/guidewise/guidegen/internal/common"
	"github.com/guidewise/guidegen/internal/guide"
	"github.com/guidewise/guidegen/internal/jsonrepair"
	"github.com/guidewise/guidegen/internal/llm"
	"github.com/guidewise/guidegen/internal/store"
)

const defaultRecentLimit = 5

type Service struct {
	provider llm.Provider
	store    store.Store
	cache    *cache.Cache
	timeout  time.Duration
}

func New(provider llm.Provider, st store.Store, c *cache.Cache, upstreamTimeout time.Duration) *Service {
	if upstreamTimeout <= 0 {
		upstreamTimeout = 60 * time.Second
	}
	return &Service{provider: provider, store: st, cache: c, timeout: upstreamTimeout}
}

// Generate produces a stored guide for the query, serving a cached record
// for a repeated query inside the TTL window. It fails only when the store
// does; generation problems degrade to a fallback document instead.
func (s *Service) Generate(ctx context.Context, query string) (guide.Record, error) {
	logger := common.Logger()
	key := "guide:" + normalizeQuery(query)
	if cached, ok := s.cache.Get(key); ok {
		if rec, ok := cached.(guide.Record); ok {
			logger.Info("generator: cache hit", "query", query, "slug", rec.Slug)
			return rec, nil
		}
	}

	doc := s.produce(ctx, query)
	rec, err := s.store.Create(ctx, guide.Record{
		Query:   query,
		Title:   doc.Title,
		Content: doc,
		Slug:    guide.Slugify(doc.Title),
	})
	if err != nil {
		return guide.Record{}, fmt.Errorf("save guide: %w", err)
	}
	logger.Info("generator: guide stored", "id", rec.ID, "slug", rec.Slug)

	s.cache.Set(key, rec)
	s.cache.Set("guide-slug:"+rec.Slug, rec)
	return rec, nil
}

// produce runs model call, recovery ladder and normalizer; it never fails.
func (s *Service) produce(ctx context.Context, query string) guide.Document {
	logger := common.Logger()
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Chat(cctx, promptMessages(query))
	if err != nil {
		logger.Error("generator: upstream call failed", "query", query, "error", err)
		return guide.Fallback(query)
	}
	value, err := jsonrepair.Extract(raw)
	if err != nil {
		logger.Error("generator: recovery ladder exhausted", "query", query, "error", err)
		return guide.Fallback(query)
	}
	doc, err := guide.Normalize(value)
	if err != nil {
		logger.Error("generator: document shape rejected", "query", query, "error", err)
		return guide.Fallback(query)
	}
	return doc
}

// BySlug resolves a stored guide by its slug.
func (s *Service) BySlug(ctx context.Context, slug string) (guide.Record, error) {
	key := "guide-slug:" + slug
	if cached, ok := s.cache.Get(key); ok {
		if rec, ok := cached.(guide.Record); ok {
			return rec, nil
		}
	}
	rec, err := s.store.BySlug(ctx, slug)
	if err != nil {
		return guide.Record{}, err
	}
	s.cache.Set(key, rec)
	return rec, nil
}

// Recent lists the most recently created guides, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]guide.Record, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	key := fmt.Sprintf("recent-guides:%d", limit)
	if cached, ok := s.cache.Get(key); ok {
		if recs, ok := cached.([]guide.Record); ok {
			return recs, nil
		}
	}
	recs, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, recs)
	return recs, nil
}

// Queries are cache-deduplicated case-insensitively, ignoring surrounding
// whitespace.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
