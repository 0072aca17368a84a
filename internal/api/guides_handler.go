package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	chi "github.com/go-chi/chi/v5"

	"github.com/guidewise/guidegen/internal/common"
	"github.com/guidewise/guidegen/internal/guide"
	"github.com/guidewise/guidegen/internal/store"
)

const (
	queryMinLen = 3
	queryMaxLen = 200
)

type generateRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: generate decode failed", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid request body",
			"errors":  []string{err.Error()},
		})
		return
	}
	query := strings.TrimSpace(req.Query)
	if errs := validateQuery(query); len(errs) > 0 {
		logger.Warn("api: generate query rejected", "errors", strings.Join(errs, "; "))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid request body",
			"errors":  errs,
		})
		return
	}

	rec, err := s.generator.Generate(r.Context(), query)
	if err != nil {
		logger.Error("api: generate failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "Failed to generate guide",
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guide": rec})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	slug := chi.URLParam(r, "slug")
	rec, err := s.generator.BySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Guide not found"})
		return
	}
	if err != nil {
		logger.Error("api: fetch guide failed", "slug", slug, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "Failed to fetch guide",
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guide": rec})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}
	recs, err := s.generator.Recent(r.Context(), limit)
	if err != nil {
		logger.Error("api: fetch recent guides failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "Failed to fetch recent guides",
			"error":   err.Error(),
		})
		return
	}
	if recs == nil {
		recs = []guide.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"guides": recs})
}

func validateQuery(query string) []string {
	var errs []string
	length := utf8.RuneCountInString(query)
	if length < queryMinLen {
		errs = append(errs, fmt.Sprintf("query must be at least %d characters", queryMinLen))
	}
	if length > queryMaxLen {
		errs = append(errs, fmt.Sprintf("query must be at most %d characters", queryMaxLen))
	}
	return errs
}
