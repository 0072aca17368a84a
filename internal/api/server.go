// Package api exposes the guide pipeline over JSON/HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/guidewise/guidegen/internal/common"
	"github.com/guidewise/guidegen/internal/generator"
)

type Server struct {
	router    chi.Router
	generator *generator.Service
}

func NewServer(gen *generator.Service) *Server {
	srv := &Server{
		router:    chi.NewRouter(),
		generator: gen,
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(requestLogger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api/guides", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/recent/list", s.handleRecent)
		r.Get("/{slug}", s.handleGuide)
	})
	s.router.Get("/api/logs", s.handleLogs)

	logger.Info("api: routes configured")
}

// requestLogger records method, path, status and duration for API traffic.
func requestLogger(next http.Handler) http.Handler {
	logger := common.Logger()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if strings.HasPrefix(r.URL.Path, "/api") {
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"dur", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"logs": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
