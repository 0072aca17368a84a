package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/guidewise/guidegen/internal/api"
	"github.com/guidewise/guidegen/internal/cache"
	"github.com/guidewise/guidegen/internal/common"
	"github.com/guidewise/guidegen/internal/config"
	"github.com/guidewise/guidegen/internal/generator"
	"github.com/guidewise/guidegen/internal/llm"
	"github.com/guidewise/guidegen/internal/store"
)

func main() {
	logger := common.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logger.Warn("guidegen: .env file not loaded", "error", err)
	} else {
		logger.Info("guidegen: environment loaded from .env")
	}

	cfg := config.Load()
	addr := flag.String("addr", cfg.Addr, "listen address")
	dbPath := flag.String("db", cfg.SQLitePath, "path to a SQLite database (empty for in-memory store)")
	flag.Parse()

	logger.Info("guidegen: startup initiated", "addr", *addr, "env", cfg.Environment)

	st, err := openStore(*dbPath)
	if err != nil {
		logger.Error("guidegen: store initialization failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	provider := llm.NewProvider(ctx)
	guideCache := cache.New(cfg.CacheEntries, cfg.CacheTTL)
	gen := generator.New(provider, st, guideCache, cfg.UpstreamTimeout)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewServer(gen),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("guidegen: listening", "addr", *addr, "provider", provider.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("guidegen: server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("guidegen: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("guidegen: shutdown failed", "error", err)
	}
}

func openStore(path string) (store.Store, error) {
	logger := common.Logger()
	if strings.TrimSpace(path) == "" {
		logger.Info("guidegen: using in-memory store")
		return store.NewMemory(), nil
	}
	logger.Info("guidegen: using sqlite store", "path", path)
	return store.OpenSQLite(path)
}
