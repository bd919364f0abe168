// Command puckline-api serves the illustrative query-context HTTP surface
// (§6) over the query router, prediction engine, and ingestion triggers.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/puckline-data/internal/config"
	"github.com/albapepper/puckline-data/internal/db"
	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/ingest"
	"github.com/albapepper/puckline-data/internal/ledger"
	"github.com/albapepper/puckline-data/internal/router"
	"github.com/albapepper/puckline-data/internal/servemux"
	"github.com/albapepper/puckline-data/internal/vectorsearch"
)

func main() {
	_ = godotenv.Load(".env")
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	gw := gateway.New(pool)
	led := ledger.New(cfg.LedgerPath)
	orch := ingest.New(cfg, gw, led)

	var searcher *vectorsearch.Searcher
	if cfg.RAGEnabled && cfg.EmbeddingServiceURL != "" {
		searcher = vectorsearch.New(gw, &httpEmbedder{baseURL: cfg.EmbeddingServiceURL, client: &http.Client{Timeout: 5 * time.Second}})
	} else {
		logger.Warn("RAG disabled: RAG_ENABLED is off or no embedding service configured, query dispatch will skip document context")
	}

	go func() {
		result, err := orch.Startup(ctx, time.Now())
		if err != nil {
			logger.Warn("startup ingestion not run", "error", err)
			return
		}
		logger.Info("startup ingestion finished", "summary", result.Summary())
	}()

	rt := router.New(gw, searcher)
	mux := servemux.NewRouter(gw, rt, orch, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// httpEmbedder calls an external embedding service over HTTP, keeping the
// embedding model itself outside this module per §1/§5's boundary: a pure
// function text -> vector(384).
type httpEmbedder struct {
	baseURL string
	client  *http.Client
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *httpEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call embedding service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("embedding service returned %d: %s", resp.StatusCode, string(b))
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	return out.Embedding, nil
}
