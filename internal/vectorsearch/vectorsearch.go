// Package vectorsearch implements Component G (§4.G): cosine-similarity
// document retrieval with a minimum-similarity floor, and paragraph/
// sentence/hard-cut chunking for ingestion.
//
// Grounded on original_source/backend/src/agents/rag.py's search/
// chunk_text; the cosine-distance query itself is owned by
// internal/gateway.SearchDocuments (issued as plain SQL text over pgx,
// since no pgvector-go client exists in the pack). This package owns the
// embed-then-search orchestration and the chunking step, keeping the
// embedding model itself an injected dependency — per spec, it is treated
// as a pure function text -> vector(384), not something this module
// implements.
package vectorsearch

import (
	"context"
	"fmt"

	"github.com/albapepper/puckline-data/internal/gateway"
)

const (
	defaultTopK          = 5
	defaultMinSimilarity = 0.30
)

// Embedder produces a 384-dimensional unit-normalized embedding for a
// string. The embedding model itself lives outside this module (§1).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher embeds a query and retrieves the top-K matching documents.
type Searcher struct {
	gw       *gateway.Gateway
	embedder Embedder
}

// New constructs a Searcher over a gateway and an embedder.
func New(gw *gateway.Gateway, embedder Embedder) *Searcher {
	return &Searcher{gw: gw, embedder: embedder}
}

// Hit is the RAG dispatch's rendering shape (§4.F step 7).
type Hit struct {
	Title      string
	Source     string
	Content    string
	URL        string
	Similarity float64
}

// Search embeds query and returns up to limit documents whose similarity
// is at least minSimilarity (property 10). A limit <= 0 uses the default
// of 5; a negative minSimilarity uses the default floor of 0.30.
func (s *Searcher) Search(ctx context.Context, query string, limit int, minSimilarity float64) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultTopK
	}
	if minSimilarity < 0 {
		minSimilarity = defaultMinSimilarity
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.gw.SearchDocuments(ctx, embedding, limit, minSimilarity)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	out := make([]Hit, 0, len(rows))
	for _, r := range rows {
		out = append(out, Hit{
			Title:      r.Title,
			Source:     r.Source,
			Content:    r.Content,
			URL:        r.URL,
			Similarity: round3(r.Similarity),
		})
	}
	return out, nil
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
