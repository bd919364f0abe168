package router

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/season"
	"github.com/albapepper/puckline-data/internal/vectorsearch"
)

const (
	defaultTopN      = 10
	ragTopK          = 3
	ragMinSimilarity = 0.30
)

var yearRegexp = regexp.MustCompile(`\d{4}`)

// ContextSection is one labelled Markdown section of the assembled
// response context, tagged with the source that produced it (§4.F).
type ContextSection struct {
	SourceType string // "sql", "prediction", "trade", "rag"
	Markdown   string
	Data       interface{}
}

// Router dispatches a validated Classification across the prediction,
// trade, and SQL-backed read paths, optionally appending RAG hits
// (§4.F). Grounded on original_source/backend/src/agents/copilot.py's
// dispatch control flow.
type Router struct {
	gw       *gateway.Gateway
	searcher *vectorsearch.Searcher
}

// New constructs a Router. searcher may be nil, disabling the RAG
// dispatch step.
func New(gw *gateway.Gateway, searcher *vectorsearch.Searcher) *Router {
	return &Router{gw: gw, searcher: searcher}
}

// Dispatch runs the §4.F priority chain over a validated classification
// and returns the ordered context sections plus their concatenated
// Markdown.
func (r *Router) Dispatch(ctx context.Context, c Classification, now time.Time) ([]ContextSection, string, error) {
	if err := c.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid classification: %w", err)
	}

	var sections []ContextSection
	teams := c.NormalizedTeams()
	topN := c.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	switch {
	case c.IsPredictionQuery || c.Type == "prediction" || c.Type == "matchup_prediction" || c.Type == "tonight_prediction" || c.IsTonightQuery:
		sec, err := r.dispatchPrediction(ctx, teams, c.Timeframe, now, topN)
		if err != nil {
			return nil, "", err
		}
		if sec != nil {
			sections = append(sections, *sec)
		}

	case c.IsTradeQuery || c.Type == "trade_suggestion":
		sec, err := r.dispatchTrade(ctx, c.Players, now)
		if err != nil {
			return nil, "", err
		}
		sections = append(sections, sec)

	case c.IsAllTeamsQuery:
		sec, err := r.dispatchAllTeams(ctx, now, topN)
		if err != nil {
			return nil, "", err
		}
		sections = append(sections, sec)

	case len(teams) > 0:
		sec, err := r.dispatchTeamScoped(ctx, teams[0], now, topN)
		if err != nil {
			return nil, "", err
		}
		sections = append(sections, sec)

	case c.IsLeadersQuery || c.Type == "leaders":
		sec, err := r.dispatchLeaders(ctx, c.Timeframe, c.Stats, topN)
		if err != nil {
			return nil, "", err
		}
		sections = append(sections, sec)
	}

	if len(c.Players) > 0 {
		sec, err := r.dispatchPlayerStats(ctx, c.Players)
		if err != nil {
			return nil, "", err
		}
		if sec != nil {
			sections = append(sections, *sec)
		}
	}

	if r.searcher != nil {
		query := strings.Join(append(append([]string{}, c.Players...), c.Teams...), " ")
		if query != "" {
			hits, err := r.searcher.Search(ctx, query, ragTopK, ragMinSimilarity)
			if err == nil && len(hits) > 0 {
				sections = append(sections, ragSection(hits))
			}
		}
	}

	return sections, renderSections(sections), nil
}

func renderSections(sections []ContextSection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s.Markdown)
	}
	return strings.Join(parts, "\n\n")
}

// extractSeasonFromTimeframe pulls the first 4-digit year out of a
// timeframe phrase and renders it as an 8-digit season code, or "" if
// none is present (§4.F step 5).
func extractSeasonFromTimeframe(timeframe string) string {
	match := yearRegexp.FindString(timeframe)
	if match == "" {
		return ""
	}
	var year int
	if _, err := fmt.Sscanf(match, "%d", &year); err != nil {
		return ""
	}
	return season.Encode(year)
}

func ragSection(hits []vectorsearch.Hit) ContextSection {
	var b strings.Builder
	b.WriteString("## Related context\n\n")
	for _, h := range hits {
		fmt.Fprintf(&b, "- **%s** (%s, similarity %.2f): %s\n", h.Title, h.Source, h.Similarity, h.Content)
	}
	return ContextSection{SourceType: "rag", Markdown: b.String(), Data: hits}
}
