package router

import (
	"context"
	"fmt"
	"sort"

	"github.com/albapepper/puckline-data/internal/gateway"
)

const tradeCandidateLimit = 10

// TradeValueRow is one player's computed value score (§4.F.2), rendered
// into the trade-suggestion Markdown section.
type TradeValueRow struct {
	Name  string
	Value float64
}

// TradeSuggestion is the dispatch result of the trade-value intent
// (§4.F.2): the listed players' scores, their summed total, and up to 10
// comparably-valued candidates excluded by name.
type TradeSuggestion struct {
	Listed     []TradeValueRow
	Total      float64
	Candidates []TradeValueRow
}

// tradeValue implements §4.F.2's value formula.
func tradeValue(s gateway.PlayerSeasonStats) float64 {
	if s.Games == 0 {
		return 0
	}
	ppg := float64(s.Points) / float64(s.Games)
	xgPerGame := s.ExpectedGoals / float64(s.Games)
	return ppg*50 + xgPerGame*30 + s.CorsiForPct*0.5
}

// TradeLookup retrieves the value scores for a named player list and up
// to 10 comparably-valued alternatives in the current season (§4.F.2).
func TradeLookup(ctx context.Context, gw *gateway.Gateway, season string, playerNames []string) (TradeSuggestion, error) {
	listedSet := make(map[string]bool, len(playerNames))
	var listed []TradeValueRow
	var total float64

	for _, name := range playerNames {
		p, found, err := gw.PlayerByName(ctx, name)
		if err != nil {
			return TradeSuggestion{}, fmt.Errorf("trade lookup player %q: %w", name, err)
		}
		if !found {
			continue
		}
		listedSet[p.Name] = true

		stats, found, err := gw.SeasonStatRow(ctx, p.ExternalID)
		if err != nil {
			return TradeSuggestion{}, fmt.Errorf("trade lookup stats for %q: %w", name, err)
		}
		if !found {
			continue
		}
		v := tradeValue(stats)
		listed = append(listed, TradeValueRow{Name: p.Name, Value: v})
		total += v
	}

	low, high := 0.8*total, 1.2*total

	pool, err := gw.TradeCandidatePoolWithNames(ctx, season)
	if err != nil {
		return TradeSuggestion{}, fmt.Errorf("trade candidate pool: %w", err)
	}

	var candidates []TradeValueRow
	for _, row := range pool {
		if listedSet[row.Name] {
			continue
		}
		v := tradeValue(row.PlayerSeasonStats)
		if v >= low && v <= high {
			candidates = append(candidates, TradeValueRow{Name: row.Name, Value: v})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Value > candidates[j].Value })
	if len(candidates) > tradeCandidateLimit {
		candidates = candidates[:tradeCandidateLimit]
	}

	return TradeSuggestion{Listed: listed, Total: total, Candidates: candidates}, nil
}
