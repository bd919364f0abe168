package router

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// dispatchTrade runs the trade-value-comparison intent (§4.F step 2,
// §4.F.2).
func (r *Router) dispatchTrade(ctx context.Context, players []string, now time.Time) (ContextSection, error) {
	seasonCode := currentSeasonFallback(now)
	suggestion, err := TradeLookup(ctx, r.gw, seasonCode, players)
	if err != nil {
		return ContextSection{}, fmt.Errorf("trade dispatch: %w", err)
	}

	var b strings.Builder
	b.WriteString("## Trade value comparison\n\n")
	for _, p := range suggestion.Listed {
		fmt.Fprintf(&b, "- %s: value %.1f\n", p.Name, p.Value)
	}
	fmt.Fprintf(&b, "\nCombined value: %.1f\n\n", suggestion.Total)
	if len(suggestion.Candidates) > 0 {
		b.WriteString("Comparable candidates:\n")
		for _, c := range suggestion.Candidates {
			fmt.Fprintf(&b, "- %s: value %.1f\n", c.Name, c.Value)
		}
	}
	return ContextSection{SourceType: "trade", Markdown: b.String(), Data: suggestion}, nil
}

// dispatchAllTeams runs the all-teams breakdown intent (§4.F step 3): a
// per-team top-N window for the current season.
func (r *Router) dispatchAllTeams(ctx context.Context, now time.Time, topN int) (ContextSection, error) {
	seasonCode := currentSeasonFallback(now)
	var b strings.Builder
	b.WriteString("## League breakdown\n\n")
	for _, code := range KnownTeamCodes {
		rows, err := r.gw.TeamRoster(ctx, code, seasonCode, topN)
		if err != nil || len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n", code)
		for _, row := range rows {
			name, _ := r.gw.PlayerNameByID(ctx, row.PlayerExternalID)
			fmt.Fprintf(&b, "- %s: %d pts in %d games\n", name, row.Points, row.Games)
		}
	}
	return ContextSection{SourceType: "sql", Markdown: b.String()}, nil
}

// dispatchTeamScoped runs the team-scoped intent (§4.F step 4): a single
// team's roster top-N by season points. The classification's requested
// stats do not change the ranking.
func (r *Router) dispatchTeamScoped(ctx context.Context, teamCode string, now time.Time, topN int) (ContextSection, error) {
	seasonCode := currentSeasonFallback(now)
	rows, err := r.gw.TeamRoster(ctx, teamCode, seasonCode, topN)
	if err != nil {
		return ContextSection{}, fmt.Errorf("team-scoped dispatch %s: %w", teamCode, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s roster\n\n", teamCode)
	for _, row := range rows {
		name, _ := r.gw.PlayerNameByID(ctx, row.PlayerExternalID)
		fmt.Fprintf(&b, "- %s: %d pts, %d goals, %d assists (%d games)\n", name, row.Points, row.Goals, row.Assists, row.Games)
	}
	return ContextSection{SourceType: "sql", Markdown: b.String(), Data: rows}, nil
}

var statDisplayNames = map[string]string{
	"points":        "Points",
	"goals":         "Goals",
	"assists":       "Assists",
	"xg":            "Xg",
	"corsi_for_pct": "Corsi",
}

// dispatchLeaders runs the league-wide leaders intent (§4.F step 5),
// honouring an optional season parsed from the timeframe and an optional
// stat to sort by (defaults to points).
func (r *Router) dispatchLeaders(ctx context.Context, timeframe string, stats []string, topN int) (ContextSection, error) {
	seasonCode := extractSeasonFromTimeframe(timeframe)
	stat := "points"
	if len(stats) > 0 {
		stat = stats[0]
	}
	rows, err := r.gw.LeagueLeaders(ctx, seasonCode, stat, topN)
	if err != nil {
		return ContextSection{}, fmt.Errorf("leaders dispatch: %w", err)
	}

	display, ok := statDisplayNames[stat]
	if !ok {
		display = "Points"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Top %d players by %s (%s season):**\n\n", topN, display, displaySeason(seasonCode))
	for _, row := range rows {
		name, _ := r.gw.PlayerNameByID(ctx, row.PlayerExternalID)
		fmt.Fprintf(&b, "- %s: %d pts (%d games)\n", name, row.Points, row.Games)
	}
	return ContextSection{SourceType: "sql", Markdown: b.String(), Data: rows}, nil
}

// displaySeason renders an 8-digit season code as "2015-16"; an empty
// code renders as "current".
func displaySeason(code string) string {
	if len(code) != 8 {
		return "current"
	}
	return fmt.Sprintf("%s-%s", code[:4], code[6:8])
}

// dispatchPlayerStats runs §4.F step 6: append stat rows for every
// extracted player name, regardless of which earlier branch matched.
func (r *Router) dispatchPlayerStats(ctx context.Context, players []string) (*ContextSection, error) {
	var b strings.Builder
	var found bool
	for _, name := range players {
		p, ok, err := r.gw.PlayerByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("player stats dispatch %q: %w", name, err)
		}
		if !ok {
			continue
		}
		stats, ok, err := r.gw.SeasonStatRow(ctx, p.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("season stat row for %q: %w", name, err)
		}
		if !ok {
			continue
		}
		if !found {
			b.WriteString("## Player stats\n\n")
			found = true
		}
		fmt.Fprintf(&b, "- %s: %d pts, %d goals, %d assists in %d games (%s)\n",
			p.Name, stats.Points, stats.Goals, stats.Assists, stats.Games, stats.Season)
	}
	if !found {
		return nil, nil
	}
	sec := ContextSection{SourceType: "sql", Markdown: b.String()}
	return &sec, nil
}
