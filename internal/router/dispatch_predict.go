package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/predict"
)

// dispatchPrediction resolves the prediction/matchup/tonight intents
// (§4.F step 1, §4.F.1). With two known teams it builds a full matchup;
// with zero or one it falls back to tonight's full schedule.
func (r *Router) dispatchPrediction(ctx context.Context, teams []string, timeframe string, now time.Time, topN int) (*ContextSection, error) {
	date := ResolveTimeframe(timeframe, now)

	if len(teams) < 2 {
		games, err := r.gw.GamesForDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("games for prediction dispatch: %w", err)
		}
		if len(games) == 0 {
			msg := fmt.Sprintf("No games scheduled for %s.", date.Format("January 2, 2006"))
			return &ContextSection{SourceType: "prediction", Markdown: msg, Data: []predict.MatchupPrediction{}}, nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "## Predictions for %s\n\n", date.Format("2006-01-02"))
		var matchups []predict.MatchupPrediction
		for _, g := range games {
			m, err := r.buildMatchup(ctx, g.HomeTeam, g.AwayTeam, g.Season, date, topN)
			if err != nil {
				continue
			}
			matchups = append(matchups, m)
			renderMatchup(&b, m)
		}
		return &ContextSection{SourceType: "prediction", Markdown: b.String(), Data: matchups}, nil
	}

	seasonCode := currentSeasonFallback(now)
	m, err := r.buildMatchup(ctx, teams[0], teams[1], seasonCode, date, topN)
	if err != nil {
		return nil, fmt.Errorf("build matchup %s vs %s: %w", teams[0], teams[1], err)
	}
	var b strings.Builder
	renderMatchup(&b, m)
	return &ContextSection{SourceType: "prediction", Markdown: b.String(), Data: m}, nil
}

func currentSeasonFallback(now time.Time) string {
	y := now.Year()
	if now.Month() < time.October {
		y--
	}
	return fmt.Sprintf("%d%d", y, y+1)
}

// buildMatchup assembles PlayerInputs for each team's top-N players by
// season points (the caller's requested top_n) and runs
// predict.BuildMatchupPrediction over them (§4.E.6).
func (r *Router) buildMatchup(ctx context.Context, homeTeam, awayTeam, seasonCode string, gameDate time.Time, topN int) (predict.MatchupPrediction, error) {
	homeRoster, err := r.gw.TeamRoster(ctx, homeTeam, seasonCode, topN)
	if err != nil {
		return predict.MatchupPrediction{}, err
	}
	awayRoster, err := r.gw.TeamRoster(ctx, awayTeam, seasonCode, topN)
	if err != nil {
		return predict.MatchupPrediction{}, err
	}

	expectedTotal := r.expectedTotalGoals(ctx, homeTeam, awayTeam, seasonCode)
	homeGoalieSavePct := r.starterSavePct(ctx, awayTeam, seasonCode)
	awayGoalieSavePct := r.starterSavePct(ctx, homeTeam, seasonCode)

	homeInputs, err := r.buildPlayerInputs(ctx, homeRoster, awayTeam, true, homeGoalieSavePct, expectedTotal, gameDate)
	if err != nil {
		return predict.MatchupPrediction{}, err
	}
	awayInputs, err := r.buildPlayerInputs(ctx, awayRoster, homeTeam, false, awayGoalieSavePct, expectedTotal, gameDate)
	if err != nil {
		return predict.MatchupPrediction{}, err
	}

	return predict.BuildMatchupPrediction(homeTeam, awayTeam, homeInputs, awayInputs, expectedTotal), nil
}

func (r *Router) buildPlayerInputs(ctx context.Context, roster []gateway.PlayerSeasonStats, opponent string, isHome bool, opponentSavePct *float64, expectedTotal float64, gameDate time.Time) ([]predict.PlayerInput, error) {
	inputs := make([]predict.PlayerInput, 0, len(roster))
	for _, row := range roster {
		name, err := r.gw.PlayerNameByID(ctx, row.PlayerExternalID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = fmt.Sprintf("player %d", row.PlayerExternalID)
		}

		recent, err := r.gw.RecentGameLogs(ctx, row.PlayerExternalID, gameDate, 5)
		if err != nil {
			return nil, err
		}
		career, err := r.gw.AllGameLogs(ctx, row.PlayerExternalID)
		if err != nil {
			return nil, err
		}
		vsOpponent, err := r.gw.GameLogsVsOpponent(ctx, row.PlayerExternalID, opponent)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, predict.PlayerInput{
			PlayerName:         name,
			Opponent:           opponent,
			IsHome:             isHome,
			Recent:             toPredictLogs(recent),
			Season:             predict.SeasonStats{Games: row.Games, Points: row.Points},
			Career:             toPredictLogs(career),
			VsOpponent:         toPredictLogs(vsOpponent),
			OpponentSavePct:    opponentSavePct,
			ExpectedTotalGoals: expectedTotal,
		})
	}
	return inputs, nil
}

func toPredictLogs(logs []gateway.GameLog) []predict.GameLog {
	out := make([]predict.GameLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, predict.GameLog{
			Date:         l.Date.Format("2006-01-02"),
			OpponentCode: l.OpponentCode,
			IsHome:       l.IsHome,
			Goals:        l.Goals,
			Assists:      l.Assists,
			Points:       l.Points,
			Shots:        l.Shots,
		})
	}
	return out
}

// expectedTotalGoals sums each side's goals-for-per-game as a simple
// pace proxy; on any read failure it falls back to the league-average
// total so the pace adjustment degrades rather than errors (§4.E.7).
func (r *Router) expectedTotalGoals(ctx context.Context, homeTeam, awayTeam, seasonCode string) float64 {
	const leagueAvgTotal = 6.20
	home, homeOK, err := r.gw.TeamSeasonStatsRow(ctx, homeTeam, seasonCode)
	if err != nil || !homeOK {
		return leagueAvgTotal
	}
	away, awayOK, err := r.gw.TeamSeasonStatsRow(ctx, awayTeam, seasonCode)
	if err != nil || !awayOK {
		return leagueAvgTotal
	}
	return home.GoalsForPerGame + away.GoalsForPerGame
}

// starterSavePct looks up the opposing goalie's save percentage, when
// known; nil degrades the goalie-matchup component to league average
// (§4.E.2, §4.E.7).
func (r *Router) starterSavePct(ctx context.Context, teamCode, seasonCode string) *float64 {
	g, ok, err := r.gw.GoalieStarter(ctx, teamCode, seasonCode)
	if err != nil || !ok {
		return nil
	}
	sv := g.SavePct
	return &sv
}

func renderMatchup(b *strings.Builder, m predict.MatchupPrediction) {
	fmt.Fprintf(b, "### %s @ %s (%s pace, %.1f expected total goals)\n\n", m.AwayTeam, m.HomeTeam, m.PaceRating, m.ExpectedTotal)
	for _, p := range m.TopOverall {
		fmt.Fprintf(b, "- %s vs %s: %.2f expected points (%.0f%% goal prob, %s confidence)\n",
			p.PlayerName, p.Opponent, p.ExpectedPoints, p.ProbGoal*100, p.Confidence)
	}
}
