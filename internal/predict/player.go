package predict

import (
	"fmt"
	"sort"
)

// PlayerInput bundles everything PredictPlayer needs to project a single
// player's expected output against tonight's opponent (§4.E).
type PlayerInput struct {
	PlayerName   string
	Opponent     string
	IsHome       bool
	Recent       []GameLog   // last 5 games, most recent first
	Season       SeasonStats
	Career       []GameLog   // full career logs, used for home/away splits
	VsOpponent   []GameLog   // career logs against Opponent, used for H2H
	OpponentSavePct *float64
	ExpectedTotalGoals float64
}

// PredictPlayer runs the full weighted-blend model for one player (§4.E.1–
// §4.E.5): extract features, renormalize-blend the base components into an
// expected-points rate, add the three additive adjustments at their fixed
// model weights, derive expected goals/assists via the recent-form goal
// ratio, compute Poisson probabilities, tier confidence, and render factor
// strings.
func PredictPlayer(in PlayerInput) PlayerPrediction {
	recentPPG, goalRatio, recentOK := recentFormFeature(in.Recent)
	seasonPPG, seasonOK := seasonBaselineFeature(in.Season)
	h2hPPG, h2hOK := h2hFeature(in.VsOpponent)

	// Step 1 (§4.E.3): expected_points_base is the renormalized weighted
	// average over only the base components that passed their gate.
	var base []weightedComponent
	if recentOK {
		base = append(base, weightedComponent{recentPPG, weightRecentForm})
	}
	if seasonOK {
		base = append(base, weightedComponent{seasonPPG, weightSeasonBaseline})
	}
	if h2hOK {
		base = append(base, weightedComponent{h2hPPG, weightH2H})
	}
	expectedPointsBase := blend(base)

	seasonPPGOrZero := 0.0
	if seasonOK {
		seasonPPGOrZero = seasonPPG
	}

	var factors []string
	if recentOK {
		if f := recentFormFactor(recentPPG, seasonPPGOrZero, len(in.Recent)); f != "" {
			factors = append(factors, f)
		}
	}
	if seasonOK {
		factors = append(factors, seasonBaselineFactor(seasonPPG))
	}
	if h2hOK {
		if f := h2hFactor(h2hPPG, seasonPPGOrZero, len(in.VsOpponent), in.Opponent); f != "" {
			factors = append(factors, f)
		}
	}

	homeAwayAdj := homeAwayAdjustment(in.Career, in.IsHome)
	if f := homeAwayFactor(homeAwayAdj, in.IsHome); f != "" {
		factors = append(factors, f)
	}

	goalieAdj, savePct := goalieAdjustment(in.OpponentSavePct)
	if in.OpponentSavePct != nil {
		if f := goalieFactor(goalieAdj, savePct); f != "" {
			factors = append(factors, f)
		}
	}

	expectedTotal := in.ExpectedTotalGoals
	if expectedTotal <= 0 {
		expectedTotal = defaultGameTotal
	}
	paceAdj := paceAdjustment(expectedTotal)
	if f := paceFactor(paceAdj, expectedTotal); f != "" {
		factors = append(factors, f)
	}

	// Step 2-3 (§4.E.3): additive modifiers scaled by their fixed model
	// weights, then clamp.
	expectedPoints := expectedPointsBase + homeAwayAdj*weightHomeAway + goalieAdj*weightGoalieMatchup + paceAdj*weightTeamPace
	if expectedPoints < 0 {
		expectedPoints = 0
	}

	// Step 4 (§4.E.3).
	expectedGoals := expectedPoints * goalRatio
	expectedAssists := expectedPoints * (1 - goalRatio)
	if expectedAssists < 0 {
		expectedAssists = 0
	}

	gamesAnalyzed := len(in.Recent) + in.Season.Games + len(in.VsOpponent)
	confidence, confScore := confidenceTier(gamesAnalyzed, in.OpponentSavePct != nil)
	if confidence == "Low" {
		factors = append(factors, "Limited data — prediction less reliable")
	}

	return PlayerPrediction{
		PlayerName:      in.PlayerName,
		Opponent:        in.Opponent,
		IsHome:          in.IsHome,
		ExpectedGoals:   round2(expectedGoals),
		ExpectedAssists: round2(expectedAssists),
		ExpectedPoints:  round2(expectedPoints),
		ProbGoal:        round3(poissonProbGoal(expectedGoals)),
		ProbPoint:       round3(poissonProbPoint(expectedPoints)),
		ProbMultiPoint:  round3(poissonProbMultiPoint(expectedPoints)),
		Confidence:      confidence,
		ConfidenceScore: round3(confScore),
		Factors:         factors,
		GamesAnalyzed:   gamesAnalyzed,
	}
}

// confidenceTier implements §4.E.4: games-analyzed ratio clamped to
// [0,1], plus a fixed bonus when the opponent's starting goalie is known,
// re-clamped and bucketed into High/Medium/Low.
func confidenceTier(gamesAnalyzed int, goalieKnown bool) (label string, score float64) {
	score = float64(gamesAnalyzed) / 50.0
	if score > 1 {
		score = 1
	}
	if goalieKnown {
		score += 0.10
		if score > 1 {
			score = 1
		}
	}
	switch {
	case score >= 0.70:
		label = "High"
	case score >= 0.40:
		label = "Medium"
	default:
		label = "Low"
	}
	return label, score
}

// recentFormFactor renders the recent-form note (§4.E.5): only emitted
// when recent_ppg diverges from season_ppg by the spec's relative bands
// (>1.2x for a hot streak, <0.8x for a cold one). seasonPPG is 0 when the
// season baseline is unavailable, matching the original source's
// "season_ppg or 0" fallback for the symmetric h2h check.
func recentFormFactor(ppg, seasonPPG float64, games int) string {
	switch {
	case ppg > seasonPPG*1.2:
		return fmt.Sprintf("Hot streak: %.2f PPG in last %d games", ppg, games)
	case ppg < seasonPPG*0.8:
		return fmt.Sprintf("Cold streak: %.2f PPG in last %d games", ppg, games)
	default:
		return ""
	}
}

func seasonBaselineFactor(ppg float64) string {
	return fmt.Sprintf("season average %.2f pts/game", ppg)
}

// h2hFactor renders the head-to-head note (§4.E.5): only emitted when
// h2h_ppg diverges from season_ppg by the spec's relative bands (>1.3x
// strong, <0.7x struggling).
func h2hFactor(ppg, seasonPPG float64, games int, opponent string) string {
	switch {
	case ppg > seasonPPG*1.3:
		return fmt.Sprintf("Strong history vs %s: %.2f PPG in %d games", opponent, ppg, games)
	case ppg < seasonPPG*0.7:
		return fmt.Sprintf("Struggles vs %s: %.2f PPG in %d games", opponent, ppg, games)
	default:
		return ""
	}
}

// homeAwayFactor is only rendered when the split is material (§4.E.5).
func homeAwayFactor(adj float64, isHome bool) string {
	if adj >= 0.05 {
		side := "away"
		if isHome {
			side = "home"
		}
		return fmt.Sprintf("performs better %s (+%.2f pts/game)", side, adj)
	}
	return ""
}

// goalieFactor is only rendered when sv_diff clears the ±0.01 threshold
// (§4.E.5); adj = sv_diff * 5.0, so the equivalent adj threshold is ±0.05.
func goalieFactor(adj float64, savePct float64) string {
	if adj >= 0.05 {
		return fmt.Sprintf("Favorable goalie matchup (%.3f SV%%)", savePct)
	}
	if adj <= -0.05 {
		return fmt.Sprintf("Tough goalie matchup (%.3f SV%%)", savePct)
	}
	return ""
}

// paceFactor is only rendered when pace_diff clears the ±0.5 threshold
// (§4.E.5); adj = pace_diff * 0.10, so the equivalent adj threshold is
// ±0.05.
func paceFactor(adj float64, expectedTotal float64) string {
	if adj >= 0.05 {
		return fmt.Sprintf("High-scoring game expected: %.1f total goals", expectedTotal)
	}
	if adj <= -0.05 {
		return fmt.Sprintf("Low-scoring game expected: %.1f total goals", expectedTotal)
	}
	return ""
}

// topKByProbGoal sorts predictions by ProbGoal descending and returns the
// first k, used by MatchupPrediction aggregation (§4.E.6).
func topKByProbGoal(preds []PlayerPrediction, k int) []PlayerPrediction {
	sorted := make([]PlayerPrediction, len(preds))
	copy(sorted, preds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProbGoal > sorted[j].ProbGoal
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
