// Package predict implements the prediction engine (§4.E): a weighted
// multi-component model that blends recent form, season baseline,
// head-to-head history, home/away splits, opponent goalie quality, and
// expected game pace into per-player goal/point probabilities.
//
// Ported semantics (not syntax) from
// original_source/backend/src/agents/predictions.py's
// _calculate_player_prediction; the plain-functions-over-small-structs
// shape follows the idiomatic Go scoring-model package in
// other_examples/.../predictor-internal-model-model.go.go. No third-party
// statistics library is used: nothing in the example pack carries one, and
// the three Poisson formulas below are a handful of calls into math.Exp.
package predict

import "math"

// Fixed model weights (§4.E.1).
const (
	weightRecentForm     = 0.30
	weightSeasonBaseline = 0.25
	weightH2H            = 0.15
	weightHomeAway       = 0.10
	weightGoalieMatchup  = 0.10
	weightTeamPace       = 0.10

	minGamesRecent = 3
	minGamesSeason = 10
	minGamesH2H    = 3

	leagueAvgSavePct      = 0.905
	leagueAvgGoalsPerTeam = 3.10
	leagueAvgGameTotal    = leagueAvgGoalsPerTeam * 2 // 6.20

	defaultGoalRatio = 0.4
	defaultGameTotal = 6.0
)

// GameLog is the minimal per-game shape the feature-extraction functions
// need; callers project their gateway.GameLog rows into this.
type GameLog struct {
	Date         string
	OpponentCode string
	IsHome       bool
	Goals        int
	Assists      int
	Points       int
	Shots        int
}

// SeasonStats is the minimal season-row shape the feature-extraction
// functions need.
type SeasonStats struct {
	Games  int
	Points int
}

// MatchupContext carries the supplemented (§2.3) transient pace/goalie
// summary reused across a single MatchupPrediction computation instead of
// refetched per player.
type MatchupContext struct {
	ExpectedTotalGoals float64
	HomeGoalieSavePct  *float64
	AwayGoalieSavePct  *float64
}

// PlayerPrediction is the contract's per-player output (§4.E).
type PlayerPrediction struct {
	PlayerName       string
	Opponent         string
	IsHome           bool
	ExpectedGoals    float64
	ExpectedAssists  float64
	ExpectedPoints   float64
	ProbGoal         float64
	ProbPoint        float64
	ProbMultiPoint   float64
	Confidence       string
	ConfidenceScore  float64
	Factors          []string
	GamesAnalyzed    int
}

type weightedComponent struct {
	value  float64
	weight float64
}

// recentFormFeature extracts the recent-form component from a player's
// last 5 games strictly before gameDate (§4.E.2). ok is false when fewer
// than minGamesRecent games are available and the component must be
// dropped.
func recentFormFeature(recent []GameLog) (ppg, goalRatio float64, ok bool) {
	if len(recent) < minGamesRecent {
		return 0, defaultGoalRatio, false
	}
	var goals, points int
	for _, g := range recent {
		goals += g.Goals
		points += g.Points
	}
	games := len(recent)
	ratio := defaultGoalRatio
	if points > 0 {
		ratio = float64(goals) / float64(points)
	}
	return float64(points) / float64(games), ratio, true
}

// seasonBaselineFeature extracts the season-baseline component (§4.E.2).
func seasonBaselineFeature(s SeasonStats) (ppg float64, ok bool) {
	if s.Games < minGamesSeason {
		return 0, false
	}
	return float64(s.Points) / float64(s.Games), true
}

// h2hFeature extracts the head-to-head component from every career game
// against opponentCode (§4.E.2).
func h2hFeature(vsOpponent []GameLog) (ppg float64, ok bool) {
	if len(vsOpponent) < minGamesH2H {
		return 0, false
	}
	var points int
	for _, g := range vsOpponent {
		points += g.Points
	}
	return float64(points) / float64(len(vsOpponent)), true
}

// homeAwayAdjustment groups career game logs by home/away side and returns
// the additive adjustment for the requested side (§4.E.2).
func homeAwayAdjustment(career []GameLog, isHome bool) float64 {
	var homePts, homeGames, awayPts, awayGames int
	for _, g := range career {
		if g.IsHome {
			homePts += g.Points
			homeGames++
		} else {
			awayPts += g.Points
			awayGames++
		}
	}
	var homePPG, awayPPG float64
	if homeGames > 0 {
		homePPG = float64(homePts) / float64(homeGames)
	}
	if awayGames > 0 {
		awayPPG = float64(awayPts) / float64(awayGames)
	}
	mean := (homePPG + awayPPG) / 2
	if isHome {
		return homePPG - mean
	}
	return awayPPG - mean
}

// goalieAdjustment derives the goalie-quality adjustment (§4.E.2).
// Positive values favor the offensive player against a weaker goalie.
func goalieAdjustment(opponentStarterSavePct *float64) (adjustment, savePct float64) {
	sv := leagueAvgSavePct
	if opponentStarterSavePct != nil {
		sv = *opponentStarterSavePct
	}
	diff := leagueAvgSavePct - sv
	return diff * 5.0, sv
}

// paceAdjustment derives the expected-pace adjustment (§4.E.2).
func paceAdjustment(expectedTotal float64) float64 {
	return (expectedTotal - leagueAvgGameTotal) * 0.10
}

// blend implements the core weighted-renormalization algorithm (§4.E.3,
// testable property 7).
func blend(components []weightedComponent) float64 {
	var weighted, totalWeight float64
	for _, c := range components {
		weighted += c.value * c.weight
		totalWeight += c.weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

// poissonProbGoal, poissonProbPoint, and poissonProbMultiPoint implement
// the §4.E.3 step-5 Poisson formulas with their respective floors.
func poissonProbGoal(expectedGoals float64) float64 {
	if expectedGoals <= 0 {
		return 0.05
	}
	return 1 - math.Exp(-expectedGoals)
}

func poissonProbPoint(expectedPoints float64) float64 {
	if expectedPoints <= 0 {
		return 0.10
	}
	return 1 - math.Exp(-expectedPoints)
}

func poissonProbMultiPoint(lambda float64) float64 {
	if lambda <= 0 {
		return 0.02
	}
	return 1 - math.Exp(-lambda) - lambda*math.Exp(-lambda)
}

func round(f float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(f*scale) / scale
}

func round3(f float64) float64 { return round(f, 3) }
func round2(f float64) float64 { return round(f, 2) }
