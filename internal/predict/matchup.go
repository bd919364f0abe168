package predict

// MatchupPrediction is the contract's per-game aggregate output (§4.E.6):
// top-K skater predictions per side, a merged overall top-5 by goal
// probability, and a derived pace rating.
type MatchupPrediction struct {
	HomeTeam      string
	AwayTeam      string
	HomeTopK      []PlayerPrediction
	AwayTopK      []PlayerPrediction
	TopOverall    []PlayerPrediction
	PaceRating    string
	ExpectedTotal float64
}

// topScorersK is the merged overall list's fixed cap (§4.E.6); unrelated
// to the caller-supplied per-side top_n.
const topScorersK = 5

// BuildMatchupPrediction runs PredictPlayer over every input on both
// sides and aggregates the results (§4.E.6). homeInputs/awayInputs must
// already be each side's top-N players by season points (the caller's
// requested top_n, applied at roster-selection time) with IsHome set
// correctly and ExpectedTotalGoals populated from the same MatchupContext
// so every player in the game shares one pace figure. HomeTopK/AwayTopK
// preserve that season-points order; only the merged TopOverall is
// resorted by prob_goal and capped at 5.
func BuildMatchupPrediction(homeTeam, awayTeam string, homeInputs, awayInputs []PlayerInput, expectedTotal float64) MatchupPrediction {
	homePreds := make([]PlayerPrediction, 0, len(homeInputs))
	for _, in := range homeInputs {
		homePreds = append(homePreds, PredictPlayer(in))
	}
	awayPreds := make([]PlayerPrediction, 0, len(awayInputs))
	for _, in := range awayInputs {
		awayPreds = append(awayPreds, PredictPlayer(in))
	}

	all := make([]PlayerPrediction, 0, len(homePreds)+len(awayPreds))
	all = append(all, homePreds...)
	all = append(all, awayPreds...)

	return MatchupPrediction{
		HomeTeam:      homeTeam,
		AwayTeam:      awayTeam,
		HomeTopK:      homePreds,
		AwayTopK:      awayPreds,
		TopOverall:    topKByProbGoal(all, topScorersK),
		PaceRating:    paceRating(expectedTotal),
		ExpectedTotal: round2(expectedTotal),
	}
}

// paceRating buckets the expected combined goal total into a
// human-readable label (§4.E.6): high at 6.5+, low at 5.5 or under, else
// average.
func paceRating(expectedTotal float64) string {
	switch {
	case expectedTotal >= 6.5:
		return "high"
	case expectedTotal <= 5.5:
		return "low"
	default:
		return "average"
	}
}
