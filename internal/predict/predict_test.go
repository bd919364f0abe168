package predict

import (
	"math"
	"strings"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// TestBlendRenormalizesOverAvailableComponents covers property 7: when a
// component is dropped for insufficient data, the remaining weights still
// sum to 1 after renormalization.
func TestBlendRenormalizesOverAvailableComponents(t *testing.T) {
	full := blend([]weightedComponent{
		{1.0, weightRecentForm},
		{2.0, weightSeasonBaseline},
		{0.5, weightH2H},
	})
	want := (1.0*weightRecentForm + 2.0*weightSeasonBaseline + 0.5*weightH2H) / (weightRecentForm + weightSeasonBaseline + weightH2H)
	if !approxEqual(full, want, 1e-9) {
		t.Fatalf("blend = %v, want %v", full, want)
	}

	dropped := blend([]weightedComponent{
		{2.0, weightSeasonBaseline},
		{0.5, weightH2H},
	})
	wantDropped := (2.0*weightSeasonBaseline + 0.5*weightH2H) / (weightSeasonBaseline + weightH2H)
	if !approxEqual(dropped, wantDropped, 1e-9) {
		t.Fatalf("blend (dropped) = %v, want %v", dropped, wantDropped)
	}
}

// TestPoissonFloors covers property 6: every probability formula floors
// at its documented minimum rather than going to zero or negative.
func TestPoissonFloors(t *testing.T) {
	if got := poissonProbGoal(0); got != 0.05 {
		t.Fatalf("poissonProbGoal(0) = %v, want 0.05", got)
	}
	if got := poissonProbPoint(0); got != 0.10 {
		t.Fatalf("poissonProbPoint(0) = %v, want 0.10", got)
	}
	if got := poissonProbMultiPoint(0); got != 0.02 {
		t.Fatalf("poissonProbMultiPoint(0) = %v, want 0.02", got)
	}
	if got := poissonProbGoal(2.0); got <= 0 || got >= 1 {
		t.Fatalf("poissonProbGoal(2.0) = %v, want in (0,1)", got)
	}
}

// TestConfidenceTierBuckets covers property 8: the confidence score is
// clamped to [0,1] and labeled consistently with the documented
// thresholds.
func TestConfidenceTierBuckets(t *testing.T) {
	cases := []struct {
		games       int
		goalieKnown bool
		wantLabel   string
	}{
		{0, false, "Low"},
		{15, false, "Low"},
		{18, false, "Low"},
		{20, false, "Medium"},
		{33, false, "Medium"},
		{35, false, "High"},
		{40, false, "High"},
		{100, false, "High"},
		{15, true, "Medium"},
	}
	for _, c := range cases {
		label, score := confidenceTier(c.games, c.goalieKnown)
		if label != c.wantLabel {
			t.Fatalf("confidenceTier(%d, %v) label = %q, want %q (score=%v)", c.games, c.goalieKnown, label, c.wantLabel, score)
		}
		if score < 0 || score > 1 {
			t.Fatalf("confidenceTier(%d, %v) score = %v out of [0,1]", c.games, c.goalieKnown, score)
		}
	}
}

// TestPredictPlayerScenarioHotStreakHome: a player on a hot streak at home
// against a weak goalie should score above their season baseline and carry
// a recent-form factor string.
func TestPredictPlayerScenarioHotStreakHome(t *testing.T) {
	weakGoalie := 0.880
	in := PlayerInput{
		PlayerName: "Test Player",
		Opponent:   "BOS",
		IsHome:     true,
		Recent: []GameLog{
			{Goals: 2, Points: 3, IsHome: true},
			{Goals: 1, Points: 2, IsHome: true},
			{Goals: 1, Points: 2, IsHome: false},
			{Goals: 2, Points: 2, IsHome: true},
			{Goals: 0, Points: 1, IsHome: false},
		},
		Season:          SeasonStats{Games: 40, Points: 45},
		Career:          append(manyHomeGames(20, 1.2), manyAwayGames(20, 0.8)...),
		VsOpponent:      []GameLog{{Points: 2}, {Points: 1}, {Points: 3}},
		OpponentSavePct: &weakGoalie,
		ExpectedTotalGoals: 6.5,
	}

	pred := PredictPlayer(in)

	if pred.ExpectedPoints <= 0 {
		t.Fatalf("expected positive expected points, got %v", pred.ExpectedPoints)
	}
	if pred.Confidence == "" {
		t.Fatalf("expected a confidence label")
	}
	if len(pred.Factors) == 0 {
		t.Fatalf("expected at least one rendered factor string")
	}
	if seasonPPG := 45.0 / 40.0; pred.ExpectedPoints <= seasonPPG {
		t.Fatalf("expected points %v not above season baseline %v", pred.ExpectedPoints, seasonPPG)
	}
	if !strings.HasPrefix(pred.Factors[0], "Hot streak") {
		t.Fatalf("first factor = %q, want a hot-streak recent-form factor", pred.Factors[0])
	}
	if pred.ProbGoal <= 0 || pred.ProbGoal >= 1 {
		t.Fatalf("ProbGoal out of range: %v", pred.ProbGoal)
	}
}

// TestPredictPlayerScenarioColdDataSparse: a player with no recent games,
// only two season games, and no H2H history must still produce a
// non-crashing, gracefully degraded prediction (§4.E.7).
func TestPredictPlayerScenarioColdDataSparse(t *testing.T) {
	in := PlayerInput{
		PlayerName: "Rookie Callup",
		Opponent:   "NYR",
		IsHome:     false,
		Recent:     nil,
		Season:     SeasonStats{Games: 2, Points: 1},
		Career:     nil,
		VsOpponent: nil,
	}

	pred := PredictPlayer(in)

	if pred.ExpectedPoints < 0 {
		t.Fatalf("expected non-negative expected points under sparse data, got %v", pred.ExpectedPoints)
	}
	if pred.Confidence != "Low" {
		t.Fatalf("expected Low confidence with no career games, got %q", pred.Confidence)
	}
	if pred.ProbGoal < 0.05 {
		t.Fatalf("expected the floor probability to apply, got %v", pred.ProbGoal)
	}
}

func TestBuildMatchupPredictionAggregation(t *testing.T) {
	weakGoalie := 0.89
	home := []PlayerInput{
		{PlayerName: "A", Opponent: "AWAY", IsHome: true, Season: SeasonStats{Games: 30, Points: 25}, OpponentSavePct: &weakGoalie, ExpectedTotalGoals: 6.2},
		{PlayerName: "B", Opponent: "AWAY", IsHome: true, Season: SeasonStats{Games: 30, Points: 10}, OpponentSavePct: &weakGoalie, ExpectedTotalGoals: 6.2},
	}
	away := []PlayerInput{
		{PlayerName: "C", Opponent: "HOME", IsHome: false, Season: SeasonStats{Games: 30, Points: 40}, ExpectedTotalGoals: 6.2},
	}

	m := BuildMatchupPrediction("HOME", "AWAY", home, away, 6.2)

	if len(m.HomeTopK) != 2 || len(m.AwayTopK) != 1 {
		t.Fatalf("unexpected topK sizes: home=%d away=%d", len(m.HomeTopK), len(m.AwayTopK))
	}
	if len(m.TopOverall) != 3 {
		t.Fatalf("expected merged top overall of 3, got %d", len(m.TopOverall))
	}
	if m.PaceRating != "average" {
		t.Fatalf("expected average pace rating at 6.2 total goals, got %q", m.PaceRating)
	}
}

func manyHomeGames(n int, ppg float64) []GameLog {
	games := make([]GameLog, n)
	for i := range games {
		games[i] = GameLog{IsHome: true, Points: int(ppg)}
	}
	return games
}

func manyAwayGames(n int, ppg float64) []GameLog {
	games := make([]GameLog, n)
	for i := range games {
		games[i] = GameLog{IsHome: false, Points: int(ppg)}
	}
	return games
}
