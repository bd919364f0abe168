package nhl

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/albapepper/puckline-data/internal/season"
)

const moneypuckBaseURL = "https://moneypuck.com/moneypuck/playerData/seasonSummary"

// AdvancedStatsAdapter fetches and projects the season-level advanced-stats
// CSV feed (§4.A advanced-stats adapter, grounded on
// original_source/backend/src/ingestion/moneypuck.py).
type AdvancedStatsAdapter struct {
	client *Client
}

func NewAdvancedStatsAdapter(c *Client) *AdvancedStatsAdapter {
	return &AdvancedStatsAdapter{client: c}
}

// seenAboveSecondsThreshold is the icetime value above which a season's
// total ice time must be in seconds rather than minutes (moneypuck.py).
const seenAboveSecondsThreshold = 5000

// GetSeasonStats downloads the CSV for the external season code (the
// league-API's 4-digit starting year, not the internal 8-digit code) and
// projects rows filtered to situation=="all". Returns an empty slice on
// any fetch or parse failure.
func (a *AdvancedStatsAdapter) GetSeasonStats(ctx context.Context, externalSeasonYear int) []SeasonStatRecord {
	url := fmt.Sprintf("%s/%d/regular/skaters.csv", moneypuckBaseURL, externalSeasonYear)
	body, err := a.client.get(ctx, url)
	if err != nil {
		return nil
	}

	r := csv.NewReader(strings.NewReader(string(body)))
	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}

	header := rows[0]
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	idx := func(name string) int {
		i, ok := col[name]
		if !ok {
			return -1
		}
		return i
	}

	situationIdx := idx("situation")
	playerIDIdx := idx("playerId")
	gamesIdx := idx("games_played")
	icetimeIdx := idx("icetime")
	goalsIdx := idx("I_F_goals")
	assistsIdx := idx("I_F_primaryAssists")
	secondaryAssistsIdx := idx("I_F_secondaryAssists")
	pointsIdx := idx("I_F_points")
	shotsIdx := idx("I_F_shotsOnGoal")
	xGoalsIdx := idx("I_F_xGoals")
	corsiIdx := idx("corsiPercentage")
	fenwickIdx := idx("fenwickPercentage")

	var out []SeasonStatRecord
	for _, row := range rows[1:] {
		if situationIdx >= 0 && row[situationIdx] != "all" {
			continue
		}
		playerID := atoi64(row, playerIDIdx)
		games := atoi(row, gamesIdx)
		if games <= 0 {
			continue
		}
		icetime := atof(row, icetimeIdx)
		xGoals := atof(row, xGoalsIdx)

		var toiPerGame, xgPer60 float64
		if icetime > seenAboveSecondsThreshold {
			toiPerGame = icetime / float64(games) / 60.0
			if icetime > 0 {
				xgPer60 = xGoals / (icetime / 3600.0)
			}
		} else {
			toiPerGame = icetime / float64(games)
			if icetime > 0 {
				xgPer60 = xGoals / (icetime / 60.0)
			}
		}

		corsi := atof(row, corsiIdx)
		if corsi <= 1 {
			corsi *= 100
		}
		fenwick := atof(row, fenwickIdx)
		if fenwick <= 1 {
			fenwick *= 100
		}

		assists := atoi(row, assistsIdx) + atoi(row, secondaryAssistsIdx)

		out = append(out, SeasonStatRecord{
			PlayerExternalID: playerID,
			Season:           season.Encode(externalSeasonYear),
			Games:            games,
			Goals:            atoi(row, goalsIdx),
			Assists:          assists,
			Points:           atoi(row, pointsIdx),
			Shots:            atoi(row, shotsIdx),
			TOIPerGame:       toiPerGame,
			ExpectedGoals:    xGoals,
			XGPer60:          xgPer60,
			CorsiForPct:      corsi,
			FenwickForPct:    fenwick,
			ShotsOnGoal:      atoi(row, shotsIdx),
		})
	}
	return out
}

func atoi(row []string, i int) int {
	if i < 0 || i >= len(row) {
		return 0
	}
	v, err := strconv.Atoi(row[i])
	if err != nil {
		return 0
	}
	return v
}

func atoi64(row []string, i int) int64 {
	if i < 0 || i >= len(row) {
		return 0
	}
	v, err := strconv.ParseInt(row[i], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func atof(row []string, i int) float64 {
	if i < 0 || i >= len(row) {
		return 0
	}
	v, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return 0
	}
	return v
}
