package nhl

import (
	"context"
	"encoding/json"
	"fmt"
)

const goalieSummaryURL = "https://api.nhle.com/stats/rest/en/goalie/summary"

type goalieSummaryResponse struct {
	Data []struct {
		PlayerID     int64   `json:"playerId"`
		GamesStarted int     `json:"gamesStarted"`
		Wins         int     `json:"wins"`
		Losses       int     `json:"losses"`
		OtLosses     int     `json:"otLosses"`
		Shutouts     int     `json:"shutouts"`
		ShotsAgainst int     `json:"shotsAgainst"`
		Saves        int     `json:"saves"`
		SavePct      float64 `json:"savePct"`
		GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
		TimeOnIce    float64 `json:"timeOnIce"`
	} `json:"data"`
}

// GoalieStatsAdapter fetches season-level goalie summaries.
type GoalieStatsAdapter struct {
	client *Client
}

func NewGoalieStatsAdapter(c *Client) *GoalieStatsAdapter {
	return &GoalieStatsAdapter{client: c}
}

// GetGoalieStats fetches the regular-season goalie summary for a season
// using the cayenneExp filter form named in §6. Returns an empty slice on
// any transient failure.
func (a *GoalieStatsAdapter) GetGoalieStats(ctx context.Context, externalSeasonYear int) []GoalieRecord {
	seasonID := fmt.Sprintf("%d%d", externalSeasonYear, externalSeasonYear+1)
	url := fmt.Sprintf("%s?cayenneExp=seasonId=%s%%20and%%20gameTypeId=2", goalieSummaryURL, seasonID)
	body, err := a.client.get(ctx, url)
	if err != nil {
		return nil
	}
	var resp goalieSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	out := make([]GoalieRecord, 0, len(resp.Data))
	for _, g := range resp.Data {
		out = append(out, GoalieRecord{
			PlayerExternalID: g.PlayerID,
			Season:           seasonID,
			GamesStarted:     g.GamesStarted,
			Wins:             g.Wins,
			Losses:           g.Losses,
			OTLosses:         g.OtLosses,
			Shutouts:         g.Shutouts,
			ShotsAgainst:     g.ShotsAgainst,
			Saves:            g.Saves,
			SavePct:          g.SavePct,
			GAA:              g.GoalsAgainstAverage,
			TOI:              g.TimeOnIce,
		})
	}
	return out
}
