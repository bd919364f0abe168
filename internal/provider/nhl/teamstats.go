package nhl

import (
	"context"
	"encoding/json"
	"fmt"
)

const teamSummaryURL = "https://api.nhle.com/stats/rest/en/team/summary"

type teamSummaryResponse struct {
	Data []struct {
		TeamFullName      string  `json:"teamFullName"`
		Wins              int     `json:"wins"`
		Losses            int     `json:"losses"`
		OtLosses          int     `json:"otLosses"`
		GoalsForPerGame   float64 `json:"goalsForPerGame"`
		GoalsAgainstPerGame float64 `json:"goalsAgainstPerGame"`
		ShotsForPerGame   float64 `json:"shotsForPerGame"`
		ShotsAgainstPerGame float64 `json:"shotsAgainstPerGame"`
		PowerPlayPct      float64 `json:"powerPlayPct"`
		PenaltyKillPct    float64 `json:"penaltyKillPct"`
	} `json:"data"`
}

// TeamStatsAdapter fetches season-level team summaries.
type TeamStatsAdapter struct {
	client *Client
}

func NewTeamStatsAdapter(c *Client) *TeamStatsAdapter {
	return &TeamStatsAdapter{client: c}
}

// GetTeamStats fetches the regular-season team summary for a season.
// Returns an empty slice on any transient failure; entries whose display
// name cannot be mapped to a 3-letter code are skipped.
func (a *TeamStatsAdapter) GetTeamStats(ctx context.Context, externalSeasonYear int) []TeamSeasonStatRecord {
	seasonID := fmt.Sprintf("%d%d", externalSeasonYear, externalSeasonYear+1)
	url := fmt.Sprintf("%s?cayenneExp=seasonId=%s%%20and%%20gameTypeId=2", teamSummaryURL, seasonID)
	body, err := a.client.get(ctx, url)
	if err != nil {
		return nil
	}
	var resp teamSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	var out []TeamSeasonStatRecord
	for _, t := range resp.Data {
		code, ok := TeamCodeForDisplayName(t.TeamFullName)
		if !ok {
			continue
		}
		out = append(out, TeamSeasonStatRecord{
			TeamCode:         code,
			Season:           seasonID,
			Wins:             t.Wins,
			Losses:           t.Losses,
			OTLosses:         t.OtLosses,
			GoalsForPerGame:  t.GoalsForPerGame,
			GoalsAgstPerGame: t.GoalsAgainstPerGame,
			ShotsForPerGame:  t.ShotsForPerGame,
			ShotsAgstPerGame: t.ShotsAgainstPerGame,
			PowerPlayPct:     t.PowerPlayPct,
			PenaltyKillPct:   t.PenaltyKillPct,
		})
	}
	return out
}
