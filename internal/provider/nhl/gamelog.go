package nhl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/albapepper/puckline-data/internal/season"
)

const gameLogBaseURL = "https://api-web.nhle.com/v1/player"

type gameLogResponse struct {
	GameLog []struct {
		GameID          int64  `json:"gameId"`
		GameDate        string `json:"gameDate"`
		TeamAbbrev      string `json:"teamAbbrev"`
		OpponentAbbrev  string `json:"opponentAbbrev"`
		HomeRoadFlag    string `json:"homeRoadFlag"`
		Goals           int    `json:"goals"`
		Assists         int    `json:"assists"`
		Points          int    `json:"points"`
		Shots           int    `json:"shots"`
		Toi             string `json:"toi"`
		PlusMinus       int    `json:"plusMinus"`
		Pim             int    `json:"pim"`
		PowerPlayGoals  int    `json:"powerPlayGoals"`
		ShorthandedGoals int   `json:"shorthandedGoals"`
		GameWinningGoals int   `json:"gameWinningGoals"`
		OtGoals         int    `json:"otGoals"`
		ShiftsPerGame   int    `json:"shifts"`
	} `json:"gameLog"`
}

// GameLogAdapter fetches a player's per-game log for a season.
type GameLogAdapter struct {
	client *Client
}

func NewGameLogAdapter(c *Client) *GameLogAdapter {
	return &GameLogAdapter{client: c}
}

// GetPlayerGameLog parses every game row, converting the "MM:SS"
// time-on-ice string into decimal minutes via season.ParseTOI (§4.A
// game-log adapter). Returns an empty slice on any HTTP error.
func (a *GameLogAdapter) GetPlayerGameLog(ctx context.Context, playerExtID int64, seasonCode string) []GameLogEntry {
	url := fmt.Sprintf("%s/%d/game-log/%s/2", gameLogBaseURL, playerExtID, seasonCode)
	body, err := a.client.get(ctx, url)
	if err != nil {
		return nil
	}
	var resp gameLogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	out := make([]GameLogEntry, 0, len(resp.GameLog))
	for _, g := range resp.GameLog {
		out = append(out, GameLogEntry{
			PlayerExternalID: playerExtID,
			GameExternalID:   g.GameID,
			Date:             g.GameDate,
			Season:           seasonCode,
			TeamCode:         g.TeamAbbrev,
			OpponentCode:     g.OpponentAbbrev,
			IsHome:           g.HomeRoadFlag == "H",
			Goals:            g.Goals,
			Assists:          g.Assists,
			Points:           g.Points,
			Shots:            g.Shots,
			TOI:              season.ParseTOI(g.Toi),
			PlusMinus:        g.PlusMinus,
			PenaltyMinutes:   g.Pim,
			PowerPlayGoals:   g.PowerPlayGoals,
			ShorthandedGoals: g.ShorthandedGoals,
			GameWinningGoals: g.GameWinningGoals,
			OvertimeGoals:    g.OtGoals,
			Shifts:           g.ShiftsPerGame,
		})
	}
	return out
}
