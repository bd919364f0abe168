package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const scheduleBaseURL = "https://api-web.nhle.com/v1/schedule"

type scheduleResponse struct {
	GameWeek []struct {
		Date  string `json:"date"`
		Games []struct {
			ID           int64  `json:"id"`
			GameDate     string `json:"gameDate"`
			StartTimeUTC string `json:"startTimeUTC"`
			GameState    string `json:"gameState"`
			Venue        struct {
				Default string `json:"default"`
			} `json:"venue"`
			HomeTeam struct {
				Abbrev string `json:"abbrev"`
				Score  *int   `json:"score"`
			} `json:"homeTeam"`
			AwayTeam struct {
				Abbrev string `json:"abbrev"`
				Score  *int   `json:"score"`
			} `json:"awayTeam"`
		} `json:"games"`
	} `json:"gameWeek"`
}

// ScheduleAdapter fetches a week of games anchored at a given ISO date.
type ScheduleAdapter struct {
	client *Client
}

func NewScheduleAdapter(c *Client) *ScheduleAdapter {
	return &ScheduleAdapter{client: c}
}

// GetScheduleForDate fetches the week containing date and projects every
// game in it. The source's day-date field is preferred over a UTC-derived
// date since evening local games may fall on the next UTC calendar day
// (§4.A schedule adapter). Returns an empty slice, never an error, on any
// transient failure.
func (a *ScheduleAdapter) GetScheduleForDate(ctx context.Context, date string) []GameRecord {
	url := fmt.Sprintf("%s/%s", scheduleBaseURL, date)
	body, err := a.client.get(ctx, url)
	if err != nil {
		return nil
	}
	var resp scheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	var out []GameRecord
	for _, week := range resp.GameWeek {
		for _, g := range week.Games {
			start, _ := time.Parse(time.RFC3339, g.StartTimeUTC)
			out = append(out, GameRecord{
				ExternalID:  g.ID,
				Date:        week.Date,
				StartUTC:    start,
				Venue:       g.Venue.Default,
				HomeTeam:    g.HomeTeam.Abbrev,
				AwayTeam:    g.AwayTeam.Abbrev,
				HomeScore:   g.HomeTeam.Score,
				AwayScore:   g.AwayTeam.Score,
				State:       g.GameState,
				IsCompleted: g.GameState == "OFF" || g.GameState == "FINAL",
			})
		}
	}
	return out
}
