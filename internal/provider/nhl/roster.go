package nhl

import (
	"context"
	"encoding/json"
	"fmt"
)

const rosterBaseURL = "https://api-web.nhle.com/v1/roster"

type nameField struct {
	Default string `json:"default"`
}

type rosterPlayerJSON struct {
	ID        int64     `json:"id"`
	FirstName nameField `json:"firstName"`
	LastName  nameField `json:"lastName"`
}

type rosterResponse struct {
	Forwards   []rosterPlayerJSON `json:"forwards"`
	Defensemen []rosterPlayerJSON `json:"defensemen"`
	Goalies    []rosterPlayerJSON `json:"goalies"`
}

// RosterAdapter fetches a team's full roster for a season.
type RosterAdapter struct {
	client *Client
}

func NewRosterAdapter(c *Client) *RosterAdapter {
	return &RosterAdapter{client: c}
}

// GetRoster flattens the three position-group buckets into a single list
// tagged with default positions F/D/G (§4.A roster adapter). Returns an
// empty slice on any transient failure.
func (a *RosterAdapter) GetRoster(ctx context.Context, teamCode, seasonCode string) []RosterPlayer {
	url := fmt.Sprintf("%s/%s/%s", rosterBaseURL, teamCode, seasonCode)
	body, err := a.client.get(ctx, url)
	if err != nil {
		return nil
	}
	var resp rosterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	flatten := func(players []rosterPlayerJSON, position string) []RosterPlayer {
		out := make([]RosterPlayer, 0, len(players))
		for _, p := range players {
			out = append(out, RosterPlayer{
				ExternalID: p.ID,
				FullName:   fmt.Sprintf("%s %s", p.FirstName.Default, p.LastName.Default),
				Position:   position,
				TeamCode:   teamCode,
			})
		}
		return out
	}

	var all []RosterPlayer
	all = append(all, flatten(resp.Forwards, "F")...)
	all = append(all, flatten(resp.Defensemen, "D")...)
	all = append(all, flatten(resp.Goalies, "G")...)
	return all
}
