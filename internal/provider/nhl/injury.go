package nhl

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

const injuriesURL = "https://site.api.espn.com/apis/site/v2/sports/hockey/nhl/injuries"

type injuriesResponse struct {
	Injuries []struct {
		Team struct {
			DisplayName string `json:"displayName"`
		} `json:"team"`
		Athletes []struct {
			Athlete struct {
				ID       string `json:"id"`
				FullName string `json:"displayName"`
			} `json:"athlete"`
			Status struct {
				Type struct {
					Description string `json:"description"`
				} `json:"type"`
			} `json:"status"`
			ShortComment string `json:"shortComment"`
			Date         string `json:"date"`
		} `json:"athletes"`
	} `json:"injuries"`
}

// statusPrecedence lists injury-status substrings in the precedence order
// used when a free-text status description matches more than one term:
// LTIR > IR > DTD > Out > Questionable > Probable > Suspended.
var statusPrecedence = []struct {
	substr string
	status string
}{
	{"ltir", "LTIR"},
	{"long-term", "LTIR"},
	{"ir", "IR"},
	{"day-to-day", "Day-to-Day"},
	{"day to day", "Day-to-Day"},
	{"dtd", "Day-to-Day"},
	{"out", "Out"},
	{"questionable", "Questionable"},
	{"probable", "Probable"},
	{"suspended", "Suspended"},
	{"suspension", "Suspended"},
}

// NormalizeInjuryStatus applies the precedence-ordered substring match
// described in §4.A. Unmatched text yields "Unknown".
func NormalizeInjuryStatus(raw string) string {
	s := strings.ToLower(raw)
	for _, p := range statusPrecedence {
		if strings.Contains(s, p.substr) {
			return p.status
		}
	}
	return "Unknown"
}

// InjuryAdapter fetches the league-wide injury feed.
type InjuryAdapter struct {
	client *Client
}

func NewInjuryAdapter(c *Client) *InjuryAdapter {
	return &InjuryAdapter{client: c}
}

// GetInjuries fetches league-wide injuries, groups by team via the
// display-name table, and normalizes the free-text status (§4.A injury
// adapter). Returns an empty slice on any transient failure.
func (a *InjuryAdapter) GetInjuries(ctx context.Context) []InjuryRecord {
	body, err := a.client.get(ctx, injuriesURL)
	if err != nil {
		return nil
	}
	var resp injuriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	var out []InjuryRecord
	for _, teamBlock := range resp.Injuries {
		code, ok := TeamCodeForDisplayName(teamBlock.Team.DisplayName)
		if !ok {
			continue
		}
		for _, a := range teamBlock.Athletes {
			extID, _ := strconv.ParseInt(a.Athlete.ID, 10, 64)
			out = append(out, InjuryRecord{
				PlayerExternalID: extID,
				TeamCode:         code,
				Status:           NormalizeInjuryStatus(a.Status.Type.Description),
				Description:      a.ShortComment,
				ReportedDate:     a.Date,
			})
		}
	}
	return out
}
