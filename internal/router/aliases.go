// Package router implements the query dispatch layer (§4.F): classifier
// DTO validation, team/timeframe normalization, dispatch-priority
// resolution across the prediction, trade, and SQL-backed read paths, and
// optional RAG context appending.
//
// Grounded on original_source/backend/src/agents/copilot.py's dispatch
// priority order and _normalize_teams alias table.
package router

import "github.com/albapepper/puckline-data/internal/provider/nhl"

// NormalizeTeam resolves a free-form team reference to its 3-letter code,
// reusing the display-name/alias tables already built for the
// injury adapter's team grouping (§4.A) so the router has exactly one
// table to maintain.
func NormalizeTeam(raw string) (string, bool) {
	return nhl.NormalizeTeam(raw)
}

// NormalizeTeams applies NormalizeTeam across a slice, dropping any entry
// that doesn't resolve.
func NormalizeTeams(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if code, ok := NormalizeTeam(r); ok {
			out = append(out, code)
		}
	}
	return out
}

// KnownTeamCodes re-exports the 33-code franchise list (ARI and UTA both
// included) for handlers that
// need to enumerate every team (e.g. the all-teams breakdown dispatch).
var KnownTeamCodes = nhl.KnownTeamCodes
