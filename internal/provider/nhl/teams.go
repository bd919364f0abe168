package nhl

import "strings"

// teamDisplayNames maps full display names (as used by injury/standings
// feeds) to 3-letter codes. teamAliases additionally covers informal shorthand
// (city names, nicknames) used by the query router's team normalization
// (§4.F, property 9).
var teamDisplayNames = map[string]string{
	"anaheim ducks":         "ANA",
	"arizona coyotes":       "ARI",
	"boston bruins":         "BOS",
	"buffalo sabres":        "BUF",
	"calgary flames":        "CGY",
	"carolina hurricanes":   "CAR",
	"chicago blackhawks":    "CHI",
	"colorado avalanche":    "COL",
	"columbus blue jackets": "CBJ",
	"dallas stars":          "DAL",
	"detroit red wings":     "DET",
	"edmonton oilers":       "EDM",
	"florida panthers":      "FLA",
	"los angeles kings":     "LAK",
	"minnesota wild":        "MIN",
	"montreal canadiens":    "MTL",
	"nashville predators":   "NSH",
	"new jersey devils":     "NJD",
	"new york islanders":    "NYI",
	"new york rangers":      "NYR",
	"ottawa senators":       "OTT",
	"philadelphia flyers":   "PHI",
	"pittsburgh penguins":   "PIT",
	"san jose sharks":       "SJS",
	"seattle kraken":        "SEA",
	"st louis blues":        "STL",
	"st. louis blues":       "STL",
	"tampa bay lightning":   "TBL",
	"toronto maple leafs":   "TOR",
	"utah hockey club":      "UTA",
	"vancouver canucks":     "VAN",
	"vegas golden knights":  "VGK",
	"washington capitals":   "WSH",
	"winnipeg jets":         "WPG",
}

// teamAliases covers informal shorthand beyond the canonical display name:
// city names, nicknames, common abbreviations the router must normalize.
var teamAliases = map[string]string{
	"ducks":       "ANA",
	"anaheim":     "ANA",
	"coyotes":     "ARI",
	"yotes":       "ARI",
	"arizona":     "ARI",
	"bruins":      "BOS",
	"boston":      "BOS",
	"sabres":      "BUF",
	"buffalo":     "BUF",
	"flames":      "CGY",
	"calgary":     "CGY",
	"canes":       "CAR",
	"hurricanes":  "CAR",
	"carolina":    "CAR",
	"blackhawks":  "CHI",
	"hawks":       "CHI",
	"chicago":     "CHI",
	"avalanche":   "COL",
	"avs":         "COL",
	"colorado":    "COL",
	"blue jackets": "CBJ",
	"jackets":     "CBJ",
	"columbus":    "CBJ",
	"stars":       "DAL",
	"dallas":      "DAL",
	"red wings":   "DET",
	"wings":       "DET",
	"detroit":     "DET",
	"oilers":      "EDM",
	"edmonton":    "EDM",
	"panthers":    "FLA",
	"florida":     "FLA",
	"cats":        "FLA",
	"kings":       "LAK",
	"la kings":    "LAK",
	"los angeles": "LAK",
	"wild":        "MIN",
	"minnesota":   "MIN",
	"canadiens":   "MTL",
	"habs":        "MTL",
	"montreal":    "MTL",
	"predators":   "NSH",
	"preds":       "NSH",
	"nashville":   "NSH",
	"devils":      "NJD",
	"new jersey":  "NJD",
	"islanders":   "NYI",
	"isles":       "NYI",
	"rangers":     "NYR",
	"blueshirts":  "NYR",
	"senators":    "OTT",
	"sens":        "OTT",
	"ottawa":      "OTT",
	"flyers":      "PHI",
	"philadelphia": "PHI",
	"penguins":    "PIT",
	"pens":        "PIT",
	"pittsburgh":  "PIT",
	"sharks":      "SJS",
	"san jose":    "SJS",
	"kraken":      "SEA",
	"seattle":     "SEA",
	"blues":       "STL",
	"st louis":    "STL",
	"st. louis":   "STL",
	"lightning":   "TBL",
	"bolts":       "TBL",
	"tampa":       "TBL",
	"tampa bay":   "TBL",
	"maple leafs": "TOR",
	"leafs":       "TOR",
	"toronto":     "TOR",
	"utah":        "UTA",
	"canucks":     "VAN",
	"vancouver":   "VAN",
	"golden knights": "VGK",
	"knights":     "VGK",
	"vegas":       "VGK",
	"capitals":    "WSH",
	"caps":        "WSH",
	"washington":  "WSH",
	"jets":        "WPG",
	"winnipeg":    "WPG",
}

// KnownTeamCodes lists every franchise's 3-letter code, derived from
// teamDisplayNames so the two tables can never drift apart.
var KnownTeamCodes = func() []string {
	seen := map[string]bool{}
	var codes []string
	for _, code := range teamDisplayNames {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}()

// NormalizeTeam resolves a free-form team reference (display name, city,
// nickname, or already-canonical code) to its 3-letter code. Returns "",
// false when no match is found.
func NormalizeTeam(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	if len(s) == 3 {
		upper := strings.ToUpper(s)
		for _, code := range teamDisplayNames {
			if code == upper {
				return upper, true
			}
		}
	}
	if code, ok := teamDisplayNames[s]; ok {
		return code, true
	}
	if code, ok := teamAliases[s]; ok {
		return code, true
	}
	return "", false
}

// TeamCodeForDisplayName resolves an injury/standings feed's team display
// name to its 3-letter code (§4.A injury adapter grouping step).
func TeamCodeForDisplayName(displayName string) (string, bool) {
	code, ok := teamDisplayNames[strings.ToLower(strings.TrimSpace(displayName))]
	return code, ok
}
