package nhl

import "time"

// GameRecord is the adapter-projected view of a scheduled or completed game
// (§3 Game, §4.A schedule adapter).
type GameRecord struct {
	ExternalID  int64
	Season      string
	Date        string // league-local calendar date, ISO-8601
	StartUTC    time.Time
	Venue       string
	HomeTeam    string
	AwayTeam    string
	HomeScore   *int
	AwayScore   *int
	State       string
	IsCompleted bool
}

// RosterPlayer is a single flattened roster entry (§4.A roster adapter).
type RosterPlayer struct {
	ExternalID int64
	FullName   string
	Position   string // F, D, or G
	TeamCode   string
}

// GameLogEntry is one player-game row (§3 Game log entry).
type GameLogEntry struct {
	PlayerExternalID int64
	GameExternalID   int64
	Date             string
	Season           string
	TeamCode         string
	OpponentCode     string
	IsHome           bool
	Goals            int
	Assists          int
	Points           int
	Shots            int
	TOI              float64
	PlusMinus        int
	PenaltyMinutes   int
	PowerPlayGoals   int
	ShorthandedGoals int
	GameWinningGoals int
	OvertimeGoals    int
	Shifts           int
}

// SeasonStatRecord is a projected advanced-stats CSV row (§4.A advanced
// adapter; MoneyPuck's season-at-situation=all export).
type SeasonStatRecord struct {
	PlayerExternalID int64
	Season           string
	Games            int
	Goals            int
	Assists          int
	Points           int
	Shots            int
	TOIPerGame       float64
	ExpectedGoals    float64
	XGPer60          float64
	CorsiForPct      float64
	FenwickForPct    float64
	ShotsOnGoal      int
}

// InjuryRecord is a normalized injury entry (§3 Injury, §4.A injury adapter).
type InjuryRecord struct {
	PlayerExternalID int64
	TeamCode         string
	Status           string
	Description      string
	ReportedDate     string
}

// GoalieRecord is a season-level goalie stat row (§3 Goalie stat row).
type GoalieRecord struct {
	PlayerExternalID int64
	Season           string
	GamesStarted     int
	Wins             int
	Losses           int
	OTLosses         int
	Shutouts         int
	ShotsAgainst     int
	Saves            int
	SavePct          float64
	GAA              float64
	TOI              float64
}

// TeamSeasonStatRecord is a team-level season stat row (§3 Team season stat
// row).
type TeamSeasonStatRecord struct {
	TeamCode         string
	Season           string
	Wins             int
	Losses           int
	OTLosses         int
	GoalsForPerGame  float64
	GoalsAgstPerGame float64
	ShotsForPerGame  float64
	ShotsAgstPerGame float64
	PowerPlayPct     float64
	PenaltyKillPct   float64
}
