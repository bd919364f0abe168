package gateway

import "time"

// Player mirrors the §3 Player entity.
type Player struct {
	ExternalID   int64
	Name         string
	Position     string // F, D, G, or ""
	TeamCode     string
	BirthDate    string
	Handedness   string
	HeightInches int
	WeightPounds int
	CapHitCents  *int64
}

// Team mirrors the §3 Team entity.
type Team struct {
	Code       string
	Name       string
	Conference string
	Division   string
}

// PlayerSeasonStats mirrors the §3 Season stat row entity.
type PlayerSeasonStats struct {
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
}

// GameLog mirrors the §3 Game log entry entity.
type GameLog struct {
	PlayerExternalID int64
	GameExternalID   int64
	Date             time.Time
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

// GoalieStats mirrors the §3 Goalie stat row entity.
type GoalieStats struct {
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

// TeamSeasonStats mirrors the §3 Team season stat row entity.
type TeamSeasonStats struct {
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

// Injury mirrors the §3 Injury entity.
type Injury struct {
	PlayerExternalID int64
	Active           bool
	Status           string
	Description      string
	ReportedDate     time.Time
}

// Game mirrors the §3 Game entity. Scores are pointers so nil means
// "unknown," never "zero" — required for the COALESCE-merge upsert.
type Game struct {
	ExternalID  int64
	Season      string
	Date        time.Time
	StartUTC    time.Time
	Venue       string
	HomeTeam    string
	AwayTeam    string
	HomeScore   *int
	AwayScore   *int
	State       string
	IsCompleted bool
}

// ProbableGoalie mirrors the §2.3 supplemented Probable goalie entity.
type ProbableGoalie struct {
	GameExternalID   int64
	TeamCode         string
	PlayerExternalID int64
	Confirmed        bool
	Source           string
}

// Document mirrors the §3 Document entity.
type Document struct {
	Title     string
	Source    string
	Content   string
	URL       string
	Embedding []float32
	Metadata  map[string]string
}
