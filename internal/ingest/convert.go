package ingest

import (
	"time"

	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/provider/nhl"
)

// toGatewayGame projects an adapter game record into the gateway's write
// model, persisting the source's own date/calendar fields.
func toGatewayGame(g nhl.GameRecord) gateway.Game {
	date, _ := time.Parse(dateLayout, g.Date)
	return gateway.Game{
		ExternalID:  g.ExternalID,
		Date:        date,
		StartUTC:    g.StartUTC,
		Venue:       g.Venue,
		HomeTeam:    g.HomeTeam,
		AwayTeam:    g.AwayTeam,
		HomeScore:   g.HomeScore,
		AwayScore:   g.AwayScore,
		State:       g.State,
		IsCompleted: g.IsCompleted,
	}
}

// toGatewayGameLog projects an adapter game-log entry into the gateway's
// write model.
func toGatewayGameLog(e nhl.GameLogEntry, date time.Time) gateway.GameLog {
	return gateway.GameLog{
		PlayerExternalID: e.PlayerExternalID,
		GameExternalID:   e.GameExternalID,
		Date:             date,
		Season:           e.Season,
		TeamCode:         e.TeamCode,
		OpponentCode:     e.OpponentCode,
		IsHome:           e.IsHome,
		Goals:            e.Goals,
		Assists:          e.Assists,
		Points:           e.Points,
		Shots:            e.Shots,
		TOI:              e.TOI,
		PlusMinus:        e.PlusMinus,
		PenaltyMinutes:   e.PenaltyMinutes,
		PowerPlayGoals:   e.PowerPlayGoals,
		ShorthandedGoals: e.ShorthandedGoals,
		GameWinningGoals: e.GameWinningGoals,
		OvertimeGoals:    e.OvertimeGoals,
		Shifts:           e.Shifts,
	}
}

// toGatewayPlayer projects a roster entry into the gateway's player write
// model. Biographical fields roster adapters don't carry are left zero;
// the gateway's COALESCE-merge upsert never regresses an already-known
// value (§4.B).
func toGatewayPlayer(p nhl.RosterPlayer) gateway.Player {
	return gateway.Player{
		ExternalID: p.ExternalID,
		Name:       p.FullName,
		Position:   p.Position,
		TeamCode:   p.TeamCode,
	}
}

// toGatewaySeasonStats projects an advanced-stats CSV row into the
// gateway's write model.
func toGatewaySeasonStats(s nhl.SeasonStatRecord) gateway.PlayerSeasonStats {
	return gateway.PlayerSeasonStats{
		PlayerExternalID: s.PlayerExternalID,
		Season:           s.Season,
		Games:            s.Games,
		Goals:            s.Goals,
		Assists:          s.Assists,
		Points:           s.Points,
		Shots:            s.Shots,
		TOIPerGame:       s.TOIPerGame,
		ExpectedGoals:    s.ExpectedGoals,
		XGPer60:          s.XGPer60,
		CorsiForPct:      s.CorsiForPct,
		FenwickForPct:    s.FenwickForPct,
	}
}

// toGatewayGoalieStats projects a goalie summary row into the gateway's
// write model.
func toGatewayGoalieStats(g nhl.GoalieRecord) gateway.GoalieStats {
	return gateway.GoalieStats{
		PlayerExternalID: g.PlayerExternalID,
		Season:           g.Season,
		GamesStarted:     g.GamesStarted,
		Wins:             g.Wins,
		Losses:           g.Losses,
		OTLosses:         g.OTLosses,
		Shutouts:         g.Shutouts,
		ShotsAgainst:     g.ShotsAgainst,
		Saves:            g.Saves,
		SavePct:          g.SavePct,
		GAA:              g.GAA,
		TOI:              g.TOI,
	}
}

// toGatewayTeamSeasonStats projects a team summary row into the gateway's
// write model.
func toGatewayTeamSeasonStats(t nhl.TeamSeasonStatRecord) gateway.TeamSeasonStats {
	return gateway.TeamSeasonStats{
		TeamCode:         t.TeamCode,
		Season:           t.Season,
		Wins:             t.Wins,
		Losses:           t.Losses,
		OTLosses:         t.OTLosses,
		GoalsForPerGame:  t.GoalsForPerGame,
		GoalsAgstPerGame: t.GoalsAgstPerGame,
		ShotsForPerGame:  t.ShotsForPerGame,
		ShotsAgstPerGame: t.ShotsAgstPerGame,
		PowerPlayPct:     t.PowerPlayPct,
		PenaltyKillPct:   t.PenaltyKillPct,
	}
}

// toBulkTeam builds a minimal gateway.Team from just a 3-letter code, for
// the bulk job's "ensure teams loaded" step (§4.D.4). Name/conference/
// division are left blank, and UpsertTeam sets those columns from EXCLUDED,
// so a bulk run writes blanks over them; no other ingestion path writes
// team metadata.
func toBulkTeam(code string) gateway.Team {
	return gateway.Team{Code: code}
}

// toGatewayInjury projects an injury record into the gateway's write
// model.
func toGatewayInjury(i nhl.InjuryRecord) gateway.Injury {
	reported, _ := time.Parse(dateLayout, i.ReportedDate)
	return gateway.Injury{
		PlayerExternalID: i.PlayerExternalID,
		Active:           true,
		Status:           i.Status,
		Description:      i.Description,
		ReportedDate:     reported,
	}
}
