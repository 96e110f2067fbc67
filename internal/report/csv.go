// Package report emits the normalized game tables: CSV files, an optional
// SQLite database, and formatted console output. It is a pure consumer of
// the canonical event stream, box score and lineup snapshots.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/courtdata/pbparse/pkg/pbp"
)

// File names of the emitted tables.
const (
	PlaysFile    = "plays.csv"
	PlayersFile  = "player_stats.csv"
	TeamsFile    = "team_stats.csv"
	LineupsFile  = "lineups.csv"
	EnhancedFile = "enhanced_play_by_play.csv"
	BoxScoreFile = "box_score.csv"
)

var playsHeader = []string{
	"seq", "period", "time", "time_seconds", "team_id", "team_name",
	"player_id", "player_name", "event_type", "description", "points",
	"shot_type", "rebound_type", "substitution_in", "substitution_out",
	"home_score", "away_score",
}

var playerStatsHeader = []string{
	"player_id", "player_name", "team_id", "team_name", "jersey", "position",
	"minutes_played", "points",
	"field_goals_made", "field_goals_attempted", "field_goal_percentage",
	"three_points_made", "three_points_attempted", "three_point_percentage",
	"free_throws_made", "free_throws_attempted", "free_throw_percentage",
	"rebounds", "offensive_rebounds", "defensive_rebounds",
	"assists", "steals", "blocks", "turnovers", "fouls",
}

var teamStatsHeader = []string{
	"team_id", "team_name", "points",
	"field_goals_made", "field_goals_attempted", "field_goal_percentage",
	"three_points_made", "three_points_attempted", "three_point_percentage",
	"free_throws_made", "free_throws_attempted", "free_throw_percentage",
	"rebounds", "offensive_rebounds", "defensive_rebounds",
	"assists", "steals", "blocks", "turnovers", "fouls",
}

var lineupsHeader = []string{
	"seq", "period", "time", "home_team_id", "home_lineup", "away_team_id", "away_lineup",
}

var enhancedHeader = []string{
	"seq", "game_clock", "event_description", "team", "player", "points",
	"home_score", "away_score", "home_lineup", "away_lineup",
	"event_type", "shot_type", "rebound_type", "time_seconds",
}

// WriteCSV writes every output table under dir, creating it as needed. Row
// order follows the source document (plays, lineups) or first appearance
// (stats), so rewriting the same parse yields byte-identical files.
func WriteCSV(dir string, game *pbp.Game, box *pbp.BoxScore, lineups pbp.Lineups) error {
	if errDir := os.MkdirAll(dir, 0o755); errDir != nil {
		return fmt.Errorf("failed to create output dir: %w", errDir)
	}

	writers := []struct {
		name string
		rows func() [][]string
	}{
		{PlaysFile, func() [][]string { return playRows(game) }},
		{PlayersFile, func() [][]string { return playerRows(box.Players()) }},
		{TeamsFile, func() [][]string { return teamRows(box) }},
		{LineupsFile, func() [][]string { return lineupRows(lineups) }},
		{EnhancedFile, func() [][]string { return EnhancedRows(game, lineups) }},
		{BoxScoreFile, func() [][]string { return boxScoreRows(box) }},
	}

	for _, table := range writers {
		if errWrite := writeCSVFile(filepath.Join(dir, table.name), table.rows()); errWrite != nil {
			return errWrite
		}
	}

	return nil
}

func writeCSVFile(path string, rows [][]string) error {
	outFile, errCreate := os.Create(path)
	if errCreate != nil {
		return fmt.Errorf("failed to create %s: %w", path, errCreate)
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	if errWrite := writer.WriteAll(rows); errWrite != nil {
		return fmt.Errorf("failed to write %s: %w", path, errWrite)
	}

	return nil
}

func playRows(game *pbp.Game) [][]string {
	rows := [][]string{playsHeader}

	for _, event := range game.Events {
		rows = append(rows, []string{
			strconv.Itoa(event.Seq),
			strconv.Itoa(event.Period),
			event.Clock,
			strconv.Itoa(event.ClockSeconds()),
			event.TeamID,
			teamName(game, event.TeamID),
			event.PlayerID,
			event.PlayerName,
			event.Kind.String(),
			pbp.Describe(game, event),
			strconv.Itoa(event.Points),
			string(event.Shot),
			string(event.Rebound),
			event.SubIn,
			event.SubOut,
			event.HomeScore,
			event.AwayScore,
		})
	}

	return rows
}

func playerRows(players []*pbp.PlayerStats) [][]string {
	rows := [][]string{playerStatsHeader}
	for _, player := range players {
		rows = append(rows, playerRow(player))
	}

	return rows
}

func playerRow(player *pbp.PlayerStats) []string {
	return []string{
		player.PlayerID,
		player.PlayerName,
		player.TeamID,
		player.TeamName,
		player.Jersey,
		player.Position,
		formatMinutes(player.MinutesPlayed),
		strconv.Itoa(player.Points),
		strconv.Itoa(player.FieldGoalsMade),
		strconv.Itoa(player.FieldGoalsAtt),
		formatPct(player.FieldGoalPct),
		strconv.Itoa(player.ThreePointsMade),
		strconv.Itoa(player.ThreePointsAtt),
		formatPct(player.ThreePointPct),
		strconv.Itoa(player.FreeThrowsMade),
		strconv.Itoa(player.FreeThrowsAtt),
		formatPct(player.FreeThrowPct),
		strconv.Itoa(player.Rebounds),
		strconv.Itoa(player.OffensiveRebounds),
		strconv.Itoa(player.DefensiveRebounds),
		strconv.Itoa(player.Assists),
		strconv.Itoa(player.Steals),
		strconv.Itoa(player.Blocks),
		strconv.Itoa(player.Turnovers),
		strconv.Itoa(player.Fouls),
	}
}

func teamRows(box *pbp.BoxScore) [][]string {
	rows := [][]string{teamStatsHeader}

	for _, team := range box.Teams() {
		rows = append(rows, []string{
			team.TeamID,
			team.TeamName,
			strconv.Itoa(team.Points),
			strconv.Itoa(team.FieldGoalsMade),
			strconv.Itoa(team.FieldGoalsAtt),
			formatPct(team.FieldGoalPct),
			strconv.Itoa(team.ThreePointsMade),
			strconv.Itoa(team.ThreePointsAtt),
			formatPct(team.ThreePointPct),
			strconv.Itoa(team.FreeThrowsMade),
			strconv.Itoa(team.FreeThrowsAtt),
			formatPct(team.FreeThrowPct),
			strconv.Itoa(team.Rebounds),
			strconv.Itoa(team.OffensiveRebounds),
			strconv.Itoa(team.DefensiveRebounds),
			strconv.Itoa(team.Assists),
			strconv.Itoa(team.Steals),
			strconv.Itoa(team.Blocks),
			strconv.Itoa(team.Turnovers),
			strconv.Itoa(team.Fouls),
		})
	}

	return rows
}

func lineupRows(lineups pbp.Lineups) [][]string {
	rows := [][]string{lineupsHeader}

	for _, snap := range lineups.Snapshots {
		rows = append(rows, []string{
			strconv.Itoa(snap.Seq),
			strconv.Itoa(snap.Period),
			snap.Clock,
			snap.HomeID,
			strings.Join(snap.Home, ", "),
			snap.AwayID,
			strings.Join(snap.Away, ", "),
		})
	}

	return rows
}

// EnhancedRows builds the enhanced play-by-play table: one row per event
// with its description and both reconstructed lineups. Includes the header
// row. Snapshots are positional: snapshot i belongs to event i.
func EnhancedRows(game *pbp.Game, lineups pbp.Lineups) [][]string {
	rows := [][]string{enhancedHeader}

	for i, event := range game.Events {
		var homeLineup, awayLineup string
		if i < len(lineups.Snapshots) {
			homeLineup = strings.Join(lineups.Snapshots[i].Home, ", ")
			awayLineup = strings.Join(lineups.Snapshots[i].Away, ", ")
		}

		player := ""
		if event.PlayerName != "" {
			player = pbp.FormatName(event.PlayerName)
		}

		rows = append(rows, []string{
			strconv.Itoa(event.Seq),
			event.Clock,
			pbp.Describe(game, event),
			teamName(game, event.TeamID),
			player,
			strconv.Itoa(event.Points),
			event.HomeScore,
			event.AwayScore,
			homeLineup,
			awayLineup,
			event.Kind.String(),
			string(event.Shot),
			string(event.Rebound),
			strconv.Itoa(event.ClockSeconds()),
		})
	}

	return rows
}

// boxScoreRows emits player_stats filtered to players with court time,
// grouped by team in first-appearance order and sorted by minutes within
// each team.
func boxScoreRows(box *pbp.BoxScore) [][]string {
	rows := [][]string{playerStatsHeader}

	for _, team := range box.Teams() {
		for _, player := range box.TeamPlayers(team.TeamID) {
			if player.MinutesPlayed <= 0 {
				continue
			}
			rows = append(rows, playerRow(player))
		}
	}

	return rows
}

func teamName(game *pbp.Game, teamID string) string {
	if team, found := game.Teams[teamID]; found && team.Name != "" {
		return team.Name
	}

	return teamID
}

func formatPct(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func formatMinutes(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
