package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/courtdata/pbparse/pkg/pbp"
)

// Store persists parsed games in SQLite so repeated runs can be queried
// across games. Re-saving the same game replaces its previous rows.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id    TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	format     TEXT NOT NULL,
	date       TEXT,
	venue      TEXT,
	home_team  TEXT,
	away_team  TEXT,
	attendance INTEGER
);
CREATE TABLE IF NOT EXISTS plays (
	game_id     TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	period      INTEGER NOT NULL,
	clock       TEXT,
	team_id     TEXT,
	player_id   TEXT,
	event_type  TEXT NOT NULL,
	description TEXT,
	points      INTEGER NOT NULL,
	shot_type   TEXT,
	home_score  TEXT,
	away_score  TEXT,
	PRIMARY KEY (game_id, seq)
);
CREATE TABLE IF NOT EXISTS player_stats (
	game_id     TEXT NOT NULL,
	player_id   TEXT NOT NULL,
	player_name TEXT,
	team_id     TEXT,
	minutes     REAL NOT NULL,
	points      INTEGER NOT NULL,
	fgm         INTEGER NOT NULL,
	fga         INTEGER NOT NULL,
	tpm         INTEGER NOT NULL,
	tpa         INTEGER NOT NULL,
	ftm         INTEGER NOT NULL,
	fta         INTEGER NOT NULL,
	rebounds    INTEGER NOT NULL,
	assists     INTEGER NOT NULL,
	steals      INTEGER NOT NULL,
	blocks      INTEGER NOT NULL,
	turnovers   INTEGER NOT NULL,
	fouls       INTEGER NOT NULL,
	PRIMARY KEY (game_id, player_id)
);
CREATE TABLE IF NOT EXISTS team_stats (
	game_id   TEXT NOT NULL,
	team_id   TEXT NOT NULL,
	team_name TEXT,
	points    INTEGER NOT NULL,
	fgm       INTEGER NOT NULL,
	fga       INTEGER NOT NULL,
	tpm       INTEGER NOT NULL,
	tpa       INTEGER NOT NULL,
	ftm       INTEGER NOT NULL,
	fta       INTEGER NOT NULL,
	rebounds  INTEGER NOT NULL,
	assists   INTEGER NOT NULL,
	steals    INTEGER NOT NULL,
	blocks    INTEGER NOT NULL,
	turnovers INTEGER NOT NULL,
	fouls     INTEGER NOT NULL,
	PRIMARY KEY (game_id, team_id)
);
CREATE TABLE IF NOT EXISTS lineups (
	game_id     TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	period      INTEGER NOT NULL,
	clock       TEXT,
	home_lineup TEXT NOT NULL,
	away_lineup TEXT NOT NULL,
	PRIMARY KEY (game_id, seq)
);
`

// OpenStore opens (creating if needed) the SQLite database at path and
// ensures the schema exists.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty sqlite path", errStore)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"

	db, errOpen := sql.Open("sqlite", dsn)
	if errOpen != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", errOpen)
	}

	if errPing := db.PingContext(ctx); errPing != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to ping sqlite db: %w", errPing)
	}

	if _, errSchema := db.ExecContext(ctx, schema); errSchema != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to create schema: %w", errSchema)
	}

	return &Store{db: db}, nil
}

var errStore = errors.New("invalid store")

// Close closes the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// SaveGame writes the game and its derived tables in one transaction,
// replacing any earlier rows for the same game id.
func (s *Store) SaveGame(ctx context.Context, game *pbp.Game, box *pbp.BoxScore, lineups pbp.Lineups) error {
	gameID := game.Info.GameID
	if gameID == "" {
		gameID = game.SessionID.String()
	}

	tx, errTx := s.db.BeginTx(ctx, nil)
	if errTx != nil {
		return fmt.Errorf("failed to begin tx: %w", errTx)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"plays", "player_stats", "team_stats", "lineups"} {
		if _, errDel := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE game_id = ?", gameID); errDel != nil {
			return fmt.Errorf("failed to clear %s: %w", table, errDel)
		}
	}

	if _, errGame := tx.ExecContext(ctx, `INSERT OR REPLACE INTO games
		(game_id, session_id, format, date, venue, home_team, away_team, attendance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, game.SessionID.String(), game.Format, game.Info.Date, game.Info.Venue,
		game.Info.HomeName, game.Info.AwayName, game.Info.Attendance); errGame != nil {
		return fmt.Errorf("failed to insert game: %w", errGame)
	}

	if errPlays := savePlays(ctx, tx, gameID, game); errPlays != nil {
		return errPlays
	}

	if errStats := saveStats(ctx, tx, gameID, box); errStats != nil {
		return errStats
	}

	if errLineups := saveLineups(ctx, tx, gameID, lineups); errLineups != nil {
		return errLineups
	}

	if errCommit := tx.Commit(); errCommit != nil {
		return fmt.Errorf("failed to commit: %w", errCommit)
	}

	return nil
}

func savePlays(ctx context.Context, tx *sql.Tx, gameID string, game *pbp.Game) error {
	stmt, errPrep := tx.PrepareContext(ctx, `INSERT INTO plays
		(game_id, seq, period, clock, team_id, player_id, event_type, description, points, shot_type, home_score, away_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if errPrep != nil {
		return fmt.Errorf("failed to prepare plays insert: %w", errPrep)
	}

	defer stmt.Close()

	for _, event := range game.Events {
		if _, errExec := stmt.ExecContext(ctx,
			gameID, event.Seq, event.Period, event.Clock, event.TeamID, event.PlayerID,
			event.Kind.String(), pbp.Describe(game, event), event.Points, string(event.Shot),
			event.HomeScore, event.AwayScore); errExec != nil {
			return fmt.Errorf("failed to insert play %d: %w", event.Seq, errExec)
		}
	}

	return nil
}

func saveStats(ctx context.Context, tx *sql.Tx, gameID string, box *pbp.BoxScore) error {
	for _, player := range box.Players() {
		if _, errExec := tx.ExecContext(ctx, `INSERT INTO player_stats
			(game_id, player_id, player_name, team_id, minutes, points, fgm, fga, tpm, tpa, ftm, fta,
			 rebounds, assists, steals, blocks, turnovers, fouls)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			gameID, player.PlayerID, player.PlayerName, player.TeamID,
			player.MinutesPlayed, player.Points,
			player.FieldGoalsMade, player.FieldGoalsAtt,
			player.ThreePointsMade, player.ThreePointsAtt,
			player.FreeThrowsMade, player.FreeThrowsAtt,
			player.Rebounds, player.Assists, player.Steals, player.Blocks,
			player.Turnovers, player.Fouls); errExec != nil {
			return fmt.Errorf("failed to insert player stats %s: %w", player.PlayerID, errExec)
		}
	}

	for _, team := range box.Teams() {
		if _, errExec := tx.ExecContext(ctx, `INSERT INTO team_stats
			(game_id, team_id, team_name, points, fgm, fga, tpm, tpa, ftm, fta,
			 rebounds, assists, steals, blocks, turnovers, fouls)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			gameID, team.TeamID, team.TeamName, team.Points,
			team.FieldGoalsMade, team.FieldGoalsAtt,
			team.ThreePointsMade, team.ThreePointsAtt,
			team.FreeThrowsMade, team.FreeThrowsAtt,
			team.Rebounds, team.Assists, team.Steals, team.Blocks,
			team.Turnovers, team.Fouls); errExec != nil {
			return fmt.Errorf("failed to insert team stats %s: %w", team.TeamID, errExec)
		}
	}

	return nil
}

func saveLineups(ctx context.Context, tx *sql.Tx, gameID string, lineups pbp.Lineups) error {
	stmt, errPrep := tx.PrepareContext(ctx, `INSERT INTO lineups
		(game_id, seq, period, clock, home_lineup, away_lineup)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if errPrep != nil {
		return fmt.Errorf("failed to prepare lineups insert: %w", errPrep)
	}

	defer stmt.Close()

	for _, snap := range lineups.Snapshots {
		if _, errExec := stmt.ExecContext(ctx,
			gameID, snap.Seq, snap.Period, snap.Clock,
			strings.Join(snap.Home, ", "), strings.Join(snap.Away, ", ")); errExec != nil {
			return fmt.Errorf("failed to insert lineup %d: %w", snap.Seq, errExec)
		}
	}

	return nil
}
