package report_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courtdata/pbparse/internal/report"
	"github.com/courtdata/pbparse/pkg/pbp"
)

const gameFixture = `<?xml version="1.0"?>
<bbgame source="Genius Sports">
  <venue gameid="TEST" date="12/05/2023" location="Test Arena"
         homeid="WF" homename="Wake Forest" visid="MICH" visname="Michigan" attend="1200"/>
  <team vh="H" id="WF" name="Wake Forest">
    <player uni="2" name="SMITH,CAM" gs="1" pos="G"/>
    <player uni="25" name="DAVIS,TREY" gs="0" pos="C"/>
  </team>
  <team vh="V" id="MICH" name="Michigan">
    <player uni="1" name="MCDANIEL,DUG" gs="1" pos="G"/>
  </team>
  <plays>
    <period number="1">
      <play time="19:45" action="GOOD" type="3PTR" team="WF" uni="2" checkname="SMITH,CAM" hscore="3" vscore="0"/>
      <play time="19:30" action="REBOUND" type="DEF" team="MICH" uni="1" checkname="MCDANIEL,DUG"/>
      <play time="15:00" action="SUB" type="IN" team="WF" uni="25" checkname="DAVIS,TREY"/>
    </period>
  </plays>
</bbgame>`

func parseFixture(t *testing.T) (*pbp.Game, *pbp.BoxScore, pbp.Lineups) {
	t.Helper()

	game, errParse := pbp.Parse(strings.NewReader(gameFixture))
	require.NoError(t, errParse)

	return game, pbp.Summarize(game, pbp.RegulationMinutes), pbp.Reconstruct(game, 0)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	body, errOpen := os.Open(path)
	require.NoError(t, errOpen)
	defer body.Close()

	records, errRead := csv.NewReader(body).ReadAll()
	require.NoError(t, errRead)

	return records
}

func TestWriteCSV(t *testing.T) {
	game, box, lineups := parseFixture(t)
	dir := t.TempDir()

	require.NoError(t, report.WriteCSV(dir, game, box, lineups))

	for _, name := range []string{
		report.PlaysFile, report.PlayersFile, report.TeamsFile,
		report.LineupsFile, report.EnhancedFile, report.BoxScoreFile,
	} {
		_, errStat := os.Stat(filepath.Join(dir, name))
		require.NoError(t, errStat, name)
	}

	plays := readCSV(t, filepath.Join(dir, report.PlaysFile))
	require.Len(t, plays, 4) // header + three plays
	require.Equal(t, "seq", plays[0][0])
	require.Equal(t, "shot", plays[1][8])
	require.Equal(t, "Made 3PT FG by Cam Smith for Wake Forest", plays[1][9])

	players := readCSV(t, filepath.Join(dir, report.PlayersFile))
	require.Len(t, players, 4) // header + three players
	require.Equal(t, "player_id", players[0][0])
	require.Equal(t, "WF_2", players[1][0])
	require.Equal(t, "3", players[1][7]) // points

	teams := readCSV(t, filepath.Join(dir, report.TeamsFile))
	require.Len(t, teams, 3)

	lineupRows := readCSV(t, filepath.Join(dir, report.LineupsFile))
	require.Len(t, lineupRows, 4)
	require.Contains(t, lineupRows[1][4], "Cam Smith")
}

func TestWriteCSVDeterministic(t *testing.T) {
	game, box, lineups := parseFixture(t)

	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, report.WriteCSV(first, game, box, lineups))
	require.NoError(t, report.WriteCSV(second, game, box, lineups))

	for _, name := range []string{report.PlaysFile, report.PlayersFile, report.EnhancedFile} {
		a, errA := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, errA)
		b, errB := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, errB)
		require.Equal(t, a, b, name)
	}
}

func TestEnhancedRoundTrip(t *testing.T) {
	game, box, lineups := parseFixture(t)
	dir := t.TempDir()

	require.NoError(t, report.WriteCSV(dir, game, box, lineups))

	rows, errRead := report.ReadEnhanced(filepath.Join(dir, report.EnhancedFile))
	require.NoError(t, errRead)
	require.Len(t, rows, 3)

	require.Equal(t, "Made 3PT FG by Cam Smith for Wake Forest", rows[0].Description)
	require.Equal(t, "Wake Forest", rows[0].Team)
	require.Equal(t, 3, rows[0].Points)
	require.NotEmpty(t, rows[0].HomeLineup)
	require.Equal(t, "substitution", rows[2].EventType)
}

func TestRenderEnhanced(t *testing.T) {
	game, box, lineups := parseFixture(t)
	dir := t.TempDir()
	require.NoError(t, report.WriteCSV(dir, game, box, lineups))

	rows, errRead := report.ReadEnhanced(filepath.Join(dir, report.EnhancedFile))
	require.NoError(t, errRead)

	var full strings.Builder
	report.RenderEnhanced(&full, rows)
	output := full.String()

	require.Contains(t, output, "ENHANCED PLAY-BY-PLAY TABLE")
	require.Contains(t, output, "Total Plays: 2 (filtered from 3 total plays)")
	require.Contains(t, output, "Made 3PT FG by Cam Smith for Wake Forest")
	// Substitutions are excluded from the rendered view.
	require.NotContains(t, output, "enters the game")

	var compact strings.Builder
	report.RenderCompact(&compact, rows)
	require.Contains(t, compact.String(), "COMPACT PLAY-BY-PLAY TABLE")
}

func TestPrintGame(t *testing.T) {
	game, box, lineups := parseFixture(t)

	var out strings.Builder
	report.PrintGame(&out, game, box, lineups)
	output := out.String()

	require.Contains(t, output, "Wake Forest vs Michigan")
	require.Contains(t, output, "Attendance: 1,200")
	require.Contains(t, output, "TEAM TOTALS")
	require.Contains(t, output, "Starting Lineups (declared)")
}

func TestSQLiteStore(t *testing.T) {
	game, box, lineups := parseFixture(t)
	path := filepath.Join(t.TempDir(), "games.db")

	store, errOpen := report.OpenStore(context.Background(), path)
	require.NoError(t, errOpen)
	defer store.Close()

	require.NoError(t, store.SaveGame(context.Background(), game, box, lineups))
	// Saving the same game again replaces rather than duplicates.
	require.NoError(t, store.SaveGame(context.Background(), game, box, lineups))
}
