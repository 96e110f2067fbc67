package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/courtdata/pbparse/pkg/pbp"
)

var boxHeader = []string{"Player", "Min", "Pts", "FG", "3PT", "FT", "Reb", "Ast", "Stl", "Blk", "TO", "PF"}

func defaultTable(writer io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(writer)
}

// PrintGame writes the human-readable game summary: header, starting
// lineups, per-team box scores and the team comparison table.
func PrintGame(writer io.Writer, game *pbp.Game, box *pbp.BoxScore, lineups pbp.Lineups) {
	printHeader(writer, game)
	printStarters(writer, game, lineups)

	for _, team := range box.Teams() {
		printTeamBox(writer, box, team)
	}

	printTeamComparison(writer, box)
}

func printHeader(writer io.Writer, game *pbp.Game) {
	fmt.Fprintf(writer, "%s vs %s\n", game.Info.HomeName, game.Info.AwayName)

	if game.Info.Date != "" {
		fmt.Fprintf(writer, "Date: %s", game.Info.Date)
		if game.Info.TipTime != "" {
			fmt.Fprintf(writer, " %s", game.Info.TipTime)
		}
		fmt.Fprintln(writer)
	}

	if game.Info.Venue != "" {
		fmt.Fprintf(writer, "Venue: %s\n", game.Info.Venue)
	}

	if game.Info.Attendance > 0 {
		fmt.Fprintf(writer, "Attendance: %s\n", humanize.Comma(int64(game.Info.Attendance)))
	}

	if final, found := finalScore(game); found {
		fmt.Fprintf(writer, "Final: %s\n", final)
	}

	fmt.Fprintf(writer, "Format: %s\n\n", game.Format)
}

func finalScore(game *pbp.Game) (string, bool) {
	for i := len(game.Events) - 1; i >= 0; i-- {
		event := game.Events[i]
		if event.HomeScore != "" && event.AwayScore != "" {
			return event.HomeScore + " - " + event.AwayScore, true
		}
	}

	return "", false
}

func printStarters(writer io.Writer, game *pbp.Game, lineups pbp.Lineups) {
	if len(lineups.Snapshots) == 0 {
		return
	}

	first := lineups.Snapshots[0]

	fmt.Fprintf(writer, "Starting Lineups (%s)\n", lineups.Provenance)
	fmt.Fprintf(writer, "  %s: %s\n", teamName(game, first.HomeID), strings.Join(first.Home, ", "))
	fmt.Fprintf(writer, "  %s: %s\n\n", teamName(game, first.AwayID), strings.Join(first.Away, ", "))
}

func printTeamBox(writer io.Writer, box *pbp.BoxScore, team *pbp.TeamStats) {
	fmt.Fprintf(writer, "%s\n", team.TeamName)

	table := defaultTable(writer)
	table.Header(boxHeader)

	for _, player := range box.TeamPlayers(team.TeamID) {
		if player.MinutesPlayed <= 0 {
			continue
		}

		table.Append([]string{
			pbp.FormatName(player.PlayerName),
			fmt.Sprintf("%.1f", player.MinutesPlayed),
			strconv.Itoa(player.Points),
			madeAtt(player.FieldGoalsMade, player.FieldGoalsAtt),
			madeAtt(player.ThreePointsMade, player.ThreePointsAtt),
			madeAtt(player.FreeThrowsMade, player.FreeThrowsAtt),
			strconv.Itoa(player.Rebounds),
			strconv.Itoa(player.Assists),
			strconv.Itoa(player.Steals),
			strconv.Itoa(player.Blocks),
			strconv.Itoa(player.Turnovers),
			strconv.Itoa(player.Fouls),
		})
	}

	table.Append([]string{
		"TEAM TOTALS",
		"",
		strconv.Itoa(team.Points),
		madeAtt(team.FieldGoalsMade, team.FieldGoalsAtt),
		madeAtt(team.ThreePointsMade, team.ThreePointsAtt),
		madeAtt(team.FreeThrowsMade, team.FreeThrowsAtt),
		strconv.Itoa(team.Rebounds),
		strconv.Itoa(team.Assists),
		strconv.Itoa(team.Steals),
		strconv.Itoa(team.Blocks),
		strconv.Itoa(team.Turnovers),
		strconv.Itoa(team.Fouls),
	})

	table.Render()
	fmt.Fprintln(writer)
}

func printTeamComparison(writer io.Writer, box *pbp.BoxScore) {
	teams := box.Teams()
	if len(teams) == 0 {
		return
	}

	table := defaultTable(writer)
	table.Header([]string{"Team", "Pts", "FG%", "3P%", "FT%", "Reb", "Ast", "TO"})

	for _, team := range teams {
		table.Append([]string{
			team.TeamName,
			strconv.Itoa(team.Points),
			fmt.Sprintf("%.1f%%", team.FieldGoalPct*100),
			fmt.Sprintf("%.1f%%", team.ThreePointPct*100),
			fmt.Sprintf("%.1f%%", team.FreeThrowPct*100),
			strconv.Itoa(team.Rebounds),
			strconv.Itoa(team.Assists),
			strconv.Itoa(team.Turnovers),
		})
	}

	table.Render()
}

func madeAtt(made int, attempted int) string {
	return strconv.Itoa(made) + "-" + strconv.Itoa(attempted)
}
