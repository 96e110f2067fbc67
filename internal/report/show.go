package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EnhancedRow is one decoded row of the enhanced play-by-play table.
type EnhancedRow struct {
	Seq         int
	Clock       string
	Description string
	Team        string
	Player      string
	Points      int
	HomeScore   string
	AwayScore   string
	HomeLineup  string
	AwayLineup  string
	EventType   string
	ReboundType string
}

// ReadEnhanced loads a previously written enhanced play-by-play CSV.
func ReadEnhanced(path string) ([]EnhancedRow, error) {
	inFile, errOpen := os.Open(path)
	if errOpen != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, errOpen)
	}
	defer inFile.Close()

	records, errRead := csv.NewReader(inFile).ReadAll()
	if errRead != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, errRead)
	}

	if len(records) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[name] = i
	}

	field := func(record []string, name string) string {
		idx, found := col[name]
		if !found || idx >= len(record) {
			return ""
		}

		return record[idx]
	}

	rows := make([]EnhancedRow, 0, len(records)-1)

	for _, record := range records[1:] {
		seq, _ := strconv.Atoi(field(record, "seq"))
		points, _ := strconv.Atoi(field(record, "points"))

		rows = append(rows, EnhancedRow{
			Seq:         seq,
			Clock:       field(record, "game_clock"),
			Description: field(record, "event_description"),
			Team:        field(record, "team"),
			Player:      field(record, "player"),
			Points:      points,
			HomeScore:   field(record, "home_score"),
			AwayScore:   field(record, "away_score"),
			HomeLineup:  field(record, "home_lineup"),
			AwayLineup:  field(record, "away_lineup"),
			EventType:   field(record, "event_type"),
			ReboundType: field(record, "rebound_type"),
		})
	}

	return rows, nil
}

// filterSubs drops substitution rows, which carry no on-court action of
// their own; their effect is already reflected in the following lineups.
func filterSubs(rows []EnhancedRow) []EnhancedRow {
	filtered := make([]EnhancedRow, 0, len(rows))

	for _, row := range rows {
		if row.EventType == "substitution" {
			continue
		}
		filtered = append(filtered, row)
	}

	return filtered
}

// RenderEnhanced prints the full detailed play-by-play view: one block per
// play with description, score and both lineups. Substitutions are excluded.
func RenderEnhanced(writer io.Writer, rows []EnhancedRow) {
	filtered := filterSubs(rows)
	rule := strings.Repeat("=", 120)
	divider := strings.Repeat("-", 120)

	fmt.Fprintln(writer, rule)
	fmt.Fprintln(writer, "ENHANCED PLAY-BY-PLAY TABLE (EXCLUDING SUBSTITUTIONS)")
	fmt.Fprintln(writer, rule)
	fmt.Fprintf(writer, "Total Plays: %d (filtered from %d total plays)\n", len(filtered), len(rows))
	fmt.Fprintln(writer, rule)

	for i, row := range filtered {
		fmt.Fprintf(writer, "\nPlay #%3d | %s\n", i+1, row.Clock)
		fmt.Fprintln(writer, divider)
		fmt.Fprintf(writer, "Event: %s\n", row.Description)
		fmt.Fprintf(writer, "Team: %s | Player: %s\n", row.Team, row.Player)

		if row.Points > 0 {
			fmt.Fprintf(writer, "Points: %d\n", row.Points)
		}

		if row.HomeScore != "" && row.AwayScore != "" {
			fmt.Fprintf(writer, "Score: %s - %s\n", row.AwayScore, row.HomeScore)
		}

		fmt.Fprintf(writer, "\nHome: %s\n", row.HomeLineup)
		fmt.Fprintf(writer, "Away: %s\n", row.AwayLineup)

		if row.ReboundType != "" {
			fmt.Fprintf(writer, "Additional Details: Rebound Type: %s\n", row.ReboundType)
		}

		fmt.Fprintln(writer, divider)
	}

	fmt.Fprintf(writer, "\nEnd of Play-by-Play Data (%d plays, substitutions excluded)\n", len(filtered))
	fmt.Fprintln(writer, rule)
}

// RenderCompact prints one line per play, echoing the lineups only for the
// first few plays and periodically afterwards.
func RenderCompact(writer io.Writer, rows []EnhancedRow) {
	filtered := filterSubs(rows)
	rule := strings.Repeat("=", 140)
	divider := strings.Repeat("-", 140)

	fmt.Fprintln(writer, rule)
	fmt.Fprintln(writer, "COMPACT PLAY-BY-PLAY TABLE (EXCLUDING SUBSTITUTIONS)")
	fmt.Fprintln(writer, rule)
	fmt.Fprintf(writer, "Total Plays: %d (filtered from %d total plays)\n", len(filtered), len(rows))
	fmt.Fprintln(writer, rule)

	for i, row := range filtered {
		score := ""
		if row.HomeScore != "" && row.AwayScore != "" {
			score = fmt.Sprintf("(%s-%s)", row.AwayScore, row.HomeScore)
		}

		fmt.Fprintf(writer, "%3d | %-25s | %-10s | %-12s | %-20s | %s\n",
			i+1, row.Clock, score, row.Team, row.Player, row.Description)

		if i < 10 || (i > 0 && i%50 == 0) {
			fmt.Fprintf(writer, "     | Home: %s\n", truncate(row.HomeLineup, 50))
			fmt.Fprintf(writer, "     | Away: %s\n", truncate(row.AwayLineup, 50))
			fmt.Fprintln(writer, divider)
		}
	}

	fmt.Fprintf(writer, "\nEnd of Play-by-Play Data (%d plays, substitutions excluded)\n", len(filtered))
	fmt.Fprintln(writer, rule)
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}

	return value[:limit] + "..."
}
