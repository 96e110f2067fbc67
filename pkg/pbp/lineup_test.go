package pbp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconstructDeclared(t *testing.T) {
	game, errParse := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errParse)

	lineups := Reconstruct(game, 0)
	require.Equal(t, "declared", lineups.Provenance)
	require.Len(t, lineups.Snapshots, len(game.Events))

	// Every snapshot holds exactly five names per side, no matter how thin
	// the source rosters are.
	for _, snap := range lineups.Snapshots {
		require.Len(t, snap.Home, 5)
		require.Len(t, snap.Away, 5)
		require.Equal(t, "WF", snap.HomeID)
		require.Equal(t, "MICH", snap.AwayID)
	}

	opening := lineups.Snapshots[0]
	require.Equal(t, []string{"Cam Smith", "Andrew Jones", "Trey Davis", "Player #4", "Player #5"}, opening.Home)
	require.Equal(t, []string{"Dug Mcdaniel", "Jett Howard", "Player #3", "Player #4", "Player #5"}, opening.Away)
}

func TestReconstructSubstitution(t *testing.T) {
	game, errParse := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errParse)

	lineups := Reconstruct(game, 0)

	// Before the swap Jones is on court; after the in-sub at seq 4 Davis has
	// replaced him at the front of the floor.
	require.Equal(t, "Andrew Jones", lineups.Snapshots[2].Home[1])

	after := lineups.Snapshots[4].Home
	require.Equal(t, []string{"Cam Smith", "Trey Davis", "Andrew Jones", "Player #4", "Player #5"}, after)
}

func TestReconstructInferred(t *testing.T) {
	game := &Game{
		Info: GameInfo{HomeID: "H", AwayID: "A"},
		Events: []Event{
			{Seq: 0, Period: 1, TeamID: "H", PlayerID: "H_1", Kind: Shot},
			{Seq: 1, Period: 1, TeamID: "H", PlayerID: "H_2", Kind: Rebound},
			{Seq: 2, Period: 1, TeamID: "A", PlayerID: "A_7", Kind: Shot},
			{Seq: 3, Period: 1, TeamID: "H", PlayerID: "H_3", Kind: Assist},
			{Seq: 4, Period: 1, TeamID: "H", PlayerID: "H_4", Kind: Steal},
			{Seq: 5, Period: 1, TeamID: "H", PlayerID: "H_5", Kind: Block},
			{Seq: 6, Period: 1, TeamID: "H", PlayerID: "H_6", Kind: Turnover},
		},
	}

	lineups := Reconstruct(game, 0)
	require.Equal(t, "inferred", lineups.Provenance)

	// The first five distinct home players become the inferred starters; the
	// sixth never enters without a substitution event.
	opening := lineups.Snapshots[0].Home
	require.Equal(t, []string{"Player #1", "Player #2", "Player #3", "Player #4", "Player #5"}, opening)

	last := lineups.Snapshots[6].Home
	require.NotContains(t, last[:5], "Player #6")
	require.Len(t, last, 5)
}

func TestReconstructEmptyGame(t *testing.T) {
	lineups := Reconstruct(&Game{Info: GameInfo{HomeID: "H", AwayID: "A"}}, 0)
	require.Empty(t, lineups.Snapshots)
	require.Equal(t, "inferred", lineups.Provenance)
}

func TestOnCourtClamp(t *testing.T) {
	var court onCourt
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		court.add(id)
	}

	court.clamp()

	// Overflow drops the oldest-inserted entries first.
	require.Equal(t, []string{"c", "d", "e", "f", "g"}, court.ids)

	court.remove("e")
	require.Equal(t, []string{"c", "d", "f", "g"}, court.ids)

	// Duplicate adds are ignored.
	court.add("c")
	require.Len(t, court.ids, 4)
}

func TestReconstructMissingSubDirection(t *testing.T) {
	// A substitution with no in/out marker treats the event's player as
	// entering, and the court clamps back down to five.
	game := &Game{
		Info: GameInfo{HomeID: "H", AwayID: "A"},
		Starters: Starters{
			Home: []string{"H_1", "H_2", "H_3", "H_4", "H_5"},
		},
		Events: []Event{
			{Seq: 0, Period: 1, TeamID: "H", PlayerID: "H_9", Kind: Substitution},
		},
	}
	game.StartersDeclared = true

	lineups := Reconstruct(game, 0)
	require.Len(t, lineups.Snapshots, 1)

	home := lineups.Snapshots[0].Home
	require.Contains(t, home, "Player #9")
	require.NotContains(t, home, "Player #1")
	require.Len(t, home, 5)
}
