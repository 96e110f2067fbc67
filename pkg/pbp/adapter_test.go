package pbp

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

const geniusFixture = `<?xml version="1.0"?>
<bbgame source="Genius Sports" version="1.0" generated="12/05/2023">
  <venue gameid="WAKE-MICH" date="12/05/2023" location="Joel Coliseum" time="7:00 PM"
         homeid="WF" homename="Wake Forest" visid="MICH" visname="Michigan"
         attend="14407" leaguegame="N" neutralgame="N" postseason="N"/>
  <team vh="H" id="WF" name="Wake Forest" code="735">
    <player uni="2" name="SMITH,CAM" gs="1" pos="G"/>
    <player uni="13" name="JONES,ANDREW" gs="1" pos="F"/>
    <player uni="25" name="DAVIS,TREY" gs="0" pos="C"/>
  </team>
  <team vh="V" id="MICH" name="Michigan" code="418">
    <player uni="1" name="MCDANIEL,DUG" gs="1" pos="G"/>
    <player uni="22" name="HOWARD,JETT" gs="0" pos="F"/>
  </team>
  <plays format="SUMMARY">
    <period number="1">
      <play time="20:00" action="SUB" type="IN" team="WF" uni="2" checkname="SMITH,CAM"/>
      <play time="19:45" action="GOOD" type="3PTR" team="WF" uni="2" checkname="SMITH,CAM" hscore="3" vscore="0"/>
      <play time="19:30" action="REBOUND" type="DEF" team="MICH" uni="1" checkname="MCDANIEL,DUG"/>
      <play time="18:10" action="MISS" type="FT" team="MICH" uni="22" checkname="HOWARD,JETT"/>
      <play time="15:00" action="SUB" type="OUT" team="WF" uni="13" checkname="JONES,ANDREW"/>
      <play time="15:00" action="SUB" type="IN" team="WF" uni="25" checkname="DAVIS,TREY"/>
      <play time="10:00" action="TIMEOUT" team="MICH"/>
    </period>
    <period number="2">
      <play time="19:00" action="GOOD" type="JUMPER" team="MICH" uni="22" checkname="HOWARD,JETT" hscore="3" vscore="2"/>
    </period>
  </plays>
</bbgame>`

func TestParseGenius(t *testing.T) {
	game, errParse := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errParse)

	require.Equal(t, "genius_sports", game.Format)
	require.Equal(t, "WAKE-MICH", game.Info.GameID)
	require.Equal(t, "Wake Forest", game.Info.HomeName)
	require.Equal(t, "Michigan", game.Info.AwayName)
	require.Equal(t, "WF", game.Info.HomeID)
	require.Equal(t, "MICH", game.Info.AwayID)
	require.Equal(t, 14407, game.Info.Attendance)
	require.False(t, game.Info.Neutral)

	require.Len(t, game.Teams, 2)
	require.Equal(t, Home, game.Teams["WF"].Side)
	require.Equal(t, Away, game.Teams["MICH"].Side)

	require.Len(t, game.Players, 5)
	require.Equal(t, "SMITH,CAM", game.Players["WF_2"].Name)
	require.True(t, game.Players["WF_2"].Started)
	require.False(t, game.Players["WF_25"].Started)

	// Rosters are attached to their teams after adaptation.
	require.Len(t, game.Teams["WF"].Roster, 3)
	require.Len(t, game.Teams["MICH"].Roster, 2)
}

func TestParseGeniusPlays(t *testing.T) {
	game, errParse := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errParse)

	// The period-start substitution row is suppressed; seven real plays remain
	// with contiguous sequence numbers.
	require.Len(t, game.Events, 7)
	for i, event := range game.Events {
		require.Equal(t, i, event.Seq)
	}

	three := game.Events[0]
	require.Equal(t, Shot, three.Kind)
	require.Equal(t, Shot3PT, three.Shot)
	require.Equal(t, 3, three.Points)
	require.Equal(t, "WF_2", three.PlayerID)
	require.Equal(t, "3", three.HomeScore)
	require.Equal(t, "0", three.AwayScore)
	require.Equal(t, 1, three.Period)

	board := game.Events[1]
	require.Equal(t, Rebound, board.Kind)
	require.Equal(t, ReboundDefensive, board.Rebound)
	require.Equal(t, "MICH_1", board.PlayerID)

	miss := game.Events[2]
	require.Equal(t, FreeThrow, miss.Kind)
	require.Equal(t, 0, miss.Points)

	subOut := game.Events[3]
	require.Equal(t, Substitution, subOut.Kind)
	require.Equal(t, "WF_13", subOut.SubOut)
	require.Empty(t, subOut.SubIn)

	subIn := game.Events[4]
	require.Equal(t, "WF_25", subIn.SubIn)

	timeout := game.Events[5]
	require.Equal(t, Timeout, timeout.Kind)
	require.Empty(t, timeout.PlayerID)

	jumper := game.Events[6]
	require.Equal(t, Shot2PT, jumper.Shot)
	require.Equal(t, 2, jumper.Points)
	require.Equal(t, 2, jumper.Period)
}

func TestParseGeniusStarters(t *testing.T) {
	game, errParse := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errParse)

	require.True(t, game.StartersDeclared)
	require.Equal(t, []string{"WF_2", "WF_13"}, game.Starters.Home)
	require.Equal(t, []string{"MICH_1"}, game.Starters.Away)
}

func TestParseIdempotent(t *testing.T) {
	first, errFirst := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errFirst)

	second, errSecond := Parse(strings.NewReader(geniusFixture))
	require.NoError(t, errSecond)

	// Everything except the per-run session id must match exactly.
	require.NotEqual(t, first.SessionID, second.SessionID)
	require.Equal(t, first.Format, second.Format)
	require.Equal(t, first.Info, second.Info)
	require.Equal(t, first.Events, second.Events)
	require.Equal(t, first.Starters, second.Starters)
}

func TestDetectPriority(t *testing.T) {
	tests := []struct {
		doc  string
		name string
	}{
		{`<bbgame><venue/></bbgame>`, "genius_sports"},
		{`<nbagame><play/></nbagame>`, "nba_pbp"},
		{`<feed league="NBA"><play/></feed>`, "nba_pbp"},
		{`<whatever><play/></whatever>`, "generic"},
	}

	for _, testCase := range tests {
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromString(testCase.doc))
		require.Equal(t, testCase.name, Detect(doc.Root()).Name())
	}
}

func TestParseUnreadable(t *testing.T) {
	_, errParse := Parse(strings.NewReader("<unclosed"))
	require.ErrorIs(t, errParse, ErrDocument)

	_, errEmpty := Parse(strings.NewReader(""))
	require.ErrorIs(t, errEmpty, ErrDocument)
}

func TestParseGenericDefaults(t *testing.T) {
	// Minimal unknown document: plays with missing fields resolve to
	// documented defaults instead of failing.
	doc := `<game home_team="A" away_team="B">
	  <play event_type="shot" points="2" team_id="T1" player_id="T1_5" time="12:34"/>
	  <play event_type="nonsense"/>
	</game>`

	game, errParse := Parse(strings.NewReader(doc))
	require.NoError(t, errParse)
	require.Equal(t, "generic", game.Format)
	require.Len(t, game.Events, 2)

	shot := game.Events[0]
	require.Equal(t, Shot, shot.Kind)
	require.Equal(t, 2, shot.Points)
	require.Equal(t, 1, shot.Period)
	require.Equal(t, "T1_5", shot.PlayerID)

	unknown := game.Events[1]
	require.Equal(t, Other, unknown.Kind)
	require.Equal(t, 0, unknown.Points)
	require.Equal(t, 1, unknown.Period)
}

func TestGenericSubFilter(t *testing.T) {
	doc := `<game>
	  <play event_type="substitution" time="20:00" team_id="T1" player_id="T1_4"/>
	  <play event_type="substitution" time="12:00" team_id="T1" player_id="T1_4" substitution_in="T1_4"/>
	</game>`

	game, errParse := Parse(strings.NewReader(doc))
	require.NoError(t, errParse)
	require.Len(t, game.Events, 1)
	require.Equal(t, "12:00", game.Events[0].Clock)
}
