package pbp

import (
	"fmt"
	"slices"
)

// lineupSize is the number of players a side fields at any time.
const lineupSize = 5

// InferWindow is the default number of leading events the starter-inference
// fallback scans when a document declares no starters.
const InferWindow = 20

// LineupSnapshot is the reconstructed on-court picture attached to one event.
// Both sides always hold exactly five display names; when the source data is
// incomplete the tail entries are best-effort fills (see Reconstruct).
type LineupSnapshot struct {
	Seq    int      `json:"seq"`
	Period int      `json:"period"`
	Clock  string   `json:"clock"`
	HomeID string   `json:"home_team_id"`
	AwayID string   `json:"away_team_id"`
	Home   []string `json:"home_lineup"`
	Away   []string `json:"away_lineup"`
}

// Lineups is the result of one reconstruction pass.
type Lineups struct {
	Snapshots []LineupSnapshot `json:"snapshots"`
	// Provenance reports "declared" when the opening lineups came from
	// roster flags and "inferred" when they were guessed from early events.
	// Consumers should treat inferred lineups as approximations.
	Provenance string `json:"starters"`
}

// onCourt is an insertion-ordered player set; order matters because the
// overflow trim drops oldest-inserted entries first.
type onCourt struct {
	ids []string
}

func (o *onCourt) add(playerID string) {
	if playerID == "" || slices.Contains(o.ids, playerID) {
		return
	}

	o.ids = append(o.ids, playerID)
}

func (o *onCourt) remove(playerID string) {
	if idx := slices.Index(o.ids, playerID); idx >= 0 {
		o.ids = slices.Delete(o.ids, idx, idx+1)
	}
}

// clamp trims an over-full court back down to five. More than five players
// on court means the feed lost a substitution-out record; dropping the
// oldest-inserted entries is a documented lossy fallback, not an exact
// reconstruction of who actually left the floor.
func (o *onCourt) clamp() {
	if len(o.ids) > lineupSize {
		o.ids = o.ids[len(o.ids)-lineupSize:]
	}
}

// sideState carries one team's reconstruction state across the replay.
type sideState struct {
	teamID   string
	court    onCourt
	observed []string // every player seen for this team, first-seen order
}

func (s *sideState) observe(playerID string) {
	if playerID == "" || slices.Contains(s.observed, playerID) {
		return
	}

	s.observed = append(s.observed, playerID)
}

// snapshot returns exactly five display names. Shortfalls are filled from
// the observed-player pool in first-seen order, then with synthetic
// placeholders, so output stays well-formed on arbitrarily broken input.
func (s *sideState) snapshot(game *Game) []string {
	names := make([]string, 0, lineupSize)
	for _, playerID := range s.court.ids {
		names = append(names, game.PlayerName(playerID))
	}

	for _, playerID := range s.observed {
		if len(names) >= lineupSize {
			break
		}
		if slices.Contains(s.court.ids, playerID) {
			continue
		}
		names = append(names, game.PlayerName(playerID))
	}

	for len(names) < lineupSize {
		names = append(names, fmt.Sprintf("Player #%d", len(names)+1))
	}

	return names[:lineupSize]
}

// Reconstruct replays the event stream once, in source order, and derives a
// five-man lineup snapshot per side for every event. inferWindow bounds the
// starter-inference scan; values below 1 use InferWindow.
//
// Opening lineups come from declared starters when the document has them.
// Otherwise they are inferred from the first distinct players seen inside
// the leading events — a heuristic approximation, not an authoritative
// record. Every later gap (missing sub records, over-full courts) is covered
// by a deterministic fallback, so reconstruction never fails; accuracy
// degrades silently instead when the source data is incomplete.
func Reconstruct(game *Game, inferWindow int) Lineups {
	if inferWindow < 1 {
		inferWindow = InferWindow
	}

	homeID, awayID := gameSides(game)

	home := &sideState{teamID: homeID}
	away := &sideState{teamID: awayID}

	seedStarters(game, home, away, inferWindow)

	// Every participant ever seen feeds the under-fill pool.
	for _, event := range game.Events {
		forTeam(event.TeamID, home, away, func(state *sideState) {
			state.observe(event.PlayerID)
			state.observe(event.SubIn)
		})
	}

	provenance := "declared"
	if !game.StartersDeclared {
		provenance = "inferred"
	}

	lineups := Lineups{
		Snapshots:  make([]LineupSnapshot, 0, len(game.Events)),
		Provenance: provenance,
	}

	for _, event := range game.Events {
		if event.Kind == Substitution {
			forTeam(event.TeamID, home, away, func(state *sideState) {
				applySub(state, event)
			})
		}

		lineups.Snapshots = append(lineups.Snapshots, LineupSnapshot{
			Seq:    event.Seq,
			Period: event.Period,
			Clock:  event.Clock,
			HomeID: homeID,
			AwayID: awayID,
			Home:   home.snapshot(game),
			Away:   away.snapshot(game),
		})
	}

	return lineups
}

func applySub(state *sideState, event Event) {
	subIn := event.SubIn
	subOut := event.SubOut

	// Some feeds mark the direction only on the raw type code; the player
	// on the event is the one entering or leaving.
	if subIn == "" && subOut == "" {
		subIn = event.PlayerID
	}

	state.court.remove(subOut)
	state.court.add(subIn)
	state.court.clamp()
}

func seedStarters(game *Game, home *sideState, away *sideState, inferWindow int) {
	for _, playerID := range game.Starters.Home {
		home.observe(playerID)
		home.court.add(playerID)
	}
	for _, playerID := range game.Starters.Away {
		away.observe(playerID)
		away.court.add(playerID)
	}
	home.court.clamp()
	away.court.clamp()

	// No declared starters: take the first five distinct players per side
	// from the opening stretch of the game.
	window := game.Events
	if len(window) > inferWindow {
		window = window[:inferWindow]
	}

	for _, event := range window {
		forTeam(event.TeamID, home, away, func(state *sideState) {
			if len(state.court.ids) < lineupSize && event.PlayerID != "" &&
				len(gameStartersFor(game, state.teamID)) == 0 {
				state.court.add(event.PlayerID)
			}
		})
	}
}

func gameStartersFor(game *Game, teamID string) []string {
	homeID, awayID := gameSides(game)

	switch teamID {
	case homeID:
		return game.Starters.Home
	case awayID:
		return game.Starters.Away
	default:
		return nil
	}
}

func forTeam(teamID string, home *sideState, away *sideState, apply func(*sideState)) {
	switch teamID {
	case "":
		return
	case home.teamID:
		apply(home)
	case away.teamID:
		apply(away)
	}
}

// gameSides resolves which team ID plays on which side, preferring document
// metadata and falling back to appearance order in the event stream.
func gameSides(game *Game) (string, string) {
	homeID := game.Info.HomeID
	awayID := game.Info.AwayID

	if homeID == "" {
		if team := game.TeamBySide(Home); team != nil {
			homeID = team.ID
		}
	}
	if awayID == "" {
		if team := game.TeamBySide(Away); team != nil {
			awayID = team.ID
		}
	}

	for _, event := range game.Events {
		if homeID != "" && awayID != "" {
			break
		}
		if event.TeamID == "" || event.TeamID == homeID || event.TeamID == awayID {
			continue
		}
		if homeID == "" {
			homeID = event.TeamID
		} else {
			awayID = event.TeamID
		}
	}

	return homeID, awayID
}
