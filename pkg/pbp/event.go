package pbp

import (
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Event is one vendor-neutral play-by-play occurrence. Seq mirrors source
// document order and is the only ordering key; consumers must never re-sort.
type Event struct {
	Seq        int         `json:"seq" mapstructure:"-"`
	Period     int         `json:"period" mapstructure:"period"`
	Clock      string      `json:"clock" mapstructure:"time"`
	TeamID     string      `json:"team_id" mapstructure:"team_id"`
	PlayerID   string      `json:"player_id" mapstructure:"player_id"`
	PlayerName string      `json:"player_name" mapstructure:"player_name"`
	Kind       EventKind   `json:"event_type" mapstructure:"event_type"`
	Points     int         `json:"points" mapstructure:"points"`
	Shot       ShotKind    `json:"shot_type" mapstructure:"shot_type"`
	Rebound    ReboundKind `json:"rebound_type" mapstructure:"rebound_type"`
	SubIn      string      `json:"substitution_in" mapstructure:"substitution_in"`
	SubOut     string      `json:"substitution_out" mapstructure:"substitution_out"`
	HomeScore  string      `json:"home_score" mapstructure:"home_score"`
	AwayScore  string      `json:"away_score" mapstructure:"away_score"`
	// Raw vendor action/type codes, kept for provenance.
	Action  string `json:"action" mapstructure:"action"`
	RawType string `json:"type" mapstructure:"type"`
}

// ClockSeconds converts the MM:SS game clock into elapsed seconds remaining.
// Malformed clocks yield 0.
func (e Event) ClockSeconds() int {
	mins, secs, found := strings.Cut(e.Clock, ":")
	if !found {
		return 0
	}

	m, errM := strconv.Atoi(mins)
	s, errS := strconv.Atoi(secs)
	if errM != nil || errS != nil {
		return 0
	}

	return m*60 + s
}

// Player is one roster entry. ID is derived from (team, jersey), never from
// the display name, so repeated parses of a document stay idempotent.
type Player struct {
	ID       string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Name     string `json:"name"`
	Jersey   string `json:"jersey"`
	Position string `json:"position"`
	Started  bool   `json:"started"`
}

// PlayerID derives the canonical player identifier.
func PlayerID(teamID string, jersey string) string {
	if teamID == "" || jersey == "" {
		return ""
	}

	return teamID + "_" + jersey
}

type Team struct {
	ID     string             `json:"team_id"`
	Name   string             `json:"name"`
	Code   string             `json:"code"`
	Side   Side               `json:"side"`
	Roster map[string]*Player `json:"roster"`
}

// GameInfo holds document-level metadata. Every field is best-effort; absent
// attributes come through as zero values.
type GameInfo struct {
	GameID     string `json:"game_id"`
	Date       string `json:"date"`
	Venue      string `json:"venue"`
	HomeName   string `json:"home_team"`
	AwayName   string `json:"away_team"`
	HomeID     string `json:"home_id"`
	AwayID     string `json:"away_id"`
	TipTime    string `json:"time"`
	Attendance int    `json:"attendance"`
	LeagueGame bool   `json:"league_game"`
	Neutral    bool   `json:"neutral_game"`
	Postseason bool   `json:"postseason"`
	Source     string `json:"source"`
	Version    string `json:"version"`
	Generated  string `json:"generated"`
}

// Starters is the declared (or later inferred) opening lineup per side,
// as canonical player IDs.
type Starters struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

// Game is the session-scoped result of adapting one document. It owns all
// entities; nothing here survives past a single parse-and-process pass.
type Game struct {
	SessionID uuid.UUID          `json:"session_id"`
	Format    string             `json:"format"`
	Info      GameInfo           `json:"game_info"`
	Teams     map[string]*Team   `json:"teams"`
	Players   map[string]*Player `json:"players"`
	Events    []Event            `json:"events"`
	Starters  Starters           `json:"starters"`
	// StartersDeclared is true when the lineups above came from roster flags
	// in the document rather than the inference fallback.
	StartersDeclared bool `json:"starters_declared"`
}

// TeamBySide returns the team on the given side, or nil.
func (g *Game) TeamBySide(side Side) *Team {
	for _, team := range g.Teams {
		if team.Side == side {
			return team
		}
	}

	return nil
}

// PlayerName resolves an ID to a display name, falling back to the name the
// event stream carried, then to a jersey-number placeholder.
func (g *Game) PlayerName(playerID string) string {
	if player, ok := g.Players[playerID]; ok && player.Name != "" {
		return FormatName(player.Name)
	}

	for _, event := range g.Events {
		if event.PlayerID == playerID && event.PlayerName != "" {
			return FormatName(event.PlayerName)
		}
	}

	if _, jersey, found := strings.Cut(playerID, "_"); found {
		return "Player #" + jersey
	}

	return playerID
}

var titleCaser = cases.Title(language.English)

// FormatName turns the "LAST,FIRST" form most feeds use into "First Last",
// title-cased. Names without a comma are title-cased as-is.
func FormatName(name string) string {
	last, first, found := strings.Cut(name, ",")
	if found {
		name = strings.TrimSpace(first) + " " + strings.TrimSpace(last)
	}

	return titleCaser.String(strings.ToLower(name))
}
