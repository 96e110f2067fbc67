package pbp

import "strings"

// EventKind defines a known, canonical play-by-play event type.
type EventKind int

const (
	// Other is used for vendor actions we have no canonical mapping for.
	Other EventKind = iota
	Shot
	FreeThrow
	Rebound
	Assist
	Steal
	Block
	Turnover
	Foul
	Substitution
	Timeout
	JumpBall
)

var eventKindNames = map[EventKind]string{
	Other:        "other",
	Shot:         "shot",
	FreeThrow:    "free_throw",
	Rebound:      "rebound",
	Assist:       "assist",
	Steal:        "steal",
	Block:        "block",
	Turnover:     "turnover",
	Foul:         "foul",
	Substitution: "substitution",
	Timeout:      "timeout",
	JumpBall:     "jumpball",
}

func (k EventKind) String() string {
	name, found := eventKindNames[k]
	if !found {
		return eventKindNames[Other]
	}

	return name
}

func EventKindFromString(s string) EventKind {
	for kind, name := range eventKindNames {
		if name == strings.ToLower(s) {
			return kind
		}
	}

	return Other
}

// ShotKind distinguishes field goal and free throw attempts.
type ShotKind string

const (
	ShotNone ShotKind = ""
	Shot2PT  ShotKind = "2pt"
	Shot3PT  ShotKind = "3pt"
	ShotFT   ShotKind = "free_throw"
)

// ReboundKind distinguishes offensive and defensive boards.
type ReboundKind string

const (
	ReboundNone      ReboundKind = ""
	ReboundOffensive ReboundKind = "offensive"
	ReboundDefensive ReboundKind = "defensive"
)

// Side represents which bench a team belongs to.
type Side int

const (
	SideUnknown Side = iota
	Home
	Away
)

func (s Side) String() string {
	switch s {
	case Home:
		return "home"
	case Away:
		return "away"
	default:
		return "unknown"
	}
}

// ParseSide maps the vendor "vh" style markers onto a Side.
func ParseSide(s string, side *Side) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "home":
		*side = Home
	case "v", "a", "away", "visitor", "vis":
		*side = Away
	default:
		return false
	}

	return true
}

// periodStartClock is the clock value a period opens with. Substitution rows
// stamped at this instant are roster announcements, not real substitutions.
const periodStartClock = "20:00"
