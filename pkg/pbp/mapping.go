package pbp

import "strings"

// mapAction translates a vendor action/type code pair into the canonical
// vocabulary. Matching is case-insensitive substring matching on the codes,
// and the mapping is total: unrecognized codes come back as Other with zero
// points rather than failing.
func mapAction(action string, playType string) (EventKind, ShotKind, int) {
	act := strings.ToLower(action)
	typ := strings.ToLower(playType)

	switch {
	case strings.Contains(act, "good"):
		if strings.Contains(typ, "ft") {
			return FreeThrow, ShotFT, 1
		}
		if strings.Contains(typ, "3ptr") {
			return Shot, Shot3PT, 3
		}

		return Shot, Shot2PT, 2
	case strings.Contains(act, "miss"):
		if strings.Contains(typ, "ft") {
			return FreeThrow, ShotFT, 0
		}
		if strings.Contains(typ, "3ptr") {
			return Shot, Shot3PT, 0
		}

		return Shot, Shot2PT, 0
	case strings.Contains(act, "rebound"):
		return Rebound, ShotNone, 0
	case strings.Contains(act, "assist"):
		return Assist, ShotNone, 0
	case strings.Contains(act, "steal"):
		return Steal, ShotNone, 0
	case strings.Contains(act, "block"):
		return Block, ShotNone, 0
	case strings.Contains(act, "turnover"):
		return Turnover, ShotNone, 0
	case strings.Contains(act, "foul"):
		return Foul, ShotNone, 0
	case strings.Contains(act, "sub"):
		return Substitution, ShotNone, 0
	case strings.Contains(act, "timeout"):
		return Timeout, ShotNone, 0
	case strings.Contains(act, "jump"):
		return JumpBall, ShotNone, 0
	default:
		return Other, ShotNone, 0
	}
}

// mapRebound pulls the board type out of the vendor play type code.
func mapRebound(playType string) ReboundKind {
	typ := strings.ToUpper(playType)

	switch {
	case strings.Contains(typ, "OFF"):
		return ReboundOffensive
	case strings.Contains(typ, "DEF"):
		return ReboundDefensive
	default:
		return ReboundNone
	}
}
