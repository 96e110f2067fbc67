package pbp

import "fmt"

// Describe renders one event as a human-readable play description.
func Describe(game *Game, event Event) string {
	player := ""
	if event.PlayerID != "" {
		player = game.PlayerName(event.PlayerID)
	} else if event.PlayerName != "" {
		player = FormatName(event.PlayerName)
	}

	team := event.TeamID
	if info, found := game.Teams[event.TeamID]; found && info.Name != "" {
		team = info.Name
	}

	switch event.Kind {
	case Shot:
		made := "Missed"
		if event.Points > 0 {
			made = "Made"
		}

		kind := "2PT FG"
		if event.Shot == Shot3PT {
			kind = "3PT FG"
		}

		return fmt.Sprintf("%s %s by %s for %s", made, kind, player, team)
	case FreeThrow:
		if event.Points > 0 {
			return fmt.Sprintf("Made Free Throw by %s for %s", player, team)
		}

		return fmt.Sprintf("Missed Free Throw by %s for %s", player, team)
	case Rebound:
		kind := "Defensive"
		if event.Rebound == ReboundOffensive {
			kind = "Offensive"
		}

		return fmt.Sprintf("%s %s Rebound for %s", player, kind, team)
	case Assist:
		return fmt.Sprintf("Assist by %s for %s", player, team)
	case Steal:
		return fmt.Sprintf("%s Steal for %s", player, team)
	case Block:
		return fmt.Sprintf("%s Blocked Shot for %s", player, team)
	case Turnover:
		return fmt.Sprintf("%s Turnover for %s", player, team)
	case Foul:
		return fmt.Sprintf("%s Foul for %s", player, team)
	case Substitution:
		if event.SubOut != "" {
			return fmt.Sprintf("%s exits the game for %s", player, team)
		}

		return fmt.Sprintf("%s enters the game for %s", player, team)
	case Timeout:
		return fmt.Sprintf("%s Timeout", team)
	case JumpBall:
		return fmt.Sprintf("Jump ball controlled by %s", team)
	default:
		if player == "" {
			return fmt.Sprintf("%s %s", event.Action, event.RawType)
		}

		return fmt.Sprintf("%s %s for %s", player, event.Kind, team)
	}
}
