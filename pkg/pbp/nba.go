package pbp

import (
	"strings"

	"github.com/beevik/etree"
)

// nbaAdapter handles NBA-style feeds where plays already carry canonical
// attribute names (event_type, player_id, points). Structurally close to the
// generic fallback, but recognized ahead of it via league markers.
type nbaAdapter struct{}

func (nbaAdapter) Name() string { return "nba_pbp" }

func (nbaAdapter) CanHandle(root *etree.Element) bool {
	tag := strings.ToLower(root.Tag)
	if strings.Contains(tag, "nba") || strings.Contains(tag, "basketball") {
		return true
	}

	for _, elem := range root.FindElements("//*") {
		if strings.Contains(strings.ToLower(elem.SelectAttrValue("league", "")), "nba") {
			return true
		}
	}

	return false
}

func (nbaAdapter) GameInfo(root *etree.Element) GameInfo {
	info := GameInfo{}

	gameElem := root.FindElement("//game")
	if gameElem == nil {
		gameElem = root.FindElement("//Game")
	}
	if gameElem == nil {
		return info
	}

	info.GameID = gameElem.SelectAttrValue("id", "")
	info.Date = gameElem.SelectAttrValue("date", "")
	info.Venue = gameElem.SelectAttrValue("venue", "")
	info.HomeName = gameElem.SelectAttrValue("home_team", "")
	info.AwayName = gameElem.SelectAttrValue("away_team", "")
	info.HomeID = gameElem.SelectAttrValue("home_id", "")
	info.AwayID = gameElem.SelectAttrValue("away_id", "")

	return info
}

func (nbaAdapter) Teams(root *etree.Element) map[string]*Team {
	teams := map[string]*Team{}

	for _, teamElem := range root.FindElements("//team") {
		teamID := teamElem.SelectAttrValue("id", "")
		if teamID == "" {
			continue
		}

		var side Side
		ParseSide(teamElem.SelectAttrValue("side", ""), &side)

		teams[teamID] = &Team{
			ID:     teamID,
			Name:   teamElem.SelectAttrValue("name", ""),
			Code:   teamElem.SelectAttrValue("abbreviation", ""),
			Side:   side,
			Roster: map[string]*Player{},
		}
	}

	return teams
}

func (nbaAdapter) Players(root *etree.Element) map[string]*Player {
	players := map[string]*Player{}

	for _, playerElem := range root.FindElements("//player") {
		playerID := playerElem.SelectAttrValue("id", "")
		if playerID == "" {
			continue
		}

		players[playerID] = &Player{
			ID:       playerID,
			TeamID:   playerElem.SelectAttrValue("team_id", ""),
			Name:     playerElem.SelectAttrValue("name", ""),
			Jersey:   playerElem.SelectAttrValue("jersey", ""),
			Position: playerElem.SelectAttrValue("position", ""),
		}
	}

	return players
}

func (nbaAdapter) Plays(root *etree.Element) []Event {
	var events []Event

	for _, playElem := range root.FindElements("//play") {
		event := decodeAttrEvent(playElem)

		if event.Kind == Substitution && event.Clock == periodStartClock {
			continue
		}

		event.Seq = len(events)
		events = append(events, event)
	}

	return events
}

// Starters returns empty lineups: NBA-style feeds in the wild do not flag
// starters on the roster, so reconstruction infers them.
func (nbaAdapter) Starters(*etree.Element) Starters { return Starters{} }
