package pbp

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// geniusAdapter handles the Genius Sports / StatCrew style bbgame schema:
// a <venue> header, <team vh="H|V"> rosters and <period><play .../> streams
// where plays carry action/type attribute codes.
type geniusAdapter struct{}

func (geniusAdapter) Name() string { return "genius_sports" }

func (geniusAdapter) CanHandle(root *etree.Element) bool {
	if root.Tag == "bbgame" {
		return true
	}
	if strings.EqualFold(root.SelectAttrValue("source", ""), "genius sports") {
		return true
	}

	return root.FindElement("//venue") != nil && root.FindElement("//plays") != nil
}

func (geniusAdapter) GameInfo(root *etree.Element) GameInfo {
	info := GameInfo{
		Source:    root.SelectAttrValue("source", ""),
		Version:   root.SelectAttrValue("version", ""),
		Generated: root.SelectAttrValue("generated", ""),
	}

	venue := root.FindElement("//venue")
	if venue == nil {
		return info
	}

	info.GameID = venue.SelectAttrValue("gameid", "")
	info.Date = venue.SelectAttrValue("date", "")
	info.Venue = venue.SelectAttrValue("location", "")
	info.HomeName = venue.SelectAttrValue("homename", "")
	info.AwayName = venue.SelectAttrValue("visname", "")
	info.HomeID = venue.SelectAttrValue("homeid", "")
	info.AwayID = venue.SelectAttrValue("visid", "")
	info.TipTime = venue.SelectAttrValue("time", "")

	if attend, errAttend := strconv.Atoi(venue.SelectAttrValue("attend", "")); errAttend == nil {
		info.Attendance = attend
	}

	info.LeagueGame = venue.SelectAttrValue("leaguegame", "") == "Y"
	info.Neutral = venue.SelectAttrValue("neutralgame", "") == "Y"
	info.Postseason = venue.SelectAttrValue("postseason", "") == "Y"

	return info
}

func (geniusAdapter) Teams(root *etree.Element) map[string]*Team {
	teams := map[string]*Team{}

	for _, teamElem := range root.FindElements("//team") {
		teamID := teamElem.SelectAttrValue("id", "")
		if teamID == "" {
			continue
		}

		var side Side
		ParseSide(teamElem.SelectAttrValue("vh", ""), &side)

		teams[teamID] = &Team{
			ID:     teamID,
			Name:   teamElem.SelectAttrValue("name", ""),
			Code:   teamElem.SelectAttrValue("code", ""),
			Side:   side,
			Roster: map[string]*Player{},
		}
	}

	return teams
}

func (geniusAdapter) Players(root *etree.Element) map[string]*Player {
	players := map[string]*Player{}

	for _, teamElem := range root.FindElements("//team") {
		teamID := teamElem.SelectAttrValue("id", "")

		for _, playerElem := range teamElem.FindElements(".//player") {
			jersey := playerElem.SelectAttrValue("uni", "")
			name := playerElem.SelectAttrValue("name", "")

			playerID := PlayerID(teamID, jersey)
			if playerID == "" || name == "" {
				continue
			}

			players[playerID] = &Player{
				ID:       playerID,
				TeamID:   teamID,
				Name:     name,
				Jersey:   jersey,
				Position: playerElem.SelectAttrValue("pos", ""),
				Started:  playerElem.SelectAttrValue("gs", "0") == "1",
			}
		}
	}

	return players
}

func (geniusAdapter) Plays(root *etree.Element) []Event {
	var events []Event

	for _, playElem := range root.FindElements("//play") {
		event := parseGeniusPlay(playElem)

		// Period-start substitution rows announce the opening lineup; they
		// are not real substitutions and would poison lineup tracking.
		if event.Kind == Substitution && event.Clock == periodStartClock {
			continue
		}

		event.Seq = len(events)
		events = append(events, event)
	}

	return events
}

func parseGeniusPlay(playElem *etree.Element) Event {
	action := playElem.SelectAttrValue("action", "")
	playType := playElem.SelectAttrValue("type", "")
	teamID := playElem.SelectAttrValue("team", "")
	jersey := playElem.SelectAttrValue("uni", "")

	kind, shot, points := mapAction(action, playType)

	event := Event{
		Period:     geniusPeriod(playElem),
		Clock:      playElem.SelectAttrValue("time", ""),
		TeamID:     teamID,
		PlayerID:   PlayerID(teamID, jersey),
		PlayerName: playElem.SelectAttrValue("checkname", ""),
		Kind:       kind,
		Points:     points,
		Shot:       shot,
		HomeScore:  playElem.SelectAttrValue("hscore", ""),
		AwayScore:  playElem.SelectAttrValue("vscore", ""),
		Action:     action,
		RawType:    playType,
	}

	if kind == Rebound {
		event.Rebound = mapRebound(playType)
	}

	if kind == Substitution {
		switch strings.ToUpper(playType) {
		case "IN":
			event.SubIn = event.PlayerID
		case "OUT":
			event.SubOut = event.PlayerID
		}
	}

	return event
}

// geniusPeriod walks up to the enclosing <period> element. Plays outside a
// period element default to period 1.
func geniusPeriod(playElem *etree.Element) int {
	for parent := playElem.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Tag != "period" {
			continue
		}

		if number, errNum := strconv.Atoi(parent.SelectAttrValue("number", "")); errNum == nil && number >= 1 {
			return number
		}

		break
	}

	return 1
}

// Starters reads the gs roster flags. Genius feeds mark starters explicitly,
// so these lineups are authoritative rather than inferred.
func (geniusAdapter) Starters(root *etree.Element) Starters {
	var starters Starters

	for _, teamElem := range root.FindElements("//team") {
		teamID := teamElem.SelectAttrValue("id", "")

		var side Side
		if !ParseSide(teamElem.SelectAttrValue("vh", ""), &side) {
			continue
		}

		for _, playerElem := range teamElem.FindElements(".//player") {
			if playerElem.SelectAttrValue("gs", "0") != "1" {
				continue
			}

			playerID := PlayerID(teamID, playerElem.SelectAttrValue("uni", ""))
			if playerID == "" {
				continue
			}

			switch side {
			case Home:
				starters.Home = append(starters.Home, playerID)
			case Away:
				starters.Away = append(starters.Away, playerID)
			}
		}
	}

	return starters
}
