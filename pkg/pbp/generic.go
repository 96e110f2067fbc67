package pbp

import (
	"reflect"
	"strings"

	"github.com/beevik/etree"
	"github.com/mitchellh/mapstructure"
)

// genericAdapter is the attribute-sniffing fallback. It accepts any document
// and looks for the common team/player/play element patterns with canonical
// attribute names. It is registered last and matches unconditionally, which
// is what guarantees detection never fails.
type genericAdapter struct{}

func (genericAdapter) Name() string { return "generic" }

func (genericAdapter) CanHandle(*etree.Element) bool { return true }

func (genericAdapter) GameInfo(root *etree.Element) GameInfo {
	info := GameInfo{}

	for _, elem := range root.FindElements("//*") {
		tag := strings.ToLower(elem.Tag)
		if tag != "game" && tag != "match" {
			continue
		}

		info.GameID = firstAttr(elem, "id", "game_id")
		info.Date = elem.SelectAttrValue("date", "")
		info.Venue = firstAttr(elem, "venue", "location")
		info.HomeName = firstAttr(elem, "home_team", "home")
		info.AwayName = firstAttr(elem, "away_team", "away")
		info.HomeID = elem.SelectAttrValue("home_id", "")
		info.AwayID = elem.SelectAttrValue("away_id", "")

		break
	}

	return info
}

func (genericAdapter) Teams(root *etree.Element) map[string]*Team {
	teams := map[string]*Team{}

	for _, teamElem := range findAnyCase(root, "team") {
		teamID := firstAttr(teamElem, "id", "team_id")
		if teamID == "" {
			continue
		}

		var side Side
		ParseSide(firstAttr(teamElem, "side", "vh"), &side)

		teams[teamID] = &Team{
			ID:     teamID,
			Name:   firstAttr(teamElem, "name", "team_name"),
			Code:   firstAttr(teamElem, "code", "abbreviation"),
			Side:   side,
			Roster: map[string]*Player{},
		}
	}

	return teams
}

func (genericAdapter) Players(root *etree.Element) map[string]*Player {
	players := map[string]*Player{}

	for _, playerElem := range findAnyCase(root, "player") {
		teamID := firstAttr(playerElem, "team_id", "team")
		jersey := firstAttr(playerElem, "jersey", "number")

		playerID := firstAttr(playerElem, "id", "player_id")
		if playerID == "" {
			playerID = PlayerID(teamID, jersey)
		}
		if playerID == "" {
			continue
		}

		players[playerID] = &Player{
			ID:       playerID,
			TeamID:   teamID,
			Name:     firstAttr(playerElem, "name", "player_name"),
			Jersey:   jersey,
			Position: firstAttr(playerElem, "position", "pos"),
		}
	}

	return players
}

func (genericAdapter) Plays(root *etree.Element) []Event {
	var events []Event

	for _, playElem := range findAnyCase(root, "play") {
		event := decodeAttrEvent(playElem)

		if event.Kind == Substitution && event.Clock == periodStartClock {
			continue
		}

		event.Seq = len(events)
		events = append(events, event)
	}

	return events
}

// Starters returns empty lineups: the generic schema carries no starter
// signal, so reconstruction falls back to inference.
func (genericAdapter) Starters(*etree.Element) Starters { return Starters{} }

// decodeAttrEvent turns a play element's attribute map into a canonical
// event. Decoding is weakly typed (string attributes coerce into ints) with
// hooks for the canonical enums; anything undecodable keeps its zero value.
func decodeAttrEvent(playElem *etree.Element) Event {
	attrs := map[string]string{}
	for _, attr := range playElem.Attr {
		attrs[strings.ToLower(attr.Key)] = attr.Value
	}

	if attrs["time"] == "" {
		attrs["time"] = attrs["clock"]
	}

	// Score and coordinate details sometimes live on child elements.
	for _, child := range playElem.ChildElements() {
		switch strings.ToLower(child.Tag) {
		case "score", "scoring":
			attrs["home_score"] = child.SelectAttrValue("home", "")
			attrs["away_score"] = child.SelectAttrValue("away", "")
		}
	}

	event := Event{Period: 1}

	decoder, errDecoder := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decodeEventKind(),
			decodeShotKind(),
			decodeReboundKind(),
		),
		Result:           &event,
		WeaklyTypedInput: true,
	})
	if errDecoder != nil {
		return event
	}

	// Decode errors on individual fields are absorbed; whatever did decode
	// stays, the rest keeps its documented default.
	_ = decoder.Decode(attrs)

	if event.Period < 1 {
		event.Period = 1
	}
	if event.PlayerID == "" {
		event.PlayerID = PlayerID(event.TeamID, attrs["jersey"])
	}

	return event
}

func decodeEventKind() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Other) {
			return data, nil
		}

		return EventKindFromString(data.(string)), nil
	}
}

func decodeShotKind() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(ShotNone) {
			return data, nil
		}

		return ShotKind(strings.ToLower(data.(string))), nil
	}
}

func decodeReboundKind() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(ReboundNone) {
			return data, nil
		}

		return ReboundKind(strings.ToLower(data.(string))), nil
	}
}

// findAnyCase matches element tags case-insensitively, since feeds disagree
// on <play> vs <Play> vs <PLAY>.
func findAnyCase(root *etree.Element, tag string) []*etree.Element {
	var matches []*etree.Element

	for _, elem := range root.FindElements("//*") {
		if strings.EqualFold(elem.Tag, tag) {
			matches = append(matches, elem)
		}
	}

	return matches
}

// firstAttr returns the first non-empty attribute among the given keys.
func firstAttr(elem *etree.Element, keys ...string) string {
	for _, key := range keys {
		if value := elem.SelectAttrValue(key, ""); value != "" {
			return value
		}
	}

	return ""
}
