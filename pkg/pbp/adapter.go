// Package pbp normalizes vendor basketball play-by-play XML into a canonical
// event stream, reconstructs per-event five-man lineups, and folds the stream
// into player and team box scores.
//
// The adapter layer is deliberately forgiving: any well-formed XML document
// resolves to exactly one adapter (a generic fallback always matches), and
// per-field anomalies are absorbed with deterministic defaults so a parse
// either fails on unreadable XML or completes with structurally valid output.
package pbp

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/gofrs/uuid/v5"
)

var (
	// ErrDocument marks XML that could not be read or has no root element.
	// It is the only fatal error class in the pipeline.
	ErrDocument = errors.New("unreadable document")
)

// Adapter translates one vendor XML schema into the canonical model. All
// implementations must satisfy every operation, even when a format carries no
// signal for it; absence is reported as empty values, never as an error.
type Adapter interface {
	// Name identifies the vendor format for logging and provenance.
	Name() string
	// CanHandle reports whether the document root looks like this format.
	CanHandle(root *etree.Element) bool
	// GameInfo extracts document-level metadata.
	GameInfo(root *etree.Element) GameInfo
	// Teams extracts the two competing teams.
	Teams(root *etree.Element) map[string]*Team
	// Players extracts the full rosters, keyed by canonical player ID.
	Players(root *etree.Element) map[string]*Player
	// Plays extracts the canonical event stream in document order, with
	// synthetic period-start lineup announcements already suppressed.
	Plays(root *etree.Element) []Event
	// Starters returns the declared opening lineups. Formats without a
	// starter signal return empty lists, which triggers inference during
	// lineup reconstruction.
	Starters(root *etree.Element) Starters
}

// adapters is the fixed detection priority list. Most specific first; the
// generic adapter matches unconditionally so detection cannot fail.
var adapters = []Adapter{
	geniusAdapter{},
	nbaAdapter{},
	genericAdapter{},
}

// Detect selects the first adapter whose predicate accepts the root.
func Detect(root *etree.Element) Adapter {
	for _, adapter := range adapters {
		if adapter.CanHandle(root) {
			return adapter
		}
	}

	// Unreachable while the generic adapter stays registered last.
	return genericAdapter{}
}

// Parse reads one XML document and adapts it into a Game.
func Parse(reader io.Reader) (*Game, error) {
	doc := etree.NewDocument()
	if _, errRead := doc.ReadFrom(reader); errRead != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocument, errRead.Error())
	}

	return adaptDocument(doc)
}

// ParseFile reads and adapts the XML document at path.
func ParseFile(path string) (*Game, error) {
	doc := etree.NewDocument()
	if errRead := doc.ReadFromFile(path); errRead != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocument, errRead.Error())
	}

	return adaptDocument(doc)
}

func adaptDocument(doc *etree.Document) (*Game, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrDocument)
	}

	adapter := Detect(root)

	sessionID, errID := uuid.NewV4()
	if errID != nil {
		return nil, fmt.Errorf("session id: %w", errID)
	}

	game := &Game{
		SessionID: sessionID,
		Format:    adapter.Name(),
		Info:      adapter.GameInfo(root),
		Teams:     adapter.Teams(root),
		Players:   adapter.Players(root),
		Events:    adapter.Plays(root),
		Starters:  adapter.Starters(root),
	}

	game.StartersDeclared = len(game.Starters.Home) > 0 || len(game.Starters.Away) > 0

	// Attach rosters to their teams; entities are owned by this session only.
	for _, player := range game.Players {
		team, ok := game.Teams[player.TeamID]
		if !ok {
			continue
		}
		if team.Roster == nil {
			team.Roster = map[string]*Player{}
		}
		team.Roster[player.ID] = player
	}

	return game, nil
}
