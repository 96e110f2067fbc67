package pbp

import "slices"

// RegulationMinutes is the length of a regulation game used by the
// minutes-played estimate.
const RegulationMinutes = 40.0

// minutesScale damps the estimate so only an every-play participant
// approaches the full regulation time.
const minutesScale = 0.8

// PlayerStats is the running box-score accumulator for one player. Counters
// only ever increase during the fold; the derived percentages are filled in
// exactly once afterwards.
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	Jersey     string `json:"jersey"`
	Position   string `json:"position"`

	// MinutesPlayed is a heuristic estimate scaled from the player's share
	// of recorded events, not a reconciliation with on-court lineups.
	MinutesPlayed float64 `json:"minutes_played"`

	Points             int `json:"points"`
	FieldGoalsMade     int `json:"field_goals_made"`
	FieldGoalsAtt      int `json:"field_goals_attempted"`
	ThreePointsMade    int `json:"three_points_made"`
	ThreePointsAtt     int `json:"three_points_attempted"`
	FreeThrowsMade     int `json:"free_throws_made"`
	FreeThrowsAtt      int `json:"free_throws_attempted"`
	Rebounds           int `json:"rebounds"`
	OffensiveRebounds  int `json:"offensive_rebounds"`
	DefensiveRebounds  int `json:"defensive_rebounds"`
	Assists            int `json:"assists"`
	Steals             int `json:"steals"`
	Blocks             int `json:"blocks"`
	Turnovers          int `json:"turnovers"`
	Fouls              int `json:"fouls"`
	FieldGoalPct       float64 `json:"field_goal_percentage"`
	ThreePointPct      float64 `json:"three_point_percentage"`
	FreeThrowPct       float64 `json:"free_throw_percentage"`

	eventCount int
}

// TeamStats is always a post-hoc sum over the team's player accumulators,
// never incremented independently, so player totals and team totals agree by
// construction.
type TeamStats struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`

	Points            int `json:"points"`
	FieldGoalsMade    int `json:"field_goals_made"`
	FieldGoalsAtt     int `json:"field_goals_attempted"`
	ThreePointsMade   int `json:"three_points_made"`
	ThreePointsAtt    int `json:"three_points_attempted"`
	FreeThrowsMade    int `json:"free_throws_made"`
	FreeThrowsAtt     int `json:"free_throws_attempted"`
	Rebounds          int `json:"rebounds"`
	OffensiveRebounds int `json:"offensive_rebounds"`
	DefensiveRebounds int `json:"defensive_rebounds"`
	Assists           int `json:"assists"`
	Steals            int `json:"steals"`
	Blocks            int `json:"blocks"`
	Turnovers         int `json:"turnovers"`
	Fouls             int `json:"fouls"`
	FieldGoalPct      float64 `json:"field_goal_percentage"`
	ThreePointPct     float64 `json:"three_point_percentage"`
	FreeThrowPct      float64 `json:"free_throw_percentage"`
}

// BoxScore holds the aggregate tables for one game. Iteration orders follow
// first appearance in the event stream so repeated runs emit identical rows.
type BoxScore struct {
	players     map[string]*PlayerStats
	teams       map[string]*TeamStats
	playerOrder []string
	teamOrder   []string
}

// Player returns the accumulator for a player ID, or nil.
func (box *BoxScore) Player(playerID string) *PlayerStats {
	return box.players[playerID]
}

// Team returns the accumulator for a team ID, or nil.
func (box *BoxScore) Team(teamID string) *TeamStats {
	return box.teams[teamID]
}

// Players returns all player rows in first-appearance order.
func (box *BoxScore) Players() []*PlayerStats {
	rows := make([]*PlayerStats, 0, len(box.playerOrder))
	for _, playerID := range box.playerOrder {
		rows = append(rows, box.players[playerID])
	}

	return rows
}

// Teams returns all team rows in first-appearance order.
func (box *BoxScore) Teams() []*TeamStats {
	rows := make([]*TeamStats, 0, len(box.teamOrder))
	for _, teamID := range box.teamOrder {
		rows = append(rows, box.teams[teamID])
	}

	return rows
}

// TeamPlayers returns one team's rows sorted for box-score display: minutes
// descending, then points descending.
func (box *BoxScore) TeamPlayers(teamID string) []*PlayerStats {
	var rows []*PlayerStats
	for _, playerID := range box.playerOrder {
		if player := box.players[playerID]; player.TeamID == teamID {
			rows = append(rows, player)
		}
	}

	slices.SortStableFunc(rows, func(a, b *PlayerStats) int {
		if a.MinutesPlayed != b.MinutesPlayed {
			if a.MinutesPlayed > b.MinutesPlayed {
				return -1
			}

			return 1
		}

		return b.Points - a.Points
	})

	return rows
}

// Summarize folds the canonical event stream into player accumulators and
// derives the team rows. The fold depends on the event stream only and is
// fully deterministic for a given document.
func Summarize(game *Game, regulationMinutes float64) *BoxScore {
	box := &BoxScore{
		players: map[string]*PlayerStats{},
		teams:   map[string]*TeamStats{},
	}

	for _, event := range game.Events {
		if event.PlayerID == "" {
			continue
		}

		player := box.playerFor(game, event)
		player.eventCount++
		player.Points += event.Points

		switch event.Kind {
		case Shot:
			player.FieldGoalsAtt++
			if event.Points > 0 {
				player.FieldGoalsMade++
			}
			if event.Shot == Shot3PT {
				player.ThreePointsAtt++
				if event.Points > 0 {
					player.ThreePointsMade++
				}
			}
		case FreeThrow:
			player.FreeThrowsAtt++
			if event.Points > 0 {
				player.FreeThrowsMade++
			}
		case Rebound:
			player.Rebounds++
			if event.Rebound == ReboundOffensive {
				player.OffensiveRebounds++
			} else {
				player.DefensiveRebounds++
			}
		case Assist:
			player.Assists++
		case Steal:
			player.Steals++
		case Block:
			player.Blocks++
		case Turnover:
			player.Turnovers++
		case Foul:
			player.Fouls++
		}
	}

	box.estimateMinutes(regulationMinutes)
	box.sumTeams(game)
	box.finalizePercentages()

	return box
}

func (box *BoxScore) playerFor(game *Game, event Event) *PlayerStats {
	if player, found := box.players[event.PlayerID]; found {
		return player
	}

	stats := &PlayerStats{
		PlayerID:   event.PlayerID,
		PlayerName: game.PlayerName(event.PlayerID),
		TeamID:     event.TeamID,
	}

	if roster, found := game.Players[event.PlayerID]; found {
		stats.Jersey = roster.Jersey
		stats.Position = roster.Position
	}
	if team, found := game.Teams[event.TeamID]; found {
		stats.TeamName = team.Name
	}

	box.players[event.PlayerID] = stats
	box.playerOrder = append(box.playerOrder, event.PlayerID)

	return stats
}

// estimateMinutes scales each player's share of recorded events against the
// busiest player on the floor. An acknowledged approximation: it does not
// reconcile with substitution data and clamps everyone into [1, regulation].
func (box *BoxScore) estimateMinutes(regulationMinutes float64) {
	maxEvents := 0
	for _, player := range box.players {
		maxEvents = max(maxEvents, player.eventCount)
	}
	if maxEvents == 0 {
		return
	}

	for _, player := range box.players {
		minutes := float64(player.eventCount) / float64(maxEvents) * regulationMinutes * minutesScale
		player.MinutesPlayed = min(max(minutes, 1.0), regulationMinutes)
	}
}

func (box *BoxScore) sumTeams(game *Game) {
	for _, playerID := range box.playerOrder {
		player := box.players[playerID]

		team, found := box.teams[player.TeamID]
		if !found {
			team = &TeamStats{TeamID: player.TeamID, TeamName: player.TeamName}
			if info, ok := game.Teams[player.TeamID]; ok {
				team.TeamName = info.Name
			}
			box.teams[player.TeamID] = team
			box.teamOrder = append(box.teamOrder, player.TeamID)
		}

		team.Points += player.Points
		team.FieldGoalsMade += player.FieldGoalsMade
		team.FieldGoalsAtt += player.FieldGoalsAtt
		team.ThreePointsMade += player.ThreePointsMade
		team.ThreePointsAtt += player.ThreePointsAtt
		team.FreeThrowsMade += player.FreeThrowsMade
		team.FreeThrowsAtt += player.FreeThrowsAtt
		team.Rebounds += player.Rebounds
		team.OffensiveRebounds += player.OffensiveRebounds
		team.DefensiveRebounds += player.DefensiveRebounds
		team.Assists += player.Assists
		team.Steals += player.Steals
		team.Blocks += player.Blocks
		team.Turnovers += player.Turnovers
		team.Fouls += player.Fouls
	}
}

// pct returns made/attempted, or 0 for no attempts.
func pct(made int, attempted int) float64 {
	if attempted == 0 {
		return 0.0
	}

	return float64(made) / float64(attempted)
}

func (box *BoxScore) finalizePercentages() {
	for _, player := range box.players {
		player.FieldGoalPct = pct(player.FieldGoalsMade, player.FieldGoalsAtt)
		player.ThreePointPct = pct(player.ThreePointsMade, player.ThreePointsAtt)
		player.FreeThrowPct = pct(player.FreeThrowsMade, player.FreeThrowsAtt)
	}

	for _, team := range box.teams {
		team.FieldGoalPct = pct(team.FieldGoalsMade, team.FieldGoalsAtt)
		team.ThreePointPct = pct(team.ThreePointsMade, team.ThreePointsAtt)
		team.FreeThrowPct = pct(team.FreeThrowsMade, team.FreeThrowsAtt)
	}
}
