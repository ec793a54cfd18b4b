package projection

import "github.com/omarshaarawi/hoopsbot/internal/models"

// Inputs is everything fetched for one matchup. It is treated as immutable once
// built; overrides are applied on top of it.
type Inputs struct {
	Snapshot models.MatchupSnapshot
	Schedule models.Schedule
	Averages map[int]models.StatLine
	Actuals  map[int]models.StatLine
	Today    string
}

// Build computes a full matchup projection. It performs no I/O and always
// derives every day, total and category from scratch.
func Build(in Inputs, state models.DisableState) models.MatchupProjection {
	snap := in.Snapshot
	dates := WeekDates(snap.WeekStart, snap.WeekEnd, in.Today)

	team1 := AggregateTeam(TeamInput{
		Players:  snap.Team1.Players,
		Averages: in.Averages,
		Actuals:  in.Actuals,
	}, dates, in.Today, in.Schedule, state)
	team2 := AggregateTeam(TeamInput{
		Players:  snap.Team2.Players,
		Averages: in.Averages,
		Actuals:  in.Actuals,
	}, dates, in.Today, in.Schedule, state)

	outcome := ResolveCategories(
		snap.Team1.Name, snap.Team2.Name,
		Baseline(team1, snap.Live, Team1),
		Baseline(team2, snap.Live, Team2),
	)

	return models.MatchupProjection{
		Week:            snap.Week,
		WeekStart:       dates[0],
		WeekEnd:         dates[len(dates)-1],
		CurrentDate:     in.Today,
		Team1:           models.TeamResult{Name: snap.Team1.Name, Projection: team1},
		Team2:           models.TeamResult{Name: snap.Team2.Name, Projection: team2},
		CategoryResults: outcome.Results,
		Team1Score:      outcome.Team1Score,
		Team2Score:      outcome.Team2Score,
		SnapshotUsed:    snap.Live != nil && len(snap.Live.Categories) > 0,
	}
}

// Session pairs loaded inputs with their latest projection so overrides can be
// re-applied without fetching anything again. It is not safe for concurrent
// use; callers serialize access.
type Session struct {
	inputs Inputs
	result models.MatchupProjection
}

func NewSession(in Inputs, state models.DisableState) *Session {
	return &Session{inputs: in, result: Build(in, state)}
}

func (s *Session) Inputs() Inputs {
	return s.inputs
}

func (s *Session) Result() models.MatchupProjection {
	return s.result
}

// Recompute rebuilds the projection from the session's inputs and state.
func (s *Session) Recompute(state models.DisableState) models.MatchupProjection {
	s.result = Build(s.inputs, state)
	return s.result
}

// Players lists both rosters, team 1 first.
func (s *Session) Players() []models.RosterPlayer {
	snap := s.inputs.Snapshot
	players := make([]models.RosterPlayer, 0, len(snap.Team1.Players)+len(snap.Team2.Players))
	players = append(players, snap.Team1.Players...)
	return append(players, snap.Team2.Players...)
}
