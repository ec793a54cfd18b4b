package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/omarshaarawi/hoopsbot/internal/projection"
	"github.com/omarshaarawi/hoopsbot/internal/repository/memory"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrStaleRequest is returned when a newer request was issued while this
	// one was fetching; its result is discarded.
	ErrStaleRequest = errors.New("request superseded by a newer selection")
	// ErrNoProjection is returned by overrides when nothing has been loaded yet.
	ErrNoProjection = errors.New("no projection loaded")
)

// FetchError wraps a failed external read. The projection attempt is aborted
// and the last published projection is left in place.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type LeagueAPI interface {
	GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error)
	GetMatchupSnapshot(ctx context.Context, teamID, week int, meta *models.LeagueMetadata) (models.MatchupSnapshot, error)
	FindTeam(ctx context.Context, name string) (models.FantasyTeam, error)
}

type StatsSource interface {
	ResolvePlayers(ctx context.Context, fantasyIDs []int) (map[int]models.PlayerRef, error)
	Averages(ctx context.Context, playerIDs []int, from string) (map[int]models.StatLine, error)
	GameLogTotals(ctx context.Context, playerIDs []int, from, to string) (map[int]models.StatLine, error)
}

type DisableStore interface {
	Load(ctx context.Context) (models.DisableState, error)
	Save(ctx context.Context, state models.DisableState) error
}

type Recorder interface {
	ObserveProjection(outcome string, d time.Duration)
	ObserveOverride(status string)
}

type Options struct {
	DefaultTeamID int
	SeasonStart   string
	Period        models.StatsPeriod
	Clock         projection.Clock
	Metrics       Recorder
}

type MatchupService struct {
	api      LeagueAPI
	stats    StatsSource
	store    DisableStore
	repo     *memory.Repository
	schedule models.Schedule
	opts     Options

	// mu serializes publication and disable-state read-modify-writes.
	mu         sync.Mutex
	current    string
	session    *projection.Session
	sessionKey string
	sessionReq models.MatchupRequest
	state      models.DisableState
}

func NewMatchupService(api LeagueAPI, stats StatsSource, store DisableStore, repo *memory.Repository, schedule models.Schedule, opts Options) *MatchupService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if !opts.Period.Valid() {
		opts.Period = models.PeriodSeason
	}
	return &MatchupService{
		api:      api,
		stats:    stats,
		store:    store,
		repo:     repo,
		schedule: schedule,
		opts:     opts,
	}
}

// DefaultRequest is the configured team's current-week matchup.
func (s *MatchupService) DefaultRequest() models.MatchupRequest {
	return models.MatchupRequest{TeamID: s.opts.DefaultTeamID, Period: s.opts.Period}
}

// Load fetches everything for req, builds the projection and publishes it.
// req becomes the current selection. If another Load started while this one
// was fetching, the result is dropped and ErrStaleRequest returned.
func (s *MatchupService) Load(ctx context.Context, req models.MatchupRequest) (models.MatchupProjection, error) {
	if !req.Period.Valid() {
		req.Period = s.opts.Period
	}

	s.mu.Lock()
	s.current = req.Key()
	s.mu.Unlock()

	return s.load(ctx, req, true)
}

// Refresh reloads the published matchup without changing the selection. With
// nothing published yet it loads the default request. A user selection made
// while the refresh was fetching is left alone: the refreshed result is only
// cached for Last.
func (s *MatchupService) Refresh(ctx context.Context) (models.MatchupProjection, error) {
	return s.load(ctx, s.displayedRequest(), false)
}

func (s *MatchupService) displayedRequest() models.MatchupRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return s.DefaultRequest()
	}
	return s.sessionReq
}

func (s *MatchupService) load(ctx context.Context, req models.MatchupRequest, claimed bool) (models.MatchupProjection, error) {
	start := time.Now()
	key := req.Key()

	in, err := s.fetch(ctx, req)
	if err != nil {
		s.observe("error", start)
		slog.Error("Failed to load matchup", "request", key, "error", err)
		return models.MatchupProjection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if claimed && s.current != key {
		s.observe("stale", start)
		slog.Info("Discarding stale matchup result", "request", key, "current", s.current)
		return models.MatchupProjection{}, ErrStaleRequest
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		s.observe("error", start)
		return models.MatchupProjection{}, &FetchError{Source: "disable state", Err: err}
	}
	s.state = state

	if !claimed && s.current != "" && s.current != key {
		result := projection.Build(in, state)
		s.repo.SaveProjection(key, result)
		s.observe("ok", start)
		slog.Info("Refreshed matchup outside the current selection", "request", key, "current", s.current)
		return result, nil
	}

	s.current = key
	s.session = projection.NewSession(in, state)
	s.sessionKey = key
	s.sessionReq = req
	result := s.session.Result()
	s.repo.SaveProjection(key, result)

	s.observe("ok", start)
	slog.Info("Matchup projection published",
		"request", key,
		"week", result.Week,
		"score", fmt.Sprintf("%d-%d", result.Team1Score, result.Team2Score))
	return result, nil
}

func (s *MatchupService) fetch(ctx context.Context, req models.MatchupRequest) (projection.Inputs, error) {
	meta, err := s.leagueMetadata(ctx)
	if err != nil {
		return projection.Inputs{}, &FetchError{Source: "league metadata", Err: err}
	}

	week := req.Week
	if week == 0 {
		week = meta.CurrentWeek
	}

	snap, err := s.api.GetMatchupSnapshot(ctx, req.TeamID, week, meta)
	if err != nil {
		return projection.Inputs{}, &FetchError{Source: "matchup", Err: err}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, roster := range []*models.TeamRoster{&snap.Team1, &snap.Team2} {
		g.Go(func() error {
			return s.resolveRoster(gctx, roster)
		})
	}
	if err := g.Wait(); err != nil {
		return projection.Inputs{}, &FetchError{Source: "player ids", Err: err}
	}

	today := projection.EasternToday(s.opts.Clock())
	dates := projection.WeekDates(snap.WeekStart, snap.WeekEnd, today)
	ids := statsIDs(snap)

	averages, err := s.stats.Averages(ctx, ids, s.averagesFrom(req.Period, today))
	if err != nil {
		return projection.Inputs{}, &FetchError{Source: "averages", Err: err}
	}

	actuals, err := s.stats.GameLogTotals(ctx, ids, dates[0], today)
	if err != nil {
		return projection.Inputs{}, &FetchError{Source: "game logs", Err: err}
	}

	return projection.Inputs{
		Snapshot: snap,
		Schedule: s.schedule,
		Averages: averages,
		Actuals:  actuals,
		Today:    today,
	}, nil
}

func (s *MatchupService) leagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	metadata := s.repo.GetMetadata()
	if metadata == nil || time.Since(metadata.LastUpdated) > time.Hour {
		newMetadata, err := s.api.GetLeagueMetadata(ctx)
		if err != nil {
			return nil, err
		}
		s.repo.SaveMetadata(newMetadata)
		return newMetadata, nil
	}
	return metadata, nil
}

// resolveRoster fills stats ids, and NBA teams the platform did not report,
// from the stats store. Players it cannot resolve keep a zero stats id and
// project nothing.
func (s *MatchupService) resolveRoster(ctx context.Context, roster *models.TeamRoster) error {
	ids := make([]int, 0, len(roster.Players))
	for _, p := range roster.Players {
		if p.FantasyID != 0 {
			ids = append(ids, p.FantasyID)
		}
	}

	refs, err := s.stats.ResolvePlayers(ctx, ids)
	if err != nil {
		return err
	}

	for i := range roster.Players {
		ref, ok := refs[roster.Players[i].FantasyID]
		if !ok {
			continue
		}
		roster.Players[i].StatsID = ref.StatsID
		if roster.Players[i].NBATeam == "" {
			roster.Players[i].NBATeam = ref.NBATeam
		}
	}
	return nil
}

func (s *MatchupService) averagesFrom(period models.StatsPeriod, today string) string {
	days := period.Days()
	if days == 0 {
		return s.opts.SeasonStart
	}
	t, err := time.Parse(projection.DateLayout, today)
	if err != nil {
		return s.opts.SeasonStart
	}
	return t.AddDate(0, 0, -days).Format(projection.DateLayout)
}

// statsIDs lists the distinct resolved stats ids on both rosters. Fantasy ids
// belong to another numbering system and are never sent to the stats store.
func statsIDs(snap models.MatchupSnapshot) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, roster := range []models.TeamRoster{snap.Team1, snap.Team2} {
		for _, p := range roster.Players {
			if p.StatsID == 0 || seen[p.StatsID] {
				continue
			}
			seen[p.StatsID] = true
			ids = append(ids, p.StatsID)
		}
	}
	return ids
}

// SetPlayerStatus records a manual override and recomputes the loaded
// projection from the data already fetched.
func (s *MatchupService) SetPlayerStatus(ctx context.Context, playerID int, status projection.PlayerStatus, date string) (models.MatchupProjection, error) {
	return s.applyOverride(ctx, string(status), func(state models.DisableState) (models.DisableState, error) {
		return projection.SetPlayerStatus(state, playerID, status, date)
	})
}

// ClearPlayerStatus removes a player's override so auto rules apply again.
func (s *MatchupService) ClearPlayerStatus(ctx context.Context, playerID int) (models.MatchupProjection, error) {
	return s.applyOverride(ctx, "cleared", func(state models.DisableState) (models.DisableState, error) {
		return projection.ClearPlayerStatus(state, playerID), nil
	})
}

func (s *MatchupService) applyOverride(ctx context.Context, label string, apply func(models.DisableState) (models.DisableState, error)) (models.MatchupProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		state, err := s.store.Load(ctx)
		if err != nil {
			return models.MatchupProjection{}, &FetchError{Source: "disable state", Err: err}
		}
		s.state = state
	}

	next, err := apply(s.state)
	if err != nil {
		return models.MatchupProjection{}, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return models.MatchupProjection{}, fmt.Errorf("saving disable state: %w", err)
	}
	s.state = next

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveOverride(label)
	}

	if s.session == nil {
		return models.MatchupProjection{}, ErrNoProjection
	}

	result := s.session.Recompute(next)
	s.repo.SaveProjection(s.sessionKey, result)
	return result, nil
}

// Current returns the most recently published projection.
func (s *MatchupService) Current() (models.MatchupProjection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.MatchupProjection{}, false
	}
	return s.session.Result(), true
}

// Last returns the last projection published for req, if any.
func (s *MatchupService) Last(req models.MatchupRequest) (models.MatchupProjection, bool) {
	if !req.Period.Valid() {
		req.Period = s.opts.Period
	}
	return s.repo.GetProjection(req.Key())
}

func (s *MatchupService) DisableState() models.DisableState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// FindPlayer matches a name against the loaded rosters.
func (s *MatchupService) FindPlayer(name string) (models.RosterPlayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.RosterPlayer{}, false
	}
	return matchPlayer(s.session.Players(), name)
}

func matchPlayer(players []models.RosterPlayer, name string) (models.RosterPlayer, bool) {
	var best models.RosterPlayer
	bestScore := -1.0
	threshold := 0.7
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return best, false
	}

	for _, p := range players {
		fullName := strings.ToLower(p.Name)
		if fullName == "" {
			continue
		}
		similarity := 0.0
		if strings.Contains(fullName, query) {
			similarity = 0.9
		}
		distance := fuzzy.LevenshteinDistance(query, fullName)
		maxLen := float64(max(len(query), len(fullName)))
		similarity = max(similarity, 1-float64(distance)/maxLen)

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = p
		}
	}

	return best, bestScore >= 0
}

func (s *MatchupService) observe(outcome string, start time.Time) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveProjection(outcome, time.Since(start))
	}
}
