package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/hoopsbot/internal/models"
)

var (
	ErrNoMatchup    = errors.New("no matchup for team in week")
	ErrTeamNotFound = errors.New("team not found")
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings,mStatus",
	}

	if err := a.client.Get(ctx, a.client.leagueEndpoint(), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	periods := make(map[int][]int, len(espnResponse.Settings.ScheduleSettings.MatchupPeriods))
	for key, ids := range espnResponse.Settings.ScheduleSettings.MatchupPeriods {
		week, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		periods[week] = ids
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstScoringPeriod:   espnResponse.Status.FirstScoringPeriod,
		FinalScoringPeriod:   espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		MatchupPeriods:       periods,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

func (a *API) GetTeams(ctx context.Context) ([]models.FantasyTeam, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam",
	}

	if err := a.client.Get(ctx, a.client.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	teams := make([]models.FantasyTeam, len(leagueResponse.Teams))
	for i, team := range leagueResponse.Teams {
		teams[i] = models.FantasyTeam{
			ID:           team.ID,
			Name:         team.DisplayName(),
			Abbreviation: team.Abbreviation,
			Wins:         team.Record.Overall.Wins,
			Losses:       team.Record.Overall.Losses,
			Ties:         team.Record.Overall.Ties,
		}
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].ID < teams[j].ID
	})

	return teams, nil
}

// FindTeam matches a free-form team name against the league's teams.
func (a *API) FindTeam(ctx context.Context, name string) (models.FantasyTeam, error) {
	teams, err := a.GetTeams(ctx)
	if err != nil {
		return models.FantasyTeam{}, err
	}

	team, ok := matchTeam(teams, name)
	if !ok {
		return models.FantasyTeam{}, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return team, nil
}

func matchTeam(teams []models.FantasyTeam, name string) (models.FantasyTeam, bool) {
	var best models.FantasyTeam
	bestScore := -1.0
	threshold := 0.6

	for _, team := range teams {
		if strings.EqualFold(team.Abbreviation, name) {
			return team, true
		}
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(team.Name))
		maxLen := float64(max(len(name), len(team.Name)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = team
		}
	}

	return best, bestScore >= 0
}

// GetMatchupSnapshot fetches the rosters and live category score of teamID's
// matchup in week. The requested team is always Team1.
func (a *API) GetMatchupSnapshot(ctx context.Context, teamID, week int, meta *models.LeagueMetadata) (models.MatchupSnapshot, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mMatchupScore,mRoster,mTeam",
		"scoringPeriodId": strconv.Itoa(meta.CurrentScoringPeriod),
	}

	headers, err := matchupFilterHeaders(week)
	if err != nil {
		return models.MatchupSnapshot{}, err
	}

	if err := a.client.Get(ctx, a.client.leagueEndpoint(), params, headers, &leagueResponse); err != nil {
		return models.MatchupSnapshot{}, fmt.Errorf("fetching matchup: %w", err)
	}

	var home, away *models.TeamScore
	for i, match := range leagueResponse.Schedule {
		if match.MatchupPeriodID != week {
			continue
		}
		if match.Home.TeamID == teamID {
			home, away = &leagueResponse.Schedule[i].Home, &leagueResponse.Schedule[i].Away
			break
		}
		if match.Away.TeamID == teamID {
			home, away = &leagueResponse.Schedule[i].Away, &leagueResponse.Schedule[i].Home
			break
		}
	}
	if home == nil || away.TeamID == 0 {
		return models.MatchupSnapshot{}, fmt.Errorf("%w: team %d week %d", ErrNoMatchup, teamID, week)
	}

	teams := make(map[int]models.Team, len(leagueResponse.Teams))
	for _, team := range leagueResponse.Teams {
		teams[team.ID] = team
	}

	snapshot := models.MatchupSnapshot{
		Team1: toTeamRoster(teams[home.TeamID], home.TeamID),
		Team2: toTeamRoster(teams[away.TeamID], away.TeamID),
		Week:  week,
		Live:  liveStats(home.CumulativeScore, away.CumulativeScore),
	}
	snapshot.WeekStart, snapshot.WeekEnd = weekBounds(a.client.Config.SeasonStart, meta.MatchupPeriods[week])

	return snapshot, nil
}

func matchupFilterHeaders(week int) (map[string]string, error) {
	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	return map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}, nil
}

func toTeamRoster(team models.Team, id int) models.TeamRoster {
	roster := models.TeamRoster{
		ID:      id,
		Name:    team.DisplayName(),
		Players: make([]models.RosterPlayer, 0, len(team.Roster.Entries)),
	}
	if roster.Name == "" {
		roster.Name = fmt.Sprintf("Team %d", id)
	}

	for _, entry := range team.Roster.Entries {
		player := entry.PlayerPoolEntry.Player
		fantasyID := player.ID
		if fantasyID == 0 {
			fantasyID = entry.PlayerID
		}
		rp := models.RosterPlayer{
			FantasyID: fantasyID,
			Name:      player.FullName,
			NBATeam:   getProTeamString(player.ProTeamID),
			Position:  getLineupSlotString(entry.LineupSlotID),
			Status:    getStatusCode(player.InjuryStatus),
		}
		if !rp.HasID() {
			continue
		}
		roster.Players = append(roster.Players, rp)
	}

	return roster
}

// weekBounds converts scoring period ids (one per day, period 1 on
// seasonStart) to the first and last calendar date of the matchup. Empty
// strings mean the boundaries are unknown.
func weekBounds(seasonStart string, periods []int) (string, string) {
	if len(periods) == 0 {
		return "", ""
	}
	start, err := time.Parse("2006-01-02", seasonStart)
	if err != nil {
		return "", ""
	}

	first, last := periods[0], periods[0]
	for _, p := range periods {
		first = min(first, p)
		last = max(last, p)
	}

	return start.AddDate(0, 0, first-1).Format("2006-01-02"), start.AddDate(0, 0, last-1).Format("2006-01-02")
}

// ESPN basketball stat ids as they appear in scoreByStat.
const (
	statPoints        = "0"
	statBlocks        = "1"
	statSteals        = "2"
	statAssists       = "3"
	statRebounds      = "6"
	statTurnovers     = "11"
	statFGMade        = "13"
	statFGAttempted   = "14"
	statFTMade        = "15"
	statFTAttempted   = "16"
	statThreePointers = "17"
	statFGPercentage  = "19"
	statFTPercentage  = "20"
)

var countingStats = map[string]string{
	models.CategoryPoints:        statPoints,
	models.CategoryRebounds:      statRebounds,
	models.CategoryAssists:       statAssists,
	models.CategorySteals:        statSteals,
	models.CategoryBlocks:        statBlocks,
	models.CategoryThreePointers: statThreePointers,
	models.CategoryTurnovers:     statTurnovers,
}

func liveStats(team1, team2 models.CumulativeScore) *models.LiveStats {
	if len(team1.ScoreByStat) == 0 && len(team2.ScoreByStat) == 0 {
		return nil
	}

	live := &models.LiveStats{Categories: make(map[string]models.LiveCategory, len(models.Categories))}
	for category, stat := range countingStats {
		live.Categories[category] = models.LiveCategory{
			Team1: models.LiveValue{Value: team1.ScoreByStat[stat].Score},
			Team2: models.LiveValue{Value: team2.ScoreByStat[stat].Score},
		}
	}

	ratio := func(s map[string]models.StatScore, pct, made, attempted string) models.LiveValue {
		return models.LiveValue{Value: s[pct].Score, Nominator: s[made].Score, Denominator: s[attempted].Score}
	}
	live.Categories[models.CategoryFieldGoalPercentage] = models.LiveCategory{
		Team1: ratio(team1.ScoreByStat, statFGPercentage, statFGMade, statFGAttempted),
		Team2: ratio(team2.ScoreByStat, statFGPercentage, statFGMade, statFGAttempted),
	}
	live.Categories[models.CategoryFreeThrowPercentage] = models.LiveCategory{
		Team1: ratio(team1.ScoreByStat, statFTPercentage, statFTMade, statFTAttempted),
		Team2: ratio(team2.ScoreByStat, statFTPercentage, statFTMade, statFTAttempted),
	}

	return live
}

func getLineupSlotString(slotID int) string {
	switch slotID {
	case 0:
		return "PG"
	case 1:
		return "SG"
	case 2:
		return "SF"
	case 3:
		return "PF"
	case 4:
		return "C"
	case 5:
		return "G"
	case 6:
		return "F"
	case 11:
		return "UTIL"
	case 12:
		return "BE"
	case 13:
		return "IL"
	default:
		return ""
	}
}

func getStatusCode(injuryStatus string) string {
	switch injuryStatus {
	case "INJURY_RESERVE":
		return "INJ"
	case "OUT":
		return "OUT"
	case "DAY_TO_DAY":
		return "DTD"
	case "SUSPENSION":
		return "SUSP"
	default:
		return ""
	}
}

func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BOS", 3: "NOP", 4: "CHI", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GSW", 10: "HOU", 11: "IND", 12: "LAC", 13: "LAL", 14: "MIA", 15: "MIL", 16: "MIN",
		17: "BKN", 18: "NYK", 19: "ORL", 20: "PHI", 21: "PHX", 22: "POR", 23: "SAC", 24: "SAS",
		25: "OKC", 26: "UTA", 27: "WAS", 28: "TOR", 29: "MEM", 30: "CHA",
	}

	return teams[proTeamID]
}
