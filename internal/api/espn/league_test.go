package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omarshaarawi/hoopsbot/internal/config"
	"github.com/omarshaarawi/hoopsbot/internal/models"
)

const matchupFixture = `{
  "id": 12345,
  "scoringPeriodId": 16,
  "teams": [
    {"id": 3, "abbrev": "DAD", "name": "Coach Dad", "roster": {"entries": [
      {"playerId": 3975, "lineupSlotId": 0, "playerPoolEntry": {"id": 3975, "player": {"id": 3975, "fullName": "Stephen Curry", "proTeamId": 9, "injuryStatus": "ACTIVE"}}},
      {"playerId": 4066, "lineupSlotId": 13, "playerPoolEntry": {"id": 4066, "player": {"id": 4066, "fullName": "Hurt Guy", "proTeamId": 2, "injuryStatus": "OUT"}}}
    ]}},
    {"id": 5, "location": "Beyond", "nickname": "Cursed", "roster": {"entries": [
      {"playerId": 6583, "lineupSlotId": 4, "playerPoolEntry": {"id": 6583, "player": {"id": 6583, "fullName": "Big Man", "proTeamId": 99}}}
    ]}}
  ],
  "schedule": [
    {"id": 9, "matchupPeriodId": 3,
     "home": {"teamId": 5, "cumulativeScore": {"scoreByStat": {"0": {"score": 250}, "11": {"score": 30}, "13": {"score": 90}, "14": {"score": 200}, "19": {"score": 0.45}}}},
     "away": {"teamId": 3, "cumulativeScore": {"scoreByStat": {"0": {"score": 270}, "11": {"score": 25}, "13": {"score": 100}, "14": {"score": 210}}}},
     "winner": "UNDECIDED"}
  ]
}`

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		Config: config.ESPNAPI{
			Year:        "2026",
			LeagueID:    "12345",
			SWID:        "{swid}",
			ESPNS2:      "s2",
			SeasonStart: "2025-10-21",
		},
	}
	return NewAPI(client)
}

func TestGetMatchupSnapshot(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Cookie"), "espn_s2=s2") {
			t.Errorf("expected auth cookie, got %q", r.Header.Get("Cookie"))
		}
		if !strings.Contains(r.Header.Get("x-fantasy-filter"), `"value":[3]`) {
			t.Errorf("expected matchup filter, got %q", r.Header.Get("x-fantasy-filter"))
		}
		if got := r.URL.Query()["view"]; len(got) != 3 {
			t.Errorf("expected three views, got %v", got)
		}
		w.Write([]byte(matchupFixture))
	})

	meta := &models.LeagueMetadata{CurrentScoringPeriod: 16, MatchupPeriods: map[int][]int{3: {15, 16, 17, 18, 19, 20, 21}}}
	snap, err := api.GetMatchupSnapshot(context.Background(), 3, 3, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Team1.Name != "Coach Dad" || snap.Team2.Name != "Beyond Cursed" {
		t.Fatalf("unexpected team names %q vs %q", snap.Team1.Name, snap.Team2.Name)
	}
	if snap.WeekStart != "2025-11-04" || snap.WeekEnd != "2025-11-10" {
		t.Fatalf("unexpected week bounds %s..%s", snap.WeekStart, snap.WeekEnd)
	}

	curry := snap.Team1.Players[0]
	if curry.FantasyID != 3975 || curry.NBATeam != "GSW" || curry.Position != "PG" || curry.Status != "" {
		t.Fatalf("unexpected player mapping %+v", curry)
	}
	hurt := snap.Team1.Players[1]
	if hurt.Position != "IL" || hurt.Status != "OUT" {
		t.Fatalf("expected injured-list mapping, got %+v", hurt)
	}
	if snap.Team2.Players[0].NBATeam != "" {
		t.Fatalf("expected unknown pro team to stay unresolved")
	}

	if snap.Live == nil {
		t.Fatalf("expected live stats")
	}
	pts := snap.Live.Categories[models.CategoryPoints]
	if pts.Team1.Value != 270 || pts.Team2.Value != 250 {
		t.Fatalf("expected requested team as team1, got %+v", pts)
	}
	fg := snap.Live.Categories[models.CategoryFieldGoalPercentage]
	if fg.Team1.Nominator != 100 || fg.Team1.Denominator != 210 || fg.Team2.Value != 0.45 {
		t.Fatalf("unexpected fg live values %+v", fg)
	}
}

func TestGetMatchupSnapshotNoMatchup(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"teams": [], "schedule": []}`))
	})

	_, err := api.GetMatchupSnapshot(context.Background(), 3, 3, &models.LeagueMetadata{})
	if !errors.Is(err, ErrNoMatchup) {
		t.Fatalf("expected ErrNoMatchup, got %v", err)
	}
}

func TestGetLeagueMetadata(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 12345, "scoringPeriodId": 16, "seasonId": 2026,
			"status": {"currentMatchupPeriod": 3, "firstScoringPeriod": 1, "finalScoringPeriod": 170, "isActive": true},
			"settings": {"name": "Hoops", "scheduleSettings": {"matchupPeriods": {"1": [1, 2, 3], "x": [4]}}}}`))
	})

	meta, err := api.GetLeagueMetadata(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.CurrentWeek != 3 || meta.CurrentScoringPeriod != 16 || meta.Name != "Hoops" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if len(meta.MatchupPeriods) != 1 || len(meta.MatchupPeriods[1]) != 3 {
		t.Fatalf("unexpected matchup periods %+v", meta.MatchupPeriods)
	}
}

func TestClientRejectsNonOK(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := api.GetTeams(context.Background()); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestMatchTeam(t *testing.T) {
	teams := []models.FantasyTeam{
		{ID: 1, Name: "I Weigh Less Than Omar", Abbreviation: "OMAR"},
		{ID: 2, Name: "Coach Dad", Abbreviation: "DAD"},
	}

	if team, ok := matchTeam(teams, "coach dadd"); !ok || team.ID != 2 {
		t.Fatalf("expected fuzzy match on Coach Dad, got %+v %v", team, ok)
	}
	if team, ok := matchTeam(teams, "omar"); !ok || team.ID != 1 {
		t.Fatalf("expected abbreviation match, got %+v %v", team, ok)
	}
	if _, ok := matchTeam(teams, "zzz"); ok {
		t.Fatalf("expected no match")
	}
}

func TestWeekBounds(t *testing.T) {
	start, end := weekBounds("2025-10-21", []int{113, 114, 115, 116, 117, 118, 119, 120, 121, 122, 123, 124, 125, 126})
	if start != "2026-02-10" || end != "2026-02-23" {
		t.Fatalf("unexpected bounds %s..%s", start, end)
	}
	if s, e := weekBounds("2025-10-21", nil); s != "" || e != "" {
		t.Fatalf("expected empty bounds without periods")
	}
}
