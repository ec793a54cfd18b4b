package projection

import (
	"math"
	"testing"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

func TestResolveCategoriesTurnoversInverted(t *testing.T) {
	out := ResolveCategories("Ballers", "Bricklayers",
		models.StatLine{Turnovers: 10},
		models.StatLine{Turnovers: 14},
	)

	if got := out.Results[models.CategoryTurnovers].Winner; got != "Ballers" {
		t.Fatalf("expected team with fewer turnovers to win, got %s", got)
	}
}

func TestResolveCategoriesTiesScoreForNobody(t *testing.T) {
	out := ResolveCategories("A", "B", models.StatLine{Points: 100}, models.StatLine{Points: 100})

	for _, key := range models.Categories {
		res, ok := out.Results[key]
		if !ok {
			t.Fatalf("expected result for %s", key)
		}
		if res.Winner != models.Tie {
			t.Fatalf("expected tie for %s, got %s", key, res.Winner)
		}
	}
	if out.Team1Score != 0 || out.Team2Score != 0 {
		t.Fatalf("expected 0-0, got %d-%d", out.Team1Score, out.Team2Score)
	}
}

func TestResolveCategoriesRatio(t *testing.T) {
	t1 := models.StatLine{FieldGoalsMade: 45, FieldGoalsAttempted: 100, FreeThrowsMade: 0, FreeThrowsAttempted: 0}
	t2 := models.StatLine{FieldGoalsMade: 40, FieldGoalsAttempted: 80, FreeThrowsMade: 7, FreeThrowsAttempted: 10}

	out := ResolveCategories("A", "B", t1, t2)

	fg := out.Results[models.CategoryFieldGoalPercentage]
	if fg.Team1Total != 45 || fg.Team2Total != 50 {
		t.Fatalf("unexpected fg percentages %v %v", fg.Team1Total, fg.Team2Total)
	}
	if fg.Winner != "B" {
		t.Fatalf("expected B to win fg%%, got %s", fg.Winner)
	}
	if fg.Team1Made != 45 || fg.Team1Attempted != 100 || fg.Team2Made != 40 || fg.Team2Attempted != 80 {
		t.Fatalf("expected made/attempted recorded, got %+v", fg)
	}

	ft := out.Results[models.CategoryFreeThrowPercentage]
	if ft.Team1Total != 0 {
		t.Fatalf("expected 0%% with no attempts, got %v", ft.Team1Total)
	}
	if ft.Winner != "B" {
		t.Fatalf("expected B to win ft%%, got %s", ft.Winner)
	}
}

func TestRatioUsesSummedCountsNotDailyPercentages(t *testing.T) {
	dates := []string{"2025-11-05", "2025-11-06"}
	schedule := models.Schedule{"2025-11-05": {"SAS"}, "2025-11-06": {"SAS", "UTA"}}
	in := TeamInput{
		Players: []models.RosterPlayer{player(1, "SAS"), player(2, "UTA")},
		Averages: map[int]models.StatLine{
			1: {FieldGoalsMade: 1, FieldGoalsAttempted: 2},
			2: {FieldGoalsMade: 9, FieldGoalsAttempted: 10},
		},
	}

	tp := AggregateTeam(in, dates, "2025-11-05", schedule, nil)
	out := ResolveCategories("A", "B", tp.Total, models.StatLine{})

	// Day percentages are 50% and 83.3%; the period is 11/14.
	want := 11.0 / 14.0 * 100
	if got := out.Results[models.CategoryFieldGoalPercentage].Team1Total; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBaselineCombinesSnapshotAndRemainder(t *testing.T) {
	tp := models.TeamProjection{
		Actual:    models.StatLine{Points: 999},
		Projected: models.StatLine{Points: 40, FieldGoalsMade: 10, FieldGoalsAttempted: 20},
	}
	tp.Total = tp.Actual.Add(tp.Projected)

	if got := Baseline(tp, nil, Team1); got != tp.Total {
		t.Fatalf("expected total without snapshot, got %+v", got)
	}

	live := &models.LiveStats{Categories: map[string]models.LiveCategory{
		models.CategoryPoints:              {Team1: models.LiveValue{Value: 300}, Team2: models.LiveValue{Value: 280}},
		models.CategoryFieldGoalPercentage: {Team1: models.LiveValue{Value: 0.5, Nominator: 50, Denominator: 100}},
	}}

	one := Baseline(tp, live, Team1)
	if one.Points != 340 {
		t.Fatalf("expected 340 points, got %v", one.Points)
	}
	if one.FieldGoalsMade != 60 || one.FieldGoalsAttempted != 120 {
		t.Fatalf("expected combined made/attempted 60/120, got %v/%v", one.FieldGoalsMade, one.FieldGoalsAttempted)
	}

	two := Baseline(tp, live, Team2)
	if two.Points != 320 {
		t.Fatalf("expected 320 points for team 2, got %v", two.Points)
	}
}
