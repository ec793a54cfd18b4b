package projection

import (
	"time"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

// maxPeriodDays bounds explicit period boundaries; anything longer is treated
// as bad input and replaced by the default window.
const maxPeriodDays = 35

// WeekDates lists every date in [weekStart, weekEnd]. Explicit boundaries allow
// irregular periods such as a 14-day all-star week. Without valid boundaries it
// falls back to the Monday-anchored 7-day window containing today.
func WeekDates(weekStart, weekEnd, today string) []string {
	start, errStart := time.Parse(DateLayout, weekStart)
	end, errEnd := time.Parse(DateLayout, weekEnd)
	if errStart != nil || errEnd != nil || end.Before(start) || end.Sub(start) > maxPeriodDays*24*time.Hour {
		start, end = mondayWindow(today)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

func mondayWindow(today string) (time.Time, time.Time) {
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		t, _ = time.Parse(DateLayout, EasternToday(time.Now()))
	}
	offset := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// TeamInput is the already-fetched data for one side of a matchup.
type TeamInput struct {
	Players []models.RosterPlayer
	// Averages are per-game averages keyed by player id.
	Averages map[int]models.StatLine
	// Actuals are stats summed over games played in [weekStart, today).
	Actuals map[int]models.StatLine
}

// AggregateTeam projects every date for one team and combines the projected
// remainder with actual stats already accrued.
func AggregateTeam(in TeamInput, dates []string, today string, schedule models.Schedule, state models.DisableState) models.TeamProjection {
	tp := models.TeamProjection{
		DailyProjections: make([]models.DayProjection, 0, len(dates)),
	}

	seen := make(map[int]bool, len(in.Players))
	for _, p := range in.Players {
		if seen[p.ID()] {
			continue
		}
		seen[p.ID()] = true
		tp.Actual = tp.Actual.Add(in.Actuals[p.ID()])
	}

	for _, date := range dates {
		day := ProjectDay(date, today, in.Players, in.Averages, schedule, state)
		if !day.IsPast {
			tp.Projected = tp.Projected.Add(day.Totals)
		}
		tp.DailyProjections = append(tp.DailyProjections, day)
	}

	tp.Total = tp.Actual.Add(tp.Projected)
	return tp
}
