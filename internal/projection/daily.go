package projection

import (
	"time"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

// ProjectDay builds one team's projection for a single date. Past days are
// frozen: no entries and zero totals, since their stats come from game logs.
// Scheduled players that are disabled are listed with Disabled set but do not
// count; players whose team is idle are left out.
func ProjectDay(date, today string, players []models.RosterPlayer, averages map[int]models.StatLine, schedule models.Schedule, state models.DisableState) models.DayProjection {
	day := models.DayProjection{
		Date:    date,
		IsPast:  date < today,
		IsToday: date == today,
		Players: []models.PlayerDayEntry{},
	}
	day.Weekday, day.MonthDay = dayLabels(date)

	if day.IsPast {
		return day
	}

	for _, p := range players {
		if !schedule.Plays(date, p.NBATeam) {
			continue
		}

		disabled, auto := ResolveDisabled(p, date, state)
		avg := averages[p.ID()]

		day.Players = append(day.Players, models.PlayerDayEntry{
			PlayerID:     p.ID(),
			Name:         p.Name,
			Team:         p.NBATeam,
			Averages:     avg,
			Disabled:     disabled,
			AutoDisabled: auto,
			Status:       p.Status,
			Position:     p.Position,
		})

		if !disabled {
			day.Totals = day.Totals.Add(avg)
		}
	}

	return day
}

func dayLabels(date string) (weekday, monthDay string) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", ""
	}
	return t.Format("Mon"), t.Format("Jan 2")
}
