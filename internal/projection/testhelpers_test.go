package projection

import "github.com/omarshaarawi/hoopsbot/internal/models"

func scheduleFor(team string, dates ...string) models.Schedule {
	s := models.Schedule{}
	for _, d := range dates {
		s[d] = append(s[d], team)
	}
	return s
}

func player(id int, team string) models.RosterPlayer {
	return models.RosterPlayer{StatsID: id, Name: "Player", NBATeam: team}
}
