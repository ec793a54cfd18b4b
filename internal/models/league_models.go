package models

import (
	"fmt"
	"time"
)

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstScoringPeriod   int
	FinalScoringPeriod   int
	IsActive             bool
	// MatchupPeriods maps a matchup week to its scoring period ids.
	MatchupPeriods map[int][]int
	LastUpdated    time.Time
}

type FantasyTeam struct {
	ID           int
	Name         string
	Abbreviation string
	Wins         int
	Losses       int
	Ties         int
}

// MatchupRequest identifies one projection computation. Two requests with the
// same key share a published projection.
type MatchupRequest struct {
	TeamID int
	Week   int
	Period StatsPeriod
}

type StatsPeriod string

const (
	PeriodSeason StatsPeriod = "season"
	PeriodLast7  StatsPeriod = "last7"
	PeriodLast15 StatsPeriod = "last15"
	PeriodLast30 StatsPeriod = "last30"
)

func (p StatsPeriod) Valid() bool {
	switch p {
	case PeriodSeason, PeriodLast7, PeriodLast15, PeriodLast30:
		return true
	}
	return false
}

// Days returns the trailing window length, or 0 for the full season.
func (p StatsPeriod) Days() int {
	switch p {
	case PeriodLast7:
		return 7
	case PeriodLast15:
		return 15
	case PeriodLast30:
		return 30
	}
	return 0
}

// PlayerRef is the result of resolving a fantasy-platform player id against the
// stats store.
type PlayerRef struct {
	StatsID int
	NBATeam string
}

func (r MatchupRequest) Key() string {
	return fmt.Sprintf("%d:%d:%s", r.TeamID, r.Week, r.Period)
}
