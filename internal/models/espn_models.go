package models

type LeagueResponse struct {
	ID              int            `json:"id"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	SeasonID        int            `json:"seasonId"`
	SegmentID       int            `json:"segmentId"`
	Status          Status         `json:"status"`
	Teams           []Team         `json:"teams"`
	Settings        Settings       `json:"settings"`
	Schedule        []MatchupScore `json:"schedule"`
}

type Settings struct {
	Name             string           `json:"name"`
	Size             int              `json:"size"`
	ScheduleSettings ScheduleSettings `json:"scheduleSettings"`
}

// ScheduleSettings maps a matchup period id ("1", "2", ...) to the scoring
// period ids (one per calendar day in basketball) it spans.
type ScheduleSettings struct {
	MatchupPeriods map[string][]int `json:"matchupPeriods"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbrev"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Nickname     string `json:"nickname"`
	Roster       Roster `json:"roster"`
	Record       Record `json:"record"`
}

// DisplayName falls back to location + nickname for leagues created before
// ESPN exposed a single name field.
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Location == "" && t.Nickname == "" {
		return ""
	}
	return t.Location + " " + t.Nickname
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type Record struct {
	Overall RecordDetails `json:"overall"`
}

type RecordDetails struct {
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Ties       int     `json:"ties"`
	Percentage float64 `json:"percentage"`
}

type MatchupScore struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Away            TeamScore `json:"away"`
	Home            TeamScore `json:"home"`
	Winner          string    `json:"winner"`
}

type TeamScore struct {
	TeamID          int             `json:"teamId"`
	CumulativeScore CumulativeScore `json:"cumulativeScore"`
}

type CumulativeScore struct {
	Wins        int                  `json:"wins"`
	Losses      int                  `json:"losses"`
	Ties        int                  `json:"ties"`
	ScoreByStat map[string]StatScore `json:"scoreByStat"`
}

type StatScore struct {
	Score  float64 `json:"score"`
	Result string  `json:"result"`
}

type RosterEntry struct {
	PlayerID        int             `json:"playerId"`
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerPoolEntry struct {
	ID       int    `json:"id"`
	OnTeamID int    `json:"onTeamId"`
	Player   Player `json:"player"`
}

type Player struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	InjuryStatus      string `json:"injuryStatus"`
}
