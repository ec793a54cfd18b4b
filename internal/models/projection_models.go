package models

// StatLine holds the eleven tracked per-game or summed fields. Made/attempted
// pairs are counts; percentages are derived only at comparison time.
type StatLine struct {
	Points              float64 `json:"points"`
	Rebounds            float64 `json:"rebounds"`
	Assists             float64 `json:"assists"`
	Steals              float64 `json:"steals"`
	Blocks              float64 `json:"blocks"`
	ThreePointers       float64 `json:"threePointers"`
	Turnovers           float64 `json:"turnovers"`
	FieldGoalsMade      float64 `json:"fieldGoalsMade"`
	FieldGoalsAttempted float64 `json:"fieldGoalsAttempted"`
	FreeThrowsMade      float64 `json:"freeThrowsMade"`
	FreeThrowsAttempted float64 `json:"freeThrowsAttempted"`
}

// Add returns the field-wise sum of s and o.
func (s StatLine) Add(o StatLine) StatLine {
	return StatLine{
		Points:              s.Points + o.Points,
		Rebounds:            s.Rebounds + o.Rebounds,
		Assists:             s.Assists + o.Assists,
		Steals:              s.Steals + o.Steals,
		Blocks:              s.Blocks + o.Blocks,
		ThreePointers:       s.ThreePointers + o.ThreePointers,
		Turnovers:           s.Turnovers + o.Turnovers,
		FieldGoalsMade:      s.FieldGoalsMade + o.FieldGoalsMade,
		FieldGoalsAttempted: s.FieldGoalsAttempted + o.FieldGoalsAttempted,
		FreeThrowsMade:      s.FreeThrowsMade + o.FreeThrowsMade,
		FreeThrowsAttempted: s.FreeThrowsAttempted + o.FreeThrowsAttempted,
	}
}

// RosterPlayer is one player on one fantasy roster for one matchup.
type RosterPlayer struct {
	StatsID   int    `json:"statsId,omitempty"`
	FantasyID int    `json:"fantasyId,omitempty"`
	Name      string `json:"name"`
	NBATeam   string `json:"nbaTeam,omitempty"`
	Position  string `json:"position,omitempty"`
	Status    string `json:"status,omitempty"`
}

// ID keys the player in averages, actuals and the disable state. Resolved
// players use their stats id; unresolved ones use the negated fantasy id so
// the two numbering systems never share a key.
func (p RosterPlayer) ID() int {
	if p.StatsID != 0 {
		return p.StatsID
	}
	return -p.FantasyID
}

func (p RosterPlayer) HasID() bool {
	return p.StatsID != 0 || p.FantasyID != 0
}

type TeamRoster struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	Players []RosterPlayer `json:"players"`
}

// LiveValue is one side of a live category. Ratio categories fill Nominator
// and Denominator; counting categories fill Value.
type LiveValue struct {
	Value       float64 `json:"value"`
	Nominator   float64 `json:"nominator,omitempty"`
	Denominator float64 `json:"denominator,omitempty"`
}

type LiveCategory struct {
	Team1 LiveValue `json:"team1"`
	Team2 LiveValue `json:"team2"`
}

// LiveStats is the fantasy platform's authoritative in-progress score.
type LiveStats struct {
	Categories map[string]LiveCategory `json:"categories"`
}

// MatchupSnapshot is the roster and score state fetched for one matchup.
type MatchupSnapshot struct {
	Team1     TeamRoster `json:"team1"`
	Team2     TeamRoster `json:"team2"`
	Week      int        `json:"week,omitempty"`
	WeekStart string     `json:"weekStart,omitempty"`
	WeekEnd   string     `json:"weekEnd,omitempty"`
	Live      *LiveStats `json:"stats,omitempty"`
}

// Schedule maps an Eastern calendar date (YYYY-MM-DD) to the NBA team
// abbreviations playing that day.
type Schedule map[string][]string

func (s Schedule) Plays(date, team string) bool {
	if team == "" {
		return false
	}
	for _, t := range s[date] {
		if t == team {
			return true
		}
	}
	return false
}

type PlayerDayEntry struct {
	PlayerID     int      `json:"playerId"`
	Name         string   `json:"name"`
	Team         string   `json:"team"`
	Averages     StatLine `json:"averages"`
	Disabled     bool     `json:"disabled"`
	AutoDisabled bool     `json:"autoDisabled"`
	Status       string   `json:"status,omitempty"`
	Position     string   `json:"position,omitempty"`
}

type DayProjection struct {
	Date     string           `json:"date"`
	Weekday  string           `json:"weekday"`
	MonthDay string           `json:"monthDay"`
	IsPast   bool             `json:"isPast"`
	IsToday  bool             `json:"isToday"`
	Players  []PlayerDayEntry `json:"players"`
	Totals   StatLine         `json:"totals"`
}

type TeamProjection struct {
	Actual           StatLine        `json:"actual"`
	Projected        StatLine        `json:"projected"`
	Total            StatLine        `json:"total"`
	DailyProjections []DayProjection `json:"dailyProjections"`
}

type TeamResult struct {
	Name       string         `json:"name"`
	Projection TeamProjection `json:"projection"`
}

// Category keys used in CategoryResults and live snapshots.
const (
	CategoryPoints              = "points"
	CategoryRebounds            = "rebounds"
	CategoryAssists             = "assists"
	CategorySteals              = "steals"
	CategoryBlocks              = "blocks"
	CategoryThreePointers       = "threePointers"
	CategoryTurnovers           = "turnovers"
	CategoryFieldGoalPercentage = "fieldGoalPercentage"
	CategoryFreeThrowPercentage = "freeThrowPercentage"
)

// Categories lists the nine head-to-head categories in display order.
var Categories = []string{
	CategoryPoints,
	CategoryRebounds,
	CategoryAssists,
	CategorySteals,
	CategoryBlocks,
	CategoryThreePointers,
	CategoryTurnovers,
	CategoryFieldGoalPercentage,
	CategoryFreeThrowPercentage,
}

const Tie = "Tie"

type CategoryResult struct {
	Team1Total     float64 `json:"team1Total"`
	Team2Total     float64 `json:"team2Total"`
	Winner         string  `json:"winner"`
	Team1Made      float64 `json:"team1Made,omitempty"`
	Team1Attempted float64 `json:"team1Attempted,omitempty"`
	Team2Made      float64 `json:"team2Made,omitempty"`
	Team2Attempted float64 `json:"team2Attempted,omitempty"`
}

type MatchupProjection struct {
	Week            int                       `json:"week,omitempty"`
	WeekStart       string                    `json:"weekStart"`
	WeekEnd         string                    `json:"weekEnd"`
	CurrentDate     string                    `json:"currentDate"`
	Team1           TeamResult                `json:"team1"`
	Team2           TeamResult                `json:"team2"`
	CategoryResults map[string]CategoryResult `json:"categoryResults"`
	Team1Score      int                       `json:"team1Score"`
	Team2Score      int                       `json:"team2Score"`
	SnapshotUsed    bool                      `json:"snapshotUsed"`
}
