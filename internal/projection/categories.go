package projection

import "github.com/omarshaarawi/hoopsbot/internal/models"

// Side identifies one team in a matchup.
type Side int

const (
	NoSide Side = iota
	Team1
	Team2
)

type countingCategory struct {
	key       string
	value     func(models.StatLine) float64
	lowerWins bool
}

var countingCategories = []countingCategory{
	{key: models.CategoryPoints, value: func(s models.StatLine) float64 { return s.Points }},
	{key: models.CategoryRebounds, value: func(s models.StatLine) float64 { return s.Rebounds }},
	{key: models.CategoryAssists, value: func(s models.StatLine) float64 { return s.Assists }},
	{key: models.CategorySteals, value: func(s models.StatLine) float64 { return s.Steals }},
	{key: models.CategoryBlocks, value: func(s models.StatLine) float64 { return s.Blocks }},
	{key: models.CategoryThreePointers, value: func(s models.StatLine) float64 { return s.ThreePointers }},
	{key: models.CategoryTurnovers, value: func(s models.StatLine) float64 { return s.Turnovers }, lowerWins: true},
}

type ratioCategory struct {
	key       string
	made      func(models.StatLine) float64
	attempted func(models.StatLine) float64
}

var ratioCategories = []ratioCategory{
	{
		key:       models.CategoryFieldGoalPercentage,
		made:      func(s models.StatLine) float64 { return s.FieldGoalsMade },
		attempted: func(s models.StatLine) float64 { return s.FieldGoalsAttempted },
	},
	{
		key:       models.CategoryFreeThrowPercentage,
		made:      func(s models.StatLine) float64 { return s.FreeThrowsMade },
		attempted: func(s models.StatLine) float64 { return s.FreeThrowsAttempted },
	},
}

// Outcome is the head-to-head result over all categories.
type Outcome struct {
	Results    map[string]models.CategoryResult
	Team1Score int
	Team2Score int
}

// Percentage returns made/attempted as a percentage, or 0 with no attempts.
func Percentage(made, attempted float64) float64 {
	if attempted <= 0 {
		return 0
	}
	return made / attempted * 100
}

// ResolveCategories compares two teams' totals category by category. Ties
// score for neither side.
func ResolveCategories(name1, name2 string, t1, t2 models.StatLine) Outcome {
	out := Outcome{Results: make(map[string]models.CategoryResult, len(models.Categories))}

	record := func(key string, res models.CategoryResult, side Side) {
		switch side {
		case Team1:
			res.Winner = name1
			out.Team1Score++
		case Team2:
			res.Winner = name2
			out.Team2Score++
		default:
			res.Winner = models.Tie
		}
		out.Results[key] = res
	}

	for _, c := range countingCategories {
		a, b := c.value(t1), c.value(t2)
		record(c.key, models.CategoryResult{Team1Total: a, Team2Total: b}, compare(a, b, c.lowerWins))
	}

	for _, c := range ratioCategories {
		res := models.CategoryResult{
			Team1Made:      c.made(t1),
			Team1Attempted: c.attempted(t1),
			Team2Made:      c.made(t2),
			Team2Attempted: c.attempted(t2),
		}
		res.Team1Total = Percentage(res.Team1Made, res.Team1Attempted)
		res.Team2Total = Percentage(res.Team2Made, res.Team2Attempted)
		record(c.key, res, compare(res.Team1Total, res.Team2Total, false))
	}

	return out
}

func compare(a, b float64, lowerWins bool) Side {
	switch {
	case a == b:
		return NoSide
	case (a > b) != lowerWins:
		return Team1
	default:
		return Team2
	}
}

// Baseline returns the totals a side is judged on. With a live snapshot the
// platform's accrued stats replace the game-log actuals and the projected
// remainder is added on top; ratio categories add made and attempted counts
// before any percentage is taken.
func Baseline(tp models.TeamProjection, live *models.LiveStats, side Side) models.StatLine {
	if live == nil || len(live.Categories) == 0 {
		return tp.Total
	}

	pick := func(key string) models.LiveValue {
		c := live.Categories[key]
		if side == Team2 {
			return c.Team2
		}
		return c.Team1
	}

	fg := pick(models.CategoryFieldGoalPercentage)
	ft := pick(models.CategoryFreeThrowPercentage)
	base := models.StatLine{
		Points:              pick(models.CategoryPoints).Value,
		Rebounds:            pick(models.CategoryRebounds).Value,
		Assists:             pick(models.CategoryAssists).Value,
		Steals:              pick(models.CategorySteals).Value,
		Blocks:              pick(models.CategoryBlocks).Value,
		ThreePointers:       pick(models.CategoryThreePointers).Value,
		Turnovers:           pick(models.CategoryTurnovers).Value,
		FieldGoalsMade:      fg.Nominator,
		FieldGoalsAttempted: fg.Denominator,
		FreeThrowsMade:      ft.Nominator,
		FreeThrowsAttempted: ft.Denominator,
	}
	return base.Add(tp.Projected)
}
