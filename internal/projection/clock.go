package projection

import (
	"time"
	_ "time/tzdata"
)

// DateLayout is the calendar date format used for schedule keys, override
// days and every day classification.
const DateLayout = "2006-01-02"

var eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// Eastern returns the America/New_York location NBA calendar days are kept in.
func Eastern() *time.Location {
	return eastern
}

// EasternToday returns the NBA calendar date for now. A game at 23:00 UTC and
// one at 03:00 UTC the next morning can share the same Eastern date.
func EasternToday(now time.Time) string {
	return now.In(eastern).Format(DateLayout)
}

// Clock supplies the current time.
type Clock func() time.Time
