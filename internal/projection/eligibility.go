package projection

import "github.com/omarshaarawi/hoopsbot/internal/models"

var (
	inactivePositions = map[string]bool{"IL": true, "IL+": true}
	inactiveStatuses  = map[string]bool{"INJ": true, "OUT": true}
)

// IsAutoDisabled reports whether roster data alone keeps a player out: an
// injured-list slot or an injured/out status.
func IsAutoDisabled(p models.RosterPlayer) bool {
	return inactivePositions[p.Position] || inactiveStatuses[p.Status]
}

// ResolveDisabled applies manual overrides on top of the auto rules for one
// date. Precedence: enabled, then day-level disables (and any whole-period tag
// carried on the same record), then whole-period disable, then auto.
func ResolveDisabled(p models.RosterPlayer, date string, state models.DisableState) (disabled, auto bool) {
	auto = IsAutoDisabled(p)

	o := state[p.ID()]
	switch o.Kind {
	case models.OverrideEnabled:
		return false, auto
	case models.OverrideDisabledDays:
		if o.Days[date] || o.Period {
			return true, auto
		}
	case models.OverrideDisabled:
		return true, auto
	}
	return auto, auto
}

// IsEligible reports whether p counts toward the team total on date. Past days,
// unscheduled teams and unresolved teams are never eligible.
func IsEligible(p models.RosterPlayer, date, today string, schedule models.Schedule, state models.DisableState) bool {
	if date < today {
		return false
	}
	if !schedule.Plays(date, p.NBATeam) {
		return false
	}
	disabled, _ := ResolveDisabled(p, date, state)
	return !disabled
}
