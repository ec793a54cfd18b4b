package projection

import (
	"errors"
	"fmt"
	"time"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

type PlayerStatus string

const (
	StatusEnabled  PlayerStatus = "enabled"
	StatusDisabled PlayerStatus = "disabled"
)

var (
	ErrInvalidStatus = errors.New("invalid player status")
	ErrInvalidDate   = errors.New("invalid date")
)

// ParseStatus accepts the persisted tags, including the legacy
// "disabledForWeek" spelling.
func ParseStatus(s string) (PlayerStatus, error) {
	switch s {
	case "enabled", "enable":
		return StatusEnabled, nil
	case "disabled", "disable", "disabledForWeek":
		return StatusDisabled, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// SetPlayerStatus returns a new state with one directive applied; state itself
// is left untouched.
//
// Enabling always replaces whatever was stored for the player, so a manual
// enable wins over auto-disable and every earlier disable. A disable with a
// date adds that day to the player's day record, carrying over a whole-period
// disable if one was set. A disable without a date replaces the record with a
// whole-period disable.
func SetPlayerStatus(state models.DisableState, playerID int, status PlayerStatus, date string) (models.DisableState, error) {
	next := state.Clone()

	switch status {
	case StatusEnabled:
		next[playerID] = models.Override{Kind: models.OverrideEnabled}

	case StatusDisabled:
		if date == "" {
			next[playerID] = models.Override{Kind: models.OverrideDisabled}
			break
		}
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}

		rec := models.Override{Kind: models.OverrideDisabledDays, Days: map[string]bool{}}
		switch cur := next[playerID]; cur.Kind {
		case models.OverrideDisabled:
			rec.Period = true
		case models.OverrideDisabledDays:
			if cur.Days != nil {
				rec.Days = cur.Days
			}
			rec.Period = cur.Period
		}
		rec.Days[date] = true
		next[playerID] = rec

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return next, nil
}

// ClearPlayerStatus drops any override for the player so auto rules apply.
func ClearPlayerStatus(state models.DisableState, playerID int) models.DisableState {
	next := state.Clone()
	delete(next, playerID)
	return next
}
