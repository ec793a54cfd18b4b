package projection

import (
	"errors"
	"testing"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

func TestSetPlayerStatusTransitions(t *testing.T) {
	state := models.DisableState{}

	state, err := SetPlayerStatus(state, 1, StatusDisabled, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state[1].Kind != models.OverrideDisabled {
		t.Fatalf("expected whole-period disable, got %v", state[1].Kind)
	}

	state, err = SetPlayerStatus(state, 1, StatusDisabled, "2025-11-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := state[1]; got.Kind != models.OverrideDisabledDays || !got.Period || !got.Days["2025-11-05"] {
		t.Fatalf("expected day record carrying period tag, got %+v", got)
	}

	state, err = SetPlayerStatus(state, 1, StatusDisabled, "2025-11-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := state[1]; len(got.Days) != 2 {
		t.Fatalf("expected two disabled days, got %+v", got.Days)
	}

	state, err = SetPlayerStatus(state, 1, StatusEnabled, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := state[1]; got.Kind != models.OverrideEnabled || got.Days != nil || got.Period {
		t.Fatalf("expected clean enabled override, got %+v", got)
	}
}

func TestSetPlayerStatusDayClearsEnabled(t *testing.T) {
	state := models.DisableState{2: {Kind: models.OverrideEnabled}}

	next, err := SetPlayerStatus(state, 2, StatusDisabled, "2025-11-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := next[2]; got.Kind != models.OverrideDisabledDays || got.Period || len(got.Days) != 1 {
		t.Fatalf("expected single-day record, got %+v", got)
	}
}

func TestSetPlayerStatusDoesNotMutateInput(t *testing.T) {
	state := models.DisableState{3: {Kind: models.OverrideDisabledDays, Days: map[string]bool{"2025-11-05": true}}}

	if _, err := SetPlayerStatus(state, 3, StatusDisabled, "2025-11-06"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state[3].Days) != 1 {
		t.Fatalf("expected original state untouched, got %+v", state[3].Days)
	}
}

func TestSetPlayerStatusErrors(t *testing.T) {
	if _, err := SetPlayerStatus(nil, 1, StatusDisabled, "tomorrow"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := SetPlayerStatus(nil, 1, PlayerStatus("benched"), ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestClearPlayerStatus(t *testing.T) {
	state := models.DisableState{1: {Kind: models.OverrideDisabled}, 2: {Kind: models.OverrideEnabled}}

	next := ClearPlayerStatus(state, 1)
	if _, ok := next[1]; ok {
		t.Fatalf("expected override removed")
	}
	if _, ok := state[1]; !ok {
		t.Fatalf("expected original state untouched")
	}
	if next[2].Kind != models.OverrideEnabled {
		t.Fatalf("expected other overrides kept")
	}
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]PlayerStatus{
		"enabled":         StatusEnabled,
		"disabled":        StatusDisabled,
		"disabledForWeek": StatusDisabled,
	} {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStatus("maybe"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
