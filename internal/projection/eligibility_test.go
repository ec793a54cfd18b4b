package projection

import (
	"testing"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

func TestIsAutoDisabled(t *testing.T) {
	tests := []struct {
		name   string
		player models.RosterPlayer
		want   bool
	}{
		{name: "healthy", player: models.RosterPlayer{Position: "PG"}, want: false},
		{name: "injured list slot", player: models.RosterPlayer{Position: "IL"}, want: true},
		{name: "injured list plus slot", player: models.RosterPlayer{Position: "IL+"}, want: true},
		{name: "injured status", player: models.RosterPlayer{Status: "INJ"}, want: true},
		{name: "out status", player: models.RosterPlayer{Status: "OUT"}, want: true},
		{name: "day to day", player: models.RosterPlayer{Status: "DTD"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAutoDisabled(tt.player); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEnabledOverrideNeverDisables(t *testing.T) {
	p := models.RosterPlayer{StatsID: 7, NBATeam: "BOS", Position: "IL", Status: "OUT"}
	dates := []string{"2025-11-03", "2025-11-04", "2025-11-05"}

	start := models.DisableState{7: {Kind: models.OverrideDisabledDays, Days: map[string]bool{"2025-11-04": true}, Period: true}}
	state, err := SetPlayerStatus(start, 7, StatusEnabled, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, d := range dates {
		disabled, auto := ResolveDisabled(p, d, state)
		if disabled {
			t.Fatalf("expected %s enabled, got disabled", d)
		}
		if !auto {
			t.Fatalf("expected auto-disable flag to be reported on %s", d)
		}
	}
}

func TestIsEligible(t *testing.T) {
	schedule := scheduleFor("LAL", "2025-11-04", "2025-11-05")
	p := player(1, "LAL")

	if IsEligible(p, "2025-11-03", "2025-11-04", schedule, nil) {
		t.Fatalf("expected past day to be ineligible")
	}
	if !IsEligible(p, "2025-11-04", "2025-11-04", schedule, nil) {
		t.Fatalf("expected today to be eligible")
	}
	if IsEligible(p, "2025-11-06", "2025-11-04", schedule, nil) {
		t.Fatalf("expected idle day to be ineligible")
	}

	unresolved := player(2, "")
	if IsEligible(unresolved, "2025-11-05", "2025-11-04", schedule, nil) {
		t.Fatalf("expected player without a team to be ineligible")
	}
}

func TestResolveDisabledPrecedence(t *testing.T) {
	p := player(3, "MIA")

	tests := []struct {
		name  string
		state models.DisableState
		date  string
		want  bool
	}{
		{name: "unset", state: nil, date: "2025-11-05", want: false},
		{name: "whole period", state: models.DisableState{3: {Kind: models.OverrideDisabled}}, date: "2025-11-05", want: true},
		{name: "day hit", state: models.DisableState{3: {Kind: models.OverrideDisabledDays, Days: map[string]bool{"2025-11-05": true}}}, date: "2025-11-05", want: true},
		{name: "day miss", state: models.DisableState{3: {Kind: models.OverrideDisabledDays, Days: map[string]bool{"2025-11-05": true}}}, date: "2025-11-06", want: false},
		{name: "day record with period tag", state: models.DisableState{3: {Kind: models.OverrideDisabledDays, Days: map[string]bool{"2025-11-05": true}, Period: true}}, date: "2025-11-06", want: true},
		{name: "other player", state: models.DisableState{4: {Kind: models.OverrideDisabled}}, date: "2025-11-05", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ResolveDisabled(p, tt.date, tt.state)
			if got != tt.want {
				t.Fatalf("expected disabled=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveDisabledUsesFantasyIDWhenStatsIDMissing(t *testing.T) {
	p := models.RosterPlayer{FantasyID: 4066261, NBATeam: "DEN"}
	state := models.DisableState{p.ID(): {Kind: models.OverrideDisabled}}

	if disabled, _ := ResolveDisabled(p, "2025-11-05", state); !disabled {
		t.Fatalf("expected override keyed by unresolved id to apply")
	}
}

func TestResolveDisabledIgnoresStatsIDMatchingFantasyID(t *testing.T) {
	unresolved := models.RosterPlayer{FantasyID: 1010, NBATeam: "NYK"}
	state := models.DisableState{1010: {Kind: models.OverrideDisabled}}

	if disabled, _ := ResolveDisabled(unresolved, "2025-11-05", state); disabled {
		t.Fatalf("expected override for stats id 1010 not to disable fantasy id 1010")
	}
}
