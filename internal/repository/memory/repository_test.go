package memory

import (
	"context"
	"testing"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

func TestRepositoryProjections(t *testing.T) {
	r := NewRepository()

	if _, ok := r.GetProjection("3:1:season"); ok {
		t.Fatalf("expected empty repository")
	}

	r.SaveProjection("3:1:season", models.MatchupProjection{Team1Score: 5})
	got, ok := r.GetProjection("3:1:season")
	if !ok || got.Team1Score != 5 {
		t.Fatalf("expected saved projection, got %+v %v", got, ok)
	}

	r.SaveMetadata(&models.LeagueMetadata{CurrentWeek: 4})
	if r.GetMetadata().CurrentWeek != 4 {
		t.Fatalf("expected metadata round trip")
	}
}

func TestDisableStoreReturnsCopies(t *testing.T) {
	s := NewDisableStore()
	ctx := context.Background()

	state := models.DisableState{1: {Kind: models.OverrideDisabledDays, Days: map[string]bool{"2025-11-05": true}}}
	if err := s.Save(ctx, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state[1].Days["2025-11-06"] = true

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded[1].Days) != 1 {
		t.Fatalf("expected store isolated from caller mutation, got %+v", loaded[1].Days)
	}

	loaded[2] = models.Override{Kind: models.OverrideEnabled}
	again, _ := s.Load(ctx)
	if _, ok := again[2]; ok {
		t.Fatalf("expected loaded state to be a copy")
	}
}
