package postgres

import (
	"strings"
	"testing"
)

func TestAggregateKeepsStatLineOrder(t *testing.T) {
	got := aggregate("SUM")

	parts := strings.Split(got, ", ")
	if len(parts) != 11 {
		t.Fatalf("expected 11 columns, got %d", len(parts))
	}
	if parts[0] != "COALESCE(SUM(pgs.points), 0)::float8" {
		t.Fatalf("unexpected first column %q", parts[0])
	}
	if !strings.Contains(parts[5], "three_pointers_made") || !strings.Contains(parts[6], "turnovers") {
		t.Fatalf("expected threes then turnovers, got %q %q", parts[5], parts[6])
	}
	if !strings.Contains(parts[10], "free_throws_attempted") {
		t.Fatalf("unexpected last column %q", parts[10])
	}
}
