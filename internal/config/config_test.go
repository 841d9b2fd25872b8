package config

import "testing"

func TestParseWarmLocations(t *testing.T) {
	locs, err := parseWarmLocations("US/Chicago, DE/Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locs))
	}
	if locs[0] != (Location{Country: "US", City: "Chicago"}) {
		t.Errorf("unexpected first location: %+v", locs[0])
	}
	if locs[1] != (Location{Country: "DE", City: "Berlin"}) {
		t.Errorf("unexpected second location: %+v", locs[1])
	}

	if locs, err := parseWarmLocations(""); err != nil || locs != nil {
		t.Errorf("empty value should disable warm-up, got %v, %v", locs, err)
	}

	if _, err := parseWarmLocations("Chicago"); err == nil {
		t.Error("expected error for entry without a country")
	}
}
