package emfield

import "testing"

func TestFilterSourcesKeepsNearbyExcludesFar(t *testing.T) {
	region := squareRegion() // lat/lon in [0,1]
	sources := []Source{
		{ID: "near", Lat: 0.5, Lon: 0.5},
		{ID: "far", Lat: 50, Lon: 50},
	}
	// "near" sits ~105 km (k=4/3 earth) from every vertex of the square.
	result := FilterSources(sources, region, 150)
	if len(result.Sources) != 1 || result.Sources[0].ID != "near" {
		t.Errorf("expected only the near source to survive, got %+v", result.Sources)
	}
	if result.FilteredCount != 1 {
		t.Errorf("got FilteredCount=%d, want 1", result.FilteredCount)
	}
}

func TestFilterSourcesPreservesOrder(t *testing.T) {
	region := squareRegion()
	sources := []Source{
		{ID: "a", Lat: 0.9, Lon: 0.1},
		{ID: "b", Lat: 0.1, Lon: 0.9},
		{ID: "c", Lat: 0.5, Lon: 0.5},
	}
	result := FilterSources(sources, region, 1000)
	want := []string{"a", "b", "c"}
	if len(result.Sources) != len(want) {
		t.Fatalf("got %d sources, want %d", len(result.Sources), len(want))
	}
	for i, id := range want {
		if result.Sources[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, result.Sources[i].ID, id)
		}
	}
}

func TestFilterSourcesEmptyInput(t *testing.T) {
	result := FilterSources(nil, squareRegion(), 10)
	if len(result.Sources) != 0 || result.FilteredCount != 0 {
		t.Errorf("expected a zero-value result for no sources, got %+v", result)
	}
}
