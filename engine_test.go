package emfield

import (
	"math"
	"testing"
)

func smallRegion() Region {
	return Region{Vertices: []LatLon{
		{Lat: 0.5, Lon: -0.5},
		{Lat: 0.5, Lon: 0.5},
		{Lat: -0.5, Lon: 0.5},
		{Lat: -0.5, Lon: -0.5},
	}}
}

// S1: a single 95 dBm EIRP source at the region's center radiates a
// field that is maximal directly beneath it and falls off monotonically
// outward, and the FSPL at 100 km matches the closed-form value.
func TestComputeS1SingleSourceMonotonicFalloff(t *testing.T) {
	req := Request{
		Region: smallRegion(),
		Grid:   GridSpec{CellSizeDeg: 0.1, AltitudeM: 0},
		Environment: Environment{Model: FreeSpace},
		Bands: []Band{
			{Name: "b1", FreqMinMHz: 2900, FreqMaxMHz: 3100, RefBWkHz: 1},
		},
		Sources: []Source{
			{
				ID: "radar", Lat: 0, Lon: 0, AltM: 0,
				Emission: Emission{EIRPdBm: 95, Polarisation: PolH},
				Antenna: Antenna{
					Pattern: AntennaPattern{HPBWDeg: 120, VPBWDeg: 120, Sidelobe: SidelobeMILSTD20},
					Scan:    Scan{Mode: ScanCircular},
				},
			},
		},
		ThresholdDBuVPerM: -1000, // keep everything above threshold for this test
		InfluenceBufferKm: MaxRegionSideKm,
	}.WithDefaults()

	result, err := Compute(req, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	raster := result.Rasters["b1"]

	centerRow, centerCol := result.Grid.H/2, result.Grid.W/2
	centerField := raster.Get(centerRow, centerCol)

	prev := centerField
	for col := centerCol; col < result.Grid.W; col++ {
		v := raster.Get(centerRow, col)
		if math.IsNaN(v) {
			continue
		}
		if v > prev+1e-9 {
			t.Errorf("field should decrease monotonically outward along a radial: col %d has %v after %v", col, v, prev)
		}
		prev = v
	}

	fspl100 := FreeSpacePathLossDB(3000, 100)
	if math.Abs(fspl100-142.0) > 0.1 {
		t.Errorf("FSPL at 100km/3000MHz: got %v, want ~142.0", fspl100)
	}
}

// S2: two co-located sources with EIRPs differing by 10 dB should split
// an in-coverage cell's power density 10:1, giving Top-1 ~= 10/11 and
// Top-2 ~= 1/11.
func TestComputeS2TopKFractions(t *testing.T) {
	req := Request{
		Region: smallRegion(),
		Grid:   GridSpec{CellSizeDeg: 0.5, AltitudeM: 0},
		Environment: Environment{Model: FreeSpace},
		Bands: []Band{
			{Name: "b1", FreqMinMHz: 2900, FreqMaxMHz: 3100, RefBWkHz: 1},
		},
		Sources: []Source{
			{
				ID: "strong", Lat: 0, Lon: 0, AltM: 0,
				Emission: Emission{EIRPdBm: 60, Polarisation: PolH},
				Antenna: Antenna{
					Pattern: AntennaPattern{HPBWDeg: 180, VPBWDeg: 180, Sidelobe: SidelobeMILSTD20},
					Scan:    Scan{Mode: ScanCircular},
				},
			},
			{
				ID: "weak", Lat: 0, Lon: 0, AltM: 0,
				Emission: Emission{EIRPdBm: 50, Polarisation: PolH},
				Antenna: Antenna{
					Pattern: AntennaPattern{HPBWDeg: 180, VPBWDeg: 180, Sidelobe: SidelobeMILSTD20},
					Scan:    Scan{Mode: ScanCircular},
				},
			},
		},
		ThresholdDBuVPerM: -1000,
		InfluenceBufferKm: MaxRegionSideKm,
	}.WithDefaults()

	result, err := Compute(req, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var recs []TopKRecord
	for _, r := range result.TopK["b1"] {
		if r.Row == result.Grid.H/2 && r.Col == result.Grid.W/2 {
			recs = append(recs, r)
		}
	}
	if len(recs) != 2 {
		t.Fatalf("expected exactly 2 top-k entries (no third contributor), got %d: %+v", len(recs), recs)
	}
	for _, r := range recs {
		switch r.SourceID {
		case "strong":
			if math.Abs(r.Fraction-10.0/11.0) > 0.01 {
				t.Errorf("strong fraction: got %v, want ~0.909", r.Fraction)
			}
		case "weak":
			if math.Abs(r.Fraction-1.0/11.0) > 0.01 {
				t.Errorf("weak fraction: got %v, want ~0.0909", r.Fraction)
			}
		}
	}
}

// S4: a region entirely beyond every source's influence buffer yields
// fully-NaN rasters and empty Top-K tables, with no error.
func TestComputeS4EmptyGridNoError(t *testing.T) {
	req := Request{
		Region: Region{Vertices: []LatLon{
			{Lat: 10, Lon: 9},
			{Lat: 10, Lon: 10},
			{Lat: 9, Lon: 10},
			{Lat: 9, Lon: 9},
		}},
		Grid: GridSpec{CellSizeDeg: 0.5, AltitudeM: 0},
		Environment: Environment{Model: FreeSpace},
		Bands: []Band{
			{Name: "b1", FreqMinMHz: 2900, FreqMaxMHz: 3100, RefBWkHz: 1},
		},
		Sources: []Source{
			{
				ID: "far", Lat: 0, Lon: 0, AltM: 0,
				Emission: Emission{EIRPdBm: 95},
				Antenna: Antenna{
					Pattern: AntennaPattern{HPBWDeg: 60, VPBWDeg: 60, Sidelobe: SidelobeMILSTD20},
					Scan:    Scan{Mode: ScanCircular},
				},
			},
		},
		InfluenceBufferKm: 10,
	}.WithDefaults()

	result, err := Compute(req, nil)
	if err != nil {
		t.Fatalf("expected no error for an empty-grid scenario, got %v", err)
	}
	raster := result.Rasters["b1"]
	for _, v := range raster.Elements {
		if !math.IsNaN(v) {
			t.Fatalf("expected a fully-NaN raster, found %v", v)
		}
	}
	if len(result.TopK["b1"]) != 0 {
		t.Errorf("expected an empty top-k table, got %d entries", len(result.TopK["b1"]))
	}
}

// S5: a point query whose alt_m differs from the grid altitude is
// rejected as a mismatch rather than silently answered.
func TestQueryS5AltitudeMismatch(t *testing.T) {
	req := Request{
		Region: smallRegion(),
		Grid:   GridSpec{CellSizeDeg: 0.25, AltitudeM: 10},
		Environment: Environment{Model: FreeSpace},
		Bands: []Band{
			{Name: "b1", FreqMinMHz: 2900, FreqMaxMHz: 3100, RefBWkHz: 1},
		},
		Sources: []Source{
			{
				ID: "s1", Lat: 0, Lon: 0, AltM: 10,
				Emission: Emission{EIRPdBm: 90, Polarisation: PolH},
				Antenna: Antenna{
					Pattern: AntennaPattern{HPBWDeg: 180, VPBWDeg: 180, Sidelobe: SidelobeMILSTD20},
					Scan:    Scan{Mode: ScanCircular},
				},
			},
		},
		ThresholdDBuVPerM: -1000,
	}.WithDefaults()

	result, err := Compute(req, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	_, err = result.Query(0, 0, 11, "b1")
	if err == nil {
		t.Fatal("expected a mismatch error for alt_m off by 1m")
	}
	if _, ok := err.(*QueryMismatchError); !ok {
		t.Errorf("expected *QueryMismatchError, got %T: %v", err, err)
	}
}
