package emfield

import "fmt"

// Validate checks r against the request contract of §3/§6/§7. It
// returns an *InvalidRequestError or *UnsupportedOptionError on the
// first violation found; nil means r is safe to run through the
// engine. Validate assumes WithDefaults has already been applied.
//
// Full DTO-level validation (the kind an HTTP boundary would run
// against a wire payload) is out of scope for this package (§1); this
// method only re-asserts the invariants the core itself depends on,
// so the core never silently computes over a malformed request.
func (r Request) Validate() error {
	if err := r.validatePolicyLocks(); err != nil {
		return err
	}
	if err := r.validateRegion(); err != nil {
		return err
	}
	if err := r.validateGrid(); err != nil {
		return err
	}
	if err := r.validateBands(); err != nil {
		return err
	}
	if err := r.validateSources(); err != nil {
		return err
	}
	return nil
}

func (r Request) validatePolicyLocks() error {
	if r.Metric != EFieldDBuVPerM {
		return &UnsupportedOptionError{Field: "metric", Got: string(r.Metric)}
	}
	if r.Combine != PowerSum {
		return &UnsupportedOptionError{Field: "combine_sources", Got: string(r.Combine)}
	}
	if r.Temporal != Peak {
		return &UnsupportedOptionError{Field: "temporal_agg", Got: string(r.Temporal)}
	}
	if r.TopK != TopKSize {
		return &UnsupportedOptionError{Field: "topk_contrib", Got: fmt.Sprintf("%d", r.TopK)}
	}
	return nil
}

func (r Request) validateRegion() error {
	verts := r.Region.Vertices
	if len(verts) < 3 {
		return &InvalidRequestError{Field: "region.vertices", Msg: "a region needs at least 3 vertices"}
	}
	if !isClockwise(verts) {
		return &InvalidRequestError{Field: "region.vertices", Msg: "vertices must be listed clockwise"}
	}
	if selfIntersects(verts) {
		return &InvalidRequestError{Field: "region.vertices", Msg: "polygon is self-intersecting"}
	}
	latMin, latMax, lonMin, lonMax := regionBounds(verts)
	corner := func(lat1, lon1, lat2, lon2 float64) float64 {
		return HaversineDistanceKm(LatLon{Lat: lat1, Lon: lon1}, LatLon{Lat: lat2, Lon: lon2})
	}
	height := corner(latMin, lonMin, latMax, lonMin)
	width := corner(latMin, lonMin, latMin, lonMax)
	if height > MaxRegionSideKm || width > MaxRegionSideKm {
		return &InvalidRequestError{Field: "region.vertices", Msg: fmt.Sprintf("region bounding box (%.1f x %.1f km) exceeds the %.0f km limit", height, width, MaxRegionSideKm)}
	}
	return nil
}

func (r Request) validateGrid() error {
	if r.Grid.CellSizeDeg <= 0 {
		return &InvalidRequestError{Field: "grid.cell_size_deg", Msg: "must be positive"}
	}
	return nil
}

func (r Request) validateBands() error {
	if len(r.Bands) == 0 {
		return &InvalidRequestError{Field: "bands", Msg: "at least one band is required"}
	}
	for i, b := range r.Bands {
		if b.FreqMinMHz >= b.FreqMaxMHz {
			return &InvalidRequestError{Field: fmt.Sprintf("bands[%d].f_min", i), Msg: "f_min must be less than f_max"}
		}
		if b.RefBWkHz <= 0 {
			return &InvalidRequestError{Field: fmt.Sprintf("bands[%d].ref_bw_khz", i), Msg: "must be positive"}
		}
	}
	return nil
}

func (r Request) validateSources() error {
	if len(r.Sources) > MaxSources {
		return &InvalidRequestError{Field: "sources", Msg: fmt.Sprintf("at most %d sources are allowed, got %d", MaxSources, len(r.Sources))}
	}
	for i, s := range r.Sources {
		if s.ID == "" {
			return &InvalidRequestError{Field: fmt.Sprintf("sources[%d].id", i), Msg: "must not be empty"}
		}
		switch s.Antenna.Pattern.Sidelobe {
		case SidelobeMILSTD20, SidelobeRCS13, SidelobeRadarNarrow25, SidelobeCommOmniBack10:
		default:
			return &InvalidRequestError{Field: fmt.Sprintf("sources[%d].antenna.pattern.sidelobe", i), Msg: fmt.Sprintf("unknown sidelobe template %q", s.Antenna.Pattern.Sidelobe)}
		}
		switch s.Emission.Polarisation {
		case PolH, PolV, PolRHCP, PolLHCP:
		default:
			return &InvalidRequestError{Field: fmt.Sprintf("sources[%d].emission.polarisation", i), Msg: fmt.Sprintf("unknown polarisation %q", s.Emission.Polarisation)}
		}
		switch s.Antenna.Scan.Mode {
		case ScanNone, ScanCircular, ScanSector:
		default:
			return &InvalidRequestError{Field: fmt.Sprintf("sources[%d].antenna.scan.mode", i), Msg: fmt.Sprintf("unknown scan mode %q", s.Antenna.Scan.Mode)}
		}
	}
	switch r.Environment.Model {
	case FreeSpace, TwoRayFlat:
	default:
		return &InvalidRequestError{Field: "environment.model", Msg: fmt.Sprintf("unknown propagation model %q", r.Environment.Model)}
	}
	return nil
}

// regionBounds returns the lat/lon bounding box of verts.
func regionBounds(verts []LatLon) (latMin, latMax, lonMin, lonMax float64) {
	latMin, latMax = verts[0].Lat, verts[0].Lat
	lonMin, lonMax = verts[0].Lon, verts[0].Lon
	for _, v := range verts[1:] {
		if v.Lat < latMin {
			latMin = v.Lat
		}
		if v.Lat > latMax {
			latMax = v.Lat
		}
		if v.Lon < lonMin {
			lonMin = v.Lon
		}
		if v.Lon > lonMax {
			lonMax = v.Lon
		}
	}
	return
}

// isClockwise reports whether verts, treated as a closed ring in
// (lon=x, lat=y) space, winds clockwise. The edge sum
// Σ(x₂−x₁)(y₂+y₁) is positive for a clockwise ring in a standard
// x-right/y-up plane.
func isClockwise(verts []LatLon) bool {
	var sum float64
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		sum += (b.Lon - a.Lon) * (b.Lat + a.Lat)
	}
	return sum > 0
}

// selfIntersects does a naive O(n²) pairwise segment-intersection
// check, acceptable given the small vertex counts regions are
// expected to carry.
func selfIntersects(verts []LatLon) bool {
	n := len(verts)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := verts[i], verts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i || (j+1)%n == i || j == (i+1)%n {
				continue
			}
			b1, b2 := verts[j], verts[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, p3, p4 LatLon) bool {
	d1 := crossSign(p3, p4, p1)
	d2 := crossSign(p3, p4, p2)
	d3 := crossSign(p1, p2, p3)
	d4 := crossSign(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func crossSign(a, b, c LatLon) float64 {
	return (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
}
