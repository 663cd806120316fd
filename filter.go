package emfield

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// sourceRef is an rtree.Rtree element: a source's point location
// plus the index it held in the original (pre-filter) source list.
// geom.Point already satisfies the rtree/geom.Geom contract (Bounds,
// Similar, Transform), so embedding it is all a tree element needs.
type sourceRef struct {
	geom.Point
	index int
}

// FilterResult is the outcome of culling a request's sources by
// influence buffer (C3).
type FilterResult struct {
	// Sources are the retained sources, in their original request order.
	Sources []Source
	// FilteredCount is the number of sources excluded.
	FilteredCount int
}

// FilterSources keeps the sources of req whose minimum great-circle
// distance to any region vertex is within influenceBufferKm (§4.3).
// Input order is preserved. A small bounding-box rtree over the
// sources narrows the candidate set before the exact haversine check
// runs, the same coarse-index/exact-geometry pattern InMAP uses for
// its population and mortality lookups.
func FilterSources(sources []Source, region Region, influenceBufferKm float64) FilterResult {
	if len(sources) == 0 {
		return FilterResult{}
	}

	tree := rtree.NewTree(2, 5)
	for i, s := range sources {
		tree.Insert(&sourceRef{Point: geom.Point{X: s.Lon, Y: s.Lat}, index: i})
	}

	verts := region.Vertices
	latMin, latMax, lonMin, lonMax := regionBounds(verts)

	// Convert the km buffer to a generous degree padding around the
	// region's lat/lon bounding box (1 deg latitude ≈ 111 km; use
	// that as a conservative, slightly-too-wide conversion for
	// longitude too, favoring false positives the exact check below
	// will discard).
	padDeg := influenceBufferKm/111.0 + region.maxSpanDeg()
	box := &geom.Bounds{
		Min: geom.Point{X: lonMin - padDeg, Y: latMin - padDeg},
		Max: geom.Point{X: lonMax + padDeg, Y: latMax + padDeg},
	}

	candidates := tree.SearchIntersect(box)

	kept := make([]bool, len(sources))
	for _, c := range candidates {
		ref, ok := c.(*sourceRef)
		if !ok {
			continue
		}
		s := sources[ref.index]
		if minDistanceToVertices(s, verts) <= influenceBufferKm {
			kept[ref.index] = true
		}
	}

	result := FilterResult{}
	for i, k := range kept {
		if k {
			result.Sources = append(result.Sources, sources[i])
		} else {
			result.FilteredCount++
		}
	}
	return result
}

// minDistanceToVertices returns the minimum great-circle distance
// from s to any vertex of verts (the vertex-only distance metric
// chosen in SPEC_FULL.md's Open Question Decisions).
func minDistanceToVertices(s Source, verts []LatLon) float64 {
	min := HaversineDistanceKm(LatLon{Lat: s.Lat, Lon: s.Lon}, verts[0])
	for _, v := range verts[1:] {
		d := HaversineDistanceKm(LatLon{Lat: s.Lat, Lon: s.Lon}, v)
		if d < min {
			min = d
		}
	}
	return min
}

// maxSpanDeg returns a rough upper bound, in degrees, on how far a
// vertex-only distance check could reach beyond r's bounding box —
// used only to keep the rtree coarse pass from under-shooting.
func (r Region) maxSpanDeg() float64 {
	if len(r.Vertices) == 0 {
		return 0
	}
	latMin, latMax, lonMin, lonMax := regionBounds(r.Vertices)
	span := latMax - latMin
	if w := lonMax - lonMin; w > span {
		span = w
	}
	return span
}
