package emfield

import (
	"fmt"
	"math"
	"sort"
)

// altitudeToleranceM is the "tight tolerance" §6 allows between a
// query's alt_m and the grid's altitude slice.
const altitudeToleranceM = 0.5

// QueryResult is the outcome of a point query: the resolved cell's
// field strength and its surviving Top-K records, descending by
// fraction (§6).
type QueryResult struct {
	FieldStrengthDBuVPerM float64
	TopK                  []TopKRecord
}

// Query resolves the nearest grid cell to (lat, lon) in band's raster
// and returns its field strength and Top-K records. altM must equal
// the result's grid altitude within tolerance, or a *QueryMismatchError
// is returned. A NaN cell, or a point outside the grid envelope
// entirely, yields a *NotFoundError (§6).
func (r *Result) Query(lat, lon, altM float64, bandName string) (QueryResult, error) {
	if math.Abs(altM-r.Grid.AltitudeM) > altitudeToleranceM {
		return QueryResult{}, &QueryMismatchError{RequestedAltM: altM, GridAltM: r.Grid.AltitudeM}
	}

	raster, ok := r.Rasters[bandName]
	if !ok {
		return QueryResult{}, fmt.Errorf("emfield: unknown band %q", bandName)
	}

	row, col, ok := nearestCell(r.Grid, lat, lon)
	if !ok {
		return QueryResult{}, &NotFoundError{Lat: lat, Lon: lon}
	}

	field := raster.Get(row, col)
	if math.IsNaN(field) {
		return QueryResult{}, &NotFoundError{Lat: lat, Lon: lon}
	}

	var hits []TopKRecord
	for _, rec := range r.TopK[bandName] {
		if rec.Row == row && rec.Col == col {
			hits = append(hits, rec)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Fraction > hits[j].Fraction })

	return QueryResult{FieldStrengthDBuVPerM: field, TopK: hits}, nil
}

// nearestCell finds the grid cell whose coordinates are nearest
// (lat, lon) by absolute lat/lon distance (§6), not great-circle
// distance: the grid is a regular lat/lon lattice, so a plain
// Euclidean nearest-row/nearest-column search is exact and avoids an
// O(H·W) scan.
func nearestCell(g GridDescriptor, lat, lon float64) (row, col int, ok bool) {
	if g.H == 0 || g.W == 0 {
		return 0, 0, false
	}
	if g.CellSizeDeg <= 0 {
		return 0, 0, false
	}

	row = int(math.Round((g.LatMax - lat) / g.CellSizeDeg))
	col = int(math.Round((lon - g.LonMin) / g.CellSizeDeg))

	if row < 0 || row >= g.H || col < 0 || col >= g.W {
		return 0, 0, false
	}
	return row, col, true
}
