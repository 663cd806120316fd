package emfield

import (
	"math"

	"github.com/ctessum/geom"
)

// Grid is the 2-D lattice of sample cells clipped to a polygon (§3, §4.2).
// Rows run north to south (row 0 is lat_max); columns run west to east.
type Grid struct {
	H, W        int
	CellSizeDeg float64
	AltitudeM   float64

	LatMin, LatMax float64
	LonMin, LonMax float64

	// Lats and Lons hold each cell's coordinates, indexed [row*W+col].
	Lats, Lons []float64

	// Inside holds the even-odd inside-polygon mask, indexed [row*W+col].
	Inside []bool
}

// At returns the i-th (row-major) cell's coordinates.
func (g *Grid) At(row, col int) LatLon {
	i := row*g.W + col
	return LatLon{Lat: g.Lats[i], Lon: g.Lons[i]}
}

// IsInside reports whether cell (row, col) is inside the source polygon.
func (g *Grid) IsInside(row, col int) bool {
	return g.Inside[row*g.W+col]
}

// NewGrid builds the sample grid for region at the given cell size,
// clipped to an inside-polygon mask computed by even-odd ray casting
// (§4.2). cellSizeDeg must be positive.
func NewGrid(region Region, cellSizeDeg, altitudeM float64) *Grid {
	poly := region.Polygon()
	bounds := poly.Bounds()

	latMin, latMax := bounds.Min.Y, bounds.Max.Y
	lonMin, lonMax := bounds.Min.X, bounds.Max.X

	h := gridSteps(latMax, latMin, cellSizeDeg)
	w := gridSteps(lonMax, lonMin, cellSizeDeg)

	g := &Grid{
		H: h, W: w,
		CellSizeDeg: cellSizeDeg,
		AltitudeM:   altitudeM,
		LatMin:      latMin, LatMax: latMax,
		LonMin: lonMin, LonMax: lonMax,
		Lats:   make([]float64, h*w),
		Lons:   make([]float64, h*w),
		Inside: make([]bool, h*w),
	}

	for row := 0; row < h; row++ {
		lat := latMax - float64(row)*cellSizeDeg
		for col := 0; col < w; col++ {
			lon := lonMin + float64(col)*cellSizeDeg
			idx := row*w + col
			g.Lats[idx] = lat
			g.Lons[idx] = lon
			pt := geom.Point{X: lon, Y: lat}
			g.Inside[idx] = pt.Within(poly) != geom.Outside
		}
	}
	return g
}

// gridSteps returns the number of samples needed to cover [lo, hi]
// inclusive in steps of step, rounding to the nearest integral
// step count so the result is deterministic for identical inputs.
func gridSteps(hi, lo, step float64) int {
	if hi <= lo {
		return 1
	}
	n := int(math.Round((hi-lo)/step)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// CellCount returns H·W.
func (g *Grid) CellCount() int {
	return g.H * g.W
}
