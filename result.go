package emfield

import (
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/stat"
)

// TopKRecord is one surviving Top-K row: rank within {0,1,2}, the
// contributing source's identity, and its fraction of that cell's
// total power density (§4.7, §6).
type TopKRecord struct {
	Row, Col int
	Rank     int
	SourceID string
	Fraction float64
}

// GridDescriptor carries the metadata §4.9 requires alongside each
// result: origin, cell size, dimensions, altitude, and the grid's
// spatial reference (fixed at EPSG:4326/longlat, the lat/lon datum
// the request itself is expressed in).
type GridDescriptor struct {
	LatMin, LatMax, LonMin, LonMax float64
	CellSizeDeg                   float64
	H, W                          int
	AltitudeM                     float64
	SR                            *proj.SR
}

// BandSummary holds above-threshold raster statistics for one band:
// summarize collects the band's non-NaN values and reduces them with
// gonum/stat.
type BandSummary struct {
	Count    int
	Mean     float64
	Variance float64
	Min, Max float64
}

// Result is the compute engine's pure output: one raster, one Top-K
// table, and one summary per band, plus the post-filter source
// ordering and grid descriptor shared across bands (§4.9).
type Result struct {
	Grid            GridDescriptor
	SourceOrder     []string
	Rasters         map[string]*sparse.DenseArray
	TopK            map[string][]TopKRecord
	Summaries       map[string]BandSummary
	FilteredSources int
}

func newGridDescriptor(g *Grid) GridDescriptor {
	sr, err := proj.Parse("+proj=longlat")
	if err != nil {
		// +proj=longlat is a fixed, known-good string; a parse
		// failure here means the vendored proj4 parser itself is
		// broken, not a data problem.
		panic(fmt.Sprintf("emfield: parsing longlat spatial reference: %v", err))
	}
	return GridDescriptor{
		LatMin: g.LatMin, LatMax: g.LatMax,
		LonMin: g.LonMin, LonMax: g.LonMax,
		CellSizeDeg: g.CellSizeDeg,
		H:           g.H, W: g.W,
		AltitudeM: g.AltitudeM,
		SR:        sr,
	}
}

// summarize computes above-threshold cell statistics for a band's
// raster, the same gonum/stat reliance vargrid.go leans on for its own
// grid summary numbers instead of a hand-rolled moment calculation.
func summarize(raster *sparse.DenseArray) BandSummary {
	finite := make([]float64, 0, len(raster.Elements))
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range raster.Elements {
		if math.IsNaN(v) {
			continue
		}
		finite = append(finite, v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if len(finite) == 0 {
		return BandSummary{}
	}
	mean, variance := stat.MeanVariance(finite, nil)
	return BandSummary{
		Count:    len(finite),
		Mean:     mean,
		Variance: variance,
		Min:      min,
		Max:      max,
	}
}
