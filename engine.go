package emfield

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// Compute drives C1 through C7 over req's grid for every band, with
// the bands computed concurrently, and returns the packaged per-band rasters, Top-K tables, source
// ordering and grid descriptor (§4.8, §4.9). The call is synchronous,
// pure, and thread-oblivious at its contract: no argument is mutated
// and no state survives the call (§5).
func Compute(req Request, log logrus.FieldLogger) (*Result, error) {
	log = engineLogger(log)
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	grid := NewGrid(req.Region, req.Grid.CellSizeDeg, req.Grid.AltitudeM)
	log.WithFields(logrus.Fields{"h": grid.H, "w": grid.W}).Debug("emfield: grid built")

	filtered := FilterSources(req.Sources, req.Region, req.InfluenceBufferKm)
	log.WithFields(logrus.Fields{
		"kept":     len(filtered.Sources),
		"filtered": filtered.FilteredCount,
	}).Debug("emfield: sources filtered")

	result := &Result{
		Grid:            newGridDescriptor(grid),
		SourceOrder:     sourceIDs(filtered.Sources),
		Rasters:         make(map[string]*sparse.DenseArray),
		TopK:            make(map[string][]TopKRecord),
		Summaries:       make(map[string]BandSummary),
		FilteredSources: filtered.FilteredCount,
	}

	// Bands are embarrassingly parallel (§5): each band owns its own
	// raster and accumulator state, so no cross-band synchronization
	// is needed beyond collecting results.
	var wg sync.WaitGroup
	var mu sync.Mutex
	errs := make([]error, len(req.Bands))

	wg.Add(len(req.Bands))
	for bi := range req.Bands {
		go func(bi int) {
			defer wg.Done()
			band := req.Bands[bi]
			raster, topk, err := computeBand(grid, filtered.Sources, req.Environment, band, req.ThresholdDBuVPerM)
			if err != nil {
				errs[bi] = fmt.Errorf("emfield: computing band %q: %w", band.Name, err)
				return
			}
			summary := summarize(raster)
			mu.Lock()
			result.Rasters[band.Name] = raster
			result.TopK[band.Name] = topk
			result.Summaries[band.Name] = summary
			mu.Unlock()
			log.WithFields(logrus.Fields{
				"band":  band.Name,
				"above": summary.Count,
			}).Debug("emfield: band complete")
		}(bi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// computeBand computes one band's raster and Top-K table. It tiles
// by row across GOMAXPROCS goroutines, the same row-striping pattern
// InMAP's Calculations DomainManipulator uses to run calculators
// across cells: each goroutine owns a disjoint stripe of rows, so
// raster writes need no locking; only the per-stripe Top-K rows are
// merged under a mutex.
func computeBand(grid *Grid, sources []Source, env Environment, band Band, thresholdDBuVPerM float64) (*sparse.DenseArray, []TopKRecord, error) {
	raster := sparse.ZerosDense(grid.H, grid.W)

	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > grid.H {
		nprocs = grid.H
	}
	if nprocs < 1 {
		nprocs = 1
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var topk []TopKRecord

	freqMHz := band.CenterFreqMHz()

	wg.Add(nprocs)
	for p := 0; p < nprocs; p++ {
		go func(p int) {
			defer wg.Done()
			var acc CellAccumulator
			var localTopK []TopKRecord
			for row := p; row < grid.H; row += nprocs {
				for col := 0; col < grid.W; col++ {
					acc.Reset()
					if !grid.IsInside(row, col) {
						raster.Set(math.NaN(), row, col)
						continue
					}

					cell := grid.At(row, col)
					for si, src := range sources {
						power := cellPowerDensity(src, cell, grid.AltitudeM, env, freqMHz)
						acc.Add(si, power)
					}

					field := FieldStrengthDBuVPerM(acc.Total)
					if field < thresholdDBuVPerM {
						raster.Set(math.NaN(), row, col)
						continue
					}
					raster.Set(field, row, col)
					localTopK = appendTopK(localTopK, sources, acc, row, col)
				}
			}
			mu.Lock()
			topk = append(topk, localTopK...)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	return raster, topk, nil
}

// cellPowerDensity computes one source's power density contribution
// to a cell, folding C1 (geometry), C4 (gain), C5 (loss) and C6
// (power density) together (§4.6).
func cellPowerDensity(src Source, cell LatLon, gridAltM float64, env Environment, freqMHz float64) float64 {
	srcLatLon := LatLon{Lat: src.Lat, Lon: src.Lon}
	geo := ComputeGeometry(srcLatLon, src.AltM, cell, gridAltM)

	gainDB := AntennaGainDB(src.Antenna, geo.AzimuthDeg, geo.ElevationDeg)
	fspl := FreeSpacePathLossDB(freqMHz, geo.DistanceKm)
	extra := TotalExtraLossDB(env, freqMHz, geo.DistanceKm, src.AltM, gridAltM)
	totalLossDB := fspl + extra

	return PowerDensityWPerM2(src.Emission.EIRPdBm, gainDB, totalLossDB, geo.DistanceKm)
}

// appendTopK converts an above-threshold cell's accumulator state
// into the cell's surviving Top-K rows, fractions relative to the
// cell's total power density (§4.7 step 3d, §6).
func appendTopK(dst []TopKRecord, sources []Source, acc CellAccumulator, row, col int) []TopKRecord {
	if acc.Total <= 0 {
		return dst
	}
	for rank, contrib := range acc.Top() {
		dst = append(dst, TopKRecord{
			Row:      row,
			Col:      col,
			Rank:     rank,
			SourceID: sources[contrib.SourceIndex].ID,
			Fraction: contrib.PowerDensityWPerM2 / acc.Total,
		})
	}
	return dst
}

func sourceIDs(sources []Source) []string {
	ids := make([]string, len(sources))
	for i, s := range sources {
		ids[i] = s.ID
	}
	return ids
}
