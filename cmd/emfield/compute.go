package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"

	"github.com/ctessum/sparse"
	"github.com/spf13/cobra"

	"github.com/rfcoverage/emfield"
)

func init() {
	RootCmd.AddCommand(computeCmd)
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute gridded field-strength coverage and write the result.",
	Long: "compute loads the region and source files named in the config, runs " +
		"the engine, and hands the result off to the configured output directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(runCompute())
	},
}

// buildRequest assembles a Request from the loaded config, region and
// sources; shared by the compute and query subcommands.
func buildRequest(region emfield.Region, sources []emfield.Source, env emfield.Environment) emfield.Request {
	return emfield.Request{
		Region: region,
		Grid: emfield.GridSpec{
			CellSizeDeg: Config.CellSizeDeg,
			AltitudeM:   Config.AltitudeM,
		},
		InfluenceBufferKm: Config.InfluenceBufferKm,
		Environment:       env,
		Bands:             Config.bands(),
		Sources:           sources,
		ThresholdDBuVPerM: Config.ThresholdDBuVPerM,
	}.WithDefaults()
}

func runCompute() error {
	region, err := loadRegion(Config.RegionFile)
	if err != nil {
		return err
	}
	sources, err := LoadSourcesJSON(Config.SourceFile)
	if err != nil {
		return err
	}
	env, err := Config.environment()
	if err != nil {
		return err
	}

	req := buildRequest(region, sources, env)
	result, err := emfield.Compute(req, Log)
	if err != nil {
		return err
	}

	for name, summary := range result.Summaries {
		Log.Infof("band %s: %d above-threshold cells, mean %.2f dBuV/m", name, summary.Count, summary.Mean)
	}

	if Config.OutputDir == "" {
		return nil
	}
	return emfield.WriteTo(context.Background(), rasterWriter{}, result, Config.OutputDir)
}

// loadRegion reads a region from a GeoJSON (.geojson/.json) or
// shapefile (.shp) path, dispatching on extension.
func loadRegion(path string) (emfield.Region, error) {
	switch ext := extOf(path); ext {
	case ".shp":
		return emfield.LoadRegionShapefile(path)
	case ".geojson", ".json":
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return emfield.Region{}, fmt.Errorf("reading region file %s: %v", path, err)
		}
		return emfield.LoadRegionGeoJSON(data)
	default:
		return emfield.Region{}, fmt.Errorf("unrecognized region file extension %q", ext)
	}
}

// rasterWriter is a minimal emfield.Writer that serialises each
// band's raster as a small self-describing text table; full
// GeoTIFF/Parquet encoding is an external collaborator's job (§1, §6).
type rasterWriter struct{}

func (rasterWriter) Serialize(r *emfield.Result) (map[string][]byte, error) {
	out := make(map[string][]byte, len(r.Rasters))
	for name, raster := range r.Rasters {
		out[name+".txt"] = []byte(formatRaster(raster, r.Grid))
	}
	return out, nil
}

// formatRaster writes a minimal header followed by the row-major
// raster values, one grid row per line, space-separated; a placeholder pending a real
// GeoTIFF/Parquet collaborator per §1/§6.
func formatRaster(raster *sparse.DenseArray, g emfield.GridDescriptor) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "rows=%d cols=%d cell_size_deg=%.6f altitude_m=%.1f\n", g.H, g.W, g.CellSizeDeg, g.AltitudeM)
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			fmt.Fprintf(&buf, "%g ", raster.Get(row, col))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}

