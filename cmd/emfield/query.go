package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfcoverage/emfield"
)

var (
	queryLat, queryLon, queryAltM float64
	queryBand                    string
)

func init() {
	RootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Float64Var(&queryLat, "lat", 0, "query latitude, degrees")
	queryCmd.Flags().Float64Var(&queryLon, "lon", 0, "query longitude, degrees")
	queryCmd.Flags().Float64Var(&queryAltM, "alt_m", 0, "query altitude, meters")
	queryCmd.Flags().StringVar(&queryBand, "band", "", "band name to query")
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Recompute coverage and report the field strength at one point.",
	Long: "query runs the same computation as 'compute' and then looks up the " +
		"nearest cell to the given lat/lon/alt_m/band, printing its field " +
		"strength and Top-3 contributors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(runQuery())
	},
}

func runQuery() error {
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

	q, err := result.Query(queryLat, queryLon, queryAltM, queryBand)
	if err != nil {
		return err
	}

	fmt.Printf("field strength: %.2f dBuV/m\n", q.FieldStrengthDBuVPerM)
	for _, rec := range q.TopK {
		fmt.Printf("  rank %d: source %s, fraction %.4f\n", rec.Rank, rec.SourceID, rec.Fraction)
	}
	return nil
}
