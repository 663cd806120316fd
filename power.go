package emfield

import (
	"math"

	"github.com/ctessum/unit"
)

// powerDensityDims is power per area [kg s-3] (watts/meter2; the
// length dimension cancels since Watt is kg m2 s-3). Kept as a named
// Dimensions value rather than spelled out at each Check call site.
var powerDensityDims = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3}

// dBmToWatts converts a dBm power level to a *unit.Unit carrying
// watts, the same unit-typed-value habit InMAP's emissions/aep
// package uses for physical quantities instead of bare float64s.
func dBmToWatts(dBm float64) *unit.Unit {
	watts := math.Pow(10, (dBm-30)/10)
	return unit.New(watts, unit.Watt)
}

// PowerDensityWPerM2 computes the power density a single source
// delivers at a cell, S = EIRP_W·gain_lin / (4π·r_m²) · loss_lin (§4.6).
//
// The EIRP → power-density conversion is carried through as a
// *unit.Unit so that a dimensional slip (e.g. forgetting the /r²)
// surfaces as a unit.Check failure in tests rather than a silently
// wrong float64.
func PowerDensityWPerM2(eirpDBm, gainDB, totalLossDB, distKm float64) float64 {
	eirp := dBmToWatts(eirpDBm)

	gainLin := math.Pow(10, gainDB/10)
	lossLin := math.Pow(10, -totalLossDB/10)

	rM := math.Max(distKm*1000, rangeEpsilonM)
	area := unit.New(4*math.Pi*rM*rM, unit.Meter2)

	numerator := eirp.Clone()
	numerator.Mul(unit.New(gainLin*lossLin, unit.Dimless))

	density := unit.Div(numerator, area)
	if err := density.Check(powerDensityDims); err != nil {
		panic(err)
	}
	return density.Value()
}

// FieldStrengthDBuVPerM converts a total power density (W/m²) into a
// field strength in dBμV/m: E = √(Z₀·S), reported as
// 20·log10(max(E, ε)) + 120 (§4.6).
func FieldStrengthDBuVPerM(totalPowerDensityWPerM2 float64) float64 {
	e := math.Sqrt(FreeSpaceImpedanceOhm * math.Max(totalPowerDensityWPerM2, 0))
	return 20*math.Log10(math.Max(e, fieldEpsilonVPerM)) + 120
}
