package emfield

import "math"

// Fixed constants. These are never exposed in configuration (§6).
const (
	// EffectiveEarthK is the effective-earth-radius factor (4/3 earth).
	EffectiveEarthK = 4.0 / 3.0

	// EarthRadiusKm is the mean radius of the earth, in kilometers.
	EarthRadiusKm = 6371.0088

	// FreeSpaceImpedanceOhm is the impedance of free space, Z₀.
	FreeSpaceImpedanceOhm = 377.0

	// TopKSize is the number of largest per-cell source contributions retained.
	TopKSize = 3

	// MaxSources is the maximum number of sources a request may carry.
	MaxSources = 50

	// MaxRegionSideKm is the approximate maximum side length of the
	// region bounding box.
	MaxRegionSideKm = 200.0

	// DefaultThresholdDBuVPerM is the default no-data field-strength threshold.
	DefaultThresholdDBuVPerM = 40.0

	// distanceEpsilonKm guards the geodesy elevation-angle denominator.
	distanceEpsilonKm = 1e-6

	// rangeEpsilonKm guards the FSPL log argument.
	rangeEpsilonKm = 1e-6

	// rangeEpsilonM guards the source-coincident power-density singularity.
	rangeEpsilonM = 1e-3

	// fieldEpsilonVPerM guards the dBμV/m log argument.
	fieldEpsilonVPerM = 1e-15

	// twoRayClampDB is the symmetric clamp applied to the two-ray additional loss.
	twoRayClampDB = 40.0

	speedOfLightKmPerS = 299792.458
)

// gaussianMainlobeCoefficient is -(10·log10(e))·(4·ln2), the constant
// factor in the Gaussian mainlobe gain model (§4.4).
var gaussianMainlobeCoefficient = -(10.0 * math.Log10(math.E)) * (4.0 * math.Ln2)
