package emfield

import "math"

// FreeSpacePathLossDB computes FSPL = 32.45 + 20log10(f_MHz) + 20log10(r_km) (§4.5).
func FreeSpacePathLossDB(freqMHz, distKm float64) float64 {
	r := math.Max(distKm, rangeEpsilonKm)
	return 32.45 + 20*math.Log10(freqMHz) + 20*math.Log10(r)
}

// wavelengthM returns the free-space wavelength, in meters, of freqMHz.
func wavelengthM(freqMHz float64) float64 {
	const speedOfLightMPerS = speedOfLightKmPerS * 1000
	return speedOfLightMPerS / (freqMHz * 1e6)
}

// TwoRayAdditionalLossDB computes the coherent two-ray flat-earth
// additional loss relative to FSPL (§4.5). It is always zero in the
// near field (distKm < 10·λ), and otherwise clamped to ±40 dB.
func TwoRayAdditionalLossDB(freqMHz, distKm, srcAltM, dstAltM float64) float64 {
	lambdaM := wavelengthM(freqMHz)
	nearFieldKm := 10 * lambdaM / 1000
	if distKm < nearFieldKm {
		return 0
	}

	distM := distKm * 1000
	heightDiff := dstAltM - srcAltM
	heightSum := dstAltM + srcAltM

	d1 := math.Hypot(distM, heightDiff)
	d2 := math.Hypot(distM, heightSum)

	deltaPhase := 2 * math.Pi / lambdaM * (d2 - d1)

	// Ground reflection coefficient magnitude 1, phase 180° (horizontal
	// polarisation baseline): combined power ratio relative to free
	// space is |1 - e^{jΔφ}|² = 2 - 2cos(Δφ).
	ratio := 2 - 2*math.Cos(deltaPhase)
	ratio = math.Max(ratio, 1e-12)

	additional := -10 * math.Log10(ratio)
	return clamp(additional, -twoRayClampDB, twoRayClampDB)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GasLossDBPerKm returns the atmospheric gas attenuation rate. When
// atm.GasLossAuto is set the rate is a design-level frequency-dependent
// approximation covering the standard oxygen (~60 GHz) and water-vapor
// (~22 GHz, ~183 GHz) attenuation peaks; otherwise the caller's numeric
// value is used directly (§4.5).
func GasLossDBPerKm(atm Atmosphere, freqMHz float64) float64 {
	if !atm.GasLossAuto {
		return atm.GasLossDBPerKm
	}
	fGHz := freqMHz / 1000
	oxygen := 7.0 * gaussianBump(fGHz, 60, 12)
	waterVapor := 0.3*gaussianBump(fGHz, 22, 6) + 4.0*gaussianBump(fGHz, 183, 20)
	baseline := 0.0001 * fGHz * fGHz
	return baseline + oxygen + waterVapor
}

// gaussianBump returns a unimodal bump centered at mu with the given
// width, used to shape the standard gas-attenuation peaks.
func gaussianBump(x, mu, width float64) float64 {
	z := (x - mu) / width
	return math.Exp(-0.5 * z * z)
}

// RainLossDBPerKm returns a rain attenuation rate, an ITU-R-P.838-style
// approximation at design level (§4.5). It increases with rain rate at
// every frequency, and with frequency for rain rates of about
// 0.26 mm/h and above; for lighter rain the exponent alpha, which
// grows with frequency up to 40 GHz, makes the rate fall with
// frequency over part of that range.
func RainLossDBPerKm(rainRateMMPerHour, freqMHz float64) float64 {
	if rainRateMMPerHour <= 0 {
		return 0
	}
	fGHz := freqMHz / 1000
	k := 0.0001 * math.Pow(fGHz, 1.6)
	alpha := 0.8 + 0.03*math.Min(fGHz, 40)
	return k * math.Pow(rainRateMMPerHour, alpha)
}

// FogLossDBPerKm returns a monotonically increasing (in both liquid
// water content and frequency) fog/cloud attenuation rate, an
// ITU-R-P.840-style approximation at design level (§4.5).
func FogLossDBPerKm(fogLWCGM3, freqMHz float64) float64 {
	if fogLWCGM3 <= 0 {
		return 0
	}
	fGHz := freqMHz / 1000
	specificAtten := 0.4 * (fGHz * fGHz) / (1 + fGHz*fGHz/100)
	return specificAtten * fogLWCGM3
}

// AtmosphericLossDB sums the gas/rain/fog dB/km rates and scales by
// distance (§4.5).
func AtmosphericLossDB(atm Atmosphere, freqMHz, distKm float64) float64 {
	perKm := GasLossDBPerKm(atm, freqMHz) +
		RainLossDBPerKm(atm.RainRateMMPerHour, freqMHz) +
		FogLossDBPerKm(atm.FogLiquidWaterGM3, freqMHz)
	return perKm * distKm
}

// TotalExtraLossDB returns the two-ray delta (0 for free_space) plus
// atmospheric loss, to be added on top of FSPL (§4.5 and the Open
// Question Decision in SPEC_FULL.md: additive, not a replacement).
func TotalExtraLossDB(env Environment, freqMHz, distKm, srcAltM, dstAltM float64) float64 {
	extra := AtmosphericLossDB(env.Atmosphere, freqMHz, distKm)
	if env.Model == TwoRayFlat {
		extra += TwoRayAdditionalLossDB(freqMHz, distKm, srcAltM, dstAltM)
	}
	return extra
}
