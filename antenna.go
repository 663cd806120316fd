package emfield

import "math"

// inCoverage reports whether the target bearing lies within the
// source's scan coverage at some instant during its scan period, per
// the "peak" semantics of §4.4 step 1.
func inCoverage(scan Scan, pointingAzDeg, targetBearingDeg float64) bool {
	switch scan.Mode {
	case ScanCircular:
		return true
	case ScanSector:
		diff := math.Abs(wrapSigned180(targetBearingDeg - pointingAzDeg))
		return diff <= scan.SectorDeg/2
	default: // ScanNone
		return false
	}
}

// wrapSigned180 wraps deg to (-180, 180].
func wrapSigned180(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// sidelobeFloorDB returns the sidelobe envelope's dB value at
// off-axis azimuth absDeltaAz, per the template tables in §4.4.
func sidelobeFloorDB(template SidelobeTemplate, absDeltaAzDeg float64) float64 {
	switch template {
	case SidelobeMILSTD20:
		return -20
	case SidelobeRCS13:
		if absDeltaAzDeg < 10 {
			return -13
		}
		return -20
	case SidelobeRadarNarrow25:
		if absDeltaAzDeg < 10 {
			return -20
		}
		return -25
	case SidelobeCommOmniBack10:
		return -10
	default:
		return -20
	}
}

// gaussianMainlobeAxisDB evaluates the Gaussian mainlobe model along
// one axis: g = -(10·log10(e))·(4·ln2)·(Δ/BW)².
func gaussianMainlobeAxisDB(deltaDeg, beamwidthDeg float64) float64 {
	if beamwidthDeg <= 0 {
		return math.Inf(-1)
	}
	ratio := deltaDeg / beamwidthDeg
	return gaussianMainlobeCoefficient * ratio * ratio
}

// AntennaGainDB computes the directional gain, in dBi relative to a
// 0 dBi peak, of ant toward a cell at bearingDeg/elevationDeg from the
// source (§4.4).
func AntennaGainDB(ant Antenna, bearingDeg, elevationDeg float64) float64 {
	if inCoverage(ant.Scan, ant.Pointing.AzDeg, bearingDeg) {
		return 0.0
	}

	deltaAz := wrapSigned180(bearingDeg - ant.Pointing.AzDeg)
	deltaEl := elevationDeg - ant.Pointing.ElDeg

	gAz := gaussianMainlobeAxisDB(deltaAz, ant.Pattern.HPBWDeg)
	gEl := gaussianMainlobeAxisDB(deltaEl, ant.Pattern.VPBWDeg)
	mainlobe := math.Min(gAz, gEl)

	floor := sidelobeFloorDB(ant.Pattern.Sidelobe, math.Abs(deltaAz))

	return math.Max(mainlobe, floor)
}
