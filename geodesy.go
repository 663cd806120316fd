package emfield

import "math"

// effectiveEarthRadiusKm is k·R_E (§4.1).
const effectiveEarthRadiusKm = EffectiveEarthK * EarthRadiusKm

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineDistanceKm returns the great-circle distance between a and
// b on a sphere of radius k·R_E (§4.1). Equal points return zero.
func HaversineDistanceKm(a, b LatLon) float64 {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0
	}
	lat1, lat2 := toRadians(a.Lat), toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = math.Min(1, math.Max(0, h))
	return 2 * effectiveEarthRadiusKm * math.Asin(math.Sqrt(h))
}

// ForwardAzimuthDeg returns the initial bearing from a to b, in
// degrees clockwise from geographic north, in [0, 360). Coincident
// points return 0.
func ForwardAzimuthDeg(a, b LatLon) float64 {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0
	}
	lat1, lat2 := toRadians(a.Lat), toRadians(b.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := toDegrees(math.Atan2(y, x))
	brng = math.Mod(brng+360, 360)
	return brng
}

// ElevationAngleDeg returns the apparent elevation angle, in degrees,
// from a source at (src, srcAltM) to a target at (dst, dstAltM),
// accounting for the altitude difference and the effective-earth
// curvature drop d²/(2·k·R_E) (§4.1).
func ElevationAngleDeg(src LatLon, srcAltM float64, dst LatLon, dstAltM float64) float64 {
	distKm := HaversineDistanceKm(src, dst)
	distKm = math.Max(distKm, distanceEpsilonKm)

	heightDiffM := dstAltM - srcAltM
	curvatureDropM := (distKm * distKm) / (2 * effectiveEarthRadiusKm) * 1000
	apparentHeightM := heightDiffM - curvatureDropM

	return toDegrees(math.Atan2(apparentHeightM, distKm*1000))
}

// Geometry bundles the distance/bearing/elevation from a single
// source to a single grid cell.
type Geometry struct {
	DistanceKm  float64
	AzimuthDeg  float64
	ElevationDeg float64
}

// ComputeGeometry computes the full geodesy triple from src to dst in one call.
func ComputeGeometry(src LatLon, srcAltM float64, dst LatLon, dstAltM float64) Geometry {
	return Geometry{
		DistanceKm:   HaversineDistanceKm(src, dst),
		AzimuthDeg:   ForwardAzimuthDeg(src, dst),
		ElevationDeg: ElevationAngleDeg(src, srcAltM, dst, dstAltM),
	}
}
