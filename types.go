package emfield

import "github.com/ctessum/geom"

// PropagationModel selects the propagation loss model used in C5.
type PropagationModel string

// Supported propagation models.
const (
	FreeSpace  PropagationModel = "free_space"
	TwoRayFlat PropagationModel = "two_ray_flat"
)

// Polarisation is the emission polarisation of a source.
type Polarisation string

// Supported polarisations.
const (
	PolH    Polarisation = "H"
	PolV    Polarisation = "V"
	PolRHCP Polarisation = "RHCP"
	PolLHCP Polarisation = "LHCP"
)

// ScanMode is the antenna scan behavior of a source.
type ScanMode string

// Supported scan modes.
const (
	ScanNone     ScanMode = "none"
	ScanCircular ScanMode = "circular"
	ScanSector   ScanMode = "sector"
)

// SidelobeTemplate names a parameterised antenna sidelobe envelope.
type SidelobeTemplate string

// Supported sidelobe templates.
const (
	SidelobeMILSTD20         SidelobeTemplate = "MIL-STD-20"
	SidelobeRCS13            SidelobeTemplate = "RCS-13"
	SidelobeRadarNarrow25    SidelobeTemplate = "Radar-Narrow-25"
	SidelobeCommOmniBack10   SidelobeTemplate = "Comm-Omni-Back-10"
)

// MetricKind is the field-strength metric reported. Fixed per §3.
type MetricKind string

// EFieldDBuVPerM is the only supported metric.
const EFieldDBuVPerM MetricKind = "E_field_dBuV_per_m"

// CombineMode is the cross-source combination rule. Fixed per §3.
type CombineMode string

// PowerSum is the only supported combination mode.
const PowerSum CombineMode = "power_sum"

// TemporalAggregation is the time-domain aggregation rule. Fixed per §3.
type TemporalAggregation string

// Peak is the only supported temporal aggregation.
const Peak TemporalAggregation = "peak"

// LatLon is a geographic point in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Region is the closed polygon a request is evaluated over. Vertices
// are listed clockwise and the ring is implicitly closed (the first
// vertex need not be repeated as the last).
type Region struct {
	Vertices []LatLon
}

// Polygon converts r to a geom.Polygon ring, closing it if necessary.
func (r Region) Polygon() geom.Polygon {
	pts := make([]geom.Point, 0, len(r.Vertices)+1)
	for _, v := range r.Vertices {
		pts = append(pts, geom.Point{X: v.Lon, Y: v.Lat})
	}
	if len(pts) > 0 && !pts[0].Equals(pts[len(pts)-1]) {
		pts = append(pts, pts[0])
	}
	return geom.Polygon{pts}
}

// GridSpec describes the sampling resolution and altitude slice.
type GridSpec struct {
	CellSizeDeg float64
	AltitudeM   float64
}

// Atmosphere carries the environment's atmospheric loss parameters (§4.5).
type Atmosphere struct {
	// GasLossDBPerKm is either a fixed numeric value, or, when
	// GasLossAuto is true, computed from frequency.
	GasLossDBPerKm float64
	GasLossAuto    bool

	RainRateMMPerHour   float64
	FogLiquidWaterGM3   float64
}

// Environment bundles the propagation model and atmosphere.
type Environment struct {
	Model      PropagationModel
	Atmosphere Atmosphere
}

// Band is a named frequency bin.
type Band struct {
	Name        string
	FreqMinMHz  float64
	FreqMaxMHz  float64
	RefBWkHz    float64
}

// CenterFreqMHz returns the band's center frequency.
func (b Band) CenterFreqMHz() float64 {
	return (b.FreqMinMHz + b.FreqMaxMHz) / 2
}

// Emission describes a source's radiated signal.
type Emission struct {
	EIRPdBm      float64
	CenterFreqMHz float64
	BandwidthMHz float64
	Polarisation Polarisation
	DutyCycle    float64
}

// AntennaPattern describes a source's beam shape.
type AntennaPattern struct {
	HPBWDeg  float64
	VPBWDeg  float64
	Sidelobe SidelobeTemplate
}

// Pointing is the antenna boresight direction.
type Pointing struct {
	AzDeg float64
	ElDeg float64
}

// Scan describes a source's scan behavior.
type Scan struct {
	Mode       ScanMode
	RPM        float64
	SectorDeg  float64
}

// Antenna bundles a source's pattern, pointing and scan.
type Antenna struct {
	Pattern  AntennaPattern
	Pointing Pointing
	Scan     Scan
}

// Source is a single radiating source.
type Source struct {
	ID       string
	Kind     string
	Lat      float64
	Lon      float64
	AltM     float64
	Emission Emission
	Antenna  Antenna
}

// Request is the immutable bundle of inputs to the engine (§3).
type Request struct {
	Region            Region
	Grid              GridSpec
	InfluenceBufferKm float64
	Environment       Environment
	Bands             []Band
	Sources           []Source

	Metric     MetricKind
	Combine    CombineMode
	Temporal   TemporalAggregation
	ThresholdDBuVPerM float64
	TopK       int
}

// WithDefaults returns a copy of r with zero-valued policy-locked
// fields and threshold/top-k set to their documented defaults. It
// does not otherwise validate r; see Request.Validate.
func (r Request) WithDefaults() Request {
	if r.Metric == "" {
		r.Metric = EFieldDBuVPerM
	}
	if r.Combine == "" {
		r.Combine = PowerSum
	}
	if r.Temporal == "" {
		r.Temporal = Peak
	}
	if r.ThresholdDBuVPerM == 0 {
		r.ThresholdDBuVPerM = DefaultThresholdDBuVPerM
	}
	if r.TopK == 0 {
		r.TopK = TopKSize
	}
	return r
}
