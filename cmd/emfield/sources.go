package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/rfcoverage/emfield"
)

// sourceDoc is the on-disk JSON shape for a source list. The request
// contract is explicitly JSON-serialisable; encoding/json is used
// here rather than a third-party library because no JSON codec
// appears anywhere in the example pack's dependency set to adopt
// instead, and this is boundary DTO work the core itself stays clear
// of.
type sourceDoc struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	AltM float64 `json:"alt_m"`

	Emission struct {
		EIRPdBm       float64 `json:"eirp_dbm"`
		CenterFreqMHz float64 `json:"center_freq_mhz"`
		BandwidthMHz  float64 `json:"bandwidth_mhz"`
		Polarisation  string  `json:"polarisation"`
		DutyCycle     float64 `json:"duty_cycle"`
	} `json:"emission"`

	Antenna struct {
		Pattern struct {
			HPBWDeg  float64 `json:"hpbw_deg"`
			VPBWDeg  float64 `json:"vpbw_deg"`
			Sidelobe string  `json:"sidelobe"`
		} `json:"pattern"`
		Pointing struct {
			AzDeg float64 `json:"az_deg"`
			ElDeg float64 `json:"el_deg"`
		} `json:"pointing"`
		Scan struct {
			Mode      string  `json:"mode"`
			RPM       float64 `json:"rpm"`
			SectorDeg float64 `json:"sector_deg"`
		} `json:"scan"`
	} `json:"antenna"`
}

// LoadSourcesJSON reads a JSON array of sources from path.
func LoadSourcesJSON(path string) ([]emfield.Source, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %v", path, err)
	}
	var docs []sourceDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing source file %s: %v", path, err)
	}

	sources := make([]emfield.Source, len(docs))
	for i, d := range docs {
		sources[i] = emfield.Source{
			ID:   d.ID,
			Kind: d.Kind,
			Lat:  d.Lat,
			Lon:  d.Lon,
			AltM: d.AltM,
			Emission: emfield.Emission{
				EIRPdBm:       d.Emission.EIRPdBm,
				CenterFreqMHz: d.Emission.CenterFreqMHz,
				BandwidthMHz:  d.Emission.BandwidthMHz,
				Polarisation:  emfield.Polarisation(d.Emission.Polarisation),
				DutyCycle:     d.Emission.DutyCycle,
			},
			Antenna: emfield.Antenna{
				Pattern: emfield.AntennaPattern{
					HPBWDeg:  d.Antenna.Pattern.HPBWDeg,
					VPBWDeg:  d.Antenna.Pattern.VPBWDeg,
					Sidelobe: emfield.SidelobeTemplate(d.Antenna.Pattern.Sidelobe),
				},
				Pointing: emfield.Pointing{
					AzDeg: d.Antenna.Pointing.AzDeg,
					ElDeg: d.Antenna.Pointing.ElDeg,
				},
				Scan: emfield.Scan{
					Mode:      emfield.ScanMode(d.Antenna.Scan.Mode),
					RPM:       d.Antenna.Scan.RPM,
					SectorDeg: d.Antenna.Scan.SectorDeg,
				},
			},
		}
	}
	return sources, nil
}
