package main

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rfcoverage/emfield"
)

// ConfigData holds everything a TOML config file can supply for a
// coverage run: the request's region/grid/environment/bands/sources,
// plus the file-system-facing fields (inputs/outputs) that the pure
// engine itself never touches. Field shape and the os.ExpandEnv
// convention mirror InMAP's ConfigData/ReadConfigFile.
type ConfigData struct {
	RegionFile string
	SourceFile string

	CellSizeDeg       float64
	AltitudeM         float64
	InfluenceBufferKm float64

	PropagationModel string
	GasLossDBPerKm    float64
	GasLossAuto       bool
	RainRateMMPerHour float64
	FogLiquidWaterGM3 float64

	ThresholdDBuVPerM float64

	Bands []BandConfig

	OutputDir string
}

// BandConfig is one [[Bands]] TOML table entry.
type BandConfig struct {
	Name       string
	FreqMinMHz float64
	FreqMaxMHz float64
	RefBWkHz   float64
}

// ReadConfigFile reads and decodes filename as TOML, the same
// bufio-read-then-toml.Decode sequence InMAP's ReadConfigFile uses,
// then expands environment variables in path fields.
func ReadConfigFile(filename string) (*ConfigData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %s, does not "+
			"appear to exist. Please check the file name and location and try again", filename)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("problem reading configuration file: %v", err)
	}

	config := new(ConfigData)
	if _, err := toml.Decode(string(data), config); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	config.RegionFile = os.ExpandEnv(config.RegionFile)
	config.SourceFile = os.ExpandEnv(config.SourceFile)
	config.OutputDir = os.ExpandEnv(config.OutputDir)

	if config.ThresholdDBuVPerM == 0 {
		config.ThresholdDBuVPerM = emfield.DefaultThresholdDBuVPerM
	}
	return config, nil
}

func (c *ConfigData) environment() (emfield.Environment, error) {
	var model emfield.PropagationModel
	switch strings.ToLower(c.PropagationModel) {
	case "", "free_space":
		model = emfield.FreeSpace
	case "two_ray_flat":
		model = emfield.TwoRayFlat
	default:
		return emfield.Environment{}, fmt.Errorf("unknown propagation_model %q", c.PropagationModel)
	}
	return emfield.Environment{
		Model: model,
		Atmosphere: emfield.Atmosphere{
			GasLossDBPerKm:    c.GasLossDBPerKm,
			GasLossAuto:       c.GasLossAuto,
			RainRateMMPerHour: c.RainRateMMPerHour,
			FogLiquidWaterGM3: c.FogLiquidWaterGM3,
		},
	}, nil
}

func (c *ConfigData) bands() []emfield.Band {
	bands := make([]emfield.Band, len(c.Bands))
	for i, b := range c.Bands {
		bands[i] = emfield.Band{
			Name:       b.Name,
			FreqMinMHz: b.FreqMinMHz,
			FreqMaxMHz: b.FreqMaxMHz,
			RefBWkHz:   b.RefBWkHz,
		}
	}
	return bands
}
