package lcclean

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	SHP_DRIVER_NAME = "ESRI Shapefile"
	UNIVERSAL_SRID  = 4326
	ANALYSIS_SRID   = 3857

	// Analysis grid resolution in meters, fixed by the export contract.
	ExportScale = 30.0

	// Morphological dilation applied to the external mangrove layer.
	MangroveBufferMeters = 500.0

	// Canopy density split between open and closed forest.
	TreeCoverThreshold = 60

	// Elevation bands for montane forest typing, meters.
	SubmontaneMinElevation = 1100
	MontaneMinElevation    = 1750

	// Mangrove cannot occur above this elevation.
	MangroveMaxElevation = 35

	// Highest DDD code still counting as natural vegetation, the only
	// classes mangrove may be added over.
	MangroveAddMaxClass = 12

	// No-data sentinel carried inside national land-cover datasets.
	NationalNoDataSentinel = 128

	// No-data value burned into exported byte rasters.
	ExportNoData = 255

	DefaultClassPrefix = "LC_cafi_ddd_2015"
	DefaultFnfPrefix   = "FNF_cafi"

	TMP_WARP      = "/vsimem/warp_%s.tif"
	TMP_WARP_FILE = "warp_%s.tif"
)

// NationalOverride substitutes a national dataset over one country's
// footprint in the countries raster.
type NationalOverride struct {
	CountryID int     `yaml:"country_id"`
	Path      string  `yaml:"path"`
	NoData    float64 `yaml:"nodata"`
}

// IslandOverride overlays a small local dataset wherever it reports a
// positive class, with priority over everything else.
type IslandOverride struct {
	Path string `yaml:"path"`
}

type AssetConfig struct {
	DEM          string   `yaml:"dem"`
	Class        string   `yaml:"classification"`
	ClassNoALOS  string   `yaml:"classification_no_alos"`
	BuiltUp      string   `yaml:"builtup"`
	TreeCover    string   `yaml:"treecover"`
	Water        []string `yaml:"water"` // yearly layers, later years on top
	Countries    string   `yaml:"countries"`
	Mangroves    string   `yaml:"mangroves"`
	ESAWorldCov  string   `yaml:"esa_worldcover"`
	AOIBoundary  string   `yaml:"aoi"`
	LSIBBoundary string   `yaml:"lsib"`

	National []NationalOverride `yaml:"national"`
	Islands  []IslandOverride   `yaml:"islands"`
}

type GridConfig struct {
	// Extent in analysis CRS order: minX, minY, maxX, maxY.
	Extent     [4]float64 `yaml:"extent"`
	Resolution float64    `yaml:"resolution"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	ClassPrefix string `yaml:"class_prefix"`
	FnfPrefix   string `yaml:"fnf_prefix"`
}

// RulesConfig keeps the per-country business rules data driven.
type RulesConfig struct {
	// Countries whose national forest definition folds shrub savanna
	// into forest in the FNF product.
	StrictForestCountries []int `yaml:"strict_forest_countries"`
	// Countries with systematic false mangrove detections.
	MangroveErrorCountries []int `yaml:"mangrove_error_countries"`
}

type RunConfig struct {
	Assets AssetConfig  `yaml:"assets"`
	Grid   GridConfig   `yaml:"grid"`
	Output OutputConfig `yaml:"output"`
	Rules  RulesConfig  `yaml:"rules"`
	TmpDir string       `yaml:"tmp_dir"`
}

func LoadRunConfig(path string) (cfg *RunConfig, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	cfg = &RunConfig{}
	if err = yaml.Unmarshal(raw, cfg); err != nil {
		err = fmt.Errorf("parse run config: %w", err)
		return
	}
	cfg.applyDefaults()
	err = cfg.validate()
	return
}

func (c *RunConfig) applyDefaults() {
	if c.Grid.Resolution == 0 {
		c.Grid.Resolution = ExportScale
	}
	if c.Output.ClassPrefix == "" {
		c.Output.ClassPrefix = DefaultClassPrefix
	}
	if c.Output.FnfPrefix == "" {
		c.Output.FnfPrefix = DefaultFnfPrefix
	}
	if c.Rules.StrictForestCountries == nil {
		c.Rules.StrictForestCountries = []int{CountryCameroon, CountryCAR}
	}
	if c.Rules.MangroveErrorCountries == nil {
		c.Rules.MangroveErrorCountries = []int{CountryCAR}
	}
}

func (c *RunConfig) validate() (err error) {
	switch {
	case c.Assets.DEM == "", c.Assets.Class == "", c.Assets.ClassNoALOS == "",
		c.Assets.BuiltUp == "", c.Assets.TreeCover == "", c.Assets.Countries == "",
		c.Assets.Mangroves == "", c.Assets.ESAWorldCov == "":
		err = ErrMissingAsset
	case len(c.Assets.Water) == 0:
		err = ErrMissingAsset
	case c.Assets.AOIBoundary == "" || c.Assets.LSIBBoundary == "":
		err = ErrMissingBoundary
	case c.Grid.Extent[2] <= c.Grid.Extent[0] || c.Grid.Extent[3] <= c.Grid.Extent[1]:
		err = ErrBadExtent
	case c.Output.Dir == "":
		err = ErrMissingOutputDir
	}
	return
}

// Spec derives the common analysis grid all inputs are aligned to.
func (c *RunConfig) Spec() GridSpec {
	return NewGridSpec(c.Grid.Extent, c.Grid.Resolution)
}
