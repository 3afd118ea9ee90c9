package lcclean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
assets:
  dem: data/dem.tif
  classification: data/class_alos.tif
  classification_no_alos: data/class_no_alos.tif
  builtup: data/ghs_built.tif
  treecover: data/treecover.tif
  water:
    - data/water_2013.tif
    - data/water_2014.tif
    - data/water_2015.tif
  countries: data/countries.tif
  mangroves: data/mangroves.tif
  esa_worldcover: data/worldcover.tif
  aoi: data/aoi.shp
  lsib: data/lsib.shp
  national:
    - country_id: 6
      path: data/os_gabon.tif
      nodata: 128
  islands:
    - path: data/annobon.tif
grid:
  extent: [900000, -600000, 1800000, 600000]
output:
  dir: out
`

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcclean.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRunConfigDefaults(t *testing.T) {
	cfg, err := LoadRunConfig(writeTestConfig(t, testConfigYaml))
	require.NoError(t, err)

	assert.Equal(t, ExportScale, cfg.Grid.Resolution)
	assert.Equal(t, DefaultClassPrefix, cfg.Output.ClassPrefix)
	assert.Equal(t, DefaultFnfPrefix, cfg.Output.FnfPrefix)
	assert.Equal(t, []int{CountryCameroon, CountryCAR}, cfg.Rules.StrictForestCountries)
	assert.Equal(t, []int{CountryCAR}, cfg.Rules.MangroveErrorCountries)

	spec := cfg.Spec()
	assert.Equal(t, 30000, spec.XSize)
	assert.Equal(t, 40000, spec.YSize)
	assert.Equal(t, ANALYSIS_SRID, spec.SRID)
	assert.Equal(t, 30.0, spec.PixelSize())
}

func TestLoadRunConfigValidation(t *testing.T) {
	for name, mutate := range map[string]func(c *RunConfig) error{
		"missing asset": func(c *RunConfig) error {
			c.Assets.DEM = ""
			return ErrMissingAsset
		},
		"no water years": func(c *RunConfig) error {
			c.Assets.Water = nil
			return ErrMissingAsset
		},
		"missing boundary": func(c *RunConfig) error {
			c.Assets.LSIBBoundary = ""
			return ErrMissingBoundary
		},
		"degenerate extent": func(c *RunConfig) error {
			c.Grid.Extent = [4]float64{10, 0, 10, 100}
			return ErrBadExtent
		},
		"missing output dir": func(c *RunConfig) error {
			c.Output.Dir = ""
			return ErrMissingOutputDir
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadRunConfig(writeTestConfig(t, testConfigYaml))
			require.NoError(t, err)
			want := mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), want)
		})
	}
}
