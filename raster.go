package lcclean

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sepal-contrib/lcclean/log"

	godal "github.com/airbusgeo/godal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s GridSpec) extent() (minX, minY, maxX, maxY float64) {
	minX = s.GT[0]
	maxY = s.GT[3]
	maxX = minX + s.GT[1]*float64(s.XSize)
	minY = maxY + s.GT[5]*float64(s.YSize)
	return
}

// ReadGrid reads band 1 of a raster asset into a Grid on the analysis
// spec, warping first when the asset is not already on it. No-data pixels
// (band no-data value or NaN) end up masked.
func (g *GdalToolbox) ReadGrid(tif string, spec GridSpec) (grid *Grid, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	bands := sds.Bands()
	if len(bands) == 0 {
		log.Error(g.logTag+"tif has no bands", zap.String("tif", tif))
		err = ErrWrongTif
		return
	}
	st := bands[0].Structure()
	gt, e := sds.GeoTransform()
	if e != nil {
		log.Error(g.logTag+"tif has no geotransform", zap.String("tif", tif), zap.Error(e))
		err = ErrWrongTif
		return
	}
	src := sds
	if st.SizeX != spec.XSize || st.SizeY != spec.YSize || gt != spec.GT {
		wds, tmp, e := g.alignRaster(sds, spec)
		if e != nil {
			err = e
			return
		}
		defer func() {
			wds.Close()
			removeScratch(tmp)
		}()
		src = wds
	}
	return g.readAligned(src, spec, tif)
}

// alignRaster warps a dataset onto the analysis grid, nearest neighbor to
// keep class codes intact.
func (g *GdalToolbox) alignRaster(sds *Dataset, spec GridSpec) (wds *Dataset, tmp string, err error) {
	minX, minY, maxX, maxY := spec.extent()
	res := spec.PixelSize()
	tmp = g.warpScratch()
	opts := []string{
		"-t_srs", fmt.Sprintf("epsg:%d", spec.SRID),
		"-tr", fmt.Sprintf("%f", res), fmt.Sprintf("%f", res),
		"-te", fmt.Sprintf("%f", minX), fmt.Sprintf("%f", minY), fmt.Sprintf("%f", maxX), fmt.Sprintf("%f", maxY),
		"-r", "near",
		"-overwrite",
	}
	wds, err = godal.Warp(tmp, []*Dataset{sds}, opts)
	if err != nil {
		log.Error(g.logTag+"failed to warp raster to analysis grid", zap.Error(err))
		err = ErrTifReadFailed
	}
	return
}

// warpScratch names a warp target in the configured scratch directory, or
// in GDAL's in-memory filesystem when none is set.
func (g *GdalToolbox) warpScratch() string {
	if g.tmpDir != "" {
		return filepath.Join(g.tmpDir, fmt.Sprintf(TMP_WARP_FILE, uuid.NewString()))
	}
	return fmt.Sprintf(TMP_WARP, uuid.NewString())
}

func removeScratch(tmp string) {
	if strings.HasPrefix(tmp, "/vsimem/") {
		_ = godal.VSIUnlink(tmp)
		return
	}
	os.Remove(tmp)
}

func (g *GdalToolbox) readAligned(sds *Dataset, spec GridSpec, tif string) (grid *Grid, err error) {
	band := sds.Bands()[0]
	buf := make([]float64, spec.size())
	if err = band.IO(godal.IORead, 0, 0, buf, spec.XSize, spec.YSize); err != nil {
		log.Error(g.logTag+"read tif band failed", zap.String("tif", tif), zap.Error(err))
		err = ErrTifReadFailed
		return
	}
	nodata, hasNodata := band.NoData()
	grid = NewGrid(spec)
	for i, v := range buf {
		if math.IsNaN(v) || (hasNodata && v == nodata) {
			continue
		}
		grid.Data[i] = v
		grid.Valid[i] = true
	}
	log.Debug(g.logTag+"read tif", zap.String("tif", tif), zap.Int("valid", grid.ValidCount()))
	return
}

// WriteGrid writes a grid as a byte GTiff on its own spec, LZW compressed,
// with masked pixels carrying the export no-data value.
func (g *GdalToolbox) WriteGrid(grid *Grid, out string) (err error) {
	ds, err := godal.Create(godal.GTiff, out, 1, godal.Byte, grid.XSize, grid.YSize,
		godal.CreationOption("COMPRESS=LZW"))
	if err != nil {
		log.Error(g.logTag+"create output tif failed", zap.String("out", out), zap.Error(err))
		return
	}
	defer ds.Close()
	if err = ds.SetGeoTransform(grid.GT); err != nil {
		return
	}
	sr, err := godal.NewSpatialRefFromEPSG(grid.SRID)
	if err != nil {
		return
	}
	defer sr.Close()
	if err = ds.SetSpatialRef(sr); err != nil {
		return
	}
	band := ds.Bands()[0]
	if err = band.SetNoData(ExportNoData); err != nil {
		return
	}
	buf := make([]byte, grid.size())
	for i, ok := range grid.Valid {
		if ok {
			buf[i] = byte(grid.Data[i])
		} else {
			buf[i] = ExportNoData
		}
	}
	if err = band.Write(0, 0, buf, grid.XSize, grid.YSize); err != nil {
		log.Error(g.logTag+"write output tif failed", zap.String("out", out), zap.Error(err))
	}
	return
}
