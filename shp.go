package lcclean

import (
	"github.com/sepal-contrib/lcclean/log"
	"github.com/sepal-contrib/lcclean/utils"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

const shpFieldName = "NAME"

// LoadBoundary reads a boundary shapefile and unions its polygons into a
// single WKB geometry in the file's own spatial reference.
func (g *GdalToolbox) LoadBoundary(shp string) (wkb GdalGeo, srid int, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrGdalDriverOpen
		return
	}
	defer ds.Destroy()
	layer := ds.LayerByIndex(0)
	if srid, err = g.getSrid(layer.SpatialReference()); err != nil {
		return
	}
	nameIdx := layer.Definition().FieldIndex(shpFieldName)
	sidecarUtf8 := utils.ShpSidecarIsUtf8(shp)
	var (
		feature  *gdal.Feature
		unionGeo = gdal.Create(gdal.GT_Polygon)
		gc       = []destroyable{unionGeo}
		count    int
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	for {
		if feature = layer.NextFeature(); feature == nil {
			break
		}
		gc = append(gc, *feature)
		if nameIdx >= 0 {
			name := feature.FieldAsString(nameIdx)
			if !sidecarUtf8 {
				name, _ = utils.Latin1StrToUtf8(name)
			}
			log.Debug(g.logTag+"boundary feature", zap.String("name", utils.PurifyForUtf8(name)))
		}
		unionGeo = unionGeo.Union(feature.Geometry())
		gc = append(gc, unionGeo)
		count++
	}
	if count == 0 {
		err = ErrEmptyBoundary
		return
	}
	wkb, err = unionGeo.ToWKB()
	log.Info(g.logTag+"loaded boundary", zap.String("shp", shp), zap.Int("features", count), zap.Int("srid", srid))
	return
}

// RasterizeMask burns a WKB geometry (already in the analysis CRS) onto
// the analysis grid as a fully valid 0/1 mask.
func (g *GdalToolbox) RasterizeMask(wkb GdalGeo, spec GridSpec) (mask *Grid, err error) {
	sr, err := godal.NewSpatialRefFromEPSG(spec.SRID)
	if err != nil {
		return
	}
	defer sr.Close()
	geom, err := godal.NewGeometryFromWKB(wkb, sr)
	if err != nil {
		log.Error(g.logTag+"parse mask wkb failed", zap.Error(err))
		return
	}
	defer geom.Close()
	ds, err := godal.Create(godal.Memory, "", 1, godal.Byte, spec.XSize, spec.YSize)
	if err != nil {
		return
	}
	defer ds.Close()
	if err = ds.SetGeoTransform(spec.GT); err != nil {
		return
	}
	if err = ds.SetSpatialRef(sr); err != nil {
		return
	}
	if err = ds.RasterizeGeometry(geom, godal.Values(1)); err != nil {
		log.Error(g.logTag+"rasterize mask failed", zap.Error(err))
		return
	}
	buf := make([]byte, spec.size())
	if err = ds.Bands()[0].IO(godal.IORead, 0, 0, buf, spec.XSize, spec.YSize); err != nil {
		err = ErrTifReadFailed
		return
	}
	mask = NewGrid(spec)
	for i, v := range buf {
		mask.Data[i] = float64(v)
		mask.Valid[i] = true
	}
	return
}

// BoundaryMask loads a boundary shapefile and rasterizes it onto the
// analysis grid in one go.
func (g *GdalToolbox) BoundaryMask(shp string, spec GridSpec) (mask *Grid, err error) {
	wkb, srid, err := g.LoadBoundary(shp)
	if err != nil {
		return
	}
	if wkb, err = g.TransformWkb(wkb, srid, spec.SRID); err != nil {
		return
	}
	return g.RasterizeMask(wkb, spec)
}
