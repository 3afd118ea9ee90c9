package lcclean

import (
	"strconv"
	"strings"
	"sync"

	"github.com/sepal-contrib/lcclean/log"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// GdalToolbox carries the GDAL-backed IO side of the pipeline: reading and
// aligning raster assets, parsing boundary vectors and writing the output
// products. The map algebra itself never touches GDAL.
type GdalToolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	tmpDir string
	logTag string
}

// In-memory objects created by the GDAL C library need an explicit Destroy.
type destroyable interface {
	Destroy()
}

var registerOnce sync.Once

// NewGdalToolbox initializes the toolbox; tmpDir is an optional scratch
// directory (defaults to the current directory).
func NewGdalToolbox(tmpDir ...string) *GdalToolbox {
	registerOnce.Do(godal.RegisterAll)
	g := &GdalToolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "GdalToolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// getSridRef returns a cached spatial reference for srid.
func (g *GdalToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// Keep the traditional (lon, lat) data axis order regardless of what
	// the CRS authority declares, so WKB round-trips stay consistent.
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

func (g *GdalToolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	wkt, _ := sp.ToWKT()
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		if strings.Contains(wkt, "Pseudo-Mercator") {
			rawId = "3857"
		} else {
			err = ErrVoidSrid
			return
		}
	}
	srid, err = strconv.Atoi(rawId)
	log.Debug(g.logTag+"got srid from sp", zap.String("id", rawId))
	return
}

func (g *GdalToolbox) parseWKB(wkb GdalGeo, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKB(wkb, ref, len(wkb))
	if err != nil {
		log.Error(g.logTag+"parse wkb failed", zap.Error(err))
	}
	return
}

// TransformWkb reprojects a WKB geometry between spatial reference systems.
func (g *GdalToolbox) TransformWkb(wkb GdalGeo, srid, tSrid int) (ret GdalGeo, err error) {
	if tSrid == srid {
		ret = wkb
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKB(wkb, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	ret, err = geo.ToWKB()
	return
}
