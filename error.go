package lcclean

import "errors"

var (
	ErrGdalDriverOpen   = errors.New("gdal driver open err")
	ErrVoidSrid         = errors.New("gdal shp with void srid")
	ErrInvalidWKT       = errors.New("invalid WKT")
	ErrInvalidTif       = errors.New("invalid tif")
	ErrWrongTif         = errors.New("tif is malformed")
	ErrTifReadFailed    = errors.New("tif read failed")
	ErrEmptyBoundary    = errors.New("boundary shp has no polygons")
	ErrGridMismatch     = errors.New("grids not on a common spec")
	ErrEmptyMosaic      = errors.New("mosaic of zero layers")
	ErrMissingAsset     = errors.New("run config misses a raster asset")
	ErrMissingBoundary  = errors.New("run config misses a boundary vector")
	ErrBadExtent        = errors.New("run config grid extent is degenerate")
	ErrMissingOutputDir = errors.New("run config misses the output dir")
)
