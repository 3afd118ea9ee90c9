package lcclean

import (
	"path/filepath"

	"github.com/sepal-contrib/lcclean/log"
	"github.com/sepal-contrib/lcclean/utils"

	"go.uber.org/zap"
)

// ExportProduct writes a pipeline product to dir as <prefix>.tif, a LZW
// GTiff on the analysis grid (30 m, Web Mercator). Export here is
// synchronous file writing; there is no remote job to poll.
func (g *GdalToolbox) ExportProduct(grid *Grid, dir, prefix string) (path string, err error) {
	path = filepath.Join(dir, prefix+utils.FILE_EXT_TIF)
	if err = g.WriteGrid(grid, path); err != nil {
		return
	}
	log.Info(g.logTag+"exported product",
		zap.String("path", path),
		zap.Int("width", grid.XSize),
		zap.Int("height", grid.YSize),
		zap.Int("valid", grid.ValidCount()))
	return
}
