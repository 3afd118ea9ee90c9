package lcclean

import (
	"fmt"

	"github.com/sepal-contrib/lcclean/log"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadInputs reads every configured asset, aligns it to the run grid and
// rasterizes the boundary vectors. Raster reads fan out over a bounded
// errgroup; the pipeline logic downstream stays strictly sequential.
func (g *GdalToolbox) LoadInputs(cfg *RunConfig) (in *Inputs, err error) {
	spec := cfg.Spec()
	in = &Inputs{
		Water:    make([]*Grid, len(cfg.Assets.Water)),
		National: make([]NationalGrid, len(cfg.Assets.National)),
		Islands:  make([]*Grid, len(cfg.Assets.Islands)),
	}
	var eg errgroup.Group
	eg.SetLimit(4)
	load := func(path string, dst **Grid) {
		eg.Go(func() error {
			grid, e := g.ReadGrid(path, spec)
			if e != nil {
				return fmt.Errorf("%s: %w", path, e)
			}
			*dst = grid
			return nil
		})
	}
	load(cfg.Assets.DEM, &in.DEM)
	load(cfg.Assets.Class, &in.Class)
	load(cfg.Assets.ClassNoALOS, &in.ClassNoALOS)
	load(cfg.Assets.BuiltUp, &in.BuiltUp)
	load(cfg.Assets.TreeCover, &in.TreeCover)
	load(cfg.Assets.Countries, &in.Countries)
	load(cfg.Assets.Mangroves, &in.Mangroves)
	load(cfg.Assets.ESAWorldCov, &in.ESAWorldCover)
	for i, path := range cfg.Assets.Water {
		load(path, &in.Water[i])
	}
	for i, isl := range cfg.Assets.Islands {
		load(isl.Path, &in.Islands[i])
	}
	for i, nat := range cfg.Assets.National {
		i, nat := i, nat
		eg.Go(func() error {
			grid, e := g.ReadGrid(nat.Path, spec)
			if e != nil {
				return fmt.Errorf("%s: %w", nat.Path, e)
			}
			in.National[i] = NationalGrid{CountryID: nat.CountryID, NoData: nat.NoData, Grid: grid}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return
	}
	// OGR handles are not shared across goroutines; boundaries load after
	// the raster fan-out.
	if in.AOI, err = g.BoundaryMask(cfg.Assets.AOIBoundary, spec); err != nil {
		return
	}
	if in.LSIB, err = g.BoundaryMask(cfg.Assets.LSIBBoundary, spec); err != nil {
		return
	}
	log.Info(g.logTag+"inputs loaded",
		zap.Int("width", spec.XSize),
		zap.Int("height", spec.YSize),
		zap.Int("water_years", len(in.Water)),
		zap.Int("national", len(in.National)),
		zap.Int("islands", len(in.Islands)))
	return
}
