package lcclean

import (
	"github.com/sepal-contrib/lcclean/log"

	"go.uber.org/zap"
)

// NationalGrid pairs a national land-cover dataset with the country it
// overrides and the no-data sentinel it carries inside its footprint.
type NationalGrid struct {
	CountryID int
	NoData    float64
	Grid      *Grid
}

// Inputs bundles every layer the pipeline consumes, already aligned to one
// GridSpec. The loader fills it from the run config; tests build it from
// synthetic grids.
type Inputs struct {
	DEM           *Grid   // elevation, meters
	Class         *Grid   // regional classification, ALOS run (SEPAL codes)
	ClassNoALOS   *Grid   // regional classification without ALOS
	BuiltUp       *Grid   // GHS built-up, 6-level confidence
	TreeCover     *Grid   // tree cover percent, 0-100
	Water         []*Grid // yearly water class, later years on top
	Countries     *Grid   // country ID raster
	Mangroves     *Grid   // internal mangrove indicator, 1 where present
	ESAWorldCover *Grid   // ESA WorldCover classes
	National      []NationalGrid
	Islands       []*Grid
	AOI           *Grid // 0/1 study area mask
	LSIB          *Grid // 0/1 study country boundary mask
}

// Pipeline chains the nine correction stages. Stage order is load bearing:
// each overwrite is expected to win over earlier ones on overlapping
// masks, so stages must never be reordered or fused.
type Pipeline struct {
	in     *Inputs
	rules  RulesConfig
	logTag string
}

func NewPipeline(in *Inputs, rules RulesConfig) *Pipeline {
	return &Pipeline{
		in:     in,
		rules:  rules,
		logTag: "Pipeline:",
	}
}

// countryMask selects pixels whose country ID is in ids.
func (p *Pipeline) countryMask(ids []int) *Grid {
	mask := p.in.Countries.Eq(float64(ids[0]))
	for _, id := range ids[1:] {
		mask = mask.Or(p.in.Countries.Eq(float64(id)))
	}
	return mask
}

// ReclassToDDD recodes a SEPAL classification run to DDD codes. Values
// outside the lookup drop to no-data and are then converted to 0.
func (p *Pipeline) ReclassToDDD(cls *Grid) *Grid {
	return cls.Remap(sepalCodes, sepalToDDD).Unmask()
}

// FillClassHoles substitutes the secondary classification wherever the
// primary is unclassified (the holes left where ALOS coverage is absent).
func (p *Pipeline) FillClassHoles(primary, secondary *Grid) *Grid {
	return primary.Where(primary.Eq(ClassNone), secondary)
}

// FixBuiltUp forces the built-up class where the collapsed GHS indicator
// says so, then reverts false-positive built-up pixels to bare soil. The
// false-positive mask is computed against the pre-overwrite grid, and the
// result is clipped to the study area.
func (p *Pipeline) FixBuiltUp(cls *Grid) *Grid {
	built := p.in.BuiltUp.Remap(builtupLevels, builtupBinary)
	wrong := cls.Eq(ClassBuiltUp).And(built.Neq(1))
	out := cls.WhereConst(built.Eq(1), ClassBuiltUp)
	out = out.WhereConst(wrong, ClassBareSoil)
	return out.Clip(p.in.AOI)
}

// SplitCanopy subdivides the two dry forest classes by canopy density:
// below the tree cover threshold the open variant, at or above it the
// closed variant.
func (p *Pipeline) SplitCanopy(cls *Grid) *Grid {
	toSplit := cls.Eq(ClassDryDenseForest).Or(cls.Eq(ClassDryOpenForest))
	open := toSplit.And(p.in.TreeCover.Lt(TreeCoverThreshold))
	closed := toSplit.And(p.in.TreeCover.Gte(TreeCoverThreshold))
	out := cls.WhereConst(open, ClassDryOpenForest)
	return out.WhereConst(closed, ClassDryDenseForest)
}

// TypeMontaneForest reclassifies base dense forest into submontane and
// montane bands. The selection runs against pre, the grid as it stood
// before the canopy split, where the pristine base forest code is still
// present. Submontane is written first so montane wins on any overlap.
func (p *Pipeline) TypeMontaneForest(cls, pre *Grid) *Grid {
	montane := p.in.DEM.Gte(MontaneMinElevation).And(pre.Eq(ClassDenseForest))
	submontane := p.in.DEM.Lt(MontaneMinElevation).
		And(p.in.DEM.Gte(SubmontaneMinElevation).And(pre.Eq(ClassDenseForest)))
	out := cls.WhereConst(submontane, ClassSubmontane)
	return out.WhereConst(montane, ClassMontane)
}

// FixMangroves adds mangrove where the internal indicator is confirmed by
// low elevation, a still-natural class and the dilated external reference,
// and rewrites indicator pixels at altitude or in known false-positive
// countries to swamp forest. At exactly the elevation bound both masks
// fire and the swamp-forest fix wins by order.
func (p *Pipeline) FixMangroves(cls *Grid) *Grid {
	reference := p.in.ESAWorldCover.Eq(esaMangroveCode).Clip(p.in.AOI)
	buffer := reference.FocalMax(MangroveBufferMeters)
	addable := p.in.DEM.Lte(MangroveMaxElevation).
		And(cls.Lte(MangroveAddMaxClass)).
		UpdateMask(buffer).Unmask()
	erroneous := p.in.DEM.Gte(MangroveMaxElevation).
		Or(p.countryMask(p.rules.MangroveErrorCountries)).Unmask()
	add := p.in.Mangroves.Eq(1).And(addable).Unmask()
	fix := p.in.Mangroves.Eq(1).And(erroneous).Unmask()
	out := cls.WhereConst(add, ClassMangrove)
	return out.WhereConst(fix, ClassSwampForest)
}

// FixHydrology mosaics the yearly water history, turns seasonally flooded
// pixels into aquatic grassland unless they already resolved to aquatic
// grassland or water, then forces permanent water on top.
func (p *Pipeline) FixHydrology(cls *Grid) *Grid {
	waterArea := Mosaic(p.in.Water...).Clip(p.in.AOI)
	seasonal := waterArea.Eq(WaterSeasonal).Unmask()
	permanent := waterArea.Eq(WaterPermanent).Unmask()
	prairie := seasonal.And(cls.Neq(ClassAquaticGrass).And(cls.Neq(ClassWater)))
	out := cls.WhereConst(prairie, ClassAquaticGrass)
	return out.WhereConst(permanent, ClassWater).Unmask()
}

// ApplyNationalData substitutes each national dataset over its country
// footprint, falling back to the regional result where the dataset carries
// its own no-data sentinel, then overlays island datasets wherever they
// report a positive class.
func (p *Pipeline) ApplyNationalData(cls *Grid) *Grid {
	out := cls
	for _, nat := range p.in.National {
		inside := p.in.Countries.Eq(float64(nat.CountryID))
		holes := inside.And(nat.Grid.Eq(nat.NoData)).Unmask()
		merged := out.Where(inside, nat.Grid)
		out = merged.Where(holes, out)
	}
	for _, isl := range p.in.Islands {
		filled := isl.Unmask()
		out = out.Where(filled.Gt(0), filled)
	}
	return out
}

// DeriveFNF collapses the classification to forest/non-forest/water,
// applies the national forest definition exception that folds shrub
// savanna into forest for the strict countries, and hard-clips to the
// study country boundary.
func (p *Pipeline) DeriveFNF(cls *Grid) *Grid {
	savanna := p.countryMask(p.rules.StrictForestCountries).And(cls.Eq(ClassShrubSavanna))
	fnf := cls.Remap(dddCodes, dddToFnf).Clip(p.in.AOI)
	return fnf.WhereConst(savanna, FnfForest).Clip(p.in.LSIB)
}

// Run executes the stages in order and returns the cleaned classification
// and the FNF mask.
func (p *Pipeline) Run() (class, fnf *Grid) {
	log.Info(p.logTag+"start", zap.Int("width", p.in.Class.XSize), zap.Int("height", p.in.Class.YSize))

	primary := p.ReclassToDDD(p.in.Class)
	secondary := p.ReclassToDDD(p.in.ClassNoALOS)
	filled := p.FillClassHoles(primary, secondary)
	log.Debug(p.logTag + "holes filled")

	base := p.FixBuiltUp(filled)
	split := p.SplitCanopy(base)
	typed := p.TypeMontaneForest(split, base)
	log.Debug(p.logTag + "forest typing done")

	mangrove := p.FixMangroves(typed)
	hydro := p.FixHydrology(mangrove)
	class = p.ApplyNationalData(hydro)
	fnf = p.DeriveFNF(class)

	log.Info(p.logTag+"done",
		zap.Int("class_valid", class.ValidCount()),
		zap.Int("fnf_valid", fnf.ValidCount()))
	return
}
