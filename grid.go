package lcclean

import "math"

// GridSpec fixes the common analysis grid: pixel size, placement and CRS.
// Every raster input is warped onto one spec before entering the pipeline,
// so the algebra layer never has to reproject.
type GridSpec struct {
	XSize int
	YSize int
	GT    [6]float64
	SRID  int
}

// NewGridSpec builds a north-up spec covering extent (minX, minY, maxX,
// maxY in the analysis CRS) at the given resolution.
func NewGridSpec(extent [4]float64, res float64) GridSpec {
	return GridSpec{
		XSize: int(math.Ceil((extent[2] - extent[0]) / res)),
		YSize: int(math.Ceil((extent[3] - extent[1]) / res)),
		GT:    [6]float64{extent[0], res, 0, extent[3], 0, -res},
		SRID:  ANALYSIS_SRID,
	}
}

// PixelSize is the cell edge length in CRS units (meters on the analysis
// grid).
func (s GridSpec) PixelSize() float64 {
	return s.GT[1]
}

func (s GridSpec) size() int {
	return s.XSize * s.YSize
}

func (s GridSpec) sameAs(o GridSpec) bool {
	return s.XSize == o.XSize && s.YSize == o.YSize && s.GT == o.GT
}

// Grid is an immutable single-band raster: row-major values plus a
// validity mask. Operators in algebra.go never mutate their receiver.
type Grid struct {
	GridSpec
	Data  []float64
	Valid []bool
}

// NewGrid returns an all-masked grid on spec.
func NewGrid(spec GridSpec) *Grid {
	return &Grid{
		GridSpec: spec,
		Data:     make([]float64, spec.size()),
		Valid:    make([]bool, spec.size()),
	}
}

// NewConstGrid returns a fully valid grid holding v everywhere.
func NewConstGrid(spec GridSpec, v float64) *Grid {
	g := NewGrid(spec)
	for i := range g.Data {
		g.Data[i] = v
		g.Valid[i] = true
	}
	return g
}

// NewGridFromValues wraps row-major values as a fully valid grid.
func NewGridFromValues(spec GridSpec, vals []float64) *Grid {
	if len(vals) != spec.size() {
		panic(ErrGridMismatch)
	}
	g := &Grid{
		GridSpec: spec,
		Data:     append([]float64(nil), vals...),
		Valid:    make([]bool, spec.size()),
	}
	for i := range g.Valid {
		g.Valid[i] = true
	}
	return g
}

func (g *Grid) idx(x, y int) int {
	return y*g.XSize + x
}

// At reports the value and validity at pixel (x, y).
func (g *Grid) At(x, y int) (v float64, ok bool) {
	i := g.idx(x, y)
	return g.Data[i], g.Valid[i]
}

// Set writes a valid pixel. Intended for building synthetic inputs; the
// pipeline itself only goes through the operators.
func (g *Grid) Set(x, y int, v float64) {
	i := g.idx(x, y)
	g.Data[i] = v
	g.Valid[i] = true
}

// SetMasked marks a pixel as no-data.
func (g *Grid) SetMasked(x, y int) {
	i := g.idx(x, y)
	g.Data[i] = 0
	g.Valid[i] = false
}

// Histogram counts valid pixels per integer value.
func (g *Grid) Histogram() map[int]int {
	counts := map[int]int{}
	for i, ok := range g.Valid {
		if ok {
			counts[int(g.Data[i])]++
		}
	}
	return counts
}

// ValidCount is the number of unmasked pixels.
func (g *Grid) ValidCount() (n int) {
	for _, ok := range g.Valid {
		if ok {
			n++
		}
	}
	return
}

func (g *Grid) newLike() *Grid {
	return NewGrid(g.GridSpec)
}

func (g *Grid) clone() *Grid {
	return &Grid{
		GridSpec: g.GridSpec,
		Data:     append([]float64(nil), g.Data...),
		Valid:    append([]bool(nil), g.Valid...),
	}
}

// mustSameSpec guards binary operators. The loader aligns every input to
// one spec, so a mismatch is a programming error, not a runtime condition.
func (g *Grid) mustSameSpec(o *Grid) {
	if !g.sameAs(o.GridSpec) {
		panic(ErrGridMismatch)
	}
}
