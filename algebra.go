package lcclean

// Pixel-wise map algebra over Grid values. The operator set and its
// no-data rules mirror the lazy raster engine the reference pipeline was
// authored against, so stage expressions translate one to one:
//   - comparisons yield {0,1} and keep the input mask;
//   - boolean combine masks a pixel when either operand is masked;
//   - Remap drops unmatched values to no-data (no passthrough);
//   - Unmask converts no-data to an explicit fill, usually 0;
//   - Where is a mask-guarded overwrite, later calls win on overlap.

func (g *Grid) cmp(pred func(v float64) bool) *Grid {
	out := g.newLike()
	for i, ok := range g.Valid {
		if !ok {
			continue
		}
		out.Valid[i] = true
		if pred(g.Data[i]) {
			out.Data[i] = 1
		}
	}
	return out
}

func (g *Grid) Eq(v float64) *Grid {
	return g.cmp(func(p float64) bool { return p == v })
}

func (g *Grid) Neq(v float64) *Grid {
	return g.cmp(func(p float64) bool { return p != v })
}

func (g *Grid) Lt(v float64) *Grid {
	return g.cmp(func(p float64) bool { return p < v })
}

func (g *Grid) Lte(v float64) *Grid {
	return g.cmp(func(p float64) bool { return p <= v })
}

func (g *Grid) Gt(v float64) *Grid {
	return g.cmp(func(p float64) bool { return p > v })
}

func (g *Grid) Gte(v float64) *Grid {
	return g.cmp(func(p float64) bool { return p >= v })
}

func (g *Grid) And(o *Grid) *Grid {
	g.mustSameSpec(o)
	out := g.newLike()
	for i, ok := range g.Valid {
		if !ok || !o.Valid[i] {
			continue
		}
		out.Valid[i] = true
		if g.Data[i] != 0 && o.Data[i] != 0 {
			out.Data[i] = 1
		}
	}
	return out
}

func (g *Grid) Or(o *Grid) *Grid {
	g.mustSameSpec(o)
	out := g.newLike()
	for i, ok := range g.Valid {
		if !ok || !o.Valid[i] {
			continue
		}
		out.Valid[i] = true
		if g.Data[i] != 0 || o.Data[i] != 0 {
			out.Data[i] = 1
		}
	}
	return out
}

// Remap translates from[i] to to[i]; any value not listed in from becomes
// no-data. There is deliberately no default passthrough.
func (g *Grid) Remap(from, to []int) *Grid {
	if len(from) != len(to) {
		panic(ErrGridMismatch)
	}
	lut := make(map[int]float64, len(from))
	for i, f := range from {
		lut[f] = float64(to[i])
	}
	out := g.newLike()
	for i, ok := range g.Valid {
		if !ok {
			continue
		}
		if v, hit := lut[int(g.Data[i])]; hit {
			out.Data[i] = v
			out.Valid[i] = true
		}
	}
	return out
}

// Unmask makes every pixel valid, filling no-data with fill (0 when
// omitted).
func (g *Grid) Unmask(fill ...float64) *Grid {
	f := 0.0
	if len(fill) > 0 {
		f = fill[0]
	}
	out := g.clone()
	for i, ok := range out.Valid {
		if !ok {
			out.Data[i] = f
			out.Valid[i] = true
		}
	}
	return out
}

// UpdateMask keeps a pixel valid only where m is valid and nonzero.
func (g *Grid) UpdateMask(m *Grid) *Grid {
	g.mustSameSpec(m)
	out := g.clone()
	for i := range out.Valid {
		if !m.Valid[i] || m.Data[i] == 0 {
			out.Valid[i] = false
			out.Data[i] = 0
		}
	}
	return out
}

// Clip masks everything outside a 0/1 geometry mask. Clipped pixels are
// no-data, not 0.
func (g *Grid) Clip(mask *Grid) *Grid {
	return g.UpdateMask(mask)
}

// Where overwrites pixels where test is valid and nonzero with the value
// of repl at that pixel. The base mask is preserved: pixels outside the
// test mask or outside the base's valid extent are untouched, and a
// replacement that is itself no-data leaves the base pixel alone.
func (g *Grid) Where(test, repl *Grid) *Grid {
	g.mustSameSpec(test)
	g.mustSameSpec(repl)
	out := g.clone()
	for i, ok := range test.Valid {
		if ok && test.Data[i] != 0 && out.Valid[i] && repl.Valid[i] {
			out.Data[i] = repl.Data[i]
		}
	}
	return out
}

// WhereConst overwrites pixels where test is valid and nonzero with a
// constant. Like Where, it never extends the base's valid extent.
func (g *Grid) WhereConst(test *Grid, v float64) *Grid {
	g.mustSameSpec(test)
	out := g.clone()
	for i, ok := range test.Valid {
		if ok && test.Data[i] != 0 && out.Valid[i] {
			out.Data[i] = v
		}
	}
	return out
}

// FocalMax dilates by a square kernel whose radius is given in meters and
// converted to whole pixels on the grid. Masked neighbors are ignored; a
// pixel with no valid neighbor stays masked.
func (g *Grid) FocalMax(radiusMeters float64) *Grid {
	r := int(radiusMeters/g.PixelSize() + 0.5)
	if r < 1 {
		r = 1
	}
	out := g.newLike()
	for y := 0; y < g.YSize; y++ {
		for x := 0; x < g.XSize; x++ {
			best, any := 0.0, false
			for dy := -r; dy <= r; dy++ {
				ny := y + dy
				if ny < 0 || ny >= g.YSize {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					nx := x + dx
					if nx < 0 || nx >= g.XSize {
						continue
					}
					if v, ok := g.At(nx, ny); ok && (!any || v > best) {
						best, any = v, true
					}
				}
			}
			if any {
				i := out.idx(x, y)
				out.Data[i] = best
				out.Valid[i] = true
			}
		}
	}
	return out
}

// Mosaic stacks layers with later ones on top: per pixel the last valid
// value wins. At least one layer is required.
func Mosaic(gs ...*Grid) *Grid {
	if len(gs) == 0 {
		panic(ErrEmptyMosaic)
	}
	out := gs[0].clone()
	for _, g := range gs[1:] {
		out.mustSameSpec(g)
		for i, ok := range g.Valid {
			if ok {
				out.Data[i] = g.Data[i]
				out.Valid[i] = true
			}
		}
	}
	return out
}
