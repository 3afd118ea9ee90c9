package lcclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec(w, h int) GridSpec {
	return NewGridSpec([4]float64{0, 0, float64(w) * 30, float64(h) * 30}, 30)
}

func TestRemapNoPassthrough(t *testing.T) {
	spec := testSpec(5, 1)
	g := NewGridFromValues(spec, []float64{1, 5, 15, 99, 0})
	out := g.Remap(sepalCodes, sepalToDDD)

	for i, want := range []struct {
		v  float64
		ok bool
	}{{1, true}, {7, true}, {18, true}, {0, false}, {0, false}} {
		v, ok := out.At(i, 0)
		assert.Equal(t, want.v, v, "pixel %d", i)
		assert.Equal(t, want.ok, ok, "pixel %d validity", i)
	}

	// identity lookup keeps listed values and still zeroes the rest
	ident := g.Remap(sepalCodes, sepalCodes).Unmask()
	for i, want := range []float64{1, 5, 15, 0, 0} {
		v, ok := ident.At(i, 0)
		require.True(t, ok)
		assert.Equal(t, want, v, "pixel %d", i)
	}
}

func TestUnmaskAndUpdateMask(t *testing.T) {
	spec := testSpec(3, 1)
	g := NewGridFromValues(spec, []float64{4, 5, 6})
	g.SetMasked(1, 0)

	u := g.Unmask()
	v, ok := u.At(1, 0)
	require.True(t, ok)
	assert.Zero(t, v)
	// receiver untouched
	_, ok = g.At(1, 0)
	assert.False(t, ok)

	mask := NewGridFromValues(spec, []float64{1, 1, 0})
	m := u.UpdateMask(mask)
	_, ok = m.At(2, 0)
	assert.False(t, ok, "zero mask must drop the pixel to no-data")
	_, ok = m.At(0, 0)
	assert.True(t, ok)
}

func TestWhereOrderingLastWins(t *testing.T) {
	spec := testSpec(2, 1)
	g := NewGridFromValues(spec, []float64{3, 3})
	both := NewConstGrid(spec, 1)

	out := g.WhereConst(both, 14).WhereConst(both, 18)
	v, _ := out.At(0, 0)
	assert.Equal(t, 18.0, v)
}

func TestWhereSkipsMaskedTestAndReplacement(t *testing.T) {
	spec := testSpec(3, 1)
	g := NewGridFromValues(spec, []float64{5, 5, 5})

	test := NewConstGrid(spec, 1)
	test.SetMasked(0, 0)
	repl := NewConstGrid(spec, 9)
	repl.SetMasked(1, 0)

	out := g.Where(test, repl)
	v, _ := out.At(0, 0)
	assert.Equal(t, 5.0, v, "masked test leaves the base pixel")
	v, _ = out.At(1, 0)
	assert.Equal(t, 5.0, v, "masked replacement leaves the base pixel")
	v, _ = out.At(2, 0)
	assert.Equal(t, 9.0, v)
}

func TestWhereKeepsMaskedBase(t *testing.T) {
	spec := testSpec(2, 1)
	base := NewGrid(spec)
	base.Set(0, 0, 5)
	fire := NewConstGrid(spec, 1)

	out := base.WhereConst(fire, 8)
	v, ok := out.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, 8.0, v)
	_, ok = out.At(1, 0)
	assert.False(t, ok, "overwrite must not extend the valid extent")

	out = base.Where(fire, NewConstGrid(spec, 9))
	_, ok = out.At(1, 0)
	assert.False(t, ok)
	v, ok = out.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, 9.0, v)
}

func TestBooleanCombineMasksEitherSide(t *testing.T) {
	spec := testSpec(2, 1)
	a := NewGridFromValues(spec, []float64{1, 1})
	b := NewGridFromValues(spec, []float64{1, 1})
	b.SetMasked(1, 0)

	and := a.And(b)
	v, ok := and.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = and.At(1, 0)
	assert.False(t, ok)

	or := a.Or(b)
	_, ok = or.At(1, 0)
	assert.False(t, ok)
}

func TestFocalMaxRadiusInPixels(t *testing.T) {
	spec := testSpec(40, 1)
	g := NewConstGrid(spec, 0)
	g.Set(0, 0, 1)

	out := g.FocalMax(MangroveBufferMeters) // 500 m on 30 m pixels -> 17 px
	v, _ := out.At(17, 0)
	assert.Equal(t, 1.0, v)
	v, _ = out.At(18, 0)
	assert.Zero(t, v)
}

func TestFocalMaxIgnoresMaskedNeighbors(t *testing.T) {
	spec := testSpec(3, 3)
	g := NewGrid(spec) // all masked
	g.Set(0, 0, 2)

	out := g.FocalMax(30)
	v, ok := out.At(1, 1)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestMosaicLastValidWins(t *testing.T) {
	spec := testSpec(2, 1)
	y1 := NewGridFromValues(spec, []float64{WaterSeasonal, WaterSeasonal})
	y2 := NewGrid(spec)
	y2.Set(0, 0, WaterPermanent)

	out := Mosaic(y1, y2)
	v, _ := out.At(0, 0)
	assert.Equal(t, float64(WaterPermanent), v)
	v, _ = out.At(1, 0)
	assert.Equal(t, float64(WaterSeasonal), v, "masked top layer falls through")
}

func TestClipYieldsNoData(t *testing.T) {
	spec := testSpec(2, 1)
	g := NewGridFromValues(spec, []float64{7, 7})
	mask := NewGridFromValues(spec, []float64{1, 0})

	out := g.Clip(mask)
	_, ok := out.At(1, 0)
	assert.False(t, ok, "clip must produce no-data, not zero")
}

func TestHistogramCountsValidPixels(t *testing.T) {
	spec := testSpec(4, 1)
	g := NewGridFromValues(spec, []float64{7, 7, 18, 3})
	g.SetMasked(3, 0)

	assert.Equal(t, map[int]int{7: 2, 18: 1}, g.Histogram())
}

func TestMismatchedSpecsPanic(t *testing.T) {
	a := NewConstGrid(testSpec(2, 1), 1)
	b := NewConstGrid(testSpec(3, 1), 1)
	assert.PanicsWithValue(t, ErrGridMismatch, func() { a.And(b) })
}
