package position

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestNewWithOffsetNormalises(t *testing.T) {
	tests := []struct {
		name   string
		got    Position
		expect Position
	}{
		{"carry", NewWithOffset(1, 1, 150, 0), NewWithOffset(2, 1, 50, 0)},
		{"carry exact tile", NewWithOffset(0, 0, 100, 200), New(1, 2)},
		{"borrow", NewWithOffset(2, 3, -50, -150), Position{TileX: 1, TileY: 1, OffsetX: 50, OffsetY: 50}},
		{"borrow whole tile", NewWithOffset(1, 1, -100, 0), New(0, 1)},
		{"in range untouched", NewWithOffset(4, 5, 12.5, 99), Position{TileX: 4, TileY: 5, OffsetX: 12.5, OffsetY: 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expect, tt.got)
			require.GreaterOrEqual(t, tt.got.OffsetX, float32(0))
			require.Less(t, tt.got.OffsetX, float32(Scale))
			require.GreaterOrEqual(t, tt.got.OffsetY, float32(0))
			require.Less(t, tt.got.OffsetY, float32(Scale))
		})
	}
}

func TestNewWithOffsetRoundingStaysInRange(t *testing.T) {
	p := NewWithOffset(3, 3, -0.0000001, 0)
	require.Less(t, p.OffsetX, float32(Scale))
	require.GreaterOrEqual(t, p.OffsetX, float32(0))
}

func TestNewWithOffsetNegativeBorrowPanics(t *testing.T) {
	require.Panics(t, func() { NewWithOffset(0, 0, -1, 0) })
	require.Panics(t, func() { NewWithOffset(5, 1, 0, -101) })
	require.NotPanics(t, func() { NewWithOffset(1, 0, -100, 0) })
}

func TestAddCommutes(t *testing.T) {
	ps := []Position{
		New(0, 0),
		New(3, 7),
		NewWithOffset(1, 2, 75, 33.3),
		NewWithOffset(10, 0, 99.5, 0.25),
		NewWithOffset(0, 4, 50, 50),
	}
	for _, a := range ps {
		for _, b := range ps {
			require.Equal(t, a.Add(b), b.Add(a), "%v + %v", a, b)
		}
	}
	require.Equal(t, NewWithOffset(2, 3, 25, 0), NewWithOffset(1, 1, 75, 50).Add(NewWithOffset(0, 1, 50, 50)))
}

func TestAddOverflowPanics(t *testing.T) {
	edge := New(math.MaxUint32, 0)
	require.Panics(t, func() { edge.Add(New(1, 0)) })
	require.Panics(t, func() { New(0, math.MaxUint32).Add(New(0, math.MaxUint32)) })
	require.Panics(t, func() { NewWithOffset(math.MaxUint32, 0, 60, 0).Add(NewWithOffset(0, 0, 50, 0)) })
	require.Equal(t, NewWithOffset(math.MaxUint32, 0, 10, 0), NewWithOffset(math.MaxUint32-1, 0, 60, 0).Add(NewWithOffset(0, 0, 50, 0)))
}

func TestDistance(t *testing.T) {
	a := New(0, 0)
	b := New(3, 4)
	require.Zero(t, a.Distance(a))
	require.InDelta(t, 500, a.Distance(b), 1e-4)
	require.Equal(t, a.Distance(b), b.Distance(a))

	c := NewWithOffset(1, 1, 30, 40)
	require.InDelta(t, 50, New(1, 1).Distance(c), 1e-4)
	require.Equal(t, c.Distance(b), b.Distance(c))
}

func TestManhattanAndSameTile(t *testing.T) {
	require.Equal(t, uint32(2), New(0, 0).Manhattan(New(1, 1)))
	require.Equal(t, uint32(6), New(10, 5).Manhattan(New(7, 2)))
	require.True(t, NewWithOffset(2, 2, 10, 90).SameTile(New(2, 2)))
	require.False(t, New(2, 2).SameTile(New(2, 3)))
}

func TestFromUnits(t *testing.T) {
	require.Equal(t, NewWithOffset(9, 5, 90, 0), FromUnits(mgl64.Vec2{990, 500}))
	require.Equal(t, New(0, 0), FromUnits(mgl64.Vec2{0, 0}))
	require.Panics(t, func() { FromUnits(mgl64.Vec2{-1, 0}) })
}

func TestToDisplay(t *testing.T) {
	x, y := ToDisplay(NewWithOffset(2, 1, 50, 25), 32)
	require.Equal(t, int64(80), x)
	require.Equal(t, int64(40), y)

	x, y = ToDisplay(New(0, 0), 100)
	require.Zero(t, x)
	require.Zero(t, y)
}
