// Package position implements the fixed-point world coordinate: a tile pair plus
// a sub-tile offset in hundredths of a tile.
package position

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Scale is the number of offset units in one tile.
const Scale = 100

// Position is a world coordinate. Offsets are always normalised into [0, Scale).
// The zero value is tile (0,0) with no offset.
type Position struct {
	TileX   uint32
	TileY   uint32
	OffsetX float32
	OffsetY float32
}

// New returns a tile-aligned position.
func New(tileX, tileY uint32) Position {
	return Position{TileX: tileX, TileY: tileY}
}

// NewWithOffset builds a position from an unnormalised offset, carrying whole
// tiles of overflow into the tile coordinate and borrowing for underflow.
// It panics when a borrow would take a tile coordinate below zero.
func NewWithOffset(tileX, tileY uint32, offsetX, offsetY float32) Position {
	tx, ox := normalize("x", tileX, offsetX)
	ty, oy := normalize("y", tileY, offsetY)
	return Position{TileX: tx, TileY: ty, OffsetX: ox, OffsetY: oy}
}

// FromUnits converts absolute offset-unit coordinates back into a position.
func FromUnits(v mgl64.Vec2) Position {
	return Position{}.addUnits(v)
}

func (p Position) addUnits(v mgl64.Vec2) Position {
	tx, ox := normalize64("x", p.TileX, float64(p.OffsetX)+v.X())
	ty, oy := normalize64("y", p.TileY, float64(p.OffsetY)+v.Y())
	return Position{TileX: tx, TileY: ty, OffsetX: ox, OffsetY: oy}
}

func normalize(axis string, tile uint32, offset float32) (uint32, float32) {
	return normalize64(axis, tile, float64(offset))
}

func normalize64(axis string, tile uint32, offset float64) (uint32, float32) {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		panic(fmt.Sprintf("position: non-finite %s offset %v", axis, offset))
	}
	carry := math.Floor(offset / Scale)
	rem := float32(offset - carry*Scale)
	// float32 rounding can push a remainder of 99.999... up to Scale.
	if rem >= Scale {
		rem -= Scale
		carry++
	}
	if rem < 0 {
		rem = 0
	}
	t := float64(tile) + carry
	if t < 0 {
		panic(fmt.Sprintf("position: %s offset %v borrows below tile 0 (tile %d)", axis, offset, tile))
	}
	if t > math.MaxUint32 {
		panic(fmt.Sprintf("position: %s offset %v overflows tile %d", axis, offset, tile))
	}
	return uint32(t), rem
}

// Add sums tile and offset components independently and renormalises.
// It panics when the sum leaves the uint32 tile range.
func (p Position) Add(o Position) Position {
	tx := uint64(p.TileX) + uint64(o.TileX)
	ty := uint64(p.TileY) + uint64(o.TileY)
	if tx > math.MaxUint32 || ty > math.MaxUint32 {
		panic(fmt.Sprintf("position: %s + %s overflows the tile range", p, o))
	}
	return NewWithOffset(uint32(tx), uint32(ty), p.OffsetX+o.OffsetX, p.OffsetY+o.OffsetY)
}

// Units returns the position as absolute offset units (tile*Scale + offset).
func (p Position) Units() mgl64.Vec2 {
	return mgl64.Vec2{
		float64(p.TileX)*Scale + float64(p.OffsetX),
		float64(p.TileY)*Scale + float64(p.OffsetY),
	}
}

// Distance is the Euclidean distance between p and o in offset units.
func (p Position) Distance(o Position) float32 {
	return float32(o.Units().Sub(p.Units()).Len())
}

// SameTile reports whether p and o lie in the same tile.
func (p Position) SameTile(o Position) bool {
	return p.TileX == o.TileX && p.TileY == o.TileY
}

// Manhattan is the tile-level Manhattan distance between p and o.
func (p Position) Manhattan(o Position) uint32 {
	return absDiff(p.TileX, o.TileX) + absDiff(p.TileY, o.TileY)
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// ToDisplay projects p onto a pixel grid: round((tile + offset/Scale) * pixelsPerTile)
// on each axis.
func ToDisplay(p Position, pixelsPerTile uint32) (x, y int64) {
	u := p.Units().Mul(float64(pixelsPerTile) / Scale)
	return int64(math.Round(u.X())), int64(math.Round(u.Y()))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d+%.2f, %d+%.2f)", p.TileX, p.OffsetX, p.TileY, p.OffsetY)
}
