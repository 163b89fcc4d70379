package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hivesim/server/internal/position"
)

const (
	// MoveSpeed is the MoveD walking speed in offset units per second.
	MoveSpeed float32 = 100
	// AxisTolerance stops stepping on an axis once this close to the destination.
	AxisTolerance = 2.5
	// ArriveTolerance completes a MoveD once the entity is this close.
	ArriveTolerance = 5

	// maxStride bounds the combined MoveD step, one unit under MaxStep so
	// float32 offset rounding can never push a stride past it.
	maxStride = MaxStep - 1
)

// StepToward returns the next position on the way from cur to dest after dt
// seconds at MoveSpeed. Each axis advances independently and never overshoots;
// when the combined step would exceed maxStride it is scaled down, so any dt
// yields a move that Move accepts.
func StepToward(cur, dest position.Position, dt float32) position.Position {
	step := float64(MoveSpeed * dt)
	from := cur.Units()
	rem := dest.Units().Sub(from)

	var delta mgl64.Vec2
	for axis := 0; axis < 2; axis++ {
		r := rem[axis]
		if math.Abs(r) <= AxisTolerance {
			continue
		}
		delta[axis] = math.Copysign(math.Min(step, math.Abs(r)), r)
	}
	if l := delta.Len(); l > maxStride {
		delta = delta.Mul(maxStride / l)
	}
	return position.FromUnits(from.Add(delta))
}

// Arrived reports whether p is close enough to dest to complete a MoveD.
func Arrived(p, dest position.Position) bool {
	return p.Distance(dest) <= ArriveTolerance
}
