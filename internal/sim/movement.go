package sim

import (
	"fmt"

	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
)

// MaxStep caps how far any move may carry an entity in one tick, in offset units.
const MaxStep = position.Scale

// Move places e at to. The move is rejected, with no mutation, when another
// enabled collider occupies to's tile or the displacement exceeds MaxStep.
func Move(e ecs.Entity, positions *ecs.Store[position.Position], collisions *ecs.Store[component.Collision], to position.Position) error {
	cur, ok := positions.Get(e)
	if !ok {
		return fmt.Errorf("move entity %d: %w", e, ErrNoPosition)
	}

	var blocker ecs.Entity
	ecs.Each2(positions, collisions, func(o ecs.Entity, p *position.Position, c *component.Collision) {
		if blocker.IsZero() && o != e && c.Enabled && p.SameTile(to) {
			blocker = o
		}
	})
	if !blocker.IsZero() {
		return &CollisionError{Blocker: blocker}
	}

	if d := cur.Distance(to); d > MaxStep {
		return fmt.Errorf("move entity %d by %.2f: %w", e, d, ErrTooFast)
	}

	*cur = to
	return nil
}
