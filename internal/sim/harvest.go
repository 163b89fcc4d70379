package sim

import (
	"fmt"
	"math"

	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
)

// HarvestReach is the largest tile Manhattan distance a harvest can span.
const HarvestReach = 2

// Harvest moves one unit of kind from target's container into e's, creating
// e's container if needed. Either both counters change or neither does.
// Depositing is Harvest with the roles swapped.
func Harvest(e ecs.Entity, positions *ecs.Store[position.Position], containers *ecs.Store[component.SolidContainer], target ecs.Entity, kind component.ResourceKind) error {
	from, ok := positions.Get(e)
	if !ok {
		return fmt.Errorf("harvest by %d: %w", e, ErrNoPosition)
	}
	to, ok := positions.Get(target)
	if !ok {
		return fmt.Errorf("harvest target %d: %w", target, ErrNoPosition)
	}
	if d := from.Manhattan(*to); d > HarvestReach {
		return fmt.Errorf("harvest %d from %d at distance %d: %w", e, target, d, ErrTooFar)
	}

	src, ok := containers.Get(target)
	if !ok {
		return fmt.Errorf("harvest target %d: %w", target, ErrNoContainer)
	}
	if src.Amounts[kind] == 0 {
		return fmt.Errorf("harvest %s from %d: %w", kind, target, ErrEmpty)
	}
	if held, ok := containers.Get(e); ok && held.Amounts[kind] == math.MaxUint32 {
		return fmt.Errorf("harvest %s into %d: %w", kind, e, ErrFull)
	}

	if !containers.Contains(e) {
		containers.Create(e)
		// Create may have grown the store; src is stale.
		src, _ = containers.Get(target)
	}
	dst, _ := containers.Get(e)

	src.Amounts[kind]--
	dst.Amounts[kind]++
	return nil
}
