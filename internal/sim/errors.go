package sim

import (
	"errors"
	"fmt"

	"github.com/hivesim/server/internal/core/ecs"
)

// Rejections. Each leaves the state exactly as it was before the attempt.
var (
	ErrNoPosition      = errors.New("entity has no position")
	ErrCollision       = errors.New("destination tile is occupied")
	ErrTooFast         = errors.New("move exceeds per-tick displacement")
	ErrTooFar          = errors.New("target out of reach")
	ErrNoContainer     = errors.New("nothing to harvest")
	ErrEmpty           = errors.New("container is empty")
	ErrFull            = errors.New("container is full")
	ErrNoHive          = errors.New("no hive")
	ErrOutOfRange      = errors.New("too far from hive to command")
	ErrNotProgrammable = errors.New("entity has no program memory")
	ErrSpawnBlocked    = errors.New("spawn tile is occupied")
)

// CollisionError reports the collider that blocked a move. It matches ErrCollision.
type CollisionError struct {
	Blocker ecs.Entity
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%v by entity %d", ErrCollision, e.Blocker)
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}
