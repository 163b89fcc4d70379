package event

import (
	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
)

// Kernel outcomes emitted by sim.Update.

type HiveCreated struct {
	Entity ecs.Entity
}

type UnitSpawned struct {
	Entity ecs.Entity
	Pos    position.Position
}

// ProgramLoaded follows a successful LoadProgram or LoadCommand.
type ProgramLoaded struct {
	Entity ecs.Entity
	Length int
}

type Moved struct {
	Entity ecs.Entity
	From   position.Position
	To     position.Position
}

// Harvested records one unit moving from Source into Entity.
type Harvested struct {
	Entity ecs.Entity
	Source ecs.Entity
	Kind   component.ResourceKind
}

// Rejected reports an operation that was refused and left the state untouched.
// Entity is zero for spawn rejections.
type Rejected struct {
	Entity ecs.Entity
	Action string
	Err    error
}
