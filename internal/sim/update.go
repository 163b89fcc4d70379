// Package sim is the deterministic tick kernel: movement and harvest rules and
// the per-tick program executor.
package sim

import (
	"errors"
	"fmt"

	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/core/event"
	"github.com/hivesim/server/internal/position"
	"github.com/hivesim/server/internal/world"
)

const (
	// CommandRange is the tile Manhattan distance from the hive within which
	// units accept new instructions.
	CommandRange = 5
	// HarvestKind is the resource moved by Harvest and Deposit instructions.
	HarvestKind = component.Iron
)

var (
	HiveTile  = position.New(0, 0)
	SpawnTile = position.New(0, 1)
)

// Update advances st by one tick of dt seconds and returns the next state.
// st is consumed; the returned state reuses its storage, so callers must not
// keep using st. Outcomes and rejections are emitted on bus, which may be nil.
//
// Order within a tick: hive creation, user commands in list order, unit spawn,
// then one instruction for every entity holding a non-empty program.
func Update(st *world.State, dt float32, in *Input, bus *event.Bus) *world.State {
	t := &tick{st: st, dt: dt, bus: bus}

	if in.CreateHive {
		if e, created := st.CreateHive(HiveTile.TileX, HiveTile.TileY); created {
			event.Emit(bus, event.HiveCreated{Entity: e})
		}
	}

	for _, uc := range in.UserCommands {
		t.applyUserCommand(uc)
	}

	if in.CreateUnit {
		t.spawnUnit()
	}

	for _, e := range st.Memories.Owners() {
		m, _ := st.Memories.Get(e)
		if len(m.Commands) == 0 {
			continue
		}
		t.execute(e, m)
	}

	return st
}

type tick struct {
	st  *world.State
	dt  float32
	bus *event.Bus
}

func (t *tick) reject(e ecs.Entity, action string, err error) {
	event.Emit(t.bus, event.Rejected{Entity: e, Action: action, Err: err})
}

// commandable checks that e can be given instructions this tick.
func (t *tick) commandable(e ecs.Entity) error {
	hive, ok := t.st.Hive()
	if !ok {
		return ErrNoHive
	}
	hp, _ := t.st.EntityPosition(hive)
	p, ok := t.st.EntityPosition(e)
	if !ok {
		return fmt.Errorf("entity %d: %w", e, ErrNoPosition)
	}
	if d := p.Manhattan(hp); d > CommandRange {
		return fmt.Errorf("entity %d at distance %d: %w", e, d, ErrOutOfRange)
	}
	if !t.st.Memories.Contains(e) {
		return fmt.Errorf("entity %d: %w", e, ErrNotProgrammable)
	}
	return nil
}

func (t *tick) applyUserCommand(uc UserCommand) {
	if err := t.commandable(uc.Entity); err != nil {
		t.reject(uc.Entity, uc.Kind.String(), err)
		return
	}
	m, _ := t.st.Memories.Get(uc.Entity)
	switch uc.Kind {
	case KindLoadProgram:
		m.Load(uc.Program)
		event.Emit(t.bus, event.ProgramLoaded{Entity: uc.Entity, Length: len(m.Commands)})
	case KindLoadCommand:
		m.Append(uc.Command)
		event.Emit(t.bus, event.ProgramLoaded{Entity: uc.Entity, Length: len(m.Commands)})
	default:
		panic(fmt.Sprintf("sim: unknown user command kind %d", uc.Kind))
	}
}

func (t *tick) spawnUnit() {
	if !t.st.HasHive() {
		t.reject(0, "spawn", ErrNoHive)
		return
	}
	if occ, ok := t.st.Occupant(SpawnTile); ok {
		t.reject(0, "spawn", fmt.Errorf("tile %s held by %d: %w", SpawnTile, occ, ErrSpawnBlocked))
		return
	}
	e := t.st.SpawnUnit(SpawnTile)
	event.Emit(t.bus, event.UnitSpawned{Entity: e, Pos: SpawnTile})
}

// execute runs the instruction under e's cursor and decides whether the
// cursor advances. Only an unfinished MoveD holds the cursor in place.
func (t *tick) execute(e ecs.Entity, m *component.Memory) {
	cmd := m.Current()
	switch cmd.Op {
	case component.OpMoveP:
		t.move(e, cmd, cmd.Pos)
		m.Advance()

	case component.OpMoveD:
		if t.walk(e, cmd) {
			m.Advance()
		} else {
			m.Hold()
		}

	case component.OpHarvest:
		t.transfer(e, cmd.Target, e, cmd)
		m.Advance()

	case component.OpDeposit:
		t.transfer(cmd.Target, e, e, cmd)
		m.Advance()

	default:
		panic(fmt.Sprintf("sim: entity %d has unknown op %s", e, cmd.Op))
	}
}

func (t *tick) move(e ecs.Entity, cmd component.Command, to position.Position) error {
	from, _ := t.st.EntityPosition(e)
	if err := Move(e, t.st.Positions, t.st.Collisions, to); err != nil {
		t.reject(e, cmd.Op.String(), err)
		return err
	}
	event.Emit(t.bus, event.Moved{Entity: e, From: from, To: to})
	return nil
}

// walk takes one MoveD step and reports whether the destination was reached.
// A step blocked by a collider sitting on the destination tile itself counts
// as arrival: the walker is as close as it can get.
func (t *tick) walk(e ecs.Entity, cmd component.Command) bool {
	cur, ok := t.st.EntityPosition(e)
	if !ok {
		t.reject(e, cmd.Op.String(), fmt.Errorf("entity %d: %w", e, ErrNoPosition))
		return false
	}
	next := StepToward(cur, cmd.Pos, t.dt)
	if err := t.move(e, cmd, next); err != nil {
		return errors.Is(err, ErrCollision) && next.SameTile(cmd.Pos)
	}
	return Arrived(next, cmd.Pos)
}

// transfer moves one HarvestKind unit from src into dst on behalf of actor.
func (t *tick) transfer(dst, src, actor ecs.Entity, cmd component.Command) {
	if err := Harvest(dst, t.st.Positions, t.st.Containers, src, HarvestKind); err != nil {
		t.reject(actor, cmd.Op.String(), err)
		return
	}
	event.Emit(t.bus, event.Harvested{Entity: dst, Source: src, Kind: HarvestKind})
}
