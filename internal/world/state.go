package world

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
)

// State is one frame of the simulation: the entity manager, one component
// store per component kind and the hive handle.
// A State is owned by the tick that is advancing it; observers work on Clone.
type State struct {
	Entities   *ecs.EntityManager
	Positions  *ecs.Store[position.Position]
	Collisions *ecs.Store[component.Collision]
	Energy     *ecs.Store[component.EnergyLevel]
	Containers *ecs.Store[component.SolidContainer]
	Memories   *ecs.Store[component.Memory]
	Nodes      *ecs.Store[component.MineableNode]

	hive ecs.Entity // zero until CreateHive
}

func NewState() *State {
	return &State{
		Entities:   ecs.NewEntityManager(),
		Positions:  ecs.NewStore[position.Position](),
		Collisions: ecs.NewStore[component.Collision](),
		Energy:     ecs.NewStore[component.EnergyLevel](),
		Containers: ecs.NewStore[component.SolidContainer](),
		Memories:   ecs.NewStore[component.Memory](),
		Nodes:      ecs.NewStore[component.MineableNode](),
	}
}

// Hive returns the hive entity, if one has been created.
func (s *State) Hive() (ecs.Entity, bool) {
	return s.hive, !s.hive.IsZero()
}

func (s *State) HasHive() bool {
	return !s.hive.IsZero()
}

// CreateHive creates the hive at tile (x, y) with an empty container.
// It is a no-op returning false when a hive already exists.
func (s *State) CreateHive(x, y uint32) (ecs.Entity, bool) {
	if s.HasHive() {
		return s.hive, false
	}
	e := s.Entities.Create()
	*s.Positions.Create(e) = position.New(x, y)
	s.Containers.Create(e)
	s.hive = e
	return e, true
}

// SpawnNode creates a solid resource deposit holding amount units of kind.
func (s *State) SpawnNode(p position.Position, kind component.ResourceKind, amount uint32) ecs.Entity {
	e := s.Entities.Create()
	*s.Positions.Create(e) = p
	*s.Collisions.Create(e) = component.Collision{Enabled: true, Shape: component.ShapeTile}
	s.Containers.Create(e).Amounts[kind] = amount
	*s.Nodes.Create(e) = component.MineableNode{Kind: kind}
	return e
}

// SpawnUnit creates a programmable unit at p with an empty program and container.
func (s *State) SpawnUnit(p position.Position) ecs.Entity {
	e := s.Entities.Create()
	*s.Positions.Create(e) = p
	s.Memories.Create(e)
	*s.Collisions.Create(e) = component.Collision{Enabled: true, Shape: component.ShapeTile}
	s.Containers.Create(e)
	return e
}

// Occupant returns the first entity whose position lies in p's tile.
func (s *State) Occupant(p position.Position) (ecs.Entity, bool) {
	var found ecs.Entity
	s.Positions.Each(func(e ecs.Entity, q *position.Position) {
		if found.IsZero() && q.SameTile(p) {
			found = e
		}
	})
	return found, !found.IsZero()
}

// Units returns every live entity that has a position, in id order.
func (s *State) Units() []ecs.Entity {
	var out []ecs.Entity
	for _, e := range s.Entities.Entities() {
		if s.Positions.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}

// ProgrammableUnits returns the entities that own a program.
func (s *State) ProgrammableUnits() []ecs.Entity {
	return s.Memories.Owners()
}

// EntityPosition returns e's position.
func (s *State) EntityPosition(e ecs.Entity) (position.Position, bool) {
	p, ok := s.Positions.Get(e)
	if !ok {
		return position.Position{}, false
	}
	return *p, true
}

// MineableNodes returns every entity that owns a container.
func (s *State) MineableNodes() []ecs.Entity {
	return s.Containers.Owners()
}

// ResourceNodes returns the world deposits, excluding hive and units.
func (s *State) ResourceNodes() []ecs.Entity {
	return s.Nodes.Owners()
}

// MineableCount returns the total number of units held in e's container.
func (s *State) MineableCount(e ecs.Entity) (uint32, bool) {
	c, ok := s.Containers.Get(e)
	if !ok {
		return 0, false
	}
	var n uint32
	for _, v := range c.Amounts {
		n += v
	}
	return n, true
}

// Amount returns how much of kind e holds; zero when e has no container.
func (s *State) Amount(e ecs.Entity, kind component.ResourceKind) uint32 {
	c, ok := s.Containers.Get(e)
	if !ok {
		return 0
	}
	return c.Amount(kind)
}

// Clone returns a deep copy that shares nothing with s.
func (s *State) Clone() *State {
	return &State{
		Entities:   s.Entities.Clone(),
		Positions:  s.Positions.Clone(),
		Collisions: s.Collisions.Clone(),
		Energy:     s.Energy.Clone(),
		Containers: s.Containers.Clone(),
		Memories:   s.Memories.CloneWith(component.CloneMemory),
		Nodes:      s.Nodes.Clone(),
		hive:       s.hive,
	}
}

// String dumps every live entity's components, one entity per line.
func (s *State) String() string {
	var b strings.Builder
	for _, e := range s.Entities.Entities() {
		fmt.Fprintf(&b, "entity %d", e)
		if e == s.hive {
			b.WriteString(" hive")
		}
		if p, ok := s.Positions.Get(e); ok {
			fmt.Fprintf(&b, " position=%s", p)
		}
		if c, ok := s.Collisions.Get(e); ok {
			fmt.Fprintf(&b, " collision=%t", c.Enabled)
		}
		if en, ok := s.Energy.Get(e); ok {
			fmt.Fprintf(&b, " energy=%d/%d", en.Current, en.Max)
		}
		if c, ok := s.Containers.Get(e); ok {
			b.WriteString(" container[")
			for k := component.ResourceKind(0); k < component.ResourceKindCount; k++ {
				if k > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%s=%d", k, c.Amounts[k])
			}
			b.WriteByte(']')
		}
		if n, ok := s.Nodes.Get(e); ok {
			fmt.Fprintf(&b, " node=%s", n.Kind)
		}
		if m, ok := s.Memories.Get(e); ok {
			fmt.Fprintf(&b, " program=%s pc=%d [", m.State(), m.Counter)
			for i, c := range m.Commands {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(c.String())
			}
			b.WriteByte(']')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Checksum fingerprints the full state, for determinism checks.
func (s *State) Checksum() uint64 {
	return xxhash.Sum64String(s.String())
}
