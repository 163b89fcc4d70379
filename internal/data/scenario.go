package data

import (
	"fmt"
	"os"

	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
	"github.com/hivesim/server/internal/world"
	"gopkg.in/yaml.v3"
)

// NodeEntry defines one resource deposit placed at world start.
type NodeEntry struct {
	X       uint32  `yaml:"x"`
	Y       uint32  `yaml:"y"`
	OffsetX float32 `yaml:"offset_x"`
	OffsetY float32 `yaml:"offset_y"`
	Kind    string  `yaml:"kind"`
	Amount  uint32  `yaml:"amount"`
	Energy  uint32  `yaml:"energy"` // optional EnergyLevel, 0 = none
	Note    string  `yaml:"note"`
}

// Scenario is the initial world layout.
type Scenario struct {
	Hive  bool        `yaml:"hive"`  // request the hive on the first tick
	Fleet int         `yaml:"fleet"` // units the autopilot keeps alive
	Nodes []NodeEntry `yaml:"nodes"`
}

// LoadScenario loads scenario.yaml.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(raw)
}

func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i := range sc.Nodes {
		n := &sc.Nodes[i]
		if n.Kind == "" {
			n.Kind = component.Iron.String()
		}
		if _, err := component.ParseResourceKind(n.Kind); err != nil {
			return nil, fmt.Errorf("scenario node %d: %w", i, err)
		}
		if n.OffsetX < 0 || n.OffsetX >= position.Scale || n.OffsetY < 0 || n.OffsetY >= position.Scale {
			return nil, fmt.Errorf("scenario node %d: offset (%v, %v) outside [0, %d)", i, n.OffsetX, n.OffsetY, position.Scale)
		}
	}
	if sc.Fleet < 0 {
		return nil, fmt.Errorf("scenario fleet %d is negative", sc.Fleet)
	}
	return &sc, nil
}

// Populate spawns the scenario's nodes into st and returns them in file order.
func (sc *Scenario) Populate(st *world.State) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(sc.Nodes))
	for _, n := range sc.Nodes {
		kind, _ := component.ParseResourceKind(n.Kind)
		e := st.SpawnNode(position.NewWithOffset(n.X, n.Y, n.OffsetX, n.OffsetY), kind, n.Amount)
		if n.Energy > 0 {
			*st.Energy.Create(e) = component.EnergyLevel{Current: n.Energy, Max: n.Energy}
		}
		out = append(out, e)
	}
	return out
}

// Count returns the number of nodes defined.
func (sc *Scenario) Count() int {
	return len(sc.Nodes)
}
