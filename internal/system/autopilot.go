package system

import (
	"time"

	coresys "github.com/hivesim/server/internal/core/system"
)

// Pilot queues kernel input from scripts before each tick.
type Pilot interface {
	Autopilot()
}

// AutopilotSystem lets scripts react to the last state. Phase 1 (PreUpdate).
type AutopilotSystem struct {
	pilot Pilot
}

func NewAutopilotSystem(pilot Pilot) *AutopilotSystem {
	return &AutopilotSystem{pilot: pilot}
}

func (s *AutopilotSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *AutopilotSystem) Update(_ time.Duration) {
	s.pilot.Autopilot()
}
