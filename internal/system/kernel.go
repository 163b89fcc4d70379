package system

import (
	"time"

	coresys "github.com/hivesim/server/internal/core/system"
	"github.com/hivesim/server/internal/sim"
)

// KernelSystem advances the simulation by one fixed step per host tick,
// whatever the wall-clock dt. Phase 2 (Update).
type KernelSystem struct {
	loop *sim.Loop
}

func NewKernelSystem(loop *sim.Loop) *KernelSystem {
	return &KernelSystem{loop: loop}
}

func (s *KernelSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *KernelSystem) Update(_ time.Duration) {
	s.loop.Advance()
}
