package sim

import (
	"github.com/hivesim/server/internal/core/event"
	"github.com/hivesim/server/internal/world"
)

// Loop carries the kernel between ticks: the latest state, the input being
// collected for the next Update and the bus outcomes are emitted on.
// It is owned by the game loop goroutine.
type Loop struct {
	State *world.State
	Input Input
	Bus   *event.Bus
	Step  float32 // simulated seconds per tick
	Tick  uint64
}

func NewLoop(st *world.State, step float32, bus *event.Bus) *Loop {
	return &Loop{State: st, Step: step, Bus: bus}
}

// Advance runs one Update with the collected input, then clears the input.
func (l *Loop) Advance() {
	l.State = Update(l.State, l.Step, &l.Input, l.Bus)
	l.Input.Reset()
	l.Tick++
}

// Snapshot returns a deep copy of the current state for read-only observers.
func (l *Loop) Snapshot() *world.State {
	return l.State.Clone()
}
