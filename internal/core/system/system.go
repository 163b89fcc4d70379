package system

import "time"

// Phase defines execution ordering within a single host tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: drain console lines
	PhasePreUpdate              // 1: scripts queue kernel input
	PhaseUpdate                 // 2: kernel tick
	PhaseOutput                 // 3: dispatch kernel events
	PhaseReport                 // 4: periodic dumps and checksums
)

// System is the interface every host-loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
