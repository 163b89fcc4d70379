package system

import (
	"time"

	"github.com/hivesim/server/internal/component"
	coresys "github.com/hivesim/server/internal/core/system"
	"github.com/hivesim/server/internal/sim"
	"go.uber.org/zap"
)

// ReportSystem logs a state summary and checksum every N kernel ticks, and
// the full dump at debug level. Phase 4 (Report).
type ReportSystem struct {
	loop  *sim.Loop
	every uint64
	log   *zap.Logger
}

// NewReportSystem returns a reporter; every <= 0 disables it.
func NewReportSystem(loop *sim.Loop, every int, log *zap.Logger) *ReportSystem {
	s := &ReportSystem{loop: loop, log: log}
	if every > 0 {
		s.every = uint64(every)
	}
	return s
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseReport }

func (s *ReportSystem) Update(_ time.Duration) {
	if s.every == 0 || s.loop.Tick%s.every != 0 {
		return
	}
	s.Report()
}

// Report logs the current summary immediately.
func (s *ReportSystem) Report() {
	st := s.loop.State
	fields := []zap.Field{
		zap.Uint64("tick", s.loop.Tick),
		zap.Int("entities", st.Entities.Count()),
		zap.Int("units", st.Memories.Len()),
		zap.Uint64("checksum", st.Checksum()),
	}
	if h, ok := st.Hive(); ok {
		for k := component.ResourceKind(0); k < component.ResourceKindCount; k++ {
			fields = append(fields, zap.Uint32("hive_"+k.String(), st.Amount(h, k)))
		}
	}
	s.log.Info("state", fields...)
	if ce := s.log.Check(zap.DebugLevel, "state dump"); ce != nil {
		ce.Write(zap.String("dump", st.String()))
	}
}
