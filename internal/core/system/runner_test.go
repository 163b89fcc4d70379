package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type probe struct {
	name  string
	phase Phase
	log   *[]string
}

func (p probe) Phase() Phase { return p.phase }

func (p probe) Update(time.Duration) { *p.log = append(*p.log, p.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(probe{"report", PhaseReport, &log})
	r.Register(probe{"kernel", PhaseUpdate, &log})
	r.Register(probe{"console", PhaseInput, &log})
	r.Register(probe{"autopilot", PhasePreUpdate, &log})
	r.Register(probe{"kernel2", PhaseUpdate, &log})

	r.Tick(time.Millisecond)
	require.Equal(t, []string{"console", "autopilot", "kernel", "kernel2", "report"}, log)

	log = log[:0]
	r.TickPhase(PhaseUpdate, 0)
	require.Equal(t, []string{"kernel", "kernel2"}, log)
}
