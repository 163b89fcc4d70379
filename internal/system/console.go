package system

import (
	"strings"
	"time"

	"github.com/hivesim/server/internal/console"
	coresys "github.com/hivesim/server/internal/core/system"
	"go.uber.org/zap"
)

// Evaluator runs one console line against the scripting layer.
type Evaluator interface {
	Eval(src string) ([]string, error)
}

// ConsoleSystem evaluates operator lines queued by the console reader.
// "exit" and "quit" stop the host. Phase 0 (Input).
type ConsoleSystem struct {
	reader     *console.Reader
	eval       Evaluator
	maxPerTick int
	quit       func()
	log        *zap.Logger
}

func NewConsoleSystem(reader *console.Reader, eval Evaluator, maxPerTick int, quit func(), log *zap.Logger) *ConsoleSystem {
	return &ConsoleSystem{
		reader:     reader,
		eval:       eval,
		maxPerTick: maxPerTick,
		quit:       quit,
		log:        log,
	}
}

func (s *ConsoleSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ConsoleSystem) Update(_ time.Duration) {
	if s.reader == nil {
		return
	}
	lines, open := s.reader.Drain(s.maxPerTick)
	for _, line := range lines {
		s.handle(line)
	}
	if !open {
		s.log.Info("console detached")
		s.reader = nil
	}
}

func (s *ConsoleSystem) handle(line string) {
	switch strings.ToLower(line) {
	case "exit", "quit":
		s.log.Info("console requested shutdown")
		s.quit()
		return
	}
	out, err := s.eval.Eval(line)
	if err != nil {
		s.log.Warn("console error", zap.String("line", line), zap.Error(err))
		return
	}
	if len(out) > 0 {
		s.log.Info("console", zap.String("line", line), zap.Strings("result", out))
	}
}
