package system

import (
	"time"

	"github.com/hivesim/server/internal/core/event"
	coresys "github.com/hivesim/server/internal/core/system"
	"go.uber.org/zap"
)

// EventSystem delivers the events the kernel emitted this tick.
// Phase 3 (Output).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.Flush()
}

// LogEvents subscribes zap handlers for every kernel event. Movement is
// logged at debug level; rejections at warn.
func LogEvents(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.HiveCreated) {
		log.Info("hive created", zap.Uint64("entity", uint64(ev.Entity)))
	})
	event.Subscribe(bus, func(ev event.UnitSpawned) {
		log.Info("unit spawned", zap.Uint64("entity", uint64(ev.Entity)), zap.Stringer("pos", ev.Pos))
	})
	event.Subscribe(bus, func(ev event.ProgramLoaded) {
		log.Info("program loaded", zap.Uint64("entity", uint64(ev.Entity)), zap.Int("length", ev.Length))
	})
	event.Subscribe(bus, func(ev event.Moved) {
		log.Debug("moved",
			zap.Uint64("entity", uint64(ev.Entity)),
			zap.Stringer("from", ev.From),
			zap.Stringer("to", ev.To),
		)
	})
	event.Subscribe(bus, func(ev event.Harvested) {
		log.Info("harvested",
			zap.Uint64("entity", uint64(ev.Entity)),
			zap.Uint64("source", uint64(ev.Source)),
			zap.Stringer("kind", ev.Kind),
		)
	})
	event.Subscribe(bus, func(ev event.Rejected) {
		log.Warn("rejected",
			zap.Uint64("entity", uint64(ev.Entity)),
			zap.String("action", ev.Action),
			zap.Error(ev.Err),
		)
	})
}
