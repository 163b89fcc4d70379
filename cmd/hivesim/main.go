package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/config"
	"github.com/hivesim/server/internal/console"
	"github.com/hivesim/server/internal/core/event"
	coresys "github.com/hivesim/server/internal/core/system"
	"github.com/hivesim/server/internal/data"
	"github.com/hivesim/server/internal/scripting"
	"github.com/hivesim/server/internal/sim"
	"github.com/hivesim/server/internal/system"
	"github.com/hivesim/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/width"
)

// consolePoll is how often console lines are answered between kernel ticks.
const consolePoll = 20 * time.Millisecond

// panelWidth is the column count of the startup panel.
const panelWidth = 46

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup panel ─────────────────────────────────────────────────

func printBanner(runID string, simCfg config.SimulationConfig) {
	fmt.Println()
	fmt.Println("\033[33;1m   ⬡ ⬡ ⬡  hivesim\033[0m \033[90mv0.1.0\033[0m")
	fmt.Printf("\033[90m   tick %s · step %gs · run %s\033[0m\n\n", simCfg.TickRate, simCfg.Step, runID[:8])
}

// columns counts terminal cells; East Asian wide runes take two.
func columns(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// fill repeats pad so that used+fill spans the panel, keeping at least min.
func fill(pad string, used, min int) string {
	n := panelWidth - used
	if n < min {
		n = min
	}
	return strings.Repeat(pad, n)
}

func printRule(title string) {
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, fill("─", columns(title)+1, 3))
}

// printRow prints "label ····· value" right-aligned to the panel edge.
func printRow(label, value string) {
	dots := fill("·", columns(label)+len(value)+4, 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, dots, value)
}

func printMark(glyph, msg string) {
	fmt.Printf("  \033[32m%s\033[0m %s\n", glyph, msg)
}

// printScenario lists the layout the world starts from: node count and the
// total deposit of every resource kind.
func printScenario(path string, sc *data.Scenario) {
	printRule("scenario")
	var totals [component.ResourceKindCount]uint64
	for _, n := range sc.Nodes {
		if k, err := component.ParseResourceKind(n.Kind); err == nil {
			totals[k] += uint64(n.Amount)
		}
	}
	printRow("resource nodes", fmt.Sprint(sc.Count()))
	for k, total := range totals {
		printRow(component.ResourceKind(k).String()+" deposited", fmt.Sprint(total))
	}
	printRow("fleet size", fmt.Sprint(sc.Fleet))
	hive := "queued for tick 0"
	if !sc.Hive {
		hive = "left to scripts"
	}
	printRow("hive", hive)
	printMark("✓", path)
	fmt.Println()
}

// ── Main host logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/hivesim.toml"
	if p := os.Getenv("HIVESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	runID := uuid.NewString()
	log, err := newLogger(cfg.Logging, runID)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(runID, cfg.Simulation)

	// 3. Build the world from the scenario
	sc, err := data.LoadScenario(cfg.Scenario.Path)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	st := world.NewState()
	sc.Populate(st)
	printScenario(cfg.Scenario.Path, sc)

	bus := event.NewBus()
	system.LogEvents(bus, log.Named("kernel"))
	loop := sim.NewLoop(st, cfg.Simulation.Step, bus)
	loop.Input.CreateHive = sc.Hive

	// 4. Scripting
	printRule("scripting")
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, loop, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	engine.SetNumber("FLEET_SIZE", float64(sc.Fleet))
	printMark("✓", "lua scripts from "+cfg.Scripting.Dir)

	// 5. Register host systems
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quitCh := make(chan struct{})
	quit := sync.OnceFunc(func() { close(quitCh) })

	runner := coresys.NewRunner()
	var reader *console.Reader
	if cfg.Scripting.Console {
		reader = console.NewReader(console.Pipe(os.Stdin), 64, log.Named("console"))
		runner.Register(system.NewConsoleSystem(reader, engine, 16, quit, log.Named("console")))
		printMark("✓", "console attached to stdin (type exit to stop)")
	}
	if cfg.Scripting.Autopilot && engine.HasAutopilot() {
		runner.Register(system.NewAutopilotSystem(engine))
		printMark("✓", "autopilot enabled")
	}
	runner.Register(system.NewKernelSystem(loop))
	runner.Register(system.NewEventSystem(bus))
	report := system.NewReportSystem(loop, cfg.Simulation.DumpEvery, log)
	runner.Register(report)
	fmt.Println()

	// 6. Start game loop
	printRule("running")
	if cfg.Simulation.MaxTicks > 0 {
		printMark("▶", fmt.Sprintf("stopping after %d ticks", cfg.Simulation.MaxTicks))
	} else {
		printMark("▶", "until interrupted")
	}
	fmt.Println()

	err = supervise(ctx, reader, func(ctx context.Context) error {
		return gameLoop(ctx, quitCh, runner, loop, cfg.Simulation, log)
	})
	if err != nil {
		return err
	}

	report.Report()
	log.Info("simulation stopped", zap.Uint64("tick", loop.Tick), zap.Uint64("checksum", loop.State.Checksum()))
	return nil
}

// supervise runs the game loop and, when present, the console reader as one
// group. The loop ending for any reason cancels the reader; a reader failure
// stops the loop and is returned.
func supervise(ctx context.Context, reader *console.Reader, loop func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if reader != nil {
		g.Go(func() error {
			if err := reader.Run(gctx); err != nil {
				return fmt.Errorf("console: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return loop(gctx)
	})
	return g.Wait()
}

// gameLoop owns the kernel: every system runs on this goroutine.
func gameLoop(ctx context.Context, quit <-chan struct{}, runner *coresys.Runner, loop *sim.Loop, cfg config.SimulationConfig, log *zap.Logger) error {
	ticker := time.NewTicker(cfg.TickRate)
	defer ticker.Stop()
	poll := time.NewTicker(consolePoll)
	defer poll.Stop()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.TickRate)
			if cfg.MaxTicks > 0 && loop.Tick >= uint64(cfg.MaxTicks) {
				log.Info("tick limit reached", zap.Int("max_ticks", cfg.MaxTicks))
				return nil
			}
		case <-poll.C:
			runner.TickPhase(coresys.PhaseInput, 0)
		case <-quit:
			return nil
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		}
	}
}

// newLogger builds the root logger tagged with the run id. Unknown levels
// are an error rather than a silent fallback.
func newLogger(cfg config.LoggingConfig, runID string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.Sampling = nil // every rejection matters when replaying a run
	case "console", "":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("logging.format %q: want json or console", cfg.Format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapCfg.InitialFields = map[string]any{"run_id": runID}

	return zapCfg.Build()
}
