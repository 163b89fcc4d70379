package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hivesim/server/internal/config"
	"github.com/hivesim/server/internal/console"
	coresys "github.com/hivesim/server/internal/core/system"
	"github.com/hivesim/server/internal/sim"
	"github.com/hivesim/server/internal/system"
	"github.com/hivesim/server/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestColumns(t *testing.T) {
	require.Equal(t, 5, columns("nodes"))
	require.Equal(t, 4, columns("資源"))
	require.Equal(t, 3, len([]rune(fill("─", panelWidth-1, 3))))
}

func TestGameLoopStopsAtTickLimit(t *testing.T) {
	loop := sim.NewLoop(world.NewState(), 0.1, nil)
	runner := coresys.NewRunner()
	runner.Register(system.NewKernelSystem(loop))

	cfg := config.SimulationConfig{TickRate: time.Millisecond, Step: 0.1, MaxTicks: 3}
	err := gameLoop(context.Background(), make(chan struct{}), runner, loop, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, uint64(3), loop.Tick)
}

func TestGameLoopQuit(t *testing.T) {
	loop := sim.NewLoop(world.NewState(), 0.1, nil)
	quit := make(chan struct{})
	close(quit)

	cfg := config.SimulationConfig{TickRate: time.Hour, Step: 0.1}
	err := gameLoop(context.Background(), quit, coresys.NewRunner(), loop, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Zero(t, loop.Tick)
}

func TestSuperviseStopsIdleConsole(t *testing.T) {
	// The pipe never receives input, so only cancellation ends the read.
	pr, _ := io.Pipe()
	reader := console.NewReader(pr, 1, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- supervise(context.Background(), reader, func(context.Context) error { return nil })
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("console reader kept the group alive")
	}
}

func TestSuperviseReturnsConsoleFailure(t *testing.T) {
	pr, pw := io.Pipe()
	pw.CloseWithError(errors.New("tty gone"))
	reader := console.NewReader(pr, 1, zap.NewNop())

	err := supervise(context.Background(), reader, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	require.ErrorContains(t, err, "tty gone")
}

func TestSuperviseWithoutConsole(t *testing.T) {
	boom := errors.New("boom")
	err := supervise(context.Background(), nil, func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json"}, "run-1")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zap.DebugLevel))

	_, err = newLogger(config.LoggingConfig{Level: "loud", Format: "console"}, "run-1")
	require.Error(t, err)
	_, err = newLogger(config.LoggingConfig{Level: "info", Format: "xml"}, "run-1")
	require.Error(t, err)
}
