package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReaderLines(t *testing.T) {
	r := NewReader(strings.NewReader("dump()\n\n  tick()  \nexit\n"), 8, zap.NewNop())
	require.NoError(t, r.Run(context.Background()))

	lines, ok := r.Drain(10)
	require.Equal(t, []string{"dump()", "tick()", "exit"}, lines)
	require.False(t, ok)
}

func TestReaderDrainLimit(t *testing.T) {
	r := NewReader(strings.NewReader("a\nb\nc\n"), 8, zap.NewNop())
	require.NoError(t, r.Run(context.Background()))

	lines, ok := r.Drain(2)
	require.Equal(t, []string{"a", "b"}, lines)
	require.True(t, ok)

	lines, ok = r.Drain(2)
	require.Equal(t, []string{"c"}, lines)
	require.False(t, ok)
}

func TestReaderCancel(t *testing.T) {
	r := NewReader(strings.NewReader("a\nb\n"), 0, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, r.Run(ctx))
	_, ok := <-r.Lines
	require.False(t, ok)
}

func TestReaderCancelUnblocksRead(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewReader(pr, 1, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	go pw.Write([]byte("tick()\n"))
	require.Equal(t, "tick()", <-r.Lines)

	// Nothing more is written; only cancellation can end the read.
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run still blocked after cancel")
	}
	_, open := <-r.Lines
	require.False(t, open)
}

func TestPipeRelays(t *testing.T) {
	r := NewReader(Pipe(strings.NewReader("a\nb\n")), 4, zap.NewNop())
	require.NoError(t, r.Run(context.Background()))
	lines, _ := r.Drain(4)
	require.Equal(t, []string{"a", "b"}, lines)
}

type failing struct{}

func (failing) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestReaderError(t *testing.T) {
	r := NewReader(failing{}, 1, zap.NewNop())
	require.EqualError(t, r.Run(context.Background()), "tty gone")
}
