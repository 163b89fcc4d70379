package sim

import (
	"testing"

	"github.com/hivesim/server/internal/position"
	"github.com/stretchr/testify/require"
)

func TestStepToward(t *testing.T) {
	t.Run("steps each axis by speed times dt", func(t *testing.T) {
		next := StepToward(position.New(0, 1), position.New(10, 5), 0.1)
		require.Equal(t, position.NewWithOffset(0, 1, 10, 10), next)
	})

	t.Run("moves backwards", func(t *testing.T) {
		next := StepToward(position.New(3, 3), position.New(0, 3), 0.1)
		require.Equal(t, position.NewWithOffset(2, 3, 90, 0), next)
	})

	t.Run("does not overshoot", func(t *testing.T) {
		next := StepToward(position.NewWithOffset(4, 0, 96, 0), position.New(5, 0), 0.1)
		require.Equal(t, position.New(5, 0), next)
	})

	t.Run("axis inside tolerance stays put", func(t *testing.T) {
		cur := position.NewWithOffset(5, 5, 2, 0)
		next := StepToward(cur, position.New(5, 9), 0.1)
		require.Equal(t, cur.OffsetX, next.OffsetX)
		require.Equal(t, uint32(5), next.TileX)
		require.Equal(t, float32(10), next.OffsetY)
	})

	t.Run("diagonal stride stays under MaxStep", func(t *testing.T) {
		for _, dt := range []float32{0.5, 0.75, 1, 3} {
			cur, dest := position.New(0, 1), position.New(6, 7)
			next := StepToward(cur, dest, dt)
			require.LessOrEqual(t, cur.Distance(next), float32(MaxStep), "dt %v", dt)
			require.Less(t, next.Distance(dest), cur.Distance(dest), "dt %v", dt)
		}
	})

	t.Run("arrival", func(t *testing.T) {
		require.True(t, Arrived(position.NewWithOffset(5, 5, 2, 2), position.New(5, 5)))
		require.False(t, Arrived(position.NewWithOffset(5, 5, 6, 0), position.New(5, 5)))
	})
}
