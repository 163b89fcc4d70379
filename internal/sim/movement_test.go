package sim

import (
	"errors"
	"testing"

	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/position"
	"github.com/hivesim/server/internal/world"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	st := world.NewState()
	node := st.SpawnNode(position.New(2, 2), component.Iron, 1)
	unit := st.SpawnUnit(position.New(1, 2))

	t.Run("accepts a short move", func(t *testing.T) {
		to := position.NewWithOffset(1, 2, 40, 30)
		require.NoError(t, Move(unit, st.Positions, st.Collisions, to))
		p, _ := st.EntityPosition(unit)
		require.Equal(t, to, p)
	})

	t.Run("rejects an occupied tile", func(t *testing.T) {
		before := st.String()
		err := Move(unit, st.Positions, st.Collisions, position.NewWithOffset(2, 2, 10, 0))
		require.ErrorIs(t, err, ErrCollision)
		var ce *CollisionError
		require.True(t, errors.As(err, &ce))
		require.Equal(t, node, ce.Blocker)
		require.Equal(t, before, st.String())
	})

	t.Run("rejects more than one tile per tick", func(t *testing.T) {
		before := st.String()
		err := Move(unit, st.Positions, st.Collisions, position.New(1, 4))
		require.ErrorIs(t, err, ErrTooFast)
		require.Equal(t, before, st.String())
	})

	t.Run("ignores its own body and disabled colliders", func(t *testing.T) {
		c, _ := st.Collisions.Get(node)
		c.Enabled = false
		require.NoError(t, Move(unit, st.Positions, st.Collisions, position.NewWithOffset(1, 2, 90, 0)))
		require.NoError(t, Move(unit, st.Positions, st.Collisions, position.NewWithOffset(2, 2, 10, 0)))
		c.Enabled = true
	})

	t.Run("requires a position", func(t *testing.T) {
		ghost := st.Entities.Create()
		err := Move(ghost, st.Positions, st.Collisions, position.New(0, 0))
		require.ErrorIs(t, err, ErrNoPosition)
	})
}
