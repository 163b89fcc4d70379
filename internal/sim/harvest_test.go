package sim

import (
	"math"
	"testing"

	"github.com/hivesim/server/internal/component"
	"github.com/hivesim/server/internal/core/ecs"
	"github.com/hivesim/server/internal/position"
	"github.com/hivesim/server/internal/world"
	"github.com/stretchr/testify/require"
)

func TestHarvestConserves(t *testing.T) {
	for _, tc := range []struct{ a, b uint32 }{{1, 0}, {2, 5}, {10, 10}} {
		st := world.NewState()
		node := st.SpawnNode(position.New(3, 3), component.Iron, tc.a)
		unit := st.SpawnUnit(position.New(2, 3))
		st.Containers.Create(99)
		c, _ := st.Containers.Get(unit)
		c.Amounts[component.Iron] = tc.b

		require.NoError(t, Harvest(unit, st.Positions, st.Containers, node, component.Iron))
		require.Equal(t, tc.a-1, st.Amount(node, component.Iron))
		require.Equal(t, tc.b+1, st.Amount(unit, component.Iron))
	}
}

func TestHarvestCreatesContainer(t *testing.T) {
	st := world.NewState()
	node := st.SpawnNode(position.New(3, 3), component.Iron, 3)
	e := st.Entities.Create()
	*st.Positions.Create(e) = position.New(3, 1)

	require.NoError(t, Harvest(e, st.Positions, st.Containers, node, component.Iron))
	require.Equal(t, uint32(1), st.Amount(e, component.Iron))
	require.Equal(t, uint32(2), st.Amount(node, component.Iron))
}

func TestHarvestRejections(t *testing.T) {
	st := world.NewState()
	node := st.SpawnNode(position.New(3, 3), component.Iron, 1)
	unit := st.SpawnUnit(position.New(0, 0))
	bare := st.Entities.Create()
	*st.Positions.Create(bare) = position.New(1, 0)

	check := func(want error, target ecs.Entity, kind component.ResourceKind) {
		t.Helper()
		before := st.String()
		require.ErrorIs(t, Harvest(unit, st.Positions, st.Containers, target, kind), want)
		require.Equal(t, before, st.String())
	}

	check(ErrTooFar, node, component.Iron)
	check(ErrNoContainer, bare, component.Iron)
	check(ErrNoPosition, 42, component.Iron)

	p, _ := st.Positions.Get(unit)
	*p = position.New(2, 2)
	check(ErrEmpty, node, component.Copper)

	require.NoError(t, Harvest(unit, st.Positions, st.Containers, node, component.Iron))
	check(ErrEmpty, node, component.Iron)
}

func TestHarvestIntoFullContainer(t *testing.T) {
	st := world.NewState()
	node := st.SpawnNode(position.New(3, 3), component.Iron, 4)
	unit := st.SpawnUnit(position.New(2, 3))
	c, _ := st.Containers.Get(unit)
	c.Amounts[component.Iron] = math.MaxUint32

	before := st.String()
	require.ErrorIs(t, Harvest(unit, st.Positions, st.Containers, node, component.Iron), ErrFull)
	require.Equal(t, before, st.String())

	c.Amounts[component.Iron] = math.MaxUint32 - 1
	require.NoError(t, Harvest(unit, st.Positions, st.Containers, node, component.Iron))
	require.Equal(t, uint32(math.MaxUint32), st.Amount(unit, component.Iron))
}

func TestDepositIsSwappedHarvest(t *testing.T) {
	st := world.NewState()
	hive, _ := st.CreateHive(0, 0)
	unit := st.SpawnUnit(position.New(0, 1))
	c, _ := st.Containers.Get(unit)
	c.Amounts[component.Iron] = 1

	require.NoError(t, Harvest(hive, st.Positions, st.Containers, unit, component.Iron))
	require.Equal(t, uint32(1), st.Amount(hive, component.Iron))
	require.Zero(t, st.Amount(unit, component.Iron))
}
