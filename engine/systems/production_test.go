package systems

import (
	"testing"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/stretchr/testify/require"
)

// TestProduction_WorkerCompletesIn8Seconds walks one queued Worker from
// payment through spawn.
func TestProduction_WorkerCompletesIn8Seconds(t *testing.T) {
	w := newTestWorld(20, 20)
	w.TeamMinerals[core.TeamHuman] = 100
	base := w.SpawnBase(core.TeamHuman, 5, 5)
	require.True(t, base.QueueProduction(core.KindWorker))

	var started, completed int
	w.Bus.On(core.EvtProductionStarted, func(core.Event) { started++ })
	w.Bus.On(core.EvtProductionCompleted, func(core.Event) { completed++ })

	dt := 1.0 / 30.0
	for i := 0; i < int(8.0/dt)+1; i++ {
		RunProduction(w, dt)
	}

	require.Equal(t, 1, started)
	require.Equal(t, 1, completed)
	require.Equal(t, 50, w.TeamMinerals[core.TeamHuman])
	require.Empty(t, base.ProductionQueue)
	workers := w.Units(core.TeamHuman)
	require.Len(t, workers, 1)
	require.Equal(t, core.KindWorker, workers[0].Kind)
}

func TestProduction_QueueKTimesProducesKUnits(t *testing.T) {
	const k = 4
	w := newTestWorld(20, 20)
	w.TeamMinerals[core.TeamHuman] = 1000
	base := w.SpawnBase(core.TeamHuman, 5, 5)
	for i := 0; i < k; i++ {
		require.True(t, base.QueueProduction(core.KindWorker))
	}

	var started, completed int
	w.Bus.On(core.EvtProductionStarted, func(core.Event) { started++ })
	w.Bus.On(core.EvtProductionCompleted, func(core.Event) { completed++ })

	startMinerals := w.TeamMinerals[core.TeamHuman]
	dt := 1.0 / 30.0
	for i := 0; i < k*int(8.0/dt)+k; i++ {
		RunProduction(w, dt)
	}

	require.Equal(t, k, started)
	require.Equal(t, k, completed)
	cost := w.Data.UnitCost(core.KindWorker)
	require.Equal(t, startMinerals-k*cost, w.TeamMinerals[core.TeamHuman])
	require.Len(t, w.Units(core.TeamHuman), k)
}

func TestProduction_InsufficientMineralsWaitsWithoutAdvancing(t *testing.T) {
	w := newTestWorld(20, 20)
	w.TeamMinerals[core.TeamHuman] = 10
	base := w.SpawnBase(core.TeamHuman, 5, 5)
	require.True(t, base.QueueProduction(core.KindWorker))

	var insufficient int
	w.Bus.On(core.EvtInsufficientMinerals, func(core.Event) { insufficient++ })

	RunProduction(w, 1.0/30.0)
	require.True(t, base.WaitingForMinerals)
	require.Equal(t, 0.0, base.ProductionProgress)
	require.Equal(t, 1, insufficient)
	require.Equal(t, 10, w.TeamMinerals[core.TeamHuman])
}

func TestProduction_RallyPointAssignedToNewUnit(t *testing.T) {
	w := newTestWorld(20, 20)
	w.TeamMinerals[core.TeamHuman] = 1000
	base := w.SpawnBase(core.TeamHuman, 5, 5)
	base.RallyPoint = &[2]float64{12, 12}
	require.True(t, base.QueueProduction(core.KindWorker))

	dt := 1.0 / 30.0
	for i := 0; i < int(8.0/dt)+1; i++ {
		RunProduction(w, dt)
	}

	workers := w.Units(core.TeamHuman)
	require.Len(t, workers, 1)
	require.NotNil(t, workers[0].Destination)
	require.Equal(t, 12.0, workers[0].Destination[0])
	require.Equal(t, 12.0, workers[0].Destination[1])
}
