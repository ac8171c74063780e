package systems

import (
	"testing"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/stretchr/testify/require"
)

// TestResources_MineToDelivery covers the full gather loop: a worker
// spawned already assigned to a patch walks over, gathers, and delivers.
func TestResources_MineToDelivery(t *testing.T) {
	w := newTestWorld(20, 20)
	rs := NewResourceState()
	w.TeamMinerals[core.TeamHuman] = 50
	w.SpawnBase(core.TeamHuman, 5, 5)
	patch := w.AddMineralPatch(10, 5, 1500)

	worker := w.SpawnWorker(core.TeamHuman, 5, 6)
	id := patch.ID
	worker.GatherTarget = &id
	worker.WState = core.WorkerMovingToMineral
	worker.Destination = &[2]float64{patch.X, patch.Y}

	var delivered bool
	w.Bus.On(core.EvtResourceCollected, func(core.Event) { delivered = true })

	dt := 1.0 / 30.0
	maxTicks := int(30.0 / dt) // generous ceiling; the full cycle takes about 6s
	for i := 0; i < maxTicks && !delivered; i++ {
		RunMovement(w, dt)
		RunResources(w, rs, dt)
	}

	require.True(t, delivered, "worker never completed a full gather-and-deliver cycle")
	require.Equal(t, 58, w.TeamMinerals[core.TeamHuman])
	require.Equal(t, 1492, patch.Remaining)
	require.NotNil(t, worker.GatherTarget, "worker should still be assigned to the same undepleted patch")
}

func TestResources_GatherPartialOnLowRemainder(t *testing.T) {
	w := newTestWorld(20, 20)
	rs := NewResourceState()
	patch := w.AddMineralPatch(5, 5, 1)
	worker := w.SpawnWorker(core.TeamHuman, 5, 5)
	id := patch.ID
	worker.GatherTarget = &id
	worker.WState = core.WorkerGathering
	rs.gatherTimer[worker.ID()] = gatherTime

	RunResources(w, rs, 1.0/30.0)
	require.Equal(t, 1, worker.Carrying)
	require.True(t, patch.Depleted())
}

func TestResources_DepletedPatchGoesIdleNotGathering(t *testing.T) {
	w := newTestWorld(20, 20)
	rs := NewResourceState()
	patch := w.AddMineralPatch(5, 5, 0)
	worker := w.SpawnWorker(core.TeamHuman, 5, 5)
	id := patch.ID
	worker.GatherTarget = &id
	worker.WState = core.WorkerMovingToMineral

	var depletedEvents int
	w.Bus.On(core.EvtMineDepleted, func(core.Event) { depletedEvents++ })

	RunResources(w, rs, 1.0/30.0)
	require.Equal(t, core.WorkerIdle, worker.WState)
	require.Nil(t, worker.GatherTarget)
	require.Equal(t, 1, depletedEvents)
}

func TestResources_IdleWithCarryingReturnsToBase(t *testing.T) {
	w := newTestWorld(20, 20)
	rs := NewResourceState()
	w.SpawnBase(core.TeamHuman, 5, 5)
	worker := w.SpawnWorker(core.TeamHuman, 10, 10)
	worker.Carrying = 4
	worker.WState = core.WorkerIdle

	RunResources(w, rs, 1.0/30.0)
	require.Equal(t, core.WorkerReturning, worker.WState)
	require.NotNil(t, worker.Destination)
}
