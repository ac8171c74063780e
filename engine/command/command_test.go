package command

import (
	"testing"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/1siamBot/microcraft/engine/selection"
	"github.com/stretchr/testify/require"
)

func testWorld() *core.World {
	m := maplib.NewGameMap(30, 30)
	data := core.DefaultGameData()
	bus := core.NewEventBus(true)
	rng := core.NewRNG(3)
	return core.NewWorld(m, data, rng, bus, 100)
}

func TestDispatch_BuildModeAssignsFirstSelectedWorker(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	worker := w.SpawnWorker(core.TeamHuman, 5, 5)
	sel.Set(worker.ID())
	worker.GatherTarget = new(int)

	buildKind := core.KindBarracks
	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 10, Y: 10, BuildMode: &buildKind})

	require.Equal(t, KindBuild, res.Kind)
	require.True(t, res.ExitBuildMode)
	require.NotNil(t, worker.BuildTarget)
	require.Equal(t, core.KindBarracks, worker.BuildTarget.Kind)
	require.Nil(t, worker.GatherTarget)
}

func TestDispatch_BuildModeIgnoresSoldiers(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	soldier := w.SpawnSoldier(core.TeamHuman, 5, 5)
	sel.Set(soldier.ID())

	buildKind := core.KindBarracks
	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 10, Y: 10, BuildMode: &buildKind})

	require.Equal(t, KindBuild, res.Kind)
	require.True(t, res.ExitBuildMode)
}

func TestDispatch_ClickOnOwnUnitSelectsIt(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	target := w.SpawnWorker(core.TeamHuman, 8, 8)

	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 8.2, Y: 8.1})

	require.Equal(t, KindSelect, res.Kind)
	require.True(t, sel.Selected[target.ID()])
	require.Len(t, sel.Selected, 1)
}

func TestDispatch_NoSelectionAndNoHitIsNoop(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 8, Y: 8})
	require.Equal(t, Result{}, res)
}

func TestDispatch_SingleWorkerNearPatchGathers(t *testing.T) {
	w := testWorld()
	patch := w.AddMineralPatch(12, 12, 1500)
	sel := selection.NewManager()
	worker := w.SpawnWorker(core.TeamHuman, 5, 5)
	sel.Set(worker.ID())

	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 12.3, Y: 11.8})

	require.Equal(t, KindGather, res.Kind)
	require.NotNil(t, worker.GatherTarget)
	require.Equal(t, patch.ID, *worker.GatherTarget)
	require.Equal(t, core.WorkerMovingToMineral, worker.WState)
}

func TestDispatch_ClickOnEnemySendsAllSelectedToAttackMove(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	s1 := w.SpawnSoldier(core.TeamHuman, 1, 1)
	s2 := w.SpawnSoldier(core.TeamHuman, 2, 2)
	sel.Set(s1.ID())
	sel.Selected[s2.ID()] = true
	enemy := w.SpawnWorker(core.TeamOpponent, 20, 20)

	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 20, Y: 20})

	require.Equal(t, KindAttackMove, res.Kind)
	for _, u := range []*core.Unit{s1, s2} {
		require.NotNil(t, u.Destination)
		require.NotNil(t, u.Target)
		require.Equal(t, enemy.ID(), *u.Target)
	}
}

func TestDispatch_ClickOnEmptyGroundFansOutGroupMove(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	u1 := w.SpawnWorker(core.TeamHuman, 1, 1)
	u2 := w.SpawnWorker(core.TeamHuman, 1, 2)
	sel.Set(u1.ID())
	sel.Selected[u2.ID()] = true

	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 15, Y: 15})

	require.Equal(t, KindMove, res.Kind)
	require.NotNil(t, u1.Destination)
	require.NotNil(t, u2.Destination)
}

func TestRequestProduction_QueuesAtSelectedBuilding(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	base := w.SpawnBase(core.TeamHuman, 5, 5)
	sel.Set(base.ID())

	require.True(t, RequestProduction(w, sel))
	require.Equal(t, []core.Kind{core.KindWorker}, base.ProductionQueue)
}

func TestRequestProduction_FailsOnFullQueueOrNoBuilding(t *testing.T) {
	w := testWorld()
	sel := selection.NewManager()
	require.False(t, RequestProduction(w, sel), "empty selection queues nothing")

	barracks := w.SpawnBarracks(core.TeamHuman, 5, 5)
	sel.Set(barracks.ID())
	for i := 0; i < core.MaxProductionQueue; i++ {
		require.True(t, RequestProduction(w, sel))
	}
	require.False(t, RequestProduction(w, sel))
	require.Len(t, barracks.ProductionQueue, core.MaxProductionQueue)
}

func TestDispatch_SingleNonWorkerSelectionSkipsGatherFallsToGroupMove(t *testing.T) {
	w := testWorld()
	w.AddMineralPatch(12, 12, 1500)
	sel := selection.NewManager()
	soldier := w.SpawnSoldier(core.TeamHuman, 5, 5)
	sel.Set(soldier.ID())

	res := Dispatch(w, sel, Intent{Team: core.TeamHuman, X: 12.3, Y: 11.8})

	require.Equal(t, KindMove, res.Kind)
	require.NotNil(t, soldier.Destination)
	require.Nil(t, soldier.Target)
}
