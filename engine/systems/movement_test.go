package systems

import (
	"testing"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/stretchr/testify/require"
)

func TestMovement_WalksTowardDestinationAndArrives(t *testing.T) {
	w := newTestWorld(20, 20)
	u := w.SpawnWorker(core.TeamHuman, 2.5, 2.5)
	OrderMove(u, 10, 2)

	for i := 0; i < 600; i++ {
		RunMovement(w, 1.0/30.0)
		if u.Destination == nil {
			break
		}
	}
	require.Nil(t, u.Destination)
	require.InDelta(t, 10.5, u.X, 0.6)
	require.InDelta(t, 2.5, u.Y, 0.6)
}

func TestMovement_FacingAngleUpdates(t *testing.T) {
	w := newTestWorld(10, 10)
	u := w.SpawnWorker(core.TeamHuman, 1.5, 1.5)
	OrderMove(u, 8, 1)
	RunMovement(w, 1.0/30.0)
	require.InDelta(t, 0, u.Angle, 5) // moving in +X, roughly 0 degrees facing
}

func TestMovement_StuckUnitUnsticksAndResetsTimer(t *testing.T) {
	w := newTestWorld(10, 10)
	u := w.SpawnWorker(core.TeamHuman, 1, 1)
	u.Path = []core.PathPoint{{X: 5, Y: 5}}
	u.Destination = &[2]float64{8, 8}
	u.HasStuckMark = true
	u.LastStuckX, u.LastStuckY = u.X, u.Y
	u.StuckTimer = stuckThreshold

	updateStuck(w, u, 0)
	require.Nil(t, u.Path, "unsticking must clear the stale path")
	require.Equal(t, 0.0, u.StuckTimer)
	require.True(t, w.Map.IsWalkable(int(u.X), int(u.Y)))
}

func TestMovement_MovingUnitDoesNotTriggerStuck(t *testing.T) {
	w := newTestWorld(10, 10)
	u := w.SpawnWorker(core.TeamHuman, 1, 1)
	u.Destination = &[2]float64{8, 1}
	for i := 0; i < 300; i++ {
		RunMovement(w, 1.0/30.0)
	}
	require.Less(t, u.StuckTimer, stuckThreshold)
}

func TestMovement_IdleUnitResetsStuckTimer(t *testing.T) {
	w := newTestWorld(10, 10)
	u := w.SpawnWorker(core.TeamHuman, 1, 1)
	u.StuckTimer = 10
	u.HasStuckMark = true
	updateStuck(w, u, 1.0)
	require.Equal(t, 0.0, u.StuckTimer)
	require.False(t, u.HasStuckMark)
}
