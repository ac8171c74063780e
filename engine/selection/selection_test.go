package selection

import (
	"testing"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/stretchr/testify/require"
)

func testWorld() *core.World {
	m := maplib.NewGameMap(20, 20)
	data := core.DefaultGameData()
	bus := core.NewEventBus(false)
	rng := core.NewRNG(1)
	return core.NewWorld(m, data, rng, bus, 0)
}

func TestSelection_DragBelowThresholdIsClick(t *testing.T) {
	m := NewManager()
	m.DragStart(5, 5)
	m.DragUpdate(5.1, 5.1)
	require.False(t, m.Dragging())
}

func TestSelection_DragAboveThresholdCrossesIntoDrag(t *testing.T) {
	m := NewManager()
	m.DragStart(5, 5)
	m.DragUpdate(7, 7)
	require.True(t, m.Dragging())
}

// TestSelection_RoundTripRectangleIsIdempotent checks that dragging
// the same rectangle twice in a row yields identical selection sets.
func TestSelection_RoundTripRectangleIsIdempotent(t *testing.T) {
	w := testWorld()
	w.SpawnWorker(core.TeamHuman, 2, 2)
	w.SpawnWorker(core.TeamHuman, 3, 3)
	w.SpawnWorker(core.TeamHuman, 15, 15) // outside the rectangle
	w.SpawnWorker(core.TeamOpponent, 2, 2) // wrong team, same position

	m := NewManager()
	m.DragStart(0, 0)
	m.DragUpdate(5, 5)
	first := m.DragEnd(w, core.TeamHuman, 5, 5)
	require.Len(t, first, 2)

	m.DragStart(0, 0)
	m.DragUpdate(5, 5)
	second := m.DragEnd(w, core.TeamHuman, 5, 5)

	require.ElementsMatch(t, first, second)
}

func TestSelection_DragEndNoopWhenNotDragging(t *testing.T) {
	w := testWorld()
	w.SpawnWorker(core.TeamHuman, 2, 2)
	m := NewManager()
	m.Set(1)

	result := m.DragEnd(w, core.TeamHuman, 10, 10)
	require.Nil(t, result)
	require.True(t, m.Selected[1])
}

func TestSelection_PickAtReturnsNearestWithinRadius(t *testing.T) {
	w := testWorld()
	near := w.SpawnWorker(core.TeamHuman, 5, 5)
	far := w.SpawnWorker(core.TeamHuman, 5, 8)

	got := PickAt(w, 5.4, 5.4)
	require.NotNil(t, got)
	require.Equal(t, near.ID(), got.ID())
	require.NotEqual(t, far.ID(), got.ID())
}

func TestSelection_PickAtReturnsNilWhenNothingInRange(t *testing.T) {
	w := testWorld()
	w.SpawnWorker(core.TeamHuman, 5, 5)
	require.Nil(t, PickAt(w, 15, 15))
}

func TestSelection_GroupDestinationsAssignsDistinctWalkableTiles(t *testing.T) {
	w := testWorld()
	units := []*core.Unit{
		w.SpawnWorker(core.TeamHuman, 1, 1),
		w.SpawnWorker(core.TeamHuman, 1, 2),
		w.SpawnWorker(core.TeamHuman, 1, 3),
	}
	rng := core.NewRNG(7)

	dest := GroupDestinations(w, units, 10, 10, rng)
	require.Len(t, dest, 3)

	seenTiles := make(map[[2]int]bool)
	for _, u := range units {
		d, ok := dest[u.ID()]
		require.True(t, ok)
		tile := [2]int{int(d[0]), int(d[1])}
		require.False(t, seenTiles[tile], "expected distinct tiles, got duplicate %v", tile)
		seenTiles[tile] = true
		require.True(t, w.Map.IsWalkable(tile[0], tile[1]))
	}
}

func TestSelection_GroupDestinationsEmptyUnitsReturnsEmptyMap(t *testing.T) {
	w := testWorld()
	rng := core.NewRNG(1)
	dest := GroupDestinations(w, nil, 5, 5, rng)
	require.Empty(t, dest)
}
