package pathfind

import (
	"testing"

	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/stretchr/testify/require"
)

func allWalkable(w, h int) *maplib.GameMap {
	m := maplib.NewGameMap(w, h)
	return m
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	m := allWalkable(10, 10)
	path := FindPath(m, Point{2, 2}, Point{2, 2})
	require.LessOrEqual(t, len(path), 1)
}

func TestFindPath_StraightLine(t *testing.T) {
	m := allWalkable(10, 10)
	path := FindPath(m, Point{0, 0}, Point{5, 0})
	require.NotEmpty(t, path)
	require.Equal(t, Point{5, 0}, path[len(path)-1])
	require.Len(t, path, 5)
}

func TestFindPath_AroundWall(t *testing.T) {
	m := allWalkable(10, 10)
	for y := 0; y <= 7; y++ {
		m.SetPassable(5, y, false)
	}
	path := FindPath(m, Point{2, 4}, Point{8, 4})
	require.NotEmpty(t, path)
	require.Equal(t, Point{8, 4}, path[len(path)-1])
	for _, p := range path {
		if p.X == 5 {
			require.Truef(t, p.Y == 8 || p.Y == 9, "path crossed the wall at an unexpected gap: %+v", p)
		}
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	m := maplib.NewGameMap(5, 5)
	for y := 0; y < 5; y++ {
		m.SetPassable(2, y, false)
	}
	path := FindPath(m, Point{0, 0}, Point{4, 4})
	require.Empty(t, path)
}

func TestFindPath_UnwalkableGoalRetargets(t *testing.T) {
	m := allWalkable(10, 10)
	m.SetPassable(5, 5, false)
	path := FindPath(m, Point{0, 0}, Point{5, 5})
	require.NotEmpty(t, path)
	last := path[len(path)-1]
	require.True(t, m.IsWalkable(last.X, last.Y))
}

func TestFindPath_UnreachableUnwalkableGoal(t *testing.T) {
	m := maplib.NewGameMap(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.SetPassable(x, y, false)
		}
	}
	m.SetPassable(0, 0, true)
	path := FindPath(m, Point{0, 0}, Point{1, 1})
	require.Empty(t, path)
}

func TestFindPath_DiagonalCornerCuttingPermitted(t *testing.T) {
	m := allWalkable(5, 5)
	m.SetPassable(1, 0, false)
	m.SetPassable(0, 1, false)
	path := FindPath(m, Point{0, 0}, Point{1, 1})
	require.NotEmpty(t, path)
	require.Equal(t, Point{1, 1}, path[0])
}
