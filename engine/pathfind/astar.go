// Package pathfind implements the grid A* used by the movement system:
// 8-connected, octile heuristic, with a ring-search fallback when the goal
// tile itself is unwalkable.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/1siamBot/microcraft/engine/maplib"
)

// Point is a single integer grid coordinate.
type Point struct {
	X, Y int
}

var directions = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

const sqrt2 = math.Sqrt2

// node is one open-set entry. seq is a strictly increasing insertion
// counter used purely as a tie-break: with it the priority queue is fully
// ordered even when two nodes share an f-score, so the search expands nodes
// in the same order on every run.
type node struct {
	p   Point
	g   float64
	f   float64
	seq int
}

type nodeHeap []node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func heuristic(a, b Point) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if dx > dy {
		return dx + (sqrt2-1)*dy
	}
	return dy + (sqrt2-1)*dx
}

// FindPath runs A* on the map's walkable grid from start to goal. It returns
// the ordered list of tiles from the first step after start through goal
// (the start tile itself is never included), or an empty slice if
// unreachable. Diagonal movement through a corner touching two impassable
// tiles is permitted.
//
// If goal is unwalkable, the search retargets to the nearest walkable tile
// found by expanding a square ring up to radius 9; if none is found within
// that radius, FindPath returns an empty slice.
func FindPath(m *maplib.GameMap, start, goal Point) []Point {
	if !m.IsWalkable(goal.X, goal.Y) {
		nearest, ok := findNearestWalkable(m, goal)
		if !ok {
			return nil
		}
		goal = nearest
	}
	if start == goal {
		return nil
	}
	if !m.IsWalkable(start.X, start.Y) {
		return nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	seq := 0
	heap.Push(open, node{p: start, g: 0, f: heuristic(start, goal), seq: seq})
	seq++

	gScore := map[Point]float64{start: 0}
	came := map[Point]Point{}
	closed := map[Point]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(node)
		if closed[cur.p] {
			continue
		}
		if cur.p == goal {
			return reconstructPath(came, goal)
		}
		closed[cur.p] = true

		for _, d := range directions {
			np := Point{cur.p.X + d[0], cur.p.Y + d[1]}
			if !m.IsWalkable(np.X, np.Y) {
				continue
			}
			moveCost := 1.0
			if d[0] != 0 && d[1] != 0 {
				moveCost = sqrt2
			}
			tentativeG := gScore[cur.p] + moveCost
			if best, ok := gScore[np]; !ok || tentativeG < best {
				gScore[np] = tentativeG
				came[np] = cur.p
				f := tentativeG + heuristic(np, goal)
				heap.Push(open, node{p: np, g: tentativeG, f: f, seq: seq})
				seq++
			}
		}
	}
	return nil
}

func reconstructPath(came map[Point]Point, goal Point) []Point {
	var rev []Point
	cur := goal
	for {
		rev = append(rev, cur)
		prev, ok := came[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// rev is goal..start; reverse to start..goal, then drop the start tile.
	path := make([]Point, 0, len(rev)-1)
	for i := len(rev) - 2; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

// findNearestWalkable expands a square ring around p, radius 1..9, looking
// for a walkable tile.
func findNearestWalkable(m *maplib.GameMap, p Point) (Point, bool) {
	for radius := 1; radius <= 9; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				np := Point{p.X + dx, p.Y + dy}
				if m.IsWalkable(np.X, np.Y) {
					return np, true
				}
			}
		}
	}
	return Point{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
