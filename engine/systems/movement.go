// Package systems holds the six per-tick simulation systems plus the AI
// controller. The top-level loop runs them in a fixed order every tick:
// movement, combat, resources, production, building placement, fog of war,
// then the AI.
package systems

import (
	"math"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/pathfind"
)

const (
	arrivalThreshold  = 0.5
	stuckThreshold    = 16.0
	stuckMoveDistance = 0.3
	unstickRadiusMax  = 4
)

// RunMovement advances every live unit's position along its path, requests
// new paths when needed, and runs stuck detection.
func RunMovement(w *core.World, dt float64) {
	for _, u := range w.Units(0) {
		stepUnit(w, u, dt)
		updateStuck(w, u, dt)
	}
}

func stepUnit(w *core.World, u *core.Unit, dt float64) {
	if len(u.Path) == 0 {
		if u.Destination == nil {
			return
		}
		start := pathfind.Point{X: int(u.X), Y: int(u.Y)}
		goal := pathfind.Point{X: int(u.Destination[0]), Y: int(u.Destination[1])}
		path := pathfind.FindPath(w.Map, start, goal)
		if len(path) == 0 {
			u.Destination = nil
			return
		}
		u.Path = toCorePath(path)
	}

	head := u.Path[0]
	if !w.Map.IsWalkable(head.X, head.Y) {
		// Path invalidated; drop it and recompute next tick.
		u.Path = nil
		return
	}

	tx, ty := float64(head.X)+0.5, float64(head.Y)+0.5
	dx := tx - u.X
	dy := ty - u.Y
	dist := math.Hypot(dx, dy)
	if dist <= arrivalThreshold {
		u.Path = u.Path[1:]
		if len(u.Path) == 0 {
			u.Destination = nil
		}
		return
	}

	step := u.Speed * dt
	if step > dist {
		step = dist
	}
	u.X += dx / dist * step
	u.Y += dy / dist * step
	u.Angle = math.Atan2(-dy, dx) * 180 / math.Pi
}

func toCorePath(p []pathfind.Point) []core.PathPoint {
	out := make([]core.PathPoint, len(p))
	for i, pt := range p {
		out[i] = core.PathPoint{X: pt.X, Y: pt.Y}
	}
	return out
}

// OrderMove assigns a new destination to a unit, clearing any stale path.
func OrderMove(u *core.Unit, x, y float64) {
	u.Destination = &[2]float64{x, y}
	u.Path = nil
}

func updateStuck(w *core.World, u *core.Unit, dt float64) {
	if u.Destination == nil && len(u.Path) == 0 {
		u.StuckTimer = 0
		u.HasStuckMark = false
		return
	}
	if !u.HasStuckMark {
		u.LastStuckX, u.LastStuckY = u.X, u.Y
		u.HasStuckMark = true
		u.StuckTimer = 0
		return
	}
	moved := math.Hypot(u.X-u.LastStuckX, u.Y-u.LastStuckY)
	if moved >= stuckMoveDistance {
		u.LastStuckX, u.LastStuckY = u.X, u.Y
		u.StuckTimer = 0
		return
	}
	u.StuckTimer += dt
	if u.StuckTimer >= stuckThreshold {
		unstick(w, u)
		u.StuckTimer = 0
		u.LastStuckX, u.LastStuckY = u.X, u.Y
	}
}

// unstick teleports a unit to the nearest walkable, unoccupied tile within
// radius 4, clearing its path.
func unstick(w *core.World, u *core.Unit) {
	cx, cy := int(u.X), int(u.Y)
	for radius := 0; radius <= unstickRadiusMax; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if radius > 0 && abs(dx) != radius && abs(dy) != radius {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if !w.Map.IsWalkable(nx, ny) {
					continue
				}
				if occupiedNear(w, u, float64(nx)+0.5, float64(ny)+0.5) {
					continue
				}
				u.X = float64(nx) + 0.5
				u.Y = float64(ny) + 0.5
				u.Path = nil
				return
			}
		}
	}
}

func occupiedNear(w *core.World, self *core.Unit, x, y float64) bool {
	for _, other := range w.Units(0) {
		if other.ID() == self.ID() {
			continue
		}
		dx := other.X - x
		dy := other.Y - y
		if dx*dx+dy*dy < 1.0 {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
