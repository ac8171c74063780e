// Package selection tracks the player's current unit selection and the
// drag-rectangle gesture used to build it, plus the spiral fan-out that
// spreads a group move order across nearby tiles.
package selection

import (
	"sort"

	"github.com/1siamBot/microcraft/engine/core"
)

// DragThreshold is the cumulative pointer displacement, in tiles, past
// which a mouse-down/mouse-up gesture is treated as a drag rather than a
// click.
const DragThreshold = 0.5

// ClickRadius is how close a click must land to an entity's position to
// select it directly.
const ClickRadius = 1.5

// Manager owns the set of currently selected entity IDs and in-progress
// drag-rectangle state for one player.
type Manager struct {
	Selected map[core.EntityID]bool

	dragging    bool
	dragStartX  float64
	dragStartY  float64
}

// NewManager creates an empty selection.
func NewManager() *Manager {
	return &Manager{Selected: make(map[core.EntityID]bool)}
}

// IDs returns the selected entity IDs in ascending ID order, so every
// caller iterating a selection does so deterministically.
func (m *Manager) IDs() []core.EntityID {
	out := make([]core.EntityID, 0, len(m.Selected))
	for id := range m.Selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear empties the current selection.
func (m *Manager) Clear() {
	m.Selected = make(map[core.EntityID]bool)
}

// Set replaces the selection with a single entity.
func (m *Manager) Set(id core.EntityID) {
	m.Selected = map[core.EntityID]bool{id: true}
}

// DragStart records the world-space position a drag gesture began at.
func (m *Manager) DragStart(x, y float64) {
	m.dragStartX, m.dragStartY = x, y
	m.dragging = false
}

// DragUpdate marks the gesture as a drag once cumulative displacement from
// the start exceeds DragThreshold tiles.
func (m *Manager) DragUpdate(x, y float64) {
	dx := x - m.dragStartX
	dy := y - m.dragStartY
	if dx*dx+dy*dy > DragThreshold*DragThreshold {
		m.dragging = true
	}
}

// Dragging reports whether the in-progress gesture has crossed the drag
// threshold.
func (m *Manager) Dragging() bool { return m.dragging }

// DragEnd finalizes a drag-rectangle selection at (x,y): every living
// own-team unit (not buildings) whose position falls within the
// axis-aligned rectangle defined by the drag start and this point is
// selected, replacing the prior selection. Returns the resulting ID set.
// If the gesture never crossed the drag threshold, the selection is left
// untouched and the caller should treat this as a click instead.
func (m *Manager) DragEnd(w *core.World, team core.Team, x, y float64) []core.EntityID {
	if !m.dragging {
		m.dragging = false
		return nil
	}
	m.dragging = false

	x1, x2 := m.dragStartX, x
	y1, y2 := m.dragStartY, y
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	m.Selected = make(map[core.EntityID]bool)
	for _, u := range w.Units(team) {
		if u.X >= x1 && u.X <= x2 && u.Y >= y1 && u.Y <= y2 {
			m.Selected[u.ID()] = true
		}
	}
	return m.IDs()
}

// PickAt returns the nearest live entity within ClickRadius of (x,y), or
// nil. Used to resolve a click (no-drag) against the world.
func PickAt(w *core.World, x, y float64) core.Entity {
	var best core.Entity
	bestDist := -1.0
	for _, e := range w.AllEntities() {
		ex, ey := e.Pos()
		dx := ex - x
		dy := ey - y
		d := dx*dx + dy*dy
		if d > ClickRadius*ClickRadius {
			continue
		}
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// GroupDestinations computes one destination per unit in units, walking a
// spiral of integer tile offsets out from the target tile and assigning
// each unit the next unoccupied, walkable tile, with a small uniform
// jitter in [-0.3, 0.3] within the tile so units don't stack exactly.
// rng supplies the jitter draws.
func GroupDestinations(w *core.World, units []*core.Unit, targetX, targetY float64, rng *core.RNG) map[core.EntityID][2]float64 {
	out := make(map[core.EntityID][2]float64, len(units))
	if len(units) == 0 {
		return out
	}

	tx, ty := int(targetX), int(targetY)
	occupied := make(map[[2]int]bool)

	// maxOffsets covers a spiral large enough to reach every map tile; if
	// even that yields no free walkable tile the unit falls back to the
	// target tile itself.
	maxOffsets := w.Map.Width * w.Map.Height * 4
	offsets := spiralOffsets(len(units) + 8)
	next := 0
	for _, u := range units {
		tile := [2]int{tx, ty}
		for next < maxOffsets {
			if next >= len(offsets) {
				offsets = spiralOffsets(len(offsets) * 2)
			}
			off := offsets[next]
			next++
			cand := [2]int{tx + off[0], ty + off[1]}
			if !w.Map.IsWalkable(cand[0], cand[1]) {
				continue
			}
			if occupied[cand] {
				continue
			}
			tile = cand
			break
		}
		occupied[tile] = true
		jx, jy := 0.0, 0.0
		if rng != nil {
			jx = rng.Uniform(-0.3, 0.3)
			jy = rng.Uniform(-0.3, 0.3)
		}
		out[u.ID()] = [2]float64{float64(tile[0]) + 0.5 + jx, float64(tile[1]) + 0.5 + jy}
	}
	return out
}

// spiralOffsets returns at least n integer (dx,dy) offsets walking outward
// from the origin in a square spiral: center first, then ring 1, ring 2,
// and so on.
func spiralOffsets(n int) [][2]int {
	out := [][2]int{{0, 0}}
	for radius := 1; len(out) < n; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				out = append(out, [2]int{dx, dy})
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
