// Package command translates a resolved click/selection intent into unit
// order mutations: build placement, selection, gather, attack-move, and
// group movement, resolved in that priority order.
package command

import (
	"fmt"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/1siamBot/microcraft/engine/selection"
)

// Kind identifies the order a Dispatch call resolved to.
type Kind int

const (
	KindSelect Kind = iota
	KindMove
	KindGather
	KindAttackMove
	KindBuild
)

// Intent is a single left-click: the clicking team, the world position,
// and (if in build mode) the building kind pending placement. The current
// selection is passed alongside via the selection.Manager.
type Intent struct {
	Team       core.Team
	X, Y       float64
	BuildMode  *core.Kind // non-nil while the player has a building kind armed
}

// Result describes what Dispatch did, for callers that want to react (e.g.
// clear build-mode UI state).
type Result struct {
	Kind         Kind
	ExitBuildMode bool
}

// Dispatch resolves one click against the world and selection manager,
// mutating unit orders in place and publishing a Command event for the
// first affected unit. sel is mutated when the click selects a new entity.
func Dispatch(w *core.World, sel *selection.Manager, in Intent) Result {
	// 1. Build mode: assign the build target to the first selected worker.
	if in.BuildMode != nil {
		for _, id := range in.Selected(sel) {
			u, ok := w.Unit(id)
			if !ok || u.Kind != core.KindWorker {
				continue
			}
			u.BuildTarget = &core.BuildTarget{Kind: *in.BuildMode, X: in.X, Y: in.Y}
			u.GatherTarget = nil
			u.WState = core.WorkerBuilding
			publishCommand(w, u.ID(), fmt.Sprintf("build %s at (%.0f,%.0f)", in.BuildMode.String(), in.X, in.Y))
			return Result{Kind: KindBuild, ExitBuildMode: true}
		}
		return Result{Kind: KindBuild, ExitBuildMode: true}
	}

	// 2. Clicked directly on a living own-team entity: select it.
	if picked := selection.PickAt(w, in.X, in.Y); picked != nil && picked.TeamID() == in.Team {
		sel.Set(picked.ID())
		return Result{Kind: KindSelect}
	}

	if len(sel.Selected) == 0 {
		return Result{}
	}

	// 3a. Exactly one selected worker and the click lands on a non-depleted
	// mineral patch: gather order.
	if ids := in.Selected(sel); len(ids) == 1 {
		if u, ok := w.Unit(ids[0]); ok && u.Kind == core.KindWorker {
			if patch := nearbyMineral(w, in.X, in.Y); patch != nil {
				id := patch.ID
				u.GatherTarget = &id
				u.WState = core.WorkerMovingToMineral
				publishCommand(w, u.ID(), "gather")
				return Result{Kind: KindGather}
			}
		}
	}

	// 3b. Clicked on an enemy entity: every selected soldier attacks it.
	if picked := selection.PickAt(w, in.X, in.Y); picked != nil && picked.TeamID() != in.Team {
		first := true
		for _, id := range in.Selected(sel) {
			u, ok := w.Unit(id)
			if !ok {
				continue
			}
			tx, ty := picked.Pos()
			u.Destination = &[2]float64{tx, ty}
			u.Path = nil
			if u.Kind == core.KindSoldier {
				tid := picked.ID()
				u.Target = &tid
			}
			if first {
				publishCommand(w, u.ID(), "attack-move")
				first = false
			}
		}
		return Result{Kind: KindAttackMove}
	}

	// 3c. Otherwise: fan out group destinations across the selection.
	units := selectedUnits(w, in.Selected(sel))
	dests := selection.GroupDestinations(w, units, in.X, in.Y, w.RNG)
	first := true
	for _, u := range units {
		d, ok := dests[u.ID()]
		if !ok {
			continue
		}
		u.Destination = &[2]float64{d[0], d[1]}
		u.Path = nil
		if first {
			publishCommand(w, u.ID(), "move")
			first = false
		}
	}
	return Result{Kind: KindMove}
}

// RequestProduction queues one unit of the produced kind at the first
// selected living building. Returns false when the selection holds no
// building or the building's queue is full.
func RequestProduction(w *core.World, sel *selection.Manager) bool {
	for _, id := range sel.IDs() {
		b, ok := w.Building(id)
		if !ok || !b.Alive() {
			continue
		}
		kind := core.ProducedKind(b.Kind)
		if !b.QueueProduction(kind) {
			return false
		}
		publishCommand(w, b.ID(), fmt.Sprintf("produce %s", kind))
		return true
	}
	return false
}

// Selected returns the entity IDs a given selection manager currently
// holds. A method on Intent purely for call-site readability at the
// dispatch sites above.
func (in Intent) Selected(sel *selection.Manager) []core.EntityID {
	return sel.IDs()
}

func selectedUnits(w *core.World, ids []core.EntityID) []*core.Unit {
	var out []*core.Unit
	for _, id := range ids {
		if u, ok := w.Unit(id); ok {
			out = append(out, u)
		}
	}
	return out
}

// nearbyMineral returns the nearest non-depleted mineral patch to (x,y) if
// it lies within selection.ClickRadius tiles. Ties break deterministically
// via World.NearestMineral's insertion-ordered scan.
func nearbyMineral(w *core.World, x, y float64) *maplib.MineralPatch {
	p := w.NearestMineral(x, y)
	if p == nil {
		return nil
	}
	dx := p.X - x
	dy := p.Y - y
	if dx*dx+dy*dy > selection.ClickRadius*selection.ClickRadius {
		return nil
	}
	return p
}

func publishCommand(w *core.World, unitID core.EntityID, desc string) {
	if w.Bus != nil {
		w.Bus.Publish(core.Event{Type: core.EvtCommand, Payload: core.CommandPayload{UnitID: unitID, Desc: desc}})
	}
}
