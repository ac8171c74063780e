package systems

import (
	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
)

const (
	gatherTime         = 2.0
	gatherAmount       = 8
	gatherRangeTiles   = 1.5 // radius to start gathering at a patch
	returnRangeSquared = 2.0 // delivery radius is sqrt(2) tiles of the base
)

// ResourceState tracks per-worker gather timers.
type ResourceState struct {
	gatherTimer map[core.EntityID]float64
}

// NewResourceState creates empty bookkeeping.
func NewResourceState() *ResourceState {
	return &ResourceState{gatherTimer: make(map[core.EntityID]float64)}
}

// RunResources drives every live worker through the gather state machine:
// travel to the patch, mine for gatherTime, carry up to gatherAmount back to
// the team base, deliver, repeat while the patch holds out.
func RunResources(w *core.World, rs *ResourceState, dt float64) {
	for _, u := range w.Units(0) {
		if u.Kind != core.KindWorker {
			continue
		}
		processWorker(w, rs, u, dt)
	}
}

func processWorker(w *core.World, rs *ResourceState, u *core.Unit, dt float64) {
	switch u.WState {
	case core.WorkerIdle:
		if u.GatherTarget != nil {
			if patch, ok := w.Minerals[*u.GatherTarget]; ok && !patch.Depleted() {
				u.Destination = &[2]float64{patch.X, patch.Y}
				u.Path = nil
				u.WState = core.WorkerMovingToMineral
				return
			}
			u.GatherTarget = nil
		}
		if u.Carrying > 0 {
			base := w.Base(u.TeamID())
			if base != nil {
				u.Destination = &[2]float64{base.X, base.Y}
				u.Path = nil
			}
			u.WState = core.WorkerReturning
		}

	case core.WorkerMovingToMineral:
		if u.GatherTarget == nil {
			u.WState = core.WorkerIdle
			return
		}
		patch, ok := w.Minerals[*u.GatherTarget]
		if !ok || patch.Depleted() {
			u.GatherTarget = nil
			u.Destination = nil
			u.WState = core.WorkerIdle
			publishMineDepleted(w, patch)
			return
		}
		if u.DistanceTo(patch.X, patch.Y) <= gatherRangeTiles {
			u.WState = core.WorkerGathering
			rs.gatherTimer[u.ID()] = 0
			u.Destination = nil
			if w.Bus != nil {
				w.Bus.Publish(core.Event{Type: core.EvtGatheringStarted, Payload: core.GatheringStartedPayload{
					WorkerID: u.ID(), PatchID: patch.ID,
				}})
			}
		} else if u.Destination == nil && len(u.Path) == 0 {
			u.Destination = &[2]float64{patch.X, patch.Y}
		}

	case core.WorkerGathering:
		if u.GatherTarget == nil {
			u.WState = core.WorkerIdle
			return
		}
		patch, ok := w.Minerals[*u.GatherTarget]
		if !ok || patch.Depleted() {
			u.GatherTarget = nil
			u.WState = core.WorkerIdle
			publishMineDepleted(w, patch)
			return
		}
		rs.gatherTimer[u.ID()] += dt
		if rs.gatherTimer[u.ID()] >= gatherTime {
			taken := patch.Harvest(gatherAmount)
			u.Carrying += taken
			base := w.Base(u.TeamID())
			if base != nil {
				u.Destination = &[2]float64{base.X, base.Y}
				u.Path = nil
			}
			u.WState = core.WorkerReturning
			if patch.Depleted() {
				publishMineDepleted(w, patch)
			}
		}

	case core.WorkerReturning:
		base := w.Base(u.TeamID())
		if base == nil {
			return
		}
		dx := base.X - u.X
		dy := base.Y - u.Y
		if dx*dx+dy*dy <= returnRangeSquared {
			w.AddMinerals(u.TeamID(), u.Carrying)
			if w.Bus != nil {
				w.Bus.Publish(core.Event{Type: core.EvtResourceCollected, Payload: core.ResourceCollectedPayload{
					WorkerID: u.ID(), Team: u.TeamID(), Amount: u.Carrying,
				}})
			}
			u.Carrying = 0
			u.Destination = nil
			u.WState = core.WorkerIdle

			if u.GatherTarget != nil {
				if patch, ok := w.Minerals[*u.GatherTarget]; ok && !patch.Depleted() {
					return // re-enter on next tick via idle->moving_to_mineral
				}
			}
			if u.GatherTarget != nil {
				patch := w.Minerals[*u.GatherTarget]
				u.GatherTarget = nil
				publishMineDepleted(w, patch)
			}
		}
	}
}

func publishMineDepleted(w *core.World, patch *maplib.MineralPatch) {
	if patch == nil || w.Bus == nil {
		return
	}
	w.Bus.Publish(core.Event{Type: core.EvtMineDepleted, Payload: core.MineDepletedPayload{PatchID: patch.ID}})
}
