package systems

import "github.com/1siamBot/microcraft/engine/core"

const (
	buildArrivalRange     = 2.0
	mineralWarnCooldown   = 10.0
	buildOccupancyRangeSq = 2.0
)

// BuildState tracks per-worker build timers and mineral-warning cooldowns.
type BuildState struct {
	lastMineralWarn map[core.EntityID]float64
	buildTimer      map[core.EntityID]float64
	started         map[core.EntityID]bool
}

// NewBuildState creates empty bookkeeping.
func NewBuildState() *BuildState {
	return &BuildState{
		lastMineralWarn: make(map[core.EntityID]float64),
		buildTimer:      make(map[core.EntityID]float64),
		started:         make(map[core.EntityID]bool),
	}
}

// RunBuildingPlacement advances every worker with a pending build target:
// walk to the site, wait for funds, run the build timer, place the building.
func RunBuildingPlacement(w *core.World, bs *BuildState, dt float64) {
	for _, u := range w.Units(0) {
		if u.Kind != core.KindWorker || u.BuildTarget == nil {
			continue
		}
		processBuild(w, bs, u, dt)
	}
}

func processBuild(w *core.World, bs *BuildState, u *core.Unit, dt float64) {
	bt := u.BuildTarget
	tx, ty := int(bt.X), int(bt.Y)

	if !w.Map.InBounds(tx, ty) || !w.Map.IsBuildable(tx, ty, 2) {
		clearBuild(bs, u)
		return
	}

	if u.DistanceTo(bt.X, bt.Y) > buildArrivalRange {
		u.Destination = &[2]float64{bt.X, bt.Y}
		return
	}
	u.Destination = nil

	cost := w.Data.BuildingCost(bt.Kind)
	if w.TeamMinerals[u.TeamID()] < cost {
		u.WaitingForMinerals = true
		if u.TeamID() == core.TeamHuman {
			last, seen := bs.lastMineralWarn[u.ID()]
			if !seen || w.GameTime-last >= mineralWarnCooldown {
				bs.lastMineralWarn[u.ID()] = w.GameTime
				if w.Bus != nil {
					w.Bus.Publish(core.Event{Type: core.EvtWorkerWaitingForMinerals, Payload: core.WorkerWaitingForMineralsPayload{
						WorkerID: u.ID(),
					}})
				}
			}
		}
		return
	}
	u.WaitingForMinerals = false

	if !bs.started[u.ID()] {
		bs.started[u.ID()] = true
		if w.Bus != nil {
			w.Bus.Publish(core.Event{Type: core.EvtBuildingConstructionStart, Payload: core.BuildingConstructionStartPayload{
				WorkerID: u.ID(), Kind: bt.Kind, X: bt.X, Y: bt.Y,
			}})
		}
	}

	if occupiedByOther(w, u, bt.X, bt.Y) {
		clearBuild(bs, u)
		return
	}

	buildTime := w.Data.BuildingBuildTime(bt.Kind)
	if buildTime <= 0 {
		buildTime = 1
	}
	bs.buildTimer[u.ID()] += dt
	if bs.buildTimer[u.ID()] < buildTime {
		return
	}

	w.SpendMinerals(u.TeamID(), cost)
	var b *core.Building
	if bt.Kind == core.KindBarracks {
		b = w.SpawnBarracks(u.TeamID(), bt.X, bt.Y)
	} else {
		b = w.SpawnBase(u.TeamID(), bt.X, bt.Y)
	}
	if w.Bus != nil {
		w.Bus.Publish(core.Event{Type: core.EvtBuildingPlaced, Payload: core.BuildingPlacedPayload{
			BuildingID: b.ID(), BuilderID: u.ID(), Kind: bt.Kind, Team: u.TeamID(), X: bt.X, Y: bt.Y,
		}})
	}
	clearBuild(bs, u)
}

func clearBuild(bs *BuildState, u *core.Unit) {
	u.BuildTarget = nil
	u.WaitingForMinerals = false
	if u.WState == core.WorkerBuilding {
		u.WState = core.WorkerIdle
	}
	delete(bs.buildTimer, u.ID())
	delete(bs.started, u.ID())
}

func occupiedByOther(w *core.World, self *core.Unit, x, y float64) bool {
	for _, e := range w.AllEntities() {
		if e.ID() == self.ID() {
			continue
		}
		ex, ey := e.Pos()
		dx := ex - x
		dy := ey - y
		if dx*dx+dy*dy < buildOccupancyRangeSq {
			return true
		}
	}
	return false
}
