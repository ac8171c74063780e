package systems

import "github.com/1siamBot/microcraft/engine/core"

// AIState enumerates the opponent controller's finite-state machine:
// grow the worker line, bank minerals, get a Barracks up, field a small
// army, scout for the enemy base, then commit everything to the raid.
type AIState int

const (
	StateOpening AIState = iota
	StateEconomy
	StateMilitaryPrep
	StateArmyBuild
	StateScouting
	StateRaid
)

func (s AIState) String() string {
	switch s {
	case StateOpening:
		return "OPENING"
	case StateEconomy:
		return "ECONOMY"
	case StateMilitaryPrep:
		return "MILITARY_PREP"
	case StateArmyBuild:
		return "ARMY_BUILD"
	case StateScouting:
		return "SCOUTING"
	case StateRaid:
		return "RAID"
	default:
		return "UNKNOWN"
	}
}

const (
	aiActionCooldown = 2.0
	aiMinWorkers     = 4
	aiTargetWorkers  = 12
	aiScoutArmySize  = 3
	aiReassignPeriod = 16.0
)

// AIController drives the non-human team. One instance per opponent; owned
// and stepped by the top-level Simulation.
type AIController struct {
	Team core.Team

	State      AIState
	StateTimer float64

	lastActionTime   float64
	lastReassignTime float64

	scoutWaypoints [][2]float64

	playerBaseFound bool
	playerBasePos   [2]float64

	reinforcementTarget *[2]float64

	// spottedEnemies is never cleared, even across state transitions out
	// of SCOUTING: once seen, an enemy stays remembered.
	spottedEnemies map[core.EntityID]bool
}

// NewAIController creates a controller for the given (opponent) team.
func NewAIController(team core.Team) *AIController {
	return &AIController{Team: team, spottedEnemies: make(map[core.EntityID]bool)}
}

func (ai *AIController) canAct(w *core.World) bool {
	return w.GameTime-ai.lastActionTime >= aiActionCooldown
}

func (ai *AIController) markActed(w *core.World) {
	ai.lastActionTime = w.GameTime
}

// RunAI advances the controller by dt. Call only for the machine-controlled
// team; the human team never runs a controller.
func RunAI(w *core.World, ai *AIController, dt float64) {
	ai.StateTimer += dt

	if int(ai.StateTimer)%10 == 0 && int(ai.StateTimer) != int(ai.StateTimer-dt) {
		logDecision(w, ai, "status", ai.State.String())
	}

	checkSoldierVision(w, ai)
	assignIdleWorkers(w, ai)

	switch ai.State {
	case StateOpening:
		doOpening(w, ai)
	case StateEconomy:
		doEconomy(w, ai)
	case StateMilitaryPrep:
		doMilitaryPrep(w, ai)
	case StateArmyBuild:
		doArmyBuild(w, ai)
	case StateScouting:
		doScouting(w, ai)
	case StateRaid:
		doRaid(w, ai)
	}

	if w.GameTime-ai.lastReassignTime >= aiReassignPeriod {
		ai.lastReassignTime = w.GameTime
		reassignIdleSoldiers(w, ai)
	}
}

func logDecision(w *core.World, ai *AIController, kind, detail string) {
	if w.Bus != nil {
		w.Bus.Publish(core.Event{Type: core.EvtAIDecision, Payload: core.AIDecisionPayload{
			Team: ai.Team, State: kind, Detail: detail,
		}})
	}
}

func countUnitsOfKind(w *core.World, team core.Team, kind core.Kind) int {
	n := 0
	for _, u := range w.Units(team) {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

func assignIdleWorkers(w *core.World, ai *AIController) {
	for _, u := range w.Units(ai.Team) {
		if u.Kind != core.KindWorker || u.WState != core.WorkerIdle || u.GatherTarget != nil {
			continue
		}
		if patch := w.NearestMineral(u.X, u.Y); patch != nil {
			id := patch.ID
			u.GatherTarget = &id
		}
	}
}

func doOpening(w *core.World, ai *AIController) {
	workers := countUnitsOfKind(w, ai.Team, core.KindWorker)
	if workers >= aiMinWorkers {
		ai.State = StateEconomy
		ai.StateTimer = 0
		return
	}
	if !ai.canAct(w) {
		return
	}
	base := w.Base(ai.Team)
	if base == nil {
		return
	}
	cost := w.Data.UnitCost(core.KindWorker)
	if w.TeamMinerals[ai.Team] < cost || len(base.ProductionQueue) > 0 {
		return
	}
	if base.QueueProduction(core.KindWorker) {
		ai.markActed(w)
	}
}

func doEconomy(w *core.World, ai *AIController) {
	workers := countUnitsOfKind(w, ai.Team, core.KindWorker)
	if workers >= aiTargetWorkers && w.TeamMinerals[ai.Team] >= 150 {
		ai.State = StateMilitaryPrep
		ai.StateTimer = 0
		return
	}
	if !ai.canAct(w) || workers >= aiTargetWorkers {
		return
	}
	base := w.Base(ai.Team)
	if base == nil {
		return
	}
	cost := w.Data.UnitCost(core.KindWorker)
	if w.TeamMinerals[ai.Team] < cost || len(base.ProductionQueue) > 0 {
		return
	}
	if base.QueueProduction(core.KindWorker) {
		ai.markActed(w)
	}
}

func hasBarracks(w *core.World, team core.Team) bool {
	for _, b := range w.Buildings(team) {
		if b.Kind == core.KindBarracks {
			return true
		}
	}
	return false
}

func doMilitaryPrep(w *core.World, ai *AIController) {
	if hasBarracks(w, ai.Team) {
		ai.State = StateArmyBuild
		ai.StateTimer = 0
		return
	}
	if !ai.canAct(w) {
		return
	}
	base := w.Base(ai.Team)
	if base == nil {
		return
	}
	for _, u := range w.Units(ai.Team) {
		if u.Kind != core.KindWorker || u.BuildTarget != nil {
			continue
		}
		for attempt := 0; attempt < 20; attempt++ {
			bx := int(base.X) + w.RNG.Intn(13) - 6
			by := int(base.Y) + w.RNG.Intn(13) - 6
			if !w.Map.IsBuildable(bx, by, 2) {
				continue
			}
			if entityWithin(w, float64(bx), float64(by), 2.0) {
				continue
			}
			u.BuildTarget = &core.BuildTarget{Kind: core.KindBarracks, X: float64(bx), Y: float64(by)}
			u.GatherTarget = nil
			u.WState = core.WorkerBuilding
			ai.markActed(w)
			return
		}
	}
}

func entityWithin(w *core.World, x, y, rangeLimit float64) bool {
	for _, e := range w.AllEntities() {
		ex, ey := e.Pos()
		dx := ex - x
		dy := ey - y
		if dx*dx+dy*dy < rangeLimit*rangeLimit {
			return true
		}
	}
	return false
}

func doArmyBuild(w *core.World, ai *AIController) {
	soldiers := countUnitsOfKind(w, ai.Team, core.KindSoldier)
	if soldiers >= aiScoutArmySize {
		ai.State = StateScouting
		ai.StateTimer = 0
		return
	}
	if !ai.canAct(w) {
		return
	}
	cost := w.Data.UnitCost(core.KindSoldier)
	if w.TeamMinerals[ai.Team] < cost {
		return
	}
	for _, b := range w.Buildings(ai.Team) {
		if b.Kind != core.KindBarracks {
			continue
		}
		if len(b.ProductionQueue) >= 3 {
			continue
		}
		if b.QueueProduction(core.KindSoldier) {
			ai.markActed(w)
			return
		}
	}
}

func doScouting(w *core.World, ai *AIController) {
	if ai.playerBaseFound {
		ai.State = StateRaid
		ai.StateTimer = 0
		return
	}

	if ai.canAct(w) {
		cost := w.Data.UnitCost(core.KindSoldier)
		if w.TeamMinerals[ai.Team] >= cost {
			for _, b := range w.Buildings(ai.Team) {
				if b.Kind != core.KindBarracks {
					continue
				}
				if len(b.ProductionQueue) < 2 && b.QueueProduction(core.KindSoldier) {
					ai.markActed(w)
					break
				}
			}
		}
	}

	if len(ai.scoutWaypoints) == 0 {
		for i := 0; i < 12; i++ {
			x := w.RNG.Intn(w.Map.Width-10) + 5
			y := w.RNG.Intn(w.Map.Height-10) + 5
			ai.scoutWaypoints = append(ai.scoutWaypoints, [2]float64{float64(x), float64(y)})
		}
	}

	if ai.reinforcementTarget != nil {
		sent := 0
		for _, u := range w.Units(ai.Team) {
			if sent >= 2 {
				break
			}
			if u.Kind == core.KindSoldier && u.Destination == nil && u.Target == nil {
				u.Destination = &[2]float64{ai.reinforcementTarget[0], ai.reinforcementTarget[1]}
				sent++
			}
		}
		ai.reinforcementTarget = nil
	}

	for _, u := range w.Units(ai.Team) {
		if u.Kind != core.KindSoldier || u.Destination != nil || u.Target != nil {
			continue
		}
		if len(ai.scoutWaypoints) == 0 {
			break
		}
		wp := ai.scoutWaypoints[0]
		ai.scoutWaypoints = append(ai.scoutWaypoints[1:], wp)
		u.Destination = &[2]float64{wp[0], wp[1]}
	}
}

func doRaid(w *core.World, ai *AIController) {
	if !ai.playerBaseFound {
		base := w.Base(core.OtherTeam(ai.Team))
		if base != nil {
			ai.playerBaseFound = true
			ai.playerBasePos = [2]float64{base.X, base.Y}
		} else {
			return
		}
	}
	base := w.Base(core.OtherTeam(ai.Team))
	for _, u := range w.Units(ai.Team) {
		if u.Kind != core.KindSoldier {
			continue
		}
		needsOrder := u.Target == nil
		if u.Destination != nil && (u.Destination[0] != ai.playerBasePos[0] || u.Destination[1] != ai.playerBasePos[1]) {
			needsOrder = true
		}
		if !needsOrder {
			continue
		}
		u.Destination = &[2]float64{ai.playerBasePos[0], ai.playerBasePos[1]}
		if base != nil {
			id := base.ID()
			u.Target = &id
		}
	}
}

func checkSoldierVision(w *core.World, ai *AIController) {
	for _, u := range w.Units(ai.Team) {
		if u.Kind != core.KindSoldier {
			continue
		}
		for _, e := range w.AllEntities() {
			if e.TeamID() == ai.Team || !e.Alive() {
				continue
			}
			ex, ey := e.Pos()
			if u.DistanceTo(ex, ey) > float64(u.Vision) {
				continue
			}
			if ai.spottedEnemies[e.ID()] {
				continue
			}
			ai.spottedEnemies[e.ID()] = true

			if b, ok := e.(*core.Building); ok && b.Kind == core.KindBase {
				ai.playerBaseFound = true
				ai.playerBasePos = [2]float64{ex, ey}
				logDecision(w, ai, "spotted_base", "enemy base located")
				continue
			}

			id := e.ID()
			u.Target = &id
			u.Destination = &[2]float64{ex, ey}
			if ai.reinforcementTarget == nil {
				ai.reinforcementTarget = &[2]float64{ex, ey}
			}
		}
	}
}

func reassignIdleSoldiers(w *core.World, ai *AIController) {
	for _, u := range w.Units(ai.Team) {
		if u.Kind != core.KindSoldier {
			continue
		}
		if u.Target != nil && !targetAlive(w, *u.Target) {
			u.Target = nil
		}
		if u.Destination != nil || u.Target != nil {
			continue
		}
		switch ai.State {
		case StateRaid:
			if ai.playerBaseFound {
				u.Destination = &[2]float64{ai.playerBasePos[0], ai.playerBasePos[1]}
			}
		case StateScouting:
			if len(ai.scoutWaypoints) > 0 {
				wp := ai.scoutWaypoints[0]
				ai.scoutWaypoints = append(ai.scoutWaypoints[1:], wp)
				u.Destination = &[2]float64{wp[0], wp[1]}
			}
		default:
			if id := findNearestEnemy(w, u, float64(u.Vision)*3); id != nil {
				u.Target = id
			}
		}
	}
}
