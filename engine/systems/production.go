package systems

import "github.com/1siamBot/microcraft/engine/core"

// WorkerNames and SoldierRanks are the name/rank pools UnitReady events
// draw from.
var WorkerNames = []string{
	"Max", "Tom", "Ben", "Sam", "Joe", "Dan", "Jim", "Bob", "Tim", "Leo",
	"Jack", "Mike", "Nick", "Paul", "Rick", "Zack", "Finn", "Cole", "Luke", "Ryan",
	"Emma", "Anna", "Lisa", "Sara", "Kate", "Jane", "Amy", "Meg", "Eve", "Lily",
}

var SoldierRanks = []string{
	"Gefreiter", "Obergefreiter", "Hauptgefreiter", "Stabsgefreiter",
	"Unteroffizier", "Stabsunteroffizier", "Feldwebel", "Oberfeldwebel",
}

// RunProduction drains each building's production queue: pay on the first
// tick of an item, advance progress, spawn the unit on completion.
func RunProduction(w *core.World, dt float64) {
	for _, b := range w.Buildings(0) {
		processProduction(w, b, dt)
	}
}

func processProduction(w *core.World, b *core.Building, dt float64) {
	kind, ok := b.CurrentProduction()
	if !ok {
		b.WaitingForMinerals = false
		return
	}

	if b.ProductionProgress == 0 {
		cost := w.Data.UnitCost(kind)
		if !w.SpendMinerals(b.TeamID(), cost) {
			b.WaitingForMinerals = true
			if w.Bus != nil {
				w.Bus.Publish(core.Event{Type: core.EvtInsufficientMinerals, Payload: core.InsufficientMineralsPayload{
					Team: b.TeamID(), Need: cost, Have: w.TeamMinerals[b.TeamID()],
				}})
			}
			return
		}
		b.WaitingForMinerals = false
		if w.Bus != nil {
			w.Bus.Publish(core.Event{Type: core.EvtProductionStarted, Payload: core.ProductionStartedPayload{
				BuildingID: b.ID(), Kind: kind,
			}})
		}
	}

	buildTime := w.Data.UnitBuildTime(kind)
	if buildTime <= 0 {
		buildTime = 1
	}
	b.ProductionProgress += dt / buildTime
	if b.ProductionProgress < 1 {
		return
	}

	b.CompleteProduction()
	spawnX, spawnY := spawnPoint(w, b)

	var newUnit *core.Unit
	if kind == core.KindSoldier {
		newUnit = w.SpawnSoldier(b.TeamID(), spawnX, spawnY)
	} else {
		newUnit = w.SpawnWorker(b.TeamID(), spawnX, spawnY)
	}

	if w.Bus != nil {
		w.Bus.Publish(core.Event{Type: core.EvtProductionCompleted, Payload: core.ProductionCompletedPayload{
			BuildingID: b.ID(), Kind: kind, NewUnitID: newUnit.ID(),
		}})
	}

	name := w.RNG.Pick(WorkerNames)
	rank := ""
	if kind == core.KindSoldier {
		rank = w.RNG.Pick(SoldierRanks)
	}
	if w.Bus != nil {
		w.Bus.Publish(core.Event{Type: core.EvtUnitReady, Payload: core.UnitReadyPayload{
			UnitID: newUnit.ID(), Kind: kind, Name: name, Rank: rank,
		}})
	}

	if b.RallyPoint != nil {
		newUnit.Destination = &[2]float64{b.RallyPoint[0], b.RallyPoint[1]}
	}

	if kind == core.KindWorker {
		if patch := w.NearestMineral(newUnit.X, newUnit.Y); patch != nil {
			id := patch.ID
			newUnit.GatherTarget = &id
			newUnit.WState = core.WorkerMovingToMineral
			newUnit.Destination = &[2]float64{patch.X, patch.Y}
		}
	}
}

// spawnPoint picks where a finished unit appears: just below the building
// with a small jitter, nudged to the nearest walkable tile when the first
// choice lands on rock.
func spawnPoint(w *core.World, b *core.Building) (float64, float64) {
	x := b.X + w.RNG.Uniform(-1, 1)
	y := b.Y + 2
	if w.Map.IsWalkable(int(x), int(y)) {
		return x, y
	}
	cx, cy := int(x), int(y)
	for radius := 1; radius <= 3; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				if w.Map.IsWalkable(cx+dx, cy+dy) {
					return float64(cx+dx) + 0.5, float64(cy+dy) + 0.5
				}
			}
		}
	}
	return b.X, b.Y
}
