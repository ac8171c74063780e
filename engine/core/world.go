package core

import "github.com/1siamBot/microcraft/engine/maplib"

// World owns all simulation state for one game: the entity table, mineral
// patches, per-team mineral totals, the map, per-team fog grids, game time,
// and terminal flags.
//
// Entities are kept both in a map (O(1) lookup by ID) and in an
// insertion-ordered ID slice. All iteration happens over the slice, never
// over the map directly, so system and query loops see the same order on
// every run.
type World struct {
	entities map[EntityID]Entity
	order    []EntityID
	nextID   EntityID

	Minerals      map[int]*maplib.MineralPatch
	mineralOrder  []int
	nextMineralID int

	TeamMinerals map[Team]int

	Map *maplib.GameMap
	Fog map[Team]*maplib.FogOfWar

	GameTime     float64
	GameOver     bool
	GameOverTime float64
	Winner       Team

	Data *GameData
	RNG  *RNG
	Bus  *EventBus
}

// NewWorld constructs an empty world bound to m, seeded with starting
// minerals for both teams.
func NewWorld(m *maplib.GameMap, data *GameData, rng *RNG, bus *EventBus, startingMinerals int) *World {
	return &World{
		entities:      make(map[EntityID]Entity),
		Minerals:      make(map[int]*maplib.MineralPatch),
		nextMineralID: 1,
		TeamMinerals:  map[Team]int{TeamHuman: startingMinerals, TeamOpponent: startingMinerals},
		Map:           m,
		Fog: map[Team]*maplib.FogOfWar{
			TeamHuman:    maplib.NewFogOfWar(m.Width, m.Height),
			TeamOpponent: maplib.NewFogOfWar(m.Width, m.Height),
		},
		Data: data,
		RNG:  rng,
		Bus:  bus,
	}
}

func (w *World) nextEntityID() EntityID {
	w.nextID++
	return w.nextID
}

// addEntity registers e in both the lookup map and the insertion-ordered
// slice, and publishes Spawn.
func (w *World) addEntity(e Entity) {
	w.entities[e.ID()] = e
	w.order = append(w.order, e.ID())
	x, y := e.Pos()
	if w.Bus != nil {
		w.Bus.Publish(Event{Type: EvtSpawn, Tick: w.tick(), Payload: SpawnPayload{
			EntityID: e.ID(), Kind: e.EntityKind(), Team: e.TeamID(), X: x, Y: y,
		}})
	}
}

func (w *World) tick() uint64 { return uint64(w.GameTime * 30) }

// SpawnWorker creates and registers a new Worker at (x,y) for team.
func (w *World) SpawnWorker(team Team, x, y float64) *Unit {
	stats := w.Data.Units["Worker"]
	u := &Unit{
		id: w.nextEntityID(), team: team, X: x, Y: y,
		HPCur: stats.HP, HPMax: stats.HP, IsAlive: true,
		Kind: KindWorker, Speed: stats.Speed, Vision: stats.Vision,
		CarryCapacity: stats.CarryCapacity,
	}
	w.addEntity(u)
	return u
}

// SpawnSoldier creates and registers a new Soldier at (x,y) for team.
func (w *World) SpawnSoldier(team Team, x, y float64) *Unit {
	stats := w.Data.Units["Soldier"]
	u := &Unit{
		id: w.nextEntityID(), team: team, X: x, Y: y,
		HPCur: stats.HP, HPMax: stats.HP, IsAlive: true,
		Kind: KindSoldier, Speed: stats.Speed, Vision: stats.Vision,
		Damage: stats.Damage, AttackRange: stats.Range, AttackCooldown: stats.Cooldown,
	}
	w.addEntity(u)
	return u
}

// SpawnBase creates and registers a new Base at (x,y) for team.
func (w *World) SpawnBase(team Team, x, y float64) *Building {
	stats := w.Data.Buildings["Base"]
	b := &Building{
		id: w.nextEntityID(), team: team, X: x, Y: y,
		HPCur: stats.HP, HPMax: stats.HP, IsAlive: true,
		Kind: KindBase, Vision: stats.Vision,
	}
	w.addEntity(b)
	return b
}

// SpawnBarracks creates and registers a new Barracks at (x,y) for team.
func (w *World) SpawnBarracks(team Team, x, y float64) *Building {
	stats := w.Data.Buildings["Barracks"]
	b := &Building{
		id: w.nextEntityID(), team: team, X: x, Y: y,
		HPCur: stats.HP, HPMax: stats.HP, IsAlive: true,
		Kind: KindBarracks, Vision: stats.Vision,
	}
	w.addEntity(b)
	return b
}

// AddMineralPatch registers a mineral patch at (x,y) with the given initial
// remaining amount.
func (w *World) AddMineralPatch(x, y float64, amount int) *maplib.MineralPatch {
	p := &maplib.MineralPatch{ID: w.nextMineralID, X: x, Y: y, Remaining: amount}
	w.Minerals[p.ID] = p
	w.mineralOrder = append(w.mineralOrder, p.ID)
	w.nextMineralID++
	return p
}

// Entity looks up a live or dead entity by ID.
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Unit looks up a unit (Worker or Soldier) by ID.
func (w *World) Unit(id EntityID) (*Unit, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	u, ok := e.(*Unit)
	return u, ok
}

// Building looks up a building (Base or Barracks) by ID.
func (w *World) Building(id EntityID) (*Building, bool) {
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	b, ok := e.(*Building)
	return b, ok
}

// Purge removes dead entities from the table once the tick that observed
// their death completes. Returns removed IDs.
func (w *World) Purge() []EntityID {
	var removed []EntityID
	kept := w.order[:0:0]
	for _, id := range w.order {
		e := w.entities[id]
		if e.Alive() {
			kept = append(kept, id)
			continue
		}
		removed = append(removed, id)
		delete(w.entities, id)
	}
	w.order = kept
	return removed
}

// Units returns every live unit, optionally filtered by team (0 = all
// teams), in stable insertion order.
func (w *World) Units(team Team) []*Unit {
	var out []*Unit
	for _, id := range w.order {
		u, ok := w.entities[id].(*Unit)
		if !ok || !u.Alive() {
			continue
		}
		if team != 0 && u.team != team {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Buildings returns every live building, optionally filtered by team (0 =
// all teams), in stable insertion order.
func (w *World) Buildings(team Team) []*Building {
	var out []*Building
	for _, id := range w.order {
		b, ok := w.entities[id].(*Building)
		if !ok || !b.Alive() {
			continue
		}
		if team != 0 && b.team != team {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Base returns a team's living Base, if any.
func (w *World) Base(team Team) *Building {
	for _, id := range w.order {
		b, ok := w.entities[id].(*Building)
		if ok && b.Alive() && b.team == team && b.Kind == KindBase {
			return b
		}
	}
	return nil
}

// AllEntities returns every live entity in stable insertion order.
func (w *World) AllEntities() []Entity {
	var out []Entity
	for _, id := range w.order {
		e := w.entities[id]
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// NearestMineral returns the closest non-depleted mineral patch to (x,y), in
// ascending-ID order on ties (mineralOrder is insertion-ordered so this is
// deterministic).
func (w *World) NearestMineral(x, y float64) *maplib.MineralPatch {
	var best *maplib.MineralPatch
	bestDist := -1.0
	for _, id := range w.mineralOrder {
		p := w.Minerals[id]
		if p.Depleted() {
			continue
		}
		dx := p.X - x
		dy := p.Y - y
		d := dx*dx + dy*dy
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// SpendMinerals deducts amount from team's stockpile if sufficient, leaving
// it unchanged and returning false otherwise; a stockpile can never go
// negative.
func (w *World) SpendMinerals(team Team, amount int) bool {
	if w.TeamMinerals[team] < amount {
		return false
	}
	w.TeamMinerals[team] -= amount
	return true
}

// AddMinerals credits amount to team's stockpile.
func (w *World) AddMinerals(team Team, amount int) {
	w.TeamMinerals[team] += amount
}

// CheckVictory sets GameOver/Winner/GameOverTime the first time either
// team's base is destroyed.
func (w *World) CheckVictory() {
	if w.GameOver {
		return
	}
	b1 := w.Base(TeamHuman)
	b2 := w.Base(TeamOpponent)
	if b1 == nil {
		w.GameOver = true
		w.GameOverTime = w.GameTime
		w.Winner = TeamOpponent
	} else if b2 == nil {
		w.GameOver = true
		w.GameOverTime = w.GameTime
		w.Winner = TeamHuman
	}
}

// OtherTeam returns the opposing team.
func OtherTeam(t Team) Team {
	if t == TeamHuman {
		return TeamOpponent
	}
	return TeamHuman
}
