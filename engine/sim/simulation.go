// Package sim wires the world, event bus, pathfinder-driven systems, and AI
// controller into a fixed-timestep loop with an accumulator-based frame
// driver on top.
package sim

import (
	"sort"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/1siamBot/microcraft/engine/systems"
)

// TickRate is the fixed simulation rate in Hz.
const TickRate = 30.0

// FixedDt is the fixed per-tick delta in seconds.
const FixedDt = 1.0 / TickRate

// MaxFrameTime caps a single real-time frame so a stall (e.g. a debugger
// pause) can't force a spiral of catch-up ticks.
const MaxFrameTime = 0.25

// Simulation owns one game's World plus the per-system bookkeeping that
// doesn't belong on the world itself (combat cooldown alerts, resource
// gather timers, build timers, the AI controller) and drives them through
// the fixed tick order.
type Simulation struct {
	World *World

	combat    *systems.CombatState
	resources *systems.ResourceState
	building  *systems.BuildState
	ai        *systems.AIController

	accumulator float64
}

// World is a thin alias so callers importing engine/sim don't also need to
// import engine/core for the container type name.
type World = core.World

// New constructs a Simulation over a freshly built World.
func New(m *maplib.GameMap, data *core.GameData, seed int64, debugEvents bool) *Simulation {
	bus := core.NewEventBus(debugEvents)
	rng := core.NewRNG(seed)
	w := core.NewWorld(m, data, rng, bus, 0)
	return &Simulation{
		World:     w,
		combat:    systems.NewCombatState(),
		resources: systems.NewResourceState(),
		building:  systems.NewBuildState(),
		ai:        systems.NewAIController(core.TeamOpponent),
	}
}

// NewFromScenario builds a Simulation from a parsed map and scenario,
// spawning starting bases, workers, and mineral patches. Teams are spawned
// in ascending key order so entity IDs come out identical across runs.
func NewFromScenario(pm *maplib.ParsedMap, sc *maplib.Scenario, data *core.GameData, seed int64, debugEvents bool) *Simulation {
	s := New(pm.Map, data, seed, debugEvents)
	s.World.TeamMinerals[core.TeamHuman] = sc.StartingMinerals
	s.World.TeamMinerals[core.TeamOpponent] = sc.StartingMinerals

	for _, p := range sc.MineralPatches {
		s.World.AddMineralPatch(p.Pos[0], p.Pos[1], p.Amount)
	}

	keys := make([]string, 0, len(sc.Teams))
	for key := range sc.Teams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		teamNum, err := maplib.ParseTeamKey(key)
		if err != nil {
			continue
		}
		ts := sc.Teams[key]
		team := core.Team(teamNum)
		s.World.SpawnBase(team, ts.BasePos[0], ts.BasePos[1])
		for i := 0; i < sc.StartingWorkers; i++ {
			ox := ts.BasePos[0] + float64(i%3) - 1
			oy := ts.BasePos[1] + 2 + float64(i/3)
			w := s.World.SpawnWorker(team, ox, oy)
			if patch := s.World.NearestMineral(w.X, w.Y); patch != nil {
				id := patch.ID
				w.GatherTarget = &id
				w.WState = core.WorkerMovingToMineral
			}
		}
	}
	return s
}

// Bus returns the simulation's event bus, for subscribers (renderer,
// audio, diagnostics) to attach to.
func (s *Simulation) Bus() *core.EventBus { return s.World.Bus }

// Advance accumulates a real-time frame delta and runs as many fixed ticks
// as the accumulator holds. frameTime is clamped to MaxFrameTime before
// accumulating.
func (s *Simulation) Advance(frameTime float64) {
	if frameTime > MaxFrameTime {
		frameTime = MaxFrameTime
	}
	s.accumulator += frameTime
	for s.accumulator >= FixedDt {
		s.Tick(FixedDt)
		s.accumulator -= FixedDt
	}
}

// Tick runs exactly one fixed-timestep simulation step: increment game
// time; if the game is already over, return without running any system
// this tick; otherwise run every system in pipeline order, purge dead
// entities, then evaluate victory.
func (s *Simulation) Tick(dt float64) {
	w := s.World
	w.GameTime += dt
	if w.GameOver {
		return
	}

	systems.RunMovement(w, dt)
	systems.RunCombat(w, s.combat, dt)
	systems.RunResources(w, s.resources, dt)
	systems.RunProduction(w, dt)
	systems.RunBuildingPlacement(w, s.building, dt)
	systems.RunFogOfWar(w)
	systems.RunAI(w, s.ai, dt)

	w.Purge()
	w.CheckVictory()
}
