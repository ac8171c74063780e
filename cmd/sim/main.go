// Command sim runs the simulation core headless: it loads a map and
// scenario, ticks the simulation for a fixed duration, and prints a
// summary. No window, no rendering; useful for AI balancing runs and
// regression checks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/1siamBot/microcraft/engine/sim"
)

func main() {
	mapPath := flag.String("map", "data/maps/skirmish_40x40.csv", "path to a map CSV file")
	scenarioPath := flag.String("scenario", "data/scenarios/skirmish_40x40.json", "path to a scenario JSON file")
	unitsPath := flag.String("units", "data/units.json", "path to the unit stat table")
	buildingsPath := flag.String("buildings", "data/buildings.json", "path to the building stat table")
	seconds := flag.Float64("seconds", 120, "game-time seconds to simulate")
	seed := flag.Int64("seed", 1, "deterministic RNG seed")
	verbose := flag.Bool("v", false, "log every AIDecision and major event")
	flag.Parse()

	s, err := build(*mapPath, *scenarioPath, *unitsPath, *buildingsPath, *seed, *verbose)
	if err != nil {
		log.Fatalf("sim: %v", err)
	}

	ticks := int(*seconds * sim.TickRate)
	for i := 0; i < ticks; i++ {
		s.Tick(sim.FixedDt)
		if s.World.GameOver {
			break
		}
	}

	report(s)
}

func build(mapPath, scenarioPath, unitsPath, buildingsPath string, seed int64, verbose bool) (*sim.Simulation, error) {
	mapFile, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer mapFile.Close()
	pm, err := maplib.LoadMapCSV(mapFile)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}

	scenarioFile, err := os.Open(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer scenarioFile.Close()
	sc, err := maplib.LoadScenario(scenarioFile)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	unitsFile, err := os.Open(unitsPath)
	if err != nil {
		return nil, fmt.Errorf("open units data: %w", err)
	}
	defer unitsFile.Close()
	units, err := core.LoadUnitStats(unitsFile)
	if err != nil {
		return nil, fmt.Errorf("load unit stats: %w", err)
	}

	buildingsFile, err := os.Open(buildingsPath)
	if err != nil {
		return nil, fmt.Errorf("open building data: %w", err)
	}
	defer buildingsFile.Close()
	buildings, err := core.LoadBuildingStats(buildingsFile)
	if err != nil {
		return nil, fmt.Errorf("load building stats: %w", err)
	}

	data := &core.GameData{Units: units, Buildings: buildings}
	s := sim.NewFromScenario(pm, sc, data, seed, false)

	if verbose {
		s.Bus().On(core.EvtAIDecision, func(e core.Event) {
			p := e.Payload.(core.AIDecisionPayload)
			log.Printf("[t=%.1f] team %d AI: %s %s", s.World.GameTime, p.Team, p.State, p.Detail)
		})
		s.Bus().On(core.EvtBuildingPlaced, func(e core.Event) {
			p := e.Payload.(core.BuildingPlacedPayload)
			log.Printf("[t=%.1f] team %d placed %s at (%.0f,%.0f)", s.World.GameTime, p.Team, p.Kind, p.X, p.Y)
		})
		s.Bus().On(core.EvtDeath, func(e core.Event) {
			p := e.Payload.(core.DeathPayload)
			log.Printf("[t=%.1f] team %d lost a %s", s.World.GameTime, p.Team, p.Kind)
		})
	}

	return s, nil
}

func report(s *sim.Simulation) {
	w := s.World
	fmt.Printf("game time: %.1fs\n", w.GameTime)
	if w.GameOver {
		fmt.Printf("winner: team %d (at t=%.1fs)\n", w.Winner, w.GameOverTime)
	} else {
		fmt.Printf("winner: none (simulation time limit reached)\n")
	}
	for _, team := range []core.Team{core.TeamHuman, core.TeamOpponent} {
		workers := 0
		soldiers := 0
		for _, u := range w.Units(team) {
			if u.Kind == core.KindWorker {
				workers++
			} else {
				soldiers++
			}
		}
		buildings := len(w.Buildings(team))
		fmt.Printf("team %d: minerals=%d workers=%d soldiers=%d buildings=%d\n",
			team, w.TeamMinerals[team], workers, soldiers, buildings)
	}
}
