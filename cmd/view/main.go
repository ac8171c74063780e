// Command view renders a running simulation with ebiten as a flat top-down
// grid. The viewer only reads world state between ticks and never mutates
// simulation state directly except through engine/command.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/1siamBot/microcraft/engine/command"
	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
	"github.com/1siamBot/microcraft/engine/selection"
	"github.com/1siamBot/microcraft/engine/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 1280
	screenHeight = 800
	tileSize     = 18.0
)

// camera is a flat orthographic pan/zoom viewport.
type camera struct {
	offsetX, offsetY float64
	zoom             float64
}

func (c *camera) worldToScreen(wx, wy float64) (float64, float64) {
	return (wx*tileSize-c.offsetX)*c.zoom + screenWidth/2, (wy*tileSize-c.offsetY)*c.zoom + screenHeight/2
}

func (c *camera) screenToWorld(sx, sy int) (float64, float64) {
	return ((float64(sx)-screenWidth/2)/c.zoom + c.offsetX) / tileSize,
		((float64(sy)-screenHeight/2)/c.zoom + c.offsetY) / tileSize
}

type game struct {
	s   *sim.Simulation
	cam *camera
	sel *selection.Manager

	buildMode *core.Kind
	log       []string
}

func newGame(s *sim.Simulation) *game {
	g := &game{s: s, cam: &camera{zoom: 1}, sel: selection.NewManager()}
	g.s.Bus().On(core.EvtUnitReady, func(e core.Event) {
		p := e.Payload.(core.UnitReadyPayload)
		g.note(fmt.Sprintf("%s %s is ready", p.Kind, p.Name))
	})
	g.s.Bus().On(core.EvtBaseUnderAttack, func(e core.Event) {
		g.note("base under attack!")
	})
	g.s.Bus().On(core.EvtBuildingPlaced, func(e core.Event) {
		p := e.Payload.(core.BuildingPlacedPayload)
		g.note(fmt.Sprintf("%s constructed", p.Kind))
	})
	return g
}

func (g *game) note(s string) {
	g.log = append(g.log, s)
	if len(g.log) > 6 {
		g.log = g.log[len(g.log)-6:]
	}
}

func (g *game) Update() error {
	g.handleInput()
	g.s.Advance(1.0 / 60.0)
	return nil
}

func (g *game) handleInput() {
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		g.cam.zoom += wheelY * 0.1
		if g.cam.zoom < 0.25 {
			g.cam.zoom = 0.25
		}
		if g.cam.zoom > 3 {
			g.cam.zoom = 3
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cam.offsetY -= 10
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cam.offsetY += 10
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cam.offsetX -= 10
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cam.offsetX += 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		k := core.KindBarracks
		g.buildMode = &k
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		command.RequestProduction(g.s.World, g.sel)
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := g.cam.screenToWorld(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sel.DragStart(wx, wy)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.sel.DragUpdate(wx, wy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.sel.Dragging() {
			g.sel.DragEnd(g.s.World, core.TeamHuman, wx, wy)
		} else {
			command.Dispatch(g.s.World, g.sel, command.Intent{
				Team: core.TeamHuman, X: wx, Y: wy, BuildMode: g.buildMode,
			})
			g.buildMode = nil
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 24, 20, 255})
	w := g.s.World
	fog := w.Fog[core.TeamHuman]

	for y := 0; y < w.Map.Height; y++ {
		for x := 0; x < w.Map.Width; x++ {
			if !fog.IsExplored(x, y) {
				continue
			}
			sx, sy := g.cam.worldToScreen(float64(x), float64(y))
			size := float32(tileSize * g.cam.zoom)
			c := tileColor(w.Map.IsWalkable(x, y), fog.IsVisible(x, y))
			vector.DrawFilledRect(screen, float32(sx), float32(sy), size, size, c, false)
		}
	}

	for _, p := range w.Minerals {
		if !fog.IsExplored(int(p.X), int(p.Y)) || p.Depleted() {
			continue
		}
		sx, sy := g.cam.worldToScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(6*g.cam.zoom), color.RGBA{80, 160, 255, 255}, false)
	}

	for _, e := range w.AllEntities() {
		ex, ey := e.Pos()
		if !fog.IsVisible(int(ex), int(ey)) && e.TeamID() != core.TeamHuman {
			continue
		}
		sx, sy := g.cam.worldToScreen(ex, ey)
		col := color.RGBA{60, 200, 90, 255}
		if e.TeamID() == core.TeamOpponent {
			col = color.RGBA{220, 70, 60, 255}
		}
		radius := float32(5 * g.cam.zoom)
		if _, isBuilding := e.(*core.Building); isBuilding {
			radius = float32(10 * g.cam.zoom)
		}
		if g.sel.Selected[e.ID()] {
			vector.StrokeCircle(screen, float32(sx), float32(sy), radius+2, 2, color.RGBA{255, 255, 255, 255}, false)
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, col, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t=%.1fs minerals[1]=%d minerals[2]=%d",
		w.GameTime, w.TeamMinerals[core.TeamHuman], w.TeamMinerals[core.TeamOpponent]), 8, 8)
	for i, line := range g.log {
		ebitenutil.DebugPrintAt(screen, line, 8, 24+i*14)
	}
	if w.GameOver {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GAME OVER — winner: team %d", w.Winner), 8, screenHeight-24)
	}
}

func tileColor(walkable, visible bool) color.RGBA {
	switch {
	case !walkable && visible:
		return color.RGBA{90, 70, 60, 255}
	case !walkable:
		return color.RGBA{55, 45, 40, 255}
	case visible:
		return color.RGBA{50, 110, 50, 255}
	default:
		return color.RGBA{35, 60, 35, 255}
	}
}

func main() {
	mapPath := flag.String("map", "data/maps/skirmish_40x40.csv", "path to a map CSV file")
	scenarioPath := flag.String("scenario", "data/scenarios/skirmish_40x40.json", "path to a scenario JSON file")
	seed := flag.Int64("seed", 1, "deterministic RNG seed")
	flag.Parse()

	mapFile, err := os.Open(*mapPath)
	if err != nil {
		log.Fatalf("view: open map: %v", err)
	}
	pm, err := maplib.LoadMapCSV(mapFile)
	mapFile.Close()
	if err != nil {
		log.Fatalf("view: load map: %v", err)
	}

	scenarioFile, err := os.Open(*scenarioPath)
	if err != nil {
		log.Fatalf("view: open scenario: %v", err)
	}
	sc, err := maplib.LoadScenario(scenarioFile)
	scenarioFile.Close()
	if err != nil {
		log.Fatalf("view: load scenario: %v", err)
	}

	data := core.DefaultGameData()
	s := sim.NewFromScenario(pm, sc, data, *seed, false)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("microcraft viewer")
	if err := ebiten.RunGame(newGame(s)); err != nil {
		log.Fatal(err)
	}
}
