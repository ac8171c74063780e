package systems

import (
	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
)

// RunFogOfWar recomputes each team's visibility grid from its living
// entities' positions and vision radii.
func RunFogOfWar(w *core.World) {
	for _, team := range []core.Team{core.TeamHuman, core.TeamOpponent} {
		var sources []maplib.VisionSource
		for _, u := range w.Units(team) {
			sources = append(sources, maplib.VisionSource{X: u.X, Y: u.Y, Vision: u.Vision})
		}
		for _, b := range w.Buildings(team) {
			sources = append(sources, maplib.VisionSource{X: b.X, Y: b.Y, Vision: b.Vision})
		}
		w.Fog[team].Update(sources)
	}
}
