package systems

import (
	"github.com/1siamBot/microcraft/engine/core"
	"github.com/1siamBot/microcraft/engine/maplib"
)

// newTestWorld builds a deterministic, all-grass world for system tests.
func newTestWorld(width, height int) *core.World {
	m := maplib.NewGameMap(width, height)
	return core.NewWorld(m, core.DefaultGameData(), core.NewRNG(7), core.NewEventBus(true), 100)
}
