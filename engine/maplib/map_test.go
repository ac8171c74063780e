package maplib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMapCSV_MarkersRewrittenToGrass(t *testing.T) {
	csv := "0,1,8\n2,M,9\n"
	pm, err := LoadMapCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.True(t, pm.Map.IsWalkable(0, 0))
	require.False(t, pm.Map.IsWalkable(1, 0))
	require.True(t, pm.Map.IsWalkable(2, 0)) // human spawn rewritten to grass
	require.True(t, pm.Map.IsWalkable(0, 1)) // mineral marker rewritten to grass
	require.True(t, pm.Map.IsWalkable(1, 1))
	require.True(t, pm.Map.IsWalkable(2, 1)) // opponent spawn rewritten to grass

	require.NotNil(t, pm.HumanSpawn)
	require.Equal(t, [2]int{2, 0}, *pm.HumanSpawn)
	require.NotNil(t, pm.OpponentSpawn)
	require.Equal(t, [2]int{2, 1}, *pm.OpponentSpawn)
	require.Len(t, pm.MineralPositions, 2)
}

func TestIsBuildable_RequiresFullSquareWalkable(t *testing.T) {
	m := NewGameMap(10, 10)
	m.SetPassable(3, 3, false)
	require.False(t, m.IsBuildable(2, 2, 2))
	require.True(t, m.IsBuildable(5, 5, 2))
}

func TestMineralPatch_HarvestClampsToRemaining(t *testing.T) {
	p := &MineralPatch{ID: 1, Remaining: 1}
	taken := p.Harvest(8)
	require.Equal(t, 1, taken)
	require.True(t, p.Depleted())
}

func TestLoadScenario_DefaultsApplied(t *testing.T) {
	js := `{"starting_workers": 4, "mineral_patches": [{"pos":[1,1]}], "teams": {}}`
	sc, err := LoadScenario(strings.NewReader(js))
	require.NoError(t, err)
	require.Equal(t, 50, sc.StartingMinerals)
	require.Equal(t, 1500, sc.MineralPatches[0].Amount)
}
