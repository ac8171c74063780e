// Package maplib holds the grid map, mineral patches, fog of war, and the
// CSV/JSON loaders used to seed a simulation.
package maplib

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GameMap is a row-major walkable/unwalkable tile grid.
type GameMap struct {
	Width, Height int
	passable      []bool // row-major, len == Width*Height
}

// NewGameMap builds an all-passable map of the given size (used by tests and
// procedural demo maps).
func NewGameMap(width, height int) *GameMap {
	m := &GameMap{Width: width, Height: height, passable: make([]bool, width*height)}
	for i := range m.passable {
		m.passable[i] = true
	}
	return m
}

func (m *GameMap) idx(x, y int) int { return y*m.Width + x }

// InBounds reports whether (x,y) is within the grid.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// SetPassable marks a tile's walkability; out-of-bounds is a no-op.
func (m *GameMap) SetPassable(x, y int, passable bool) {
	if !m.InBounds(x, y) {
		return
	}
	m.passable[m.idx(x, y)] = passable
}

// IsWalkable reports whether (x,y) is in-bounds and passable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.passable[m.idx(x, y)]
}

// IsBuildable reports whether a size×size square starting at (x,y) is fully
// walkable.
func (m *GameMap) IsBuildable(x, y, size int) bool {
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			if !m.IsWalkable(x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}

// MineralPatch is a resource node on the map. Patches never move and are
// never destroyed; they only deplete.
type MineralPatch struct {
	ID        int
	X, Y      float64
	Remaining int
}

// Depleted reports whether the patch has no minerals left.
func (p *MineralPatch) Depleted() bool { return p.Remaining <= 0 }

// Harvest removes up to amount minerals, returning how much was actually
// taken (min(amount, remaining)).
func (p *MineralPatch) Harvest(amount int) int {
	if amount > p.Remaining {
		amount = p.Remaining
	}
	p.Remaining -= amount
	return amount
}

// ParsedMap is the result of loading a CSV map file: the grid plus the
// positions found for each marker, so callers can spawn minerals and
// starting bases at the recorded coordinates.
type ParsedMap struct {
	Map             *GameMap
	MineralPositions [][2]float64
	HumanSpawn      *[2]int
	OpponentSpawn   *[2]int
}

// LoadMapCSV parses a grid CSV: 0 = grass (walkable), 1 = rock
// (impassable), 8 = human spawn, 9 = opponent spawn, 2 or M = mineral
// patch. Spawn and mineral markers are rewritten to grass in the returned
// grid.
func LoadMapCSV(r io.Reader) (*ParsedMap, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse map csv: %w", err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse map csv: empty file")
	}

	height := len(rows)
	width := len(rows[0])
	m := &GameMap{Width: width, Height: height, passable: make([]bool, width*height)}

	out := &ParsedMap{Map: m}

	for y, row := range rows {
		for x := 0; x < width; x++ {
			cell := "0"
			if x < len(row) {
				cell = strings.TrimSpace(row[x])
			}
			switch cell {
			case "1":
				m.SetPassable(x, y, false)
			case "8":
				m.SetPassable(x, y, true)
				hs := [2]int{x, y}
				out.HumanSpawn = &hs
			case "9":
				m.SetPassable(x, y, true)
				os := [2]int{x, y}
				out.OpponentSpawn = &os
			case "2", "M":
				m.SetPassable(x, y, true)
				out.MineralPositions = append(out.MineralPositions, [2]float64{float64(x), float64(y)})
			default:
				m.SetPassable(x, y, true)
			}
		}
	}
	return out, nil
}

// Scenario is the structured record describing a game setup: starting
// stockpiles and workers, mineral patches, and per-team base positions.
type Scenario struct {
	StartingMinerals int               `json:"starting_minerals"`
	StartingWorkers  int               `json:"starting_workers"`
	MineralPatches   []ScenarioPatch   `json:"mineral_patches"`
	Teams            map[string]TeamSpec `json:"teams"`
}

type ScenarioPatch struct {
	Pos    [2]float64 `json:"pos"`
	Amount int        `json:"amount"`
}

type TeamSpec struct {
	BasePos [2]float64 `json:"base_pos"`
	Name    string     `json:"name"`
	Color   string     `json:"color"`
}

// LoadScenario parses a scenario JSON document, defaulting to 1500 minerals
// per patch and 50 starting minerals when those fields are absent or zero.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if s.StartingMinerals == 0 {
		s.StartingMinerals = 50
	}
	for i := range s.MineralPatches {
		if s.MineralPatches[i].Amount == 0 {
			s.MineralPatches[i].Amount = 1500
		}
	}
	return &s, nil
}

// ParseTeamKey converts a scenario team key ("1", "2") to an int, used when
// iterating Scenario.Teams in a stable, caller-chosen order.
func ParseTeamKey(key string) (int, error) {
	return strconv.Atoi(key)
}
