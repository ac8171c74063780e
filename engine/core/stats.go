package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// UnitStats holds the per-kind tunables for Worker and Soldier, loaded from
// data/units.json and passed explicitly to the world constructor.
type UnitStats struct {
	HP            int     `json:"hp"`
	Speed         float64 `json:"speed"`
	Vision        int     `json:"vision"`
	Cost          int     `json:"cost"`
	BuildTime     float64 `json:"build_time"`
	CarryCapacity int     `json:"carry_capacity,omitempty"`
	Damage        int     `json:"damage,omitempty"`
	Range         float64 `json:"range,omitempty"`
	Cooldown      float64 `json:"cooldown,omitempty"`
}

// BuildingStats holds the per-kind tunables for Base and Barracks.
type BuildingStats struct {
	HP        int `json:"hp"`
	Vision    int `json:"vision"`
	Cost      int `json:"cost"`
	BuildTime float64 `json:"build_time"`
}

// GameData is the full set of loaded unit/building stat tables.
type GameData struct {
	Units     map[string]UnitStats
	Buildings map[string]BuildingStats
}

// LoadUnitStats parses the units.json document shape:
//
//	{"Worker": {...}, "Soldier": {...}}
func LoadUnitStats(r io.Reader) (map[string]UnitStats, error) {
	var out map[string]UnitStats
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode unit stats: %w", err)
	}
	return out, nil
}

// LoadBuildingStats parses the buildings.json document shape:
//
//	{"Base": {...}, "Barracks": {...}}
func LoadBuildingStats(r io.Reader) (map[string]BuildingStats, error) {
	var out map[string]BuildingStats
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode building stats: %w", err)
	}
	return out, nil
}

// DefaultGameData returns the baseline stat tables used when no data files
// are supplied (tests, quick demos). Values match data/units.json and
// data/buildings.json.
func DefaultGameData() *GameData {
	return &GameData{
		Units: map[string]UnitStats{
			"Worker": {HP: 40, Speed: 3.0, Vision: 6, Cost: 50, BuildTime: 8, CarryCapacity: 8},
			"Soldier": {HP: 60, Speed: 2.5, Vision: 7, Cost: 75, BuildTime: 10, Damage: 10, Range: 2.0, Cooldown: 1.0},
		},
		Buildings: map[string]BuildingStats{
			"Base":     {HP: 500, Vision: 8, Cost: 0, BuildTime: 0},
			"Barracks": {HP: 300, Vision: 5, Cost: 150, BuildTime: 12},
		},
	}
}

func kindName(k Kind) string {
	return k.String()
}

// UnitCost returns the mineral cost for a unit kind.
func (g *GameData) UnitCost(k Kind) int {
	return g.Units[kindName(k)].Cost
}

// UnitBuildTime returns the build time in seconds for a unit kind.
func (g *GameData) UnitBuildTime(k Kind) float64 {
	return g.Units[kindName(k)].BuildTime
}

// BuildingCost returns the mineral cost for a building kind.
func (g *GameData) BuildingCost(k Kind) int {
	return g.Buildings[kindName(k)].Cost
}

// BuildingBuildTime returns the build time in seconds for a building kind.
func (g *GameData) BuildingBuildTime(k Kind) float64 {
	return g.Buildings[kindName(k)].BuildTime
}
