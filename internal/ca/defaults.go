package ca

import (
	"github.com/mossgrove/terrasim/internal/tiles"
)

// Thresholds holds the neighbor counts that trigger the built-in
// terrain transitions.
type Thresholds struct {
	SandFloodWater  int `yaml:"sand_flood_water"`  // water neighbors that drown sand
	SandGrowGrass   int `yaml:"sand_grow_grass"`   // grass neighbors that seed sand
	GrassGrowForest int `yaml:"grass_grow_forest"` // forest neighbors that densify grass
	GrassErodeSand  int `yaml:"grass_erode_sand"`  // sand neighbors that erode grass
	ForestDieWater  int `yaml:"forest_die_water"`  // water neighbors that kill forest
	ForestDieSand   int `yaml:"forest_die_sand"`   // sand neighbors that kill forest
}

// DefaultThresholds returns the standard terrain transition thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SandFloodWater:  5,
		SandGrowGrass:   3,
		GrassGrowForest: 3,
		GrassErodeSand:  5,
		ForestDieWater:  4,
		ForestDieSand:   5,
	}
}

// defaultRules builds one exact-kind rule per base terrain kind.
func defaultRules(t Thresholds) []Rule {
	return []Rule{
		{For(tiles.Water), func(current tiles.Kind, counts map[tiles.Kind]int) tiles.Kind {
			// Water is stable
			return tiles.Water
		}},
		{For(tiles.Sand), func(current tiles.Kind, counts map[tiles.Kind]int) tiles.Kind {
			if counts[tiles.Water] >= t.SandFloodWater {
				return tiles.Water
			}
			if counts[tiles.Grass] >= t.SandGrowGrass {
				return tiles.Grass
			}
			return tiles.Sand
		}},
		{For(tiles.Grass), func(current tiles.Kind, counts map[tiles.Kind]int) tiles.Kind {
			if counts[tiles.Forest] >= t.GrassGrowForest {
				return tiles.Forest
			}
			if counts[tiles.Sand] >= t.GrassErodeSand {
				return tiles.Sand
			}
			return tiles.Grass
		}},
		{For(tiles.Forest), func(current tiles.Kind, counts map[tiles.Kind]int) tiles.Kind {
			if counts[tiles.Water] >= t.ForestDieWater || counts[tiles.Sand] >= t.ForestDieSand {
				return tiles.Grass
			}
			return tiles.Forest
		}},
	}
}
