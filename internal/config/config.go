// Package config loads simulation settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mossgrove/terrasim/internal/ca"
	"github.com/mossgrove/terrasim/internal/logger"
	"github.com/mossgrove/terrasim/internal/tiles"
	"github.com/mossgrove/terrasim/internal/wfc"
)

// Config holds all file-driven settings for a simulation run.
type Config struct {
	Simulation SimulationConfig               `yaml:"simulation"`
	Adjacency  map[string]map[string][]string `yaml:"adjacency"`
	Evolution  ca.Thresholds                  `yaml:"evolution"`
	Logging    logger.Config                  `yaml:"logging"`
	Ledger     LedgerConfig                   `yaml:"ledger"`
	TileSet    string                         `yaml:"tile_set"`
}

// SimulationConfig holds the run parameters.
type SimulationConfig struct {
	// Width and Height are the grid dimensions in cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Steps is the number of evolution steps after generation.
	Steps int `yaml:"steps"`

	// Seed drives the run. 0 means pick a time-based seed.
	Seed int64 `yaml:"seed"`
}

// LedgerConfig holds run ledger settings.
type LedgerConfig struct {
	// Enabled turns run recording on.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file for the ledger.
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with working defaults.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Width:  32,
			Height: 24,
			Steps:  10,
			Seed:   0,
		},
		Evolution: ca.DefaultThresholds(),
		Logging:   logger.DefaultConfig(),
		Ledger: LedgerConfig{
			Enabled: false,
			Path:    "data/terrasim.db",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return config, nil
}

// BuildAdjacency translates the name-keyed adjacency section into a rule
// map over registered kinds. Unknown tile or direction names are errors.
func (c *Config) BuildAdjacency(reg *tiles.Registry) (wfc.RuleMap, error) {
	if c.Adjacency == nil {
		return nil, nil
	}

	table := make(wfc.RuleMap, len(c.Adjacency))
	for tileName, byDir := range c.Adjacency {
		kind, err := reg.ByName(tileName)
		if err != nil {
			return nil, fmt.Errorf("adjacency references unknown tile %q: %w", tileName, err)
		}
		dirs := make(map[tiles.Direction][]tiles.Kind, len(byDir))
		for dirName, neighbors := range byDir {
			dir, ok := tiles.ParseDirection(dirName)
			if !ok {
				return nil, fmt.Errorf("adjacency for %q has unknown direction %q", tileName, dirName)
			}
			allowed := make([]tiles.Kind, 0, len(neighbors))
			for _, n := range neighbors {
				nk, err := reg.ByName(n)
				if err != nil {
					return nil, fmt.Errorf("adjacency for %q/%s references unknown tile %q: %w",
						tileName, dirName, n, err)
				}
				allowed = append(allowed, nk)
			}
			dirs[dir] = allowed
		}
		table[kind] = dirs
	}
	return table, nil
}
