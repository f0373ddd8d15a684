package tiles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileSetConfig represents the structure of a tile set YAML file
type TileSetConfig struct {
	Tiles []Definition `yaml:"tiles"`
}

// LoadTileSet loads extra tile definitions from a YAML file and registers
// them. Entries matching built-in names update metadata in place.
func (r *Registry) LoadTileSet(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile set file: %w", err)
	}

	var config TileSetConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse tile set YAML: %w", err)
	}

	for _, def := range config.Tiles {
		if def.Name == "" {
			return fmt.Errorf("tile set entry missing name")
		}
		r.Register(def.Name, def.Color)
	}

	return nil
}
