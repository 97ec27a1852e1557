package config

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/devden/internal/world"
)

// BuiltinMap is the map reference used when the config names none.
const BuiltinMap = "defaults/map.txt"

//go:embed defaults/devden.yaml
var defaultYAML []byte

//go:embed defaults/map.txt
var defaultFS embed.FS

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Defaults exposes the embedded files, including the built-in map.
func Defaults() fs.FS {
	return defaultFS
}

// MapSource says where to load the configured map from. An empty map
// reference resolves to the built-in room.
func (c Config) MapSource() world.Source {
	if c.World.Map == "" {
		return world.Source{Ref: BuiltinMap, FS: defaultFS}
	}
	return world.Source{Ref: c.World.Map}
}
