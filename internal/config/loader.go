package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration. Files are overlaid on the embedded
// defaults, so a file only needs the keys it changes.
// Search order: customPath -> ~/.devden/config.yaml -> ./configs/devden.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "devden.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultConfig()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if candidate.Validate() != nil {
			continue
		}
		return candidate, nil
	}

	return cfg, nil
}

// Validate rejects configurations the game cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if c.World.Rows <= 0 || c.World.Cols <= 0 {
		errs = append(errs, fmt.Errorf("world dimensions must be positive, got %dx%d", c.World.Rows, c.World.Cols))
	}
	if c.World.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("world.tile_size must be positive, got %v", c.World.TileSize))
	}
	if c.Player.CollisionW <= 0 || c.Player.CollisionH <= 0 {
		errs = append(errs, errors.New("player collision box must have a positive size"))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player.speed must not be negative, got %v", c.Player.Speed))
	}
	if c.Dialogue.Layout.WidthFrac <= 0 || c.Dialogue.Layout.WidthFrac > 1 {
		errs = append(errs, fmt.Errorf("dialogue.layout.width_frac must be in (0, 1], got %v", c.Dialogue.Layout.WidthFrac))
	}
	if c.Terminal.PxPerCol <= 0 || c.Terminal.PxPerRow <= 0 {
		errs = append(errs, errors.New("terminal scale must be positive"))
	}
	seen := make(map[string]bool, len(c.Objects))
	for _, o := range c.Objects {
		if o.ID == "" {
			errs = append(errs, errors.New("object without id"))
			continue
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Errorf("duplicate object id %q", o.ID))
		}
		seen[o.ID] = true
	}
	return errors.Join(errs...)
}

// UserConfigPath is where a per-user configuration lives.
func UserConfigPath() string {
	return userConfigPath("config.yaml")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".devden", filename)
}
