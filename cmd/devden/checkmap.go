package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/devden/internal/game"
	"github.com/vovakirdan/devden/internal/world"
)

var checkMapCmd = &cobra.Command{
	Use:   "check-map [path|url]",
	Short: "Parse a map and report shape problems",
	Long: `Load a map the way the game does and print what it found: the
declared and stored sizes, tile counts, placed objects and every shape
warning. Without an argument the configured map is checked.

Exits non-zero only when the map cannot be loaded at all; shape warnings
never stop the game.

Examples:
  devden check-map
  devden check-map ./maps/den.txt
  devden check-map ./maps/den.tmx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckMap,
}

func runCheckMap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(args) == 1 {
		cfg.World.Map = args[0]
	}

	logger := newLogger(os.Stderr, "check-map")
	level, err := game.LoadLevel(cmd.Context(), cfg, nil, logger)
	if err != nil {
		return err
	}

	g := level.Grid
	counts := make(map[world.Tile]int)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			counts[g.At(row, col)]++
		}
	}

	fmt.Printf("Map:      %s\n", cfg.MapSource().Ref)
	fmt.Printf("Declared: %d rows x %d cols, %g px tiles (%gx%g px)\n",
		g.Rows, g.Cols, g.TileSize, g.WidthPx(), g.HeightPx())
	fmt.Printf("Stored:   %d rows\n", g.StoredRows())
	fmt.Printf("Tiles:    %d wall, %d carpet, %d unknown\n",
		counts[world.TileWall], counts[world.TileCarpet], counts[world.TileUnknown])
	fmt.Printf("Objects:  %d\n", len(level.Placements))
	for _, p := range level.Placements {
		note := ""
		if g.IsWall(p.TileY, p.TileX) {
			note = " (on a wall)"
		}
		fmt.Printf("  %-10s tile (%d, %d)%s\n", p.ID, p.TileX, p.TileY, note)
	}

	if len(level.Warnings) == 0 {
		fmt.Println("Shape:    ok")
		return nil
	}
	fmt.Printf("Shape:    %d warnings\n", len(level.Warnings))
	for _, w := range level.Warnings {
		fmt.Printf("  - %s\n", w)
	}
	return nil
}
