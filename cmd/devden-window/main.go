// devden-window opens devden in a desktop window.
//
// Usage:
//
//	devden-window [--config path] [--map path|url] [--text-speed preset]
//	              [--seed n] [--fps n] [--width px] [--height px] [--db path]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/platform/window"
	"github.com/vovakirdan/devden/internal/storage"
)

var (
	flagConfig    string
	flagMap       string
	flagTextSpeed string
	flagSeed      int64
	flagFPS       int
	flagWidth     int
	flagHeight    int
	flagDBPath    string
	flagPlayer    string
	flagVerbose   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devden-window",
	Short: "Play devden in a window",
	Long: `Open devden in a desktop window.

Controls:
  WASD/Arrows   - Walk
  Mouse/Touch   - Drag the joystick (bottom left) to walk, click the prompt to talk
  E             - Talk to the object you are standing next to
  Enter/Space   - Reveal the page, then go to the next one
  P/Esc         - Pause
  Q             - Quit`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Path to config YAML")
	f.StringVar(&flagMap, "map", "", "Map file path or URL (overrides config)")
	f.StringVar(&flagTextSpeed, "text-speed", "", "Dialogue speed: slow, normal, fast, instant")
	f.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	f.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	f.IntVar(&flagWidth, "width", 1280, "Window width in pixels")
	f.IntVar(&flagHeight, "height", 768, "Window height in pixels")
	f.StringVar(&flagDBPath, "db", "~/.devden/journal.db", "Path to session journal")
	f.StringVar(&flagPlayer, "player", "", "Name to journal the session under")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagMap != "" {
		cfg.World.Map = flagMap
	}
	if flagTextSpeed != "" {
		speed, err := config.ParseTextSpeed(flagTextSpeed)
		if err != nil {
			return err
		}
		config.ApplyTextSpeed(&cfg, speed)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "devden-window",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session journal", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return window.Run(cmd.Context(), cfg, window.Options{
		Player: flagPlayer,
		Width:  flagWidth,
		Height: flagHeight,
		Seed:   flagSeed,
		Store:  store,
		Logger: logger,
	})
}
