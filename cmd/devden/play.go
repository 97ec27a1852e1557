package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/devden/internal/platform/tui"
	"github.com/vovakirdan/devden/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a devden session in this terminal.

Controls:
  WASD/Arrows  - Walk
  Mouse        - Drag the joystick (bottom left) to walk, click the prompt to talk
  E            - Talk to the object you are standing next to
  Enter/Space  - Reveal the page, then go to the next one
  P/Esc        - Pause
  ?            - Toggle the help bar
  Q/Ctrl+C     - Quit

The session is written to the journal when you quit. Logs go to
~/.devden/devden.log.

Examples:
  devden play
  devden play --text-speed instant
  devden play --config ./configs/devden.remote.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name to journal the session under (default: your user name)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog := fileLogger("devden")
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open the journal; the game still works without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session journal", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("session starting", "map", cfg.MapSource().Ref, "size", fmt.Sprintf("%dx%d", width, height))
	return tui.Run(cmd.Context(), cfg, tui.Options{
		Player:   flagPlayer,
		Frontend: "terminal",
		Width:    width,
		Height:   height,
		Seed:     flagSeed,
		Store:    store,
		Logger:   logger,
	})
}
