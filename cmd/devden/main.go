// devden is a small top-down tile game: walk around a room, talk to the
// furniture, read what it has to say.
//
// Usage:
//
//	devden play              - Play in this terminal
//	devden serve             - Start SSH server for remote play
//	devden journal           - Browse past play sessions
//	devden check-map [path]  - Parse a map and report shape problems
//	devden config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible conversations
//	--config <path>       - Use a specific config YAML
//	--map <path|url>      - Override the map
//	--text-speed <preset> - slow, normal, fast or instant
//	--db <path>           - Set journal path (default: ~/.devden/journal.db)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/devden/internal/config"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagConfig    string
	flagMap       string
	flagTextSpeed string
	flagDBPath    string
	flagVerbose   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devden",
	Short: "devden - a tiny room to walk around in, in your terminal",
	Long: `devden is a top-down tile game. Walk around the den, step up to the
furniture and click the prompt (or press E) to start a conversation.

Available commands:
  play       - Play in this terminal
  serve      - Start SSH server for remote play
  journal    - Browse past play sessions
  check-map  - Parse a map and report shape problems
  config     - Print the default configuration

Examples:
  devden play
  devden play --text-speed fast --seed 42
  devden play --map ./maps/den.tmx
  devden serve --ssh :2222
  devden journal`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Map file path or URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTextSpeed, "text-speed", "", "Dialogue speed: slow, normal, fast, instant")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.devden/journal.db", "Path to session journal")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(checkMapCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
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
			return cfg, err
		}
		config.ApplyTextSpeed(&cfg, speed)
	}
	return cfg, cfg.Validate()
}

// fileLogger logs to ~/.devden/devden.log so the alternate screen stays
// clean. Logging is dropped when the file cannot open.
func fileLogger(prefix string) (*log.Logger, func()) {
	path := filepath.Join(filepath.Dir(config.UserConfigPath()), "devden.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
