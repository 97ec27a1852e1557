package game

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/devden/internal/assets"
	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/world"
)

// LoadErrorText is shown in place of the game when the map cannot load.
const LoadErrorText = "Failed to load map! Check the log for details."

// LoadLevel loads the configured map and adds the configured objects after
// any the map file places itself. Shape warnings are logged, not returned.
func LoadLevel(ctx context.Context, cfg config.Config, client *http.Client, logger *log.Logger) (*world.Level, error) {
	src := cfg.MapSource()
	level, err := world.Load(ctx, src, cfg.World.Dims(), client)
	if err != nil {
		return nil, fmt.Errorf("game: load map: %w", err)
	}
	if logger != nil {
		for _, w := range level.Warnings {
			logger.Warn("map shape", "map", src.Ref, "warning", w.Msg)
		}
	}
	level.Placements = append(level.Placements, cfg.Placements()...)
	return level, nil
}

// StartOptions configures Start.
type StartOptions struct {
	Options
	// Client fetches remote maps and images. Nil uses http.DefaultClient.
	Client *http.Client
}

// Start loads the map, settles every image and returns a ready session.
// A map failure is not returned: the session comes back failed and shows
// the error screen. Images that fail are replaced by placeholders.
func Start(ctx context.Context, cfg config.Config, opts StartOptions) *Game {
	level, err := LoadLevel(ctx, cfg, opts.Client, opts.Logger)
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Error("startup failed", "error", err)
		}
		return NewFailed(cfg, err, opts.Options)
	}

	src := assets.Router{
		Local:  assets.FileSource{},
		Remote: assets.HTTPSource{Client: opts.Client},
	}
	loader := assets.NewLoader(src, opts.Logger)
	RequestAssets(loader, cfg, level.Placements)

	settleCtx := ctx
	if timeout := cfg.Assets.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		settleCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := loader.Settle(settleCtx); err != nil && opts.Logger != nil {
		opts.Logger.Warn("asset loading cut short", "error", err)
	}
	if failed := loader.Failures(); len(failed) > 0 && opts.Logger != nil {
		opts.Logger.Info("assets settled", "placeholders", len(failed))
	}

	g := New(cfg, level, opts.Options)
	g.SetImages(loader.Images())
	return g
}
