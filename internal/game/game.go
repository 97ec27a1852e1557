// Package game runs one play session. Game owns every piece of simulation
// state and advances it one fixed frame at a time; frontends feed it input
// frames and draw what it exposes.
package game

import (
	"image"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/devden/internal/assets"
	"github.com/vovakirdan/devden/internal/camera"
	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/entity"
	"github.com/vovakirdan/devden/internal/interaction"
	"github.com/vovakirdan/devden/internal/physics"
	"github.com/vovakirdan/devden/internal/world"
)

// Options carries what a frontend knows about itself.
type Options struct {
	Runtime core.RuntimeConfig
	// Measure is the text width function for dialogue wrapping. Nil counts
	// runes at a fixed width.
	Measure dialogue.Measure
	Logger  *log.Logger
}

// Game is the state of one session.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	grid     *world.Grid
	player   *entity.Player
	objects  entity.Objects
	resolver *physics.Resolver
	dialogue *dialogue.Machine
	sprites  *assets.SpriteCache

	viewport   core.Vec2
	camera     core.Vec2
	affordance interaction.Affordance
	contact    physics.Contact

	introPending bool
	introAt      time.Duration

	rng      *rand.Rand
	now      time.Duration
	paused   bool
	pausedAt time.Duration

	ticks         int
	conversations int
	distance      float64

	err error
}

// New starts a session on a loaded level. The level's placements are the
// objects of the room.
func New(cfg config.Config, level *world.Level, opts Options) *Game {
	g := newGame(cfg, opts)
	g.grid = level.Grid

	tile := cfg.World.TileSize
	g.objects = entity.NewObjects(level.Placements, tile, cfg.Interaction.Hitbox())
	g.player = entity.NewPlayer(cfg.Player.Spec(), spawn(cfg))
	g.resolver = physics.NewResolver(g.grid, g.objects)

	g.introPending = true
	g.introAt = cfg.Dialogue.IntroDelay()

	g.recenter()
	g.detect()
	return g
}

// NewFailed returns a session that only shows the startup error screen.
func NewFailed(cfg config.Config, err error, opts Options) *Game {
	g := newGame(cfg, opts)
	g.err = err
	return g
}

func newGame(cfg config.Config, opts Options) *Game {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	viewport := core.V(opts.Runtime.ViewportW, opts.Runtime.ViewportH)

	g := &Game{
		cfg:      cfg,
		logger:   opts.Logger,
		dialogue: dialogue.NewMachine(cfg.Dialogue.Machine(), opts.Measure),
		viewport: viewport,
		rng:      rand.New(rand.NewSource(seed)),
	}
	g.dialogue.SetViewport(viewport)
	return g
}

// spawn is the configured start, or the sprite centered on the map.
func spawn(cfg config.Config) core.Vec2 {
	if s := cfg.Player.Spawn; s != nil {
		return core.V(s.X, s.Y)
	}
	w := cfg.World
	return core.V(
		float64(w.Cols)/2*w.TileSize-cfg.Player.SpriteW/2,
		float64(w.Rows)/2*w.TileSize-cfg.Player.SpriteH/2,
	)
}

// SetImages hands the game its settled images.
func (g *Game) SetImages(images map[string]image.Image) {
	g.sprites = assets.NewSpriteCache(images)
}

// Image returns the settled image for an asset key.
func (g *Game) Image(key string) (image.Image, bool) {
	return g.sprites.Image(key)
}

// Step advances the session by one processed frame.
func (g *Game) Step(in core.InputFrame) {
	if g.err != nil {
		return
	}
	now := in.Now
	g.now = now

	if in.Has(core.ActionPause) {
		g.togglePause(now)
	}
	if g.paused {
		return
	}

	// Clicks arrived before this frame, so they are judged against the
	// camera and prompt the player saw.
	for _, p := range in.Clicks {
		g.click(now, p)
	}
	if in.Has(core.ActionInteract) {
		g.interact(now)
	}
	if in.Has(core.ActionAdvance) {
		g.dialogue.Skip(now)
	}

	g.player.Animate(in.Move, in.Engaged)
	delta := g.player.Velocity(in.Move, in.Engaged)

	before := g.player.Pos
	g.player.Pos, g.contact = g.resolver.Resolve(g.player, delta)
	g.distance += g.player.Pos.Sub(before).Len()

	g.recenter()
	g.detect()

	if g.introPending && now >= g.introAt && !g.dialogue.Active() {
		g.introPending = false
		g.dialogue.ActivateIntro(now)
	}

	g.dialogue.Tick(now)
	g.ticks++
}

// click is the single handler for pointer presses. The prompt wins when it
// is up and no dialogue is open; otherwise an open dialogue gets the click.
func (g *Game) click(now time.Duration, screen core.Vec2) {
	if !g.dialogue.Active() {
		if g.affordance.Visible && g.affordance.Button.ContainsPoint(camera.ToWorld(g.camera, screen)) {
			g.startConversation(now)
		}
		return
	}
	g.dialogue.Click(now, screen)
}

// interact is the keyboard form of clicking the prompt.
func (g *Game) interact(now time.Duration) {
	if g.affordance.Visible && !g.dialogue.Active() {
		g.startConversation(now)
	}
}

func (g *Game) startConversation(now time.Duration) {
	if !g.dialogue.ActivateConversation(now, g.rng) {
		return
	}
	g.conversations++
	if g.logger != nil {
		id := ""
		if g.affordance.Object != nil {
			id = g.affordance.Object.ID
		}
		g.logger.Debug("conversation", "object", id, "opening", g.dialogue.PageText())
	}
}

func (g *Game) togglePause(now time.Duration) {
	if !g.paused {
		g.paused = true
		g.pausedAt = now
		return
	}
	g.paused = false
	held := now - g.pausedAt
	g.dialogue.Shift(held)
	if g.introPending {
		g.introAt += held
	}
}

func (g *Game) recenter() {
	g.camera = camera.Follow(g.player.Center(), g.viewport, g.grid.Size())
}

func (g *Game) detect() {
	g.affordance = interaction.Detect(g.player.CollisionBox(), g.objects, g.camera, g.cfg.Interaction.Spec())
}

// Resize changes the viewport. The camera, prompt and dialogue layout
// follow immediately rather than on the next frame.
func (g *Game) Resize(viewport core.Vec2) {
	g.viewport = viewport
	g.dialogue.SetViewport(viewport)
	if g.err != nil {
		return
	}
	g.recenter()
	g.detect()
}

// SetMeasure swaps the dialogue text measurement.
func (g *Game) SetMeasure(m dialogue.Measure) {
	g.dialogue.SetMeasure(m)
}

// Status reports what the platform tracks about the session.
func (g *Game) Status() core.Status {
	return core.Status{
		Ticks:          g.ticks,
		Conversations:  g.conversations,
		Distance:       g.distance,
		DialogueActive: g.dialogue.Active(),
		Paused:         g.paused,
		Failed:         g.err != nil,
	}
}

// Err returns the startup failure, if any.
func (g *Game) Err() error {
	return g.err
}

// Config returns the configuration the session runs with.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Player returns the player.
func (g *Game) Player() *entity.Player {
	return g.player
}

// Objects returns the placed objects.
func (g *Game) Objects() entity.Objects {
	return g.objects
}

// Grid returns the tile map.
func (g *Game) Grid() *world.Grid {
	return g.grid
}

// Camera returns the viewport origin in world space.
func (g *Game) Camera() core.Vec2 {
	return g.camera
}

// Viewport returns the screen size in world pixels.
func (g *Game) Viewport() core.Vec2 {
	return g.viewport
}

// Affordance returns this frame's prompt.
func (g *Game) Affordance() interaction.Affordance {
	return g.affordance
}

// Contact returns what stopped the player on the last frame.
func (g *Game) Contact() physics.Contact {
	return g.contact
}

// Dialogue returns the dialogue machine for drawing.
func (g *Game) Dialogue() *dialogue.Machine {
	return g.dialogue
}

// Now returns the timestamp of the last processed frame.
func (g *Game) Now() time.Duration {
	return g.now
}
