// Package config loads devden's YAML configuration: map geometry, player
// tuning, placed objects, dialogue text and timing, asset references and
// terminal scaling.
package config

import (
	"time"

	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/entity"
	"github.com/vovakirdan/devden/internal/interaction"
	"github.com/vovakirdan/devden/internal/world"
)

// Config is the full game configuration.
type Config struct {
	TickRate    int               `yaml:"tick_rate"`
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Objects     []ObjectConfig    `yaml:"objects"`
	Dialogue    DialogueConfig    `yaml:"dialogue"`
	Interaction InteractionConfig `yaml:"interaction"`
	Assets      AssetsConfig      `yaml:"assets"`
	Terminal    TerminalConfig    `yaml:"terminal"`
}

// WorldConfig declares the map dimensions and where the map comes from.
type WorldConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	TileSize float64 `yaml:"tile_size"`
	Map      string  `yaml:"map"` // path or URL; empty uses the built-in room
}

// Dims returns the declared grid dimensions.
func (w WorldConfig) Dims() world.Dims {
	return world.Dims{Rows: w.Rows, Cols: w.Cols, TileSize: w.TileSize}
}

// PlayerConfig holds the player's geometry and tuning.
type PlayerConfig struct {
	SpriteW         float64 `yaml:"sprite_w"`
	SpriteH         float64 `yaml:"sprite_h"`
	CollisionW      float64 `yaml:"collision_w"`
	CollisionH      float64 `yaml:"collision_h"`
	OffsetX         float64 `yaml:"offset_x"`
	OffsetY         float64 `yaml:"offset_y"`
	Speed           float64 `yaml:"speed"`
	AnimationFrames int     `yaml:"animation_frames"`
	Spawn           *Point  `yaml:"spawn"` // nil centers the player on the map
}

// Point is a world position in pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Spec converts to the entity form.
func (p PlayerConfig) Spec() entity.PlayerSpec {
	return entity.PlayerSpec{
		SpriteW:         p.SpriteW,
		SpriteH:         p.SpriteH,
		CollisionW:      p.CollisionW,
		CollisionH:      p.CollisionH,
		OffsetX:         p.OffsetX,
		OffsetY:         p.OffsetY,
		Speed:           p.Speed,
		AnimationFrames: p.AnimationFrames,
	}
}

// ObjectConfig places an object on the map.
type ObjectConfig struct {
	ID    string  `yaml:"id"`
	TileX int     `yaml:"tile_x"`
	TileY int     `yaml:"tile_y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Image string  `yaml:"image"`
}

// Placement converts to the world form.
func (o ObjectConfig) Placement() world.Placement {
	return world.Placement{ID: o.ID, TileX: o.TileX, TileY: o.TileY, W: o.W, H: o.H, Image: o.Image}
}

// Placements converts every configured object.
func (c Config) Placements() []world.Placement {
	out := make([]world.Placement, 0, len(c.Objects))
	for _, o := range c.Objects {
		out = append(out, o.Placement())
	}
	return out
}

// DialogueConfig holds dialogue text and timing.
type DialogueConfig struct {
	CharsPerSecond float64                 `yaml:"chars_per_second"`
	StartDelayMS   int                     `yaml:"start_delay_ms"`
	IntroDelayMS   int                     `yaml:"intro_delay_ms"`
	Intro          []string                `yaml:"intro"`
	Conversations  []dialogue.Conversation `yaml:"conversations"`
	Layout         dialogue.LayoutSpec     `yaml:"layout"`
}

// Machine converts to the dialogue machine configuration.
func (d DialogueConfig) Machine() dialogue.Config {
	return dialogue.Config{
		StartDelay:     time.Duration(d.StartDelayMS) * time.Millisecond,
		CharsPerSecond: d.CharsPerSecond,
		IntroPages:     d.Intro,
		Conversations:  d.Conversations,
		Layout:         d.Layout,
	}
}

// IntroDelay is how long after start the intro opens.
func (d DialogueConfig) IntroDelay() time.Duration {
	return time.Duration(d.IntroDelayMS) * time.Millisecond
}

// InteractionConfig sizes the prompt button and object hitboxes.
type InteractionConfig struct {
	ButtonSize   float64 `yaml:"button_size"`
	ButtonOffset float64 `yaml:"button_offset"`
	Reach        float64 `yaml:"reach"`
	HitboxW      float64 `yaml:"hitbox_w"`
	HitboxH      float64 `yaml:"hitbox_h"`
	HitboxInset  float64 `yaml:"hitbox_inset"`
}

// Spec converts to the prompt button form.
func (i InteractionConfig) Spec() interaction.Spec {
	return interaction.Spec{ButtonSize: i.ButtonSize, ButtonOffset: i.ButtonOffset, Reach: i.Reach}
}

// Hitbox converts to the object hitbox form.
func (i InteractionConfig) Hitbox() entity.HitboxSpec {
	return entity.HitboxSpec{W: i.HitboxW, H: i.HitboxH, Inset: i.HitboxInset}
}

// AssetsConfig maps asset keys to file paths or URLs. A missing or empty
// reference draws a flat placeholder.
type AssetsConfig struct {
	TimeoutMS int               `yaml:"timeout_ms"`
	Refs      map[string]string `yaml:"refs"`
}

// Timeout bounds the whole asset settle phase.
func (a AssetsConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// TerminalConfig scales the world onto terminal cells.
type TerminalConfig struct {
	PxPerCol       float64 `yaml:"px_per_col"`
	PxPerRow       float64 `yaml:"px_per_row"`
	JoystickRadius int     `yaml:"joystick_radius"` // in cells
}

// Layout snaps a dialogue layout to the cell grid: one text line per row
// and paddings of whole cells.
func (t TerminalConfig) Layout(base dialogue.LayoutSpec) dialogue.LayoutSpec {
	out := base
	out.LineHeight = t.PxPerRow
	out.Padding = t.PxPerRow
	out.Portrait = 2 * t.PxPerRow
	out.PortraitGap = t.PxPerCol
	out.NextButton = t.PxPerRow
	return out
}

// Viewport converts a terminal size in cells to world pixels.
func (t TerminalConfig) Viewport(cols, rows int) (w, h float64) {
	return float64(cols) * t.PxPerCol, float64(rows) * t.PxPerRow
}
