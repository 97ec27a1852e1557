package game

import (
	"github.com/vovakirdan/devden/internal/camera"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/world"
)

// View is a screen-space snapshot of one frame for pixel frontends. Every
// box is already offset by the camera.
type View struct {
	Viewport core.Vec2
	Camera   core.Vec2

	Tiles   []TileView
	Objects []SpriteView
	Player  SpriteView
	Prompt  PromptView
	Dialog  DialogView

	Paused bool
	// Error is the startup failure text; nothing else is set when it is.
	Error string
}

// TileView is one visible map cell.
type TileView struct {
	Tile  world.Tile
	Key   string
	Color core.Color
	Box   core.AABB
}

// SpriteView is an image drawn at a box, with the color to fill instead
// when the image is missing.
type SpriteView struct {
	Key   string
	Color core.Color
	Box   core.AABB
}

// PromptView is the interaction button.
type PromptView struct {
	Visible bool
	SpriteView
}

// DialogView is the dialogue overlay.
type DialogView struct {
	Visible  bool
	Layout   dialogue.Layout
	Lines    []string
	Portrait string // asset key, empty when no portrait is shown
}

// View builds the snapshot for the current frame.
func (g *Game) View() View {
	v := View{Viewport: g.viewport, Camera: g.camera, Paused: g.paused}
	if g.err != nil {
		v.Error = LoadErrorText
		return v
	}

	visible := camera.Visible(g.camera, g.viewport)
	cols, rows := g.grid.Covering(visible)
	for row := rows.Start; row < rows.End; row++ {
		for col := cols.Start; col < cols.End; col++ {
			t := g.grid.At(row, col)
			v.Tiles = append(v.Tiles, TileView{
				Tile:  t,
				Key:   TileKey(t),
				Color: tileColor(t),
				Box:   g.toScreen(g.grid.TileBox(row, col)),
			})
		}
	}

	for i := range g.objects {
		o := &g.objects[i]
		box := o.RenderBox()
		if !box.Intersects(visible) {
			continue
		}
		v.Objects = append(v.Objects, SpriteView{Key: o.Image, Color: core.ColorObject, Box: g.toScreen(box)})
	}

	if a := g.affordance; a.Visible {
		v.Prompt = PromptView{
			Visible:    true,
			SpriteView: SpriteView{Key: KeyInteraction, Color: core.ColorAffordance, Box: a.ScreenBox()},
		}
	}

	v.Player = SpriteView{
		Key:   PlayerKey(g.player.Facing),
		Color: core.ColorPlayer,
		Box:   g.toScreen(g.player.SpriteBox()),
	}

	if g.dialogue.Showing() {
		v.Dialog = DialogView{
			Visible:  true,
			Layout:   g.dialogue.Layout(),
			Lines:    g.dialogue.Lines(),
			Portrait: PortraitKey(g.dialogue.Speaker()),
		}
	}
	return v
}

func (g *Game) toScreen(b core.AABB) core.AABB {
	return b.Translate(g.camera.Scale(-1))
}

// tileColor is the flat color for a tile. Unknown cells are left dark.
func tileColor(t world.Tile) core.Color {
	switch t {
	case world.TileWall:
		return core.ColorWall
	case world.TileCarpet:
		return core.ColorCarpet
	default:
		return core.ColorVoid
	}
}
