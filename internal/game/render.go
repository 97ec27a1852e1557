package game

import (
	"math"

	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/world"
)

// halfBlock draws two stacked pixels per cell: the foreground is the upper
// pixel and the background the lower one.
const halfBlock = '▀'

// canvas is the pixel grid behind a cell screen. One pixel covers pw x ph
// world pixels and is sampled at its center.
type canvas struct {
	w, h   int
	pw, ph float64
	pix    []core.Color
}

func newCanvas(w, h int, pw, ph float64) *canvas {
	return &canvas{w: w, h: h, pw: pw, ph: ph, pix: make([]core.Color, w*h)}
}

func (c *canvas) set(x, y int, col core.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || !col.IsSet() {
		return
	}
	c.pix[y*c.w+x] = col
}

func (c *canvas) at(x, y int) core.Color {
	return c.pix[y*c.w+x]
}

// span returns the pixels whose centers fall inside [lo, hi).
func span(lo, hi, size float64) (int, int) {
	return int(math.Ceil(lo/size - 0.5)), int(math.Ceil(hi/size - 0.5))
}

// box paints a screen-space box with the sprite under key, or with
// fallback where there is no sprite. Transparent sprite pixels keep what
// is already there.
func (c *canvas) box(g *Game, b core.AABB, key string, fallback core.Color) {
	x0, x1 := span(b.X, b.Right(), c.pw)
	y0, y1 := span(b.Y, b.Bottom(), c.ph)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	sprite := g.sprites.Get(key, x1-x0, y1-y0)
	for y := core.Max(y0, 0); y < core.Min(y1, c.h); y++ {
		for x := core.Max(x0, 0); x < core.Min(x1, c.w); x++ {
			if sprite == nil {
				c.set(x, y, fallback)
				continue
			}
			c.set(x, y, sprite.At(x-x0, y-y0))
		}
	}
}

// flush writes the pixels into the screen as half-block cells.
func (c *canvas) flush(dst *core.Screen) {
	for y := 0; y < dst.Height() && 2*y+1 < c.h; y++ {
		for x := 0; x < dst.Width() && x < c.w; x++ {
			dst.SetCell(x, y, core.Cell{Rune: halfBlock, Fg: c.at(x, 2*y), Bg: c.at(x, 2*y+1)})
		}
	}
}

// Render draws the frame into a terminal screen. Draw order is tiles,
// objects, prompt, player, then the dialogue overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.err != nil {
		renderError(dst)
		return
	}

	term := g.cfg.Terminal
	c := newCanvas(dst.Width(), dst.Height()*2, term.PxPerCol, term.PxPerRow/2)
	g.paintTiles(c)
	for i := range g.objects {
		o := &g.objects[i]
		c.box(g, g.toScreen(o.RenderBox()), o.Image, core.ColorObject)
	}
	if g.affordance.Visible {
		c.box(g, g.affordance.ScreenBox(), KeyInteraction, core.ColorAffordance)
	}
	c.box(g, g.toScreen(g.player.SpriteBox()), PlayerKey(g.player.Facing), core.ColorPlayer)
	c.flush(dst)

	if g.affordance.Visible {
		g.markCenter(dst, g.affordance.ScreenBox(), '!', core.ColorBlack)
	}
	if g.dialogue.Showing() {
		g.renderDialogue(dst)
	}
	if g.paused {
		label := " PAUSED "
		dst.DrawStyledText((dst.Width()-len(label))/2, 0, label, core.ColorBlack, core.ColorWhite)
	}
}

// paintTiles samples the grid at every pixel center. Cells outside the
// declared map stay dark.
func (g *Game) paintTiles(c *canvas) {
	tile := g.grid.TileSize
	tilePxW := int(math.Round(tile / c.pw))
	tilePxH := int(math.Round(tile / c.ph))
	for y := 0; y < c.h; y++ {
		wy := g.camera.Y + (float64(y)+0.5)*c.ph
		row := int(math.Floor(wy / tile))
		for x := 0; x < c.w; x++ {
			wx := g.camera.X + (float64(x)+0.5)*c.pw
			col := int(math.Floor(wx / tile))
			if row < 0 || col < 0 || row >= g.grid.Rows || col >= g.grid.Cols {
				c.set(x, y, core.ColorVoid)
				continue
			}
			t := g.grid.At(row, col)
			color := tileColor(t)
			if t != world.TileUnknown {
				if s := g.sprites.Get(TileKey(t), tilePxW, tilePxH); s != nil {
					lx := int((wx - float64(col)*tile) / c.pw)
					ly := int((wy - float64(row)*tile) / c.ph)
					if px := s.At(lx, ly); px.IsSet() {
						color = px
					}
				}
			}
			c.set(x, y, color)
		}
	}
}

// cellBox converts a screen-space box to the cells it touches.
func (g *Game) cellBox(b core.AABB) core.Rect {
	term := g.cfg.Terminal
	x0 := int(math.Floor(b.X / term.PxPerCol))
	y0 := int(math.Floor(b.Y / term.PxPerRow))
	x1 := int(math.Ceil(b.Right() / term.PxPerCol))
	y1 := int(math.Ceil(b.Bottom() / term.PxPerRow))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// markCenter puts a glyph on the cell under the middle of b, keeping the
// lower pixel as its background.
func (g *Game) markCenter(dst *core.Screen, b core.AABB, r rune, fg core.Color) {
	term := g.cfg.Terminal
	center := b.Center()
	x := int(math.Floor(center.X / term.PxPerCol))
	y := int(math.Floor(center.Y / term.PxPerRow))
	cell := dst.GetCell(x, y)
	dst.SetCell(x, y, core.Cell{Rune: r, Fg: fg, Bg: cell.Fg})
}

func (g *Game) renderDialogue(dst *core.Screen) {
	layout := g.dialogue.Layout()
	box := g.cellBox(layout.Box)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.SetCell(x, y, core.Cell{Rune: ' ', Fg: core.ColorBlack, Bg: core.ColorDialogueBox})
		}
	}
	dst.DrawBox(box)

	if key := PortraitKey(g.dialogue.Speaker()); key != "" {
		g.blitCells(dst, layout.Portrait, key, core.ColorDialogueBox)
	}

	term := g.cfg.Terminal
	tx := int(math.Floor(layout.TextOrigin.X / term.PxPerCol))
	ty := int(math.Floor(layout.TextOrigin.Y / term.PxPerRow))
	for i, line := range g.dialogue.Lines() {
		dst.DrawStyledText(tx, ty+i, line, core.ColorWhite, core.ColorDialogueBox)
	}

	if layout.NextVisible {
		g.blitCells(dst, layout.Next, KeyNextButton, core.ColorNextButton)
		g.markCenter(dst, layout.Next, '>', core.ColorWhite)
	}
}

// blitCells draws an image straight into cells as half blocks, for UI
// pieces that sit above the world canvas.
func (g *Game) blitCells(dst *core.Screen, b core.AABB, key string, fallback core.Color) {
	r := g.cellBox(b)
	sprite := g.sprites.Get(key, r.W, r.H*2)
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			top, bottom := fallback, fallback
			if sprite != nil {
				top = orColor(sprite.At(x, 2*y), core.ColorDialogueBox)
				bottom = orColor(sprite.At(x, 2*y+1), core.ColorDialogueBox)
			}
			dst.SetCell(r.X+x, r.Y+y, core.Cell{Rune: halfBlock, Fg: top, Bg: bottom})
		}
	}
}

func orColor(c, fallback core.Color) core.Color {
	if c.IsSet() {
		return c
	}
	return fallback
}

// renderError draws the fixed startup failure screen.
func renderError(dst *core.Screen) {
	dst.Fill(core.ColorBlack)
	text := LoadErrorText
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawStyledText(core.Max(x, 0), dst.Height()/2, text, core.ColorError, core.ColorBlack)
}
