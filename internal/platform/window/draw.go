package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/game"
)

// dialogBorder is the width of the dialogue box outline.
const dialogBorder = 4

// promptBob is how far the prompt floats up at the top of its pulse.
const promptBob = 4

var (
	stickBaseColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	stickHandleColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x90}
)

// Draw paints the frame in the order tiles, objects, prompt, player,
// dialogue.
func (w *Window) Draw(screen *ebiten.Image) {
	v := w.game.View()
	screen.Fill(core.ColorVoid.NRGBA())

	if v.Error != "" {
		w.drawError(screen, v.Error)
		return
	}

	for _, t := range v.Tiles {
		w.drawSprite(screen, game.SpriteView{Key: t.Key, Color: t.Color, Box: t.Box})
	}
	for _, o := range v.Objects {
		w.drawSprite(screen, o)
	}
	if v.Prompt.Visible {
		p := v.Prompt.SpriteView
		p.Box = p.Box.Translate(core.V(0, -promptBob*float64(w.pulse.value)))
		w.drawSprite(screen, p)
	}
	w.drawSprite(screen, v.Player)

	if v.Dialog.Visible {
		w.drawDialog(screen, v.Dialog)
	}
	w.drawStick(screen)

	if v.Paused {
		w.drawCentered(screen, "PAUSED", float64(fontSize), core.ColorWhite)
	}
}

// image converts a settled asset to an ebiten image on first use.
func (w *Window) image(key string) *ebiten.Image {
	if img, ok := w.images[key]; ok {
		return img
	}
	src, ok := w.game.Image(key)
	if !ok {
		w.images[key] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	w.images[key] = img
	return img
}

// drawSprite scales an image into its box, or fills the box with the
// fallback color when the image is missing.
func (w *Window) drawSprite(dst *ebiten.Image, s game.SpriteView) {
	img := w.image(s.Key)
	if img == nil {
		fillBox(dst, s.Box, s.Color.NRGBA())
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.Box.W/float64(b.Dx()), s.Box.H/float64(b.Dy()))
	op.GeoM.Translate(s.Box.X, s.Box.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func fillBox(dst *ebiten.Image, b core.AABB, c color.Color) {
	vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
}

func (w *Window) drawDialog(dst *ebiten.Image, d game.DialogView) {
	l := d.Layout
	fillBox(dst, l.Box, core.ColorDialogueBox.NRGBA())
	vector.StrokeRect(dst, float32(l.Box.X), float32(l.Box.Y), float32(l.Box.W), float32(l.Box.H),
		dialogBorder, core.ColorBlack.NRGBA(), false)

	if d.Portrait != "" {
		w.drawSprite(dst, game.SpriteView{Key: d.Portrait, Color: core.ColorDialogueBox, Box: l.Portrait})
	}

	for i, line := range d.Lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(l.TextOrigin.X, l.TextOrigin.Y+float64(i)*l.LineHeight)
		op.ColorScale.ScaleWithColor(core.ColorWhite.NRGBA())
		text.Draw(dst, line, w.face, op)
	}

	if l.NextVisible {
		next := game.SpriteView{Key: game.KeyNextButton, Color: core.ColorNextButton, Box: l.Next}
		img := w.image(next.Key)
		if img == nil {
			w.drawSprite(dst, next)
			return
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(l.Next.W/float64(b.Dx()), l.Next.H/float64(b.Dy()))
		op.GeoM.Translate(l.Next.X, l.Next.Y)
		op.ColorScale.ScaleAlpha(0.6 + 0.4*w.pulse.value)
		dst.DrawImage(img, op)
	}
}

// drawStick shows the joystick base and its handle.
func (w *Window) drawStick(dst *ebiten.Image) {
	base := w.pointer.base
	vector.FillCircle(dst, float32(base.X), float32(base.Y), stickRadius, stickBaseColor, true)
	h := base.Add(w.pointer.stick.Handle)
	vector.FillCircle(dst, float32(h.X), float32(h.Y), stickRadius/3, stickHandleColor, true)
}

func (w *Window) drawCentered(dst *ebiten.Image, s string, y float64, c core.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(w.width)-text.Advance(s, w.face))/2, y)
	op.ColorScale.ScaleWithColor(c.NRGBA())
	text.Draw(dst, s, w.face, op)
}

// drawError is the persistent screen shown when the map did not load.
func (w *Window) drawError(dst *ebiten.Image, msg string) {
	dst.Fill(core.ColorBlack.NRGBA())
	w.drawCentered(dst, msg, float64(w.height)/2, core.ColorError)
}
