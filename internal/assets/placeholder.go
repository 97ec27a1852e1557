package assets

import (
	"image"
	"image/draw"

	"github.com/vovakirdan/devden/internal/core"
)

// Placeholder describes the flat image used when an asset is missing.
type Placeholder struct {
	W, H  int
	Color core.Color
}

// Image renders the placeholder. Sizes below one pixel are raised to one.
func (p Placeholder) Image() *image.RGBA {
	w, h := core.Max(p.W, 1), core.Max(p.H, 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: p.Color.NRGBA()}, image.Point{}, draw.Src)
	return img
}
