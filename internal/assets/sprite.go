package assets

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/devden/internal/core"
)

// alphaCutoff is the alpha below which a sprite pixel is transparent.
const alphaCutoff = 0x80

// Sprite is an image resampled to a small pixel grid for cell-based
// drawing. Transparent pixels hold ColorDefault.
type Sprite struct {
	W, H int
	pix  []core.Color
}

// NewSprite scales img to w x h pixels with nearest-neighbor sampling,
// which keeps pixel-art edges hard.
func NewSprite(img image.Image, w, h int) *Sprite {
	s := &Sprite{W: core.Max(w, 0), H: core.Max(h, 0)}
	s.pix = make([]core.Color, s.W*s.H)
	if img == nil || s.W == 0 || s.H == 0 {
		return s
	}

	dst := image.NewNRGBA(image.Rect(0, 0, s.W, s.H))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			c := dst.NRGBAAt(x, y)
			if c.A < alphaCutoff {
				continue
			}
			s.pix[y*s.W+x] = core.RGB(c.R, c.G, c.B)
		}
	}
	return s
}

// At returns the pixel color, or ColorDefault outside the sprite.
func (s *Sprite) At(x, y int) core.Color {
	if s == nil || x < 0 || y < 0 || x >= s.W || y >= s.H {
		return core.ColorDefault
	}
	return s.pix[y*s.W+x]
}

// SpriteCache keeps scaled sprites per key and size, so each image is
// resampled once per zoom level.
type SpriteCache struct {
	images  map[string]image.Image
	sprites map[spriteKey]*Sprite
}

type spriteKey struct {
	name string
	w, h int
}

// NewSpriteCache wraps a set of decoded images.
func NewSpriteCache(images map[string]image.Image) *SpriteCache {
	return &SpriteCache{images: images, sprites: make(map[spriteKey]*Sprite)}
}

// Get returns the sprite for name at w x h, or nil if the image is absent.
func (c *SpriteCache) Get(name string, w, h int) *Sprite {
	if c == nil {
		return nil
	}
	img, ok := c.images[name]
	if !ok {
		return nil
	}
	k := spriteKey{name: name, w: w, h: h}
	if s, ok := c.sprites[k]; ok {
		return s
	}
	s := NewSprite(img, w, h)
	c.sprites[k] = s
	return s
}

// Image returns the decoded image for name.
func (c *SpriteCache) Image(name string) (image.Image, bool) {
	if c == nil {
		return nil, false
	}
	img, ok := c.images[name]
	return img, ok
}
