package dialogue

import (
	"math"

	"github.com/vovakirdan/devden/internal/core"
)

// LayoutSpec sizes the dialogue box relative to the viewport.
type LayoutSpec struct {
	WidthFrac   float64 `yaml:"width_frac"`
	Padding     float64 `yaml:"padding"`
	LineHeight  float64 `yaml:"line_height"`
	MinHeight   float64 `yaml:"min_height"`
	Portrait    float64 `yaml:"portrait"`
	PortraitGap float64 `yaml:"portrait_gap"`
	NextButton  float64 `yaml:"next_button"`
}

// DefaultLayout returns the standard box geometry.
func DefaultLayout() LayoutSpec {
	return LayoutSpec{
		WidthFrac:   0.75,
		Padding:     20,
		LineHeight:  30,
		MinHeight:   120,
		Portrait:    64,
		PortraitGap: 10,
		NextButton:  32,
	}
}

// Layout is the dialogue box resolved to screen space.
type Layout struct {
	Box        core.AABB
	Portrait   core.AABB // zero unless a speaker portrait is shown
	TextOrigin core.Vec2 // top-left of the first text line
	TextWidth  float64
	LineHeight float64
	Next       core.AABB
	// NextVisible is false until the page is fully revealed.
	NextVisible bool
}

// textWidth is the wrap width available to text in a box on a viewport of
// width viewportW.
func (s LayoutSpec) textWidth(viewportW float64, portrait bool) float64 {
	w := viewportW*s.WidthFrac - 2*s.Padding
	if portrait {
		w -= s.Portrait + s.PortraitGap
	}
	return w
}

// resolve places a box holding lines of text in the middle of the viewport.
func (s LayoutSpec) resolve(viewport core.Vec2, lines int, portrait, nextVisible bool) Layout {
	boxW := viewport.X * s.WidthFrac
	boxH := math.Max(s.MinHeight, float64(lines)*s.LineHeight+2*s.Padding)
	box := core.Box((viewport.X-boxW)/2, (viewport.Y-boxH)/2, boxW, boxH)

	next := core.Box(
		box.Right()-s.NextButton-s.Padding,
		box.Bottom()-s.NextButton-s.Padding,
		s.NextButton, s.NextButton,
	)
	l := Layout{
		Box:         box,
		TextOrigin:  core.V(box.X+s.Padding, box.Y+s.Padding),
		TextWidth:   s.textWidth(viewport.X, portrait),
		LineHeight:  s.LineHeight,
		Next:        next,
		NextVisible: nextVisible,
	}
	if portrait {
		l.Portrait = core.Box(box.X+s.Padding, box.Y+s.Padding, s.Portrait, s.Portrait)
		l.TextOrigin.X += s.Portrait + s.PortraitGap
	}
	return l
}
