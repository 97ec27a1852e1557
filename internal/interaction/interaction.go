// Package interaction finds the placed object the player is standing at and
// positions the "!" prompt above it.
package interaction

import (
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/entity"
)

// Spec sizes and places the prompt button.
type Spec struct {
	ButtonSize   float64 `yaml:"button_size"`
	ButtonOffset float64 `yaml:"button_offset"` // gap between the button and the object top
	// Reach grows the player's collision box before the overlap test. The
	// resolver leaves the player flush against a hitbox, never inside it,
	// so a zero reach only fires when the player starts overlapping.
	Reach float64 `yaml:"reach"`
}

// DefaultSpec returns the standard 32px prompt, 10px above the object.
func DefaultSpec() Spec {
	return Spec{ButtonSize: 32, ButtonOffset: 10, Reach: 4}
}

// Affordance is the prompt state for one frame.
type Affordance struct {
	Visible bool
	Object  *entity.PlacedObject
	Button  core.AABB // world space
	Screen  core.Vec2 // button top-left in screen space
}

// ScreenBox returns the button in screen space.
func (a Affordance) ScreenBox() core.AABB {
	return core.Box(a.Screen.X, a.Screen.Y, a.Button.W, a.Button.H)
}

// Hit reports whether a screen point lands on the visible button.
func (a Affordance) Hit(screen core.Vec2) bool {
	return a.Visible && a.ScreenBox().ContainsPoint(screen)
}

// Detect tests the player's collision box against every object hitbox. The
// first overlap in collection order wins. The result is built from scratch
// on every call.
func Detect(player core.AABB, objects entity.Objects, camera core.Vec2, spec Spec) Affordance {
	obj, ok := objects.FirstOverlap(player.Inflate(spec.Reach))
	if !ok {
		return Affordance{}
	}
	button := core.Box(
		obj.Pos.X+(obj.Size.X-spec.ButtonSize)/2,
		obj.Pos.Y-spec.ButtonSize-spec.ButtonOffset,
		spec.ButtonSize, spec.ButtonSize,
	)
	return Affordance{
		Visible: true,
		Object:  obj,
		Button:  button,
		Screen:  button.Min().Sub(camera),
	}
}
