// Package camera computes the viewport origin that keeps the player on
// screen without showing space outside the map.
package camera

import "github.com/vovakirdan/devden/internal/core"

// Follow centers a viewport on center and clamps it to the map. On an axis
// where the map is smaller than the viewport, the map is centered instead
// and the origin goes negative.
func Follow(center, viewport, mapSize core.Vec2) core.Vec2 {
	return core.V(
		axis(center.X, viewport.X, mapSize.X),
		axis(center.Y, viewport.Y, mapSize.Y),
	)
}

func axis(center, view, size float64) float64 {
	if size < view {
		return (size - view) / 2
	}
	return core.ClampF(center-view/2, 0, size-view)
}

// ToWorld converts a screen point to world space.
func ToWorld(origin, screen core.Vec2) core.Vec2 {
	return screen.Add(origin)
}

// ToScreen converts a world point to screen space.
func ToScreen(origin, world core.Vec2) core.Vec2 {
	return world.Sub(origin)
}

// Visible returns the viewport rectangle in world space.
func Visible(origin, viewport core.Vec2) core.AABB {
	return core.Box(origin.X, origin.Y, viewport.X, viewport.Y)
}
