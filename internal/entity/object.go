package entity

import (
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/world"
)

// HitboxSpec sizes an object's collision box. The box sits at the tile
// origin plus Inset on both axes.
type HitboxSpec struct {
	W, H  float64
	Inset float64
}

// DefaultHitbox returns the standard 30x30 hitbox for a tile size.
func DefaultHitbox(tileSize float64) HitboxSpec {
	return HitboxSpec{W: 30, H: 30, Inset: (tileSize - 10) / 2}
}

// PlacedObject is a static thing in the room. It never changes after
// creation.
type PlacedObject struct {
	ID     string
	Pos    core.Vec2 // world position of the render box
	Size   core.Vec2 // render size
	Hitbox core.AABB
	Image  string
}

// NewPlacedObject puts a placement on the map.
func NewPlacedObject(p world.Placement, tileSize float64, hb HitboxSpec) PlacedObject {
	x := float64(p.TileX) * tileSize
	y := float64(p.TileY) * tileSize
	w, h := p.W, p.H
	if w <= 0 {
		w = tileSize
	}
	if h <= 0 {
		h = tileSize
	}
	return PlacedObject{
		ID:     p.ID,
		Pos:    core.V(x, y),
		Size:   core.V(w, h),
		Hitbox: core.Box(x+hb.Inset, y+hb.Inset, hb.W, hb.H),
		Image:  p.Image,
	}
}

// RenderBox returns the drawn rectangle.
func (o *PlacedObject) RenderBox() core.AABB {
	return core.Box(o.Pos.X, o.Pos.Y, o.Size.X, o.Size.Y)
}

// Objects is the placed object set, iterated in collection order.
type Objects []PlacedObject

// NewObjects builds the object set from placements.
func NewObjects(placements []world.Placement, tileSize float64, hb HitboxSpec) Objects {
	objs := make(Objects, 0, len(placements))
	for _, p := range placements {
		objs = append(objs, NewPlacedObject(p, tileSize, hb))
	}
	return objs
}

// FirstOverlap returns the first object whose hitbox overlaps box.
func (objs Objects) FirstOverlap(box core.AABB) (*PlacedObject, bool) {
	for i := range objs {
		if objs[i].Hitbox.Intersects(box) {
			return &objs[i], true
		}
	}
	return nil, false
}
