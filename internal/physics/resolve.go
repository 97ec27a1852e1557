// Package physics moves the player through the room without letting its
// collision box overlap walls or placed objects.
package physics

import (
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/entity"
	"github.com/vovakirdan/devden/internal/world"
)

// HitKind says what stopped movement on an axis.
type HitKind int

const (
	HitNone HitKind = iota
	HitWall
	HitObject
)

func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitObject:
		return "object"
	default:
		return "none"
	}
}

// Hit describes the obstacle that clamped one axis.
type Hit struct {
	Kind     HitKind
	Row, Col int                  // set for walls
	Object   *entity.PlacedObject // set for objects
}

// Contact reports what the resolver ran into during one move.
type Contact struct {
	X, Y Hit
	// Clamped is true when the map bounds changed the position.
	Clamped bool
}

// Blocked reports whether either axis hit something.
func (c Contact) Blocked() bool {
	return c.X.Kind != HitNone || c.Y.Kind != HitNone
}

// Resolver sweeps the player against the grid and the placed objects.
type Resolver struct {
	Grid    *world.Grid
	Objects entity.Objects
}

// NewResolver creates a resolver over a grid and object set.
func NewResolver(grid *world.Grid, objects entity.Objects) *Resolver {
	return &Resolver{Grid: grid, Objects: objects}
}

// Resolve moves p from its current position by delta and returns the
// corrected sprite position. X is resolved first, then Y at the corrected
// X, then the sprite is clamped into the map. On each axis the first wall
// tile found in row-major order wins; objects are only checked when no
// wall was hit, and at most one clamp is applied per axis.
func (r *Resolver) Resolve(p *entity.Player, delta core.Vec2) (core.Vec2, Contact) {
	var contact Contact
	pos := p.Pos

	if delta.X != 0 {
		pos.X, contact.X = r.resolveX(p, core.V(pos.X+delta.X, pos.Y), delta.X)
	}
	if delta.Y != 0 {
		pos.Y, contact.Y = r.resolveY(p, core.V(pos.X, pos.Y+delta.Y), delta.Y)
	}

	clamped := r.clamp(p, pos)
	contact.Clamped = clamped != pos
	return clamped, contact
}

func (r *Resolver) resolveX(p *entity.Player, cand core.Vec2, dx float64) (float64, Hit) {
	box := p.CollisionBoxAt(cand)
	obstacle, hit, ok := r.firstObstacle(box)
	if !ok {
		return cand.X, Hit{}
	}
	if dx > 0 {
		return obstacle.X - p.CollisionW - p.OffsetX, hit
	}
	return obstacle.Right() - p.OffsetX, hit
}

func (r *Resolver) resolveY(p *entity.Player, cand core.Vec2, dy float64) (float64, Hit) {
	box := p.CollisionBoxAt(cand)
	obstacle, hit, ok := r.firstObstacle(box)
	if !ok {
		return cand.Y, Hit{}
	}
	if dy > 0 {
		return obstacle.Y - p.CollisionH - p.OffsetY, hit
	}
	return obstacle.Bottom() - p.OffsetY, hit
}

// firstObstacle returns the first wall tile overlapping box, or failing
// that the first overlapping object hitbox.
func (r *Resolver) firstObstacle(box core.AABB) (core.AABB, Hit, bool) {
	if r.Grid != nil {
		cols, rows := r.Grid.Covering(box)
		for row := rows.Start; row < rows.End; row++ {
			for col := cols.Start; col < cols.End; col++ {
				if !r.Grid.IsWall(row, col) {
					continue
				}
				tile := r.Grid.TileBox(row, col)
				if tile.Intersects(box) {
					return tile, Hit{Kind: HitWall, Row: row, Col: col}, true
				}
			}
		}
	}

	if obj, ok := r.Objects.FirstOverlap(box); ok {
		return obj.Hitbox, Hit{Kind: HitObject, Object: obj}, true
	}
	return core.AABB{}, Hit{}, false
}

// clamp keeps the whole sprite inside the map.
func (r *Resolver) clamp(p *entity.Player, pos core.Vec2) core.Vec2 {
	if r.Grid == nil {
		return pos
	}
	return core.V(
		core.ClampF(pos.X, 0, r.Grid.WidthPx()-p.SpriteW),
		core.ClampF(pos.Y, 0, r.Grid.HeightPx()-p.SpriteH),
	)
}
