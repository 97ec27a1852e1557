// Package entity holds the things that live on the map: the player and the
// static objects placed around the room.
package entity

import (
	"github.com/vovakirdan/devden/internal/core"
)

// movementThreshold is the horizontal stick deflection needed before the
// sprite turns left or right.
const movementThreshold = 0.1

// PlayerSpec holds the player's fixed geometry and tuning.
type PlayerSpec struct {
	SpriteW, SpriteH       float64
	CollisionW, CollisionH float64
	OffsetX, OffsetY       float64 // collision box offset from the sprite origin
	Speed                  float64 // pixels per frame at full deflection
	AnimationFrames        int     // frames between walk-cycle toggles
}

// DefaultPlayerSpec returns the standard player geometry.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		SpriteW:         96,
		SpriteH:         90,
		CollisionW:      24,
		CollisionH:      50,
		OffsetX:         (96 - 25) / 2.0,
		OffsetY:         90 - 60,
		Speed:           5,
		AnimationFrames: 15,
	}
}

// Player is the controllable character. Pos is the top-left of the sprite;
// the collision box is smaller and sits at a fixed offset inside it.
type Player struct {
	PlayerSpec
	Pos    core.Vec2
	Facing Facing

	spriteCounter int
	spriteNum     int
}

// NewPlayer creates an idle player at pos.
func NewPlayer(spec PlayerSpec, pos core.Vec2) *Player {
	return &Player{PlayerSpec: spec, Pos: pos, spriteNum: 1}
}

// CollisionBox returns the collision box at the current position.
func (p *Player) CollisionBox() core.AABB {
	return p.CollisionBoxAt(p.Pos)
}

// CollisionBoxAt returns the collision box the player would have at pos.
func (p *Player) CollisionBoxAt(pos core.Vec2) core.AABB {
	return core.Box(pos.X+p.OffsetX, pos.Y+p.OffsetY, p.CollisionW, p.CollisionH)
}

// SpriteBox returns the visual rectangle.
func (p *Player) SpriteBox() core.AABB {
	return core.Box(p.Pos.X, p.Pos.Y, p.SpriteW, p.SpriteH)
}

// Center is the middle of the sprite, which the camera follows.
func (p *Player) Center() core.Vec2 {
	return p.SpriteBox().Center()
}

// SpriteNum is the current walk-cycle frame, 1 or 2.
func (p *Player) SpriteNum() int {
	return p.spriteNum
}

// Velocity converts a stick direction into this frame's displacement.
func (p *Player) Velocity(dir core.Vec2, engaged bool) core.Vec2 {
	if !engaged {
		return core.Vec2{}
	}
	return dir.Scale(p.Speed)
}

// Animate advances the walk cycle and picks the facing for this frame.
// The counter counts processed frames, so the cycle speed is tied to the
// fixed tick rate.
func (p *Player) Animate(dir core.Vec2, engaged bool) {
	p.spriteCounter++
	if p.spriteCounter >= p.AnimationFrames {
		if p.spriteNum == 1 {
			p.spriteNum = 2
		} else {
			p.spriteNum = 1
		}
		p.spriteCounter = 0
	}

	if !engaged {
		p.Facing = FacingIdle
		p.spriteNum = 1
		p.spriteCounter = 0
		return
	}

	switch {
	case dir.X > movementThreshold:
		p.Facing = walkFacing(FacingRight1, p.spriteNum)
	case dir.X < -movementThreshold:
		p.Facing = walkFacing(FacingLeft1, p.spriteNum)
	default:
		p.Facing = FacingIdle
	}
}

func walkFacing(first Facing, spriteNum int) Facing {
	if spriteNum == 2 {
		return first + 1
	}
	return first
}
