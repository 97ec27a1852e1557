package window

import (
	"github.com/vovakirdan/devden/internal/core"
)

// Joystick geometry in screen pixels.
const (
	stickRadius = 60
	stickMargin = 30
)

// stickBase is the joystick's resting center for a window of w x h.
func stickBase(w, h int) core.Vec2 {
	return core.V(stickMargin+stickRadius, float64(h)-stickMargin-stickRadius)
}

// pointerID tells the mouse apart from touches. Touch ids are offset by one
// so the zero value is the mouse.
type pointerID int

const mousePointer pointerID = 0

func touchPointer(id int) pointerID {
	return pointerID(id + 1)
}

// pointerRouter sends a press on the joystick base to the stick and every
// other press to the game as a click. The pointer that grabbed the stick
// keeps it until it is released.
type pointerRouter struct {
	stick  *core.Joystick
	base   core.Vec2
	owner  pointerID
	holder bool
}

func newPointerRouter(maxDistance float64) *pointerRouter {
	return &pointerRouter{stick: core.NewJoystick(maxDistance)}
}

// press handles a new pointer at p.
func (r *pointerRouter) press(id pointerID, p core.Vec2, in *core.InputFrame) {
	off := p.Sub(r.base)
	if !r.holder && off.Len() <= r.stick.MaxDistance {
		r.owner, r.holder = id, true
		r.stick.Start(off)
		return
	}
	in.Click(p)
}

// move drags the stick if id holds it.
func (r *pointerRouter) move(id pointerID, p core.Vec2) {
	if r.holder && r.owner == id {
		r.stick.Move(p.Sub(r.base))
	}
}

// release frees the stick if id holds it.
func (r *pointerRouter) release(id pointerID) {
	if r.holder && r.owner == id {
		r.holder = false
		r.stick.Stop()
	}
}

// keyVector combines held direction keys into a unit direction.
func keyVector(up, down, left, right bool) (core.Vec2, bool) {
	var v core.Vec2
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	l := v.Len()
	if l == 0 {
		return core.Vec2{}, false
	}
	return v.Scale(1 / l), true
}
