package tui

import (
	"math"
	"time"

	"github.com/vovakirdan/devden/internal/core"
)

// Terminals send no key-up events, so a movement key counts as held until
// its repeats stop arriving.
const (
	// firstHold covers the terminal's delay before auto-repeat starts.
	firstHold = 550 * time.Millisecond
	// repeatHold is how long a key stays held after its last repeat.
	repeatHold = 150 * time.Millisecond
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

var dirVectors = [dirCount]core.Vec2{
	dirUp:    {X: 0, Y: -1},
	dirDown:  {X: 0, Y: 1},
	dirLeft:  {X: -1, Y: 0},
	dirRight: {X: 1, Y: 0},
}

func (d direction) opposite() direction {
	switch d {
	case dirUp:
		return dirDown
	case dirDown:
		return dirUp
	case dirLeft:
		return dirRight
	default:
		return dirLeft
	}
}

type keyState struct {
	lastSeen time.Duration
	repeated bool
	held     bool
}

// heldKeys turns movement key presses into a stick direction.
type heldKeys struct {
	keys [dirCount]keyState
}

// press records a key event. Pressing a direction releases its opposite.
func (h *heldKeys) press(d direction, now time.Duration) {
	k := &h.keys[d]
	if k.held && now-k.lastSeen < firstHold {
		k.repeated = true
	} else {
		k.repeated = false
	}
	k.held = true
	k.lastSeen = now
	h.keys[d.opposite()] = keyState{}
}

// expire drops keys whose repeats have stopped.
func (h *heldKeys) expire(now time.Duration) {
	for d := range h.keys {
		k := &h.keys[d]
		if !k.held {
			continue
		}
		hold := firstHold
		if k.repeated {
			hold = repeatHold
		}
		if now-k.lastSeen >= hold {
			*k = keyState{}
		}
	}
}

// vector returns the combined direction, normalized so diagonals are not
// faster, and whether any key is held.
func (h *heldKeys) vector(now time.Duration) (core.Vec2, bool) {
	h.expire(now)
	var v core.Vec2
	held := false
	for d, k := range h.keys {
		if k.held {
			v = v.Add(dirVectors[d])
			held = true
		}
	}
	if l := v.Len(); l > 0 {
		v = v.Scale(1 / l)
	}
	return v, held
}

// apply writes the held direction into an input frame.
func (h *heldKeys) apply(f *core.InputFrame, now time.Duration) {
	f.Move, f.Engaged = h.vector(now)
}

// stickLayout places the on-screen joystick in the bottom-left corner of a
// cell screen and converts cell positions to pixel offsets from its center.
type stickLayout struct {
	pxPerCol, pxPerRow float64
	radius             int // in columns
	centerX, centerY   int
}

func newStickLayout(pxPerCol, pxPerRow float64, radius, height int) stickLayout {
	rows := int(math.Ceil(float64(radius) * pxPerCol / pxPerRow))
	return stickLayout{
		pxPerCol: pxPerCol,
		pxPerRow: pxPerRow,
		radius:   radius,
		centerX:  radius + 1,
		centerY:  height - rows - 1,
	}
}

// maxDistance is the handle travel in pixels.
func (s stickLayout) maxDistance() float64 {
	return float64(s.radius) * s.pxPerCol
}

// offset converts a cell to a pixel offset from the joystick center.
func (s stickLayout) offset(x, y int) core.Vec2 {
	return core.V(float64(x-s.centerX)*s.pxPerCol, float64(y-s.centerY)*s.pxPerRow)
}

// contains reports whether a cell lies on the joystick base.
func (s stickLayout) contains(x, y int) bool {
	return s.offset(x, y).Len() <= s.maxDistance()
}

// cellCenter converts a cell to the screen pixel at its middle.
func cellCenter(x, y int, pxPerCol, pxPerRow float64) core.Vec2 {
	return core.V((float64(x)+0.5)*pxPerCol, (float64(y)+0.5)*pxPerRow)
}

// drawStick overlays the joystick base and handle onto a screen.
func drawStick(dst *core.Screen, s stickLayout, stick *core.Joystick) {
	maxD := s.maxDistance()
	for y := s.centerY - s.radius; y <= s.centerY+s.radius; y++ {
		for x := s.centerX - s.radius; x <= s.centerX+s.radius; x++ {
			d := s.offset(x, y).Len()
			if d > maxD || d < maxD-s.pxPerCol {
				continue
			}
			cell := dst.GetCell(x, y)
			dst.SetCell(x, y, core.Cell{Rune: '·', Fg: core.ColorWhite, Bg: cell.Bg})
		}
	}

	hx := s.centerX + int(math.Round(stick.Handle.X/s.pxPerCol))
	hy := s.centerY + int(math.Round(stick.Handle.Y/s.pxPerRow))
	fg := core.ColorNextButton
	if stick.Active {
		fg = core.ColorWhite
	}
	cell := dst.GetCell(hx, hy)
	dst.SetCell(hx, hy, core.Cell{Rune: '●', Fg: fg, Bg: cell.Bg})
}
