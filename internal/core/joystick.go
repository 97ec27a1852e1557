package core

// Joystick is an on-screen stick: a handle dragged away from its base and
// limited to MaxDistance. Frontends feed pointer positions relative to the
// base center; the simulation only sees Direction().
type Joystick struct {
	Handle      Vec2
	MaxDistance float64
	Active      bool
}

// NewJoystick creates a released joystick with the given travel radius.
func NewJoystick(maxDistance float64) *Joystick {
	return &Joystick{MaxDistance: maxDistance}
}

// Start engages the stick at the given offset from its base center.
func (j *Joystick) Start(offset Vec2) {
	j.Active = true
	j.place(offset)
}

// Move drags the handle. Ignored while the stick is not engaged.
func (j *Joystick) Move(offset Vec2) {
	if !j.Active {
		return
	}
	j.place(offset)
}

// Stop releases the stick and recenters the handle.
func (j *Joystick) Stop() {
	j.Active = false
	j.Handle = Vec2{}
}

func (j *Joystick) place(offset Vec2) {
	j.Handle = offset
	dist := offset.Len()
	if j.MaxDistance > 0 && dist > j.MaxDistance {
		j.Handle = offset.Scale(j.MaxDistance / dist)
	}
}

// Direction returns the handle displacement divided by the travel radius.
// Its magnitude never exceeds 1.
func (j *Joystick) Direction() Vec2 {
	if !j.Active || j.MaxDistance <= 0 {
		return Vec2{}
	}
	return Vec2{X: j.Handle.X / j.MaxDistance, Y: j.Handle.Y / j.MaxDistance}
}

// Apply copies the stick state into an input frame.
func (j *Joystick) Apply(f *InputFrame) {
	f.Engaged = j.Active
	f.Move = j.Direction()
}
