package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionAdvance         // Enter, Space - reveal the page or go to the next one
	ActionInteract        // E - use the prompt above a nearby object
	ActionPause           // P - pause/unpause simulation
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAdvance:
		return "Advance"
	case ActionInteract:
		return "Interact"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is everything the simulation needs from input devices for one
// processed frame.
type InputFrame struct {
	// Move is the joystick direction, magnitude in [0, 1].
	Move Vec2
	// Engaged is true while the joystick (or a movement key) is held.
	Engaged bool
	// Clicks holds tap/click positions in screen pixels, oldest first.
	Clicks []Vec2
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Now is the frame timestamp, monotonic since the session started.
	Now time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Click queues a click at screen pixel coordinates.
func (f *InputFrame) Click(p Vec2) {
	f.Clicks = append(f.Clicks, p)
}

// Clear resets discrete events for the next frame. The joystick state is
// level-triggered and survives.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Clicks = f.Clicks[:0]
}
