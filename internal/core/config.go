package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ViewportW float64 // Viewport width in world pixels
	ViewportH float64 // Viewport height in world pixels
	TickRate  int     // Simulation ticks per second (default 60)
	Seed      int64   // RNG seed for conversation picks
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ViewportW: 1280,
		ViewportH: 768,
		TickRate:  60,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// Status is what the platform needs to know about a running game.
type Status struct {
	Ticks          int     // Processed frames
	Conversations  int     // Conversations started this session
	Distance       float64 // Pixels walked
	DialogueActive bool    // Whether the dialogue overlay is up
	Paused         bool    // Whether the game is paused
	Failed         bool    // Startup failed; the game shows an error screen
}
