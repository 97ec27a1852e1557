// Package dialogue runs the typewriter dialogue overlay: an intro sequence
// and short two-speaker conversations, revealed character by character on
// wall-clock time and advanced by clicks or keys.
package dialogue

import "time"

// Mode is the kind of sequence being shown.
type Mode int

const (
	ModeIntro Mode = iota
	ModeConversation
)

func (m Mode) String() string {
	if m == ModeConversation {
		return "conversation"
	}
	return "intro"
}

// Speaker is who says the current conversation page.
type Speaker int

const (
	SpeakerNone Speaker = iota
	SpeakerA
	SpeakerB
)

func (s Speaker) String() string {
	switch s {
	case SpeakerA:
		return "a"
	case SpeakerB:
		return "b"
	default:
		return "none"
	}
}

// Conversation is one exchange: A speaks, then B answers.
type Conversation struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Config tunes the dialogue machine.
type Config struct {
	// StartDelay is the pause after a page appears before typing starts.
	StartDelay time.Duration
	// CharsPerSecond is the reveal rate. Zero or less reveals each page
	// in full as soon as the start delay passes.
	CharsPerSecond float64
	IntroPages     []string
	Conversations  []Conversation
	Layout         LayoutSpec
}

// DefaultConfig returns the standard dialogue settings.
func DefaultConfig() Config {
	return Config{
		StartDelay:     500 * time.Millisecond,
		CharsPerSecond: 20,
		IntroPages: []string{
			"Hello, welcome to the game!",
			"This game is still a demo, so there might still have some bugs. Anyways, Enjoy!",
		},
		Conversations: []Conversation{
			{A: "Hi!", B: "Hello young programmer!"},
		},
		Layout: DefaultLayout(),
	}
}
