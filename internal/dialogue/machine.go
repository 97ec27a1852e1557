package dialogue

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/devden/internal/core"
)

// Machine is the dialogue state machine. A page moves from revealing to
// awaiting advance; advancing past the last page deactivates the machine.
// All times are offsets from the session start.
type Machine struct {
	cfg     Config
	measure Measure

	viewport core.Vec2

	active    bool
	mode      Mode
	convo     *Conversation
	speaker   Speaker
	pages     [][]rune
	page      int
	revealed  int
	pageStart time.Duration
	lines     []string
}

// NewMachine creates an inactive machine. A nil measure counts runes at
// 10 pixels each.
func NewMachine(cfg Config, measure Measure) *Machine {
	if measure == nil {
		measure = RuneWidth(10)
	}
	return &Machine{cfg: cfg, measure: measure}
}

// SetViewport records the screen size and rewraps the visible text.
func (m *Machine) SetViewport(viewport core.Vec2) {
	if viewport == m.viewport {
		return
	}
	m.viewport = viewport
	if m.Showing() {
		m.relayout()
	}
}

// SetMeasure swaps the text measurement, for frontends that learn their
// font metrics late.
func (m *Machine) SetMeasure(measure Measure) {
	if measure == nil {
		return
	}
	m.measure = measure
	if m.Showing() {
		m.relayout()
	}
}

// Active reports whether the overlay is up.
func (m *Machine) Active() bool {
	return m.active
}

// Showing reports whether a page is on screen.
func (m *Machine) Showing() bool {
	return m.active && m.page < len(m.pages)
}

// Mode returns the current sequence kind.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Speaker returns who says the current page.
func (m *Machine) Speaker() Speaker {
	return m.speaker
}

// Conversation returns the running conversation, or nil.
func (m *Machine) Conversation() *Conversation {
	return m.convo
}

// Page returns the current page index.
func (m *Machine) Page() int {
	return m.page
}

// PageCount returns the number of pages in the sequence.
func (m *Machine) PageCount() int {
	return len(m.pages)
}

// Revealed returns how many characters of the page are visible.
func (m *Machine) Revealed() int {
	return m.revealed
}

// PageText returns the full text of the current page.
func (m *Machine) PageText() string {
	if !m.Showing() {
		return ""
	}
	return string(m.pages[m.page])
}

// RevealedText returns the visible part of the current page.
func (m *Machine) RevealedText() string {
	if !m.Showing() {
		return ""
	}
	return string(m.pages[m.page][:m.revealed])
}

// Lines returns the wrapped visible text.
func (m *Machine) Lines() []string {
	return m.lines
}

// FullyRevealed reports whether the whole page is visible.
func (m *Machine) FullyRevealed() bool {
	return m.Showing() && m.revealed >= len(m.pages[m.page])
}

func (m *Machine) hasPortrait() bool {
	return m.mode == ModeConversation && m.speaker != SpeakerNone
}

// Layout returns the box geometry for the current state.
func (m *Machine) Layout() Layout {
	return m.cfg.Layout.resolve(m.viewport, len(m.lines), m.hasPortrait(), m.FullyRevealed())
}

// ActivateIntro starts the intro sequence.
func (m *Machine) ActivateIntro(now time.Duration) {
	m.start(now, ModeIntro, m.cfg.IntroPages, nil)
}

// ActivateConversation starts a conversation picked uniformly from the
// configured set. It reports false when there are none.
func (m *Machine) ActivateConversation(now time.Duration, rng *rand.Rand) bool {
	if len(m.cfg.Conversations) == 0 {
		return false
	}
	c := m.cfg.Conversations[rng.Intn(len(m.cfg.Conversations))]
	m.start(now, ModeConversation, []string{c.A, c.B}, &c)
	return true
}

func (m *Machine) start(now time.Duration, mode Mode, pages []string, convo *Conversation) {
	m.active = true
	m.mode = mode
	m.convo = convo
	m.pages = make([][]rune, len(pages))
	for i, p := range pages {
		m.pages[i] = []rune(p)
	}
	m.speaker = SpeakerNone
	if mode == ModeConversation {
		m.speaker = SpeakerA
	}
	m.showPage(0, now)
}

func (m *Machine) showPage(page int, now time.Duration) {
	m.page = page
	m.revealed = 0
	m.pageStart = now
	m.lines = nil
}

// Tick reveals characters according to the time spent on the page.
func (m *Machine) Tick(now time.Duration) {
	if !m.Showing() {
		return
	}
	elapsed := now - m.pageStart
	if elapsed < m.cfg.StartDelay {
		return
	}
	total := len(m.pages[m.page])
	chars := total
	if m.cfg.CharsPerSecond > 0 {
		msPerChar := 1000 / m.cfg.CharsPerSecond
		typing := float64(elapsed-m.cfg.StartDelay) / float64(time.Millisecond)
		chars = int(math.Floor(typing / msPerChar))
	}
	if n := core.Min(chars, total); n > m.revealed {
		m.revealed = n
		m.relayout()
	}
}

// Click handles a pointer press at a screen point and reports whether the
// dialogue consumed it. While typing, any click reveals the whole page.
// Once revealed, a click on the next button advances.
func (m *Machine) Click(now time.Duration, p core.Vec2) bool {
	if !m.Showing() {
		return false
	}
	if !m.FullyRevealed() {
		m.reveal()
		return true
	}
	if m.Layout().Next.ContainsPoint(p) {
		m.Advance(now)
		return true
	}
	return false
}

// Skip is the keyboard form of a click on the next button: it reveals the
// page if typing is still going and otherwise advances.
func (m *Machine) Skip(now time.Duration) bool {
	if !m.Showing() {
		return false
	}
	if !m.FullyRevealed() {
		m.reveal()
		return true
	}
	m.Advance(now)
	return true
}

func (m *Machine) reveal() {
	m.revealed = len(m.pages[m.page])
	m.relayout()
}

// Advance moves to the next page, or closes the dialogue after the last.
func (m *Machine) Advance(now time.Duration) {
	if !m.active {
		return
	}
	next := m.page + 1
	if next >= len(m.pages) {
		m.deactivate()
		return
	}
	m.showPage(next, now)
	if m.mode == ModeConversation {
		m.speaker = SpeakerA
		if next%2 == 1 {
			m.speaker = SpeakerB
		}
	}
}

func (m *Machine) deactivate() {
	m.active = false
	m.mode = ModeIntro
	m.convo = nil
	m.speaker = SpeakerNone
	m.pages = nil
	m.page = 0
	m.revealed = 0
	m.lines = nil
}

// Shift moves the page clock forward by d, so time spent paused does not
// count as typing time.
func (m *Machine) Shift(d time.Duration) {
	if m.active {
		m.pageStart += d
	}
}

func (m *Machine) relayout() {
	width := m.cfg.Layout.textWidth(m.viewport.X, m.hasPortrait())
	m.lines = Wrap(m.RevealedText(), width, m.measure)
}
