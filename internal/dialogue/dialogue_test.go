package dialogue

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/devden/internal/core"
)

const ms = time.Millisecond

var viewport = core.V(800, 600)

func newTestMachine(pages ...string) *Machine {
	cfg := DefaultConfig()
	if len(pages) > 0 {
		cfg.IntroPages = pages
	}
	m := NewMachine(cfg, RuneWidth(10))
	m.SetViewport(viewport)
	return m
}

func TestWrap(t *testing.T) {
	measure := RuneWidth(10)

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "", 100, nil},
		{"fits on one line", "hello there", 200, []string{"hello there"}},
		{"breaks between words", "aaa bbb ccc", 80, []string{"aaa bbb", "ccc"}},
		{"exact width is rejected", "aaa bbb", 70, []string{"aaa", "bbb"}},
		{"long first word stays", "supercalifragilistic ok", 50, []string{"supercalifragilistic", "ok"}},
		{"double space keeps empty word", "a  b", 1000, []string{"a  b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.text, tc.width, measure); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Wrap(%q, %v) = %q, expected %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestTickRevealsOverTime(t *testing.T) {
	m := newTestMachine("Hello world")
	m.ActivateIntro(1000 * ms)

	tests := []struct {
		now  time.Duration
		want int
	}{
		{1000 * ms, 0},
		{1499 * ms, 0}, // still in the start delay
		{1500 * ms, 0},
		{1549 * ms, 0},
		{1550 * ms, 1},
		{1700 * ms, 4},
		{5000 * ms, 11}, // capped at the page length
	}
	for _, tc := range tests {
		m.Tick(tc.now)
		if m.Revealed() != tc.want {
			t.Errorf("at %v: Revealed() = %d, expected %d", tc.now, m.Revealed(), tc.want)
		}
	}
	if m.RevealedText() != "Hello world" || !m.FullyRevealed() {
		t.Errorf("RevealedText() = %q, FullyRevealed() = %v", m.RevealedText(), m.FullyRevealed())
	}
}

func TestTickCountsRunes(t *testing.T) {
	m := newTestMachine("héllo")
	m.ActivateIntro(0)
	m.Tick(500*ms + 2*50*ms)
	if got := m.RevealedText(); got != "hé" {
		t.Errorf("RevealedText() = %q, expected %q", got, "hé")
	}
}

func TestTickRewrapsOnlyWhenTextGrows(t *testing.T) {
	calls := 0
	measure := func(s string) float64 {
		calls++
		return RuneWidth(10)(s)
	}
	cfg := DefaultConfig()
	cfg.IntroPages = []string{"Welcome to the den, traveler"}
	m := NewMachine(cfg, measure)
	m.SetViewport(viewport)
	m.ActivateIntro(0)

	m.Tick(2 * time.Second)
	if !m.FullyRevealed() {
		t.Fatalf("Revealed() = %d, expected the whole page", m.Revealed())
	}
	lines := m.Lines()

	calls = 0
	for i := 1; i <= 60; i++ {
		m.Tick(2*time.Second + time.Duration(i)*16*ms)
	}
	if calls != 0 {
		t.Errorf("measure called %d times after the page was fully revealed, expected 0", calls)
	}
	if !reflect.DeepEqual(m.Lines(), lines) {
		t.Errorf("Lines() = %q, expected %q", m.Lines(), lines)
	}

	calls = 0
	m.Tick(2*time.Second + 10*time.Second)
	if calls != 0 {
		t.Errorf("measure called %d times on an unchanged page, expected 0", calls)
	}
}

func TestTypewriterMonotonicAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := newTestMachine("The quick brown fox jumps over the lazy dog", "Second page")

	for trial := 0; trial < 20; trial++ {
		now := time.Duration(rng.Intn(10000)) * ms
		m.ActivateIntro(now)
		prevPage, prev := m.Page(), 0
		for step := 0; step < 300 && m.Active(); step++ {
			now += time.Duration(rng.Intn(40)) * ms
			if rng.Intn(50) == 0 {
				m.Skip(now)
			}
			m.Tick(now)
			if !m.Showing() {
				break
			}
			if m.Page() != prevPage {
				if m.Revealed() > len([]rune(m.PageText())) {
					t.Fatalf("revealed %d exceeds page length", m.Revealed())
				}
				prevPage, prev = m.Page(), m.Revealed()
				continue
			}
			if m.Revealed() < prev {
				t.Fatalf("revealed went from %d to %d on page %d", prev, m.Revealed(), m.Page())
			}
			if m.Revealed() > len([]rune(m.PageText())) {
				t.Fatalf("revealed %d exceeds page length %d", m.Revealed(), len([]rune(m.PageText())))
			}
			prev = m.Revealed()
		}
	}
}

func TestSkipThenAdvance(t *testing.T) {
	m := newTestMachine("Hi!", "Bye")
	m.ActivateIntro(0)

	if m.Revealed() != 0 {
		t.Fatalf("Revealed() = %d, expected 0", m.Revealed())
	}

	// Any click while typing reveals the page without advancing.
	if !m.Click(10*ms, core.V(-100, -100)) {
		t.Fatal("click while typing should be consumed")
	}
	if m.Revealed() != 3 || m.Page() != 0 {
		t.Fatalf("after skip: revealed=%d page=%d, expected 3/0", m.Revealed(), m.Page())
	}

	layout := m.Layout()
	if !layout.NextVisible {
		t.Fatal("next button should be visible once the page is revealed")
	}

	// A click outside the next button does nothing.
	if m.Click(20*ms, layout.Box.Center()) {
		t.Error("click outside the next button should not be consumed")
	}
	if m.Page() != 0 {
		t.Fatalf("page = %d, expected 0", m.Page())
	}

	if !m.Click(30*ms, layout.Next.Center()) {
		t.Fatal("click on the next button should be consumed")
	}
	if m.Page() != 1 || m.Revealed() != 0 {
		t.Errorf("after advance: page=%d revealed=%d, expected 1/0", m.Page(), m.Revealed())
	}

	// Typing on the new page starts from its own start time.
	m.Tick(30*ms + 500*ms + 50*ms)
	if m.Revealed() != 1 {
		t.Errorf("Revealed() = %d, expected 1", m.Revealed())
	}
}

func TestAdvancePastLastPageDeactivates(t *testing.T) {
	m := newTestMachine("one")
	m.ActivateIntro(0)
	m.Skip(0)
	m.Skip(0)

	if m.Active() || m.Showing() {
		t.Error("machine should be inactive after the last page")
	}
	if m.Click(0, core.V(0, 0)) || m.Skip(0) {
		t.Error("inactive machine should not consume input")
	}
	if m.Lines() != nil || m.Speaker() != SpeakerNone || m.Conversation() != nil {
		t.Error("conversation state should be cleared")
	}
}

func TestConversationSpeakers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Conversations = []Conversation{{A: "Hi!", B: "Hello young programmer!"}}
	m := NewMachine(cfg, RuneWidth(10))
	m.SetViewport(viewport)

	if !m.ActivateConversation(0, rand.New(rand.NewSource(1))) {
		t.Fatal("ActivateConversation() = false")
	}
	if m.Mode() != ModeConversation || m.Speaker() != SpeakerA || m.PageText() != "Hi!" {
		t.Fatalf("got mode=%v speaker=%v text=%q", m.Mode(), m.Speaker(), m.PageText())
	}
	if m.Layout().Portrait.W == 0 {
		t.Error("conversation layout should reserve a portrait")
	}

	m.Skip(0)
	m.Skip(0)
	if m.Speaker() != SpeakerB || m.PageText() != "Hello young programmer!" {
		t.Errorf("second page: speaker=%v text=%q", m.Speaker(), m.PageText())
	}

	m.Skip(0)
	m.Skip(0)
	if m.Active() {
		t.Error("conversation should end after two pages")
	}
}

func TestConversationPickIsUniform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Conversations = []Conversation{{A: "1"}, {A: "2"}, {A: "3"}}
	m := NewMachine(cfg, nil)
	rng := rand.New(rand.NewSource(9))

	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		m.ActivateConversation(0, rng)
		seen[m.PageText()]++
	}
	for _, k := range []string{"1", "2", "3"} {
		if seen[k] < 50 {
			t.Errorf("conversation %s picked %d times out of 300", k, seen[k])
		}
	}

	empty := NewMachine(Config{}, nil)
	if empty.ActivateConversation(0, rng) {
		t.Error("ActivateConversation() with no conversations should report false")
	}
}

func TestInstantReveal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharsPerSecond = 0
	cfg.IntroPages = []string{"all at once"}
	m := NewMachine(cfg, nil)
	m.ActivateIntro(0)

	m.Tick(499 * ms)
	if m.Revealed() != 0 {
		t.Errorf("Revealed() = %d before the start delay", m.Revealed())
	}
	m.Tick(500 * ms)
	if !m.FullyRevealed() {
		t.Error("page should be fully revealed once the delay passes")
	}
}

func TestShiftDelaysTyping(t *testing.T) {
	m := newTestMachine("abcdef")
	m.ActivateIntro(0)
	m.Shift(1000 * ms)

	m.Tick(600 * ms)
	if m.Revealed() != 0 {
		t.Errorf("Revealed() = %d, expected 0 after a shift", m.Revealed())
	}
	m.Tick(1600 * ms)
	if m.Revealed() != 2 {
		t.Errorf("Revealed() = %d, expected 2", m.Revealed())
	}
}

func TestLayout(t *testing.T) {
	m := newTestMachine("word word word word word word word word word word word word word word word word")
	m.ActivateIntro(0)
	m.Skip(0)

	l := m.Layout()
	if l.Box.W != 600 || l.Box.X != 100 {
		t.Errorf("box = %+v, expected width 600 at x 100", l.Box)
	}
	if l.TextWidth != 560 {
		t.Errorf("TextWidth = %v, expected 560", l.TextWidth)
	}
	wantH := float64(len(m.Lines()))*30 + 40
	if wantH < 120 {
		wantH = 120
	}
	if l.Box.H != wantH || l.Box.Y != (600-wantH)/2 {
		t.Errorf("box = %+v, expected height %v centered", l.Box, wantH)
	}
	if l.Next != core.Box(l.Box.Right()-52, l.Box.Bottom()-52, 32, 32) {
		t.Errorf("next button = %+v", l.Next)
	}
	for _, line := range m.Lines() {
		if RuneWidth(10)(line) >= 560 {
			t.Errorf("line %q is wider than the text area", line)
		}
	}

	// A narrower viewport rewraps the same text.
	before := len(m.Lines())
	m.SetViewport(core.V(400, 600))
	if len(m.Lines()) <= before {
		t.Errorf("lines after shrink = %d, expected more than %d", len(m.Lines()), before)
	}
}

func TestMinimumBoxHeight(t *testing.T) {
	m := newTestMachine("x")
	m.ActivateIntro(0)
	if h := m.Layout().Box.H; h != 120 {
		t.Errorf("empty box height = %v, expected 120", h)
	}
	if m.Layout().NextVisible {
		t.Error("next button should be hidden while typing")
	}
}
