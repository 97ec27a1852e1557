package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestModel(t *testing.T, store *storage.Store) (Model, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts := Options{
		Player: "tester",
		Width:  80,
		Height: 25,
		Seed:   1,
		Store:  store,
		Now:    clk.now,
	}
	g := StartGame(t.Context(), config.DefaultConfig(), opts)
	if err := g.Err(); err != nil {
		t.Fatalf("StartGame() failed: %v", err)
	}
	return NewModel(g, opts), clk
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model, clk *fakeClock, d time.Duration) Model {
	t.Helper()
	clk.t = clk.t.Add(d)
	m, _ = update(t, m, TickMsg(clk.t))
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelLayout(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.screen.Width() != 80 || m.screen.Height() != 24 {
		t.Errorf("screen = %dx%d, expected 80x24 above the help bar", m.screen.Width(), m.screen.Height())
	}
	if got := m.Game().Viewport(); got != core.V(1280, 768) {
		t.Errorf("Viewport() = %v, expected (1280, 768)", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := m.Game().Viewport(); got != core.V(1600, 1248) {
		t.Errorf("Viewport() after resize = %v, expected (1600, 1248)", got)
	}

	m, _ = update(t, m, runeKey('?'))
	if m.screen.Height() != 40 {
		t.Errorf("hiding help should give the game every row, got %d", m.screen.Height())
	}
	if got := strings.Count(m.View(), "\n"); got != 39 {
		t.Errorf("View() has %d line breaks, expected 39", got)
	}
}

func TestModelWalksWithHeldKey(t *testing.T) {
	m, clk := newTestModel(t, nil)
	start := m.Game().Player().Pos

	m = tick(t, m, clk, 0) // starts the frame clock
	m, _ = update(t, m, runeKey('d'))
	m = tick(t, m, clk, 10*ms)
	if m.Game().Status().Ticks != 0 {
		t.Fatal("no step should run before one interval has passed")
	}
	m = tick(t, m, clk, 10*ms)

	if m.Game().Status().Ticks != 1 {
		t.Fatalf("Ticks = %d, expected 1", m.Game().Status().Ticks)
	}
	want := start.Add(core.V(m.cfg.Player.Speed, 0))
	if got := m.Game().Player().Pos; got != want {
		t.Errorf("Pos = %v, expected %v", got, want)
	}
}

func TestModelMouse(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.input.Clicks) != 1 || m.input.Clicks[0] != core.V(648, 336) {
		t.Fatalf("Clicks = %v, expected one at (648, 336)", m.input.Clicks)
	}

	// The help bar is not part of the game.
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 24, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.input.Clicks) != 1 {
		t.Errorf("click on the help bar should be dropped")
	}

	m, _ = update(t, m, tea.MouseMsg{X: m.pad.centerX, Y: m.pad.centerY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.stick.Active {
		t.Fatal("press on the joystick should engage it")
	}
	m, _ = update(t, m, tea.MouseMsg{X: m.pad.centerX + 5, Y: m.pad.centerY, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.stick.Direction(); got != core.V(1, 0) {
		t.Errorf("Direction() = %v, expected (1, 0) at full travel", got)
	}
	m, _ = update(t, m, tea.MouseMsg{X: m.pad.centerX + 5, Y: m.pad.centerY, Action: tea.MouseActionRelease})
	if m.stick.Active {
		t.Error("release should stop the joystick")
	}
	if len(m.input.Clicks) != 1 {
		t.Error("joystick presses must not count as clicks")
	}
}

func TestModelActions(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, runeKey('e'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.input.Has(core.ActionInteract) || !m.input.Has(core.ActionAdvance) {
		t.Errorf("Actions = %v", m.input.Actions)
	}
}

func TestModelQuitJournalsSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m, clk := newTestModel(t, store)
	m = tick(t, m, clk, 0)
	m = tick(t, m, clk, 20*ms)
	m = tick(t, m, clk, 2*time.Second)

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.Journaled() == 0 {
		t.Fatal("session should be journaled on quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}

	// A second save is a no-op.
	m.journal.Save()
	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, expected 1", len(sessions))
	}
	s := sessions[0]
	if s.Player != "tester" || s.Frontend != "terminal" || s.Ticks != 2 || s.Duration != 2 {
		t.Errorf("journaled %+v", s)
	}
	if s.MapRef != config.BuiltinMap {
		t.Errorf("MapRef = %q, expected %q", s.MapRef, config.BuiltinMap)
	}
}

func TestModelSkipsIdleSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m, _ := newTestModel(t, store)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.Journaled() != 0 {
		t.Error("a session that never ran a frame should not be journaled")
	}
}
