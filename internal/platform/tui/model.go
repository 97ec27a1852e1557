package tui

import (
	"context"
	"os/user"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/game"
	"github.com/vovakirdan/devden/internal/scheduler"
	"github.com/vovakirdan/devden/internal/storage"
)

// Options describes one terminal session.
type Options struct {
	Player   string // journal name; empty uses the local user
	Frontend string // "terminal" or "ssh"
	Width    int    // initial size in cells
	Height   int
	Seed     int64
	Store    *storage.Store // nil disables the journal
	Logger   *log.Logger
	// Now drives the frame clock. Nil uses time.Now.
	Now func() time.Time
}

// Configure adapts a configuration to cell rendering.
func Configure(cfg config.Config) config.Config {
	cfg.Dialogue.Layout = cfg.Terminal.Layout(cfg.Dialogue.Layout)
	return cfg
}

// Measure returns a dialogue text measure for cells of the given width.
func Measure(pxPerCol float64) dialogue.Measure {
	return func(s string) float64 {
		return float64(lipgloss.Width(s)) * pxPerCol
	}
}

// StartGame loads a session sized for a terminal of opts.Width by
// opts.Height cells.
func StartGame(ctx context.Context, cfg config.Config, opts Options) *game.Game {
	cfg = Configure(cfg)
	w, h := cfg.Terminal.Viewport(opts.Width, opts.Height-helpLines)
	return game.Start(ctx, cfg, game.StartOptions{
		Options: game.Options{
			Runtime: core.RuntimeConfig{
				ViewportW: w,
				ViewportH: h,
				TickRate:  cfg.TickRate,
				Seed:      opts.Seed,
			},
			Measure: Measure(cfg.Terminal.PxPerCol),
			Logger:  opts.Logger,
		},
	})
}

// helpLines is the height of the short help bar.
const helpLines = 1

// Model is the Bubble Tea model for one game session.
type Model struct {
	game   *game.Game
	cfg    config.Config
	opts   Options
	screen *core.Screen
	styles styleCache

	keys     KeyMap
	help     help.Model
	showHelp bool

	clock *scheduler.Clock
	acc   *scheduler.Accumulator
	input core.InputFrame
	held  *heldKeys
	stick *core.Joystick
	pad   stickLayout

	width, height int
	journal       *game.Journal
	quitting      bool
}

// NewModel wraps a started game.
func NewModel(g *game.Game, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Player == "" {
		opts.Player = localUser()
	}
	if opts.Frontend == "" {
		opts.Frontend = "terminal"
	}
	cfg := g.Config()

	m := Model{
		game:     g,
		cfg:      cfg,
		opts:     opts,
		screen:   core.NewScreen(opts.Width, max(opts.Height-helpLines, 0)),
		styles:   styleCache{},
		keys:     DefaultKeyMap(),
		help:     help.New(),
		showHelp: true,
		clock:    scheduler.NewClockFunc(opts.Now),
		acc:      scheduler.New(cfg.TickRate),
		input:    core.NewInputFrame(),
		held:     &heldKeys{},
		stick:    core.NewJoystick(float64(cfg.Terminal.JoystickRadius) * cfg.Terminal.PxPerCol),
		width:    opts.Width,
		height:   opts.Height,
		journal: game.NewJournal(g, opts.Store, game.JournalOptions{
			Player:   opts.Player,
			Frontend: opts.Frontend,
			Logger:   opts.Logger,
			Now:      opts.Now,
		}),
	}
	m.layout()
	return m
}

func localUser() string {
	u, err := user.Current()
	if err != nil {
		return "player"
	}
	return u.Username
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = false
		m.layout()
		return m, nil
	}

	if d, ok := m.keys.moveDir(msg); ok {
		m.held.press(d, m.clock.Since())
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.journal.Save()
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.input.Set(a)
	}
	return m, nil
}

// handleMouse drives the on-screen joystick. A left click anywhere else is
// a tap at the middle of the clicked cell.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y >= m.screen.Height() {
			return
		}
		if m.pad.contains(msg.X, msg.Y) {
			m.stick.Start(m.pad.offset(msg.X, msg.Y))
			return
		}
		m.input.Click(cellCenter(msg.X, msg.Y, m.cfg.Terminal.PxPerCol, m.cfg.Terminal.PxPerRow))

	case tea.MouseActionMotion:
		m.stick.Move(m.pad.offset(msg.X, msg.Y))

	case tea.MouseActionRelease:
		m.stick.Stop()
	}
}

// layout sizes the screen and the game viewport to the terminal.
func (m *Model) layout() {
	rows := m.height
	if m.showHelp {
		rows -= helpLines
	}
	rows = max(rows, 0)
	m.screen.Resize(m.width, rows)
	m.help.Width = m.width
	m.pad = newStickLayout(m.cfg.Terminal.PxPerCol, m.cfg.Terminal.PxPerRow, m.cfg.Terminal.JoystickRadius, rows)

	w, h := m.cfg.Terminal.Viewport(m.width, rows)
	m.game.Resize(core.V(w, h))
}

// handleTick runs a simulation step when the scheduler allows one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	now := m.clock.Since()
	if m.acc.Ready(now) {
		m.input.Now = now
		if m.stick.Active {
			m.stick.Apply(&m.input)
		} else {
			m.held.apply(&m.input, now)
		}
		m.game.Step(m.input)
		m.input.Clear()
	}
	return m, tickCmd(m.cfg.TickRate)
}

// Journaled returns the id the session was journaled under, or 0.
func (m Model) Journaled() int64 {
	return m.journal.ID()
}

// Game returns the running session.
func (m Model) Game() *game.Game {
	return m.game
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if !m.game.Status().Failed && m.cfg.Terminal.JoystickRadius > 0 {
		drawStick(m.screen, m.pad, m.stick)
	}

	out := renderScreen(m.screen, m.styles)
	if m.showHelp {
		out += "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return out
}

// Run starts a local terminal session and journals it on quit.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	g := StartGame(ctx, cfg, opts)
	m := NewModel(g, opts)
	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	m.journal.Save()
	return err
}
