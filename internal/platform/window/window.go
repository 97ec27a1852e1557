// Package window runs devden in a desktop window with Ebiten.
package window

import (
	"bytes"
	"context"
	"fmt"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/game"
	"github.com/vovakirdan/devden/internal/scheduler"
	"github.com/vovakirdan/devden/internal/storage"
)

// fontSize matches the dialogue line height of the default layout.
const fontSize = 20

// Options describes a window session.
type Options struct {
	Player string // journal name; empty uses the local user
	Width  int    // initial window size in pixels
	Height int
	Seed   int64
	Store  *storage.Store // nil disables the journal
	Logger *log.Logger
}

// Window is the ebiten.Game driving one devden session.
type Window struct {
	game    *game.Game
	cfg     config.Config
	face    *text.GoTextFace
	images  map[string]*ebiten.Image
	journal *game.Journal

	clock    *scheduler.Clock
	acc      *scheduler.Accumulator
	lastStep time.Duration
	input    core.InputFrame
	pointer  *pointerRouter
	touches  []ebiten.TouchID
	pulse    *pulse

	width, height int
	quit          bool
}

// NewFace loads the dialogue font.
func NewFace() (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("window: load font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: fontSize}, nil
}

// Measure returns a dialogue text measure for a font face.
func Measure(face text.Face) dialogue.Measure {
	return func(s string) float64 {
		return text.Advance(s, face)
	}
}

// New loads a session and wraps it for Ebiten.
func New(ctx context.Context, cfg config.Config, opts Options) (*Window, error) {
	face, err := NewFace()
	if err != nil {
		return nil, err
	}
	if opts.Player == "" {
		opts.Player = localUser()
	}

	g := game.Start(ctx, cfg, game.StartOptions{
		Options: game.Options{
			Runtime: core.RuntimeConfig{
				ViewportW: float64(opts.Width),
				ViewportH: float64(opts.Height),
				TickRate:  cfg.TickRate,
				Seed:      opts.Seed,
			},
			Measure: Measure(face),
			Logger:  opts.Logger,
		},
	})

	return &Window{
		game: g,
		cfg:  cfg,
		face: face,
		journal: game.NewJournal(g, opts.Store, game.JournalOptions{
			Player:   opts.Player,
			Frontend: "window",
			Logger:   opts.Logger,
		}),
		images:  make(map[string]*ebiten.Image),
		clock:   scheduler.NewClock(),
		acc:     scheduler.New(cfg.TickRate),
		input:   core.NewInputFrame(),
		pointer: newPointerRouter(stickRadius),
		pulse:   newPulse(1.2),
		width:   opts.Width,
		height:  opts.Height,
	}, nil
}

func localUser() string {
	u, err := user.Current()
	if err != nil {
		return "player"
	}
	return u.Username
}

// Game returns the running session.
func (w *Window) Game() *game.Game {
	return w.game
}

// Update polls input every frame and runs a simulation step when the
// scheduler allows one.
func (w *Window) Update() error {
	if w.quit {
		return ebiten.Termination
	}
	w.pollKeys()
	w.pollPointers()

	now := w.clock.Since()
	if !w.acc.Ready(now) {
		return nil
	}
	if w.pointer.stick.Active {
		w.pointer.stick.Apply(&w.input)
	} else {
		w.input.Move, w.input.Engaged = keyVector(
			ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		)
	}
	w.input.Now = now
	w.game.Step(w.input)
	w.input.Clear()

	dt := now - w.lastStep
	w.lastStep = now
	w.pulse.update(float32(dt.Seconds()))
	return nil
}

// pollKeys queues the discrete key actions.
func (w *Window) pollKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		w.quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		w.input.Set(core.ActionAdvance)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		w.input.Set(core.ActionInteract)
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		w.input.Set(core.ActionPause)
	}
}

// pollPointers feeds mouse and touch presses to the joystick router.
func (w *Window) pollPointers() {
	mx, my := ebiten.CursorPosition()
	mouse := core.V(float64(mx), float64(my))
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		w.pointer.press(mousePointer, mouse, &w.input)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		w.pointer.release(mousePointer)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		w.pointer.move(mousePointer, mouse)
	}

	w.touches = inpututil.AppendJustPressedTouchIDs(w.touches[:0])
	for _, id := range w.touches {
		x, y := ebiten.TouchPosition(id)
		w.pointer.press(touchPointer(int(id)), core.V(float64(x), float64(y)), &w.input)
	}
	w.touches = ebiten.AppendTouchIDs(w.touches[:0])
	for _, id := range w.touches {
		x, y := ebiten.TouchPosition(id)
		w.pointer.move(touchPointer(int(id)), core.V(float64(x), float64(y)))
	}
	w.touches = inpututil.AppendJustReleasedTouchIDs(w.touches[:0])
	for _, id := range w.touches {
		w.pointer.release(touchPointer(int(id)))
	}
}

// Layout follows the window size one to one. A size change resizes the
// game viewport, which recomputes the camera and the dialogue box.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.game.Resize(core.V(float64(w.width), float64(w.height)))
	}
	w.pointer.base = stickBase(w.width, w.height)
	return w.width, w.height
}

// Run opens the window and blocks until it closes, then journals the
// session.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	w, err := New(ctx, cfg, opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("devden")
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err = ebiten.RunGame(w)
	w.journal.Save()
	return err
}
