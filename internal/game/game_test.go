package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/entity"
	"github.com/vovakirdan/devden/internal/world"
)

const ms = time.Millisecond

// newRoom builds a 5x5 carpet room with a bed at tile (2, 2), seen through
// a 320x320 viewport so screen and world coincide. The player starts with
// its collision box flush against the right side of the bed's hitbox.
func newRoom(t *testing.T, spawn config.Point) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.World = config.WorldConfig{Rows: 5, Cols: 5, TileSize: 64}
	cfg.Objects = nil
	cfg.Player.Spawn = &spawn
	cfg.Dialogue.Layout = cfg.Terminal.Layout(cfg.Dialogue.Layout)

	grid, warnings := world.ParseText(strings.Repeat("11111\n", 5), cfg.World.Dims())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	level := &world.Level{
		Grid:       grid,
		Placements: []world.Placement{{ID: "bed", TileX: 2, TileY: 2, Image: "bed"}},
	}
	return New(cfg, level, Options{
		Runtime: core.RuntimeConfig{ViewportW: 320, ViewportH: 320, Seed: 1},
		Measure: dialogue.RuneWidth(16),
	})
}

// byBed puts the collision box at (185, 150), flush with the hitbox
// (155, 155, 30, 30).
var byBed = config.Point{X: 149.5, Y: 120}

var farAway = config.Point{X: 0, Y: 0}

func frame(now time.Duration, actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Now = now
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func clickAt(now time.Duration, p core.Vec2) core.InputFrame {
	in := frame(now)
	in.Click(p)
	return in
}

func TestSpawnCentersOnMap(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := spawn(cfg); got != core.V(19*64-48, 10.5*64-45) {
		t.Errorf("spawn() = %v", got)
	}
	cfg.Player.Spawn = &config.Point{X: 10, Y: 20}
	if got := spawn(cfg); got != core.V(10, 20) {
		t.Errorf("spawn() with override = %v", got)
	}
}

func TestBuiltinRoomStart(t *testing.T) {
	cfg := config.DefaultConfig()
	level, err := LoadLevel(t.Context(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("LoadLevel() error: %v", err)
	}
	g := New(cfg, level, Options{Runtime: core.DefaultConfig()})

	if box := g.Player().CollisionBox(); g.resolver.Grid.IsWall(int(box.Y/64), int(box.X/64)) {
		t.Fatalf("player spawns inside a wall at %v", box)
	}
	// Viewport 1280x768 on a 2432x1344 map, sprite center (1216, 672).
	if g.Camera() != core.V(576, 288) {
		t.Errorf("Camera() = %v, expected (576, 288)", g.Camera())
	}
	if len(g.Objects()) != len(cfg.Objects) {
		t.Errorf("objects = %d, expected %d", len(g.Objects()), len(cfg.Objects))
	}
}

func TestIntroOpensAfterDelay(t *testing.T) {
	g := newRoom(t, farAway)

	g.Step(frame(999 * ms))
	if g.Dialogue().Active() {
		t.Fatal("intro opened early")
	}
	g.Step(frame(1000 * ms))
	if !g.Dialogue().Active() || g.Dialogue().Mode() != dialogue.ModeIntro {
		t.Fatal("intro should open at 1000ms")
	}
	if g.Dialogue().Revealed() != 0 {
		t.Errorf("Revealed() = %d, expected 0 during the start delay", g.Dialogue().Revealed())
	}

	g.Step(frame(1000*ms + 500*ms + 100*ms))
	if got := g.Dialogue().Revealed(); got != 2 {
		t.Errorf("Revealed() = %d, expected 2 after 100ms of typing", got)
	}
}

func TestClickPromptStartsConversation(t *testing.T) {
	g := newRoom(t, byBed)

	a := g.Affordance()
	if !a.Visible || a.Object == nil || a.Object.ID != "bed" {
		t.Fatalf("prompt should show next to the bed: %+v", a)
	}
	if a.Button != core.Box(144, 86, 32, 32) {
		t.Fatalf("Button = %v", a.Button)
	}

	g.Step(clickAt(0, core.V(160, 100)))
	d := g.Dialogue()
	if !d.Active() || d.Mode() != dialogue.ModeConversation || d.Speaker() != dialogue.SpeakerA {
		t.Fatalf("click on the prompt should start a conversation (mode %v, speaker %v)", d.Mode(), d.Speaker())
	}
	if g.Status().Conversations != 1 {
		t.Errorf("Conversations = %d, expected 1", g.Status().Conversations)
	}

	// Any click while typing reveals the page.
	g.Step(clickAt(100*ms, core.V(1, 1)))
	if !d.FullyRevealed() {
		t.Fatal("click during typing should reveal the page")
	}

	// A click away from the next button does nothing once revealed.
	g.Step(clickAt(200*ms, core.V(1, 1)))
	if d.Page() != 0 {
		t.Fatalf("Page() = %d, expected 0", d.Page())
	}

	next := d.Layout().Next
	g.Step(clickAt(300*ms, next.Center()))
	if d.Page() != 1 || d.Speaker() != dialogue.SpeakerB {
		t.Errorf("next button should advance to B (page %d, speaker %v)", d.Page(), d.Speaker())
	}
	if g.Status().Conversations != 1 {
		t.Error("clicks inside an open dialogue must not start another conversation")
	}
}

func TestClickIgnoredWithoutPrompt(t *testing.T) {
	g := newRoom(t, farAway)
	if g.Affordance().Visible {
		t.Fatal("prompt should be hidden far from the bed")
	}

	g.Step(clickAt(0, core.V(160, 100)))
	if g.Dialogue().Active() {
		t.Error("click with no prompt and no dialogue should be ignored")
	}
}

func TestInteractKey(t *testing.T) {
	g := newRoom(t, byBed)

	g.Step(frame(0, core.ActionInteract))
	if g.Dialogue().Mode() != dialogue.ModeConversation {
		t.Fatal("interact should start a conversation next to the bed")
	}

	far := newRoom(t, farAway)
	far.Step(frame(0, core.ActionInteract))
	if far.Dialogue().Active() {
		t.Error("interact without a prompt should do nothing")
	}
}

func TestIntroDeferredWhileTalking(t *testing.T) {
	g := newRoom(t, byBed)

	g.Step(frame(900*ms, core.ActionInteract))
	g.Step(frame(1000 * ms))
	if g.Dialogue().Mode() != dialogue.ModeConversation {
		t.Fatal("intro must wait for the conversation to end")
	}

	g.Step(frame(1100*ms, core.ActionAdvance)) // reveal A
	g.Step(frame(1200*ms, core.ActionAdvance)) // show B
	g.Step(frame(1300*ms, core.ActionAdvance)) // reveal B
	if g.Dialogue().Mode() != dialogue.ModeConversation {
		t.Fatal("conversation closed early")
	}
	g.Step(frame(1400*ms, core.ActionAdvance)) // close
	if !g.Dialogue().Active() || g.Dialogue().Mode() != dialogue.ModeIntro {
		t.Error("intro should open as soon as the conversation closes")
	}
}

func TestPauseFreezesAndShiftsTimers(t *testing.T) {
	g := newRoom(t, farAway)

	g.Step(frame(0))
	g.Step(frame(500*ms, core.ActionPause))
	if !g.Status().Paused {
		t.Fatal("expected paused")
	}
	ticks := g.Status().Ticks

	moving := frame(1000 * ms)
	moving.Move, moving.Engaged = core.V(1, 0), true
	g.Step(moving)
	if g.Player().Pos != core.V(0, 0) || g.Status().Ticks != ticks {
		t.Error("simulation must not advance while paused")
	}

	g.Step(frame(2000*ms, core.ActionPause))
	if g.Status().Paused {
		t.Fatal("expected unpaused")
	}
	// 1500ms paused pushes the intro from 1000ms to 2500ms.
	g.Step(frame(2499 * ms))
	if g.Dialogue().Active() {
		t.Fatal("intro should be pushed back by the paused time")
	}
	g.Step(frame(2500 * ms))
	if !g.Dialogue().Active() {
		t.Error("intro should open at 2500ms")
	}
}

func TestMovementAndDistance(t *testing.T) {
	g := newRoom(t, config.Point{X: 0, Y: 200})

	in := frame(16 * ms)
	in.Move, in.Engaged = core.V(1, 0), true
	g.Step(in)

	if g.Player().Pos != core.V(5, 200) {
		t.Errorf("Pos = %v, expected (5, 200)", g.Player().Pos)
	}
	if g.Player().Facing != entity.FacingRight1 {
		t.Errorf("Facing = %v, expected right1", g.Player().Facing)
	}
	if got := g.Status().Distance; got != 5 {
		t.Errorf("Distance = %v, expected 5", got)
	}
	if g.Contact().Blocked() {
		t.Error("open floor should not block")
	}

	// Walking into the left map edge clamps and adds no distance.
	g = newRoom(t, config.Point{X: 0, Y: 200})
	in.Move = core.V(-1, 0)
	g.Step(in)
	if g.Player().Pos.X != 0 || g.Status().Distance != 0 {
		t.Errorf("Pos = %v, Distance = %v", g.Player().Pos, g.Status().Distance)
	}
}

func TestResizeRecentersImmediately(t *testing.T) {
	g := newRoom(t, byBed)
	if g.Camera() != core.V(0, 0) {
		t.Fatalf("Camera() = %v, expected origin", g.Camera())
	}

	g.Resize(core.V(160, 160))
	// Sprite center (197.5, 165) minus half the viewport.
	if g.Camera() != core.V(117.5, 85) {
		t.Errorf("Camera() = %v, expected (117.5, 85)", g.Camera())
	}
	if g.Affordance().Screen != core.V(26.5, 1) {
		t.Errorf("prompt screen position = %v, expected (26.5, 1)", g.Affordance().Screen)
	}
}

func TestFailedSession(t *testing.T) {
	g := NewFailed(config.DefaultConfig(), errors.New("boom"), Options{Runtime: core.DefaultConfig()})

	g.Step(frame(2000*ms, core.ActionInteract))
	if !g.Status().Failed || g.Status().Ticks != 0 {
		t.Errorf("Status() = %+v", g.Status())
	}
	if v := g.View(); v.Error != LoadErrorText {
		t.Errorf("View().Error = %q", v.Error)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(12), LoadErrorText) {
		t.Errorf("error text missing from row 12: %q", screen.Row(12))
	}
	if c := screen.GetCell(40, 12); c.Fg != core.ColorError {
		t.Errorf("error text color = %v", c.Fg.Hex())
	}
}

func TestStartWithMissingMap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.World.Map = "does/not/exist.txt"

	g := Start(t.Context(), cfg, StartOptions{Options: Options{Runtime: core.DefaultConfig()}})
	if g.Err() == nil {
		t.Fatal("expected a failed session")
	}
}

func TestStartBuiltinUsesPlaceholders(t *testing.T) {
	g := Start(t.Context(), config.DefaultConfig(), StartOptions{Options: Options{Runtime: core.DefaultConfig()}})
	if g.Err() != nil {
		t.Fatalf("Err() = %v", g.Err())
	}

	img, ok := g.sprites.Image(KeyTileWall)
	if !ok {
		t.Fatal("wall placeholder missing")
	}
	if got := core.FromColor(img.At(0, 0)); got != core.ColorWall {
		t.Errorf("wall placeholder color = %s", got.Hex())
	}
	if _, ok := g.sprites.Image("bed"); !ok {
		t.Error("object image placeholder missing")
	}
}
