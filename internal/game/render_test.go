package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/devden/internal/core"
)

func TestRenderFallbackColors(t *testing.T) {
	g := newRoom(t, byBed)
	screen := core.NewScreen(20, 10) // 320x320 world pixels
	g.Render(screen)

	tests := []struct {
		name  string
		x, y  int
		fg    core.Color
		bg    core.Color
		glyph rune
	}{
		{"carpet", 0, 0, core.ColorCarpet, core.ColorCarpet, halfBlock},
		{"bed", 8, 4, core.ColorObject, core.ColorObject, halfBlock},
		{"player", 12, 5, core.ColorPlayer, core.ColorPlayer, halfBlock},
		// The prompt glyph takes the prompt color as background.
		{"prompt", 10, 3, core.ColorBlack, core.ColorAffordance, '!'},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := screen.GetCell(tc.x, tc.y)
			if c.Rune != tc.glyph || c.Fg != tc.fg || c.Bg != tc.bg {
				t.Errorf("cell (%d, %d) = %q fg=%s bg=%s", tc.x, tc.y, c.Rune, c.Fg.Hex(), c.Bg.Hex())
			}
		})
	}
}

func TestRenderDialogue(t *testing.T) {
	g := newRoom(t, farAway)
	g.Step(frame(1000 * ms))
	g.Dialogue().Skip(1100 * ms)

	screen := core.NewScreen(20, 10)
	g.Render(screen)

	// A 240px box, three wrapped lines of at most ten runes.
	if got := screen.Get(2, 2); got != '┌' {
		t.Errorf("box corner = %q, expected ┌", got)
	}
	want := []string{"Hello,", "welcome to", "the game!"}
	for i, line := range want {
		if row := screen.Row(3 + i); !strings.Contains(row, line) {
			t.Errorf("row %d = %q, expected %q", 3+i, row, line)
		}
	}
	if c := screen.GetCell(4, 3); c.Bg != core.ColorDialogueBox || c.Fg != core.ColorWhite {
		t.Errorf("text cell colors fg=%s bg=%s", c.Fg.Hex(), c.Bg.Hex())
	}
	if !strings.Contains(screen.String(), ">") {
		t.Error("next button should show once the page is revealed")
	}
}

func TestRenderPaused(t *testing.T) {
	g := newRoom(t, farAway)
	g.Step(frame(0, core.ActionPause))

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "PAUSED") {
		t.Errorf("row 0 = %q", screen.Row(0))
	}
}

func TestViewSnapshot(t *testing.T) {
	g := newRoom(t, byBed)
	v := g.View()

	if len(v.Tiles) != 25 {
		t.Errorf("tiles = %d, expected the whole 5x5 room", len(v.Tiles))
	}
	if v.Tiles[0].Key != KeyTileCarpet || v.Tiles[0].Box != core.Box(0, 0, 64, 64) {
		t.Errorf("first tile = %+v", v.Tiles[0])
	}
	if len(v.Objects) != 1 || v.Objects[0].Key != "bed" {
		t.Errorf("objects = %+v", v.Objects)
	}
	if !v.Prompt.Visible || v.Prompt.Box != core.Box(144, 86, 32, 32) {
		t.Errorf("prompt = %+v", v.Prompt)
	}
	if v.Player.Key != "player_idle" || v.Player.Box != core.Box(149.5, 120, 96, 90) {
		t.Errorf("player = %+v", v.Player)
	}
	if v.Dialog.Visible {
		t.Error("no dialogue should be up before the intro")
	}

	g.Step(frame(0, core.ActionInteract))
	v = g.View()
	if !v.Dialog.Visible || v.Dialog.Portrait != KeyPortraitA {
		t.Errorf("dialog = %+v", v.Dialog)
	}
}
