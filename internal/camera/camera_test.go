package camera

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/devden/internal/core"
)

func TestFollow(t *testing.T) {
	mapSize := core.V(38*64, 21*64)
	viewport := core.V(1280, 768)

	tests := []struct {
		name     string
		center   core.Vec2
		viewport core.Vec2
		mapSize  core.Vec2
		want     core.Vec2
	}{
		{"centered in the middle", core.V(1216, 672), viewport, mapSize, core.V(576, 288)},
		{"clamped at top-left", core.V(10, 10), viewport, mapSize, core.V(0, 0)},
		{"clamped at bottom-right", core.V(5000, 5000), viewport, mapSize, core.V(2432-1280, 1344-768)},
		{"narrow map centers horizontally", core.V(100, 672), core.V(3000, 768), mapSize, core.V((2432-3000)/2.0, 288)},
		{"short map centers vertically", core.V(1216, 0), core.V(1280, 2000), mapSize, core.V(576, (1344-2000)/2.0)},
		{"exact fit", core.V(999, 999), core.V(2432, 1344), mapSize, core.V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Follow(tc.center, tc.viewport, tc.mapSize); got != tc.want {
				t.Errorf("Follow() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFollowAlwaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		mapSize := core.V(64+rng.Float64()*3000, 64+rng.Float64()*3000)
		viewport := core.V(100+rng.Float64()*2000, 100+rng.Float64()*2000)
		center := core.V(rng.Float64()*4000-500, rng.Float64()*4000-500)

		got := Follow(center, viewport, mapSize)
		check := func(origin, view, size float64) {
			if size < view {
				if origin != (size-view)/2 {
					t.Fatalf("origin %v, expected centered %v (map %v, view %v)", origin, (size-view)/2, size, view)
				}
				return
			}
			if origin < 0 || origin > size-view {
				t.Fatalf("origin %v outside [0, %v]", origin, size-view)
			}
		}
		check(got.X, viewport.X, mapSize.X)
		check(got.Y, viewport.Y, mapSize.Y)
	}
}

func TestScreenWorldConversion(t *testing.T) {
	origin := core.V(100, -50)
	p := core.V(30, 40)
	if w := ToWorld(origin, p); w != core.V(130, -10) {
		t.Errorf("ToWorld() = %v", w)
	}
	if s := ToScreen(origin, ToWorld(origin, p)); s != p {
		t.Errorf("round trip = %v, expected %v", s, p)
	}
	if v := Visible(origin, core.V(10, 20)); v != core.Box(100, -50, 10, 20) {
		t.Errorf("Visible() = %+v", v)
	}
}
