package interaction

import (
	"testing"

	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/entity"
	"github.com/vovakirdan/devden/internal/physics"
	"github.com/vovakirdan/devden/internal/world"
)

// exact disables the reach margin.
var exact = Spec{ButtonSize: 32, ButtonOffset: 10}

func bed() entity.Objects {
	return entity.NewObjects([]world.Placement{
		{ID: "bed", TileX: 2, TileY: 2, W: 96, H: 96, Image: "bed"},
	}, 64, entity.DefaultHitbox(64))
}

func TestDetect(t *testing.T) {
	objs := bed()
	camera := core.V(50, 20)

	// Hitbox is (155, 155, 30, 30).
	a := Detect(core.Box(150, 150, 10, 10), objs, camera, exact)
	if !a.Visible || a.Object == nil || a.Object.ID != "bed" {
		t.Fatalf("affordance = %+v, expected visible on the bed", a)
	}
	if want := core.Box(128+32, 128-42, 32, 32); a.Button != want {
		t.Errorf("Button = %+v, expected %+v", a.Button, want)
	}
	if a.Screen != core.V(110, 66) {
		t.Errorf("Screen = %v, expected (110, 66)", a.Screen)
	}
	if !a.Hit(core.V(110, 66)) || !a.Hit(core.V(142, 98)) || a.Hit(core.V(143, 98)) {
		t.Error("Hit() should cover the screen box inclusively")
	}

	miss := Detect(core.Box(145, 145, 10, 10), objs, camera, exact)
	if miss.Visible || miss.Object != nil {
		t.Errorf("touching edges should not show the prompt: %+v", miss)
	}
	if miss.Hit(core.V(110, 66)) {
		t.Error("hidden prompt should not be hit")
	}

	if reach := Detect(core.Box(145, 145, 10, 10), objs, camera, DefaultSpec()); !reach.Visible {
		t.Error("a box flush against the hitbox should be within reach")
	}
}

func TestDetectFirstInCollectionOrder(t *testing.T) {
	objs := entity.Objects{
		{ID: "first", Hitbox: core.Box(0, 0, 50, 50), Size: core.V(64, 64)},
		{ID: "second", Hitbox: core.Box(0, 0, 50, 50), Size: core.V(64, 64)},
	}
	a := Detect(core.Box(10, 10, 5, 5), objs, core.Vec2{}, exact)
	if a.Object == nil || a.Object.ID != "first" {
		t.Errorf("Object = %v, expected first", a.Object)
	}
}

func TestAffordanceAppearsAndDisappears(t *testing.T) {
	g, _ := world.ParseText("11111\n11111\n11111\n11111\n11111", world.Dims{Rows: 5, Cols: 5, TileSize: 64})
	objs := bed()
	hitbox := objs[0].Hitbox
	spec := entity.PlayerSpec{SpriteW: 10, SpriteH: 10, CollisionW: 10, CollisionH: 10, Speed: 5, AnimationFrames: 15}
	r := physics.NewResolver(g, nil)

	// Start overlapping the hitbox and walk left until clear.
	p := entity.NewPlayer(spec, core.V(hitbox.X+5, 160))
	a := Detect(p.CollisionBox(), objs, core.Vec2{}, exact)
	if !a.Visible {
		t.Fatal("prompt should be visible while the boxes overlap")
	}

	for i := 0; i < 10; i++ {
		p.Pos, _ = r.Resolve(p, core.V(-5, 0))
		a := Detect(p.CollisionBox(), objs, core.Vec2{}, exact)
		overlap := p.CollisionBox().Intersects(hitbox)
		if a.Visible != overlap {
			t.Fatalf("frame %d: visible=%v overlap=%v", i, a.Visible, overlap)
		}
		if !overlap {
			if p.CollisionBox().Right() != hitbox.X {
				t.Errorf("cleared at right edge %v, expected %v", p.CollisionBox().Right(), hitbox.X)
			}
			return
		}
	}
	t.Fatal("player never cleared the hitbox")
}

func TestPromptWhileBlockedByObject(t *testing.T) {
	g, _ := world.ParseText("11111\n11111\n11111\n11111\n11111", world.Dims{Rows: 5, Cols: 5, TileSize: 64})
	objs := bed()
	spec := entity.PlayerSpec{SpriteW: 10, SpriteH: 10, CollisionW: 10, CollisionH: 10, Speed: 5, AnimationFrames: 15}
	r := physics.NewResolver(g, objs)
	p := entity.NewPlayer(spec, core.V(100, 160))

	var a Affordance
	for i := 0; i < 20; i++ {
		p.Pos, _ = r.Resolve(p, core.V(5, 0))
		a = Detect(p.CollisionBox(), objs, core.Vec2{}, DefaultSpec())
	}
	if p.CollisionBox().Right() != objs[0].Hitbox.X {
		t.Fatalf("player should rest flush against the bed, right edge %v", p.CollisionBox().Right())
	}
	if !a.Visible {
		t.Error("prompt should show while pressed against the bed")
	}
}
