package game

import (
	"github.com/vovakirdan/devden/internal/assets"
	"github.com/vovakirdan/devden/internal/config"
	"github.com/vovakirdan/devden/internal/core"
	"github.com/vovakirdan/devden/internal/dialogue"
	"github.com/vovakirdan/devden/internal/entity"
	"github.com/vovakirdan/devden/internal/world"
)

// Asset keys. Config refs are looked up under these names; placed objects
// use their own image key.
const (
	KeyTileWall    = "tile_wall"
	KeyTileCarpet  = "tile_carpet"
	KeyNextButton  = "next_button"
	KeyInteraction = "interaction_button"
	KeyPortraitA   = "portrait_a"
	KeyPortraitB   = "portrait_b"
)

// PlayerKey returns the sprite key for a facing.
func PlayerKey(f entity.Facing) string {
	return "player_" + f.String()
}

// TileKey returns the sprite key for a tile kind. Unknown tiles have none.
func TileKey(t world.Tile) string {
	switch t {
	case world.TileWall:
		return KeyTileWall
	case world.TileCarpet:
		return KeyTileCarpet
	default:
		return ""
	}
}

// PortraitKey returns the portrait key for a speaker.
func PortraitKey(s dialogue.Speaker) string {
	switch s {
	case dialogue.SpeakerA:
		return KeyPortraitA
	case dialogue.SpeakerB:
		return KeyPortraitB
	default:
		return ""
	}
}

// RequestAssets registers every image the game draws. Each request carries
// the flat placeholder drawn when the image cannot be loaded.
func RequestAssets(l *assets.Loader, cfg config.Config, objects []world.Placement) {
	refs := cfg.Assets.Refs
	tile := int(cfg.World.TileSize)
	ps := cfg.Player

	for _, f := range entity.Facings() {
		key := PlayerKey(f)
		l.Request(key, refs[key], assets.Placeholder{W: int(ps.SpriteW), H: int(ps.SpriteH), Color: core.ColorPlayer})
	}
	l.Request(KeyTileWall, refs[KeyTileWall], assets.Placeholder{W: tile, H: tile, Color: core.ColorWall})
	l.Request(KeyTileCarpet, refs[KeyTileCarpet], assets.Placeholder{W: tile, H: tile, Color: core.ColorCarpet})

	button := int(cfg.Dialogue.Layout.NextButton)
	l.Request(KeyNextButton, refs[KeyNextButton], assets.Placeholder{W: button, H: button, Color: core.ColorNextButton})
	prompt := int(cfg.Interaction.ButtonSize)
	l.Request(KeyInteraction, refs[KeyInteraction], assets.Placeholder{W: prompt, H: prompt, Color: core.ColorAffordance})
	portrait := int(cfg.Dialogue.Layout.Portrait)
	l.Request(KeyPortraitA, refs[KeyPortraitA], assets.Placeholder{W: portrait, H: portrait, Color: core.ColorPlayer})
	l.Request(KeyPortraitB, refs[KeyPortraitB], assets.Placeholder{W: portrait, H: portrait, Color: core.ColorObject})

	for _, p := range objects {
		if p.Image == "" {
			continue
		}
		w, h := int(p.W), int(p.H)
		if w <= 0 {
			w = tile
		}
		if h <= 0 {
			h = tile
		}
		l.Request(p.Image, refs[p.Image], assets.Placeholder{W: w, H: h, Color: core.ColorObject})
	}
}
