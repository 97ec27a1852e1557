package world

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/lafriks/go-tiled"
)

const (
	tmxWallLayer   = "walls"
	tmxObjectGroup = "objects"
)

// ParseTMX reads a Tiled map. Any tile in the "walls" layer is a wall and
// empty cells are carpet. Objects in the "objects" group become
// placements; their "image" property names the asset. A nil fsys reads
// from the OS file system.
func ParseTMX(fsys fs.FS, path string, dims Dims) (*Level, error) {
	var opts []tiled.LoaderOption
	if fsys != nil {
		opts = append(opts, tiled.WithFileSystem(fsys))
	}
	m, err := tiled.LoadFile(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("world: load tmx %s: %w", path, err)
	}
	return levelFromTMX(m, dims)
}

func levelFromTMX(m *tiled.Map, dims Dims) (*Level, error) {
	var walls *tiled.Layer
	for _, layer := range m.Layers {
		if layer.Name == tmxWallLayer {
			walls = layer
			break
		}
	}
	if walls == nil {
		return nil, fmt.Errorf("world: tmx has no %q layer", tmxWallLayer)
	}

	rows := make([][]Tile, m.Height)
	for y := 0; y < m.Height; y++ {
		row := make([]Tile, m.Width)
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if i < len(walls.Tiles) && !walls.Tiles[i].IsNil() {
				row[x] = TileWall
			} else {
				row[x] = TileCarpet
			}
		}
		rows[y] = row
	}

	lvl := &Level{Grid: NewGrid(dims, rows)}
	lvl.Warnings = checkShape(lvl.Grid)
	if float64(m.TileWidth) != dims.TileSize {
		lvl.Warnings = append(lvl.Warnings,
			warnf("tmx tile width is %d, expected %g", m.TileWidth, dims.TileSize))
	}

	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, og := range m.ObjectGroups {
		if og.Name != tmxObjectGroup {
			continue
		}
		for _, o := range og.Objects {
			// Sizes are kept in map pixels and rescaled to the game tile.
			scale := dims.TileSize / tw
			lvl.Placements = append(lvl.Placements, Placement{
				ID:    o.Name,
				TileX: int(math.Floor(o.X / tw)),
				TileY: int(math.Floor(o.Y / th)),
				W:     o.Width * scale,
				H:     o.Height * scale,
				Image: o.Properties.GetString("image"),
			})
		}
	}
	return lvl, nil
}
