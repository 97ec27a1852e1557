package world

import (
	"fmt"

	"github.com/vovakirdan/devden/internal/core"
)

// Dims are the declared map dimensions. Map files are expected to match
// them; the grid tolerates files that do not.
type Dims struct {
	Rows     int
	Cols     int
	TileSize float64
}

// Grid is the read-only tile map. Storage may be ragged or shorter than the
// declared dimensions, so every read goes through At.
type Grid struct {
	Dims
	tiles [][]Tile
}

// NewGrid wraps parsed rows with the declared dimensions.
func NewGrid(dims Dims, rows [][]Tile) *Grid {
	return &Grid{Dims: dims, tiles: rows}
}

// At returns the tile at (row, col), or TileUnknown when the cell is
// outside the stored data.
func (g *Grid) At(row, col int) Tile {
	if g == nil || row < 0 || row >= len(g.tiles) {
		return TileUnknown
	}
	r := g.tiles[row]
	if col < 0 || col >= len(r) {
		return TileUnknown
	}
	return r[col]
}

// IsWall reports whether the cell blocks movement.
func (g *Grid) IsWall(row, col int) bool {
	return g.At(row, col).Blocks()
}

// StoredRows returns how many rows were actually parsed.
func (g *Grid) StoredRows() int {
	return len(g.tiles)
}

// WidthPx is the map width derived from the declared column count.
func (g *Grid) WidthPx() float64 {
	return float64(g.Cols) * g.TileSize
}

// HeightPx is the map height derived from the declared row count.
func (g *Grid) HeightPx() float64 {
	return float64(g.Rows) * g.TileSize
}

// Size returns the map size in pixels.
func (g *Grid) Size() core.Vec2 {
	return core.V(g.WidthPx(), g.HeightPx())
}

// TileBox returns the world-space box of a cell.
func (g *Grid) TileBox(row, col int) core.AABB {
	return core.Box(float64(col)*g.TileSize, float64(row)*g.TileSize, g.TileSize, g.TileSize)
}

// Span is a half-open range of tile indices [Start, End).
type Span struct {
	Start, End int
}

// Covering returns the column and row spans a box overlaps, clamped to the
// declared grid. A box whose edge lies exactly on a tile boundary does not
// reach into the next tile.
func (g *Grid) Covering(b core.AABB) (cols, rows Span) {
	cols = g.span(b.X, b.Right(), g.Cols)
	rows = g.span(b.Y, b.Bottom(), g.Rows)
	return cols, rows
}

func (g *Grid) span(lo, hi float64, limit int) Span {
	start := int(floorDiv(lo, g.TileSize))
	end := int(ceilDiv(hi, g.TileSize))
	return Span{Start: core.Max(0, start), End: core.Min(limit, end)}
}

// Warning describes a tolerated problem found while loading a map.
type Warning struct {
	Msg string
}

func (w Warning) String() string {
	return w.Msg
}

func warnf(format string, args ...any) Warning {
	return Warning{Msg: fmt.Sprintf(format, args...)}
}
