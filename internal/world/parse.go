package world

import (
	"strings"
)

// Placement puts an object on the map at tile coordinates.
type Placement struct {
	ID    string
	TileX int
	TileY int
	W, H  float64 // render size in pixels
	Image string  // asset key
}

// Level is a loaded map: the tile grid, the objects it places, and any
// shape problems found while reading it.
type Level struct {
	Grid       *Grid
	Placements []Placement
	Warnings   []Warning
}

// ParseText parses the text map format. The whole text is trimmed, each
// non-empty line becomes a row and each character one tile code. Shape
// mismatches against dims are reported as warnings and never fail.
func ParseText(text string, dims Dims) (*Grid, []Warning) {
	var rows [][]Tile
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		row := make([]Tile, 0, len(line))
		for _, r := range line {
			row = append(row, tileFromCode(r))
		}
		rows = append(rows, row)
	}

	grid := NewGrid(dims, rows)
	return grid, checkShape(grid)
}

// checkShape compares stored data against the declared dimensions. Only
// the first row is checked for width.
func checkShape(g *Grid) []Warning {
	var warnings []Warning
	if len(g.tiles) != g.Rows {
		warnings = append(warnings, warnf("map has %d rows, expected %d", len(g.tiles), g.Rows))
	}
	if len(g.tiles) > 0 && len(g.tiles[0]) != g.Cols {
		warnings = append(warnings, warnf("map has %d columns, expected %d", len(g.tiles[0]), g.Cols))
	}
	return warnings
}

// EncodeText renders a grid back into the text map format. Unknown tiles
// are written as '?'.
func EncodeText(g *Grid) string {
	var sb strings.Builder
	for _, row := range g.tiles {
		for _, t := range row {
			switch t {
			case TileWall:
				sb.WriteByte('0')
			case TileCarpet:
				sb.WriteByte('1')
			default:
				sb.WriteByte('?')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
