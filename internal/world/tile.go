// Package world holds the tile grid the player walks on: tile codes, the
// read-only grid with bounds-safe access, and the map file formats.
package world

// Tile is one grid cell's type code.
type Tile int8

const (
	TileWall   Tile = 0
	TileCarpet Tile = 1

	// TileUnknown is returned for malformed codes and reads outside the
	// stored grid. It never blocks movement.
	TileUnknown Tile = -1
)

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileCarpet:
		return "carpet"
	default:
		return "unknown"
	}
}

// Blocks reports whether the tile stops the player.
func (t Tile) Blocks() bool {
	return t == TileWall
}

// tileFromCode maps a single map character to a tile.
func tileFromCode(r rune) Tile {
	switch r {
	case '0':
		return TileWall
	case '1':
		return TileCarpet
	default:
		return TileUnknown
	}
}
