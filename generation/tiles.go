package generation

// TileType identifies what occupies a single grid cell
type TileType uint8

const (
	TileEmpty TileType = iota
	TileFloor
	TileWall
	TileObstacle
	TilePlayer
	TilePotion
	// TileDebugWall marks BSP cut lines and never survives into a finished map
	TileDebugWall
)

var tileNames = [...]string{
	TileEmpty:     "Empty",
	TileFloor:     "Floor",
	TileWall:      "Wall",
	TileObstacle:  "Obstacle",
	TilePlayer:    "Player",
	TilePotion:    "Potion",
	TileDebugWall: "DebugWall",
}

var tileGlyphs = [...]rune{
	TileEmpty:     ' ',
	TileFloor:     '.',
	TileWall:      '#',
	TileObstacle:  'O',
	TilePlayer:    '@',
	TilePotion:    '!',
	TileDebugWall: '+',
}

// String returns the tile's name
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "Unknown"
}

// Glyph returns the character used to draw the tile in a terminal
func (t TileType) Glyph() rune {
	if int(t) < len(tileGlyphs) {
		return tileGlyphs[t]
	}
	return '?'
}

// Replaceable reports whether a wall may be stamped over the tile
func (t TileType) Replaceable() bool {
	return t == TileEmpty || t == TileObstacle || t == TileDebugWall
}

// Walkable reports whether a game object can stand on the tile once the level is loaded
func (t TileType) Walkable() bool {
	return t == TileFloor || t == TilePlayer || t == TilePotion
}
