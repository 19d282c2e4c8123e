package config

// Viewer layout configuration
const (
	// Tile size in pixels
	TileSize = 16

	// Rows reserved under the map for the status line and message log
	StatusRows = 4
)

// WindowSize returns the window dimensions in pixels for a map of the given
// size in tiles
func (w WindowConfig) WindowSize(mapWidth, mapHeight int) (width, height int) {
	px := float64(w.TileSize) * w.Scale
	return int(float64(mapWidth) * px), int(float64(mapHeight+StatusRows) * px)
}
