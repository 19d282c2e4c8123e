package generation

import "math"

// Rect is an axis-aligned rectangle with inclusive bounds
type Rect struct {
	TopLeft     Point
	BottomRight Point
	Center      Point
}

// NewRect creates a rectangle and derives its centre
func NewRect(topLeft, bottomRight Point) Rect {
	return Rect{
		TopLeft:     topLeft,
		BottomRight: bottomRight,
		Center: Point{
			X: int(math.Round(float64(topLeft.X+bottomRight.X) / 2)),
			Y: int(math.Round(float64(topLeft.Y+bottomRight.Y) / 2)),
		},
	}
}

// Width returns the horizontal distance between the two corners
func (r Rect) Width() int {
	return abs(r.TopLeft.X - r.BottomRight.X)
}

// Height returns the vertical distance between the two corners
func (r Rect) Height() int {
	return abs(r.TopLeft.Y - r.BottomRight.Y)
}

// DistanceTo returns the Chebyshev distance between the two centres
func (r Rect) DistanceTo(other Rect) int {
	return r.Center.Chebyshev(other.Center)
}

// Place stamps the rectangle onto the grid: walls over replaceable tiles,
// then floor over the interior
func (r Rect) Place(g *Grid) {
	for y := max(r.TopLeft.Y, 0); y < min(r.BottomRight.Y+1, g.height); y++ {
		for x := max(r.TopLeft.X, 0); x < min(r.BottomRight.X+1, g.width); x++ {
			if g.at(x, y).Replaceable() {
				g.put(x, y, TileWall)
			}
		}
	}
	for y := max(r.TopLeft.Y+1, 1); y < min(r.BottomRight.Y, g.height-1); y++ {
		for x := max(r.TopLeft.X+1, 1); x < min(r.BottomRight.X, g.width-1); x++ {
			g.put(x, y, TileFloor)
		}
	}
}
