package generation

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a position lies outside the grid
var ErrOutOfBounds = errors.New("position must be within range")

// Point is an integer grid coordinate
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference of two points
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Chebyshev returns the king-move distance between two points
func (p Point) Chebyshev(o Point) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a fixed-size 2D array of tiles stored row-major
type Grid struct {
	width  int
	height int
	tiles  []TileType
}

// NewGrid creates a grid filled with empty tiles
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]TileType, width*height),
	}
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether p lies inside the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Get returns the tile at p
func (g *Grid) Get(p Point) (TileType, error) {
	if !g.InBounds(p) {
		return TileEmpty, fmt.Errorf("get %s: %w", p, ErrOutOfBounds)
	}
	return g.tiles[g.width*p.Y+p.X], nil
}

// Set replaces the tile at p
func (g *Grid) Set(p Point, t TileType) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set %s: %w", p, ErrOutOfBounds)
	}
	g.tiles[g.width*p.Y+p.X] = t
	return nil
}

// at and put skip bounds checks for callers that already clipped their ranges
func (g *Grid) at(x, y int) TileType {
	return g.tiles[g.width*y+x]
}

func (g *Grid) put(x, y int, t TileType) {
	g.tiles[g.width*y+x] = t
}

// Rows copies the grid out as a 2D slice indexed [y][x]
func (g *Grid) Rows() [][]TileType {
	rows := make([][]TileType, g.height)
	for y := range rows {
		rows[y] = append([]TileType(nil), g.tiles[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

// Count returns how many tiles have the given type
func (g *Grid) Count(t TileType) int {
	n := 0
	for _, tile := range g.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Positions returns every position holding the given type in row-major order
func (g *Grid) Positions(t TileType) []Point {
	var out []Point
	for i, tile := range g.tiles {
		if tile == t {
			out = append(out, Point{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// Replace swaps every tile of type from for type to
func (g *Grid) Replace(from, to TileType) {
	for i, tile := range g.tiles {
		if tile == from {
			g.tiles[i] = to
		}
	}
}

// String renders the grid with one glyph per tile
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.width+1)*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			buf = append(buf, g.at(x, y).Glyph())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
