package generation

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrLeafTooSmall is returned when a leaf cannot fit the minimum room size
var ErrLeafTooSmall = errors.New("leaf container is too small for a room")

// BSPOptions controls how leaves are split and how rooms are carved inside them
type BSPOptions struct {
	// MinContainerSize is the smallest span either side of a split may have
	MinContainerSize int
	// MinRoomSize and MaxRoomSize bound room spans; a zero max means the container bounds it
	MinRoomSize int
	MaxRoomSize int
	// RoomRatio is the lowest accepted ratio of a room's short side to its long side
	RoomRatio float64
	// MaxRoomAttempts caps the retries when carving a room in a single leaf
	MaxRoomAttempts int
	// Debug stamps split lines onto the grid as TileDebugWall
	Debug bool
}

// DefaultBSPOptions returns the options used for normal map generation
func DefaultBSPOptions() BSPOptions {
	return BSPOptions{
		MinContainerSize: 5,
		MinRoomSize:      4,
		RoomRatio:        0.625,
		MaxRoomAttempts:  1000,
	}
}

// Leaf is a node in the binary space partition tree
type Leaf struct {
	Container Rect
	Room      *Rect
	Left      *Leaf
	Right     *Leaf
	Parent    *Leaf
}

// NewLeaf creates a terminal leaf covering container
func NewLeaf(container Rect) *Leaf {
	return &Leaf{Container: container}
}

// IsTerminal reports whether the leaf has no children
func (l *Leaf) IsTerminal() bool {
	return l.Left == nil && l.Right == nil
}

// Split divides the leaf into two children separated by a one tile gap.
// It returns false when the leaf is already split or is too small to split.
func (l *Leaf) Split(g *Grid, rng *rand.Rand, opts BSPOptions) bool {
	if l.Left != nil && l.Right != nil {
		return false
	}

	width, height := l.Container.Width(), l.Container.Height()
	var horizontal bool
	switch {
	case width > height:
		horizontal = true
	case height > width:
		horizontal = false
	default:
		horizontal = rng.Intn(2) == 0
	}

	span := height
	if horizontal {
		span = width
	}
	limit := span - opts.MinContainerSize
	if limit <= opts.MinContainerSize {
		l.Left, l.Right = nil, nil
		return false
	}
	offset := opts.MinContainerSize + rng.Intn(limit-opts.MinContainerSize+1)

	tl, br := l.Container.TopLeft, l.Container.BottomRight
	var left, right, cut Rect
	if horizontal {
		at := tl.X + offset
		left = NewRect(tl, Point{X: at - 1, Y: br.Y})
		right = NewRect(Point{X: at + 1, Y: tl.Y}, br)
		cut = NewRect(Point{X: at, Y: tl.Y}, Point{X: at, Y: br.Y})
	} else {
		at := tl.Y + offset
		left = NewRect(tl, Point{X: br.X, Y: at - 1})
		right = NewRect(Point{X: tl.X, Y: at + 1}, br)
		cut = NewRect(Point{X: tl.X, Y: at}, Point{X: br.X, Y: at})
	}

	l.Left = &Leaf{Container: left, Parent: l}
	l.Right = &Leaf{Container: right, Parent: l}
	if opts.Debug && g != nil {
		stampLine(g, cut)
	}
	return true
}

// CreateRoom carves a room in every terminal leaf below l, appending each room
// to rooms in left-to-right order
func (l *Leaf) CreateRoom(g *Grid, rng *rand.Rand, opts BSPOptions, rooms *[]Rect) error {
	if !l.IsTerminal() {
		for _, child := range [2]*Leaf{l.Left, l.Right} {
			if child == nil {
				continue
			}
			if err := child.CreateRoom(g, rng, opts, rooms); err != nil {
				return err
			}
		}
		return nil
	}

	attempts := max(opts.MaxRoomAttempts, 1)
	for range attempts {
		room, ok, err := l.tryRoom(rng, opts)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		room.Place(g)
		l.Room = &room
		*rooms = append(*rooms, room)
		return nil
	}
	return fmt.Errorf("create room in %v after %d attempts: %w", l.Container, attempts, ErrLeafTooSmall)
}

// tryRoom picks a random room inside the container and reports whether its
// proportions are acceptable
func (l *Leaf) tryRoom(rng *rand.Rand, opts BSPOptions) (Rect, bool, error) {
	maxWidth, maxHeight := l.Container.Width(), l.Container.Height()
	if opts.MaxRoomSize > 0 {
		maxWidth, maxHeight = min(maxWidth, opts.MaxRoomSize), min(maxHeight, opts.MaxRoomSize)
	}
	if maxWidth < opts.MinRoomSize || maxHeight < opts.MinRoomSize {
		return Rect{}, false, fmt.Errorf("container %v: %w", l.Container, ErrLeafTooSmall)
	}

	width := opts.MinRoomSize + rng.Intn(maxWidth-opts.MinRoomSize+1)
	height := opts.MinRoomSize + rng.Intn(maxHeight-opts.MinRoomSize+1)
	tl, br := l.Container.TopLeft, l.Container.BottomRight
	x := tl.X + rng.Intn(br.X-width-tl.X+1)
	y := tl.Y + rng.Intn(br.Y-height-tl.Y+1)

	if float64(min(width, height))/float64(max(width, height)) < opts.RoomRatio {
		return Rect{}, false, nil
	}
	return NewRect(Point{X: x, Y: y}, Point{X: x + width - 1, Y: y + height - 1}), true, nil
}

// SplitAll splits leaves breadth first until iterations successful splits
// have happened or no leaf can be split any further
func SplitAll(root *Leaf, iterations int, g *Grid, rng *rand.Rand, opts BSPOptions) int {
	splits := 0
	queue := []*Leaf{root}
	for splits < iterations && len(queue) > 0 {
		leaf := queue[0]
		queue = queue[1:]
		if leaf.Split(g, rng, opts) {
			queue = append(queue, leaf.Left, leaf.Right)
			splits++
		}
	}
	return splits
}

// Leaves returns the terminal leaves under l from left to right
func (l *Leaf) Leaves() []*Leaf {
	if l.IsTerminal() {
		return []*Leaf{l}
	}
	var out []*Leaf
	for _, child := range [2]*Leaf{l.Left, l.Right} {
		if child != nil {
			out = append(out, child.Leaves()...)
		}
	}
	return out
}

func stampLine(g *Grid, r Rect) {
	for y := max(r.TopLeft.Y, 0); y <= min(r.BottomRight.Y, g.height-1); y++ {
		for x := max(r.TopLeft.X, 0); x <= min(r.BottomRight.X, g.width-1); x++ {
			if g.at(x, y) == TileEmpty {
				g.put(x, y, TileDebugWall)
			}
		}
	}
}
