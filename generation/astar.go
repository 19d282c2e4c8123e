package generation

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when a search is asked to run over a grid with no tiles
var ErrEmptyGrid = errors.New("grid size must be bigger than 0")

var intercardinalOffsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// neighbour is a frontier entry: the estimated total cost and the point it leads to
type neighbour struct {
	cost  int
	point Point
}

// step records the best known cost to reach a point and where it came from
type step struct {
	cost int
	from Point
}

// frontier is a binary min-heap ordered by cost only. Sift order is fixed so
// equal-cost entries always come out in the same order for the same inputs.
type frontier []neighbour

func (f *frontier) push(n neighbour) {
	*f = append(*f, n)
	f.siftUp(len(*f)-1, n)
}

func (f frontier) siftUp(hole int, n neighbour) {
	parent := (hole - 1) / 2
	for hole > 0 && f[parent].cost > n.cost {
		f[hole] = f[parent]
		hole = parent
		parent = (hole - 1) / 2
	}
	f[hole] = n
}

func (f *frontier) pop() neighbour {
	q := *f
	top := q[0]
	last := len(q) - 1
	if last > 0 {
		moved := q[last]
		// Walk the hole down to a leaf along the smaller child, then sift the
		// displaced last element back up from there
		hole, child := 0, 0
		for child < (last-1)/2 {
			child = 2 * (child + 1)
			if q[child].cost > q[child-1].cost {
				child--
			}
			q[hole] = q[child]
			hole = child
		}
		if last&1 == 0 && child == (last-2)/2 {
			child = 2 * (child + 1)
			q[hole] = q[child-1]
			hole = child - 1
		}
		q[:last].siftUp(hole, moved)
	}
	*f = q[:last]
	return top
}

// FindPath runs an A* search over the eight neighbours of each tile and returns
// the route from start to end inclusive, or nil when end cannot be reached.
// Obstacles and the outermost ring of the grid are never entered.
func FindPath(g *Grid, start, end Point) ([]Point, error) {
	if g.width == 0 || g.height == 0 {
		return nil, fmt.Errorf("find path %s -> %s: %w", start, end, ErrEmptyGrid)
	}

	visited := map[Point]step{start: {cost: 0, from: start}}
	queue := frontier{{cost: 0, point: start}}
	for len(queue) > 0 {
		current := queue.pop().point
		if current == end {
			return walkBack(visited, start, end), nil
		}

		for _, offset := range intercardinalOffsets {
			next := current.Add(offset)
			if next.X < 1 || next.X >= g.width-1 || next.Y < 1 || next.Y >= g.height-1 {
				continue
			}
			if g.at(next.X, next.Y) == TileObstacle {
				continue
			}

			distance := visited[current].cost + 1
			if known, ok := visited[next]; ok && distance >= known.cost {
				continue
			}
			visited[next] = step{cost: distance, from: current}
			queue.push(neighbour{cost: distance + next.Chebyshev(end), point: next})
		}
	}
	return nil, nil
}

func walkBack(visited map[Point]step, start, end Point) []Point {
	var path []Point
	for p := end; ; p = visited[p].from {
		path = append(path, p)
		if p == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
