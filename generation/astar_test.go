package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathGrid builds a 6x9 corridor walled in by obstacles on every side
func pathGrid(t *testing.T, obstacles ...Point) *Grid {
	t.Helper()
	g := NewGrid(6, 9)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if y == 0 || y == g.Height()-1 || x == 0 || x == g.Width()-1 {
				require.NoError(t, g.Set(Point{x, y}, TileObstacle))
			}
		}
	}
	for _, p := range obstacles {
		require.NoError(t, g.Set(p, TileObstacle))
	}
	return g
}

func TestFindPath(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []Point
		end       Point
		want      []Point
	}{
		{
			name: "open corridor",
			end:  Point{4, 1},
			want: []Point{{3, 7}, {2, 6}, {2, 5}, {2, 4}, {2, 3}, {3, 2}, {4, 1}},
		},
		{
			name:      "around obstacles",
			obstacles: []Point{{1, 3}, {2, 7}, {3, 2}, {3, 3}, {3, 6}, {4, 3}, {4, 6}},
			end:       Point{4, 1},
			want:      []Point{{3, 7}, {2, 6}, {1, 5}, {1, 4}, {2, 3}, {2, 2}, {3, 1}, {4, 1}},
		},
		{
			name: "end on the boundary",
			end:  Point{4, 0},
			want: nil,
		},
		{
			name:      "end on the boundary around obstacles",
			obstacles: []Point{{1, 3}, {2, 7}, {3, 2}, {3, 3}, {3, 6}, {4, 3}, {4, 6}},
			end:       Point{4, 0},
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := FindPath(pathGrid(t, tt.obstacles...), Point{3, 7}, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	// A full row of obstacles seals the top half off
	g := pathGrid(t, Point{1, 4}, Point{2, 4}, Point{3, 4}, Point{4, 4})
	path, err := FindPath(g, Point{3, 7}, Point{4, 1})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindPath_SamePoint(t *testing.T) {
	path, err := FindPath(pathGrid(t), Point{2, 2}, Point{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []Point{{2, 2}}, path)
}

func TestFindPath_EmptyGrid(t *testing.T) {
	for _, g := range []*Grid{NewGrid(0, 0), NewGrid(0, 5), NewGrid(5, 0)} {
		path, err := FindPath(g, Point{0, 0}, Point{1, 1})
		assert.ErrorIs(t, err, ErrEmptyGrid)
		assert.Nil(t, path)
	}
}

func TestFindPath_StepsAreAdjacent(t *testing.T) {
	g := NewGrid(20, 20)
	for x := 1; x < 15; x++ {
		require.NoError(t, g.Set(Point{x, 10}, TileObstacle))
	}
	path, err := FindPath(g, Point{2, 2}, Point{3, 17})
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, Point{2, 2}, path[0])
	assert.Equal(t, Point{3, 17}, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, path[i].Chebyshev(path[i-1]), "step %d", i)
		tile, _ := g.Get(path[i])
		assert.NotEqual(t, TileObstacle, tile)
	}
}

func TestFrontier_PopsInCostOrder(t *testing.T) {
	var f frontier
	for _, c := range []int{5, 3, 8, 1, 9, 2, 7, 3, 6} {
		f.push(neighbour{cost: c})
	}
	var got []int
	for len(f) > 0 {
		got = append(got, f.pop().cost)
	}
	assert.Equal(t, []int{1, 2, 3, 3, 5, 6, 7, 8, 9}, got)
}
