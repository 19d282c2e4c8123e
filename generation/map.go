package generation

import (
	"container/heap"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidLevel is returned for negative level numbers
	ErrInvalidLevel = errors.New("level must be bigger than or equal to 0")
	// ErrNoRooms is returned when the partition produced nothing to connect
	ErrNoRooms = errors.New("rooms size must be bigger than 0")
	// ErrNoFloor is returned when there is no floor left to place a tile on
	ErrNoFloor = errors.New("no floor tile available")
	// ErrInvalidSize is returned when the level constants give a map with no area
	ErrInvalidSize = errors.New("map width and height must be positive")
)

// Edge connects two rooms, identified by their index in the room list
type Edge struct {
	Cost        int
	Source      int
	Destination int
}

// MapGenerator builds complete levels from a seeded random source
type MapGenerator struct {
	rng       *rand.Rand
	constants Constants
	options   BSPOptions
	log       *zap.Logger
}

// Option configures a MapGenerator
type Option func(*MapGenerator)

// WithSeed seeds the generator for reproducible maps
func WithSeed(seed int64) Option {
	return func(g *MapGenerator) { g.SetSeed(seed) }
}

// WithConstants overrides the level scaling constants
func WithConstants(c Constants) Option {
	return func(g *MapGenerator) { g.constants = c }
}

// WithBSPOptions overrides the split and room options
func WithBSPOptions(o BSPOptions) Option {
	return func(g *MapGenerator) { g.options = o }
}

// WithLogger attaches a logger for generation progress
func WithLogger(log *zap.Logger) Option {
	return func(g *MapGenerator) {
		if log != nil {
			g.log = log
		}
	}
}

// NewMapGenerator creates a generator seeded from the clock unless WithSeed is given
func NewMapGenerator(opts ...Option) *MapGenerator {
	g := &MapGenerator{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		constants: DefaultConstants(),
		options:   DefaultBSPOptions(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetSeed allows setting a specific seed for reproducible dungeons
func (g *MapGenerator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// CreateMap generates a level with a fresh generator, seeded from the clock when seed is nil
func CreateMap(level int, seed *int64) (*Grid, LevelConstants, error) {
	var opts []Option
	if seed != nil {
		opts = append(opts, WithSeed(*seed))
	}
	return NewMapGenerator(opts...).CreateMap(level)
}

// CreateMap generates the grid and constants for a level
func (g *MapGenerator) CreateMap(level int) (*Grid, LevelConstants, error) {
	if level < 0 {
		return nil, LevelConstants{}, fmt.Errorf("create map for level %d: %w", level, ErrInvalidLevel)
	}
	consts := g.constants.ForLevel(level)
	if consts.Width < 1 || consts.Height < 1 {
		return nil, LevelConstants{}, fmt.Errorf("create map %dx%d for level %d: %w", consts.Width, consts.Height, level, ErrInvalidSize)
	}
	grid := NewGrid(consts.Width, consts.Height)
	root := NewLeaf(NewRect(Point{0, 0}, Point{X: consts.Width - 1, Y: consts.Height - 1}))

	splits := SplitAll(root, consts.SplitIteration, grid, g.rng, g.options)
	var rooms []Rect
	if err := root.CreateRoom(grid, g.rng, g.options, &rooms); err != nil {
		return nil, LevelConstants{}, fmt.Errorf("create rooms: %w", err)
	}
	g.log.Debug("partitioned level",
		zap.Int("level", level),
		zap.Int("splits", splits),
		zap.Int("rooms", len(rooms)),
	)

	connections, err := ConnectRooms(rooms)
	if err != nil {
		return nil, LevelConstants{}, err
	}
	placeTiles(grid, g.rng, grid.Positions(TileEmpty), TileObstacle, consts.ObstacleCount)
	if err := createHallways(grid, rooms, connections); err != nil {
		return nil, LevelConstants{}, err
	}
	grid.Replace(TileDebugWall, TileEmpty)

	floors := grid.Positions(TileFloor)
	if len(floors) == 0 {
		return nil, LevelConstants{}, fmt.Errorf("place player: %w", ErrNoFloor)
	}
	floors = placeTiles(grid, g.rng, floors, TilePlayer, 1)
	placeTiles(grid, g.rng, floors, TilePotion, consts.PotionCount)

	g.log.Debug("generated level",
		zap.Int("level", level),
		zap.Int("width", consts.Width),
		zap.Int("height", consts.Height),
		zap.Int("hallways", len(connections)),
	)
	return grid, consts, nil
}

// placeTiles sets count random positions from candidates to target, removing
// them from the returned candidate list. It stops early when candidates run out.
func placeTiles(g *Grid, rng *rand.Rand, candidates []Point, target TileType, count int) []Point {
	for range count {
		if len(candidates) == 0 {
			break
		}
		i := rng.Intn(len(candidates))
		p := candidates[i]
		last := len(candidates) - 1
		candidates[i] = candidates[last]
		candidates = candidates[:last]
		g.put(p.X, p.Y, target)
	}
	return candidates
}

// ConnectRooms builds the minimum spanning tree of the complete room graph,
// weighting edges by the Chebyshev distance between room centres. Edges are
// returned in the order they join the tree, starting from the first room.
func ConnectRooms(rooms []Rect) ([]Edge, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("connect rooms: %w", ErrNoRooms)
	}

	visited := make([]bool, len(rooms))
	pq := make(PriorityQueue, 0, len(rooms))
	heap.Push(&pq, &Item{value: Edge{Source: 0, Destination: 0}})
	seq := 0
	var mst []Edge
	for pq.Len() > 0 && len(mst) < len(rooms)-1 {
		lowest := heap.Pop(&pq).(*Item).value
		if visited[lowest.Destination] {
			continue
		}
		visited[lowest.Destination] = true
		for i, room := range rooms {
			if i == lowest.Destination || visited[i] {
				continue
			}
			seq++
			edge := Edge{
				Cost:        rooms[lowest.Destination].DistanceTo(room),
				Source:      lowest.Destination,
				Destination: i,
			}
			heap.Push(&pq, &Item{value: edge, seq: seq})
		}
		if lowest.Source != lowest.Destination {
			mst = append(mst, lowest)
		}
	}
	return mst, nil
}

// createHallways searches a path for every connection in parallel, then
// stamps a square of HallwaySize around each step in connection order
func createHallways(g *Grid, rooms []Rect, connections []Edge) error {
	paths := make([][]Point, len(connections))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, edge := range connections {
		eg.Go(func() error {
			path, err := FindPath(g, rooms[edge.Source].Center, rooms[edge.Destination].Center)
			if err != nil {
				return fmt.Errorf("hallway %d -> %d: %w", edge.Source, edge.Destination, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	half := Point{X: HallwaySize / 2, Y: HallwaySize / 2}
	for _, path := range paths {
		for _, p := range path {
			NewRect(p.Sub(half), p.Add(half)).Place(g)
		}
	}
	return nil
}
