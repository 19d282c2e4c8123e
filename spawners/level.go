package spawners

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"hades-rogue/components"
	"hades-rogue/data"
	"hades-rogue/ecs"
	"hades-rogue/generation"
)

// Template IDs spawned for generated tiles
const (
	PlayerTemplate      = "player"
	EnemyTemplate       = "enemy"
	PotionTemplate      = "health_potion"
	SpeedPotionTemplate = "speed_potion"
)

// ErrNoPlayer is returned when a grid has no player tile
var ErrNoPlayer = errors.New("level has no player tile")

// Options controls how a level is populated
type Options struct {
	TileSize               int
	EnemyRetryCount        int
	EnemyMinPlayerDistance float64 // in tiles
	// Potions picks the template for each potion tile; nil uses DefaultPotionTable
	Potions *LootTable
}

// Level is a generated grid loaded into a registry
type Level struct {
	Registry  *ecs.Registry
	Grid      *generation.Grid
	Constants generation.LevelConstants
	Player    ecs.GameObjectID
	Potions   []ecs.GameObjectID

	templates   *data.TemplateManager
	rng         *rand.Rand
	opts        Options
	spawnPoints []generation.Point
}

// LoadLevel registers the grid's walls, spawns the player and potions, and
// spawns half of the level's enemies
func LoadLevel(r *ecs.Registry, grid *generation.Grid, constants generation.LevelConstants, templates *data.TemplateManager, rng *rand.Rand, opts Options) (*Level, error) {
	if opts.Potions == nil {
		opts.Potions = DefaultPotionTable()
	}
	l := &Level{
		Registry:  r,
		Grid:      grid,
		Constants: constants,
		Player:    -1,
		templates: templates,
		rng:       rng,
		opts:      opts,
	}

	for y := range grid.Height() {
		for x := range grid.Width() {
			p := generation.Point{X: x, Y: y}
			tile, _ := grid.Get(p)
			switch tile {
			case generation.TileEmpty, generation.TileObstacle, generation.TileDebugWall:
				continue
			case generation.TileWall:
				r.AddWall(ecs.Cell{X: x, Y: y})
				continue
			case generation.TilePlayer:
				id, err := l.spawn(PlayerTemplate, p)
				if err != nil {
					return nil, err
				}
				l.Player = id
			case generation.TilePotion:
				id, err := l.spawn(opts.Potions.Pick(rng), p)
				if err != nil {
					return nil, err
				}
				l.Potions = append(l.Potions, id)
			}
			l.spawnPoints = append(l.spawnPoints, p)
		}
	}
	if l.Player < 0 {
		return nil, ErrNoPlayer
	}

	for range constants.EnemyCount / 2 {
		if _, _, err := l.GenerateEnemy(); err != nil {
			return nil, err
		}
	}

	r.Logger().Info("loaded level",
		zap.Int("level", constants.Level),
		zap.Int("walls", r.WallCount()),
		zap.Int("potions", len(l.Potions)),
		zap.Int("enemies", l.EnemyCount()),
	)
	return l, nil
}

// CellToWorld returns the world position of a tile's centre
func (l *Level) CellToWorld(p generation.Point) ecs.Vec2 {
	size := float64(l.opts.TileSize)
	return ecs.Vec2{X: (float64(p.X) + 0.5) * size, Y: (float64(p.Y) + 0.5) * size}
}

// WorldToCell returns the tile containing a world position
func (l *Level) WorldToCell(pos ecs.Vec2) generation.Point {
	size := float64(l.opts.TileSize)
	return generation.Point{X: int(math.Floor(pos.X / size)), Y: int(math.Floor(pos.Y / size))}
}

// SpawnPoints returns the floor positions enemies may spawn on
func (l *Level) SpawnPoints() []generation.Point {
	return l.spawnPoints
}

// EnemyCount returns the number of living enemies
func (l *Level) EnemyCount() int {
	count := 0
	for range ecs.Find[*components.EnemyComponent](l.Registry) {
		count++
	}
	return count
}

// GenerateEnemy tries a few random spawn points for a new enemy, skipping
// occupied tiles and tiles near the player. It reports false when the level
// is at its enemy limit or every attempt was rejected.
func (l *Level) GenerateEnemy() (ecs.GameObjectID, bool, error) {
	if l.EnemyCount() >= l.Constants.EnemyCount || len(l.spawnPoints) == 0 {
		return 0, false, nil
	}

	playerPos, err := l.Registry.Position(l.Player)
	if err != nil {
		return 0, false, fmt.Errorf("generate enemy: %w", err)
	}
	minDistance := l.opts.EnemyMinPlayerDistance * float64(l.opts.TileSize)

	l.rng.Shuffle(len(l.spawnPoints), func(i, j int) {
		l.spawnPoints[i], l.spawnPoints[j] = l.spawnPoints[j], l.spawnPoints[i]
	})
	for _, p := range l.spawnPoints[:min(l.opts.EnemyRetryCount, len(l.spawnPoints))] {
		pos := l.CellToWorld(p)
		offset := pos.Sub(playerPos)
		if l.occupied(p) || math.Hypot(offset.X, offset.Y) < minDistance {
			continue
		}
		id, err := l.spawn(EnemyTemplate, p)
		return id, err == nil, err
	}
	return 0, false, nil
}

// occupied reports whether a body already stands on the tile
func (l *Level) occupied(p generation.Point) bool {
	for id := range ecs.Find[*components.KinematicComponent](l.Registry) {
		pos, err := l.Registry.Position(id)
		if err == nil && l.WorldToCell(pos) == p {
			return true
		}
	}
	return false
}

func (l *Level) spawn(template string, p generation.Point) (ecs.GameObjectID, error) {
	comps, err := l.templates.Components(template)
	if err != nil {
		return 0, fmt.Errorf("spawn %s at %s: %w", template, p, err)
	}
	return l.Registry.CreateGameObject(l.CellToWorld(p), comps...), nil
}
