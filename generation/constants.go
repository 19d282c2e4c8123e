package generation

import "math"

// HallwaySize is the side length of the square stamped at every hallway step
const HallwaySize = 5

// GenerationConstant grows exponentially with the level up to a cap
type GenerationConstant struct {
	Base     float64 `toml:"base"`
	Increase float64 `toml:"increase"`
	Max      float64 `toml:"max"`
}

// At returns the constant's value for a level
func (c GenerationConstant) At(level int) int {
	return int(min(math.Round(c.Base*math.Pow(c.Increase, float64(level))), c.Max))
}

// Valid reports whether the constant never scales below zero
func (c GenerationConstant) Valid() bool {
	return c.Base >= 0 && c.Increase > 0 && c.Max >= 0
}

// Constants holds every level-scaled value used when generating a map
type Constants struct {
	Width          GenerationConstant `toml:"width"`
	Height         GenerationConstant `toml:"height"`
	SplitIteration GenerationConstant `toml:"split_iteration"`
	ObstacleCount  GenerationConstant `toml:"obstacle_count"`
	PotionCount    GenerationConstant `toml:"potion_count"`
	EnemyCount     GenerationConstant `toml:"enemy_count"`
}

// DefaultConstants returns the standard level scaling
func DefaultConstants() Constants {
	return Constants{
		Width:          GenerationConstant{Base: 30, Increase: 1.2, Max: 150},
		Height:         GenerationConstant{Base: 20, Increase: 1.2, Max: 100},
		SplitIteration: GenerationConstant{Base: 5, Increase: 1.5, Max: 25},
		ObstacleCount:  GenerationConstant{Base: 20, Increase: 1.3, Max: 200},
		PotionCount:    GenerationConstant{Base: 5, Increase: 1.1, Max: 30},
		EnemyCount:     GenerationConstant{Base: 8, Increase: 1.1, Max: 40},
	}
}

// LevelConstants describes a generated level
type LevelConstants struct {
	Level          int
	Width          int
	Height         int
	SplitIteration int
	ObstacleCount  int
	PotionCount    int
	EnemyCount     int
}

// Each calls fn with the TOML name and value of every constant
func (c Constants) Each(fn func(name string, value GenerationConstant) bool) {
	for _, entry := range []struct {
		name  string
		value GenerationConstant
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"split_iteration", c.SplitIteration},
		{"obstacle_count", c.ObstacleCount},
		{"potion_count", c.PotionCount},
		{"enemy_count", c.EnemyCount},
	} {
		if !fn(entry.name, entry.value) {
			return
		}
	}
}

// ForLevel evaluates every constant for a level
func (c Constants) ForLevel(level int) LevelConstants {
	return LevelConstants{
		Level:          level,
		Width:          c.Width.At(level),
		Height:         c.Height.At(level),
		SplitIteration: c.SplitIteration.At(level),
		ObstacleCount:  c.ObstacleCount.At(level),
		PotionCount:    c.PotionCount.At(level),
		EnemyCount:     c.EnemyCount.At(level),
	}
}
