package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"hades-rogue/generation"
)

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Generation GenerationConfig `toml:"generation"`
	Game       GameConfig       `toml:"game"`
	Logging    LoggingConfig    `toml:"logging"`
	Window     WindowConfig     `toml:"window"`
}

type GenerationConfig struct {
	// Seed fixes the map generator's seed; unset seeds from the clock
	Seed             *int64  `toml:"seed"`
	Debug            bool    `toml:"debug"`
	MinContainerSize int     `toml:"min_container_size"`
	MinRoomSize      int     `toml:"min_room_size"`
	MaxRoomSize      int     `toml:"max_room_size"` // 0 = bounded by the container
	RoomRatio        float64 `toml:"room_ratio"`
	MaxRoomAttempts  int     `toml:"max_room_attempts"`

	Constants generation.Constants `toml:"constants"`
}

type GameConfig struct {
	Level                  int     `toml:"level"`
	EnemyRetryCount        int     `toml:"enemy_retry_count"`
	EnemyMinPlayerDistance float64 `toml:"enemy_min_player_distance"` // in tiles
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type WindowConfig struct {
	TileSize int     `toml:"tile_size"`
	Scale    float64 `toml:"scale"`
}

// BSPOptions converts the generation section into partitioning options
func (g GenerationConfig) BSPOptions() generation.BSPOptions {
	return generation.BSPOptions{
		MinContainerSize: g.MinContainerSize,
		MinRoomSize:      g.MinRoomSize,
		MaxRoomSize:      g.MaxRoomSize,
		RoomRatio:        g.RoomRatio,
		MaxRoomAttempts:  g.MaxRoomAttempts,
		Debug:            g.Debug,
	}
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	bsp := generation.DefaultBSPOptions()
	return &Config{
		Generation: GenerationConfig{
			MinContainerSize: bsp.MinContainerSize,
			MinRoomSize:      bsp.MinRoomSize,
			MaxRoomSize:      bsp.MaxRoomSize,
			RoomRatio:        bsp.RoomRatio,
			MaxRoomAttempts:  bsp.MaxRoomAttempts,
			Constants:        generation.DefaultConstants(),
		},
		Game: GameConfig{
			Level:                  0,
			EnemyRetryCount:        3,
			EnemyMinPlayerDistance: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			TileSize: TileSize,
			Scale:    1,
		},
	}
}

// Validate checks the values that would make generation or the viewers misbehave
func (c *Config) Validate() error {
	g := c.Generation
	switch {
	case c.Game.Level < 0:
		return fmt.Errorf("%w: game.level %d is negative", ErrInvalidConfig, c.Game.Level)
	case g.MinContainerSize < 1 || g.MinRoomSize < 1:
		return fmt.Errorf("%w: generation sizes must be positive", ErrInvalidConfig)
	case g.MaxRoomSize != 0 && g.MaxRoomSize < g.MinRoomSize:
		return fmt.Errorf("%w: max_room_size %d is below min_room_size %d", ErrInvalidConfig, g.MaxRoomSize, g.MinRoomSize)
	case g.RoomRatio <= 0 || g.RoomRatio > 1:
		return fmt.Errorf("%w: room_ratio %g is outside (0, 1]", ErrInvalidConfig, g.RoomRatio)
	case g.MaxRoomAttempts < 1:
		return fmt.Errorf("%w: max_room_attempts must be positive", ErrInvalidConfig)
	case c.Game.EnemyRetryCount < 0:
		return fmt.Errorf("%w: enemy_retry_count is negative", ErrInvalidConfig)
	case c.Window.TileSize < 1 || c.Window.Scale <= 0:
		return fmt.Errorf("%w: window tile_size and scale must be positive", ErrInvalidConfig)
	}

	var err error
	g.Constants.Each(func(name string, value generation.GenerationConstant) bool {
		if !value.Valid() {
			err = fmt.Errorf("%w: constants.%s needs base >= 0, increase > 0 and max >= 0", ErrInvalidConfig, name)
			return false
		}
		return true
	})
	return err
}
