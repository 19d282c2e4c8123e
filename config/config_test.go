package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hades-rogue/generation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rogue.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Nil(t, cfg.Generation.Seed)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[generation]
seed = 42
debug = true

[generation.constants.width]
base = 40
increase = 1.5
max = 90

[game]
level = 3

[logging]
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Generation.Seed)
	assert.Equal(t, int64(42), *cfg.Generation.Seed)
	assert.True(t, cfg.Generation.BSPOptions().Debug)
	assert.Equal(t, generation.GenerationConstant{Base: 40, Increase: 1.5, Max: 90}, cfg.Generation.Constants.Width)
	assert.Equal(t, generation.DefaultConstants().Height, cfg.Generation.Constants.Height)
	assert.Equal(t, 3, cfg.Game.Level)
	assert.Equal(t, 3, cfg.Game.EnemyRetryCount)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[generation\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative level", "[game]\nlevel = -1\n"},
		{"room ratio", "[generation]\nroom_ratio = 1.5\n"},
		{"max below min", "[generation]\nmin_room_size = 6\nmax_room_size = 4\n"},
		{"tile size", "[window]\ntile_size = 0\n"},
		{"shrinking height", "[generation.constants.height]\nbase = 20\nincrease = -1.2\nmax = 100\n"},
		{"negative width", "[generation.constants.width]\nbase = -10\nincrease = 1.2\nmax = 150\n"},
		{"negative max", "[generation.constants.enemy_count]\nbase = 8\nincrease = 1.1\nmax = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefaults_MatchGeneration(t *testing.T) {
	assert.Equal(t, generation.DefaultBSPOptions(), Defaults().Generation.BSPOptions())
	assert.NoError(t, Defaults().Validate())
}

func TestWindowSize(t *testing.T) {
	w := WindowConfig{TileSize: 16, Scale: 2}
	width, height := w.WindowSize(30, 20)
	assert.Equal(t, 960, width)
	assert.Equal(t, 768, height)
}

func TestNewLogger(t *testing.T) {
	for _, cfg := range []LoggingConfig{
		{Level: "debug", Format: "json"},
		{Level: "nonsense", Format: "console"},
	} {
		log, err := NewLogger(cfg)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}

	log, _ := NewLogger(LoggingConfig{Level: "warn"})
	assert.False(t, log.Core().Enabled(-1))
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load("hades.toml")
	require.NoError(t, err)
	assert.Nil(t, cfg.Generation.Seed)
	assert.Equal(t, generation.DefaultConstants(), cfg.Generation.Constants)
	assert.Equal(t, 2.0, cfg.Window.Scale)
}
