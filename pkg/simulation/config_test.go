package simulation

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeanRemedios/Boid-System/pkg/behavior"
	"github.com/SeanRemedios/Boid-System/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800.0, cfg.ScreenWidth)
	assert.Equal(t, 600.0, cfg.ScreenHeight)
	assert.Equal(t, 20, cfg.NumBoids)
	assert.Equal(t, 40*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 25, cfg.TicksPerSecond())
	assert.Equal(t, 10*time.Second, cfg.WindDelay())
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 5}, cfg.WindDirection)
	assert.Equal(t, behavior.DefaultSettings(), cfg.Settings())
}

func TestLoadConfig_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    func(*Config)
	}{
		{
			name:    "JSON",
			file:    "boids.json",
			content: `{"numBoids": 50, "windDirection": {"x": -2, "y": 0}, "seed": 12345}`,
			want: func(c *Config) {
				c.NumBoids = 50
				c.WindDirection = geometry.Vector2D{X: -2, Y: 0}
				c.Seed = 12345
			},
		},
		{
			name: "YAML",
			file: "boids.yaml",
			content: `numBoids: 30
ruleSet: legacy
windDirection:
  x: 0
  y: 3
`,
			want: func(c *Config) {
				c.NumBoids = 30
				c.RuleSet = "legacy"
				c.WindDirection = geometry.Vector2D{X: 0, Y: 3}
			},
		},
		{
			name: "TOML",
			file: "boids.toml",
			content: `numBoids = 40
speedLimit = 250.5
workers = 4

[windDirection]
x = 2.0
y = 1.0
`,
			want: func(c *Config) {
				c.NumBoids = 40
				c.SpeedLimit = 250.5
				c.Workers = 4
				c.WindDirection = geometry.Vector2D{X: 2, Y: 1}
			},
		},
		{
			name:    "Empty YAML keeps the defaults",
			file:    "empty.yml",
			content: "",
			want:    func(*Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)

			want := DefaultConfig()
			tt.want(want)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadConfig_SchemaRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown key", `{"numBirds": 10}`},
		{"Empty flock", `{"numBoids": 0}`},
		{"Unknown rule set", `{"ruleSet": "chaos"}`},
		{"Wrong type", `{"tickIntervalMs": "fast"}`},
		{"Fractional count", `{"numBoids": 2.5}`},
		{"Negative speed limit", `{"speedLimit": -1}`},
		{"Incomplete wind", `{"windDirection": {"x": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "bad.json", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoadConfig_SemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Perch range inverted", `{"perchMinTicks": 50, "perchMaxTicks": 10}`},
		{"Walls swallow the screen", `{"wallMargin": 300}`},
		{"Perch margin below radius", `{"boidRadius": 8, "perchMargin": 4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "bad.json", tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadConfig_FileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "boids.ini", "numBoids=3"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = LoadConfig(writeConfig(t, "broken.yaml", "numBoids: [1, 2"))
	assert.ErrorContains(t, err, "failed to decode config yaml")
}

func TestLoadConfigOrDefault(t *testing.T) {
	cfg, err := LoadConfigOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_UnknownLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	_, err := NewLogger("verbose", io.Discard)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	logger, err := NewLogger("debug", io.Discard)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestConfig_NewFlockIsSeeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 12
	cfg.Seed = 2024
	cfg.Workers = 3
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a := cfg.NewFlock(start)
	b := cfg.NewFlock(start)

	require.Equal(t, 12, a.Len())
	assert.Equal(t, a.Positions(), b.Positions())
	assert.Equal(t, start, a.Clock().Start())
	assert.Equal(t, cfg.WindDelay(), a.Clock().Delay())
}
