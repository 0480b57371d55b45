package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/SeanRemedios/Boid-System/pkg/behavior"
	"github.com/SeanRemedios/Boid-System/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	golog "github.com/tochemey/goakt/v3/log"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema []byte

const schemaURL = "config.schema.json"

// pcgStream is the second PCG word, any odd constant works.
const pcgStream = 0xda3e39cb94b95bdb

// ErrInvalidConfig is returned when a configuration passes the schema but its
// values contradict each other.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every constant of a run. It is fixed at start.
type Config struct {
	// World Dimensions
	ScreenWidth  float64 `json:"screenWidth"`
	ScreenHeight float64 `json:"screenHeight"`

	// Population
	NumBoids   int     `json:"numBoids"`
	BoidRadius float64 `json:"boidRadius"`

	// Containment
	WallMargin  float64 `json:"wallMargin"`
	ForceBack   float64 `json:"forceBack"`
	PerchMargin float64 `json:"perchMargin"`

	// Physics
	SpeedLimit      float64 `json:"speedLimit"`
	TimeStepDivisor float64 `json:"timeStepDivisor"`

	// Flocking rules
	CohesionDivisor    float64 `json:"cohesionDivisor"`
	SeparationDistance float64 `json:"separationDistance"`
	AlignmentDivisor   float64 `json:"alignmentDivisor"`
	RuleSet            string  `json:"ruleSet"`

	// Spawning and perching
	SpawnOffset   float64 `json:"spawnOffset"`
	PerchMinTicks int     `json:"perchMinTicks"`
	PerchMaxTicks int     `json:"perchMaxTicks"`

	// Timing
	TickIntervalMs int               `json:"tickIntervalMs"`
	WindDelayMs    int               `json:"windDelayMs"`
	WindDirection  geometry.Vector2D `json:"windDirection"`

	// Runtime
	Workers  int    `json:"workers"`  // goroutines evaluating rules, 0 or 1 is sequential
	Seed     uint64 `json:"seed"`     // 0 seeds from the clock
	LogLevel string `json:"logLevel"` // debug, info, warn or error
}

// DefaultConfig returns the values the simulation was designed around.
func DefaultConfig() *Config {
	s := behavior.DefaultSettings()
	return &Config{
		ScreenWidth:        s.ScreenWidth,
		ScreenHeight:       s.ScreenHeight,
		NumBoids:           20,
		BoidRadius:         s.BoidRadius,
		WallMargin:         s.WallMargin,
		ForceBack:          s.ForceBack,
		PerchMargin:        s.PerchMargin,
		SpeedLimit:         s.SpeedLimit,
		TimeStepDivisor:    s.TimeStepDivisor,
		CohesionDivisor:    s.CohesionDivisor,
		SeparationDistance: s.SeparationDistance,
		AlignmentDivisor:   s.AlignmentDivisor,
		RuleSet:            string(s.RuleSet),
		SpawnOffset:        s.SpawnOffset,
		PerchMinTicks:      s.PerchMinTicks,
		PerchMaxTicks:      s.PerchMaxTicks,
		TickIntervalMs:     40,
		WindDelayMs:        10_000,
		WindDirection:      s.WindDirection,
		Workers:            1,
		LogLevel:           "info",
	}
}

// LoadConfig loads a JSON, YAML or TOML file (chosen by extension), validates it
// against the embedded schema and overlays it on DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	doc, err := toJSON(filepath.Ext(configFile), raw)
	if err != nil {
		return nil, err
	}
	return ParseConfig(doc)
}

// LoadConfigOrDefault returns DefaultConfig when configFile is empty.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	if configFile == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(configFile)
}

// ParseConfig validates a JSON document and overlays it on DefaultConfig.
func ParseConfig(doc []byte) (*Config, error) {
	sch, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(doc, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(configSchema)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}

// toJSON converts a YAML or TOML document to JSON so a single schema validates
// every format.
func toJSON(ext string, raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	switch strings.ToLower(ext) {
	case ".json", "":
		return raw, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if doc == nil {
		doc = map[string]interface{}{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config to json: %w", err)
	}
	return out, nil
}

// Validate checks the constraints the schema cannot express.
func (c *Config) Validate() error {
	switch {
	case c.PerchMinTicks > c.PerchMaxTicks:
		return fmt.Errorf("%w: perchMinTicks %d is above perchMaxTicks %d", ErrInvalidConfig, c.PerchMinTicks, c.PerchMaxTicks)
	case 2*c.WallMargin >= c.ScreenWidth || 2*c.WallMargin >= c.ScreenHeight:
		return fmt.Errorf("%w: wallMargin %.0f leaves no room inside a %.0fx%.0f screen", ErrInvalidConfig, c.WallMargin, c.ScreenWidth, c.ScreenHeight)
	case c.PerchMargin < c.BoidRadius:
		return fmt.Errorf("%w: perchMargin %.1f must be at least boidRadius %.1f", ErrInvalidConfig, c.PerchMargin, c.BoidRadius)
	case c.PerchMargin >= c.ScreenHeight:
		return fmt.Errorf("%w: perchMargin %.1f is outside the screen", ErrInvalidConfig, c.PerchMargin)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Settings converts the config into the physics settings used by the flock.
func (c *Config) Settings() behavior.Settings {
	return behavior.Settings{
		ScreenWidth:        c.ScreenWidth,
		ScreenHeight:       c.ScreenHeight,
		BoidRadius:         c.BoidRadius,
		WallMargin:         c.WallMargin,
		ForceBack:          c.ForceBack,
		PerchMargin:        c.PerchMargin,
		SpeedLimit:         c.SpeedLimit,
		TimeStepDivisor:    c.TimeStepDivisor,
		CohesionDivisor:    c.CohesionDivisor,
		SeparationDistance: c.SeparationDistance,
		AlignmentDivisor:   c.AlignmentDivisor,
		WindDirection:      c.WindDirection,
		RuleSet:            behavior.RuleSet(c.RuleSet),
		SpawnOffset:        c.SpawnOffset,
		PerchMinTicks:      c.PerchMinTicks,
		PerchMaxTicks:      c.PerchMaxTicks,
	}
}

// TickInterval is the fixed duration of a tick.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// TicksPerSecond is the tick rate handed to frame driven renderers.
func (c *Config) TicksPerSecond() int {
	return max(1, 1000/c.TickIntervalMs)
}

// WindDelay is how long after start the wind begins to blow.
func (c *Config) WindDelay() time.Duration {
	return time.Duration(c.WindDelayMs) * time.Millisecond
}

// NewFlock builds the population for a run started at start.
func (c *Config) NewFlock(start time.Time) *behavior.Flock {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^pcgStream))

	s := c.Settings()
	flock := behavior.NewFlock(behavior.Populate(c.NumBoids, rng, s), s, behavior.NewClock(start, c.WindDelay()))
	flock.SetWorkers(c.Workers)
	return flock
}

// NewLogger returns a zap backed actor system logger writing to w.
func NewLogger(level string, w io.Writer) (golog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return golog.New(lvl, w), nil
}

func parseLevel(level string) (golog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return golog.DebugLevel, nil
	case "info", "":
		return golog.InfoLevel, nil
	case "warn", "warning":
		return golog.WarningLevel, nil
	case "error":
		return golog.ErrorLevel, nil
	default:
		return golog.InvalidLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
	}
}
