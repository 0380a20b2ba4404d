// Package config loads tickworld settings from the environment.
package config

import (
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/behavior"
)

const (
	SceneECS      = "ecs"
	SceneBehavior = "behavior"

	RendererEbiten   = "ebiten"
	RendererTerm     = "term"
	RendererHeadless = "headless"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = eris.New("invalid configuration")

type Config struct {
	Scene        string `config:"TICKWORLD_SCENE"`
	Renderer     string `config:"TICKWORLD_RENDERER"`
	TickInterval string `config:"TICKWORLD_TICK_INTERVAL"`
	Duration     string `config:"TICKWORLD_DURATION"`
	BouncePolicy string `config:"TICKWORLD_BOUNCE_POLICY"`
	LogLevel     string `config:"TICKWORLD_LOG_LEVEL"`
	DebugUI      bool   `config:"TICKWORLD_DEBUG_UI"`
	Profile      bool   `config:"TICKWORLD_PROFILE"`
	ProfileDir   string `config:"TICKWORLD_PROFILE_DIR"`
}

// Default returns the settings used when nothing is set in the environment.
func Default() Config {
	return Config{
		Scene:        SceneECS,
		Renderer:     RendererEbiten,
		TickInterval: "16ms",
		Duration:     "10s",
		BouncePolicy: behavior.FloorReflect.String(),
		LogLevel:     zerolog.InfoLevel.String(),
		ProfileDir:   ".",
	}
}

// Load overlays environment variables on Default and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := config.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated and parsed field.
func (c Config) Validate() error {
	switch c.Scene {
	case SceneECS, SceneBehavior:
	default:
		return eris.Wrapf(ErrInvalidConfig, "scene %q", c.Scene)
	}
	switch c.Renderer {
	case RendererEbiten, RendererTerm, RendererHeadless:
	default:
		return eris.Wrapf(ErrInvalidConfig, "renderer %q", c.Renderer)
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, err := c.RunDuration(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return eris.Wrapf(ErrInvalidConfig, "bounce policy %q", c.BouncePolicy)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Interval is the pacing interval of the tick loop.
func (c Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return 0, eris.Wrapf(ErrInvalidConfig, "tick interval %q", c.TickInterval)
	}
	return d, nil
}

// RunDuration is how long a headless run lasts.
func (c Config) RunDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Duration)
	if err != nil || d <= 0 {
		return 0, eris.Wrapf(ErrInvalidConfig, "duration %q", c.Duration)
	}
	return d, nil
}

// Policy is the floor policy for bouncing behaviors.
func (c Config) Policy() (behavior.FloorPolicy, error) {
	return behavior.ParseFloorPolicy(c.BouncePolicy)
}

// Level is the zerolog level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	return level, nil
}
