package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/tickworld/config"
	"github.com/plus3/tickworld/debugui"
	"github.com/plus3/tickworld/driver"
	"github.com/plus3/tickworld/render/ebitenbridge"
	"github.com/plus3/tickworld/render/termbridge"
	"github.com/plus3/tickworld/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("load configuration")
	}

	flag.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to run: ecs or behavior.")
	flag.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "Frontend: ebiten, term or headless.")
	flag.StringVar(&cfg.TickInterval, "interval", cfg.TickInterval, "Tick pacing interval for term and headless runs.")
	flag.StringVar(&cfg.Duration, "duration", cfg.Duration, "How long a headless run lasts.")
	flag.StringVar(&cfg.BouncePolicy, "bounce-policy", cfg.BouncePolicy, "Floor policy for bouncing objects: reflect or clamp.")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level.")
	flag.BoolVar(&cfg.DebugUI, "debugui", cfg.DebugUI, "Show the ImGui store inspector (ebiten, ecs scene).")
	flag.BoolVar(&cfg.Profile, "profile", cfg.Profile, "Write a CPU profile.")
	flag.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "Directory for the CPU profile.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("invalid flags")
	}

	level, _ := cfg.Level()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	os.Exit(withProfile(cfg, logger, func() error { return run(cfg, logger) }))
}

// withProfile runs fn under a CPU profile when enabled and returns the exit
// code. The profile is flushed before it returns.
func withProfile(cfg config.Config, logger zerolog.Logger, fn func() error) int {
	if cfg.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.ProfileDir), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	if err := fn(); err != nil {
		logger.Error().Err(err).Str("stack", eris.ToString(err, true)).Msg("tickworld failed")
		return 1
	}
	return 0
}

func run(cfg config.Config, logger zerolog.Logger) error {
	world, err := buildScene(cfg, logger)
	if err != nil {
		return eris.Wrapf(err, "build scene %q", cfg.Scene)
	}
	logger.Info().Str("scene", world.Name()).Str("renderer", cfg.Renderer).Msg("starting")

	interval, _ := cfg.Interval()

	switch cfg.Renderer {
	case config.RendererEbiten:
		return runEbiten(cfg, world, logger)

	case config.RendererTerm:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		screen, err := termbridge.Open(world, termbridge.WithLogger(logger))
		if err != nil {
			return eris.Wrap(err, "open terminal")
		}
		defer screen.Close()
		return screen.Run(ctx, driver.New(world, driver.WithLogger(logger)), interval)

	default:
		return runHeadless(cfg, world, interval, logger)
	}
}

func buildScene(cfg config.Config, logger zerolog.Logger) (scene.Scene, error) {
	if cfg.Scene == config.SceneBehavior {
		policy, err := cfg.Policy()
		if err != nil {
			return nil, err
		}
		return scene.NewObjects(logger, policy)
	}
	return scene.NewECS(logger)
}

func runEbiten(cfg config.Config, world scene.Scene, logger zerolog.Logger) error {
	opts := []ebitenbridge.Option{ebitenbridge.WithLogger(logger)}

	if ecsScene, ok := world.(*scene.ECS); ok && cfg.DebugUI {
		backend := debugui.NewImguiBackend("tickworld", 1280, 720)
		if err := debugui.Install(ecsScene.Scheduler); err != nil {
			return eris.Wrap(err, "install debug ui")
		}
		opts = append(opts, ebitenbridge.WithOverlay(backend))
	}

	game := ebitenbridge.New(driver.New(world, driver.WithLogger(logger)), world, opts...)
	return ebitenbridge.Run(game, "tickworld - "+world.Name())
}

func runHeadless(cfg config.Config, world scene.Scene, interval time.Duration, logger zerolog.Logger) error {
	duration, _ := cfg.RunDuration()
	report := &Report{
		Scene:    world.Name(),
		Duration: duration,
		Interval: interval,
	}

	timed := driver.TickerFunc(func(dt, timeMillis float64) error {
		start := time.Now()
		err := world.Tick(dt, timeMillis)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(start))
		return err
	})

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	d := driver.New(timed, driver.WithLogger(logger))
	if err := d.Run(ctx, interval); err != nil {
		return err
	}

	report.TotalTime = time.Since(start)
	report.TotalUpdates = d.Ticks()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	for _, mesh := range world.Meshes() {
		report.Meshes = append(report.Meshes, MeshState{Label: mesh.Label, Transform: *mesh.Transform()})
		t := mesh.Transform()
		logger.Info().
			Str("mesh", mesh.Label).
			Floats64("position", t.Position[:]).
			Floats64("rotation", t.Rotation[:]).
			Floats64("scale", t.Scale[:]).
			Msg("final transform")
	}

	if ecsScene, ok := world.(*scene.ECS); ok {
		report.Systems = ecsScene.Scheduler.GetStats().Systems
		report.Store = ecsScene.Storage.CollectStats()
	}

	return report.Generate(os.Stdout)
}
